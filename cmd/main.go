package main

import (
	"context"
	"errors"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	// .env is optional; values there override config.toml.
	godotenv.Load()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	applyEnvOverrides(config)

	client := buildCatalogClient(config, logger)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: "config.toml",
		Client:     client,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "trackferry",
		Usage:    "Transfer CSV song lists into YouTube playlists",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

// buildCatalogClient constructs the YouTube client from whatever
// credentials are available: a saved OAuth token first, then an API key.
// A nil client is valid; commands that need one check for it.
func buildCatalogClient(config *shared.Config, logger *log.Logger) catalog.Client {
	creds := config.Credentials.YouTube

	if creds.ClientID != "" && creds.ClientSecret != "" && creds.TokenPath != "" {
		if token, err := catalog.LoadToken(creds.TokenPath); err == nil {
			oauthConfig := catalog.OAuthConfig(creds.ClientID, creds.ClientSecret, "")
			httpClient := catalog.NewOAuthClient(context.Background(), oauthConfig, token)
			return catalog.NewYouTubeClient(httpClient, "")
		} else if !errors.Is(err, shared.ErrNotAuthenticated) {
			logger.Warn("ignoring saved token", "path", creds.TokenPath, "error", err)
		}
	}

	if creds.APIKey != "" {
		return catalog.NewYouTubeClient(catalog.NewAPIKeyClient(creds.APIKey), "")
	}

	return nil
}

// applyEnvOverrides overlays environment variables onto the loaded config.
func applyEnvOverrides(config *shared.Config) {
	if v := os.Getenv("RATE_LIMIT_CALLS_PER_SECOND"); v != "" {
		if cps, err := strconv.ParseFloat(v, 64); err == nil && cps > 0 {
			config.Transfer.CallsPerSecond = cps
		}
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		config.Credentials.YouTube.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_CLIENT_ID"); v != "" {
		config.Credentials.YouTube.ClientID = v
	}
	if v := os.Getenv("YOUTUBE_CLIENT_SECRET"); v != "" {
		config.Credentials.YouTube.ClientSecret = v
	}
}
