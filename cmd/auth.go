package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/server"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin performs the OAuth2 authorization flow for YouTube.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for tokens saved at the configured token path.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config := r.config
	if config == nil {
		config = r.loadOrCreateConfig(configPath)
	}

	creds := config.Credentials.YouTube
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: YouTube client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}
	if creds.TokenPath == "" {
		return fmt.Errorf("%w: credentials.youtube.token_path must be set in config.toml", shared.ErrInvalidConfig)
	}

	redirectURL := fmt.Sprintf("http://%s:%d/callback", config.Server.Host, config.Server.Port)
	oauthConfig := catalog.OAuthConfig(creds.ClientID, creds.ClientSecret, redirectURL)

	token, err := r.doOAuth(config, oauthConfig)
	if err != nil {
		return err
	}

	if err := catalog.SaveToken(creds.TokenPath, token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	httpClient := catalog.NewOAuthClient(context.Background(), oauthConfig, token)
	r.client = catalog.NewYouTubeClient(httpClient, "")
	r.engine = r.rebuildEngine()

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n\n", creds.TokenPath)
	r.writePlain("You can now use: trackferry transfer run --file songs.csv --name \"My Playlist\"\n")

	return nil
}

// AuthStatus reports the current authentication state from the saved
// token and configured API key.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	creds := r.config.Credentials.YouTube

	if creds.TokenPath != "" {
		token, err := catalog.LoadToken(creds.TokenPath)
		switch {
		case err == nil && token.Valid():
			r.writePlain("✓ OAuth token: valid\n")
			if !token.Expiry.IsZero() {
				r.writePlain("  Expires: %s\n", token.Expiry.Format(time.RFC3339))
			}
			return nil
		case err == nil:
			r.writePlain("⚠ OAuth token: expired\n")
			if token.RefreshToken != "" {
				r.writePlain("  A refresh token is present; it will be refreshed on next use.\n")
				return nil
			}
			r.writePlain("  Run 'trackferry auth login' to reauthorize.\n")
			return nil
		case errors.Is(err, shared.ErrNotAuthenticated):
			r.writePlain("✗ OAuth token: not found at %s\n", creds.TokenPath)
		default:
			r.writePlain("✗ OAuth token: unreadable (%v)\n", err)
		}
	}

	if creds.APIKey != "" {
		r.writePlain("✓ API key configured (read-only: search and listing work, playlist writes do not)\n")
		return nil
	}

	r.writePlain("Run 'trackferry auth login' to authenticate.\n")
	return fmt.Errorf("%w: no usable credentials", shared.ErrNotAuthenticated)
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, oauthConfig *oauth2.Config) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	oauthHandler := server.NewOAuthHandler(oauthConfig, state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for YouTube authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
