package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"

	"github.com/trackferry/trackferry/internal/shared"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"

	// Manage-playlists scope, required for playlist creation and inserts.
	youtubeScope = "https://www.googleapis.com/auth/youtube"
)

// OAuthConfig builds the OAuth2 authorization code config for the YouTube Data API.
func OAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if redirectURL == "" {
		redirectURL = "http://localhost:8080/callback"
	}

	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       []string{youtubeScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
	}
}

// LoadToken reads a stored OAuth2 token from the given path.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read token file: %v", shared.ErrNotAuthenticated, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: failed to parse token file: %v", shared.ErrInvalidCredentials, err)
	}

	return &token, nil
}

// SaveToken writes an OAuth2 token to the given path, creating parent directories.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// NewOAuthClient returns an HTTP client that attaches (and refreshes) the
// given token on every request.
func NewOAuthClient(ctx context.Context, config *oauth2.Config, token *oauth2.Token) *http.Client {
	return config.Client(ctx, token)
}

// apiKeyTransport appends the API key query parameter to every request.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	query, err := url.ParseQuery(clone.URL.RawQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request query: %w", err)
	}
	query.Set("key", t.key)
	clone.URL.RawQuery = query.Encode()

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(clone)
}

// NewAPIKeyClient returns an HTTP client that authenticates requests with an
// API key. Key-only clients can search and read public data but cannot
// create playlists or insert items.
func NewAPIKeyClient(key string) *http.Client {
	return &http.Client{Transport: &apiKeyTransport{key: key}}
}
