// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/trackferry/trackferry/internal/catalog"
)

// MockCatalog is a configurable test double for [catalog.Client]. Each
// operation records its calls and delegates to an optional func field;
// unset fields return benign defaults.
type MockCatalog struct {
	SearchFunc        func(ctx context.Context, query string, maxResults int) ([]catalog.Track, error)
	CreateFunc        func(ctx context.Context, name, description string, privacy catalog.Privacy) (string, error)
	AddFunc           func(ctx context.Context, playlistID, trackID string) error
	ListItemsFunc     func(ctx context.Context, playlistID, pageToken string) (*catalog.ItemPage, error)
	ListPlaylistsFunc func(ctx context.Context) ([]catalog.PlaylistInfo, error)

	SearchCalls []string
	AddCalls    []string
	CreateCalls []string
	ListCalls   int
}

func (m *MockCatalog) Search(ctx context.Context, query string, maxResults int) ([]catalog.Track, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, maxResults)
	}
	return nil, nil
}

func (m *MockCatalog) CreatePlaylist(ctx context.Context, name, description string, privacy catalog.Privacy) (string, error) {
	m.CreateCalls = append(m.CreateCalls, name)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, description, privacy)
	}
	return fmt.Sprintf("PL%d", len(m.CreateCalls)), nil
}

func (m *MockCatalog) AddItem(ctx context.Context, playlistID, trackID string) error {
	m.AddCalls = append(m.AddCalls, trackID)
	if m.AddFunc != nil {
		return m.AddFunc(ctx, playlistID, trackID)
	}
	return nil
}

func (m *MockCatalog) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*catalog.ItemPage, error) {
	m.ListCalls++
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, playlistID, pageToken)
	}
	return &catalog.ItemPage{}, nil
}

func (m *MockCatalog) ListOwnedPlaylists(ctx context.Context) ([]catalog.PlaylistInfo, error) {
	if m.ListPlaylistsFunc != nil {
		return m.ListPlaylistsFunc(ctx)
	}
	return nil, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
