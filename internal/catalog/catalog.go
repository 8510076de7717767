// package catalog defines the Client capability consumed by transfer
// runs: search the remote catalog, create playlists, append items, and
// list existing playlist contents.
package catalog

import "context"

// Privacy is the visibility of a created playlist.
type Privacy string

const (
	PrivacyPrivate  Privacy = "private"
	PrivacyUnlisted Privacy = "unlisted"
	PrivacyPublic   Privacy = "public"
)

// Track is a search result or playlist entry, validated at the client
// boundary so matching code never inspects raw API responses.
type Track struct {
	TrackID string
	Title   string
	Artist  string
}

// ItemPage is one page of a playlist's items with an opaque token for
// fetching the next page; an empty token means the listing is complete.
type ItemPage struct {
	Items         []Track
	NextPageToken string
}

// PlaylistInfo summarizes a playlist owned by the authenticated account.
type PlaylistInfo struct {
	ID        string
	Title     string
	ItemCount int
}

// Client is the authenticated catalog capability. Implementations own
// their transport, timeouts, and credential handling; callers only
// interpret success or error.
type Client interface {
	// Search queries the catalog and returns up to maxResults tracks.
	// Zero matches yields an empty slice, not an error.
	Search(ctx context.Context, query string, maxResults int) ([]Track, error)

	// CreatePlaylist creates a playlist and returns its id.
	CreatePlaylist(ctx context.Context, name, description string, privacy Privacy) (string, error)

	// AddItem appends a track to a playlist.
	AddItem(ctx context.Context, playlistID, trackID string) error

	// ListPlaylistItems fetches one page of a playlist's items. Pass an
	// empty pageToken for the first page.
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*ItemPage, error)

	// ListOwnedPlaylists returns the account's playlists.
	ListOwnedPlaylists(ctx context.Context) ([]PlaylistInfo, error)
}
