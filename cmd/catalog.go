package main

import (
	"context"
	"fmt"

	"github.com/trackferry/trackferry/internal/catalog"
	"github.com/trackferry/trackferry/internal/shared"
	"github.com/urfave/cli/v3"
)

// CatalogSearch searches the catalog for tracks matching a query.
func (r *Runner) CatalogSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}
	if r.client == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'trackferry auth login'", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("searching catalog for %q", query)

	tracks, err := r.client.Search(ctx, query, int(limit))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(tracks, pretty)
	}

	if len(tracks) == 0 {
		return r.writePlain("No results for %q\n", query)
	}

	r.writePlain("Found %d tracks:\n\n", len(tracks))
	for i, track := range tracks {
		r.writePlain("%d. %s\n", i+1, track.Title)
		if track.Artist != "" {
			r.writePlain("   Channel: %s\n", track.Artist)
		}
		r.writePlain("   ID: %s\n\n", track.TrackID)
	}

	return nil
}

// CatalogPlaylists lists the authenticated account's playlists.
func (r *Runner) CatalogPlaylists(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.client == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'trackferry auth login'", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("listing playlists with limit %v", limit)

	playlists, err := r.client.ListOwnedPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if limit > 0 && int(limit) < len(playlists) {
		playlists = playlists[:limit]
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Title)
		r.writePlain("   ID: %s\n", p.ID)
		r.writePlain("   Items: %d\n\n", p.ItemCount)
	}

	return nil
}

// CatalogCreate creates a playlist on the authenticated account.
func (r *Runner) CatalogCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	description := cmd.String("description")
	privacy := catalog.Privacy(cmd.String("privacy"))

	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}
	if r.client == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'trackferry auth login'", shared.ErrServiceUnavailable)
	}

	switch privacy {
	case catalog.PrivacyPrivate, catalog.PrivacyUnlisted, catalog.PrivacyPublic:
	default:
		return fmt.Errorf("%w: privacy must be private, unlisted, or public", shared.ErrInvalidFlag)
	}

	r.logger.Infof("creating playlist %q", name)

	id, err := r.client.CreatePlaylist(ctx, name, description, privacy)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.writePlain("✓ Playlist created: %s\n", name)
	r.writePlain("  ID: %s\n", id)
	return nil
}

// CatalogItems pages through and prints every item of a playlist.
func (r *Runner) CatalogItems(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.client == nil {
		return fmt.Errorf("%w: catalog client not initialized, run 'trackferry auth login'", shared.ErrServiceUnavailable)
	}

	r.logger.Infof("listing items of playlist %v", playlistID)

	var items []catalog.Track
	pageToken := ""
	for {
		page, err := r.client.ListPlaylistItems(ctx, playlistID, pageToken)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}
		items = append(items, page.Items...)
		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	if useJSON {
		return r.writeJSON(items, pretty)
	}

	r.writePlain("Playlist %s has %d items:\n\n", playlistID, len(items))
	for i, item := range items {
		r.writePlain("%d. %s (%s)\n", i+1, item.Title, item.TrackID)
	}

	return nil
}
