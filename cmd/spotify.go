package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tracktab/internal/services"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
	"github.com/urfave/cli/v3"
)

// SpotifyPlaylist collects the tracks of a public playlist into a table.
func (r *Runner) SpotifyPlaylist(ctx context.Context, cmd *cli.Command) error {
	if r.playlists == nil {
		return fmt.Errorf("%w: set [credentials.spotify] in the config or SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET",
			shared.ErrMissingCredentials)
	}

	id, err := requireArg(cmd, "id")
	if err != nil {
		return err
	}

	limit := cmd.Int("limit")
	if limit <= 0 {
		limit = services.DefaultPlaylistLimit
	}

	r.logger.Info("fetching playlist", "id", id, "limit", limit)

	res, err := r.playlists.PlaylistItems(ctx, id, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	r.logger.Debug("playlist collected", "tracks", len(res.Records), "fetches", res.Fetches, "stop", res.Stop)

	return r.emit(cmd, table.Build(res.Records), request{source: r.playlists.Name(), command: "playlist", query: id})
}
