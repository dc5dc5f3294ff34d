package services

import (
	"context"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/paginator"
	"github.com/desertthunder/tracktab/internal/table"
)

// Catalog is a searchable music catalog returning raw decoded JSON bodies.
type Catalog interface {
	// SearchTracks searches tracks by free text.
	SearchTracks(ctx context.Context, query string, limit int) (mapper.Object, error)

	// SearchArtists searches artists by free text.
	SearchArtists(ctx context.Context, query string, limit int) (mapper.Object, error)

	// SearchAlbums searches albums by free text.
	SearchAlbums(ctx context.Context, query string, limit int) (mapper.Object, error)

	// CountryChart returns the top tracks for an ISO country code.
	CountryChart(ctx context.Context, country string, limit int) (mapper.Object, error)

	// Genres lists every genre.
	Genres(ctx context.Context) (mapper.Object, error)

	// Get performs a raw GET against the API root.
	Get(ctx context.Context, path string) (mapper.Object, error)

	// Name returns the name of the service (e.g., "Deezer")
	Name() string
}

// PlaylistProvider reads playlist tracks into tables.
type PlaylistProvider interface {
	// PlaylistItems collects up to limit tracks of a playlist, page by page.
	PlaylistItems(ctx context.Context, playlistID string, limit int) (*paginator.Result, error)

	// PlaylistTracks is PlaylistItems built into a table.
	PlaylistTracks(ctx context.Context, playlistID string, limit int) (*table.Table, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
