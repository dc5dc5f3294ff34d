package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/urfave/cli/v3"
)

type searchFunc func(ctx context.Context, query string, limit int) (mapper.Object, error)

func (r *Runner) limit(cmd *cli.Command) int {
	if n := cmd.Int("limit"); n > 0 {
		return n
	}
	return r.config.Deezer.DefaultLimit
}

func (r *Runner) requireCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Deezer service not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// deezerSearch returns the action for one of the search endpoints.
func (r *Runner) deezerSearch(kind mapper.Kind) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		if err := r.requireCatalog(); err != nil {
			return err
		}

		query, err := requireArg(cmd, "query")
		if err != nil {
			return err
		}

		var search searchFunc
		switch kind {
		case mapper.KindArtist:
			search = r.catalog.SearchArtists
		case mapper.KindAlbum:
			search = r.catalog.SearchAlbums
		default:
			search = r.catalog.SearchTracks
		}

		limit := r.limit(cmd)
		r.logger.Info("searching", "kind", kind, "query", query, "limit", limit)

		body, err := search(ctx, query, limit)
		if err != nil {
			return fmt.Errorf("failed to search %ss: %w", kind, err)
		}

		t := mapper.ParseTable(kind, body)
		return r.emit(cmd, t, request{source: r.catalog.Name(), command: kind.String() + "s", query: query})
	}
}

// DeezerChart lists the top tracks of a country chart.
func (r *Runner) DeezerChart(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	country := cmd.String("country")
	if country == "" {
		country = r.config.Deezer.DefaultCountry
	}
	limit := r.limit(cmd)

	r.logger.Info("fetching chart", "country", country, "limit", limit)

	body, err := r.catalog.CountryChart(ctx, country, limit)
	if err != nil {
		return fmt.Errorf("failed to fetch chart: %w", err)
	}

	return r.emit(cmd, mapper.TracksTable(body), request{source: r.catalog.Name(), command: "chart", query: country})
}

// DeezerGenres lists every genre.
func (r *Runner) DeezerGenres(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	r.logger.Info("fetching genres")

	body, err := r.catalog.Genres(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	return r.emit(cmd, mapper.GenresTable(body), request{source: r.catalog.Name(), command: "genres"})
}
