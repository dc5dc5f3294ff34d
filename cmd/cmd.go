// submodule cmd contains command definitions
package main

import (
	"slices"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/services"
	"github.com/urfave/cli/v3"
)

func limitFlag(value int, usage string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "limit",
		Aliases: []string{"n"},
		Usage:   usage,
		Value:   value,
	}
}

func searchCommand(r *Runner, kind mapper.Kind) *cli.Command {
	return &cli.Command{
		Name:      kind.String() + "s",
		Usage:     "Search " + kind.String() + "s by free text",
		ArgsUsage: "<query>",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags:  slices.Concat([]cli.Flag{limitFlag(0, "Maximum number of results (default from config)")}, outputFlags()),
		Action: r.deezerSearch(kind),
	}
}

// deezerCommand handles public Deezer catalog queries
func deezerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "deezer",
		Aliases: []string{"dz"},
		Usage:   "Deezer catalog search, charts and genres",
		Commands: []*cli.Command{
			searchCommand(r, mapper.KindTrack),
			searchCommand(r, mapper.KindArtist),
			searchCommand(r, mapper.KindAlbum),
			{
				Name:  "chart",
				Usage: "Top tracks for a country",
				Flags: slices.Concat([]cli.Flag{
					&cli.StringFlag{
						Name:  "country",
						Usage: "ISO country code (default from config)",
					},
					limitFlag(0, "Maximum number of tracks (default from config)"),
				}, outputFlags()),
				Action: r.DeezerChart,
			},
			{
				Name:   "genres",
				Usage:  "List every genre",
				Flags:  outputFlags(),
				Action: r.DeezerGenres,
			},
			{
				Name:      "get",
				Usage:     "Direct GET to the Deezer API, prints raw JSON",
				ArgsUsage: "<path>",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "compact",
						Usage: "Print JSON on a single line",
					},
				},
				Action: r.APIGet,
			},
		},
	}
}

// spotifyCommand handles Spotify playlist reads
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify playlist tables (client credentials, public playlists only)",
		Commands: []*cli.Command{
			{
				Name:      "playlist",
				Usage:     "Tracks of a playlist",
				ArgsUsage: "<id>",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  slices.Concat([]cli.Flag{limitFlag(services.DefaultPlaylistLimit, "Maximum number of tracks")}, outputFlags()),
				Action: r.SpotifyPlaylist,
			},
		},
	}
}

// configCommand manages the configuration file
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Create or inspect the configuration file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write an example config file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "path",
						Usage: "Where to write the file (default: --config)",
					},
				},
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration",
				Action: r.ConfigShow,
			},
		},
	}
}
