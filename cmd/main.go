package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/urfave/cli/v3"
)

// newApp builds the root command around r.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tracktab",
		Usage:   "Deezer and Spotify catalog data as ranked tables",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
				Sources: cli.EnvVars("TRACKTAB_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("TRACKTAB_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "spotify-client-id",
				Usage:   "Spotify client id (overrides config)",
				Sources: cli.EnvVars("SPOTIFY_CLIENT_ID"),
			},
			&cli.StringFlag{
				Name:    "spotify-client-secret",
				Usage:   "Spotify client secret (overrides config)",
				Sources: cli.EnvVars("SPOTIFY_CLIENT_SECRET"),
			},
		},
		Before:   r.Setup,
		Commands: r.register(),
	}
}

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		var httpErr *shared.HTTPError
		switch {
		case errors.Is(err, shared.ErrNotImplemented):
			logger.Warn("not implemented")
			os.Exit(0)
		case errors.As(err, &httpErr):
			logger.Fatal("request failed", "status", httpErr.StatusCode, "url", httpErr.URL, "error", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
