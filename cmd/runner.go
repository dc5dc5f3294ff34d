package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tracktab/internal/services"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	catalog    services.Catalog
	playlists  services.PlaylistProvider
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	runID      string
	viewer     func(title string, t *table.Table) error
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Services left nil are built from the loaded config in [Runner.Setup].
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Catalog    services.Catalog
	Playlists  services.PlaylistProvider
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Viewer     func(title string, t *table.Table) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		catalog:    opts.Catalog,
		playlists:  opts.Playlists,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		runID:      shared.GenerateID(),
		viewer:     opts.Viewer,
	}
	if r.viewer == nil {
		r.viewer = r.runViewer
	}
	return r
}

// Setup loads configuration and builds the services. It runs before every command.
//
// A missing config file means defaults; an unreadable or invalid one is an error.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path != "" {
		r.configPath = path
	}

	if r.configPath != "" {
		config, err := shared.LoadConfig(r.configPath)
		switch {
		case err == nil:
			r.config = config
		case errors.Is(err, shared.ErrMissingConfig) && cmd.IsSet("config"):
			r.logger.Warn("config file not found, using defaults", "path", r.configPath)
		case errors.Is(err, shared.ErrMissingConfig):
			r.logger.Debug("config file not found, using defaults", "path", r.configPath)
		default:
			return ctx, err
		}
	}

	if id := cmd.String("spotify-client-id"); id != "" {
		r.config.Credentials.Spotify.ClientID = id
	}
	if secret := cmd.String("spotify-client-secret"); secret != "" {
		r.config.Credentials.Spotify.ClientSecret = secret
	}

	levelName := r.config.Log.Level
	if cmd.IsSet("log-level") {
		levelName = cmd.String("log-level")
	}
	level, err := shared.ParseLogLevel(levelName)
	if err != nil {
		return ctx, fmt.Errorf("%w: log level %q", shared.ErrInvalidArgument, levelName)
	}
	shared.SetLogLevel(r.logger, level)
	r.logger = shared.WithLogger(r.logger, "run", r.runID[:8])

	if r.catalog == nil {
		r.catalog = services.NewDeezerService(r.config.Deezer.BaseURL, r.httpClient)
	}

	if r.playlists == nil && r.config.Credentials.Spotify.Configured() {
		svc, err := services.NewSpotifyService(ctx, r.config.Credentials.Spotify.Map())
		if err != nil {
			return ctx, fmt.Errorf("failed to create Spotify service: %w", err)
		}
		r.playlists = svc
	}

	return ctx, nil
}

// SetLogger replaces the logger, e.g. to keep log lines out of the interactive viewer.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		deezerCommand, spotifyCommand, configCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// requireArg returns the trimmed positional argument name or [shared.ErrMissingArgument].
func requireArg(cmd *cli.Command, name string) (string, error) {
	v := strings.TrimSpace(cmd.StringArg(name))
	if v == "" {
		return "", fmt.Errorf("%w: <%s>", shared.ErrMissingArgument, name)
	}
	return v, nil
}
