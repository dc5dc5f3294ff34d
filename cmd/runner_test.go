package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
	tu "github.com/desertthunder/tracktab/internal/testing"
)

func chartBody() mapper.Object {
	track := func(id int, title string, rank any) map[string]any {
		return map[string]any{
			"id": id, "title": title, "duration": 200 + id, "rank": rank,
			"artist": map[string]any{"name": "Daft Punk"},
			"album":  map[string]any{"title": "Discovery"},
		}
	}
	return mapper.Object{"data": []any{
		track(1, "One More Time", 700000),
		track(2, "Aerodynamic", nil),
		track(3, "Digital Love", 900000),
	}}
}

func quietRunner(opts RunnerOpts) (*Runner, *bytes.Buffer) {
	out := &bytes.Buffer{}
	opts.Output = out
	opts.Logger = shared.NewLogger(io.Discard)
	return NewRunner(opts), out
}

// run executes the CLI with a config path that does not exist, so injected config is kept.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	argv := append([]string{"tracktab", "--config", filepath.Join(t.TempDir(), "missing.toml")}, args...)
	return newApp(r).Run(context.Background(), argv)
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &tu.MockCatalog{}
			playlists := &tu.MockPlaylistProvider{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
				Playlists:  playlists,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.playlists != playlists {
				t.Error("expected playlists to be set")
			}
			if runner.runID == "" {
				t.Error("expected a run id")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with nil viewer uses terminal viewer", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.viewer == nil {
				t.Error("expected default viewer")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		commands := NewRunner(RunnerOpts{}).register()

		if len(commands) != 3 {
			t.Errorf("expected 3 command groups, got %d", len(commands))
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("Loads Config File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[deezer]\ndefault_limit = 7\ndefault_country = \"fr\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		catalog := &tu.MockCatalog{Body: chartBody()}
		r, _ := quietRunner(RunnerOpts{Catalog: catalog})

		if err := newApp(r).Run(context.Background(), []string{"tracktab", "--config", path, "deezer", "chart"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.LastQuery != "fr" || catalog.LastLimit != 7 {
			t.Errorf("expected config defaults fr/7, got %s/%d", catalog.LastQuery, catalog.LastLimit)
		}
	})

	t.Run("Invalid Config File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[output]\nformat = \"xml\"\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		r, _ := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{}})
		err := newApp(r).Run(context.Background(), []string{"tracktab", "--config", path, "deezer", "genres"})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Invalid Log Level", func(t *testing.T) {
		r, _ := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{}})

		err := run(t, r, "--log-level", "loud", "deezer", "genres")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("Builds Services From Config", func(t *testing.T) {
		r, _ := quietRunner(RunnerOpts{})

		if err := run(t, r, "--spotify-client-id", "id", "--spotify-client-secret", "secret", "config", "show"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.catalog == nil || r.catalog.Name() != "Deezer" {
			t.Error("expected Deezer catalog to be built")
		}
		if r.playlists == nil || r.playlists.Name() != "Spotify" {
			t.Error("expected Spotify service to be built from flags")
		}
	})

	t.Run("Placeholder Credentials Leave Spotify Off", func(t *testing.T) {
		r, _ := quietRunner(RunnerOpts{})

		if err := run(t, r, "config", "show"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.playlists != nil {
			t.Error("expected no Spotify service with example credentials")
		}
	})
}

func TestDeezerCommands(t *testing.T) {
	t.Run("Search Against Server", func(t *testing.T) {
		var query, limit string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search/track" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			query, limit = r.URL.Query().Get("q"), r.URL.Query().Get("limit")
			json.NewEncoder(w).Encode(chartBody())
		}))
		defer srv.Close()

		config := shared.DefaultConfig()
		config.Deezer.BaseURL = srv.URL
		r, out := quietRunner(RunnerOpts{Config: config})

		if err := run(t, r, "deezer", "tracks", "--limit", "3", "--format", "csv", "daft punk"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if query != "daft punk" || limit != "3" {
			t.Errorf("unexpected request q=%q limit=%q", query, limit)
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if lines[0] != "track_id,track_title,duration_sec,rank,artist_name,album_title" {
			t.Errorf("unexpected header %s", lines[0])
		}
		if len(lines) != 4 {
			t.Errorf("expected 3 rows, got %d", len(lines)-1)
		}
	})

	t.Run("Rate Limited", func(t *testing.T) {
		srv := tu.NewJSONServer(t, http.StatusTooManyRequests, nil)

		config := shared.DefaultConfig()
		config.Deezer.BaseURL = srv.URL
		r, _ := quietRunner(RunnerOpts{Config: config})

		err := run(t, r, "deezer", "artists", "daft punk")

		var httpErr *shared.HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusTooManyRequests {
			t.Errorf("expected HTTP 429 error, got %v", err)
		}
		if srv.Hits() != 1 {
			t.Errorf("expected exactly one request, got %d", srv.Hits())
		}
	})

	t.Run("Default Limit From Config", func(t *testing.T) {
		catalog := &tu.MockCatalog{Body: chartBody()}
		r, _ := quietRunner(RunnerOpts{Catalog: catalog})

		if err := run(t, r, "deezer", "albums", "-f", "json", "discovery"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.LastMethod != "SearchAlbums" || catalog.LastLimit != 25 {
			t.Errorf("expected SearchAlbums with limit 25, got %s/%d", catalog.LastMethod, catalog.LastLimit)
		}
	})

	t.Run("Missing Query", func(t *testing.T) {
		catalog := &tu.MockCatalog{}
		r, _ := quietRunner(RunnerOpts{Catalog: catalog})

		err := run(t, r, "deezer", "tracks")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if catalog.LastMethod != "" {
			t.Error("expected no API call")
		}
	})

	t.Run("Rank By Column", func(t *testing.T) {
		r, out := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{Body: chartBody()}})

		if err := run(t, r, "deezer", "chart", "--rank", "--format", "json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var rows []map[string]any
		if err := json.Unmarshal(out.Bytes(), &rows); err != nil {
			t.Fatalf("invalid JSON output: %v\n%s", err, out.String())
		}
		titles := []string{}
		for _, row := range rows {
			titles = append(titles, row["track_title"].(string))
		}
		want := []string{"Digital Love", "One More Time", "Aerodynamic"}
		for i := range want {
			if titles[i] != want[i] {
				t.Errorf("row %d = %s, want %s", i, titles[i], want[i])
			}
		}
		if rows[2]["rank"] != nil {
			t.Errorf("expected Missing rank as null, got %v", rows[2]["rank"])
		}
	})

	t.Run("Unknown Rank Column", func(t *testing.T) {
		r, _ := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{Body: chartBody()}})

		err := run(t, r, "deezer", "chart", "--rank-by", "plays")
		if !errors.Is(err, shared.ErrColumnNotFound) {
			t.Errorf("expected ErrColumnNotFound, got %v", err)
		}
	})

	t.Run("Statistics", func(t *testing.T) {
		r, out := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{Body: chartBody()}})

		if err := run(t, r, "deezer", "chart", "--stats", "--format", "csv"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		output := out.String()
		if !strings.HasPrefix(output, "stat,track_id,duration_sec,rank\n") {
			t.Errorf("unexpected statistics header: %s", output)
		}
		if !strings.Contains(output, "\nmean,2,202,800000\n") {
			t.Errorf("unexpected mean row: %s", output)
		}
	})

	t.Run("Genres Markdown", func(t *testing.T) {
		body := mapper.Object{"data": []any{map[string]any{"id": 0, "name": "All"}, map[string]any{"id": 132, "name": "Pop"}}}
		r, out := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{Body: body}})

		if err := run(t, r, "deezer", "genres", "--format", "markdown"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out.String(), "| 132 | Pop |") {
			t.Errorf("expected genre row, got %s", out.String())
		}
	})

	t.Run("Raw Get", func(t *testing.T) {
		catalog := &tu.MockCatalog{Body: mapper.Object{"id": 27, "name": "Daft Punk"}}
		r, out := quietRunner(RunnerOpts{Catalog: catalog})

		if err := run(t, r, "deezer", "get", "--compact", "artist/27"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.LastQuery != "artist/27" {
			t.Errorf("unexpected path %s", catalog.LastQuery)
		}
		if strings.TrimSpace(out.String()) != `{"id":27,"name":"Daft Punk"}` {
			t.Errorf("unexpected output %s", out.String())
		}
	})

	t.Run("Save Writes Data And Metadata", func(t *testing.T) {
		dir := t.TempDir()
		config := shared.DefaultConfig()
		config.Output.Directory = dir
		r, out := quietRunner(RunnerOpts{Config: config, Catalog: &tu.MockCatalog{Body: chartBody()}})

		if err := run(t, r, "deezer", "tracks", "--save", "--format", "csv", "Daft Punk!"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		base := filepath.Join(dir, "mock_tracks_daft-punk")
		tu.AssertFileExists(t, base+".csv")
		tu.AssertFileExists(t, base+"_metadata.json")

		var meta map[string]any
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, base+"_metadata.json")), &meta); err != nil {
			t.Fatalf("invalid metadata: %v", err)
		}
		if meta["run_id"] != r.runID || meta["query"] != "Daft Punk!" {
			t.Errorf("unexpected metadata %v", meta)
		}
		if !strings.Contains(out.String(), "3 rows written") {
			t.Errorf("expected summary line, got %s", out.String())
		}
	})

	t.Run("SQLite Always Saves", func(t *testing.T) {
		dir := t.TempDir()
		r, _ := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{Body: chartBody()}})

		if err := run(t, r, "deezer", "chart", "--format", "sqlite", "-o", filepath.Join(dir, "chart.db")); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, filepath.Join(dir, "chart.db"))
		tu.AssertFileExists(t, filepath.Join(dir, "chart_metadata.json"))
	})

	t.Run("Interactive Uses Viewer", func(t *testing.T) {
		var title string
		var rows int
		viewer := func(tt string, tbl *table.Table) error {
			title, rows = tt, tbl.Len()
			return nil
		}
		r, out := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{Body: chartBody()}, Viewer: viewer})

		if err := run(t, r, "deezer", "chart", "--country", "fr", "-i"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if title != "mock chart: fr" || rows != 3 {
			t.Errorf("unexpected viewer call %q with %d rows", title, rows)
		}
		if out.Len() != 0 {
			t.Errorf("expected nothing on stdout, got %s", out.String())
		}
	})
}

func TestSpotifyCommands(t *testing.T) {
	t.Run("Without Credentials", func(t *testing.T) {
		r, _ := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{}})

		err := run(t, r, "spotify", "playlist", "37i9dQZF1DXcBWIGoYBM5M")
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Playlist Table", func(t *testing.T) {
		playlists := &tu.MockPlaylistProvider{Records: []table.Record{
			{table.F("track_name", table.Text("Da Funk")), table.F("popularity", table.Number(61))},
			{table.F("track_name", table.Text("Around the World")), table.F("popularity", table.Number(75))},
		}}
		r, out := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{}, Playlists: playlists})

		if err := run(t, r, "spotify", "playlist", "--rank-by", "popularity", "--format", "csv", "pl1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if playlists.LastID != "pl1" || playlists.LastLimit != 100 {
			t.Errorf("expected pl1 with default limit 100, got %s/%d", playlists.LastID, playlists.LastLimit)
		}

		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		if lines[1] != "Around the World,75" {
			t.Errorf("expected most popular first, got %s", lines[1])
		}
	})

	t.Run("Provider Error", func(t *testing.T) {
		playlists := &tu.MockPlaylistProvider{Err: &shared.HTTPError{Method: "GET", URL: "playlists/x/tracks", StatusCode: 404}}
		r, _ := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{}, Playlists: playlists})

		err := run(t, r, "spotify", "playlist", "x")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestConfigCommands(t *testing.T) {
	t.Run("Init Writes Example", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "config.toml")
		r, out := quietRunner(RunnerOpts{Catalog: &tu.MockCatalog{}})

		if err := run(t, r, "config", "init", "--path", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "[credentials.spotify]") {
			t.Error("expected example config content")
		}
		if !strings.Contains(out.String(), path) {
			t.Errorf("expected path in output, got %s", out.String())
		}

		if err := run(t, r, "config", "init", "--path", path); err == nil {
			t.Error("expected error when the file exists")
		}
	})

	t.Run("Show Masks Secret", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Credentials.Spotify.ClientSecret = "hunter2"
		r, out := quietRunner(RunnerOpts{Config: config, Catalog: &tu.MockCatalog{}, Playlists: &tu.MockPlaylistProvider{}})

		if err := run(t, r, "config", "show"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(out.String(), "hunter2") {
			t.Error("expected secret to be masked")
		}
		if !strings.Contains(out.String(), "default_country") {
			t.Errorf("expected TOML output, got %s", out.String())
		}
	})
}

func TestRequestNames(t *testing.T) {
	req := request{source: "Deezer", command: "tracks", query: "AC/DC: Back in Black"}

	if got := req.baseName(); got != "deezer_tracks_ac-dc-back-in-black" {
		t.Errorf("unexpected base name %s", got)
	}
	if got := req.title(); got != "Deezer tracks: AC/DC: Back in Black" {
		t.Errorf("unexpected title %s", got)
	}
	if got := (request{source: "Deezer", command: "genres"}).baseName(); got != "deezer_genres" {
		t.Errorf("unexpected base name %s", got)
	}
}
