// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/paginator"
	"github.com/desertthunder/tracktab/internal/table"
)

// MockCatalog is a test double for [services.Catalog]
//
// Every method returns Body (or Err) and records the last call.
type MockCatalog struct {
	Body mapper.Object
	Err  error

	LastMethod string
	LastQuery  string
	LastLimit  int
}

func (m *MockCatalog) record(method, query string, limit int) (mapper.Object, error) {
	m.LastMethod, m.LastQuery, m.LastLimit = method, query, limit
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Body, nil
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string, limit int) (mapper.Object, error) {
	return m.record("SearchTracks", query, limit)
}

func (m *MockCatalog) SearchArtists(ctx context.Context, query string, limit int) (mapper.Object, error) {
	return m.record("SearchArtists", query, limit)
}

func (m *MockCatalog) SearchAlbums(ctx context.Context, query string, limit int) (mapper.Object, error) {
	return m.record("SearchAlbums", query, limit)
}

func (m *MockCatalog) CountryChart(ctx context.Context, country string, limit int) (mapper.Object, error) {
	return m.record("CountryChart", country, limit)
}

func (m *MockCatalog) Genres(ctx context.Context) (mapper.Object, error) {
	return m.record("Genres", "", 0)
}

func (m *MockCatalog) Get(ctx context.Context, path string) (mapper.Object, error) {
	return m.record("Get", path, 0)
}

func (m *MockCatalog) Name() string { return "mock" }

// MockPlaylistProvider is a test double for [services.PlaylistProvider]
type MockPlaylistProvider struct {
	Records []table.Record
	Err     error

	LastID    string
	LastLimit int
}

func (m *MockPlaylistProvider) PlaylistItems(ctx context.Context, playlistID string, limit int) (*paginator.Result, error) {
	m.LastID, m.LastLimit = playlistID, limit
	if m.Err != nil {
		return nil, m.Err
	}
	return &paginator.Result{Records: m.Records, Fetches: 1, Stop: paginator.StopExhausted}, nil
}

func (m *MockPlaylistProvider) PlaylistTracks(ctx context.Context, playlistID string, limit int) (*table.Table, error) {
	res, err := m.PlaylistItems(ctx, playlistID, limit)
	if err != nil {
		return nil, err
	}
	return table.Build(res.Records), nil
}

func (m *MockPlaylistProvider) Name() string { return "mock" }

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

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// JSONServer is an [httptest.Server] that counts the requests it serves.
type JSONServer struct {
	*httptest.Server
	hits atomic.Int64
}

// Hits returns the number of requests served so far.
func (s *JSONServer) Hits() int {
	return int(s.hits.Load())
}

// NewJSONServer starts a server replying with status and body encoded as JSON.
// The server is closed when the test ends.
func NewJSONServer(t *testing.T, status int, body any) *JSONServer {
	t.Helper()
	srv := &JSONServer{}
	srv.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srv.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
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
