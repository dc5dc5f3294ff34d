// Deezer API implementation of [Catalog]
//
// Endpoint reference: https://developers.deezer.com/api
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
)

const (
	deezerBaseURL = "https://api.deezer.com"

	// DefaultLimit is the result count requested when the caller passes limit <= 0.
	DefaultLimit = 25
	// DefaultCountry is the chart used when no country code is given.
	DefaultCountry = "tr"
)

// DeezerService implements [Catalog] for the public Deezer API.
//
// Every method issues exactly one GET. Failures are returned, never retried.
type DeezerService struct {
	baseURL    string
	httpClient *http.Client
}

// NewDeezerService creates a Deezer client. An empty baseURL uses the public API and a
// nil client uses [http.DefaultClient].
func NewDeezerService(baseURL string, client *http.Client) *DeezerService {
	if baseURL == "" {
		baseURL = deezerBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &DeezerService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

func (d *DeezerService) Name() string {
	return "Deezer"
}

// doRequest performs a GET and decodes the JSON body.
//
// Numbers are decoded as [json.Number] so large IDs survive intact.
func (d *DeezerService) doRequest(ctx context.Context, endpoint string, params url.Values) (mapper.Object, error) {
	apiURL := d.baseURL + endpoint
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &shared.HTTPError{Method: req.Method, URL: apiURL, StatusCode: resp.StatusCode}
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var body mapper.Object
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if apiErr := bodyError(body); apiErr != nil {
		return nil, apiErr
	}

	return body, nil
}

// bodyError extracts the {"error": {...}} object Deezer sends with status 200.
func bodyError(body mapper.Object) *shared.APIError {
	errObj := mapper.Child(body, "error")
	if errObj == nil {
		return nil
	}

	apiErr := &shared.APIError{
		Type:    mapper.Get(errObj, "type").String(),
		Message: mapper.Get(errObj, "message").String(),
	}
	if code, ok := mapper.Get(errObj, "code").Float(); ok {
		apiErr.Code = int(code)
	}
	return apiErr
}

func searchParams(query string, limit int) url.Values {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
	}
}

// SearchTracks calls GET /search/track?q=&limit=.
func (d *DeezerService) SearchTracks(ctx context.Context, query string, limit int) (mapper.Object, error) {
	return d.doRequest(ctx, "/search/track", searchParams(query, limit))
}

// SearchArtists calls GET /search/artist?q=&limit=.
func (d *DeezerService) SearchArtists(ctx context.Context, query string, limit int) (mapper.Object, error) {
	return d.doRequest(ctx, "/search/artist", searchParams(query, limit))
}

// SearchAlbums calls GET /search/album?q=&limit=.
func (d *DeezerService) SearchAlbums(ctx context.Context, query string, limit int) (mapper.Object, error) {
	return d.doRequest(ctx, "/search/album", searchParams(query, limit))
}

// CountryChart calls GET /chart/{country}/tracks?limit=.
func (d *DeezerService) CountryChart(ctx context.Context, country string, limit int) (mapper.Object, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		country = DefaultCountry
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	endpoint := fmt.Sprintf("/chart/%s/tracks", url.PathEscape(country))
	return d.doRequest(ctx, endpoint, url.Values{"limit": {strconv.Itoa(limit)}})
}

// Genres calls GET /genre.
func (d *DeezerService) Genres(ctx context.Context) (mapper.Object, error) {
	return d.doRequest(ctx, "/genre", nil)
}

// GenresTable fetches the genre list and builds a genre_id/genre_name table.
func (d *DeezerService) GenresTable(ctx context.Context) (*table.Table, error) {
	body, err := d.Genres(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.GenresTable(body), nil
}

// Get performs a GET to path (which may carry a query string) relative to the API root.
func (d *DeezerService) Get(ctx context.Context, path string) (mapper.Object, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return d.doRequest(ctx, path, nil)
}
