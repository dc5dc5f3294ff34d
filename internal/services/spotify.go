// Spotify API implementation of [PlaylistProvider]
//
// The client-credentials token exchange is handled by [clientcredentials.Config] and the
// Web API calls by github.com/zmb3/spotify/v2.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/desertthunder/tracktab/internal/mapper"
	"github.com/desertthunder/tracktab/internal/paginator"
	"github.com/desertthunder/tracktab/internal/shared"
	"github.com/desertthunder/tracktab/internal/table"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// DefaultPlaylistLimit is the number of playlist tracks collected when limit <= 0.
const DefaultPlaylistLimit = 100

// SpotifyService implements [PlaylistProvider] with app-only (client credentials) access.
type SpotifyService struct {
	client *spotify.Client
	status *statusTransport
}

// NewSpotifyService creates a Spotify client from "client_id" and "client_secret".
//
// "token_url" and "base_url" override the accounts and Web API endpoints. The token is
// fetched lazily on the first request and refreshed by the oauth2 transport.
func NewSpotifyService(ctx context.Context, credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	tokenURL, ok := credentials["token_url"]
	if !ok || tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenURL,
	}

	var opts []spotify.ClientOption
	if baseURL := credentials["base_url"]; baseURL != "" {
		opts = append(opts, spotify.WithBaseURL(strings.TrimRight(baseURL, "/")+"/"))
	}

	httpClient := config.Client(ctx)
	status := &statusTransport{Base: httpClient.Transport}
	httpClient.Transport = status

	return &SpotifyService{client: spotify.New(httpClient, opts...), status: status}, nil
}

// statusTransport records the status of the last Web API response that was not a success.
// The client only decodes JSON error bodies, so this keeps the status for empty or HTML ones.
type statusTransport struct {
	Base http.RoundTripper

	last atomic.Int64
}

func (t *statusTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.last.Store(0)
	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		t.last.Store(int64(resp.StatusCode))
	}
	return resp, nil
}

// Status returns the last failed status code, or 0.
func (t *statusTransport) Status() int {
	if t == nil {
		return 0
	}
	return int(t.last.Load())
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// PlaylistItems collects up to limit tracks from a playlist, skipping empty slots.
func (s *SpotifyService) PlaylistItems(ctx context.Context, playlistID string, limit int) (*paginator.Result, error) {
	playlistID = strings.TrimSpace(playlistID)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: playlist id", shared.ErrMissingArgument)
	}
	if limit <= 0 {
		limit = DefaultPlaylistLimit
	}

	src := &playlistSource{client: s.client, status: s.status, id: spotify.ID(playlistID)}
	return paginator.Collect(ctx, src, limit, mapper.PlaylistTrack)
}

// PlaylistTracks collects playlist tracks into a table.
func (s *SpotifyService) PlaylistTracks(ctx context.Context, playlistID string, limit int) (*table.Table, error) {
	res, err := s.PlaylistItems(ctx, playlistID, limit)
	if err != nil {
		return nil, err
	}
	return table.Build(res.Records), nil
}

// playlistSource adapts the playlist items endpoint to [paginator.Source].
type playlistSource struct {
	client *spotify.Client
	status *statusTransport
	id     spotify.ID
}

func (p *playlistSource) endpoint() string {
	return fmt.Sprintf("playlists/%s/tracks", p.id)
}

func (p *playlistSource) First(ctx context.Context, pageSize int) (*paginator.Page[spotify.PlaylistItem], error) {
	page, err := p.client.GetPlaylistItems(ctx, p.id, spotify.Limit(pageSize))
	if err != nil {
		return nil, p.statusError(err)
	}
	return itemPage(page), nil
}

func (p *playlistSource) Next(ctx context.Context, prev *paginator.Page[spotify.PlaylistItem]) (*paginator.Page[spotify.PlaylistItem], error) {
	cur, ok := prev.Cursor.(*spotify.PlaylistItemPage)
	if !ok || cur == nil {
		return nil, fmt.Errorf("%w: page has no playlist cursor", shared.ErrInvalidInput)
	}

	// NextPage decodes in place; work on a copy so the previous page stays intact.
	next := *cur
	next.Items = nil
	if err := p.client.NextPage(ctx, &next); err != nil {
		if errors.Is(err, spotify.ErrNoMorePages) {
			return &paginator.Page[spotify.PlaylistItem]{}, nil
		}
		return nil, p.statusError(err)
	}
	return itemPage(&next), nil
}

func itemPage(page *spotify.PlaylistItemPage) *paginator.Page[spotify.PlaylistItem] {
	return &paginator.Page[spotify.PlaylistItem]{
		Items:   page.Items,
		HasNext: page.Next != "",
		Cursor:  page,
	}
}

// statusError turns a failed token exchange or Web API response into a [shared.HTTPError].
// Transport failures without a response are wrapped as they are.
func (p *playlistSource) statusError(err error) error {
	var apiErr spotify.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return fmt.Errorf("spotify: %s: %w", apiErr.Message, &shared.HTTPError{
			Method:     http.MethodGet,
			URL:        p.endpoint(),
			StatusCode: apiErr.Status,
		})
	}

	var tokenErr *oauth2.RetrieveError
	if errors.As(err, &tokenErr) && tokenErr.Response != nil {
		tokenURL := "token"
		if req := tokenErr.Response.Request; req != nil {
			tokenURL = req.URL.String()
		}
		return fmt.Errorf("spotify token: %w", &shared.HTTPError{
			Method:     http.MethodPost,
			URL:        tokenURL,
			StatusCode: tokenErr.Response.StatusCode,
		})
	}

	if status := p.status.Status(); status != 0 {
		return fmt.Errorf("%v: %w", err, &shared.HTTPError{
			Method:     http.MethodGet,
			URL:        p.endpoint(),
			StatusCode: status,
		})
	}
	return fmt.Errorf("spotify request failed: %w", err)
}
