// Package services implements the music API clients behind the [Catalog] and [PlaylistProvider] interfaces.
//
// # Deezer
//
// [DeezerService] talks to the public Deezer API. No authentication is needed.
// Each call issues one GET and returns the decoded JSON body as a [mapper.Object];
// numbers are kept as [encoding/json.Number].
//
// Deezer reports some failures with status 200 and an "error" object in the body.
// Those are returned as [shared.APIError]. Non-2xx responses are returned as [shared.HTTPError].
//
// # Spotify
//
// [SpotifyService] uses the client-credentials flow ([clientcredentials.Config]) so only public
// playlists are reachable. Playlist items are read page by page through [paginator.Collect].
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrMissingCredentials] : client_id or client_secret not configured
//   - [shared.ErrMissingArgument] : empty playlist id
//   - [shared.HTTPError] : non-2xx response, including 429 (never retried)
//   - [shared.APIError] : error object in a Deezer response body
package services
