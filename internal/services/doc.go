// Package services defines the [Service] interface for the Spotify upstream and implements it with [SpotifyService].
//
// # Service Interface
//
// [OAuthClient] covers the authorization-code grant: building the login URL,
// exchanging a code for a [models.TokenRecord], and refreshing an access
// token. [Gateway] covers authorized read-only GETs against the Web API.
// [Service] combines both so handlers depend on one abstraction.
//
// # Spotify Implementation
//
// [SpotifyService] uses [oauth2.Config] against the accounts.spotify.com
// endpoints with client credentials sent via HTTP Basic authorization.
//
// Proxied data calls attach a Bearer access token and a 20 second timeout.
// Nothing is retried: a failed call surfaces immediately to the caller.
//
// # Error Handling
//
// Upstream failures keep enough detail for diagnosis:
//   - [UpstreamAuthError] : non-2xx from the token endpoint, with status and body
//   - [UpstreamError] : non-2xx from a proxied data call, with status and body
//   - [shared.ErrUpstreamUnreachable] : network failure or timeout
package services
