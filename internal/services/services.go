// package services defines interfaces for the upstream music streaming API
package services

import (
	"context"
	"net/url"

	"github.com/desertthunder/spotifeel/internal/models"
)

// OAuthClient defines the authorization-code grant operations against the
// upstream authorization server.
type OAuthClient interface {
	// LoginURL constructs the authorization endpoint URL for the given CSRF
	// state token. No network call, no errors.
	LoginURL(state string) string

	// Exchange trades an authorization code for a token record.
	Exchange(ctx context.Context, code string) (*models.TokenRecord, error)

	// Refresh obtains a new token record from a refresh token. The caller
	// carries forward the prior refresh token when the response omits one.
	Refresh(ctx context.Context, refreshToken string) (*models.TokenRecord, error)
}

// Gateway defines authorized read-only access to the upstream data API.
type Gateway interface {
	// Get forwards a GET to the upstream API with bearer authorization and
	// returns the raw JSON body.
	Get(ctx context.Context, accessToken, path string, params url.Values) ([]byte, error)

	// UserProfile retrieves the authenticated user's profile.
	UserProfile(ctx context.Context, accessToken string) (*SpotifyUser, error)
}

// Service combines OAuth and data access for a music streaming provider.
type Service interface {
	OAuthClient
	Gateway

	// Name returns the name of the provider (e.g., "Spotify")
	Name() string
}
