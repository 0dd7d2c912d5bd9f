// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/spotifeel/internal/models"
	"github.com/desertthunder/spotifeel/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Upper bound on any single upstream call.
	requestTimeout = 20 * time.Second
)

// Read-only scopes requested during login.
var spotifyScopes = []string{
	"user-top-read",
	"user-library-read",
	"user-read-recently-played",
}

// UpstreamAuthError reports a non-2xx response from the token endpoint during
// code exchange or refresh, preserving status and body for diagnostics.
type UpstreamAuthError struct {
	Status int
	Body   []byte
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("token endpoint returned status %d: %s", e.Status, e.Body)
}

// UpstreamError reports a non-2xx response from a proxied data call.
type UpstreamError struct {
	Status int
	Body   []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("spotify API error: status %d: %s", e.Status, e.Body)
}

type followers struct {
	Total int `json:"total"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Artists      []SpotifyArtist `json:"artists"`
	Album        SpotifyAlbum    `json:"album"`
	DurationMS   int             `json:"duration_ms"`
	Explicit     bool            `json:"explicit"`
	Popularity   int             `json:"popularity"`
	ExternalURLs externalURLs    `json:"external_urls"`
	URI          string          `json:"uri"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Genres       []string       `json:"genres"`
	Popularity   int            `json:"popularity"`
	Followers    followers      `json:"followers"`
	Images       []SpotifyImage `json:"images"`
	ExternalURLs externalURLs   `json:"external_urls"`
	URI          string         `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ReleaseDate string         `json:"release_date"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyPlayHistory represents one entry in the recently-played list.
type SpotifyPlayHistory struct {
	PlayedAt string       `json:"played_at"`
	Track    SpotifyTrack `json:"track"`
}

// SpotifyTopTracks represents a paginated top-tracks response.
type SpotifyTopTracks struct {
	Items []SpotifyTrack `json:"items"`
	Total int            `json:"total"`
	Limit int            `json:"limit"`
}

// SpotifyTopArtists represents a paginated top-artists response.
type SpotifyTopArtists struct {
	Items []SpotifyArtist `json:"items"`
	Total int             `json:"total"`
	Limit int             `json:"limit"`
}

// SpotifyRecentlyPlayed represents a recently-played response.
type SpotifyRecentlyPlayed struct {
	Items []SpotifyPlayHistory `json:"items"`
	Limit int                  `json:"limit"`
}

// SpotifyService implements the [Service] interface for Spotify API interactions.
// Uses [oauth2] for the authorization-code grant and a plain bearer client for
// proxied data calls.
type SpotifyService struct {
	config     *oauth2.Config
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("missing client_id in credentials")
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("missing client_secret in credentials")
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		return nil, fmt.Errorf("missing redirect_uri in credentials")
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
			// Spotify expects base64(client_id:client_secret) Basic auth.
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    spotifyBaseURL,
	}, nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// LoginURL returns the OAuth2 authorization URL for user login.
//
// The show_dialog flag forces the consent screen even for returning users.
func (s *SpotifyService) LoginURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange trades an authorization code for a token record via the
// authorization_code grant.
func (s *SpotifyService) Exchange(ctx context.Context, code string) (*models.TokenRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	token, err := s.config.Exchange(context.WithValue(ctx, oauth2.HTTPClient, s.httpClient), code)
	if err != nil {
		return nil, mapTokenError(err)
	}

	return recordFromToken(token), nil
}

// Refresh obtains a fresh token record via the refresh_token grant.
//
// The oauth2 transport carries the prior refresh token forward when the
// response omits one, so the returned record is always complete.
func (s *SpotifyService) Refresh(ctx context.Context, refreshToken string) (*models.TokenRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	source := s.config.TokenSource(
		context.WithValue(ctx, oauth2.HTTPClient, s.httpClient),
		&oauth2.Token{RefreshToken: refreshToken},
	)

	token, err := source.Token()
	if err != nil {
		return nil, mapTokenError(err)
	}

	return recordFromToken(token), nil
}

// Get performs an authenticated GET against the Spotify Web API and returns
// the raw JSON body.
func (s *SpotifyService) Get(ctx context.Context, accessToken, path string, params url.Values) ([]byte, error) {
	apiURL := s.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUpstreamUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: body}
	}

	return body, nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context, accessToken string) (*SpotifyUser, error) {
	body, err := s.Get(ctx, accessToken, "/me", nil)
	if err != nil {
		return nil, err
	}

	var user SpotifyUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}

	return &user, nil
}

// recordFromToken converts an [oauth2.Token] into the persisted record shape.
func recordFromToken(token *oauth2.Token) *models.TokenRecord {
	record := &models.TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		ExpiresIn:    int(token.ExpiresIn),
	}

	if scope, ok := token.Extra("scope").(string); ok {
		record.Scope = scope
	}

	return record
}

// mapTokenError converts oauth2 retrieval failures into the service's error
// taxonomy, keeping status and body when the endpoint answered.
func mapTokenError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		return &UpstreamAuthError{Status: status, Body: retrieveErr.Body}
	}

	return fmt.Errorf("%w: %v", shared.ErrUpstreamUnreachable, err)
}
