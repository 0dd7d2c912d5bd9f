package server

import (
	"fmt"
	"net/http"

	"github.com/desertthunder/spotifeel/internal/repositories"
	"github.com/desertthunder/spotifeel/internal/shared"
)

const (
	// StateCookie carries the CSRF state token between login and callback.
	StateCookie = "spotify_auth_state"
	// SessionCookie carries the Spotify user id identifying the browser session.
	SessionCookie = "spotifeel_uid"

	stateCookieMaxAge   = 300
	sessionCookieMaxAge = 60 * 60 * 24 * 30
)

// SessionResolver turns an inbound request into an authorized access token,
// failing at the precise stage that is missing. It is the single place the
// 401 taxonomy lives; handlers never read session cookies themselves.
type SessionResolver struct {
	store *repositories.TokenStore
}

// NewSessionResolver creates a [SessionResolver] backed by the given token store.
func NewSessionResolver(store *repositories.TokenStore) *SessionResolver {
	return &SessionResolver{store: store}
}

// UserID extracts the Spotify user id from the session cookie.
//
// A missing cookie yields [shared.ErrNotAuthenticated]. The cookie value is
// not cryptographically verified; possession is sufficient within this
// backend.
func (s *SessionResolver) UserID(r *http.Request) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return "", fmt.Errorf("%w: go to /auth/login", shared.ErrNotAuthenticated)
	}
	return cookie.Value, nil
}

// AccessToken resolves the request's session to a stored access token.
//
// Fails with [shared.ErrNotAuthenticated] when no session cookie is present,
// and with [shared.ErrTokenMissing] when no usable record is stored for the
// user. No expiry check happens here; an expired token surfaces as an
// upstream 401 on the next proxied call.
func (s *SessionResolver) AccessToken(r *http.Request) (string, string, error) {
	uid, err := s.UserID(r)
	if err != nil {
		return "", "", err
	}

	record, err := s.store.Load(uid)
	if err != nil || !record.Valid() {
		return uid, "", fmt.Errorf("%w for user %s: login again", shared.ErrTokenMissing, uid)
	}

	return uid, record.AccessToken, nil
}

func setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     StateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func setSessionCookie(w http.ResponseWriter, userID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    userID,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
