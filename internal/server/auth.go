package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotifeel/internal/repositories"
	"github.com/desertthunder/spotifeel/internal/services"
	"github.com/desertthunder/spotifeel/internal/shared"
)

// AuthHandler implements the OAuth2 authorization-code flow endpoints.
// Implements the [Handler] interface for registration with a [Router].
//
// State sequence: /auth/login issues a short-lived state cookie and redirects
// to the upstream consent page; /auth/callback validates state, exchanges the
// code, persists the token record keyed by the upstream user id, and issues
// the session cookie; /auth/refresh and /auth/logout operate on the session.
type AuthHandler struct {
	service  services.Service
	store    *repositories.TokenStore
	resolver *SessionResolver
	logger   *log.Logger
}

// NewAuthHandler creates a new [AuthHandler].
func NewAuthHandler(service services.Service, store *repositories.TokenStore, logger *log.Logger) *AuthHandler {
	return &AuthHandler{
		service:  service,
		store:    store,
		resolver: NewSessionResolver(store),
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *AuthHandler) Routes() []string {
	return []string{"/auth/login", "/auth/callback", "/auth/refresh", "/auth/logout"}
}

// ServeHTTP dispatches auth flow requests by path.
func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/auth/login":
		h.login(w, r)
	case "/auth/callback":
		h.callback(w, r)
	case "/auth/refresh":
		h.refresh(w, r)
	case "/auth/logout":
		h.logout(w, r)
	default:
		http.NotFound(w, r)
	}
}

// login issues a fresh CSRF state token and redirects to the consent page.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		h.logger.Error("failed to generate state token", "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not start login")
		return
	}

	setStateCookie(w, state)
	http.Redirect(w, r, h.service.LoginURL(state), http.StatusFound)
}

// callback completes the authorization-code exchange.
//
// The state cookie is consumed here whether or not the exchange succeeds.
func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if upstreamErr := query.Get("error"); upstreamErr != "" {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("Spotify auth error: %s", upstreamErr))
		return
	}

	code := query.Get("code")
	state := query.Get("state")
	if code == "" || state == "" {
		writeDetail(w, http.StatusBadRequest, fmt.Sprintf("%v: code/state", shared.ErrCallbackInput))
		return
	}

	stateCookie, err := r.Cookie(StateCookie)
	if err != nil || stateCookie.Value != state {
		writeDetail(w, http.StatusBadRequest, shared.ErrStateMismatch.Error())
		return
	}

	record, err := h.service.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", "error", err)
		h.writeUpstream(w, err)
		return
	}

	profile, err := h.service.UserProfile(r.Context(), record.AccessToken)
	if err != nil || profile.ID == "" {
		h.logger.Error("could not read user id from profile", "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not read Spotify user id from /me")
		return
	}

	if err := h.store.Save(profile.ID, record); err != nil {
		h.logger.Error("failed to persist token record", "user", profile.ID, "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not persist token")
		return
	}

	h.logger.Info("user authenticated", "user", profile.ID)

	clearStateCookie(w)
	setSessionCookie(w, profile.ID)
	http.Redirect(w, r, "/user/me", http.StatusFound)
}

// refresh exchanges the stored refresh token for a fresh record.
//
// The previous refresh token is carried forward when the upstream response
// omits one; the access token is overwritten unconditionally.
func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	uid, err := h.resolver.UserID(r)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	record, err := h.store.Load(uid)
	if err != nil || record.RefreshToken == "" {
		writeDetail(w, http.StatusUnauthorized, fmt.Sprintf("%v: login again", shared.ErrNoRefreshToken))
		return
	}

	refreshed, err := h.service.Refresh(r.Context(), record.RefreshToken)
	if err != nil {
		h.logger.Error("token refresh failed", "user", uid, "error", err)
		h.writeUpstream(w, err)
		return
	}

	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = record.RefreshToken
	}

	if err := h.store.Save(uid, refreshed); err != nil {
		h.logger.Error("failed to persist refreshed record", "user", uid, "error", err)
		writeDetail(w, http.StatusInternalServerError, "could not persist token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// logout destroys the session and the persisted record.
//
// Deleting an absent record is a defined no-op, so logout without a session
// still succeeds.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	if uid, err := h.resolver.UserID(r); err == nil {
		if existed, err := h.store.Delete(uid); err != nil {
			h.logger.Warn("failed to delete token record", "user", uid, "error", err)
		} else if existed {
			h.logger.Info("user logged out", "user", uid)
		}
	}

	clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// writeUpstream maps upstream auth failures onto responses, preserving status
// and body for diagnosis.
func (h *AuthHandler) writeUpstream(w http.ResponseWriter, err error) {
	var authErr *services.UpstreamAuthError
	if errors.As(err, &authErr) {
		writeDetail(w, http.StatusBadGateway,
			fmt.Sprintf("token endpoint returned %d: %s", authErr.Status, authErr.Body))
		return
	}

	if errors.Is(err, shared.ErrUpstreamUnreachable) {
		writeDetail(w, http.StatusBadGateway, err.Error())
		return
	}

	writeDetail(w, http.StatusInternalServerError, err.Error())
}
