package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotifeel/internal/formatter"
	"github.com/desertthunder/spotifeel/internal/repositories"
	"github.com/desertthunder/spotifeel/internal/services"
	"github.com/desertthunder/spotifeel/internal/shared"
)

const (
	defaultLimit     = "20"
	defaultTimeRange = "medium_term"
)

// UserHandler proxies read-only data queries through the stored access token.
// Implements the [Handler] interface for registration with a [Router].
//
// Every route resolves the session first, then forwards a single GET to the
// upstream API. Upstream responses pass through unchanged unless the client
// asks for the simplified shape with ?simplified=true.
type UserHandler struct {
	service  services.Service
	resolver *SessionResolver
	logger   *log.Logger
}

// NewUserHandler creates a new [UserHandler].
func NewUserHandler(service services.Service, store *repositories.TokenStore, logger *log.Logger) *UserHandler {
	return &UserHandler{
		service:  service,
		resolver: NewSessionResolver(store),
		logger:   logger,
	}
}

// Routes returns the HTTP routes this handler serves. Each data query is
// reachable under /user/ and at the top level.
func (h *UserHandler) Routes() []string {
	return []string{
		"/user/me", "/user/top-tracks", "/user/top-artists", "/user/recently-played",
		"/me", "/top-tracks", "/top-artists", "/recently-played",
	}
}

// ServeHTTP dispatches data queries by path.
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, token, err := h.resolver.AccessToken(r)
	if err != nil {
		writeDetail(w, http.StatusUnauthorized, err.Error())
		return
	}

	switch strings.TrimPrefix(r.URL.Path, "/user") {
	case "/me":
		h.proxy(w, r, token, "/me", nil, "")
	case "/top-tracks":
		h.proxy(w, r, token, "/me/top/tracks", rangedParams(r), "tracks")
	case "/top-artists":
		h.proxy(w, r, token, "/me/top/artists", rangedParams(r), "artists")
	case "/recently-played":
		h.proxy(w, r, token, "/me/player/recently-played", limitParams(r), "plays")
	default:
		http.NotFound(w, r)
	}
}

// rangedParams collects limit and time_range for the top-item routes. Bounds
// are upstream-defined; values forward untouched.
func rangedParams(r *http.Request) url.Values {
	params := limitParams(r)
	timeRange := r.URL.Query().Get("time_range")
	if timeRange == "" {
		timeRange = defaultTimeRange
	}
	params.Set("time_range", timeRange)
	return params
}

func limitParams(r *http.Request) url.Values {
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		limit = defaultLimit
	}
	return url.Values{"limit": []string{limit}}
}

// proxy forwards one authorized GET and writes the upstream body back,
// optionally reduced to the simplified shape. No retries: a failed call is
// surfaced as-is.
func (h *UserHandler) proxy(w http.ResponseWriter, r *http.Request, token, path string, params url.Values, shape string) {
	body, err := h.service.Get(r.Context(), token, path, params)
	if err != nil {
		h.writeUpstream(w, err)
		return
	}

	if shape != "" && r.URL.Query().Get("simplified") == "true" {
		h.simplified(w, body, shape)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// simplified reduces the upstream body via the formatter helpers.
func (h *UserHandler) simplified(w http.ResponseWriter, body []byte, shape string) {
	var (
		items any
		err   error
	)

	switch shape {
	case "tracks":
		items, err = formatter.SimplifyTopTracks(body)
	case "artists":
		items, err = formatter.SimplifyTopArtists(body)
	case "plays":
		items, err = formatter.SimplifyRecentlyPlayed(body)
	}

	if err != nil {
		h.logger.Error("failed to simplify upstream response", "error", err)
		writeDetail(w, http.StatusBadGateway, "could not decode upstream response")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// writeUpstream surfaces proxied-call failures: non-2xx upstream responses
// pass through with their original status and body, unreachable upstreams
// map to 502.
func (h *UserHandler) writeUpstream(w http.ResponseWriter, err error) {
	var upstreamErr *services.UpstreamError
	if errors.As(err, &upstreamErr) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(upstreamErr.Status)
		w.Write(upstreamErr.Body)
		return
	}

	if errors.Is(err, shared.ErrUpstreamUnreachable) {
		writeDetail(w, http.StatusBadGateway, err.Error())
		return
	}

	h.logger.Error("proxied call failed", "error", err)
	writeDetail(w, http.StatusInternalServerError, err.Error())
}
