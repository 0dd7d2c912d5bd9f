package server

import "net/http"

// MetaHandler serves the service banner and health probe.
type MetaHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *MetaHandler) Routes() []string {
	return []string{"/{$}", "/health"}
}

func (h *MetaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path == "/health" {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "spotifeel backend running",
		"try":     []string{"/health", "/auth/login", "/user/me", "/user/top-tracks"},
	})
}
