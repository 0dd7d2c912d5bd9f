package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spotifeel/internal/shared"
	"golang.org/x/time/rate"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := shared.NewLogger(&buf)

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("middleware should not alter the response, got %d", rec.Code)
	}

	out := buf.String()
	if !strings.Contains(out, "/health") || !strings.Contains(out, "418") {
		t.Errorf("expected path and status in log output, got %q", out)
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(rate.NewLimiter(rate.Limit(0), 1))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("Limits Auth Routes", func(t *testing.T) {
		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
		if first.Code != http.StatusOK {
			t.Errorf("burst request should pass, got %d", first.Code)
		}

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/auth/login", nil))
		if second.Code != http.StatusTooManyRequests {
			t.Errorf("expected 429 after burst, got %d", second.Code)
		}
	})

	t.Run("Data Routes Unlimited", func(t *testing.T) {
		for range 5 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/me", nil))
			if rec.Code != http.StatusOK {
				t.Errorf("data route should not be limited, got %d", rec.Code)
			}
		}
	})
}

func TestBasicRouter(t *testing.T) {
	router := NewBasicRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Wrapped", "true")
			next.ServeHTTP(w, r)
		})
	})
	router.Handler(&MetaHandler{})

	t.Run("Registers All Handler Routes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}

		if rec.Header().Get("X-Wrapped") != "true" {
			t.Error("middleware should wrap registered handlers")
		}
	})

	t.Run("Method Filtering", func(t *testing.T) {
		router.Handle(http.MethodGet, "/only-get", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/only-get", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("Root Banner", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(rec.Body.String(), "spotifeel backend running") {
			t.Errorf("expected banner body, got %s", rec.Body.String())
		}
	})
}
