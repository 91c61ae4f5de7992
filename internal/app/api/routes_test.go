package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/xbot-api/internal/config"
	"github.com/magabrotheeeer/xbot-api/internal/metrics"
)

func newTestRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	cfg := &config.Config{RateLimit: config.RateLimit{RPS: 100, Burst: 100}}
	r := chi.NewRouter()
	RegisterRoutes(r, logger, cfg, metrics.New(prometheus.NewRegistry()), Services{})
	return r
}

func TestRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root", http.MethodGet, "/", http.StatusOK, "Bem-vindo"},
		{"info", http.MethodGet, "/info", http.StatusOK, `"version":"1.0.0"`},
		{"health without checks", http.MethodGet, "/health", http.StatusOK, `"status":"ok"`},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK, ""},
		{"swagger spec", http.MethodGet, "/docs/doc.json", http.StatusOK, "Reborn XBot API"},
		{"me requires token", http.MethodGet, "/users/me", http.StatusUnauthorized, `"detail"`},
		{"send-message requires token", http.MethodPost, "/send-message", http.StatusUnauthorized, `"detail"`},
		{"resume requires token", http.MethodGet, "/resumes/alice", http.StatusUnauthorized, `"detail"`},
		{"search requires token", http.MethodGet, "/recruitment/search?q=go", http.StatusUnauthorized, `"detail"`},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.True(t, strings.Contains(rr.Body.String(), tt.wantBody),
					"response body should contain %s, got %s", tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestRoutes_CORS(t *testing.T) {
	router := newTestRouter()

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/register", nil)
		req.Header.Set("Origin", "https://app.reborn.dev")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Less(t, rr.Code, http.StatusMultipleChoices)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("simple request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/info", nil)
		req.Header.Set("Origin", "https://app.reborn.dev")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}
