package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centipy/palette-server/internal/ratelimit"
	"github.com/centipy/palette-server/internal/search"
	"github.com/centipy/palette-server/internal/service"
	"github.com/centipy/palette-server/internal/sse"
	"github.com/centipy/palette-server/internal/store"
	"github.com/centipy/palette-server/internal/store/sqlite"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

// testEnvelope mirrors both envelope shapes for decoding in tests.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), "body: %s", resp.Body.String())
	assert.Equal(t, EnvelopeVersion, env.Version)
	return env
}

type testServer struct {
	*Server
	api        humatest.TestAPI
	sseManager *sse.Manager
}

type testOption func(*Options)

func withRateLimit(rps float64, burst int) testOption {
	return func(o *Options) { o.RateLimiter = ratelimit.New(rps, burst) }
}

// setupTestServer wires the full API over in-memory stores.
func setupTestServer(t *testing.T, opts ...testOption) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sessions, err := store.New("", time.Hour, logger)
	require.NoError(t, err)
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "favorites.db"), logger)
	require.NoError(t, err)
	index, err := search.NewSearchIndex(search.Options{Logger: logger})
	require.NoError(t, err)

	sseManager := sse.NewManager(logger)
	t.Cleanup(func() {
		_ = sseManager.Shutdown(context.Background())
		_ = index.Close()
		_ = db.Close()
		_ = sessions.Close()
	})

	rng := fixedRand(0.5)
	services := &Services{
		Color:    service.NewColorService(rng, nil, logger),
		Palette:  service.NewPaletteService(sessions, db, sseManager, nil, rng, logger),
		Favorite: service.NewFavoriteService(db, index, sseManager, nil, logger),
	}
	infra := Infra{Sessions: sessions, Favorites: db, Search: index, SSE: sseManager}

	options := Options{Version: "test"}
	for _, o := range opts {
		o(&options)
	}
	if options.RateLimiter != nil {
		t.Cleanup(options.RateLimiter.Stop)
	}

	s := NewServer(services, infra, options, logger)
	return &testServer{
		Server:     s,
		api:        humatest.Wrap(t, s.API()),
		sseManager: sseManager,
	}
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, statusHealthy, env.Data.Status)
	assert.Equal(t, "test", env.Data.Version)
	for _, name := range []string{"database", "sessions", "search", "sse"} {
		assert.Equal(t, statusHealthy, env.Data.Components[name].Status, name)
	}
	assert.Equal(t, "0 connected clients", env.Data.Components["sse"].Message)
}

func TestHealthCheck_Degraded(t *testing.T) {
	s := NewServer(&Services{}, Infra{}, Options{}, nil)
	api := humatest.Wrap(t, s.API())

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp)
	assert.Equal(t, statusDegraded, env.Data.Status)
	assert.Equal(t, "dev", env.Data.Version)
}

func TestRateLimit(t *testing.T) {
	ts := setupTestServer(t, withRateLimit(0.001, 2))

	for range 2 {
		resp := ts.api.Get("/api/v1/schemes", "X-Forwarded-For: 203.0.113.7")
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/schemes", "X-Forwarded-For: 203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "1", resp.Header().Get("Retry-After"))

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)

	// Other clients and the health endpoint are unaffected.
	resp = ts.api.Get("/api/v1/schemes", "X-Forwarded-For: 198.51.100.1")
	assert.Equal(t, http.StatusOK, resp.Code)
	resp = ts.api.Get("/health", "X-Forwarded-For: 203.0.113.7")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestCORSPreflight(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/sessions", nil)
	req.Header.Set("Origin", "https://palette.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestEventsRoute_ShutdownManager(t *testing.T) {
	ts := setupTestServer(t)
	require.NoError(t, ts.sseManager.Shutdown(context.Background()))

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := ts.api.Get("/health")
	env := decode[HealthResponse](t, resp)
	assert.Equal(t, statusUnhealthy, env.Data.Components["sse"].Status)
	assert.Equal(t, statusUnhealthy, env.Data.Status)
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded header ignored", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:5000", "10.0.0.2"},
		{"real ip header ignored", map[string]string{"X-Real-IP": "198.51.100.4"}, "10.0.0.2:5000", "10.0.0.2"},
		{"remote addr", nil, "192.0.2.9:41234", "192.0.2.9"},
		{"ipv6 remote", nil, "[2001:db8::1]:443", "2001:db8::1"},
		{"no port", nil, "192.0.2.9", "192.0.2.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, getClientIP(r))
		})
	}
}
