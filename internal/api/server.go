// Package api provides the HTTP API server and handlers for the palette
// server.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/centipy/palette-server/internal/ratelimit"
	"github.com/centipy/palette-server/internal/service"
	"github.com/centipy/palette-server/internal/sse"
	"github.com/centipy/palette-server/internal/store"
)

// Services groups the business logic services used by the API server.
type Services struct {
	Color    *service.ColorService
	Palette  *service.PaletteService
	Favorite *service.FavoriteService
}

// DocumentCounter reports the size of the search index.
type DocumentCounter interface {
	DocumentCount() (uint64, error)
}

// Infra groups the components the health endpoint checks.
type Infra struct {
	Sessions  store.SessionStore
	Favorites store.FavoriteStore
	Search    DocumentCounter
	SSE       *sse.Manager
}

// Options configures the HTTP surface.
type Options struct {
	Version     string
	CORSOrigins []string
	// RateLimiter throttles /api/v1 per client IP. Nil disables limiting.
	RateLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	services    *Services
	infra       Infra
	opts        Options
	router      *chi.Mux
	api         huma.API
	sseHandler  *sse.Handler
	rateLimiter *ratelimit.KeyedRateLimiter
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, infra Infra, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	s := &Server{
		services:    services,
		infra:       infra,
		opts:        opts,
		router:      chi.NewRouter(),
		rateLimiter: opts.RateLimiter,
		logger:      logger,
	}
	if infra.SSE != nil {
		s.sseHandler = sse.NewHandler(infra.SSE, logger)
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Palette API", opts.Version)
	humaConfig.Info.Description = "Color harmony generation, palette sessions, and saved favorites."
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for tests and OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(middleware.Compress(5))
	s.router.Use(languageMiddleware)
	if s.rateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
	}
}

// setupRoutes registers every operation.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerColorRoutes()
	s.registerPreviewRoutes()
	s.registerSessionRoutes()
	s.registerFavoriteRoutes()

	if s.sseHandler != nil {
		s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	}
}
