package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/centipy/palette-server/internal/api"
	"github.com/centipy/palette-server/internal/config"
	"github.com/centipy/palette-server/internal/logger"
	"github.com/centipy/palette-server/internal/ratelimit"
	"github.com/centipy/palette-server/internal/service"
)

// RateLimiterHandle wraps the per-client limiter with Shutdownable. The
// embedded limiter is nil when limiting is disabled.
type RateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *RateLimiterHandle) Shutdown() error {
	if h.KeyedRateLimiter == nil {
		return nil
	}
	return h.KeyedRateLimiter.Shutdown()
}

// ProvideRateLimiter provides the per-IP API rate limiter.
func ProvideRateLimiter(i do.Injector) (*RateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.RateLimit.Enabled {
		log.Info("Rate limiting disabled by configuration")
		return &RateLimiterHandle{}, nil
	}

	log.Info("Rate limiting enabled", "rps", cfg.RateLimit.RPS, "burst", cfg.RateLimit.Burst)
	return &RateLimiterHandle{KeyedRateLimiter: ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	sessionHandle := do.MustInvoke[*SessionStoreHandle](i)
	favoriteHandle := do.MustInvoke[*FavoriteStoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	limiterHandle := do.MustInvoke[*RateLimiterHandle](i)

	services := &api.Services{
		Color:    do.MustInvoke[*service.ColorService](i),
		Palette:  do.MustInvoke[*service.PaletteService](i),
		Favorite: do.MustInvoke[*service.FavoriteService](i),
	}

	infra := api.Infra{
		Sessions:  sessionHandle.Store,
		Favorites: favoriteHandle.Store,
		Search:    indexHandle.SearchIndex,
		SSE:       sseHandle.Manager,
	}

	handler := api.NewServer(services, infra, api.Options{
		Version:     Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimiter: limiterHandle.KeyedRateLimiter,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
