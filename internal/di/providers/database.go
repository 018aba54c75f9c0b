package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/centipy/palette-server/internal/config"
	"github.com/centipy/palette-server/internal/logger"
	"github.com/centipy/palette-server/internal/sse"
	"github.com/centipy/palette-server/internal/store"
	"github.com/centipy/palette-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// SessionStoreHandle wraps the Badger session store with shutdown capability.
type SessionStoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *SessionStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideSessionStore provides the Badger-backed session store.
func ProvideSessionStore(i do.Injector) (*SessionStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	path := cfg.Storage.SessionsDir()
	db, err := store.New(path, cfg.Session.TTL, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Session store initialized", "path", path, "ttl", cfg.Session.TTL)

	return &SessionStoreHandle{Store: db}, nil
}

// FavoriteStoreHandle wraps the SQLite favorites store with shutdown capability.
type FavoriteStoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *FavoriteStoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideFavoriteStore provides the SQLite favorites store.
func ProvideFavoriteStore(i do.Injector) (*FavoriteStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	path := cfg.Storage.FavoritesDB()
	db, err := sqlite.Open(path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Favorites database initialized", "path", path)

	return &FavoriteStoreHandle{Store: db}, nil
}
