package store

import (
	"context"

	"github.com/centipy/palette-server/internal/domain"
)

// SessionStore persists palette editing sessions.
type SessionStore interface {
	SaveSession(ctx context.Context, rec *domain.SessionRecord) error
	GetSession(ctx context.Context, id string) (*domain.SessionRecord, error)
	DeleteSession(ctx context.Context, id string) error
	CountSessions(ctx context.Context) (int, error)
	Close() error
}

// FavoriteStore persists saved palettes.
type FavoriteStore interface {
	CreateFavorite(ctx context.Context, f *domain.Favorite) error
	GetFavorite(ctx context.Context, id string) (*domain.Favorite, error)
	GetFavoritesByIDs(ctx context.Context, ids []string) ([]*domain.Favorite, error)
	ListFavorites(ctx context.Context, limit, offset int) ([]*domain.Favorite, int, error)
	UpdateFavorite(ctx context.Context, f *domain.Favorite) error
	DeleteFavorite(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// EventEmitter is the interface for emitting SSE events.
type EventEmitter interface {
	Emit(event any)
}

// NoopEmitter is a no-op implementation of EventEmitter for testing.
type NoopEmitter struct{}

// Emit implements EventEmitter.Emit as a no-op.
func (NoopEmitter) Emit(_ any) {}

// NewNoopEmitter creates a new no-op emitter for testing.
func NewNoopEmitter() EventEmitter { return NoopEmitter{} }

// SearchIndexer keeps the favorites search index in sync with the store.
type SearchIndexer interface {
	IndexFavorite(ctx context.Context, f *domain.Favorite) error
	DeleteFavorite(ctx context.Context, id string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexFavorite is a no-op.
func (NoopSearchIndexer) IndexFavorite(context.Context, *domain.Favorite) error { return nil }

// DeleteFavorite is a no-op.
func (NoopSearchIndexer) DeleteFavorite(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer { return NoopSearchIndexer{} }
