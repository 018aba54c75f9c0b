package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/centipy/palette-server/internal/color"
	"github.com/centipy/palette-server/internal/domain"
	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/id"
	"github.com/centipy/palette-server/internal/metrics"
	"github.com/centipy/palette-server/internal/palette"
	"github.com/centipy/palette-server/internal/search"
	"github.com/centipy/palette-server/internal/sse"
	"github.com/centipy/palette-server/internal/store"
	"github.com/centipy/palette-server/internal/swatch"
	"github.com/centipy/palette-server/internal/validation"
)

// Paging limits for favorite listings.
const (
	DefaultFavoriteLimit = 20
	MaxFavoriteLimit     = 100
)

// FavoriteIndex is the search side of favorites.
type FavoriteIndex interface {
	store.SearchIndexer
	IndexFavorites(ctx context.Context, favorites []*domain.Favorite) error
	Search(ctx context.Context, params search.Params) (*search.Result, error)
}

// FavoriteService manages saved palettes.
type FavoriteService struct {
	store     store.FavoriteStore
	index     FavoriteIndex
	emitter   store.EventEmitter
	metrics   metrics.Recorder
	validator *validation.Validator
	logger    *slog.Logger
}

// NewFavoriteService creates a favorite service. A nil index disables text
// search; listings still work.
func NewFavoriteService(
	favorites store.FavoriteStore,
	index FavoriteIndex,
	emitter store.EventEmitter,
	rec metrics.Recorder,
	logger *slog.Logger,
) *FavoriteService {
	if emitter == nil {
		emitter = store.NewNoopEmitter()
	}
	if rec == nil {
		rec = metrics.NewNoOpExporter()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &FavoriteService{
		store:     favorites,
		index:     index,
		emitter:   emitter,
		metrics:   rec,
		validator: validation.New(),
		logger:    logger,
	}
}

// CreateFavoriteRequest names a palette to save.
type CreateFavoriteRequest struct {
	Name   string   `json:"name" validate:"required,max=80"`
	Colors []string `json:"colors" validate:"min=3,max=8,dive,colorstr"`
}

// ListFavoritesRequest filters and pages a listing. An empty Query lists by
// recency.
type ListFavoritesRequest struct {
	Query     string
	MinColors int
	MaxColors int
	Limit     int
	Offset    int
}

// FavoriteList is one page of favorites.
type FavoriteList struct {
	Favorites []*domain.Favorite `json:"favorites"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// Create saves a palette. Colors may use any parseable notation and are
// stored as "#RRGGBB".
func (s *FavoriteService) Create(ctx context.Context, req CreateFavoriteRequest) (*domain.Favorite, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hexes := make([]string, len(req.Colors))
	for i, v := range req.Colors {
		c, ok := color.Parse(v)
		if !ok {
			return nil, domainerrors.InvalidColorf("cannot parse color %q at index %d", v, i)
		}
		hexes[i] = c.Hex()
	}

	favID, err := id.NewFavoriteID()
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate favorite ID")
	}

	fav := &domain.Favorite{ID: favID, Name: req.Name, Colors: hexes}
	fav.InitTimestamps()
	if hash, err := swatch.BlurHash(hexes); err != nil {
		s.logger.Warn("blurhash failed", "favorite_id", favID, "error", err)
	} else {
		fav.BlurHash = hash
	}

	if err := s.store.CreateFavorite(ctx, fav); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("favorite already exists")
		}
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to save favorite")
	}

	s.indexFavorite(ctx, fav)
	s.metrics.FavoriteSaved(ctx, len(hexes))
	s.emitter.Emit(sse.NewFavoriteCreatedEvent(fav))
	s.logger.Info("favorite saved", "favorite_id", fav.ID, "name", fav.Name, "colors", len(hexes))
	return fav, nil
}

// Get returns one favorite.
func (s *FavoriteService) Get(ctx context.Context, favoriteID string) (*domain.Favorite, error) {
	if !id.IsFavoriteID(favoriteID) {
		return nil, domainerrors.NotFoundf("favorite %s not found", favoriteID)
	}
	fav, err := s.store.GetFavorite(ctx, favoriteID)
	if err != nil {
		return nil, mapFavoriteError(err, favoriteID)
	}
	return fav, nil
}

// List returns a page of favorites, searched when a query is given.
func (s *FavoriteService) List(ctx context.Context, req ListFavoritesRequest) (*FavoriteList, error) {
	limit := req.Limit
	switch {
	case limit <= 0:
		limit = DefaultFavoriteLimit
	case limit > MaxFavoriteLimit:
		limit = MaxFavoriteLimit
	}
	offset := max(req.Offset, 0)

	query := strings.TrimSpace(req.Query)
	if query == "" && req.MinColors == 0 && req.MaxColors == 0 {
		favs, total, err := s.store.ListFavorites(ctx, limit, offset)
		if err != nil {
			return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list favorites")
		}
		return &FavoriteList{Favorites: favs, Total: total, Limit: limit, Offset: offset}, nil
	}

	if s.index == nil {
		return nil, domainerrors.ErrUnavailable
	}

	params := search.DefaultParams()
	params.Query = query
	params.MinColors = req.MinColors
	params.MaxColors = req.MaxColors
	params.Limit = limit
	params.Offset = offset
	if query == "" {
		params.SortBy = "recent"
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	favs, err := s.store.GetFavoritesByIDs(ctx, result.IDs())
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to load favorites")
	}
	return &FavoriteList{Favorites: favs, Total: int(result.Total), Limit: limit, Offset: offset}, nil
}

// Rename changes the name of a favorite.
func (s *FavoriteService) Rename(ctx context.Context, favoriteID, name string) (*domain.Favorite, error) {
	name = strings.TrimSpace(name)
	if err := s.validator.Var("name", name, "required,max=80"); err != nil {
		return nil, err
	}

	fav, err := s.Get(ctx, favoriteID)
	if err != nil {
		return nil, err
	}
	if fav.Name == name {
		return fav, nil
	}

	fav.Name = name
	fav.Touch()
	if err := s.store.UpdateFavorite(ctx, fav); err != nil {
		return nil, mapFavoriteError(err, favoriteID)
	}

	s.indexFavorite(ctx, fav)
	s.emitter.Emit(sse.NewFavoriteUpdatedEvent(fav))
	return fav, nil
}

// Delete removes a favorite.
func (s *FavoriteService) Delete(ctx context.Context, favoriteID string) error {
	if !id.IsFavoriteID(favoriteID) {
		return domainerrors.NotFoundf("favorite %s not found", favoriteID)
	}
	if err := s.store.DeleteFavorite(ctx, favoriteID); err != nil {
		return mapFavoriteError(err, favoriteID)
	}

	if s.index != nil {
		if err := s.index.DeleteFavorite(ctx, favoriteID); err != nil {
			s.logger.Warn("failed to remove favorite from search index", "favorite_id", favoriteID, "error", err)
		}
	}
	s.emitter.Emit(sse.NewFavoriteDeletedEvent(favoriteID))
	s.logger.Info("favorite deleted", "favorite_id", favoriteID)
	return nil
}

// SaveSession stores the displayed colors of a palette session as a favorite.
func (s *FavoriteService) SaveSession(ctx context.Context, sessions *PaletteService, sessionID, name string) (*domain.Favorite, error) {
	hexes, err := sessions.Hexes(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(hexes) < palette.MinColors {
		return nil, domainerrors.Conflict("session has no palette yet; generate one first")
	}
	return s.Create(ctx, CreateFavoriteRequest{Name: name, Colors: hexes})
}

// Reindex rebuilds search documents from the database.
func (s *FavoriteService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, nil
	}
	favs, _, err := s.store.ListFavorites(ctx, 0, 0)
	if err != nil {
		return 0, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to list favorites")
	}
	if err := s.index.IndexFavorites(ctx, favs); err != nil {
		return 0, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to index favorites")
	}
	s.logger.Info("search index rebuilt", "favorites", len(favs))
	return len(favs), nil
}

func (s *FavoriteService) indexFavorite(ctx context.Context, fav *domain.Favorite) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexFavorite(ctx, fav); err != nil {
		s.logger.Warn("failed to index favorite", "favorite_id", fav.ID, "error", err)
	}
}

func mapFavoriteError(err error, favoriteID string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFoundf("favorite %s not found", favoriteID)
	}
	return domainerrors.Wrap(err, domainerrors.CodeInternal, "favorite storage failed")
}
