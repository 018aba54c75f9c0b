package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centipy/palette-server/internal/domain"
	domainerrors "github.com/centipy/palette-server/internal/errors"
	"github.com/centipy/palette-server/internal/id"
	"github.com/centipy/palette-server/internal/sse"
)

func createFavorite(t *testing.T, svc *testServices, name string, colors ...string) *domain.Favorite {
	t.Helper()
	fav, err := svc.favorites.Create(context.Background(), CreateFavoriteRequest{Name: name, Colors: colors})
	require.NoError(t, err)
	return fav
}

func TestFavoriteService_Create(t *testing.T) {
	svc := setupServices(t)

	fav := createFavorite(t, svc, "  Ocean  ", "#00f", "rgb(0, 255, 255)", "navy")

	assert.True(t, id.IsFavoriteID(fav.ID))
	assert.Equal(t, "Ocean", fav.Name)
	assert.Equal(t, []string{"#0000FF", "#00FFFF", "#000080"}, fav.Colors)
	assert.NotEmpty(t, fav.BlurHash)
	assert.False(t, fav.CreatedAt.IsZero())
	assert.Equal(t, sse.EventFavoriteCreated, svc.events.last().Type)

	got, err := svc.favorites.Get(context.Background(), fav.ID)
	require.NoError(t, err)
	assert.Equal(t, fav.Colors, got.Colors)
	assert.Equal(t, fav.BlurHash, got.BlurHash)
}

func TestFavoriteService_CreateValidation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateFavoriteRequest
		key  string
	}{
		{"missing name", CreateFavoriteRequest{Name: " ", Colors: []string{"#000", "#111", "#222"}}, "name"},
		{"too few colors", CreateFavoriteRequest{Name: "x", Colors: []string{"#000", "#111"}}, "colors"},
		{"too many colors", CreateFavoriteRequest{Name: "x", Colors: strings.Split("#000,#111,#222,#333,#444,#555,#666,#777,#888", ",")}, "colors"},
		{"bad color", CreateFavoriteRequest{Name: "x", Colors: []string{"#000", "mauve-ish", "#222"}}, "colors[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.favorites.Create(ctx, tt.req)
			require.ErrorIs(t, err, domainerrors.ErrValidation)

			var de *domainerrors.Error
			require.True(t, domainerrors.As(err, &de))
			details, ok := de.Details.(map[string]string)
			require.True(t, ok)
			assert.Contains(t, details, tt.key)
		})
	}
}

func TestFavoriteService_GetNotFound(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.favorites.Get(context.Background(), "pal-nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = svc.favorites.Get(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFavoriteService_ListAndSearch(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	createFavorite(t, svc, "Ocean", "#0000FF", "#00FFFF", "#000080")
	createFavorite(t, svc, "Sunset", "#FF0000", "#FF8000", "#FFFF00", "#800000")
	createFavorite(t, svc, "Forest", "#008000", "#00FF00", "#004000")

	list, err := svc.favorites.List(ctx, ListFavoritesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, DefaultFavoriteLimit, list.Limit)
	require.Len(t, list.Favorites, 3)
	assert.Equal(t, "Forest", list.Favorites[0].Name, "newest first")

	list, err = svc.favorites.List(ctx, ListFavoritesRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, "Sunset", list.Favorites[0].Name)

	list, err = svc.favorites.List(ctx, ListFavoritesRequest{Query: "sunset"})
	require.NoError(t, err)
	require.NotEmpty(t, list.Favorites)
	assert.Equal(t, "Sunset", list.Favorites[0].Name)

	list, err = svc.favorites.List(ctx, ListFavoritesRequest{Query: "#00ffff"})
	require.NoError(t, err)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, "Ocean", list.Favorites[0].Name)

	list, err = svc.favorites.List(ctx, ListFavoritesRequest{MinColors: 4})
	require.NoError(t, err)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, "Sunset", list.Favorites[0].Name)
}

func TestFavoriteService_ListClampsLimit(t *testing.T) {
	svc := setupServices(t)

	list, err := svc.favorites.List(context.Background(), ListFavoritesRequest{Limit: 5000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, MaxFavoriteLimit, list.Limit)
	assert.Zero(t, list.Offset)
	assert.Empty(t, list.Favorites)
}

func TestFavoriteService_Rename(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	fav := createFavorite(t, svc, "Deep Sea", "#0000FF", "#00FFFF", "#000080")

	renamed, err := svc.favorites.Rename(ctx, fav.ID, "Lagoon")
	require.NoError(t, err)
	assert.Equal(t, "Lagoon", renamed.Name)
	assert.True(t, !renamed.UpdatedAt.Before(fav.UpdatedAt))
	assert.Equal(t, sse.EventFavoriteUpdated, svc.events.last().Type)

	list, err := svc.favorites.List(ctx, ListFavoritesRequest{Query: "lagoon"})
	require.NoError(t, err)
	require.Len(t, list.Favorites, 1)
	assert.Equal(t, fav.ID, list.Favorites[0].ID)

	_, err = svc.favorites.Rename(ctx, fav.ID, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.favorites.Rename(ctx, "pal-missing", "x")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestFavoriteService_Delete(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	fav := createFavorite(t, svc, "Ocean", "#0000FF", "#00FFFF", "#000080")

	require.NoError(t, svc.favorites.Delete(ctx, fav.ID))
	assert.Equal(t, sse.EventFavoriteDeleted, svc.events.last().Type)

	_, err := svc.favorites.Get(ctx, fav.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	count, err := svc.index.DocumentCount()
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.favorites.Delete(ctx, fav.ID), domainerrors.ErrNotFound)
}

func TestFavoriteService_SaveSession(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	view, err := svc.palettes.Create(ctx, GenerateRequest{Count: 4}, false)
	require.NoError(t, err)

	fav, err := svc.favorites.SaveSession(ctx, svc.palettes, view.ID, "From session")
	require.NoError(t, err)
	assert.Equal(t, hexesOf(view.Colors), fav.Colors)

	empty, err := svc.palettes.Create(ctx, GenerateRequest{}, true)
	require.NoError(t, err)
	_, err = svc.favorites.SaveSession(ctx, svc.palettes, empty.ID, "Nothing")
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestFavoriteService_Reindex(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		createFavorite(t, svc, name, "#111111", "#222222", "#333333")
	}
	require.NoError(t, svc.index.Rebuild())

	n, err := svc.favorites.Reindex(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	count, err := svc.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestFavoriteService_WithoutIndex(t *testing.T) {
	svc := setupServices(t)
	noIndex := NewFavoriteService(svc.db, nil, nil, nil, nil)
	ctx := context.Background()

	_, err := noIndex.Create(ctx, CreateFavoriteRequest{Name: "Plain", Colors: []string{"#000", "#777", "#fff"}})
	require.NoError(t, err)

	list, err := noIndex.List(ctx, ListFavoritesRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	_, err = noIndex.List(ctx, ListFavoritesRequest{Query: "plain"})
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
}
