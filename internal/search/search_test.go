package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/centipy/palette-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestIndex creates an in-memory search index for testing.
func setupTestIndex(t *testing.T) *SearchIndex {
	t.Helper()
	index, err := NewSearchIndex(Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	return index
}

func testFavorites() []*domain.Favorite {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*domain.Favorite{
		{ID: "pal-ocean", Name: "Ocean Breeze", Colors: []string{"#0000FF", "#00FFFF"}, CreatedAt: base},
		{ID: "pal-sunset", Name: "Sunset Glow", Colors: []string{"#FF0000", "#FF8000"}, CreatedAt: base.Add(time.Hour)},
		{ID: "pal-forest", Name: "Forest", Colors: []string{"#008000"}, CreatedAt: base.Add(2 * time.Hour)},
	}
}

func seededIndex(t *testing.T) *SearchIndex {
	t.Helper()
	index := setupTestIndex(t)
	require.NoError(t, index.IndexFavorites(context.Background(), testFavorites()))
	return index
}

func TestNewFavoriteDocument(t *testing.T) {
	doc := NewFavoriteDocument(&domain.Favorite{
		ID:     "pal-1",
		Name:   "Primary",
		Colors: []string{"#ff0000", "#FF0000", "not-a-color", "#0000FF"},
	})

	assert.Equal(t, []string{"#FF0000", "#0000FF"}, doc.Hexes)
	assert.Contains(t, doc.ColorNames, "Vivid Red")
	assert.Contains(t, doc.ColorNames, "Rojo Vívido")
	assert.Contains(t, doc.ColorNames, "Azul Vívido")
	assert.Equal(t, []string{"red", "blue"}, doc.CSSNames)
	assert.Equal(t, 4, doc.ColorCount)
}

func TestSearchIndex_IndexAndCount(t *testing.T) {
	index := setupTestIndex(t)
	ctx := context.Background()

	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)

	require.NoError(t, index.IndexFavorite(ctx, testFavorites()[0]))
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)

	// Reindexing the same ID replaces the document.
	require.NoError(t, index.IndexFavorite(ctx, testFavorites()[0]))
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestSearch_ByColorName(t *testing.T) {
	index := seededIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "blue"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pal-ocean"}, res.IDs())
}

func TestSearch_BySpanishColorName(t *testing.T) {
	index := seededIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "rojo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pal-sunset"}, res.IDs())
}

func TestSearch_ByHex(t *testing.T) {
	index := seededIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "#ff0000"})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Equal(t, "pal-sunset", res.Hits[0].ID)
	assert.Equal(t, "Sunset Glow", res.Hits[0].Name)
	assert.ElementsMatch(t, []string{"#FF0000", "#FF8000"}, res.Hits[0].Hexes)
}

func TestSearch_ByNameAndPrefix(t *testing.T) {
	index := seededIndex(t)
	ctx := context.Background()

	res, err := index.Search(ctx, Params{Query: "Sunset"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, "pal-sunset", res.Hits[0].ID)

	res, err = index.Search(ctx, Params{Query: "fore"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pal-forest"}, res.IDs())
}

func TestSearch_EmptyQueryMatchesAll(t *testing.T) {
	index := seededIndex(t)

	res, err := index.Search(context.Background(), Params{SortBy: "recent"})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Total)
	assert.Equal(t, []string{"pal-forest", "pal-sunset", "pal-ocean"}, res.IDs())

	res, err = index.Search(context.Background(), Params{SortBy: "recent", SortOrder: "asc", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), res.Total)
	assert.Equal(t, []string{"pal-ocean", "pal-sunset"}, res.IDs())
}

func TestSearch_ColorCountFilter(t *testing.T) {
	index := seededIndex(t)

	res, err := index.Search(context.Background(), Params{MinColors: 2})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"pal-ocean", "pal-sunset"}, res.IDs())
}

func TestSearch_Highlight(t *testing.T) {
	index := seededIndex(t)

	res, err := index.Search(context.Background(), Params{Query: "ocean", Highlight: true})
	require.NoError(t, err)
	require.Len(t, res.Hits, 1)
	assert.Contains(t, res.Hits[0].Highlights, "name")
}

func TestSearchIndex_Delete(t *testing.T) {
	index := seededIndex(t)
	ctx := context.Background()

	require.NoError(t, index.DeleteFavorite(ctx, "pal-ocean"))

	res, err := index.Search(ctx, Params{Query: "blue"})
	require.NoError(t, err)
	assert.Empty(t, res.Hits)
}

func TestSearchIndex_Rebuild(t *testing.T) {
	index := seededIndex(t)

	require.NoError(t, index.Rebuild())
	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSearchIndex_PersistsAndVersions(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	index, err := NewSearchIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, index.IndexFavorite(ctx, testFavorites()[1]))
	require.NoError(t, index.Close())

	index, err = NewSearchIndex(Options{DataPath: dir})
	require.NoError(t, err)
	count, err := index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
	require.NoError(t, index.Close())

	// A stale mapping version forces a fresh index.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "favorites.version"), []byte("0"), 0o644))
	index, err = NewSearchIndex(Options{DataPath: dir})
	require.NoError(t, err)
	defer index.Close()
	count, err = index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}
