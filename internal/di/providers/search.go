package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/centipy/palette-server/internal/config"
	"github.com/centipy/palette-server/internal/logger"
	"github.com/centipy/palette-server/internal/search"
	"github.com/centipy/palette-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Storage.SearchIndex(),
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index in the background when it
// is empty but the database holds favorites, e.g. after the index directory
// was removed.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	favoriteHandle := do.MustInvoke[*FavoriteStoreHandle](i)
	favorites := do.MustInvoke[*service.FavoriteService](i)
	log := do.MustInvoke[*logger.Logger](i)

	docCount, _ := indexHandle.DocumentCount()
	if docCount > 0 {
		return
	}

	ctx := context.Background()
	_, count, err := favoriteHandle.ListFavorites(ctx, 1, 0)
	if err != nil || count == 0 {
		return
	}

	log.Info("Search index is empty but favorites exist, triggering initial reindex",
		"favorite_count", count,
	)

	go func() {
		n, err := favorites.Reindex(context.Background())
		if err != nil {
			log.Error("Initial search reindex failed", "error", err)
			return
		}
		log.Info("Initial search reindex completed", "documents", n)
	}()
}
