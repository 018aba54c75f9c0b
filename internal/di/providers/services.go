package providers

import (
	"github.com/samber/do/v2"

	"github.com/centipy/palette-server/internal/logger"
	"github.com/centipy/palette-server/internal/service"
)

// ProvideColorService provides the stateless color and harmony service.
func ProvideColorService(i do.Injector) (*service.ColorService, error) {
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewColorService(nil, metricsHandle.Recorder, log.Logger), nil
}

// ProvidePaletteService provides the palette session service.
func ProvidePaletteService(i do.Injector) (*service.PaletteService, error) {
	sessionHandle := do.MustInvoke[*SessionStoreHandle](i)
	favoriteHandle := do.MustInvoke[*FavoriteStoreHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPaletteService(
		sessionHandle.Store,
		favoriteHandle.Store,
		sseHandle.Manager,
		metricsHandle.Recorder,
		nil,
		log.Logger,
	), nil
}

// ProvideFavoriteService provides the saved palette service.
func ProvideFavoriteService(i do.Injector) (*service.FavoriteService, error) {
	favoriteHandle := do.MustInvoke[*FavoriteStoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	metricsHandle := do.MustInvoke[*MetricsHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoriteService(
		favoriteHandle.Store,
		indexHandle.SearchIndex,
		sseHandle.Manager,
		metricsHandle.Recorder,
		log.Logger,
	), nil
}
