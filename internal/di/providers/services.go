package providers

import (
	"github.com/samber/do/v2"

	"github.com/songboard/songboard-server/internal/logger"
	"github.com/songboard/songboard-server/internal/service"
)

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	loaderHandle := do.MustInvoke[*LoaderHandle](i)
	searchHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.NewCatalogService(loaderHandle.Loader, searchHandle.Index, log.Logger), nil
}
