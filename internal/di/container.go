// Package di provides dependency injection configuration for the Songboard server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/songboard/songboard-server/internal/config"
	"github.com/songboard/songboard-server/internal/di/providers"
	"github.com/songboard/songboard-server/internal/logger"
	"github.com/songboard/songboard-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Load pipeline
	do.Provide(injector, providers.ProvideLoader)
	do.Provide(injector, providers.ProvideFileWatcher)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once every provider has
// run. This triggers lazy initialization of the whole graph, watcher and
// HTTP listener included.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.LoaderHandle](injector)
	_ = do.MustInvoke[*providers.FileWatcherHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)
	return nil
}
