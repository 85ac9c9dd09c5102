package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/songboard/songboard-server/internal/config"
	"github.com/songboard/songboard-server/internal/loader"
	"github.com/songboard/songboard-server/internal/logger"
)

// LoaderHandle wraps the dataset loader. No background state to stop; the
// handle exists so the watcher and services share one instance.
type LoaderHandle struct {
	*loader.Loader
}

// ProvideLoader provides the dataset loader backed by the snapshot cache.
func ProvideLoader(i do.Injector) (*LoaderHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	l := loader.New(cfg.Data.PrimaryPath, cfg.Data.AnnotationsPath, storeHandle.Store, log.Logger)

	return &LoaderHandle{Loader: l}, nil
}

// FileWatcherHandle wraps the file watcher with shutdown capability.
type FileWatcherHandle struct {
	*loader.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *FileWatcherHandle) Shutdown() error {
	h.cancel()
	return h.Watcher.Close()
}

// ProvideFileWatcher provides the CSV file watcher that invalidates the
// memoized snapshot on change.
func ProvideFileWatcher(i do.Injector) (*FileWatcherHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)
	loaderHandle := do.MustInvoke[*LoaderHandle](i)

	w, err := loader.NewWatcher(loaderHandle.Loader, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx)

	log.Info("Dataset file watcher started")

	return &FileWatcherHandle{Watcher: w, cancel: cancel}, nil
}
