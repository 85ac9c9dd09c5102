package providers

import (
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/songboard/songboard-server/internal/config"
	"github.com/songboard/songboard-server/internal/logger"
	"github.com/songboard/songboard-server/internal/store"
)

// StoreHandle wraps the snapshot cache store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the persistent snapshot cache.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbPath := filepath.Join(cfg.Data.BasePath, "db")
	db, err := store.New(dbPath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Snapshot cache initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}
