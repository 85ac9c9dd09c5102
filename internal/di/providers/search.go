package providers

import (
	"github.com/samber/do/v2"

	"github.com/songboard/songboard-server/internal/logger"
	"github.com/songboard/songboard-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory full-text search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	return &SearchIndexHandle{Index: search.NewIndex(log.Logger)}, nil
}
