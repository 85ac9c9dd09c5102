package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/songboard/songboard-server/internal/dataset"
)

// Index wraps an in-memory Bleve index over one snapshot.
//
// Thread safety: all public methods are safe for concurrent use. The mutex
// protects queries racing a rebuild when a new snapshot arrives.
type Index struct {
	mu          sync.RWMutex
	index       bleve.Index
	fingerprint string
	logger      *slog.Logger
}

// Hit is one search result.
type Hit struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// NewIndex creates an empty search index.
func NewIndex(logger *slog.Logger) *Index {
	return &Index{logger: logger}
}

// Rebuild replaces the index contents with documents for the given
// snapshot. Rebuilding for a fingerprint that is already indexed is a
// no-op, so callers can invoke it on every request cheaply.
func (ix *Index) Rebuild(ctx context.Context, snap *dataset.Snapshot) error {
	ix.mu.RLock()
	current := ix.fingerprint
	ix.mu.RUnlock()
	if current == snap.Fingerprint {
		return nil
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.fingerprint == snap.Fingerprint {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	batch := index.NewBatch()
	for row := range snap.Table.Rows {
		doc := DocumentForRow(snap, row)
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			return fmt.Errorf("index track %s: %w", doc.ID, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("apply index batch: %w", err)
	}

	if ix.index != nil {
		_ = ix.index.Close()
	}
	ix.index = index
	ix.fingerprint = snap.Fingerprint

	ix.logger.Info("search index rebuilt",
		"tracks", snap.Table.NumRows(),
		"fingerprint", snap.Fingerprint,
	)
	return nil
}

// Search runs a match query across the indexed text fields and returns up
// to limit hits ordered by score. An empty query returns no hits.
func (ix *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if ix.index == nil {
		return nil, nil
	}

	q := bleve.NewMatchQuery(query)
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"display_name"}

	res, err := ix.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hit := Hit{ID: h.ID, Score: h.Score}
		if name, ok := h.Fields["display_name"].(string); ok {
			hit.DisplayName = name
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// Close releases the current index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.index == nil {
		return nil
	}
	err := ix.index.Close()
	ix.index = nil
	ix.fingerprint = ""
	return err
}
