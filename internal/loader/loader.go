// Package loader runs the load pass that turns the raw CSV pair into an
// immutable snapshot: read, normalize keys, merge annotations, derive
// columns, assign track IDs. Results are memoized per input-file
// fingerprint, with an optional persistent cache underneath.
package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/songboard/songboard-server/internal/dataset"
	"github.com/songboard/songboard-server/internal/errors"
	"github.com/songboard/songboard-server/internal/id"
	"github.com/songboard/songboard-server/internal/store"
)

// SnapshotCache is the persistence interface the loader uses. Satisfied by
// *store.Store; nil disables persistent caching.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context, fingerprint string) (*dataset.Snapshot, error)
	PutSnapshot(ctx context.Context, snap *dataset.Snapshot) error
}

// Loader builds and memoizes dataset snapshots.
//
// Load is safe for concurrent use: the mutex guards first population so
// parallel requests during startup trigger exactly one load pass.
type Loader struct {
	primaryPath     string
	annotationsPath string
	cache           SnapshotCache
	log             *slog.Logger

	mu   sync.Mutex
	snap *dataset.Snapshot
}

// New creates a loader for the given CSV pair. annotationsPath may be
// empty; cache may be nil.
func New(primaryPath, annotationsPath string, cache SnapshotCache, log *slog.Logger) *Loader {
	return &Loader{
		primaryPath:     primaryPath,
		annotationsPath: annotationsPath,
		cache:           cache,
		log:             log,
	}
}

// Load returns the snapshot for the current input files, rebuilding when
// their fingerprint changed since the last call. A primary file that is
// missing or unparseable fails with a DataUnavailable error and no partial
// result.
func (l *Loader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	fp, err := Fingerprint(l.primaryPath, l.annotationsPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataUnavailable,
			"primary dataset file not found")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.snap != nil && l.snap.Fingerprint == fp {
		return l.snap, nil
	}

	// Memoized copy is stale or absent. Try the persistent cache before
	// doing the full parse/merge pass.
	if l.cache != nil {
		if cached, err := l.cache.GetSnapshot(ctx, fp); err == nil {
			l.log.Info("snapshot loaded from cache",
				"fingerprint", fp,
				"rows", cached.Table.NumRows(),
			)
			l.snap = cached
			return cached, nil
		}
	}

	snap, err := l.build(ctx, fp)
	if err != nil {
		return nil, err
	}
	l.snap = snap

	if l.cache != nil {
		if err := l.cache.PutSnapshot(ctx, snap); err != nil {
			// Cache failures are not load failures.
			l.log.Warn("failed to cache snapshot", "error", err)
		}
	}

	return snap, nil
}

// Invalidate drops the memoized snapshot so the next Load re-checks the
// files. Called by the file watcher; cheap enough to call on every event.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.snap = nil
	l.mu.Unlock()
}

// build runs the full load pass. Caller holds the mutex.
func (l *Loader) build(ctx context.Context, fp string) (*dataset.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	primary, err := dataset.ReadCSV(l.primaryPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDataUnavailable,
			"primary dataset could not be parsed")
	}

	var annotations *dataset.Table
	if l.annotationsPath != "" {
		annotations, err = dataset.ReadCSV(l.annotationsPath)
		if err != nil {
			// Malformed or missing annotations degrade to an unannotated
			// catalog; only the primary file is fatal.
			l.log.Warn("annotation file unavailable, continuing without AI analysis",
				"path", l.annotationsPath,
				"error", err,
			)
			annotations = nil
		}
	}

	dataset.NormalizeKeys(primary, dataset.KeyColumns, l.log)
	merged, status := dataset.Merge(primary, annotations, l.log)
	dataset.Derive(merged, status.Available())

	ids := make([]string, merged.NumRows())
	for i := range ids {
		ids[i] = id.MustGenerate("trk")
	}

	snap := &dataset.Snapshot{
		Fingerprint: fp,
		LoadedAt:    time.Now().UTC(),
		Annotations: status,
		Table:       merged,
		IDs:         ids,
	}

	l.log.Info("dataset loaded",
		"rows", merged.NumRows(),
		"columns", len(merged.Columns),
		"annotations", string(status),
		"duration", time.Since(start),
	)
	if !status.Available() {
		l.log.Warn("AI annotations unavailable", "reason", string(status))
	}

	return snap, nil
}

// Ensure *store.Store keeps satisfying the cache interface.
var _ SnapshotCache = (*store.Store)(nil)
