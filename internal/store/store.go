// Package store persists load results in a local Badger database so a
// restart with unchanged input files can skip the parse/merge pass.
// Snapshots are keyed by the input-file fingerprint; anything under a stale
// fingerprint is pruned on write.
package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/songboard/songboard-server/internal/dataset"
)

// ErrSnapshotNotFound is returned when no cached snapshot exists for a
// fingerprint.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const snapshotPrefix = "snap:"

// Store wraps a Badger database instance holding cached snapshots.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens (or creates) the snapshot cache at the given path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Sync writes to survive crashes mid-cache-write
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("snapshot cache opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing snapshot cache")
	}
	return s.db.Close()
}

// GetSnapshot returns the cached snapshot for a fingerprint, or
// ErrSnapshotNotFound.
func (s *Store) GetSnapshot(ctx context.Context, fingerprint string) (*dataset.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var snap dataset.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotPrefix + fingerprint))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrSnapshotNotFound
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// PutSnapshot caches a snapshot under its fingerprint and prunes entries
// for any other fingerprint. Only the current inputs are worth keeping;
// old file versions never come back.
func (s *Store) PutSnapshot(ctx context.Context, snap *dataset.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	key := snapshotPrefix + snap.Fingerprint

	err = s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(snapshotPrefix)})
		defer it.Close()

		var stale [][]byte
		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().KeyCopy(nil)
			if string(k) != key {
				stale = append(stale, k)
			}
		}
		for _, k := range stale {
			if err := txn.Delete(k); err != nil {
				return fmt.Errorf("prune stale snapshot: %w", err)
			}
		}

		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug("snapshot cached",
			"fingerprint", snap.Fingerprint,
			"rows", snap.Table.NumRows(),
			"bytes", len(data),
		)
	}
	return nil
}
