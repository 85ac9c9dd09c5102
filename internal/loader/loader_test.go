package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/songboard/songboard-server/internal/dataset"
	"github.com/songboard/songboard-server/internal/errors"
	"github.com/songboard/songboard-server/internal/store"
)

const primaryCSV = `track_name,album_title,lyrics_text,danceability
Song A,Album X,la la la,0.8
Song B,Album X,,0.3
nan,Album Y,oh oh,0.5
`

const annotationsCSV = `track_name,album_title,ai_theme,ai_sentiment,ai_notes
Song A,Album X,longing,melancholy,notes here
Song B,Album X,SKIPPED,,
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestLoadBuildsSnapshot(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)
	annotations := writeFile(t, dir, "annotations.csv", annotationsCSV)

	l := New(primary, annotations, nil, testLogger())

	snap, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.AnnotationsMerged, snap.Annotations)
	assert.Equal(t, 3, snap.Table.NumRows())
	assert.Len(t, snap.IDs, 3)

	// Song A is the only usable analysis; SKIPPED is a sentinel.
	assert.True(t, snap.Table.Get(0, dataset.ColHasAnalysis).IsTrue())
	assert.False(t, snap.Table.Get(1, dataset.ColHasAnalysis).IsTrue())

	// The "nan" track name was normalized away before display.
	assert.Equal(t, "N/A | Album Y", snap.Table.Get(2, dataset.ColDisplayName).Str())
}

func TestLoadWithoutAnnotations(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)

	l := New(primary, "", nil, testLogger())

	snap, err := l.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, dataset.AnnotationsMissingFile, snap.Annotations)
	for i := range snap.Table.Rows {
		assert.False(t, snap.Table.Get(i, dataset.ColHasAnalysis).IsTrue())
	}
}

func TestLoadMissingAnnotationFileDegrades(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)

	l := New(primary, filepath.Join(dir, "nope.csv"), nil, testLogger())

	snap, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dataset.AnnotationsMissingFile, snap.Annotations)
}

func TestLoadMissingPrimaryFails(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope.csv"), "", nil, testLogger())

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDataUnavailable))
}

func TestLoadMemoizes(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)

	l := New(primary, "", nil, testLogger())
	ctx := context.Background()

	first, err := l.Load(ctx)
	require.NoError(t, err)
	second, err := l.Load(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestLoadDetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)

	l := New(primary, "", nil, testLogger())
	ctx := context.Background()

	first, err := l.Load(ctx)
	require.NoError(t, err)

	// Rewrite with one extra row and force a distinct mtime; coarse
	// filesystem timestamps would otherwise hide the change.
	writeFile(t, dir, "primary.csv", primaryCSV+"Song D,Album Z,,0.1\n")
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(primary, future, future))

	second, err := l.Load(ctx)
	require.NoError(t, err)

	assert.NotEqual(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, 4, second.Table.NumRows())
}

func TestLoadUsesPersistentCache(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)

	cache, err := store.New(filepath.Join(dir, "db"), nil)
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	first, err := New(primary, "", cache, testLogger()).Load(ctx)
	require.NoError(t, err)

	// A fresh loader with the same cache must hydrate the identical
	// snapshot (same IDs) instead of rebuilding with new ones.
	second, err := New(primary, "", cache, testLogger()).Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.Equal(t, first.IDs, second.IDs)
}

func TestInvalidateForcesReload(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)

	l := New(primary, "", nil, testLogger())
	ctx := context.Background()

	first, err := l.Load(ctx)
	require.NoError(t, err)

	l.Invalidate()

	second, err := l.Load(ctx)
	require.NoError(t, err)

	// Same fingerprint, but a fresh build: track IDs are regenerated.
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.NotSame(t, first, second)
}

func TestFingerprintChangesWhenAnnotationsAppear(t *testing.T) {
	dir := t.TempDir()
	primary := writeFile(t, dir, "primary.csv", primaryCSV)
	annotations := filepath.Join(dir, "annotations.csv")

	before, err := Fingerprint(primary, annotations)
	require.NoError(t, err)

	writeFile(t, dir, "annotations.csv", annotationsCSV)

	after, err := Fingerprint(primary, annotations)
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}
