package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func primaryFixture() *Table {
	tbl := NewTable(ColTrackName, ColAlbumTitle, ColLyricsText)
	tbl.Rows = []Row{
		{ColTrackName: String("Song A"), ColAlbumTitle: String("Album X"), ColLyricsText: String("la la")},
		{ColTrackName: String("Song B"), ColAlbumTitle: String("Album X")},
		{ColTrackName: String("Song C"), ColAlbumTitle: String("Album Y"), ColLyricsText: String("oh oh")},
	}
	return tbl
}

func annotationFixture() *Table {
	tbl := NewTable(ColTrackName, ColAlbumTitle, ColAITheme, ColAISentiment, ColAINotes)
	tbl.Rows = []Row{
		{ColTrackName: String("Song A"), ColAlbumTitle: String("Album X"),
			ColAITheme: String("longing"), ColAISentiment: String("melancholy"), ColAINotes: String("notes a")},
		{ColTrackName: String("Song C"), ColAlbumTitle: String("Album Y"),
			ColAITheme: String("SKIPPED")},
	}
	return tbl
}

func TestMergePreservesCardinality(t *testing.T) {
	primary := primaryFixture()
	merged, status := Merge(primary, annotationFixture(), nil)

	assert.Equal(t, AnnotationsMerged, status)
	assert.Equal(t, primary.NumRows(), merged.NumRows())

	// Matched row got its annotations.
	assert.Equal(t, "longing", merged.Get(0, ColAITheme).Str())
	assert.Equal(t, "melancholy", merged.Get(0, ColAISentiment).Str())

	// Unmatched row keeps missing annotation cells.
	assert.True(t, merged.Get(1, ColAITheme).IsMissing())
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	primary := primaryFixture()
	ann := annotationFixture()

	_, _ = Merge(primary, ann, nil)

	assert.False(t, primary.HasColumn(ColAITheme))
	assert.Equal(t, 2, ann.NumRows())
}

func TestMergeWithoutAnnotations(t *testing.T) {
	merged, status := Merge(primaryFixture(), nil, nil)

	assert.Equal(t, AnnotationsMissingFile, status)
	assert.False(t, status.Available())
	assert.Equal(t, 3, merged.NumRows())
	assert.False(t, merged.HasColumn(ColAITheme))
}

func TestMergeMissingRequiredColumns(t *testing.T) {
	ann := NewTable(ColTrackName, ColAlbumTitle) // no ai_* columns
	ann.Rows = []Row{{ColTrackName: String("Song A"), ColAlbumTitle: String("Album X")}}

	merged, status := Merge(primaryFixture(), ann, nil)

	assert.Equal(t, AnnotationsMissingColumns, status)
	assert.Equal(t, 3, merged.NumRows())
	assert.False(t, merged.HasColumn(ColAITheme))
}

func TestMergeDuplicateKeysFirstMatchWins(t *testing.T) {
	ann := annotationFixture()
	ann.Rows = append(ann.Rows, Row{
		ColTrackName: String("Song A"), ColAlbumTitle: String("Album X"),
		ColAITheme: String("second match"), ColAISentiment: String("x"), ColAINotes: String("y"),
	})

	merged, status := Merge(primaryFixture(), ann, nil)

	require.Equal(t, AnnotationsMerged, status)
	assert.Equal(t, 3, merged.NumRows())
	assert.Equal(t, "longing", merged.Get(0, ColAITheme).Str())
}

func TestMergeMissingKeysNeverJoin(t *testing.T) {
	primary := NewTable(ColTrackName, ColAlbumTitle)
	primary.Rows = []Row{{ColAlbumTitle: String("Album X")}} // track_name missing

	ann := annotationFixture()
	ann.Rows = append(ann.Rows, Row{
		ColAlbumTitle: String("Album X"),
		ColAITheme:    String("ghost"), ColAISentiment: String("x"), ColAINotes: String("y"),
	})

	merged, _ := Merge(primary, ann, nil)

	assert.True(t, merged.Get(0, ColAITheme).IsMissing())
}

func TestMergeNormalizesAnnotationKeys(t *testing.T) {
	primary := primaryFixture()

	ann := annotationFixture()
	// Placeholder keys in the annotation table must not join anything.
	ann.Rows = append(ann.Rows, Row{
		ColTrackName: String("nan"), ColAlbumTitle: String("Album X"),
		ColAITheme: String("ghost"), ColAISentiment: String("x"), ColAINotes: String("y"),
	})

	merged, status := Merge(primary, ann, nil)

	require.Equal(t, AnnotationsMerged, status)
	for i := range merged.Rows {
		assert.NotEqual(t, "ghost", merged.Get(i, ColAITheme).Str())
	}
}
