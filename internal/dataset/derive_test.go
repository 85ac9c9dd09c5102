package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsableAnalysis(t *testing.T) {
	tests := []struct {
		name  string
		theme Value
		want  bool
	}{
		{"real theme", String("longing"), true},
		{"missing", Missing(), false},
		{"skipped sentinel", String("SKIPPED"), false},
		{"error sentinel", String("ERROR"), false},
		{"sentinel is case sensitive", String("skipped"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UsableAnalysis(tt.theme))
		})
	}
}

func TestDeriveDisplayName(t *testing.T) {
	tbl := NewTable(ColTrackName, ColAlbumTitle)
	tbl.Rows = []Row{
		{ColTrackName: String("Song A"), ColAlbumTitle: String("Album X")},
		{ColAlbumTitle: String("Album X")}, // normalized-away track name
		{},
	}

	Derive(tbl, true)

	assert.Equal(t, "Song A | Album X", tbl.Get(0, ColDisplayName).Str())
	assert.Equal(t, "N/A | Album X", tbl.Get(1, ColDisplayName).Str())
	assert.Equal(t, "N/A | N/A", tbl.Get(2, ColDisplayName).Str())
}

func TestDeriveHasAnalysisForcedFalse(t *testing.T) {
	tbl := NewTable(ColTrackName, ColAlbumTitle, ColAITheme)
	tbl.Rows = []Row{
		{ColTrackName: String("Song A"), ColAlbumTitle: String("X"), ColAITheme: String("longing")},
	}

	// Annotations were not merged: the flag must be false even though the
	// theme cell looks usable.
	Derive(tbl, false)
	assert.False(t, tbl.Get(0, ColHasAnalysis).IsTrue())

	Derive(tbl, true)
	assert.True(t, tbl.Get(0, ColHasAnalysis).IsTrue())
}

func TestDeriveCreatesAbsentKeyColumns(t *testing.T) {
	tbl := NewTable("genre")
	tbl.Rows = []Row{{"genre": String("rock")}}

	Derive(tbl, false)

	assert.Equal(t, "N/A", tbl.Get(0, ColTrackName).Str())
	assert.Equal(t, "N/A | N/A", tbl.Get(0, ColDisplayName).Str())
}

func TestDeriveIdempotent(t *testing.T) {
	tbl := NewTable(ColTrackName, ColAlbumTitle, ColAITheme)
	tbl.Rows = []Row{
		{ColTrackName: String("Song A"), ColAlbumTitle: String("X"), ColAITheme: String("longing")},
		{ColTrackName: String("Song B"), ColAlbumTitle: String("Y"), ColAITheme: String("ERROR")},
	}

	Derive(tbl, true)
	first := tbl.Clone()

	Derive(tbl, true)

	require.Equal(t, first.Columns, tbl.Columns)
	for i := range tbl.Rows {
		for _, col := range tbl.Columns {
			assert.True(t, first.Get(i, col).Equal(tbl.Get(i, col)),
				"row %d column %s changed on re-derive", i, col)
		}
	}
}

func TestSortForSelection(t *testing.T) {
	tbl := NewTable(ColTrackName, ColAlbumTitle, ColAITheme)
	tbl.Rows = []Row{
		{ColTrackName: String("B"), ColAlbumTitle: String("x"), ColAITheme: String("t")},
		{ColTrackName: String("A"), ColAlbumTitle: String("y")},
		{ColTrackName: String("A"), ColAlbumTitle: String("z"), ColAITheme: String("t")},
	}
	Derive(tbl, true)

	order := SortForSelection(tbl)

	var names []string
	for _, i := range order {
		names = append(names, tbl.Get(i, ColDisplayName).Str())
	}
	// Analyzed rows first, byte-ascending names within each group.
	assert.Equal(t, []string{"A | z", "B | x", "A | y"}, names)
}
