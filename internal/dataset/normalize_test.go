package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeysCollapsesPlaceholders(t *testing.T) {
	tests := []struct {
		name string
		cell Value
		want bool // missing after normalization
	}{
		{"nan placeholder", String("nan"), true},
		{"None placeholder", String("None"), true},
		{"already missing", Missing(), true},
		{"real value", String("Song A"), false},
		{"case sensitive", String("NaN"), false},
		{"numeric key survives", Number(7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable(ColTrackName, ColAlbumTitle)
			tbl.Rows = []Row{{ColTrackName: tt.cell, ColAlbumTitle: String("Album")}}

			NormalizeKeys(tbl, KeyColumns, nil)

			assert.Equal(t, tt.want, tbl.Get(0, ColTrackName).IsMissing())
			assert.Equal(t, "Album", tbl.Get(0, ColAlbumTitle).Str())
		})
	}
}

func TestNormalizeKeysSkipsAbsentColumn(t *testing.T) {
	tbl := NewTable("other")
	tbl.Rows = []Row{{"other": String("nan")}}

	// Must not panic or create the column.
	NormalizeKeys(tbl, KeyColumns, nil)

	assert.False(t, tbl.HasColumn(ColTrackName))
	assert.Equal(t, "nan", tbl.Get(0, "other").Str())
}
