package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVTypesCells(t *testing.T) {
	in := "track_name,album_title,danceability\nSong A,Album X,0.82\nSong B,,\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"track_name", "album_title", "danceability"}, tbl.Columns)
	require.Equal(t, 2, tbl.NumRows())

	assert.Equal(t, String("Song A"), tbl.Get(0, "track_name"))
	assert.Equal(t, Number(0.82), tbl.Get(0, "danceability"))

	assert.True(t, tbl.Get(1, "album_title").IsMissing())
	assert.True(t, tbl.Get(1, "danceability").IsMissing())
}

func TestParseCSVStripsBOM(t *testing.T) {
	in := "\ufefftrack_name,album_title\nSong A,Album X\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.True(t, tbl.HasColumn("track_name"))
}

func TestParseCSVRaggedRows(t *testing.T) {
	in := "a,b,c\n1,2\n"

	tbl, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())

	assert.Equal(t, Number(2), tbl.Get(0, "b"))
	assert.True(t, tbl.Get(0, "c").IsMissing())
}

func TestParseCSVEmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseCellKeepsPlaceholderStrings(t *testing.T) {
	// "nan" parses as a float NaN but is a placeholder in the source data,
	// so it must survive as a string for the key normalizer to collapse.
	assert.Equal(t, String("nan"), parseCell("nan"))
	assert.Equal(t, String("None"), parseCell("None"))
	assert.Equal(t, Missing(), parseCell(""))
	assert.Equal(t, Number(11), parseCell("11"))
}
