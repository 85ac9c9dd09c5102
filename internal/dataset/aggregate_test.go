package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genreTable(values ...string) *Table {
	tbl := NewTable("genre")
	for _, v := range values {
		tbl.Rows = append(tbl.Rows, Row{"genre": String(v)})
	}
	return tbl
}

func TestTopN(t *testing.T) {
	tbl := genreTable("rock", "pop", "rock", "pop", "rock", "jazz")

	got := TopN(tbl, "genre", 2)

	assert.Equal(t, []ValueCount{{"rock", 3}, {"pop", 2}}, got)
}

func TestTopNTiesKeepFirstEncounteredOrder(t *testing.T) {
	tbl := genreTable("pop", "rock", "rock", "pop")

	got := TopN(tbl, "genre", 5)

	assert.Equal(t, []ValueCount{{"pop", 2}, {"rock", 2}}, got)
}

func TestTopNDropsMissing(t *testing.T) {
	tbl := genreTable("rock")
	tbl.Rows = append(tbl.Rows, Row{})

	got := TopN(tbl, "genre", 10)

	assert.Equal(t, []ValueCount{{"rock", 1}}, got)
}

func TestTopNAbsentColumn(t *testing.T) {
	assert.Empty(t, TopN(genreTable("rock"), "mood", 5))
}

func numberTable(col string, values ...float64) *Table {
	tbl := NewTable(col)
	for _, v := range values {
		tbl.Rows = append(tbl.Rows, Row{col: Number(v)})
	}
	return tbl
}

func TestHistogram(t *testing.T) {
	tbl := numberTable("danceability", 0.0, 0.1, 0.45, 0.9, 1.0)

	got := Histogram(tbl, "danceability", 2)

	require.Len(t, got, 2)
	assert.Equal(t, Bin{Low: 0.0, High: 0.5, Count: 3}, got[0])
	assert.Equal(t, Bin{Low: 0.5, High: 1.0, Count: 2}, got[1])
}

func TestHistogramIncludesEmptyBins(t *testing.T) {
	tbl := numberTable("score", 0, 10)

	got := Histogram(tbl, "score", 5)

	require.Len(t, got, 5)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 0, got[1].Count)
	assert.Equal(t, 0, got[2].Count)
	assert.Equal(t, 0, got[3].Count)
	// Maximum lands in the closed last bin.
	assert.Equal(t, 1, got[4].Count)
}

func TestHistogramDegenerateRange(t *testing.T) {
	tbl := numberTable("score", 3, 3, 3)

	got := Histogram(tbl, "score", 10)

	require.Len(t, got, 1)
	assert.Equal(t, Bin{Low: 3, High: 3, Count: 3}, got[0])
}

func TestHistogramEmptyCases(t *testing.T) {
	assert.Empty(t, Histogram(numberTable("score"), "score", 10), "all rows missing")
	assert.Empty(t, Histogram(numberTable("score", 1), "other", 10), "absent column")

	strings := genreTable("rock")
	assert.Empty(t, Histogram(strings, "genre", 10), "non-numeric column")
}
