package dataset

import "sort"

// Placeholder used for missing key values in display names.
const displayPlaceholder = "N/A"

// Sentinel ai_theme values meaning "annotation attempted but not usable".
var themeSentinels = map[string]bool{
	"SKIPPED": true,
	"ERROR":   true,
}

// Derive computes the display_name and has_ai_analysis columns in place.
// aiAvailable is the merge outcome: when false, has_ai_analysis is forced
// to false for every row regardless of ai_theme content.
//
// Derive is idempotent: running it again over an already-derived table
// writes identical cells. Missing key columns are created filled with the
// display placeholder so the dashboard can keep rendering.
func Derive(t *Table, aiAvailable bool) {
	for _, col := range KeyColumns {
		if !t.HasColumn(col) {
			t.AddColumn(col)
			for _, row := range t.Rows {
				row[col] = String(displayPlaceholder)
			}
		}
	}

	t.AddColumn(ColDisplayName)
	t.AddColumn(ColHasAnalysis)

	for _, row := range t.Rows {
		row[ColDisplayName] = String(DisplayName(row.Get(ColTrackName), row.Get(ColAlbumTitle)))
		row[ColHasAnalysis] = Bool(aiAvailable && UsableAnalysis(row.Get(ColAITheme)))
	}
}

// DisplayName builds the per-track label: "{track} | {album}" with missing
// parts replaced by the N/A placeholder before concatenation.
func DisplayName(track, album Value) string {
	return fillMissing(track) + " | " + fillMissing(album)
}

func fillMissing(v Value) string {
	if v.IsMissing() {
		return displayPlaceholder
	}
	return v.Display()
}

// UsableAnalysis reports whether an ai_theme cell marks a usable
// annotation: present and not a SKIPPED/ERROR sentinel.
func UsableAnalysis(theme Value) bool {
	if theme.IsMissing() {
		return false
	}
	return !themeSentinels[theme.Str()]
}

// SortForSelection orders row indices for the song-selection list: rows
// with usable analysis first, then byte-wise ascending display_name within
// each group. The byte-wise ordering is locale-independent and stable
// across platforms. The table itself is left untouched.
func SortForSelection(t *Table) []int {
	idx := make([]int, t.NumRows())
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ra, rb := t.Rows[idx[a]], t.Rows[idx[b]]
		ha, hb := ra.Get(ColHasAnalysis).IsTrue(), rb.Get(ColHasAnalysis).IsTrue()
		if ha != hb {
			return ha
		}
		return ra.Get(ColDisplayName).Str() < rb.Get(ColDisplayName).Str()
	})
	return idx
}
