package dataset

import (
	"log/slog"
)

// Column names the pipeline keys on.
const (
	ColTrackName   = "track_name"
	ColAlbumTitle  = "album_title"
	ColLyricsText  = "lyrics_text"
	ColAITheme     = "ai_theme"
	ColAISentiment = "ai_sentiment"
	ColAINotes     = "ai_notes"
	ColDisplayName = "display_name"
	ColHasAnalysis = "has_ai_analysis"
)

// KeyColumns are the join keys between the primary table and the
// annotation table.
var KeyColumns = []string{ColTrackName, ColAlbumTitle}

// AnnotationColumns are required in the annotation table for a merge.
var AnnotationColumns = []string{ColTrackName, ColAlbumTitle, ColAITheme, ColAISentiment, ColAINotes}

// AnnotationStatus reports whether AI annotations made it into a merged
// table, and if not, why. It travels with the data instead of living in
// ambient process state so every consumer sees the same answer.
type AnnotationStatus string

// Annotation statuses.
const (
	// AnnotationsMerged means the annotation table was present, well-formed,
	// and joined onto the primary table.
	AnnotationsMerged AnnotationStatus = "merged"

	// AnnotationsMissingFile means no annotation table was supplied.
	AnnotationsMissingFile AnnotationStatus = "missing_file"

	// AnnotationsMissingColumns means the annotation table lacked one or
	// more required columns and was ignored.
	AnnotationsMissingColumns AnnotationStatus = "missing_columns"
)

// Available reports whether annotations were actually merged.
func (s AnnotationStatus) Available() bool {
	return s == AnnotationsMerged
}

// joinKey pairs the two normalized key cells. Rows with a missing key cell
// never join; mirroring how null keys behave in a relational left join.
type joinKey struct {
	track string
	album string
}

// Merge left-joins the annotation table onto the primary table on
// (track_name, album_title). Every primary row is preserved exactly once;
// unmatched rows keep missing annotation cells. The primary table's key
// columns must already be normalized.
//
// Duplicate keys in the annotation table are resolved first-match-wins: the
// earliest annotation row for a key is used and the duplicates are counted
// in a warning. This keeps left-join cardinality (N rows in, N rows out)
// instead of multiplying matched rows.
//
// The returned table is a new value; neither input is mutated.
func Merge(primary, annotations *Table, log *slog.Logger) (*Table, AnnotationStatus) {
	out := primary.Clone()

	if annotations == nil {
		return out, AnnotationsMissingFile
	}

	var missing []string
	for _, col := range AnnotationColumns {
		if !annotations.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		if log != nil {
			log.Warn("annotation table missing required columns, skipping merge",
				"missing", missing)
		}
		return out, AnnotationsMissingColumns
	}

	ann := annotations.Clone()
	NormalizeKeys(ann, KeyColumns, log)

	// First occurrence of each key wins.
	lookup := make(map[joinKey]Row, len(ann.Rows))
	duplicates := 0
	for _, row := range ann.Rows {
		track, album := row.Get(ColTrackName), row.Get(ColAlbumTitle)
		if track.IsMissing() || album.IsMissing() {
			continue
		}
		k := joinKey{track: track.Display(), album: album.Display()}
		if _, seen := lookup[k]; seen {
			duplicates++
			continue
		}
		lookup[k] = row
	}
	if duplicates > 0 && log != nil {
		log.Warn("annotation table has duplicate join keys, keeping first match",
			"duplicates", duplicates)
	}

	// Carry every non-key annotation column that does not collide with a
	// primary column.
	var carried []string
	for _, col := range ann.Columns {
		if col == ColTrackName || col == ColAlbumTitle {
			continue
		}
		if out.HasColumn(col) {
			if log != nil {
				log.Warn("annotation column collides with primary column, skipping",
					"column", col)
			}
			continue
		}
		carried = append(carried, col)
		out.AddColumn(col)
	}

	for _, row := range out.Rows {
		track, album := row.Get(ColTrackName), row.Get(ColAlbumTitle)
		if track.IsMissing() || album.IsMissing() {
			continue
		}
		match, ok := lookup[joinKey{track: track.Display(), album: album.Display()}]
		if !ok {
			continue
		}
		for _, col := range carried {
			if v, has := match[col]; has {
				row[col] = v
			}
		}
	}

	return out, AnnotationsMerged
}
