package dataset

import "time"

// Snapshot is the immutable result of one load pass: the merged, derived
// table plus everything a consumer needs to interpret it. Snapshots are
// built once per distinct input-file fingerprint and never mutated; views
// derive what they need per request.
type Snapshot struct {
	// Fingerprint identifies the input files (path, size, mtime) this
	// snapshot was built from.
	Fingerprint string `json:"fingerprint"`

	// LoadedAt is when the load pass ran.
	LoadedAt time.Time `json:"loaded_at"`

	// Annotations records the merge outcome for downstream consumers.
	Annotations AnnotationStatus `json:"annotations"`

	// Table is the merged table with derived columns in place.
	Table *Table `json:"table"`

	// IDs holds one stable track ID per row, parallel to Table.Rows.
	// Display names are not guaranteed unique, so detail lookups key on
	// these instead.
	IDs []string `json:"ids"`
}

// RowByID returns the row index for a track ID, or -1 when unknown.
func (s *Snapshot) RowByID(id string) int {
	for i, rid := range s.IDs {
		if rid == id {
			return i
		}
	}
	return -1
}
