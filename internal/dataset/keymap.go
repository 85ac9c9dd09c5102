package dataset

import "math"

// noteNames maps musical key codes 0-11 to note names, matching the
// standard pitch-class numbering.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName resolves a key-code cell to its note name. The second return is
// false when the cell is missing, non-numeric, fractional, or outside 0-11.
func NoteName(v Value) (string, bool) {
	if v.Kind() != KindNumber {
		return "", false
	}
	f := v.Num()
	if f != math.Trunc(f) || f < 0 || f > 11 {
		return "", false
	}
	return noteNames[int(f)], true
}

// NoteNameColumn projects the named key-code column to note names. Rows
// whose code does not resolve are dropped from the projection; the
// underlying table keeps its numeric form untouched. This is a view-local
// transform: charts over note names and charts over raw codes can coexist
// on the same snapshot.
func NoteNameColumn(t *Table, column string) []string {
	if !t.HasColumn(column) {
		return nil
	}
	var names []string
	for _, row := range t.Rows {
		if name, ok := NoteName(row.Get(column)); ok {
			names = append(names, name)
		}
	}
	return names
}
