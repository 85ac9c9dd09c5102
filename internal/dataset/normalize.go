package dataset

import "log/slog"

// Placeholder strings that upstream exports write into join-key cells when
// the real value is unknown. They must compare equal to an absent cell.
var keyPlaceholders = map[string]bool{
	"nan":  true,
	"None": true,
	"":     true,
}

// NormalizeKeys collapses placeholder values in the designated key columns
// to the missing marker, in place. Columns the table does not declare are
// skipped with a warning; the merger handles their absence.
func NormalizeKeys(t *Table, keyColumns []string, log *slog.Logger) {
	for _, col := range keyColumns {
		if !t.HasColumn(col) {
			if log != nil {
				log.Warn("key column not present, skipping normalization", "column", col)
			}
			continue
		}
		for _, row := range t.Rows {
			v, ok := row[col]
			if !ok {
				continue
			}
			if v.Kind() == KindString && keyPlaceholders[v.Str()] {
				delete(row, col)
			}
		}
	}
}
