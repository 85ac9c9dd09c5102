package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// utf8BOM is stripped from the first header cell when present. The upstream
// export scripts write utf-8-sig.
const utf8BOM = "\ufeff"

// ReadCSV parses a comma-separated file into a Table. The first record is
// the header; every other record becomes a row. Cells are typed on read:
// empty cells are missing, cells that parse as finite floats are numbers,
// everything else is a string. Short records leave their trailing columns
// missing rather than failing.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path) //#nosec G304 -- data file path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// ParseCSV parses CSV content from a reader. See ReadCSV.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header record")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	t := NewTable()
	for _, col := range header {
		t.AddColumn(strings.TrimSpace(col))
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i >= len(record) {
				break
			}
			if v := parseCell(record[i]); !v.IsMissing() {
				row[col] = v
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// parseCell types a raw CSV cell. Literal "nan"/"None" placeholders are kept
// as strings here; only the key normalizer collapses them, and only for the
// designated join columns.
func parseCell(raw string) Value {
	if raw == "" {
		return Missing()
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		// ParseFloat accepts "nan" and "inf"; those are placeholders in the
		// source data, not measurements.
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			return Number(f)
		}
	}
	return String(raw)
}
