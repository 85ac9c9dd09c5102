// Package dataset implements the schema-on-read table model and the
// load-time pipeline for the Songboard catalog: CSV ingestion, key
// normalization, the annotation merge, derived columns, and the
// aggregation views that feed the dashboard charts.
//
// Tables are schema-less by design. The primary CSV carries an open-ended
// set of audio-feature columns whose names the pipeline does not fix;
// everything downstream works off an ordered column list plus tagged cell
// values (string / number / bool / missing).
package dataset

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind discriminates the tagged cell value types.
type Kind uint8

// Cell value kinds.
const (
	KindMissing Kind = iota
	KindString
	KindNumber
	KindBool
)

// Value is a tagged cell value. The zero value is missing.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// Missing returns the canonical missing marker.
func Missing() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool {
	return v.kind == KindMissing
}

// Str returns the string content. Empty for non-string kinds.
func (v Value) Str() string {
	return v.str
}

// Num returns the numeric content. Zero for non-number kinds.
func (v Value) Num() float64 {
	return v.num
}

// IsTrue reports whether the value is boolean true.
func (v Value) IsTrue() bool {
	return v.kind == KindBool && v.b
}

// Display renders the value for human-readable output. Numbers keep the
// shortest representation that round-trips; missing renders empty.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num || (math.IsNaN(v.num) && math.IsNaN(o.num))
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// MarshalJSON encodes missing as null, other kinds as their natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes null as missing and JSON scalars to their kinds.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Missing()
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("unsupported cell value %T", raw)
	}
	return nil
}

// Row maps column names to cell values. Absent keys read as missing.
type Row map[string]Value

// Get returns the value for a column, or missing if the row has no entry.
func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Missing()
}

// Table is an ordered set of columns over a list of rows.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// NewTable creates an empty table with the given column order.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// NumRows returns the row count.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// HasColumn reports whether the table declares the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the declared order if not already present.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Get returns the cell at (row, col), or missing when out of range.
func (t *Table) Get(row int, col string) Value {
	if row < 0 || row >= len(t.Rows) {
		return Missing()
	}
	return t.Rows[row].Get(col)
}

// Set writes the cell at (row, col), declaring the column if needed.
func (t *Table) Set(row int, col string, v Value) {
	if row < 0 || row >= len(t.Rows) {
		return
	}
	t.AddColumn(col)
	if t.Rows[row] == nil {
		t.Rows[row] = Row{}
	}
	t.Rows[row][col] = v
}

// Clone returns a deep copy. Views that must not touch the shared table
// (the note-name remap, chart projections) operate on copies or on
// extracted slices, never on the original rows.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, r := range t.Rows {
		nr := make(Row, len(r))
		for k, v := range r {
			nr[k] = v
		}
		out.Rows[i] = nr
	}
	return out
}
