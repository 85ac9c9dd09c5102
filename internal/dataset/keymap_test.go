package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteName(t *testing.T) {
	tests := []struct {
		name string
		cell Value
		want string
		ok   bool
	}{
		{"C", Number(0), "C", true},
		{"F", Number(5), "F", true},
		{"B", Number(11), "B", true},
		{"out of range high", Number(12), "", false},
		{"negative", Number(-1), "", false},
		{"fractional", Number(5.5), "", false},
		{"missing", Missing(), "", false},
		{"string", String("5"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NoteName(tt.cell)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNoteNameColumnDropsUnmapped(t *testing.T) {
	tbl := NewTable("key_key")
	tbl.Rows = []Row{
		{"key_key": Number(5)},
		{"key_key": Number(12)},
		{},
		{"key_key": Number(0)},
	}

	names := NoteNameColumn(tbl, "key_key")

	assert.Equal(t, []string{"F", "C"}, names)
	// View-local: the numeric column is untouched.
	assert.Equal(t, Number(12), tbl.Get(1, "key_key"))
}

func TestNoteNameColumnAbsent(t *testing.T) {
	assert.Nil(t, NoteNameColumn(NewTable("other"), "key_key"))
}
