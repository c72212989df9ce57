// Package tabular provides the in-memory table model shared by the whole
// pipeline, plus CSV and XLSX codecs. A table is an ordered column list and
// an ordered row list; every row holds exactly one string cell per column.
package tabular

import (
	"errors"
	"fmt"
)

// Well-known column names.
const (
	ColFullName = "full_name"
	ColEmail    = "email"
	ColToken    = "token"
	ColQRFile   = "qr_file"
)

// ErrMissingColumn is returned by Load when a required column is absent
// from the input header.
var ErrMissingColumn = errors.New("required column missing")

// Table is an ordered set of rows sharing a common column set.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Len returns the number of data rows (the header is not a row).
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1 if absent.
func (t *Table) Index(col string) int {
	for i, c := range t.Columns {
		if c == col {
			return i
		}
	}
	return -1
}

// Get returns the cell at the given row for the named column. Returns the
// empty string if the column does not exist.
func (t *Table) Get(row int, col string) string {
	i := t.Index(col)
	if i < 0 {
		return ""
	}
	return t.Rows[row][i]
}

// Clone returns a deep copy of the table. The pipeline augments a clone so
// the loaded input table is never mutated during iteration.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// SetColumn replaces the named column with the given values, creating the
// column (appended last) if it does not exist. values must have one entry
// per row.
func (t *Table) SetColumn(col string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q: %d values for %d rows", col, len(values), len(t.Rows))
	}
	i := t.Index(col)
	if i < 0 {
		t.Columns = append(t.Columns, col)
		for r := range t.Rows {
			t.Rows[r] = append(t.Rows[r], values[r])
		}
		return nil
	}
	for r := range t.Rows {
		t.Rows[r][i] = values[r]
	}
	return nil
}

// ensureColumn appends an empty column if the name is absent. Used to
// normalize optional input columns so every row has a cell for them.
func (t *Table) ensureColumn(col string) {
	if t.Index(col) >= 0 {
		return
	}
	t.Columns = append(t.Columns, col)
	for r := range t.Rows {
		t.Rows[r] = append(t.Rows[r], "")
	}
}

// normalize validates the required column and fills in optional ones.
// path is only used for error messages.
func (t *Table) normalize(path string) error {
	if t.Index(ColFullName) < 0 {
		return fmt.Errorf("input %s: %w: %s", path, ErrMissingColumn, ColFullName)
	}
	t.ensureColumn(ColEmail)
	t.ensureColumn(ColToken)
	return nil
}

// padRows extends every row shorter than the header with empty cells and
// rejects rows wider than the header.
func (t *Table) padRows(path string) error {
	width := len(t.Columns)
	for i, row := range t.Rows {
		if len(row) > width {
			return fmt.Errorf("input %s: row %d has %d fields, header has %d", path, i+1, len(row), width)
		}
		for len(row) < width {
			row = append(row, "")
		}
		t.Rows[i] = row
	}
	return nil
}
