package tabular

import (
	"path/filepath"
	"strings"
)

// Load reads a tabular file, choosing the codec by extension (.xlsx for
// Excel, anything else is treated as CSV), and normalizes it: the
// full_name column must be present, and missing email/token columns are
// created empty. The required-column check happens here, before any
// output is produced.
func Load(path string) (*Table, error) {
	var t *Table
	var err error
	if isXLSX(path) {
		t, err = loadXLSX(path)
	} else {
		t, err = loadCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if err := t.normalize(path); err != nil {
		return nil, err
	}
	return t, nil
}

// Write persists the table, choosing the codec by extension the same way
// Load does.
func (t *Table) Write(path string) error {
	if isXLSX(path) {
		return writeXLSX(t, path)
	}
	return writeCSV(t, path)
}

func isXLSX(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}
