package tabular

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "people.csv",
		"full_name,email,token\nAnna Berg,anna@example.com,ABC123\nBo Lind,,\n")

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if got := tbl.Get(0, ColToken); got != "ABC123" {
		t.Fatalf("row 0 token = %q", got)
	}
	if got := tbl.Get(1, ColFullName); got != "Bo Lind" {
		t.Fatalf("row 1 full_name = %q", got)
	}
}

func TestLoadCSVNormalizesOptionalColumns(t *testing.T) {
	path := writeFile(t, "people.csv", "full_name\nAnna Berg\n")

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, col := range []string{ColEmail, ColToken} {
		if tbl.Index(col) < 0 {
			t.Fatalf("column %q not created", col)
		}
		if got := tbl.Get(0, col); got != "" {
			t.Fatalf("column %q default = %q, want empty", col, got)
		}
	}
}

func TestLoadCSVMissingRequiredColumn(t *testing.T) {
	path := writeFile(t, "people.csv", "name,email\nAnna Berg,anna@example.com\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load did not fail")
	}
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("error %v is not ErrMissingColumn", err)
	}
}

func TestLoadCSVEmptyFile(t *testing.T) {
	path := writeFile(t, "people.csv", "")
	if _, err := Load(path); err == nil {
		t.Fatal("Load of empty file did not fail")
	}
}

func TestLoadCSVPadsRaggedRows(t *testing.T) {
	path := writeFile(t, "people.csv", "full_name,email,token\nAnna Berg\n")

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := tbl.Get(0, ColToken); got != "" {
		t.Fatalf("padded token cell = %q, want empty", got)
	}
}

func TestLoadCSVRejectsWideRows(t *testing.T) {
	path := writeFile(t, "people.csv", "full_name\nAnna Berg,extra,extra\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load of over-wide row did not fail")
	}
}

func TestCSVRoundTripPreservesExtraColumns(t *testing.T) {
	in := writeFile(t, "people.csv",
		"full_name,dept,email,token\nAnna Berg,sales,anna@example.com,ABC123\n")

	tbl, err := Load(in)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	out := filepath.Join(t.TempDir(), "out.csv")
	if err := tbl.Write(out); err != nil {
		t.Fatalf("Write: %v", err)
	}

	back, err := Load(out)
	if err != nil {
		t.Fatalf("re-Load: %v", err)
	}
	if !reflect.DeepEqual(back.Columns, tbl.Columns) {
		t.Fatalf("columns changed: %v -> %v", tbl.Columns, back.Columns)
	}
	if got := back.Get(0, "dept"); got != "sales" {
		t.Fatalf("extra column lost: dept = %q", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tbl := &Table{
		Columns: []string{ColFullName, ColToken},
		Rows:    [][]string{{"Anna Berg", "ABC123"}},
	}

	clone := tbl.Clone()
	if err := clone.SetColumn(ColToken, []string{"XYZ789"}); err != nil {
		t.Fatalf("SetColumn: %v", err)
	}
	if err := clone.SetColumn(ColQRFile, []string{"1_XYZ789.png"}); err != nil {
		t.Fatalf("SetColumn new: %v", err)
	}

	if got := tbl.Get(0, ColToken); got != "ABC123" {
		t.Fatalf("clone mutation leaked into original: token = %q", got)
	}
	if tbl.Index(ColQRFile) >= 0 {
		t.Fatal("clone column creation leaked into original")
	}
	if got := clone.Get(0, ColQRFile); got != "1_XYZ789.png" {
		t.Fatalf("clone qr_file = %q", got)
	}
}

func TestSetColumnLengthMismatch(t *testing.T) {
	tbl := &Table{Columns: []string{ColFullName}, Rows: [][]string{{"Anna Berg"}}}
	if err := tbl.SetColumn(ColToken, []string{"A", "B"}); err == nil {
		t.Fatal("SetColumn with wrong length did not fail")
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "full_name")
	f.SetCellValue(sheet, "B1", "token")
	f.SetCellValue(sheet, "A2", "Anna Berg")
	f.SetCellValue(sheet, "B2", "ABC123")
	f.SetCellValue(sheet, "A3", "Bo Lind")

	path := filepath.Join(t.TempDir(), "people.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save fixture: %v", err)
	}

	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
	if got := tbl.Get(0, ColToken); got != "ABC123" {
		t.Fatalf("row 0 token = %q", got)
	}
	// Trailing empty cell omitted by the reader must be padded back.
	if got := tbl.Get(1, ColToken); got != "" {
		t.Fatalf("row 1 token = %q, want empty", got)
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	tbl := &Table{
		Columns: []string{ColFullName, ColEmail, ColToken},
		Rows: [][]string{
			{"Anna Berg", "anna@example.com", "ABC123"},
			{"Bo Lind", "", ""},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	if err := tbl.Write(path); err != nil {
		t.Fatalf("Write: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", back.Len())
	}
	if got := back.Get(0, ColEmail); got != "anna@example.com" {
		t.Fatalf("email = %q", got)
	}
	if got := back.Get(1, ColFullName); got != "Bo Lind" {
		t.Fatalf("full_name = %q", got)
	}
}
