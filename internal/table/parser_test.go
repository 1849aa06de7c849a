package table

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/flashpack/internal/testutil"
)

func TestParseCSVValid(t *testing.T) {
	path := testutil.WriteCSVFile(t, t.TempDir(), "valid.csv",
		"native;learning",
		"food;cibus",
		"apple;malum",
	)

	tbl, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}
	if tbl.Rows[0].Native != "food" || tbl.Rows[0].Learning != "cibus" {
		t.Errorf("Unexpected first row: %+v", tbl.Rows[0])
	}
	if tbl.Rows[1].Native != "apple" || tbl.Rows[1].Learning != "malum" {
		t.Errorf("Unexpected second row: %+v", tbl.Rows[1])
	}
	if tbl.HasColumn(ColumnAudio) {
		t.Error("Parsed table should not have an audio column")
	}
}

func TestParseCSVDeduplicates(t *testing.T) {
	path := testutil.WriteCSVFile(t, t.TempDir(), "dup.csv",
		"native;learning",
		"food;cibus",
		"food;cibus",
		"apple;malum",
		"food;cibus",
	)

	tbl, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	if tbl.Len() != 2 {
		t.Errorf("Expected duplicates removed, got %d rows", tbl.Len())
	}
}

func TestParseCSVIdempotent(t *testing.T) {
	path := testutil.WriteCSVFile(t, t.TempDir(), "idem.csv",
		"native;learning",
		"dobry wieczór;buona sera",
		"dziękuję;grazie",
	)

	first, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	second, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV() second run error = %v", err)
	}

	if !reflect.DeepEqual(first.Rows, second.Rows) {
		t.Error("Parsing the same file twice must yield identical rows")
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	path := testutil.WriteCSVFile(t, t.TempDir(), "empty.csv",
		"native;learning",
	)

	_, err := ParseCSV(path)
	var empty *EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("Expected EmptyInputError, got %v", err)
	}
}

func TestParseCSVEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zero.csv")
	testutil.CreateTestFile(t, path, nil)

	_, err := ParseCSV(path)
	var empty *EmptyInputError
	if !errors.As(err, &empty) {
		t.Fatalf("Expected EmptyInputError, got %v", err)
	}
}

func TestParseCSVMissingFile(t *testing.T) {
	_, err := ParseCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestParseCSVWrongColumnCount(t *testing.T) {
	path := testutil.WriteCSVFile(t, t.TempDir(), "bad.csv",
		"native;learning;extra",
		"a;b;c",
	)

	if _, err := ParseCSV(path); err == nil {
		t.Fatal("Expected error for three-column input")
	}
}

func TestParseCSVUnicode(t *testing.T) {
	path := testutil.WriteCSVFile(t, t.TempDir(), "unicode.csv",
		"native;learning",
		"こんにちは;hello",
		"добър вечер;good evening",
	)

	tbl, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if tbl.Rows[0].Native != "こんにちは" {
		t.Errorf("Unicode native text mangled: %q", tbl.Rows[0].Native)
	}
	if tbl.Rows[1].Native != "добър вечер" {
		t.Errorf("Unicode native text mangled: %q", tbl.Rows[1].Native)
	}
}
