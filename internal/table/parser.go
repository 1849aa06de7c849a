package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseCSV reads a semicolon-delimited UTF-8 file of word pairs into a Table.
//
// The first line is a header and is skipped; columns are positional, the
// first being the native text and the second the learning text. Duplicate
// (native, learning) rows are removed, keeping the first occurrence.
//
// Example input:
//
//	native;learning
//	dobry wieczór;buona sera
//	dziękuję;grazie
//
// A file with no data rows yields an EmptyInputError.
func ParseCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, &EmptyInputError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) != 2 {
		return nil, fmt.Errorf("expected 2 columns in %s, got %d", path, len(header))
	}

	var rows []Pair
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, Pair{Native: record[0], Learning: record[1]})
	}

	if len(rows) == 0 {
		return nil, &EmptyInputError{Path: path}
	}

	return New(dedupe(rows)...), nil
}
