package table

import (
	"encoding/csv"
	"fmt"
	"os"
)

// WriteCSV writes the table back to the semicolon-delimited input format.
// Audio cells are not representable in the text format and are omitted.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'
	defer w.Flush()

	if err := w.Write([]string{string(ColumnNative), string(ColumnLearning)}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range t.Rows {
		if err := w.Write([]string{row.Native, row.Learning}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
