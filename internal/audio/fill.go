package audio

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/snonux/flashpack/internal/table"
)

// Fill synthesizes audio for the learning text of every row and stores the
// bytes in the row's audio cell. Rows are processed in order; the first
// failure aborts the whole batch with no retries, leaving earlier rows
// filled.
func Fill(ctx context.Context, t *table.Table, provider Provider, locale string) error {
	for i := range t.Rows {
		row := &t.Rows[i]
		fmt.Fprintf(os.Stderr, "Generating TTS %d/%d: %s\n", i+1, t.Len(), row.Learning)

		data, err := provider.Synthesize(ctx, row.Learning, locale)
		if err != nil {
			return fmt.Errorf("audio synthesis failed for '%s': %w", row.Learning, err)
		}
		row.Audio = data
	}

	if t.Len() > 0 && !t.HasColumn(table.ColumnAudio) {
		t.Columns = append(t.Columns, table.ColumnAudio)
	}

	return nil
}
