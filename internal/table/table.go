package table

// Column identifies a named column in a Table.
type Column string

const (
	ColumnNative   Column = "native"
	ColumnLearning Column = "learning"
	ColumnAudio    Column = "audio"
)

// Pair is one flashcard fact: text in the native language, text in the
// language being learned, and optionally synthesized audio for the learning
// side. A nil Audio slice means the row has no audio cell at all; a non-nil
// empty slice means the cell exists but is empty.
type Pair struct {
	Native   string
	Learning string
	Audio    []byte
}

// Table is an ordered collection of Pairs with an explicit column set.
// Column presence is tracked separately from row data so that a table can
// lack the audio column entirely (rather than carrying a column of nils),
// and so that validation can report a missing text column by name.
type Table struct {
	Columns []Column
	Rows    []Pair
}

// New creates a table over the given rows. The native and learning columns
// are always present; the audio column is added only if at least one row
// carries an audio cell.
func New(rows ...Pair) *Table {
	t := &Table{
		Columns: []Column{ColumnNative, ColumnLearning},
		Rows:    rows,
	}
	for _, row := range rows {
		if row.Audio != nil {
			t.Columns = append(t.Columns, ColumnAudio)
			break
		}
	}
	return t
}

// HasColumn reports whether the table carries the given column.
func (t *Table) HasColumn(c Column) bool {
	for _, col := range t.Columns {
		if col == c {
			return true
		}
	}
	return false
}

// RequireColumns returns a MissingFieldError naming the first of the given
// columns that the table lacks, or nil if all are present.
func (t *Table) RequireColumns(cols ...Column) error {
	for _, c := range cols {
		if !t.HasColumn(c) {
			return &MissingFieldError{Field: string(c)}
		}
	}
	return nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// dedupe removes rows whose (native, learning) combination already appeared,
// keeping the first occurrence. Audio cells from discarded duplicates are
// dropped with them.
func dedupe(rows []Pair) []Pair {
	seen := make(map[[2]string]bool, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		key := [2]string{row.Native, row.Learning}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, row)
	}
	return out
}
