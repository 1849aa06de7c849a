package table

// Merge combines two tables as an outer join on (native, learning).
//
// The result contains every distinct pair from either table, in order of
// first appearance (all of a's rows, then b's rows not already present).
// When the same pair exists in both tables, the audio cell from a wins;
// b's audio is used only when a has none.
//
// Any contributing row with an empty native or learning cell makes the
// merge fail with an IncompleteMergeError. Incomplete rows are never
// silently dropped or filled.
func Merge(a, b *Table) (*Table, error) {
	merged := make([]Pair, 0, a.Len()+b.Len())
	index := make(map[[2]string]int, a.Len()+b.Len())

	for _, src := range []*Table{a, b} {
		for _, row := range src.Rows {
			if err := checkComplete(row, len(merged)); err != nil {
				return nil, err
			}
			key := [2]string{row.Native, row.Learning}
			if i, ok := index[key]; ok {
				if merged[i].Audio == nil {
					merged[i].Audio = row.Audio
				}
				continue
			}
			index[key] = len(merged)
			merged = append(merged, row)
		}
	}

	return New(merged...), nil
}

func checkComplete(row Pair, idx int) error {
	if row.Native == "" {
		return &IncompleteMergeError{Field: string(ColumnNative), Row: idx}
	}
	if row.Learning == "" {
		return &IncompleteMergeError{Field: string(ColumnLearning), Row: idx}
	}
	return nil
}
