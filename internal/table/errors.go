package table

import "fmt"

// EmptyInputError indicates that an input file yielded no usable rows.
type EmptyInputError struct {
	Path string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("input file is empty or contains no valid flashcard data: %s", e.Path)
}

// MissingFieldError indicates that a required column is absent from a table.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required column '%s' not found in input", e.Field)
}

// IncompleteMergeError indicates that merging two tables produced a row with
// an empty native or learning cell.
type IncompleteMergeError struct {
	Field string
	Row   int
}

func (e *IncompleteMergeError) Error() string {
	return fmt.Sprintf("merge produced row %d with empty '%s' cell", e.Row, e.Field)
}
