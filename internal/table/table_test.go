package table

import (
	"errors"
	"testing"
)

func TestNewAudioColumnPresence(t *testing.T) {
	tests := []struct {
		name      string
		rows      []Pair
		wantAudio bool
	}{
		{
			name:      "no rows",
			rows:      nil,
			wantAudio: false,
		},
		{
			name: "no audio cells",
			rows: []Pair{
				{Native: "hello", Learning: "hola"},
				{Native: "goodbye", Learning: "adiós"},
			},
			wantAudio: false,
		},
		{
			name: "one audio cell",
			rows: []Pair{
				{Native: "hello", Learning: "hola"},
				{Native: "thank you", Learning: "gracias", Audio: []byte{0x00, 0x01}},
			},
			wantAudio: true,
		},
		{
			name: "empty but present audio cell",
			rows: []Pair{
				{Native: "hello", Learning: "hola", Audio: []byte{}},
			},
			wantAudio: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New(tt.rows...)
			if got := tbl.HasColumn(ColumnAudio); got != tt.wantAudio {
				t.Errorf("HasColumn(audio) = %v, want %v", got, tt.wantAudio)
			}
			if !tbl.HasColumn(ColumnNative) || !tbl.HasColumn(ColumnLearning) {
				t.Error("native and learning columns must always be present")
			}
		})
	}
}

func TestRequireColumns(t *testing.T) {
	tbl := &Table{Columns: []Column{ColumnNative}}

	err := tbl.RequireColumns(ColumnNative, ColumnLearning)
	if err == nil {
		t.Fatal("Expected error for missing learning column")
	}

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingFieldError, got %T", err)
	}
	if missing.Field != "learning" {
		t.Errorf("Expected missing field 'learning', got '%s'", missing.Field)
	}

	tbl = &Table{Columns: []Column{ColumnLearning}}
	err = tbl.RequireColumns(ColumnNative, ColumnLearning)
	if !errors.As(err, &missing) {
		t.Fatalf("Expected MissingFieldError, got %v", err)
	}
	if missing.Field != "native" {
		t.Errorf("Expected missing field 'native', got '%s'", missing.Field)
	}
}

func TestRequireColumnsComplete(t *testing.T) {
	tbl := New(Pair{Native: "hello", Learning: "hola"})
	if err := tbl.RequireColumns(ColumnNative, ColumnLearning); err != nil {
		t.Errorf("RequireColumns() on complete table: %v", err)
	}
}
