package anki

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"codeberg.org/snonux/flashpack/internal/table"
)

// note is one flashcard instance bound to a model with concrete field values.
type note struct {
	model  *CardModel
	fields []string
	guid   string
}

// Deck accumulates notes and staged media files until written to a package.
//
// A Deck owns a staging directory for audio files, created on construction
// and removed when the deck is written (success or failure) or discarded.
// Decks are not safe for concurrent use.
type Deck struct {
	name        string
	id          int64
	notes       []note
	models      map[int64]*CardModel
	mediaFiles  []string
	stagingDir  string
	audioFormat string
	newGUID     func() string
}

// Option configures a Deck at construction time.
type Option func(*Deck)

// WithDeckID fixes the deck identifier instead of deriving it from the
// current time. Repeated writes of a deck built with the same ID produce
// packages with the same deck identity.
func WithDeckID(id int64) Option {
	return func(d *Deck) { d.id = id }
}

// WithAudioFormat sets the file extension used for staged audio files.
// The default is mp3.
func WithAudioFormat(format string) Option {
	return func(d *Deck) { d.audioFormat = format }
}

// WithGUIDSource replaces the note GUID generator, useful for deterministic
// tests. The default generates random UUIDs.
func WithGUIDSource(fn func() string) Option {
	return func(d *Deck) { d.newGUID = fn }
}

// NewDeck creates an empty deck and its staging directory.
func NewDeck(name string, opts ...Option) (*Deck, error) {
	d := &Deck{
		name:        name,
		id:          time.Now().UnixMilli(),
		models:      make(map[int64]*CardModel),
		audioFormat: "mp3",
		newGUID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}

	stagingDir, err := os.MkdirTemp("", "flashpack_deck_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	d.stagingDir = stagingDir

	return d, nil
}

// Name returns the deck name.
func (d *Deck) Name() string { return d.name }

// ID returns the deck identifier.
func (d *Deck) ID() int64 { return d.id }

// StagingDir returns the path of the deck's staging directory. It is empty
// after the deck has been written or discarded.
func (d *Deck) StagingDir() string { return d.stagingDir }

// NoteCount returns the number of notes accumulated so far.
func (d *Deck) NoteCount() int { return len(d.notes) }

// MediaFiles returns the staged media file paths referenced by the deck.
func (d *Deck) MediaFiles() []string { return d.mediaFiles }

// Create builds one note per table row and appends them to the deck in row
// order. Rows with a non-empty audio cell have their audio bytes staged to a
// file immediately and use the audio-bearing model; other rows use the plain
// model. The required native and learning columns are validated once before
// any row is processed.
//
// Create returns the deck itself so configuration can be chained.
func (d *Deck) Create(t *table.Table, bidirectional bool) (*Deck, error) {
	if err := t.RequireColumns(table.ColumnNative, table.ColumnLearning); err != nil {
		return d, err
	}

	for i, row := range t.Rows {
		if len(row.Audio) > 0 {
			filename := fmt.Sprintf("audio_%d.%s", i, d.audioFormat)
			staged := filepath.Join(d.stagingDir, filename)
			if err := os.WriteFile(staged, row.Audio, 0644); err != nil {
				return d, fmt.Errorf("failed to stage audio file: %w", err)
			}
			d.mediaFiles = append(d.mediaFiles, staged)

			model := SelectModel(true, bidirectional)
			d.addNote(model, []string{
				row.Native,
				row.Learning,
				fmt.Sprintf("[sound:%s]", filename),
			})
			continue
		}

		model := SelectModel(false, bidirectional)
		d.addNote(model, []string{row.Native, row.Learning})
	}

	return d, nil
}

func (d *Deck) addNote(model *CardModel, fields []string) {
	d.models[model.ID] = model
	d.notes = append(d.notes, note{
		model:  model,
		fields: fields,
		guid:   d.newGUID(),
	})
}

// Discard releases the staging directory without writing the deck.
func (d *Deck) Discard() error {
	return d.releaseStaging()
}

func (d *Deck) releaseStaging() error {
	if d.stagingDir == "" {
		return nil
	}
	dir := d.stagingDir
	d.stagingDir = ""
	return os.RemoveAll(dir)
}
