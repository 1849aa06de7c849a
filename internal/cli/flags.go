package cli

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile       string
	Output        string `validate:"required"`
	DeckName      string `validate:"required"`
	DeckID        int64
	Bidirectional bool
	Locale        string `validate:"omitempty,bcp47_language_tag"`
	WithAudio     bool
	AudioFormat   string `validate:"oneof=mp3 wav"`
	AudioProvider string `validate:"oneof=openai espeak"`
	ExportFile    string
	ListLocales   bool
	ListModels    bool

	// OpenAI flags
	OpenAIModel string  `validate:"required"`
	OpenAIVoice string  `validate:"omitempty,oneof=alloy ash ballad coral echo fable onyx nova sage shimmer verse"`
	OpenAISpeed float64 `validate:"gte=0.25,lte=4"`
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Output:        "flashcards.apkg",
		DeckName:      "Flashcards",
		Locale:        "it-IT",
		AudioFormat:   "mp3",
		AudioProvider: "openai",
		OpenAIModel:   "gpt-4o-mini-tts",
		OpenAISpeed:   1.0,
	}
}

// Validate checks flag values against their constraints before any work
// starts.
func (f *Flags) Validate() error {
	err := validator.New().Struct(f)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		return fmt.Errorf("invalid value for %s: failed '%s' constraint", e.Field(), e.Tag())
	}
	return err
}
