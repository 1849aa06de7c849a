package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Output", flags.Output, "flashcards.apkg"},
		{"DeckName", flags.DeckName, "Flashcards"},
		{"Locale", flags.Locale, "it-IT"},
		{"AudioFormat", flags.AudioFormat, "mp3"},
		{"AudioProvider", flags.AudioProvider, "openai"},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"OpenAISpeed", flags.OpenAISpeed, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Test boolean defaults (should be false)
	boolTests := []struct {
		name  string
		value bool
	}{
		{"Bidirectional", flags.Bidirectional},
		{"WithAudio", flags.WithAudio},
		{"ListLocales", flags.ListLocales},
		{"ListModels", flags.ListModels},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}
}

func TestFlagsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *Flags)
		wantErr bool
	}{
		{"defaults are valid", func(f *Flags) {}, false},
		{"empty output", func(f *Flags) { f.Output = "" }, true},
		{"empty deck name", func(f *Flags) { f.DeckName = "" }, true},
		{"invalid locale", func(f *Flags) { f.Locale = "not a locale" }, true},
		{"empty locale allowed", func(f *Flags) { f.Locale = "" }, false},
		{"bad audio format", func(f *Flags) { f.AudioFormat = "ogg" }, true},
		{"bad audio provider", func(f *Flags) { f.AudioProvider = "festival" }, true},
		{"bad openai voice", func(f *Flags) { f.OpenAIVoice = "robot" }, true},
		{"valid openai voice", func(f *Flags) { f.OpenAIVoice = "nova" }, false},
		{"speed too slow", func(f *Flags) { f.OpenAISpeed = 0.1 }, true},
		{"speed too fast", func(f *Flags) { f.OpenAISpeed = 5.0 }, true},
		{"speed at lower bound", func(f *Flags) { f.OpenAISpeed = 0.25 }, false},
		{"speed at upper bound", func(f *Flags) { f.OpenAISpeed = 4.0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags := NewFlags()
			tt.mutate(flags)
			err := flags.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
