package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/flashpack/internal/audio"
)

// Lister handles listing the locales and OpenAI models usable for audio
// synthesis.
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new lister
func NewLister(apiKey string) *Lister {
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClient(apiKey),
	}
}

// ListLocales prints the locales a voice is configured for. Needs no API
// key.
func (l *Lister) ListLocales() error {
	fmt.Println("Supported TTS locales:")
	for _, locale := range audio.SupportedLocales() {
		fmt.Printf("  %-8s %s\n", locale, audio.LanguageForLocale(locale))
	}
	return nil
}

// ListModels lists the TTS-capable OpenAI models available to the
// configured API key.
func (l *Lister) ListModels() error {
	if l.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .flashpack.yaml")
	}

	ctx := context.Background()
	models, err := l.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	ttsModels := []string{}
	for _, model := range models.Models {
		if strings.Contains(model.ID, "tts") || strings.Contains(model.ID, "audio") {
			ttsModels = append(ttsModels, model.ID)
		}
	}
	sort.Strings(ttsModels)

	fmt.Println("Available OpenAI TTS models:")
	if len(ttsModels) == 0 {
		fmt.Println("  No TTS models found")
	}
	for _, model := range ttsModels {
		fmt.Printf("  %s\n", model)
	}

	return nil
}
