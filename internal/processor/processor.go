package processor

import (
	"context"
	"fmt"
	"os"

	"codeberg.org/snonux/flashpack/internal/anki"
	"codeberg.org/snonux/flashpack/internal/audio"
	"codeberg.org/snonux/flashpack/internal/cli"
	"codeberg.org/snonux/flashpack/internal/table"
)

// Processor drives a single flashpack run: building a package from CSV
// inputs, or exporting an existing package back to CSV.
type Processor struct {
	flags *cli.Flags
}

// NewProcessor creates a new processor
func NewProcessor(flags *cli.Flags) *Processor {
	return &Processor{flags: flags}
}

// Export reads an existing package and writes its word pairs as CSV to the
// configured output path.
func (p *Processor) Export(packagePath string) error {
	t, err := anki.Read(packagePath)
	if err != nil {
		return err
	}

	if err := table.WriteCSV(t, p.flags.Output); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d pairs to %s\n", t.Len(), p.flags.Output)
	return nil
}

// Build parses and merges the input files, optionally fills in synthesized
// audio, and writes the resulting deck as a package. It returns the final
// package path.
func (p *Processor) Build(ctx context.Context, inputFiles []string) (string, error) {
	t, err := p.loadInputs(inputFiles)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(os.Stderr, "Loaded %d word pairs\n", t.Len())

	if p.flags.WithAudio {
		provider, err := p.newProvider()
		if err != nil {
			return "", err
		}
		if err := audio.Fill(ctx, t, provider, p.flags.Locale); err != nil {
			return "", err
		}
	}

	deck, err := p.newDeck()
	if err != nil {
		return "", err
	}

	if _, err := deck.Create(t, p.flags.Bidirectional); err != nil {
		// The deck was never written, so its staging area must go now.
		deck.Discard()
		return "", err
	}

	return deck.Write(p.flags.Output)
}

func (p *Processor) loadInputs(inputFiles []string) (*table.Table, error) {
	merged, err := table.ParseCSV(inputFiles[0])
	if err != nil {
		return nil, err
	}
	for _, path := range inputFiles[1:] {
		next, err := table.ParseCSV(path)
		if err != nil {
			return nil, err
		}
		merged, err = table.Merge(merged, next)
		if err != nil {
			return nil, err
		}
	}
	return merged, nil
}

func (p *Processor) newDeck() (*anki.Deck, error) {
	opts := []anki.Option{anki.WithAudioFormat(p.flags.AudioFormat)}
	if p.flags.DeckID != 0 {
		opts = append(opts, anki.WithDeckID(p.flags.DeckID))
	}
	return anki.NewDeck(p.flags.DeckName, opts...)
}

func (p *Processor) newProvider() (audio.Provider, error) {
	return audio.NewProvider(&audio.Config{
		Provider:    p.flags.AudioProvider,
		Format:      p.flags.AudioFormat,
		OpenAIKey:   cli.GetOpenAIKey(),
		OpenAIModel: p.flags.OpenAIModel,
		OpenAIVoice: p.flags.OpenAIVoice,
		OpenAISpeed: p.flags.OpenAISpeed,
	})
}
