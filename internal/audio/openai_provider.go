package audio

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

// OpenAIProvider implements Provider interface for OpenAI TTS
type OpenAIProvider struct {
	client  *openai.Client
	config  *Config
	breaker *gobreaker.CircuitBreaker
}

// NewOpenAIProvider creates a new OpenAI TTS provider. API calls run through
// a circuit breaker so a run against a failing endpoint stops issuing
// requests instead of timing out on every remaining row.
func NewOpenAIProvider(config *Config) (Provider, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	return &OpenAIProvider{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "openai-tts",
		}),
	}, nil
}

// Synthesize generates audio for text using OpenAI TTS. The voice and
// pronunciation instruction come from the locale's voice profile unless a
// voice override is configured; an unsupported locale fails before any
// network call.
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, locale string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	profile, err := profileForLocale(locale)
	if err != nil {
		return nil, err
	}

	voice := profile.OpenAIVoice
	if p.config.OpenAIVoice != "" {
		voice = p.config.OpenAIVoice
	}

	req := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(p.config.OpenAIModel),
		Input:          text,
		Voice:          openai.SpeechVoice(voice),
		Speed:          p.config.OpenAISpeed,
		ResponseFormat: responseFormat(p.config.Format),
	}

	// Voice instructions are only understood by the gpt-4o-mini models.
	if p.config.OpenAIModel == "gpt-4o-mini-tts" || p.config.OpenAIModel == "gpt-4o-mini-audio-preview" {
		req.Instructions = profile.Instruction
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		response, err := p.client.CreateSpeech(ctx, req)
		if err != nil {
			return nil, err
		}
		defer response.Close()
		return io.ReadAll(response)
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}

	return result.([]byte), nil
}

func responseFormat(format string) openai.SpeechResponseFormat {
	switch format {
	case "wav":
		return openai.SpeechResponseFormatWav
	case "opus":
		return openai.SpeechResponseFormatOpus
	case "aac":
		return openai.SpeechResponseFormatAac
	case "flac":
		return openai.SpeechResponseFormatFlac
	default:
		return openai.SpeechResponseFormatMp3
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "OpenAI TTS"
}

// IsAvailable checks if the provider is configured
func (p *OpenAIProvider) IsAvailable() error {
	if p.config.OpenAIKey == "" {
		return fmt.Errorf("OpenAI API key not configured")
	}
	return nil
}
