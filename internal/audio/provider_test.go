package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

// mockProvider is a configurable in-memory provider for tests.
type mockProvider struct {
	name  string
	audio []byte
	err   error
	calls []string
}

func (m *mockProvider) Synthesize(ctx context.Context, text, locale string) ([]byte, error) {
	m.calls = append(m.calls, text)
	if m.err != nil {
		return nil, m.err
	}
	if m.audio != nil {
		return m.audio, nil
	}
	return []byte(fmt.Sprintf("audio:%s:%s", locale, text)), nil
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) IsAvailable() error { return m.err }

func TestNewProviderRequiresOpenAIKey(t *testing.T) {
	_, err := NewProvider(&Config{Provider: "openai"})
	if err == nil {
		t.Fatal("Expected error for missing OpenAI API key")
	}
	if !strings.Contains(err.Error(), "API key") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(&Config{Provider: "festival"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "unknown audio provider") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	config := DefaultProviderConfig()
	config.OpenAIKey = "test-key"

	provider, err := NewProvider(config)
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	if provider.Name() != "OpenAI TTS" {
		t.Errorf("Expected provider name 'OpenAI TTS', got '%s'", provider.Name())
	}
}

func TestFallbackUsesPrimaryFirst(t *testing.T) {
	primary := &mockProvider{name: "primary", audio: []byte("primary audio")}
	fallback := &mockProvider{name: "fallback", audio: []byte("fallback audio")}

	provider := NewProviderWithFallback(primary, fallback)
	data, err := provider.Synthesize(context.Background(), "ciao", "it-IT")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if string(data) != "primary audio" {
		t.Errorf("Expected primary audio, got %q", data)
	}
	if len(fallback.calls) != 0 {
		t.Error("Fallback provider should not have been called")
	}
}

func TestFallbackOnPrimaryFailure(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("service unavailable")}
	fallback := &mockProvider{name: "fallback", audio: []byte("fallback audio")}

	provider := NewProviderWithFallback(primary, fallback)
	data, err := provider.Synthesize(context.Background(), "ciao", "it-IT")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if string(data) != "fallback audio" {
		t.Errorf("Expected fallback audio, got %q", data)
	}
}

func TestFallbackBothFail(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("down")}
	fallback := &mockProvider{name: "fallback", err: errors.New("also down")}

	provider := NewProviderWithFallback(primary, fallback)
	if _, err := provider.Synthesize(context.Background(), "ciao", "it-IT"); err == nil {
		t.Fatal("Expected error when both providers fail")
	}
	if err := provider.IsAvailable(); err == nil {
		t.Fatal("Expected IsAvailable error when both providers are down")
	}
}
