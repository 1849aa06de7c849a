package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ESpeakProvider implements Provider using the local espeak-ng binary. It
// needs no API key and serves as the offline fallback.
type ESpeakProvider struct {
	config *Config
}

// NewESpeakProvider creates a new espeak-ng provider
func NewESpeakProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}
	if err := checkESpeakInstalled(); err != nil {
		return nil, err
	}
	return &ESpeakProvider{config: config}, nil
}

// Synthesize generates audio with espeak-ng. espeak-ng writes WAV natively;
// MP3 output goes through ffmpeg like the rest of the toolchain.
func (p *ESpeakProvider) Synthesize(ctx context.Context, text, locale string) ([]byte, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	profile, err := profileForLocale(locale)
	if err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "flashpack_espeak_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	wavFile := filepath.Join(workDir, "out.wav")
	cmd := exec.CommandContext(ctx, "espeak-ng",
		"-v", profile.ESpeakVoice,
		"-s", "150",
		"-w", wavFile,
		text,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("espeak-ng failed: %w\nOutput: %s", err, string(output))
	}

	outFile := wavFile
	if p.config.Format == "mp3" {
		outFile = filepath.Join(workDir, "out.mp3")
		if err := convertWAVToMP3(ctx, wavFile, outFile); err != nil {
			return nil, err
		}
	}

	return os.ReadFile(outFile)
}

// Name returns the provider name
func (p *ESpeakProvider) Name() string {
	return "espeak-ng"
}

// IsAvailable checks if espeak-ng is installed
func (p *ESpeakProvider) IsAvailable() error {
	return checkESpeakInstalled()
}

// checkESpeakInstalled verifies that espeak-ng is available on the system
func checkESpeakInstalled() error {
	if err := exec.Command("espeak-ng", "--version").Run(); err != nil {
		return fmt.Errorf("espeak-ng is not installed or not in PATH: %w", err)
	}
	return nil
}

// convertWAVToMP3 converts a WAV file to MP3 using ffmpeg
func convertWAVToMP3(ctx context.Context, wavFile, mp3File string) error {
	if err := exec.Command("ffmpeg", "-version").Run(); err != nil {
		return fmt.Errorf("ffmpeg is not installed or not in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-i", wavFile, "-acodec", "mp3", "-y", mp3File)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
