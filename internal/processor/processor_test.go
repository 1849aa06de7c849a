package processor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/flashpack/internal/anki"
	"codeberg.org/snonux/flashpack/internal/cli"
	"codeberg.org/snonux/flashpack/internal/table"
	"codeberg.org/snonux/flashpack/internal/testutil"
)

func testFlags(tempDir string) *cli.Flags {
	flags := cli.NewFlags()
	flags.Output = filepath.Join(tempDir, "test.apkg")
	flags.DeckName = "Test Deck"
	return flags
}

func TestBuild(t *testing.T) {
	tempDir := t.TempDir()
	input := testutil.WriteCSVFile(t, tempDir, "words.csv",
		"polish;italian",
		"dobry wieczór;buona sera",
		"dziękuję;grazie",
	)

	p := NewProcessor(testFlags(tempDir))
	pkgPath, err := p.Build(context.Background(), []string{input})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := os.Stat(pkgPath); err != nil {
		t.Fatalf("Package not written: %v", err)
	}

	tbl, err := anki.Read(pkgPath)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Expected 2 pairs in package, got %d", tbl.Len())
	}
}

func TestBuildMergesInputs(t *testing.T) {
	tempDir := t.TempDir()
	first := testutil.WriteCSVFile(t, tempDir, "a.csv",
		"polish;italian",
		"dziękuję;grazie",
	)
	second := testutil.WriteCSVFile(t, tempDir, "b.csv",
		"polish;italian",
		"dziękuję;grazie",
		"proszę;prego",
	)

	p := NewProcessor(testFlags(tempDir))
	pkgPath, err := p.Build(context.Background(), []string{first, second})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tbl, err := anki.Read(pkgPath)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if tbl.Len() != 2 {
		t.Errorf("Expected overlapping pairs merged to 2, got %d", tbl.Len())
	}
}

func TestBuildMissingInput(t *testing.T) {
	tempDir := t.TempDir()

	p := NewProcessor(testFlags(tempDir))
	_, err := p.Build(context.Background(), []string{filepath.Join(tempDir, "missing.csv")})
	if err == nil {
		t.Fatal("Expected error for missing input file")
	}
}

func TestBuildInvalidAudioProvider(t *testing.T) {
	tempDir := t.TempDir()
	input := testutil.WriteCSVFile(t, tempDir, "words.csv",
		"polish;italian",
		"dziękuję;grazie",
	)

	flags := testFlags(tempDir)
	flags.WithAudio = true
	flags.AudioProvider = "nonexistent"

	p := NewProcessor(flags)
	if _, err := p.Build(context.Background(), []string{input}); err == nil {
		t.Fatal("Expected error for unknown audio provider")
	}
}

func TestExportRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	input := testutil.WriteCSVFile(t, tempDir, "words.csv",
		"polish;italian",
		"dobry wieczór;buona sera",
		"dziękuję;grazie",
	)

	flags := testFlags(tempDir)
	p := NewProcessor(flags)
	pkgPath, err := p.Build(context.Background(), []string{input})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	csvPath := filepath.Join(tempDir, "exported.csv")
	flags.Output = csvPath
	if err := p.Export(pkgPath); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	exported, err := table.ParseCSV(csvPath)
	if err != nil {
		t.Fatalf("ParseCSV() on exported file error = %v", err)
	}
	if exported.Len() != 2 {
		t.Errorf("Expected 2 exported pairs, got %d", exported.Len())
	}

	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if !strings.Contains(string(data), "dziękuję;grazie") {
		t.Errorf("Exported CSV missing expected pair:\n%s", data)
	}
}

func TestExportMissingPackage(t *testing.T) {
	tempDir := t.TempDir()

	p := NewProcessor(testFlags(tempDir))
	if err := p.Export(filepath.Join(tempDir, "missing.apkg")); err == nil {
		t.Fatal("Expected error for missing package")
	}
}
