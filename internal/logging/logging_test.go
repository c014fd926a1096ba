package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWriter_CreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	w, err := newWriter(os.Stderr, dir)
	if err != nil {
		t.Fatalf("newWriter returned error: %v", err)
	}

	logger := zerolog.New(w)
	logger.Info().Str("source", "test.xlsx").Msg("Dataset analyzed")

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("Expected log file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Error("Expected log file to contain the written entry")
	}
}

func TestNewWriter_UnwritableDirFallsBackToConsole(t *testing.T) {
	// A regular file cannot act as a log directory.
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := newWriter(os.Stderr, filepath.Join(file, "logs"))
	if err == nil {
		t.Fatal("Expected an error for an unusable log directory")
	}
	if w == nil {
		t.Fatal("Expected a console writer even when file logging fails")
	}
}
