package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_CreatesDirsAndWritesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state", "dex.log")

	logger, closer, err := Open(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("page loaded", slog.Int("page", 2))
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, `msg="page loaded"`) || !strings.Contains(out, "page=2") {
		t.Fatalf("log output = %q", out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "level=INFO") {
		t.Fatalf("lines = %q, want one INFO record", lines)
	}
}

func TestOpen_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dex.log")
	for i := 0; i < 2; i++ {
		logger, closer, err := Open(path, slog.LevelDebug)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		logger.Info("run")
		closer.Close()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, _, err := Open("", slog.LevelInfo); err == nil {
		t.Fatalf("Open(\"\") returned nil error")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger == nil {
		t.Fatal("Discard returned nil")
	}
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Discard logger should not be enabled at any level")
	}
	logger.Error("dropped", slog.String("k", "v"))
}
