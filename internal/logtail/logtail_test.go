package logtail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func writeLines(t *testing.T, n int) (string, []string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dex.log")
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("level=INFO msg=line n=%d", i+1)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path, lines
}

func TestRead(t *testing.T) {
	path, all := writeLines(t, 10)
	longPath, long := writeLines(t, 57)

	tests := []struct {
		name     string
		path     string
		maxLines int
		want     []string
	}{
		{"zero reads all", path, 0, all},
		{"negative reads all", path, -1, all},
		{"tail", path, 5, all[5:]},
		{"exact", path, 10, all},
		{"more than exists", path, 20, all},
		{"compacted while scanning", longPath, 4, long[53:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(tt.path, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Read() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("Read() = %v, want empty", lines)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		line, want string
	}{
		{`time=2026-01-02T15:04:05Z level=INFO msg="page loaded" page=2`, "INFO"},
		{`time=2026-01-02T15:04:05Z level=DEBUG msg="prefetch failed"`, "DEBUG"},
		{`time=2026-01-02T15:04:05Z level=WARN+2 msg=odd`, "WARN"},
		{`plain text line`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		if got := Level(tt.line); got != tt.want {
			t.Errorf("Level(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestWatch_NotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "dex.log")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, logPath, nil, func() { changed <- struct{}{} })
	}()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(logPath, []byte("level=INFO msg=hello\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// An unrelated file in the same directory is ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.log"), []byte("x\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatalf("no change notification")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Watch did not stop")
	}
}
