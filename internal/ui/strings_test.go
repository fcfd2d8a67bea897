package ui

import (
	"strings"
	"testing"
)

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"pikachu":        "Pikachu",
		"special-attack": "Special Attack",
		"mr_mime":        "Mr Mime",
		"  HP  ":         "Hp",
		"":               "",
	}
	for in, want := range tests {
		if got := titleCase(in); got != want {
			t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"bulbasaur", 20, "bulbasaur"},
		{"bulbasaur", 5, "bulb…"},
		{"bulbasaur", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/.local/state/dex/dex.log", 16)
	if len([]rune(got)) != 16 || !strings.HasPrefix(got, "/home") || !strings.HasSuffix(got, "dex.log") {
		t.Fatalf("truncateMiddle = %q, want 16 runes keeping both ends", got)
	}
	if got := truncateMiddle("short", 16); got != "short" {
		t.Fatalf("truncateMiddle(short) = %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("hp", 5); got != "hp   " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("attack", 3); got != "attack" {
		t.Fatalf("padRight should not cut: %q", got)
	}
}
