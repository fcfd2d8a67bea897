package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dex/internal/route"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme(t *testing.T) {
	slate := GetTheme("Slate")
	if slate.Name != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", slate.Name)
	}

	unknown := GetTheme("Unknown")
	if unknown.Name != "Nightfox" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Nightfox (fallback)", unknown.Name)
	}
}

func TestTypeStyleColors(t *testing.T) {
	slate := GetTheme("Slate").Styles()
	if got := slate.TypeStyle("dark").GetBackground(); !strings.EqualFold(colorString(got), "#78716c") {
		t.Fatalf("slate dark pill = %v, want theme override", got)
	}
	if got := slate.TypeStyle(" Fire ").GetBackground(); !strings.EqualFold(colorString(got), typePalette["fire"]) {
		t.Fatalf("slate fire pill = %v, want shared palette", got)
	}

	night := GetTheme("Nightfox")
	if got := night.Styles().TypeStyle("shadow").GetBackground(); colorString(got) != night.Muted {
		t.Fatalf("unknown type pill = %v, want muted %s", got, night.Muted)
	}
}

func colorString(c lipgloss.TerminalColor) string {
	if col, ok := c.(lipgloss.Color); ok {
		return string(col)
	}
	return ""
}

func TestWithBackgroundKeepsTypeColors(t *testing.T) {
	slate := GetTheme("Slate")
	styles := slate.Styles().WithBackground(slate.Surface)

	if got := colorString(styles.MutedText.GetBackground()); got != slate.Surface {
		t.Fatalf("muted background = %q, want %q", got, slate.Surface)
	}
	if got := colorString(styles.TypeStyle("steel").GetBackground()); got != "#94a3b8" {
		t.Fatalf("steel pill = %q, want override after WithBackground", got)
	}
}

func TestHelpListsEveryGroup(t *testing.T) {
	m, _, _ := newTestModel(t, route.Default())
	if len(m.keys.FullHelp()) != len(helpTitles) {
		t.Fatalf("FullHelp groups = %d, titles = %d", len(m.keys.FullHelp()), len(helpTitles))
	}
	out := m.renderHelp()
	for _, want := range append(helpTitles, "Copy route", "Previous number") {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
}
