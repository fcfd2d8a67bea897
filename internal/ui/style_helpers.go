package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints separately styled segments on one shared background.
// Without it the ANSI reset after each segment leaves unpainted cells
// between them.
type BgStyle struct {
	fill lipgloss.Style
}

// NewBgStyle returns a helper for the given background color.
func NewBgStyle(color string) BgStyle {
	return BgStyle{fill: lipgloss.NewStyle().Background(lipgloss.Color(color))}
}

// Render styles text word by word, painting the spaces between words with
// the fill so runs of spaces keep their background.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.Color())
	words := strings.Split(text, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.Space())
}

// Space is one painted space.
func (b BgStyle) Space() string {
	return b.Spaces(1)
}

// Spaces is n painted spaces.
func (b BgStyle) Spaces(n int) string {
	return b.fill.Render(strings.Repeat(" ", max(n, 0)))
}

// Sep paints a literal separator such as ":".
func (b BgStyle) Sep(sep string) string {
	return b.fill.Render(sep)
}

// Color is the shared background.
func (b BgStyle) Color() lipgloss.TerminalColor {
	return b.fill.GetBackground()
}

// FillLine pads content to width cells on the shared background.
func (b BgStyle) FillLine(content string, width int) string {
	return b.fill.Width(width).Render(content)
}
