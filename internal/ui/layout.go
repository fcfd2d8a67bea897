package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderTitledBox frames content as
//
//	┌──── Title ────┐
//	│content        │
//	└───────────────┘
//
// Lines are cut to the inner width and the body is padded to height rows.
func (m Model) renderTitledBox(title, content string, width, height int) string {
	bg := NewBgStyle(m.theme.FocusBg)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderFocus))
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	inner := max(width, 8) - 2
	title = truncate(title, inner-4)
	rule := max(inner-ansi.StringWidth(title)-2, 0)
	left := rule / 2

	var b strings.Builder
	b.WriteString(bg.Render("┌"+strings.Repeat("─", left), border))
	b.WriteString(bg.Space() + bg.Render(title, heading) + bg.Space())
	b.WriteString(bg.Render(strings.Repeat("─", rule-left)+"┐", border))

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(bg.Color())
	edge := bg.Render("│", border)
	lines := strings.Split(content, "\n")
	for i := range max(height-2, 1) {
		var line string
		if i < len(lines) {
			line = truncate(lines[i], inner)
		}
		b.WriteString("\n" + edge + body.Render(line) + edge)
	}

	b.WriteString("\n" + bg.Render("└"+strings.Repeat("─", inner)+"┘", border))
	return b.String()
}
