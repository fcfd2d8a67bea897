package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const helpWidth = 44

var helpTitles = []string{"Navigation", "Catalog", "Detail", "General"}

// renderHelp renders the key map as a centered overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts") + "\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)) + "\n")

	for i, group := range m.keys.FullHelp() {
		b.WriteString("\n" + styles.AccentText.Bold(true).Render(helpTitles[i]) + "\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(keyStyle.Render(h.Key) + styles.Text.Render(h.Desc) + "\n")
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(helpWidth).
		Render(strings.TrimSuffix(b.String(), "\n"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)))
}
