package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dex/internal/state"
)

// renderHeader renders the status bar: logo, route, view status and cache size.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{
		bg.Render("dex", styles.Logo),
		bg.Render(m.Route().String(), styles.AccentText),
	}

	if status := m.statusLabel(styles); status != "" {
		parts = append(parts, status)
	}

	if n := m.cache.Len(); n > 0 {
		parts = append(parts,
			bg.Render("Cached:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", n), styles.Text))
	}

	if m.notice != "" {
		parts = append(parts, bg.Render(truncate(m.notice, 60), styles.InfoText))
	}

	content := truncate(strings.Join(parts, sep), max(m.width-2, 1))
	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(content))
}

// statusLabel summarizes the visible machine's phase.
func (m Model) statusLabel(styles Styles) string {
	var phase state.Phase
	var kind state.ErrorKind
	switch m.currentView {
	case ViewDetail:
		phase, kind = m.detail.Phase(), m.detail.Kind()
	case ViewCatalog:
		phase, kind = m.catalog.Phase(), state.KindUnavailable
	default:
		return ""
	}

	switch phase {
	case state.PhaseLoading:
		return styles.WarningText.Render(m.spinner.View() + " loading")
	case state.PhaseFailed:
		return styles.DangerText.Render("● " + kind.String())
	case state.PhaseReady:
		if m.currentView == ViewCatalog {
			return styles.SuccessText.Render("●") + styles.MutedText.Render(
				fmt.Sprintf(" %d entries", m.catalog.TotalCount()))
		}
		return styles.SuccessText.Render("● ready")
	default:
		return ""
	}
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.currentView {
	case ViewDetail:
		commands = []cmd{
			{"esc", "Back"},
			{"[/]", "Prev/Next"},
			{"j/k", "Scroll"},
			{"y", "Copy route"},
			{"L", "Logs"},
			{"?", "More"},
		}
	case ViewLogs:
		commands = []cmd{
			{"esc", "Back"},
			{"j/k", "Scroll"},
			{"g/G", "Top/Bottom"},
			{"?", "More"},
		}
	default:
		if m.searching {
			commands = []cmd{
				{"enter", "Done"},
				{"esc", "Done"},
			}
			break
		}
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Open"},
			{"h/l", "Page"},
			{"/", "Search"},
			{"y", "Copy route"},
			{"L", "Logs"},
			{"?", "More"},
		}
	}

	if m.failed() {
		commands = append([]cmd{{"r", "Retry"}}, commands...)
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

func (m Model) failed() bool {
	switch m.currentView {
	case ViewDetail:
		return m.detail.Phase() == state.PhaseFailed
	case ViewCatalog:
		return m.catalog.Phase() == state.PhaseFailed
	default:
		return false
	}
}
