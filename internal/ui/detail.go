package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/state"
)

// maxBaseStat scales stat bars; no base stat exceeds 255.
const maxBaseStat = 255

// navigateDetail starts loading identifier in the detail machine.
func (m *Model) navigateDetail(identifier string) tea.Cmd {
	req := m.detail.Navigate(m.ctx, identifier)
	m.logger.Debug("open detail", slog.String("identifier", req.Identifier), slog.Uint64("gen", uint64(req.Gen)))
	m.detailViewport.GotoTop()
	m.updateDetailViewport()
	return tea.Batch(m.spinner.Tick, fetchDetailCmd(m.client, m.cache, req))
}

func (m Model) handleDetailLoaded(msg detailLoadedMsg) (tea.Model, tea.Cmd) {
	res := msg.res
	if !m.detail.Resolve(res) {
		m.logger.Debug("detail result dropped",
			slog.Uint64("gen", uint64(res.Gen)),
			slog.String("kind", state.Classify(res.Err).String()))
		return m, nil
	}
	switch m.detail.Phase() {
	case state.PhaseFailed:
		m.logger.Warn("detail load failed",
			slog.String("identifier", m.detail.Identifier()),
			slog.String("kind", m.detail.Kind().String()),
			slog.String("error", res.Err.Error()))
	case state.PhaseReady:
		m.logger.Info("detail loaded",
			slog.String("identifier", m.detail.Identifier()),
			slog.Int("id", m.detail.Record().ID),
			slog.Bool("cached", res.Cached))
	}
	m.updateDetailViewport()
	return m, nil
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.detail.Cancel()
		m.currentView = ViewCatalog
		if m.catalog.Phase() == state.PhaseIdle {
			return m, m.loadCatalog()
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.detail.Phase() != state.PhaseFailed {
			return m, nil
		}
		req := m.detail.Retry(m.ctx)
		m.updateDetailViewport()
		return m, tea.Batch(m.spinner.Tick, fetchDetailCmd(m.client, m.cache, req))

	case key.Matches(msg, m.keys.PrevItem):
		if id, ok := m.detail.Adjacent(-1); ok {
			return m, m.navigateDetail(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextItem):
		if id, ok := m.detail.Adjacent(1); ok {
			return m, m.navigateDetail(id)
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

// updateDetailViewport re-renders the detail body into its viewport.
func (m *Model) updateDetailViewport() {
	if m.detailViewport.Width == 0 {
		return
	}
	m.detailViewport.Style = lipgloss.NewStyle().Background(lipgloss.Color(m.theme.FocusBg))
	m.detailViewport.SetContent(m.renderDetailBody(m.detailViewport.Width))
}

// renderDetail renders the detail pane.
func (m Model) renderDetail() string {
	contentHeight := m.height - 2
	title := m.detailTitle()

	var body string
	switch m.detail.Phase() {
	case state.PhaseLoading, state.PhaseIdle:
		body = m.theme.Styles().MutedText.Render(fmt.Sprintf(" %s Loading %s...", m.spinner.View(), m.detail.Identifier()))
	case state.PhaseFailed:
		heading := "Could not load " + m.detail.Identifier()
		if m.detail.Kind() == state.KindNotFound {
			heading = fmt.Sprintf("No entry named %q", m.detail.Identifier())
		}
		body = m.renderErrorPanel(heading, m.detail.Message(), m.width-4)
	default:
		body = m.detailViewport.View()
	}
	return m.renderTitledBox(title, body, m.width, contentHeight)
}

func (m Model) detailTitle() string {
	if m.detail.Phase() == state.PhaseReady {
		rec := m.detail.Record()
		return state.PadID(rec.ID) + " " + titleCase(rec.Name)
	}
	return titleCase(m.detail.Identifier())
}

// renderDetailBody builds the scrollable content of a ready record.
func (m Model) renderDetailBody(width int) string {
	if m.detail.Phase() != state.PhaseReady {
		return ""
	}
	styles := m.theme.Styles()
	rec := m.detail.Record()

	var b strings.Builder
	b.WriteString("\n")

	// Name and number
	b.WriteString(" " + styles.Text.Bold(true).Render(titleCase(rec.Name)))
	b.WriteString("  " + styles.MutedText.Render(state.PadID(rec.ID)))
	b.WriteString("\n\n")

	// Type pills
	if types := rec.TypeNames(); len(types) > 0 {
		pills := make([]string, 0, len(types))
		for _, t := range types {
			pills = append(pills, styles.TypeStyle(t).Render(titleCase(t)))
		}
		b.WriteString(" " + strings.Join(pills, " "))
		b.WriteString("\n\n")
	}

	// Flavor text
	if text := state.FlavorText(m.detail.Species(), m.locale, m.fallbackLocale); text != "" {
		wrapped := lipgloss.NewStyle().Width(max(width-2, 20)).Render(text)
		for _, line := range strings.Split(wrapped, "\n") {
			b.WriteString(" " + styles.Text.Italic(true).Render(line) + "\n")
		}
		b.WriteString("\n")
	}

	// Physical facts
	facts := []struct{ label, value string }{
		{"Height", fmt.Sprintf("%.1f m", rec.HeightMetres())},
		{"Weight", fmt.Sprintf("%.1f kg", rec.WeightKilograms())},
		{"Base exp", fmt.Sprintf("%d", rec.BaseExperience)},
	}
	for _, f := range facts {
		b.WriteString(" " + styles.MutedText.Render(padRight(f.label, 10)) + styles.Text.Render(f.value) + "\n")
	}
	b.WriteString("\n")

	// Base stats
	if len(rec.Stats) > 0 {
		b.WriteString(" " + styles.AccentText.Bold(true).Render("Base stats") + "\n")
		barWidth := max(min(width-24, 40), 5)
		for _, s := range rec.Stats {
			b.WriteString(" " + m.renderStatBar(s, barWidth) + "\n")
		}
		b.WriteString("\n")
	}

	// Artwork
	art := state.Artwork(rec.Sprites)
	if art == "" {
		b.WriteString(" " + styles.FaintText.Render("No artwork available") + "\n")
	} else {
		b.WriteString(" " + styles.MutedText.Render("Artwork ") + styles.InfoText.Render(truncateMiddle(art, max(width-10, 20))) + "\n")
	}

	return b.String()
}

// renderStatBar renders "Attack      55 ██████░░░░".
func (m Model) renderStatBar(s pokeapi.StatEntry, barWidth int) string {
	styles := m.theme.Styles()
	filled := s.BaseStat * barWidth / maxBaseStat
	filled = max(min(filled, barWidth), 0)

	color := m.theme.Danger
	switch {
	case s.BaseStat >= 100:
		color = m.theme.Success
	case s.BaseStat >= 60:
		color = m.theme.Warning
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled)) +
		styles.FaintText.Render(strings.Repeat("░", barWidth-filled))

	return styles.MutedText.Render(padRight(titleCase(s.Stat.Name), 16)) +
		styles.Text.Render(fmt.Sprintf("%3d ", s.BaseStat)) + bar
}
