package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dex/internal/cache"
	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/state"
)

// loadCatalog starts a fetch of the catalog's current page.
func (m *Model) loadCatalog() tea.Cmd {
	req := m.catalog.Load(m.ctx)
	m.logger.Debug("load page", slog.Int("page", req.Page), slog.Uint64("gen", uint64(req.Gen)))
	return tea.Batch(m.spinner.Tick, fetchPageCmd(m.client, req))
}

func (m Model) handlePageLoaded(msg pageLoadedMsg) (tea.Model, tea.Cmd) {
	res := msg.res
	if !m.catalog.Resolve(res) {
		m.logger.Debug("page result dropped",
			slog.Uint64("gen", uint64(res.Gen)),
			slog.String("kind", state.Classify(res.Err).String()))
		return m, nil
	}
	if m.catalog.Phase() == state.PhaseFailed {
		m.logger.Warn("page load failed",
			slog.Int("page", m.catalog.Page()),
			slog.String("kind", state.Classify(res.Err).String()),
			slog.String("error", res.Err.Error()))
		return m, nil
	}
	m.logger.Info("page loaded",
		slog.Int("page", m.catalog.Page()),
		slog.Int("total_pages", m.catalog.TotalPages()),
		slog.Int("entries", len(m.catalog.Items())))
	m.selectedRow = 0
	return m, m.prefetchSelected()
}

// handleCatalogKey processes keyboard input for the catalog view.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.catalog.Query() != "" {
			m.searchInput.SetValue("")
			m.search.Stop()
			m.catalog.SetQuery("")
			m.clampSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if m.catalog.Phase() != state.PhaseFailed {
			return m, nil
		}
		req := m.catalog.Retry(m.ctx)
		return m, tea.Batch(m.spinner.Tick, fetchPageCmd(m.client, req))

	case key.Matches(msg, m.keys.NextPage):
		if req, ok := m.catalog.Next(m.ctx); ok {
			return m, tea.Batch(m.spinner.Tick, fetchPageCmd(m.client, req))
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		if req, ok := m.catalog.Prev(m.ctx); ok {
			return m, tea.Batch(m.spinner.Tick, fetchPageCmd(m.client, req))
		}
		return m, nil
	}

	if m.catalog.Phase() != state.PhaseReady {
		return m, nil
	}
	visible := m.catalog.Visible()
	if len(visible) == 0 {
		return m, nil
	}

	prev := m.selectedRow
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(visible)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(visible) - 1
	case key.Matches(msg, m.keys.Open):
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		m.currentView = ViewDetail
		return m, m.navigateDetail(entry.Name)
	}
	if m.selectedRow != prev {
		return m, m.prefetchSelected()
	}
	return m, nil
}

// handleSearchKey routes keys to the search bar while it has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m.quit()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.search.Set(strings.ToLower(strings.TrimSpace(m.searchInput.Value())))
	return m, cmd
}

func (m *Model) clampSelection() {
	n := len(m.catalog.Visible())
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) selectedEntry() (pokeapi.CatalogEntry, bool) {
	visible := m.catalog.Visible()
	if m.selectedRow < 0 || m.selectedRow >= len(visible) {
		return pokeapi.CatalogEntry{}, false
	}
	return visible[m.selectedRow], true
}

// prefetchSelected hands the highlighted entry to the prefetcher. The work
// happens off the UI loop and never produces a message.
func (m Model) prefetchSelected() tea.Cmd {
	if m.prefetcher == nil {
		return nil
	}
	if entry, ok := m.selectedEntry(); ok {
		m.prefetcher.Enqueue(entry.Name)
	}
	return nil
}

// renderCatalog renders the search bar and the page list.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()
	contentHeight := m.height - 2 // header + cmdbar

	title := fmt.Sprintf("Catalog · page %d", m.catalog.Page())
	if total := m.catalog.TotalPages(); total > 0 {
		title = fmt.Sprintf("Catalog · page %d/%d", m.catalog.Page(), total)
	}

	var body string
	switch m.catalog.Phase() {
	case state.PhaseLoading, state.PhaseIdle:
		body = styles.MutedText.Render(fmt.Sprintf(" %s Loading page %d...", m.spinner.View(), m.catalog.Page()))
	case state.PhaseFailed:
		body = m.renderErrorPanel("Could not load the catalog", m.catalog.Message(), m.width-4)
	default:
		body = m.renderCatalogList(m.width-2, contentHeight-3)
	}

	content := m.renderSearchBar() + "\n" + body
	return m.renderTitledBox(title, content, m.width, contentHeight)
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	if m.searching {
		return " " + m.searchInput.View()
	}
	if q := m.catalog.Query(); q != "" {
		matches := len(m.catalog.Visible())
		return " " + styles.AccentText.Render("/"+q) +
			styles.FaintText.Render(fmt.Sprintf("  %d of %d on this page", matches, len(m.catalog.Items())))
	}
	return " " + styles.FaintText.Render("/ to filter this page")
}

// renderCatalogList renders visible entries with the selection highlighted,
// scrolled so the selection stays on screen.
func (m Model) renderCatalogList(width, height int) string {
	styles := m.theme.Styles()
	visible := m.catalog.Visible()
	if len(visible) == 0 {
		return styles.MutedText.Render(fmt.Sprintf(" No entries on this page match %q", m.catalog.Query()))
	}

	height = max(height, 1)
	start := 0
	if m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := min(start+height, len(visible))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.formatEntryRow(visible[i], width, i == m.selectedRow))
	}
	return strings.Join(lines, "\n")
}

// formatEntryRow formats one entry as "#025 Pikachu" plus a cached marker.
func (m Model) formatEntryRow(entry pokeapi.CatalogEntry, width int, selected bool) string {
	bgColor := m.theme.FocusBg
	if selected {
		bgColor = m.theme.SelectionBg
	}
	bg := NewBgStyle(bgColor)

	var idStyle, nameStyle, markStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		idStyle, nameStyle, markStyle = selText, selText.Bold(true), selText
	} else {
		styles := m.theme.Styles()
		idStyle, nameStyle, markStyle = styles.MutedText, styles.Text, styles.SuccessText
	}

	idStr := "    "
	if id, ok := entry.ID(); ok {
		idStr = state.PadID(id)
	}
	row := bg.Render(padRight(idStr, 6), idStyle) + bg.Render(truncate(titleCase(entry.Name), width-10), nameStyle)
	if m.cache.Has(cache.Key(entry.Name)) {
		row += bg.Space() + bg.Render("•", markStyle)
	}
	return bg.FillLine(" "+row, width)
}

// renderErrorPanel shows a failure with the retry hint.
func (m Model) renderErrorPanel(title, message string, width int) string {
	styles := m.theme.Styles()
	var b strings.Builder
	b.WriteString("\n ")
	b.WriteString(styles.DangerText.Render(title))
	b.WriteString("\n ")
	b.WriteString(styles.MutedText.Render(truncate(message, max(width, 10))))
	b.WriteString("\n\n ")
	b.WriteString(styles.AccentText.Render("r") + styles.MutedText.Render(" retry"))
	return b.String()
}
