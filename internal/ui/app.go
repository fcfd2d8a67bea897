package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/dex/internal/cache"
	"github.com/five82/dex/internal/debounce"
	"github.com/five82/dex/internal/logging"
	"github.com/five82/dex/internal/prefs"
	"github.com/five82/dex/internal/route"
	"github.com/five82/dex/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewCatalog View = iota
	ViewDetail
	ViewLogs
)

const defaultSearchDelay = 300 * time.Millisecond

// Client is the catalog API surface the UI drives.
type Client interface {
	state.PageSource
	state.DetailSource
}

// Prefetcher warms the session cache for entries the cursor lands on.
type Prefetcher interface {
	Enqueue(name string) bool
}

// Options configures the UI.
type Options struct {
	Context        context.Context
	Client         Client
	Cache          *cache.Session
	Prefetcher     Prefetcher
	Route          route.Route
	Locale         string
	FallbackLocale string
	SearchDelay    time.Duration
	LogPath        string
	LogChanges     <-chan struct{}
	Logger         *slog.Logger
	ThemeName      string
	PrefsPath      string
	// CopyText defaults to the system clipboard.
	CopyText func(string) error
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx            context.Context
	client         Client
	cache          *cache.Session
	prefetcher     Prefetcher
	logger         *slog.Logger
	locale         string
	fallbackLocale string
	logPath        string
	logChanges     <-chan struct{}
	prefsPath      string
	copyText       func(string) error

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	lastView    View
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string
	spinner     spinner.Model

	// Catalog state
	catalog     *state.Catalog
	selectedRow int
	searching   bool
	searchInput textinput.Model
	search      *debounce.Debouncer[string]
	searchCh    <-chan string

	// Detail state
	detail         *state.Detail
	detailViewport viewport.Model
	initialItem    string

	// Log state
	logViewport viewport.Model
	logLines    []string
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	delay := opts.SearchDelay
	if delay < 0 {
		delay = defaultSearchDelay
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	copyText := opts.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	sess := opts.Cache
	if sess == nil {
		sess = cache.New()
	}

	ti := textinput.New()
	ti.Placeholder = "filter this page..."
	ti.Prompt = "/"
	ti.CharLimit = 64

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	search, searchCh := debounce.NewChan[string](delay)

	m := Model{
		ctx:            ctx,
		client:         opts.Client,
		cache:          sess,
		prefetcher:     opts.Prefetcher,
		logger:         logger,
		locale:         opts.Locale,
		fallbackLocale: opts.FallbackLocale,
		logPath:        opts.LogPath,
		logChanges:     opts.LogChanges,
		prefsPath:      opts.PrefsPath,
		copyText:       copyText,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(themeName),
		currentView:    ViewCatalog,
		spinner:        sp,
		catalog:        state.NewCatalog(opts.Route),
		searchInput:    ti,
		search:         search,
		searchCh:       searchCh,
		detail:         state.NewDetail(),
	}
	m.searchInput.SetValue(m.catalog.Query())
	if opts.Route.Kind == route.KindItem {
		m.currentView = ViewDetail
		m.initialItem = opts.Route.Identifier
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		waitForSearch(m.searchCh),
	}
	if m.logChanges != nil {
		cmds = append(cmds, waitForLogChange(m.logChanges))
	}
	if m.currentView == ViewDetail {
		cmds = append(cmds, m.navigateDetail(m.initialItem))
	} else {
		cmds = append(cmds, m.loadCatalog())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeViewports()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pageLoadedMsg:
		return m.handlePageLoaded(msg)

	case detailLoadedMsg:
		return m.handleDetailLoaded(msg)

	case searchSettledMsg:
		m.catalog.SetQuery(msg.query)
		m.clampSelection()
		m.logger.Debug("search settled", slog.String("query", msg.query), slog.Int("matches", len(m.catalog.Visible())))
		return m, tea.Batch(waitForSearch(m.searchCh), m.prefetchSelected())

	case logChangedMsg:
		cmds := []tea.Cmd{waitForLogChange(m.logChanges)}
		if m.currentView == ViewLogs {
			cmds = append(cmds, readLogsCmd(m.logPath))
		}
		return m, tea.Batch(cmds...)

	case logLinesMsg:
		m.logLines = msg.lines
		m.logErr = msg.err
		m.updateLogViewport()
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notice = "copy failed: " + msg.err.Error()
			m.logger.Warn("copy route failed", slog.String("error", msg.err.Error()))
		} else {
			m.notice = "copied " + msg.text
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// Route reports the location that reproduces the current view.
func (m Model) Route() route.Route {
	if m.currentView == ViewDetail || (m.currentView == ViewLogs && m.lastView == ViewDetail) {
		return m.detail.Route()
	}
	return m.catalog.Route()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
				m.logger.Warn("save prefs failed", slog.String("error", err.Error()))
			}
		}
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.CopyRoute):
		return m, copyCmd(m.copyText, m.Route().String())

	case key.Matches(msg, m.keys.ViewLogs):
		if m.currentView != ViewLogs {
			m.lastView = m.currentView
			m.currentView = ViewLogs
		}
		return m, readLogsCmd(m.logPath)
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

// quit stops in-flight requests before exiting.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.catalog.Cancel()
	m.detail.Cancel()
	m.search.Stop()
	return m, tea.Quit
}

// loading reports whether the visible view is waiting on a fetch.
func (m Model) loading() bool {
	switch m.currentView {
	case ViewDetail:
		return m.detail.Phase() == state.PhaseLoading
	case ViewCatalog:
		return m.catalog.Phase() == state.PhaseLoading
	default:
		return false
	}
}

func (m *Model) resizeViewports() {
	w := max(m.width-4, 10)
	h := max(m.height-5, 3)
	if m.detailViewport.Width == 0 {
		m.detailViewport = viewport.New(w, h)
		m.logViewport = viewport.New(w, h)
	}
	m.detailViewport.Width, m.detailViewport.Height = w, h
	m.logViewport.Width, m.logViewport.Height = w, h
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	// Header line 1: logo + route + status
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	// Header line 2: command bar
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	b.WriteString(m.renderContent())

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Render(b.String())
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderCatalog()
	}
}

// Messages

type pageLoadedMsg struct {
	res state.PageResult
}

type detailLoadedMsg struct {
	res state.DetailResult
}

type searchSettledMsg struct {
	query string
}

type logChangedMsg struct{}

type logLinesMsg struct {
	lines []string
	err   error
}

type copiedMsg struct {
	text string
	err  error
}

// Commands

func fetchPageCmd(src state.PageSource, req state.PageRequest) tea.Cmd {
	return func() tea.Msg {
		return pageLoadedMsg{res: state.FetchPage(src, req)}
	}
}

func fetchDetailCmd(src state.DetailSource, sess *cache.Session, req state.DetailRequest) tea.Cmd {
	return func() tea.Msg {
		return detailLoadedMsg{res: state.FetchDetail(src, sess, req)}
	}
}

func waitForSearch(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		q, ok := <-ch
		if !ok {
			return nil
		}
		return searchSettledMsg{query: q}
	}
}

func waitForLogChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return logChangedMsg{}
	}
}

func copyCmd(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{text: text, err: copyText(text)}
	}
}

// Run starts the Bubble Tea program and returns the route of the view the
// user left from.
func Run(opts Options) (route.Route, error) {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		// Cancelled from outside (signal); not a failure.
		err = nil
	}
	if fm, ok := final.(Model); ok {
		return fm.Route(), err
	}
	return m.Route(), err
}
