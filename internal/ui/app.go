package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/prefs"
	"github.com/five82/marquee/internal/state"
)

// Tab is one of the two browsing flows.
type Tab int

const (
	TabTheater Tab = iota // area → theater → title → schedule
	TabTitle              // title → theater → schedule
)

// pane identifies a list or the schedule inside a tab.
type pane int

const (
	paneArea pane = iota
	paneTheater
	paneTitle
	paneSchedule
)

// tabPanes lists each tab's panes in focus order.
var tabPanes = map[Tab][]pane{
	TabTheater: {paneArea, paneTheater, paneTitle, paneSchedule},
	TabTitle:   {paneTitle, paneTheater, paneSchedule},
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Config    config.Config
	Refresh   func() // requests a forced collection pass
	PollTick  time.Duration
	ThemeName string
	TabName   string // prefs.TabTheater or prefs.TabTitle
	PrefsPath string
	Logger    *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	config    config.Config
	refresh   func()
	prefsPath string
	saved     prefs.Prefs // last persisted preferences
	pollTick  time.Duration
	logger    *slog.Logger

	// UI state
	theme    Theme
	keys     keyMap
	tab      Tab
	focus    map[Tab]int // index into tabPanes[tab]
	width    int
	height   int
	ready    bool
	showHelp bool
	notice   string

	// Data state
	snapshot    state.Snapshot
	lastVersion uint64

	// By theater tab
	areaCursor    int
	theaterCursor int
	movieCursor   int

	// By title tab
	titleCursor   int
	showingCursor int
	filter        textinput.Model
	filtering     bool

	// Schedule pane
	schedule    viewport.Model
	scheduleKey string

	spinner spinner.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	theme := GetTheme(opts.ThemeName)
	tab := tabFromName(opts.TabName)

	filter := textinput.New()
	filter.Placeholder = "filter titles"
	filter.Prompt = "/"
	filter.CharLimit = 64

	return Model{
		ctx:       ctx,
		store:     opts.Store,
		config:    opts.Config,
		refresh:   opts.Refresh,
		prefsPath: prefsPath,
		saved:     prefs.Prefs{Theme: theme.Name, Tab: tabName(tab)},
		pollTick:  pollTick,
		logger:    logger,
		theme:     theme,
		keys:      DefaultKeyMap(),
		tab:       tab,
		focus:     map[Tab]int{TabTheater: 0, TabTitle: 0},
		filter:    filter,
		schedule:  viewport.New(0, 0),
		spinner:   newSpinner(theme),
	}
}

func newSpinner(theme Theme) spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
	)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.pollTick),
		m.spinner.Tick,
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
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
		m.resizeSchedule()
		m.updateScheduleViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
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

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.filtering {
		return m.handleFilterKey(msg)
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.savePrefs()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.refresh != nil {
			m.refresh()
			m.notice = "Refresh requested"
			m.logger.Info("manual refresh requested")
		}
		return m, nil

	case key.Matches(msg, m.keys.TabTheater):
		m.setTab(TabTheater)
		return m, nil

	case key.Matches(msg, m.keys.TabTitle):
		m.setTab(TabTitle)
		return m, nil

	case key.Matches(msg, m.keys.SwitchTab):
		if m.tab == TabTheater {
			m.setTab(TabTitle)
		} else {
			m.setTab(TabTheater)
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPane), key.Matches(msg, m.keys.Confirm):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevPane):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		if m.tab == TabTitle {
			m.focus[TabTitle] = 0
			m.filtering = true
			return m, m.filter.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.tab == TabTitle && m.filter.Value() != "" {
			m.filter.SetValue("")
			m.titleCursor = 0
			m.showingCursor = 0
			m.updateScheduleViewport()
		}
		return m, nil
	}

	if m.focusedPane() == paneSchedule {
		return m.handleScheduleKey(msg)
	}
	return m.handleListKey(msg)
}

// handleFilterKey routes keys to the title filter while it is being edited.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.filtering = false
		m.filter.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.titleCursor = 0
		m.showingCursor = 0
		m.updateScheduleViewport()
		return m, nil

	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	before := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.titleCursor = 0
		m.showingCursor = 0
		m.updateScheduleViewport()
	}
	return m, cmd
}

// handleListKey moves the cursor of the focused list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.focusedPane()
	count := len(m.paneItems(p))
	if count == 0 {
		return m, nil
	}
	cursor := m.cursor(p)

	switch {
	case key.Matches(msg, m.keys.Down):
		cursor++
	case key.Matches(msg, m.keys.Up):
		cursor--
	case key.Matches(msg, m.keys.Top):
		cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		cursor = count - 1
	case key.Matches(msg, m.keys.PageDown), key.Matches(msg, m.keys.HalfPageDown):
		cursor += max(m.listHeight()/2, 1)
	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.HalfPageUp):
		cursor -= max(m.listHeight()/2, 1)
	default:
		return m, nil
	}

	m.setCursor(p, clamp(cursor, 0, count-1))
	return m, nil
}

// handleScheduleKey scrolls the schedule pane.
func (m Model) handleScheduleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.schedule.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.schedule.ScrollUp(1)
	case key.Matches(msg, m.keys.Top):
		m.schedule.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.schedule.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.schedule.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.schedule.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.schedule.PageDown()
	case key.Matches(msg, m.keys.PageUp):
		m.schedule.PageUp()
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.updateScheduleViewport()
	m.savePrefs()
}

// savePrefs persists the theme and active tab when they changed since the
// last save.
func (m *Model) savePrefs() {
	p := prefs.Prefs{Theme: m.theme.Name, Tab: tabName(m.tab)}
	if m.prefsPath == "" || p == m.saved {
		return
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.notice = "Could not save preferences"
		m.logger.Warn("save prefs failed", "path", m.prefsPath, "error", err)
		return
	}
	m.saved = p
}

func tabName(tab Tab) string {
	if tab == TabTitle {
		return prefs.TabTitle
	}
	return prefs.TabTheater
}

func tabFromName(name string) Tab {
	if name == prefs.TabTitle {
		return TabTitle
	}
	return TabTheater
}

func (m *Model) setTab(tab Tab) {
	if m.tab == tab {
		return
	}
	m.tab = tab
	m.resizeSchedule()
	m.updateScheduleViewport()
}

func (m *Model) moveFocus(delta int) {
	panes := tabPanes[m.tab]
	m.focus[m.tab] = (m.focus[m.tab] + delta + len(panes)) % len(panes)
}

func (m Model) focusedPane() pane {
	return tabPanes[m.tab][m.focus[m.tab]]
}

// applySnapshot swaps in new data, keeping selections by name.
func (m *Model) applySnapshot(snap state.Snapshot) {
	if snap.Version == m.lastVersion && m.snapshot.HasData == snap.HasData {
		// Only bookkeeping changed (fetching flag, errors).
		m.snapshot = snap
		return
	}

	sel := m.selectedNames()
	m.snapshot = snap
	m.lastVersion = snap.Version
	m.restoreSelection(sel)
	m.scheduleKey = ""
	m.updateScheduleViewport()
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTabBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// renderContent renders the active tab or the loading state.
func (m Model) renderContent() string {
	if !m.snapshot.HasData {
		return m.renderLoading()
	}
	return m.renderPanes()
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	var programOpts []tea.ProgramOption
	programOpts = append(programOpts, tea.WithAltScreen())
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	_, err := p.Run()
	return err
}
