package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/canaryct/canarywatch/internal/canary"
	"github.com/canaryct/canarywatch/internal/dashboard"
	"github.com/canaryct/canarywatch/internal/prefs"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Fetcher   canary.Fetcher
	Dashboard dashboard.Options
	Theme     prefs.Theme
	PrefsPath string
	// APIURL is only displayed in the header.
	APIURL string
	Logger logrus.FieldLogger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	dash      *dashboard.Dashboard
	out       *surfaces
	log       logrus.FieldLogger
	prefsPath string
	apiURL    string

	// UI state
	keys      keyMap
	help      help.Model
	theme     Theme
	width     int
	height    int
	ready     bool
	cursor    int
	showHelp  bool
	confirm   *confirmModal
	notice    string
	noticeSeq int

	// Search input
	searching bool
	search    textinput.Model

	copyText func(string) error
	openURL  func(string) error
}

// New creates a new Bubble Tea model. The dashboard renders into the
// model's surfaces from the first call on.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	dashOpts := opts.Dashboard
	if dashOpts.Logger == nil {
		dashOpts.Logger = logger
	}

	out := newSurfaces()

	ti := textinput.New()
	ti.Placeholder = "Search domains..."
	ti.Prompt = "/"
	ti.CharLimit = 253

	return Model{
		ctx:       ctx,
		dash:      dashboard.New(opts.Fetcher, out, dashOpts),
		out:       out,
		log:       logger,
		prefsPath: prefsPath,
		apiURL:    opts.APIURL,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		theme:     ThemeFor(opts.Theme),
		search:    ti,
		copyText:  clipboard.WriteAll,
		openURL:   openBrowser,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.runJobs(m.dash.Begin()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case resultMsg:
		next := m.dash.Apply(dashboard.Result(msg))
		m.clampCursor()
		cmds := []tea.Cmd{m.runJobs(next.Jobs)}
		if next.Started {
			cmds = append(cmds, tickCmd(m.dash.Scheduler().Period(), next.Generation))
		}
		return m, tea.Batch(cmds...)

	case tickMsg:
		jobs, ok := m.dash.Tick(msg.generation)
		if !ok {
			return m, nil
		}
		return m, tea.Batch(
			m.runJobs(jobs),
			tickCmd(m.dash.Scheduler().Period(), msg.generation),
		)

	case noticeMsg:
		return m.setNotice(string(msg))

	case clearNoticeMsg:
		if int(msg) == m.noticeSeq {
			m.notice = ""
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

	if m.confirm != nil {
		return m.confirm.View(m.theme, m.width, m.height)
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.confirm != nil {
		modal, cmd, done := m.confirm.Update(msg, m.keys)
		if done {
			m.confirm = nil
		} else {
			m.confirm = modal.(*confirmModal)
		}
		return m, cmd
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Escape):
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.dash.SetSearch("")
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.CyclePriority):
		m.dash.CyclePriority()
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.CycleRange):
		_, jobs := m.dash.CycleTimeRange()
		return m, m.runJobs(jobs)

	case key.Matches(msg, m.keys.Refresh):
		jobs := m.dash.Refresh()
		if len(jobs) == 0 {
			return m.setNotice("Refresh already in progress")
		}
		return m, m.runJobs(jobs)

	case key.Matches(msg, m.keys.PrevPage):
		if m.dash.PrevPage() {
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		if m.dash.NextPage() {
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.out.rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.CopyLink):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, copyCmd(m.copyText, row.LookupURL)

	case key.Matches(msg, m.keys.OpenLink):
		row, ok := m.selectedRow()
		if !ok {
			return m, nil
		}
		return m, openCmd(m.openURL, row.LookupURL)

	case key.Matches(msg, m.keys.Clear):
		if !m.out.clearVisible {
			return m, nil
		}
		m.confirm = newConfirmModal(
			"Are you sure you want to clear all matches from memory?",
			m.delegateClear,
		)
		return m, nil
	}

	return m, nil
}

// handleSearchKey edits the search text. The filter follows every
// keystroke; enter keeps the text and esc drops it.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searching = false
		m.search.Blur()
		return m, nil
	case msg.Type == tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.dash.SetSearch("")
		m.cursor = 0
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.dash.SetSearch(after)
		m.cursor = 0
	}
	return m, cmd
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.dash.Stop()
	return m, tea.Quit
}

// toggleTheme flips light/dark and persists the choice. A failed save is
// logged; the new theme still applies.
func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = ThemeFor(m.theme.Name.Toggle())
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.WithError(err).WithField("path", m.prefsPath).Warn("save theme preference")
	}
	return m, nil
}

func (m Model) delegateClear() tea.Msg {
	m.log.Info("clear matches requested; delegated to the web console")
	return noticeMsg("Clearing matches is done from the web console")
}

func (m Model) setNotice(text string) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	seq := m.noticeSeq
	return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return clearNoticeMsg(seq)
	})
}

func (m Model) selectedRow() (dashboard.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.out.rows) {
		return dashboard.Row{}, false
	}
	return m.out.rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.out.rows) {
		m.cursor = len(m.out.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) runJobs(jobs []dashboard.Job) tea.Cmd {
	if len(jobs) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(jobs))
	for _, job := range jobs {
		cmds = append(cmds, fetchCmd(m.ctx, job))
	}
	return tea.Batch(cmds...)
}

// Messages

type resultMsg dashboard.Result

type tickMsg struct {
	generation int
}

type noticeMsg string

type clearNoticeMsg int

// Commands

func tickCmd(d time.Duration, generation int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func fetchCmd(ctx context.Context, job dashboard.Job) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(job.Run(ctx))
	}
}

func copyCmd(write func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := write(url); err != nil {
			return noticeMsg(fmt.Sprintf("Copy failed: %v", err))
		}
		return noticeMsg("Copied " + url)
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		if err := open(url); err != nil {
			return noticeMsg(fmt.Sprintf("Open failed: %v", err))
		}
		return noticeMsg("Opened " + url)
	}
}

// Run starts the Bubble Tea program and blocks until the operator quits
// or ctx is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.dash.Stop()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
