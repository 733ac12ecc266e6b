package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/flashdeck/internal/backend"
	"github.com/five82/flashdeck/internal/document"
	"github.com/five82/flashdeck/internal/notify"
	"github.com/five82/flashdeck/internal/prefs"
	"github.com/five82/flashdeck/internal/session"
)

// View represents the current active view.
type View int

const (
	ViewMain View = iota
	ViewPicker
	ViewLogs
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	API         backend.API
	APIBase     string // shown in the header and the disconnected banner
	LogFile     string // tailed by the activity pane
	InitialFile string // inspected at startup when set
	StartDir    string // where the file picker opens
	ThemeName   string
	PrefsPath   string
	PollTick    time.Duration
	Logger      *slog.Logger
	Notifier    notify.Notifier // receives every notice in addition to the toasts
	Inspect     session.Inspector
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	api         backend.API
	apiBase     string
	logFile     string
	initialFile string
	prefsPath   string
	pollTick    time.Duration
	log         *slog.Logger
	notifier    notify.Notifier
	inspect     session.Inspector

	// UI state
	theme       Theme
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Session state
	state session.State

	// Components
	help    help.Model
	spinner spinner.Model
	picker  filepicker.Model

	// Toasts
	toasts      []toast
	nextToastID int

	// Log state
	logViewport viewport.Model
	logLines    []string
	logErr      string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Log{Logger: logger}
	}

	inspect := opts.Inspect
	if inspect == nil {
		inspect = document.Inspect
	}

	picker := filepicker.New()
	picker.AllowedTypes = []string{".pdf"}
	picker.AutoHeight = true
	picker.CurrentDirectory = startDir(opts.StartDir)

	m := Model{
		ctx:         ctx,
		api:         opts.API,
		apiBase:     opts.APIBase,
		logFile:     opts.LogFile,
		initialFile: strings.TrimSpace(opts.InitialFile),
		prefsPath:   prefsPath,
		pollTick:    pollTick,
		log:         logger,
		notifier:    notifier,
		inspect:     inspect,
		theme:       GetTheme(themeName),
		keys:        DefaultKeyMap(),
		currentView: ViewMain,
		help:        help.New(),
		spinner:     spinner.New(spinner.WithSpinner(spinner.Dot)),
		picker:      picker,
		logViewport: viewport.New(80, 20),
	}
	m.applyTheme()
	return m
}

func startDir(dir string) string {
	if dir = strings.TrimSpace(dir); dir != "" {
		return dir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		healthCmd(m.ctx, m.api, false),
		m.picker.Init(),
		tickCmd(m.pollTick),
	}
	if m.initialFile != "" {
		cmds = append(cmds, inspectCmd(m.inspect, m.initialFile))
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
		m.help.Width = msg.Width
		m.resizeLogViewport()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case healthMsg:
		return m, m.apply(session.HealthChecked{Err: msg.err, Manual: msg.manual})

	case inspectedMsg:
		if msg.err != nil {
			return m, m.apply(session.FileFailed{Path: msg.path, Err: msg.err})
		}
		return m, m.apply(session.FileSelected{File: msg.file})

	case generatedMsg:
		return m, m.apply(session.GenerateFinished{Cards: msg.cards, Err: msg.err})

	case toastExpiredMsg:
		m.dropToast(msg.id)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	// Directory listings and anything else the picker asked for.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
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
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch m.currentView {
	case ViewPicker:
		return m.handlePickerKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		m.currentView = ViewPicker
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Generate):
		return m, m.apply(session.GenerateRequested{})

	case key.Matches(msg, m.keys.Recheck):
		return m, healthCmd(m.ctx, m.api, true)

	case key.Matches(msg, m.keys.Logs):
		m.currentView = ViewLogs
		return m, readLogCmd(m.logFile)

	case key.Matches(msg, m.keys.Next):
		return m, m.apply(session.NextCard{})

	case key.Matches(msg, m.keys.Previous):
		return m, m.apply(session.PreviousCard{})

	case key.Matches(msg, m.keys.Toggle):
		return m, m.apply(session.ToggleAnswer{})
	}

	return m, nil
}

// handlePickerKey forwards keys to the file picker and inspects the chosen file.
func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Escape) {
		m.currentView = ViewMain
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.currentView = ViewMain
		return m, tea.Batch(cmd, inspectCmd(m.inspect, path))
	}
	// Files without a .pdf extension are shown greyed out; choosing one
	// still goes through inspection so the rejection is reported.
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.currentView = ViewMain
		return m, tea.Batch(cmd, inspectCmd(m.inspect, path))
	}
	return m, cmd
}

// apply runs one event through the session reducer and turns its effect
// into commands.
func (m *Model) apply(event session.Event) tea.Cmd {
	before := m.state.Phase()
	next, eff := session.Reduce(m.state, event)
	m.state = next
	m.log.Debug("session event",
		"event", fmt.Sprintf("%T", event),
		"from", before.String(),
		"to", next.Phase().String())

	notify.Dispatch(m.notifier, eff.Notices)

	cmds := make([]tea.Cmd, 0, len(eff.Notices)+2)
	for _, n := range eff.Notices {
		cmds = append(cmds, m.pushToast(n))
	}
	if eff.StartGenerate && m.state.File != nil {
		cmds = append(cmds, generateCmd(m.ctx, m.api, *m.state.File), m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.applyTheme()
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.Warn("save preferences failed", "error", err)
	}
}

// applyTheme restyles the bubbles components after a theme change.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.picker.Styles.Cursor = styles.AccentText
	m.picker.Styles.Selected = styles.AccentText.Bold(true)
	m.picker.Styles.Directory = styles.InfoText
	m.picker.Styles.File = styles.Text
	m.picker.Styles.DisabledFile = styles.FaintText
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.currentView == ViewLogs {
		cmds = append(cmds, readLogCmd(m.logFile))
	}
	return m, tea.Batch(cmds...)
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")

	switch m.currentView {
	case ViewPicker:
		b.WriteString(m.renderPicker())
	case ViewLogs:
		b.WriteString(m.renderLogs())
	default:
		b.WriteString(m.renderSession())
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	return b.String()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
