// Package state implements the root bubbletea model: a drawer navigator over
// the Home, Scanner and History screens.
package state

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/barscan/internal/appstate"
	"github.com/cristianoliveira/barscan/internal/camera"
	tuierrors "github.com/cristianoliveira/barscan/internal/errors"
	"github.com/cristianoliveira/barscan/internal/feedback"
	"github.com/cristianoliveira/barscan/internal/history"
	"github.com/cristianoliveira/barscan/internal/hooks"
	"github.com/cristianoliveira/barscan/internal/lifecycle"
	"github.com/cristianoliveira/barscan/internal/logging"
	"github.com/cristianoliveira/barscan/internal/search"
	"github.com/cristianoliveira/barscan/internal/tui/confirm"
	"github.com/cristianoliveira/barscan/internal/tui/render"
)

const (
	headerFooterLines     = 5
	defaultViewportWidth  = 80
	defaultViewportHeight = 18
	defaultStatusTTL      = 3 * time.Second
)

// Screen identifies a drawer destination.
type Screen int

const (
	ScreenHome Screen = iota
	ScreenScanner
	ScreenHistory
)

var screenNames = []string{"Home", "Scanner", "History"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return "Unknown"
	}
	return screenNames[s]
}

// Options are the collaborators of the root model.
type Options struct {
	State      *appstate.State
	History    *history.History
	Capability camera.Capability
	Gate       *lifecycle.Gate
	// Wedge enables the typed-input box on the scanner screen.
	Wedge     *camera.Wedge
	Feedback  feedback.Notifier
	// Search filters the History screen; nil selects token search.
	Search search.Provider
	// Hooks run after each accepted scan; nil runs none.
	Hooks     *hooks.Runner
	Logger    logging.Logger
	Theme     string
	StatusTTL time.Duration
}

// Model is the root TUI model.
type Model struct {
	state      *appstate.State
	history    *history.History
	capability camera.Capability
	gate       *lifecycle.Gate
	wedge      *camera.Wedge
	feedback   feedback.Notifier
	search     search.Provider
	hooks      *hooks.Runner
	logger     logging.Logger
	status     *tuierrors.TUIHandler

	ctx    context.Context
	cancel context.CancelFunc

	screen       Screen
	drawerOpen   bool
	drawerCursor int
	theme        render.Theme
	width        int
	height       int

	permission camera.Permission
	input      textinput.Model
	spinner    spinner.Model

	// entries is the filtered view of history.
	entries       []history.Entry
	historyCursor int
	filter        textinput.Model
	filtering     bool
	viewport      viewport.Model
	confirm       confirm.Model
	pendingClear  *history.ClearRequest

	keys     keyMap
	help     help.Model
	quitting bool
}

// NewModel builds the root model. It starts on the Home screen with the
// source inactive.
func NewModel(opts Options) (*Model, error) {
	if opts.State == nil || opts.History == nil || opts.Capability == nil || opts.Gate == nil {
		return nil, errors.New("tui: state, history, capability and gate are required")
	}
	if opts.Feedback == nil {
		opts.Feedback = feedback.Nop()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Search == nil {
		opts.Search = search.NewTokenProvider(search.WithCaseInsensitive(true))
	}
	if opts.StatusTTL <= 0 {
		opts.StatusTTL = defaultStatusTTL
	}

	input := textinput.New()
	input.Placeholder = "scan or type a barcode, enter to submit"
	input.CharLimit = 64
	input.Prompt = "▌ "

	filter := textinput.New()
	filter.Placeholder = "text, ean13, #id"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		state:      opts.State,
		history:    opts.History,
		capability: opts.Capability,
		gate:       opts.Gate,
		wedge:      opts.Wedge,
		feedback:   opts.Feedback,
		search:     opts.Search,
		hooks:      opts.Hooks,
		logger:     opts.Logger,
		status:     tuierrors.NewTUIHandler(opts.StatusTTL, nil),
		ctx:        ctx,
		cancel:     cancel,
		screen:     ScreenHome,
		theme:      render.NewTheme(opts.Theme),
		permission: camera.PermissionUndetermined,
		input:      input,
		filter:     filter,
		spinner:    spin,
		viewport:   viewport.New(defaultViewportWidth, defaultViewportHeight),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
	m.refreshHistory()
	return m, nil
}

// Init starts draining gate events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.gate.Events()), m.spinner.Tick)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case scanEventMsg:
		return m.handleScanEvent(msg.event)
	case permissionMsg:
		return m, m.handlePermission(msg.permission)
	case sourceStoppedMsg:
		return m, m.handleSourceStopped(msg.generation)
	case confirm.ResultMsg:
		return m, m.handleClearResult(msg.Confirmed)
	case hookResultMsg:
		return m, m.handleHookResult(msg)
	case tea.ResumeMsg:
		if m.screen == ScreenScanner {
			return m, checkPermission(m.ctx, m.capability)
		}
		return m, nil
	case statusExpiredMsg:
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// Screen returns the focused screen.
func (m *Model) Screen() Screen { return m.screen }

// ScannerActive reports whether the source is running.
func (m *Model) ScannerActive() bool { return m.gate.Active() }

// Shutdown deactivates the source. It is safe to call more than once.
func (m *Model) Shutdown() {
	m.deactivate()
	m.cancel()
}

// Close waits for running hooks and discards the session history.
func (m *Model) Close() error {
	m.hooks.Wait()
	return m.history.Close()
}

// setScreen moves focus. Leaving the scanner always deactivates the source.
func (m *Model) setScreen(s Screen) tea.Cmd {
	m.drawerOpen = false
	if s == m.screen {
		return nil
	}
	prev := m.screen
	m.screen = s
	m.logger.Debug("screen focus", "from", prev.String(), "to", s.String())
	if prev == ScreenScanner {
		m.deactivate()
	}
	switch s {
	case ScreenScanner:
		return checkPermission(m.ctx, m.capability)
	case ScreenHistory:
		m.refreshHistory()
	}
	return nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.Shutdown()
	return m, tea.Quit
}

func (m *Model) suspend() (tea.Model, tea.Cmd) {
	m.deactivate()
	return m, tea.Suspend
}

func (m *Model) toggleTheme() {
	m.theme = m.theme.Toggle()
	m.syncViewport()
}

// flash shows text on the status line and schedules its expiry redraw.
func (m *Model) flash(typ tuierrors.MessageType, text string) tea.Cmd {
	switch typ {
	case tuierrors.MessageTypeError:
		m.status.Error(text)
	case tuierrors.MessageTypeWarning:
		m.status.Warning(text)
	case tuierrors.MessageTypeSuccess:
		m.status.Success(text)
	default:
		m.status.Info(text)
	}
	return expireStatus(m.status.TTL())
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-headerFooterLines, 1)
	m.input.Width = max(msg.Width-8, 10)
	m.filter.Width = max(msg.Width-8, 10)
	m.syncViewport()
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		if m.pendingClear != nil {
			m.pendingClear.Cancel()
			m.pendingClear = nil
		}
		return m.quit()
	}
	if m.confirm.Visible {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
	if m.drawerOpen {
		return m.handleDrawerKey(msg)
	}
	if m.typing() {
		return m.handleInputKey(msg)
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Suspend):
		return m.suspend()
	case key.Matches(msg, m.keys.Drawer):
		m.drawerOpen = true
		m.drawerCursor = int(m.screen)
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m, m.setScreen((m.screen + 1) % Screen(len(screenNames)))
	case key.Matches(msg, m.keys.Prev):
		return m, m.setScreen((m.screen + Screen(len(screenNames)) - 1) % Screen(len(screenNames)))
	case key.Matches(msg, m.keys.Home):
		return m, m.setScreen(ScreenHome)
	case key.Matches(msg, m.keys.Scanner):
		return m, m.setScreen(ScreenScanner)
	case key.Matches(msg, m.keys.History):
		return m, m.setScreen(ScreenHistory)
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.screen {
	case ScreenScanner:
		return m.handleScannerKey(msg)
	case ScreenHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m *Model) handleDrawerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.drawerCursor > 0 {
			m.drawerCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.drawerCursor < len(screenNames)-1 {
			m.drawerCursor++
		}
	case key.Matches(msg, m.keys.Select):
		return m, m.setScreen(Screen(m.drawerCursor))
	case key.Matches(msg, m.keys.Drawer):
		m.drawerOpen = false
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return m, nil
}
