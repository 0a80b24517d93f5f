package app

import (
	"fmt"
	"io"
	"os"

	"github.com/cristianoliveira/barscan/internal/appstate"
	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/clipboard"
	"github.com/cristianoliveira/barscan/internal/colors"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/feedback"
	"github.com/cristianoliveira/barscan/internal/history"
	"github.com/cristianoliveira/barscan/internal/hooks"
	"github.com/cristianoliveira/barscan/internal/lifecycle"
	"github.com/cristianoliveira/barscan/internal/logging"
	"github.com/cristianoliveira/barscan/internal/search"
	"github.com/cristianoliveira/barscan/internal/storage"
	"github.com/cristianoliveira/barscan/internal/tui/state"
)

// Client defines what the tui command needs.
type Client interface {
	CreateModel() (*state.Model, error)
	RunProgram(model *state.Model) error
}

// DefaultClient builds the model from the global configuration.
type DefaultClient struct {
	runner   ProgramRunner
	terminal io.Writer
	logger   logging.Logger
}

// NewDefaultClient creates a client. A nil runner uses DefaultProgramRunner
// and a nil terminal writes clipboard and bell sequences to stderr.
func NewDefaultClient(runner ProgramRunner, terminal io.Writer, logger logging.Logger) *DefaultClient {
	if runner == nil {
		runner = NewDefaultProgramRunner()
	}
	if terminal == nil {
		terminal = os.Stderr
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &DefaultClient{runner: runner, terminal: terminal, logger: logger}
}

// CreateModel wires the session state, history, source, gate, history
// search and on-scan hooks.
func (d *DefaultClient) CreateModel() (*state.Model, error) {
	settings := camera.SettingsFromConfig()
	settings.Logger = d.logger
	var wedge *camera.Wedge
	if settings.Kind == config.SourceWedge {
		wedge = camera.NewWedge()
		settings.Wedge = wedge
	}
	capability, err := camera.New(settings)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewFromConfig()
	if err != nil {
		return nil, err
	}
	notifier := feedback.FromConfig(d.terminal)
	hist := history.New(store,
		history.WithClipboard(clipboard.FromConfig(d.terminal)),
		history.WithFeedback(notifier),
		history.WithLogger(d.logger.With("component", "history")),
	)
	hookSettings := hooks.SettingsFromConfig()
	hookSettings.Logger = d.logger
	gate := lifecycle.New(lifecycle.FromCapability(capability),
		lifecycle.WithLogger(d.logger.With("component", "gate")))

	return state.NewModel(state.Options{
		State:      appstate.New(),
		History:    hist,
		Capability: capability,
		Gate:       gate,
		Wedge:      wedge,
		Feedback:   notifier,
		Search:     search.NewFromConfig(),
		Hooks:      hooks.New(hookSettings),
		Logger:     d.logger.With("component", "tui"),
		Theme:      config.Get("theme", "dark"),
	})
}

// RunProgram runs the model and releases the source and history afterwards.
func (d *DefaultClient) RunProgram(model *state.Model) error {
	defer model.Shutdown()
	defer func() {
		if err := model.Close(); err != nil {
			d.logger.Warn("close history", "error", err)
		}
	}()
	if err := d.runner.Run(model); err != nil {
		colors.Error(fmt.Sprintf("Error running TUI: %v", err))
		return err
	}
	return nil
}
