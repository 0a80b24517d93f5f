package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/barscan/internal/appstate"
	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/camera"
	tuierrors "github.com/cristianoliveira/barscan/internal/errors"
	"github.com/cristianoliveira/barscan/internal/hooks"
	"github.com/cristianoliveira/barscan/internal/lifecycle"
)

// typing reports whether keys go to the wedge input.
func (m *Model) typing() bool {
	return m.screen == ScreenScanner && m.wedge != nil && m.gate.Active()
}

// handleInputKey keeps only non-printable bindings active while typing.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drawerOpen = true
		m.drawerCursor = int(m.screen)
		return m, nil
	case "tab":
		return m, m.setScreen(ScreenHistory)
	case "shift+tab":
		return m, m.setScreen(ScreenHome)
	case "ctrl+t":
		m.toggleTheme()
		return m, nil
	case "ctrl+z":
		return m.suspend()
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		if text == "" {
			return m, nil
		}
		if !m.wedge.Submit(text) {
			return m, m.flash(tuierrors.MessageTypeWarning, "Scanner busy, try again")
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleScannerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.permission.Granted() && (key.Matches(msg, m.keys.Grant) || key.Matches(msg, m.keys.Select)) {
		return m, requestPermission(m.ctx, m.capability)
	}
	if m.permission.Granted() && !m.gate.Active() && key.Matches(msg, m.keys.Restart) {
		return m, m.activate()
	}
	return m, nil
}

func (m *Model) handlePermission(p camera.Permission) tea.Cmd {
	m.permission = p
	if m.screen != ScreenScanner || !p.Granted() {
		return nil
	}
	return m.activate()
}

// activate focuses the gate. Failures leave the scanner inactive with the
// permission prompt shown when access was refused.
func (m *Model) activate() tea.Cmd {
	if m.gate.Active() {
		return nil
	}
	if err := m.gate.Focus(m.ctx); err != nil {
		m.logger.Warn("activate scanner", "source", m.capability.Name(), "error", err)
		if errors.Is(err, camera.ErrPermissionDenied) {
			m.permission = camera.PermissionDenied
		}
		return m.flash(tuierrors.MessageTypeError, fmt.Sprintf("Scanner unavailable: %v", err))
	}
	if m.wedge != nil {
		m.input.Reset()
		m.input.Focus()
	}
	return waitForStop(m.gate.Stopped(), m.gate.Generation())
}

func (m *Model) deactivate() {
	m.gate.Blur()
	m.input.Blur()
}

// handleSourceStopped releases a source that ended on its own so the restart
// key can open it again.
func (m *Model) handleSourceStopped(generation uint64) tea.Cmd {
	if generation != m.gate.Generation() || !m.gate.Active() {
		return nil
	}
	err := m.gate.Err()
	m.deactivate()
	if err == nil {
		return m.flash(tuierrors.MessageTypeInfo, "Scanner input ended")
	}
	return m.flash(tuierrors.MessageTypeError, fmt.Sprintf("Scanner stopped: %v", err))
}

// handleScanEvent admits events of the current activation only, then waits
// for the next one.
func (m *Model) handleScanEvent(ev lifecycle.Event) (tea.Model, tea.Cmd) {
	next := waitForEvent(m.gate.Events())
	if !m.gate.Admit(ev) {
		m.logger.Debug("drop stale scan", "generation", ev.Generation, "text", ev.Text)
		return m, next
	}
	return m, tea.Batch(next, m.accept(ev))
}

// accept is the single write path from a decode into shared state and
// history.
func (m *Model) accept(ev lifecycle.Event) tea.Cmd {
	scan := appstate.Scan{Text: ev.Text, Symbology: ev.Symbology, Source: ev.Source, At: ev.At}
	res := m.state.Offer(scan)
	if !res.Changed {
		return nil
	}
	m.feedback.Success()
	m.logger.Info("scan accepted", "text", scan.Text, "symbology", string(scan.Symbology), "source", scan.Source)
	entry, _, err := m.history.Append(scan)
	if err != nil {
		m.logger.Error("append history", "error", err)
		return m.flash(tuierrors.MessageTypeError, err.Error())
	}
	m.refreshHistory()

	symbology := ""
	if scan.Symbology != barcode.SymbologyUnknown {
		symbology = scan.Symbology.String()
	}
	return runScanHooks(m.ctx, m.hooks, scan.Text, hooks.ScanEnv(scan.Text, symbology, scan.Source, entry.ID))
}

func (m *Model) handleHookResult(msg hookResultMsg) tea.Cmd {
	if msg.err == nil {
		return nil
	}
	m.logger.Warn("on-scan hooks", "text", msg.text, "error", msg.err)
	return m.flash(tuierrors.MessageTypeWarning, fmt.Sprintf("Hook failed for %s", msg.text))
}
