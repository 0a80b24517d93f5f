package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	tuierrors "github.com/cristianoliveira/barscan/internal/errors"
	"github.com/cristianoliveira/barscan/internal/tui/render"
)

// View renders the model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	width := m.width
	if width == 0 {
		width = defaultViewportWidth
	}

	body := m.screenView()
	if m.confirm.Visible {
		body = m.confirm.View(m.theme.Border, m.theme.Warning)
	} else if m.drawerOpen {
		drawer := render.Drawer(m.theme, screenNames, m.drawerCursor, int(m.screen))
		body = lipgloss.JoinHorizontal(lipgloss.Top, drawer, "  ", body)
	}

	sections := []string{
		render.Header(m.theme, m.screen.String(), width),
		"",
		body,
		"",
		m.statusLine(),
		m.help.View(m.helpBindings()),
	}
	return strings.Join(sections, "\n")
}

func (m *Model) screenView() string {
	switch m.screen {
	case ScreenScanner:
		return m.scannerView()
	case ScreenHistory:
		if m.filtering || m.filter.Value() != "" {
			return m.filter.View() + "\n" + m.viewport.View()
		}
		return m.viewport.View()
	default:
		return render.Home(m.theme, m.state.LastScan(), m.history.Len())
	}
}

func (m *Model) scannerView() string {
	s := render.ScannerState{
		Permission: m.permission,
		Active:     m.gate.Active(),
		Source:     m.capability.Name(),
		LastScan:   m.state.LastScan(),
		Spinner:    m.spinner.View(),
	}
	if m.wedge != nil {
		s.Input = m.input.View()
	}
	return render.Scanner(m.theme, s)
}

func (m *Model) historyContent() string {
	if len(m.entries) == 0 && m.filter.Value() != "" && m.history.Len() > 0 {
		return render.NoMatches(m.theme, m.filter.Value())
	}
	return render.History(m.theme, m.entries, m.historyCursor, m.viewport.Width)
}

func (m *Model) statusLine() string {
	msg, ok := m.status.Current()
	if !ok {
		return ""
	}
	style := m.theme.Muted
	switch msg.Type {
	case tuierrors.MessageTypeError:
		style = m.theme.Error
	case tuierrors.MessageTypeWarning:
		style = m.theme.Warning
	case tuierrors.MessageTypeSuccess:
		style = m.theme.Success
	}
	return render.Status(m.theme, msg.Text, style)
}
