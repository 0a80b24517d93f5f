// Package confirm is a modal yes/no dialog for the TUI.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ResultMsg carries the user's answer.
type ResultMsg struct {
	Confirmed bool
}

// Model is the dialog state. The zero value is hidden.
type Model struct {
	Visible bool
	Title   string
	Message string
}

// Show returns a visible dialog.
func Show(title, message string) Model {
	return Model{Visible: true, Title: title, Message: message}
}

// Update answers y/enter with Confirmed true and n/esc with false. Other
// keys are swallowed while the dialog is visible.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || !m.Visible {
		return m, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		return Model{}, answer(true)
	case "n", "N", "esc":
		return Model{}, answer(false)
	}
	return m, nil
}

func answer(confirmed bool) tea.Cmd {
	return func() tea.Msg { return ResultMsg{Confirmed: confirmed} }
}

// View renders the dialog box, or "" when hidden.
func (m Model) View(border lipgloss.Style, title lipgloss.Style) string {
	if !m.Visible {
		return ""
	}
	lines := []string{
		title.Render(m.Title),
		"",
		m.Message,
		"",
		"[y] Confirm   [n] Cancel",
	}
	return border.Render(strings.Join(lines, "\n"))
}
