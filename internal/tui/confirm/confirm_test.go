package confirm

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAnswers(t *testing.T) {
	tests := []struct {
		key       string
		confirmed bool
	}{
		{"y", true},
		{"Y", true},
		{"enter", true},
		{"n", false},
		{"N", false},
		{"esc", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, cmd := Show("Confirm Action", "Are you sure?").Update(keyMsg(tt.key))
			assert.False(t, m.Visible)
			require.NotNil(t, cmd)
			assert.Equal(t, ResultMsg{Confirmed: tt.confirmed}, cmd())
		})
	}
}

func TestOtherKeysKeepDialogOpen(t *testing.T) {
	m, cmd := Show("Confirm Action", "Are you sure?").Update(keyMsg("x"))
	assert.True(t, m.Visible)
	assert.Nil(t, cmd)
}

func TestHiddenDialogIgnoresKeys(t *testing.T) {
	m, cmd := Model{}.Update(keyMsg("y"))
	assert.False(t, m.Visible)
	assert.Nil(t, cmd)
	assert.Empty(t, m.View(lipgloss.NewStyle(), lipgloss.NewStyle()))
}

func TestView(t *testing.T) {
	view := Show("Confirm Action", "Are you sure you want to clear the list?").View(lipgloss.NewStyle(), lipgloss.NewStyle())
	assert.Contains(t, view, "Confirm Action")
	assert.Contains(t, view, "Are you sure you want to clear the list?")
	assert.Contains(t, view, "[y] Confirm")
}
