package state

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	tuierrors "github.com/cristianoliveira/barscan/internal/errors"
	"github.com/cristianoliveira/barscan/internal/search"
	"github.com/cristianoliveira/barscan/internal/tui/confirm"
)

const (
	copiedMessage       = "Copied! Text has been copied to clipboard."
	clearConfirmTitle   = "Confirm Action"
	clearConfirmMessage = "Are you sure you want to clear the list?"
)

func (m *Model) refreshHistory() {
	entries, err := m.history.Entries()
	if err != nil {
		m.logger.Error("load history", "error", err)
		return
	}
	m.entries = search.Filter(m.search, entries, m.filter.Value())
	if m.historyCursor >= len(m.entries) {
		m.historyCursor = len(m.entries) - 1
	}
	if m.historyCursor < 0 {
		m.historyCursor = 0
	}
	m.syncViewport()
}

// syncViewport renders the rows and scrolls the cursor into view.
func (m *Model) syncViewport() {
	m.viewport.SetContent(m.historyContent())
	if len(m.entries) == 0 {
		m.viewport.GotoTop()
		return
	}
	if m.historyCursor < m.viewport.YOffset {
		m.viewport.SetYOffset(m.historyCursor)
	}
	if bottom := m.viewport.YOffset + m.viewport.Height; m.historyCursor >= bottom {
		m.viewport.SetYOffset(m.historyCursor - m.viewport.Height + 1)
	}
}

func (m *Model) selectedID() (int, bool) {
	if m.historyCursor < 0 || m.historyCursor >= len(m.entries) {
		return 0, false
	}
	return m.entries[m.historyCursor].ID, true
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.historyCursor > 0 {
			m.historyCursor--
			m.syncViewport()
		}
	case key.Matches(msg, m.keys.Down):
		if m.historyCursor < len(m.entries)-1 {
			m.historyCursor++
			m.syncViewport()
		}
	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelected()
	case key.Matches(msg, m.keys.Delete):
		return m, m.deleteSelected()
	case key.Matches(msg, m.keys.Clear):
		m.requestClear()
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m, m.filter.Focus()
	}
	return m, nil
}

// handleFilterKey edits the filter query. The list is filtered as the query
// changes; enter keeps the query, esc drops it.
func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.refreshHistory()
		return m, nil
	}
	prev := m.filter.Value()
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != prev {
		m.historyCursor = 0
		m.refreshHistory()
	}
	return m, cmd
}

func (m *Model) copySelected() tea.Cmd {
	id, ok := m.selectedID()
	if !ok || !m.history.Copy(id) {
		return nil
	}
	return m.flash(tuierrors.MessageTypeSuccess, copiedMessage)
}

func (m *Model) deleteSelected() tea.Cmd {
	id, ok := m.selectedID()
	if !ok {
		return nil
	}
	if err := m.history.Delete(id); err != nil {
		return m.flash(tuierrors.MessageTypeError, err.Error())
	}
	m.refreshHistory()
	return nil
}

// requestClear opens the confirmation dialog. Clearing always covers the
// whole history, not only the filtered rows. An empty list has nothing to
// clear.
func (m *Model) requestClear() {
	if m.history.Len() == 0 {
		return
	}
	m.pendingClear = m.history.RequestClear()
	m.confirm = confirm.Show(clearConfirmTitle, clearConfirmMessage)
}

func (m *Model) handleClearResult(confirmed bool) tea.Cmd {
	req := m.pendingClear
	m.pendingClear = nil
	if req == nil {
		return nil
	}
	if err := req.Resolve(confirmed); err != nil {
		return m.flash(tuierrors.MessageTypeError, fmt.Sprintf("Clear failed: %v", err))
	}
	m.refreshHistory()
	if confirmed {
		return m.flash(tuierrors.MessageTypeInfo, "History cleared")
	}
	return nil
}
