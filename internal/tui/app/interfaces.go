// Package app assembles the TUI from configuration and runs it.
package app

import tea "github.com/charmbracelet/bubbletea"

// ProgramRunner runs a bubbletea program.
type ProgramRunner interface {
	Run(model tea.Model) error
}

// DefaultProgramRunner runs the program in the alternate screen.
type DefaultProgramRunner struct{}

// NewDefaultProgramRunner creates a DefaultProgramRunner.
func NewDefaultProgramRunner() *DefaultProgramRunner {
	return &DefaultProgramRunner{}
}

// Run starts a bubbletea program with the given model.
func (r *DefaultProgramRunner) Run(model tea.Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
