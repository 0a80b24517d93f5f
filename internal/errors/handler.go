// Package errors routes user-facing messages to the console or to the TUI
// status line.
package errors

import (
	"fmt"

	"github.com/cristianoliveira/barscan/internal/colors"
)

// ErrorHandler receives user-facing messages by severity.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput is the console surface a CLIHandler prints to.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

var _ ColorOutput = colors.Output{}

// CLIHandler prints messages to the console.
type CLIHandler struct {
	out ColorOutput
}

// NewCLIHandler returns a handler printing through out.
func NewCLIHandler(out ColorOutput) *CLIHandler {
	return &CLIHandler{out: out}
}

// NewDefaultCLIHandler returns a handler printing through the colors package.
func NewDefaultCLIHandler() *CLIHandler {
	return NewCLIHandler(colors.Output{})
}

func (h *CLIHandler) Error(msg string)   { h.out.Error(msg) }
func (h *CLIHandler) Warning(msg string) { h.out.Warning(msg) }
func (h *CLIHandler) Info(msg string)    { h.out.Info(msg) }
func (h *CLIHandler) Success(msg string) { h.out.Success(msg) }

// Report sends err to h as an error message prefixed with action. A nil err
// is ignored.
func Report(h ErrorHandler, action string, err error) {
	if err == nil {
		return
	}
	h.Error(fmt.Sprintf("%s: %v", action, err))
}
