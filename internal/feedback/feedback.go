// Package feedback signals a successful action to the user. On a terminal
// the closest thing to a haptic tap is the bell.
package feedback

import (
	"io"

	"github.com/cristianoliveira/barscan/internal/config"
)

// Notifier emits success feedback. Implementations must not block and must
// swallow their own failures.
type Notifier interface {
	Success()
}

// Bell rings the terminal bell.
type Bell struct {
	out io.Writer
}

// NewBell returns a bell writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

// Success implements Notifier.
func (b *Bell) Success() {
	_, _ = io.WriteString(b.out, "\a")
}

// Func adapts a function to Notifier.
type Func func()

// Success implements Notifier.
func (f Func) Success() { f() }

// Multi fans out to several notifiers.
type Multi []Notifier

// Success implements Notifier.
func (m Multi) Success() {
	for _, n := range m {
		n.Success()
	}
}

type nop struct{}

func (nop) Success() {}

// Nop returns a notifier that does nothing.
func Nop() Notifier { return nop{} }

// FromConfig returns a bell on out when feedback_bell is enabled.
func FromConfig(out io.Writer) Notifier {
	if !config.GetBool("feedback_bell", true) {
		return Nop()
	}
	return NewBell(out)
}
