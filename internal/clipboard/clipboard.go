// Package clipboard places text on the system clipboard from a terminal.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/cristianoliveira/barscan/internal/config"
)

// DefaultTimeout bounds an external copy command.
const DefaultTimeout = 5 * time.Second

// Copier puts text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// OSC52 asks the terminal emulator to set the clipboard with an OSC 52
// escape sequence. It works over SSH and inside tmux.
type OSC52 struct {
	out  io.Writer
	tmux bool
}

// NewOSC52 returns a copier writing to out. Inside tmux the sequence is
// wrapped in a passthrough.
func NewOSC52(out io.Writer) *OSC52 {
	return &OSC52{out: out, tmux: os.Getenv("TMUX") != ""}
}

// Copy implements Copier.
func (c *OSC52) Copy(text string) error {
	seq := osc52.New(text)
	if c.tmux {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		return fmt.Errorf("write osc52: %w", err)
	}
	return nil
}

// Command pipes the text into an external program such as wl-copy, xclip
// or pbcopy.
type Command struct {
	args    []string
	timeout time.Duration
}

// NewCommand returns a copier running command, split on whitespace.
func NewCommand(command string) *Command {
	return &Command{args: strings.Fields(command), timeout: DefaultTimeout}
}

// Copy implements Copier.
func (c *Command) Copy(text string) error {
	if len(c.args) == 0 {
		return errors.New("clipboard command is empty")
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.args[0], c.args[1:]...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("clipboard command %s timed out after %s", c.args[0], c.timeout)
		}
		return fmt.Errorf("clipboard command %s: %w: %s", c.args[0], err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Multi copies through every copier and joins their errors.
type Multi []Copier

// Copy implements Copier.
func (m Multi) Copy(text string) error {
	var errs []error
	for _, c := range m {
		if err := c.Copy(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromConfig returns an OSC 52 copier writing to out, plus the configured
// clipboard_command when set.
func FromConfig(out io.Writer) Copier {
	copiers := Multi{NewOSC52(out)}
	if command := config.Get("clipboard_command", ""); command != "" {
		copiers = append(copiers, NewCommand(command))
	}
	return copiers
}
