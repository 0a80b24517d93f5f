package state

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/hooks"
	"github.com/cristianoliveira/barscan/internal/lifecycle"
)

// scanEventMsg delivers one gate event into the update loop.
type scanEventMsg struct {
	event lifecycle.Event
}

// permissionMsg carries the outcome of a permission check.
type permissionMsg struct {
	permission camera.Permission
}

// sourceStoppedMsg reports that the source of an activation exited.
type sourceStoppedMsg struct {
	generation uint64
}

// hookResultMsg reports the outcome of the on-scan hooks of one value.
type hookResultMsg struct {
	text string
	err  error
}

// statusExpiredMsg triggers a redraw once a status message has expired.
type statusExpiredMsg struct{}

// waitForEvent blocks on the gate channel until the next event.
func waitForEvent(events <-chan lifecycle.Event) tea.Cmd {
	return func() tea.Msg {
		return scanEventMsg{event: <-events}
	}
}

func waitForStop(stopped <-chan struct{}, generation uint64) tea.Cmd {
	if stopped == nil {
		return nil
	}
	return func() tea.Msg {
		<-stopped
		return sourceStoppedMsg{generation: generation}
	}
}

func checkPermission(ctx context.Context, c camera.Capability) tea.Cmd {
	return func() tea.Msg {
		return permissionMsg{permission: c.Permission(ctx)}
	}
}

func requestPermission(ctx context.Context, c camera.Capability) tea.Cmd {
	return func() tea.Msg {
		return permissionMsg{permission: c.RequestPermission(ctx)}
	}
}

func expireStatus(ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg { return statusExpiredMsg{} })
}

// runScanHooks runs the on-scan hooks off the update loop.
func runScanHooks(ctx context.Context, r *hooks.Runner, text string, env map[string]string) tea.Cmd {
	if len(r.Scripts(hooks.PointScan)) == 0 {
		return nil
	}
	return func() tea.Msg {
		return hookResultMsg{text: text, err: r.Run(ctx, hooks.PointScan, env)}
	}
}
