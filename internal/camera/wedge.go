package camera

import (
	"context"
	"time"
)

const wedgeBuffer = 8

// Wedge is a source fed from inside the process, used for keyboard-wedge
// scanners typing into the terminal that hosts the TUI.
type Wedge struct {
	lines chan string
}

// NewWedge returns an empty wedge.
func NewWedge() *Wedge {
	return &Wedge{lines: make(chan string, wedgeBuffer)}
}

// Submit hands a typed code to the running source. It never blocks and
// reports false when the buffer is full.
func (w *Wedge) Submit(text string) bool {
	if text == "" {
		return false
	}
	select {
	case w.lines <- text:
		return true
	default:
		return false
	}
}

// Name implements Capability.
func (w *Wedge) Name() string { return "wedge" }

// Permission implements Capability. Typing into the terminal needs no grant.
func (w *Wedge) Permission(ctx context.Context) Permission { return PermissionGranted }

// RequestPermission implements Capability.
func (w *Wedge) RequestPermission(ctx context.Context) Permission { return PermissionGranted }

// Open implements Capability. Codes submitted before Open are dropped.
func (w *Wedge) Open() (Source, error) {
	for {
		select {
		case <-w.lines:
		default:
			return &wedgeSource{w: w}, nil
		}
	}
}

type wedgeSource struct {
	w *Wedge
}

func (s *wedgeSource) Run(ctx context.Context, emit func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text := <-s.w.lines:
			emit(Event{Text: text, Source: s.w.Name(), At: time.Now()})
		}
	}
}

func (s *wedgeSource) Close() error { return nil }
