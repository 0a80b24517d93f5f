// Package lifecycle ties a barcode source to the focus state of the screen
// that owns it.
//
// A Gate opens its source on Focus and closes it on Blur. Every activation
// gets a new generation number and every event carries the generation it was
// produced under, so events that arrive after a Blur are recognised as stale
// and dropped by Admit.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cristianoliveira/barscan/internal/camera"
	"github.com/cristianoliveira/barscan/internal/logging"
)

const defaultBuffer = 16

// Event is a source event stamped with its activation generation.
type Event struct {
	camera.Event
	Generation uint64
}

// Factory opens a fresh source for each activation.
type Factory func() (camera.Source, error)

// Option configures a Gate.
type Option func(*Gate)

// WithLogger sets the logger used for source failures.
func WithLogger(l logging.Logger) Option {
	return func(g *Gate) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithBuffer sets the capacity of the events channel.
func WithBuffer(n int) Option {
	return func(g *Gate) {
		if n > 0 {
			g.buffer = n
		}
	}
}

// Gate owns the activation state of one source.
type Gate struct {
	factory Factory
	logger  logging.Logger
	buffer  int
	events  chan Event

	mu     sync.Mutex
	active bool
	gen    uint64
	cancel context.CancelFunc
	done   chan struct{}

	errMu   sync.Mutex
	lastErr error
}

// New returns an inactive gate.
func New(factory Factory, opts ...Option) *Gate {
	g := &Gate{
		factory: factory,
		logger:  logging.Nop(),
		buffer:  defaultBuffer,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.events = make(chan Event, g.buffer)
	return g
}

// FromCapability returns a factory that opens c on every activation.
func FromCapability(c camera.Capability) Factory {
	return c.Open
}

// Events returns the channel events are delivered on. It is never closed and
// may hold events of earlier generations; filter with Admit.
func (g *Gate) Events() <-chan Event {
	return g.events
}

// Focus activates the gate. It is a no-op when already active. When the
// source cannot be opened the gate stays inactive.
func (g *Gate) Focus(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active {
		return nil
	}

	src, err := g.factory()
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}

	g.gen++
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	g.active = true
	g.cancel = cancel
	g.done = done
	g.setErr(nil)

	g.logger.Debug("source activated", "generation", g.gen)
	go g.run(runCtx, src, g.gen, done)
	return nil
}

func (g *Gate) run(ctx context.Context, src camera.Source, gen uint64, done chan struct{}) {
	defer close(done)
	defer func() {
		if err := src.Close(); err != nil {
			g.logger.Warn("close source", "generation", gen, "error", err)
		}
	}()

	err := src.Run(ctx, func(ev camera.Event) {
		select {
		case g.events <- Event{Event: ev, Generation: gen}:
		case <-ctx.Done():
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		g.logger.Error("source stopped", "generation", gen, "error", err)
		g.setErr(err)
	}
}

// Blur deactivates the gate, cancels the running source and waits for it to
// release its resources. It is a no-op when inactive.
func (g *Gate) Blur() {
	g.mu.Lock()
	if !g.active {
		g.mu.Unlock()
		return
	}
	g.active = false
	cancel, done := g.cancel, g.done
	g.cancel, g.done = nil, nil
	gen := g.gen
	g.mu.Unlock()

	cancel()
	<-done
	g.logger.Debug("source deactivated", "generation", gen)
}

// Active reports the activation state.
func (g *Gate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// Generation returns the number of the current or most recent activation.
func (g *Gate) Generation() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.gen
}

// Admit reports whether ev belongs to the current activation.
func (g *Gate) Admit(ev Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active && ev.Generation == g.gen
}

// Stopped returns a channel closed when the running source exits on its own
// or is blurred. It returns nil while inactive.
func (g *Gate) Stopped() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}

// Err returns the error that ended the current activation, if any.
func (g *Gate) Err() error {
	g.errMu.Lock()
	defer g.errMu.Unlock()
	return g.lastErr
}

func (g *Gate) setErr(err error) {
	g.errMu.Lock()
	g.lastErr = err
	g.errMu.Unlock()
}
