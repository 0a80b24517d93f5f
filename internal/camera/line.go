package camera

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
)

// LineCapability reads newline-terminated codes, as emitted by keyboard-wedge
// and serial scanners, from stdin or a device file.
//
// Stdin cannot be reopened and its reads cannot be interrupted, so a single
// reader serves every activation. Lines read while no source is open are
// dropped at the next Open.
type LineCapability struct {
	path  string
	stdin io.Reader

	once sync.Once
	pump *linePump
}

// NewStdin returns a line source reading r. A nil r reads os.Stdin.
func NewStdin(r io.Reader) *LineCapability {
	if r == nil {
		r = os.Stdin
	}
	return &LineCapability{stdin: r}
}

// NewDevice returns a line source reading the device or file at path.
func NewDevice(path string) *LineCapability {
	return &LineCapability{path: path}
}

// Name implements Capability.
func (c *LineCapability) Name() string {
	if c.path == "" {
		return "stdin"
	}
	return "device"
}

// Permission implements Capability.
func (c *LineCapability) Permission(ctx context.Context) Permission {
	if c.path == "" {
		return PermissionGranted
	}
	f, err := os.Open(c.path)
	switch {
	case err == nil:
		f.Close()
		return PermissionGranted
	case errors.Is(err, fs.ErrNotExist):
		return PermissionUndetermined
	default:
		return PermissionDenied
	}
}

// RequestPermission implements Capability. Device access is granted by the
// operating system, so the request only checks again.
func (c *LineCapability) RequestPermission(ctx context.Context) Permission {
	return c.Permission(ctx)
}

// Open implements Capability.
func (c *LineCapability) Open() (Source, error) {
	if c.path == "" {
		if c.pump != nil {
			c.pump.drain()
		}
		c.once.Do(func() { c.pump = startPump(c.stdin, nil) })
		return &lineSource{name: c.Name(), pump: c.pump}, nil
	}
	f, err := os.Open(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, c.path)
		}
		return nil, fmt.Errorf("open device %s: %w", c.path, err)
	}

	src := &lineSource{name: c.Name(), file: f, stop: make(chan struct{})}
	var r io.Reader = f
	// Regular files cannot be polled; closing them is enough to end a read.
	if cr, err := cancelreader.NewReader(f); err == nil {
		src.cancel = cr
		r = cr
	}
	src.pump = startPump(r, src.stop)
	return src, nil
}

// linePump scans r on its own goroutine and hands over non-empty trimmed
// lines. err is valid once done is closed.
type linePump struct {
	lines chan string
	done  chan struct{}
	err   error
}

func startPump(r io.Reader, stop <-chan struct{}) *linePump {
	p := &linePump{lines: make(chan string), done: make(chan struct{})}
	go func() {
		defer close(p.done)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			text := strings.TrimSpace(sc.Text())
			if text == "" {
				continue
			}
			select {
			case p.lines <- text:
			case <-stop:
				return
			}
		}
		p.err = sc.Err()
	}()
	return p
}

func (p *linePump) drain() {
	for {
		select {
		case <-p.lines:
		default:
			return
		}
	}
}

type lineSource struct {
	name   string
	pump   *linePump
	file   *os.File
	cancel cancelreader.CancelReader
	stop   chan struct{}
	closed sync.Once
}

func (s *lineSource) Run(ctx context.Context, emit func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case text := <-s.pump.lines:
			emit(Event{Text: text, Source: s.name, At: time.Now()})
		case <-s.pump.done:
			if err := s.pump.err; err != nil && !errors.Is(err, cancelreader.ErrCanceled) {
				return fmt.Errorf("read %s: %w", s.name, err)
			}
			return nil
		}
	}
}

// Close ends a device read. When the read can be cancelled it also waits
// for the reader to exit. The shared stdin reader outlives the source.
func (s *lineSource) Close() error {
	if s.file == nil {
		return nil
	}
	var err error
	s.closed.Do(func() {
		close(s.stop)
		if s.cancel != nil {
			if s.cancel.Cancel() {
				<-s.pump.done
			}
			s.cancel.Close()
		}
		err = s.file.Close()
	})
	return err
}
