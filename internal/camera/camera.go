// Package camera provides the barcode event sources the scanner listens to.
//
// A Capability describes a source that can be checked for permission and
// opened on demand. Opening yields a Source that emits decode events until
// its context is cancelled. Nothing is acquired before Open is called.
package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/logging"
)

var (
	// ErrPermissionDenied is returned when a source cannot be opened for
	// lack of access.
	ErrPermissionDenied = errors.New("camera permission denied")
	// ErrUnknownSource is returned for an unsupported source kind.
	ErrUnknownSource = errors.New("unknown barcode source")
)

// Event is one raw decode delivered by a source.
type Event struct {
	Text      string
	Symbology barcode.Symbology
	Source    string
	At        time.Time
}

// Permission is the outcome of a permission check.
type Permission int

const (
	// PermissionUndetermined means access may become available after a
	// request, e.g. a missing frames directory that can be created.
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

// Granted reports whether the source may be activated.
func (p Permission) Granted() bool {
	return p == PermissionGranted
}

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// Capability is a barcode source that has not been opened yet.
type Capability interface {
	// Name identifies the source kind in events and logs.
	Name() string
	// Permission checks access without acquiring anything.
	Permission(ctx context.Context) Permission
	// RequestPermission tries to obtain access and checks again.
	RequestPermission(ctx context.Context) Permission
	// Open acquires the underlying resource.
	Open() (Source, error)
}

// Source is an opened barcode source.
type Source interface {
	// Run emits events until ctx is cancelled or the source is exhausted.
	// It returns ctx.Err() on cancellation and nil on a clean end of input.
	Run(ctx context.Context, emit func(Event)) error
	// Close releases everything Open acquired.
	Close() error
}

// Settings selects and configures a source.
type Settings struct {
	Kind            string
	DevicePath      string
	FramesDir       string
	CaptureCommand  string
	CaptureInterval time.Duration
	CacheSize       int
	Stdin           io.Reader
	Wedge           *Wedge
	Logger          logging.Logger
}

// SettingsFromConfig reads source settings from the global configuration.
func SettingsFromConfig() Settings {
	return Settings{
		Kind:            config.Get("source", config.SourceWedge),
		DevicePath:      config.Get("device_path", ""),
		FramesDir:       config.Get("frames_dir", ""),
		CaptureCommand:  config.Get("capture_command", ""),
		CaptureInterval: config.GetDuration("capture_interval", 750*time.Millisecond),
		CacheSize:       config.GetInt("frame_cache_size", 128),
	}
}

// New builds the capability selected by s.Kind.
func New(s Settings) (Capability, error) {
	logger := s.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	switch s.Kind {
	case config.SourceWedge:
		if s.Wedge == nil {
			s.Wedge = NewWedge()
		}
		return s.Wedge, nil
	case config.SourceStdin:
		return NewStdin(s.Stdin), nil
	case config.SourceDevice:
		if s.DevicePath == "" {
			return nil, fmt.Errorf("device source: device_path is not set")
		}
		return NewDevice(s.DevicePath), nil
	case config.SourceDir:
		if s.FramesDir == "" {
			return nil, fmt.Errorf("dir source: frames_dir is not set")
		}
		return NewDir(s.FramesDir, s.CacheSize, logger), nil
	case config.SourceCommand:
		if s.CaptureCommand == "" {
			return nil, fmt.Errorf("command source: capture_command is not set")
		}
		return NewCommand(s.CaptureCommand, s.CaptureInterval, s.CacheSize, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, s.Kind)
	}
}
