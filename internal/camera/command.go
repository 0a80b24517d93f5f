package camera

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/logging"
)

const outputPlaceholder = "{output}"

// CommandCapability grabs frames by running an external capture program,
// such as fswebcam, at a fixed interval. The command line is split on
// whitespace; "{output}" is replaced by the frame path, or the path is
// appended when the placeholder is absent.
type CommandCapability struct {
	args      []string
	interval  time.Duration
	cacheSize int
	logger    logging.Logger
}

// NewCommand returns a capture-command source. A nil logger discards logs.
func NewCommand(command string, interval time.Duration, cacheSize int, logger logging.Logger) *CommandCapability {
	if logger == nil {
		logger = logging.Nop()
	}
	if interval <= 0 {
		interval = 750 * time.Millisecond
	}
	return &CommandCapability{
		args:      strings.Fields(command),
		interval:  interval,
		cacheSize: cacheSize,
		logger:    logger,
	}
}

// Name implements Capability.
func (c *CommandCapability) Name() string { return "command" }

// Permission implements Capability. The capture program must be on PATH.
func (c *CommandCapability) Permission(ctx context.Context) Permission {
	if len(c.args) == 0 {
		return PermissionDenied
	}
	if _, err := exec.LookPath(c.args[0]); err != nil {
		return PermissionDenied
	}
	return PermissionGranted
}

// RequestPermission implements Capability.
func (c *CommandCapability) RequestPermission(ctx context.Context) Permission {
	return c.Permission(ctx)
}

// Open implements Capability.
func (c *CommandCapability) Open() (Source, error) {
	if c.Permission(context.Background()) != PermissionGranted {
		return nil, fmt.Errorf("%w: capture command %q not found", ErrPermissionDenied, strings.Join(c.args, " "))
	}
	frames, err := newFrameDecoder(c.cacheSize)
	if err != nil {
		return nil, err
	}
	dir, err := os.MkdirTemp("", "barscan-frames-*")
	if err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}
	return &commandSource{
		args:     c.args,
		interval: c.interval,
		dir:      dir,
		frames:   frames,
		logger:   c.logger,
	}, nil
}

type commandSource struct {
	args     []string
	interval time.Duration
	dir      string
	frames   *frameDecoder
	logger   logging.Logger
	n        int
}

func (s *commandSource) Run(ctx context.Context, emit func(Event)) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if res, ok := s.capture(ctx); ok {
			emit(Event{Text: res.Text, Symbology: res.Symbology, Source: "command", At: time.Now()})
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *commandSource) capture(ctx context.Context) (barcode.Result, bool) {
	s.n++
	frame := filepath.Join(s.dir, fmt.Sprintf("frame-%d", s.n))
	defer os.Remove(frame)

	args := expandOutput(s.args, frame)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("capture failed", "command", args[0], "error", err, "output", strings.TrimSpace(string(out)))
		}
		return barcode.Result{}, false
	}
	res, err := s.frames.decodeFile(frame)
	if err != nil {
		if !isNoBarcode(err) {
			s.logger.Debug("skip frame", "error", err)
		}
		return barcode.Result{}, false
	}
	return res, true
}

func (s *commandSource) Close() error {
	return os.RemoveAll(s.dir)
}

func expandOutput(args []string, frame string) []string {
	out := make([]string, 0, len(args)+1)
	replaced := false
	for _, a := range args {
		if strings.Contains(a, outputPlaceholder) {
			a = strings.ReplaceAll(a, outputPlaceholder, frame)
			replaced = true
		}
		out = append(out, a)
	}
	if !replaced {
		out = append(out, frame)
	}
	return out
}
