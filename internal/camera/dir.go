package camera

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/cristianoliveira/barscan/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// DirCapability watches a directory that another program fills with camera
// frames and decodes every PNG or JPEG written to it.
type DirCapability struct {
	dir       string
	cacheSize int
	logger    logging.Logger
}

// NewDir returns a directory source. A nil logger discards logs.
func NewDir(dir string, cacheSize int, logger logging.Logger) *DirCapability {
	if logger == nil {
		logger = logging.Nop()
	}
	return &DirCapability{dir: dir, cacheSize: cacheSize, logger: logger}
}

// Name implements Capability.
func (c *DirCapability) Name() string { return "dir" }

// Permission implements Capability.
func (c *DirCapability) Permission(ctx context.Context) Permission {
	info, err := os.Stat(c.dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return PermissionUndetermined
	case err != nil:
		return PermissionDenied
	case !info.IsDir():
		return PermissionDenied
	}
	if _, err := os.ReadDir(c.dir); err != nil {
		return PermissionDenied
	}
	return PermissionGranted
}

// RequestPermission implements Capability by creating a missing directory.
func (c *DirCapability) RequestPermission(ctx context.Context) Permission {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		c.logger.Warn("create frames directory", "dir", c.dir, "error", err)
	}
	return c.Permission(ctx)
}

// Open implements Capability.
func (c *DirCapability) Open() (Source, error) {
	frames, err := newFrameDecoder(c.cacheSize)
	if err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		if errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, c.dir)
		}
		return nil, fmt.Errorf("watch %s: %w", c.dir, err)
	}
	return &dirSource{watcher: watcher, frames: frames, logger: c.logger}, nil
}

type dirSource struct {
	watcher *fsnotify.Watcher
	frames  *frameDecoder
	logger  logging.Logger
}

func (s *dirSource) Run(ctx context.Context, emit func(Event)) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !isFrame(ev.Name) {
				continue
			}
			res, err := s.frames.decodeFile(ev.Name)
			if err != nil {
				if !isNoBarcode(err) {
					s.logger.Debug("skip frame", "path", ev.Name, "error", err)
				}
				continue
			}
			emit(Event{Text: res.Text, Symbology: res.Symbology, Source: "dir", At: time.Now()})
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch frames: %w", err)
		}
	}
}

func (s *dirSource) Close() error {
	return s.watcher.Close()
}
