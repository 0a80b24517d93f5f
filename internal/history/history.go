// Package history accumulates the barcodes accepted during one session.
//
// Ids start at 1, grow by one per append and are never reused, not even after
// a delete or a clear. The list lives only as long as the History value.
package history

import (
	"fmt"
	"time"

	"github.com/cristianoliveira/barscan/internal/appstate"
	"github.com/cristianoliveira/barscan/internal/clipboard"
	"github.com/cristianoliveira/barscan/internal/feedback"
	"github.com/cristianoliveira/barscan/internal/logging"
	"github.com/cristianoliveira/barscan/internal/storage"
)

// EmptyMessage is shown when nothing has been scanned.
const EmptyMessage = "Nothing scanned yet!"

// Entry is one history row.
type Entry = storage.Entry

// History is the ordered list of accepted scans. Like appstate.State it is
// owned by the UI event loop.
type History struct {
	store     storage.Store
	nextID    int
	clipboard clipboard.Copier
	feedback  feedback.Notifier
	logger    logging.Logger
	now       func() time.Time
}

// Option configures a History.
type Option func(*History)

// WithClipboard sets the copier used by Copy.
func WithClipboard(c clipboard.Copier) Option {
	return func(h *History) { h.clipboard = c }
}

// WithFeedback sets the notifier fired after a copy.
func WithFeedback(n feedback.Notifier) Option {
	return func(h *History) { h.feedback = n }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(h *History) { h.logger = l }
}

// WithClock overrides time.Now for entries without a scan time.
func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

// New returns an empty history backed by store. A nil store uses memory.
func New(store storage.Store, opts ...Option) *History {
	if store == nil {
		store = storage.NewMemoryStore()
	}
	h := &History{
		store:    store,
		nextID:   1,
		feedback: feedback.Nop(),
		logger:   logging.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Append records an accepted scan. Empty values are ignored and reported
// with ok false.
func (h *History) Append(scan appstate.Scan) (entry Entry, ok bool, err error) {
	if scan.Text == "" {
		return Entry{}, false, nil
	}
	at := scan.At
	if at.IsZero() {
		at = h.now()
	}
	entry = Entry{ID: h.nextID, Text: scan.Text, Symbology: scan.Symbology, ScannedAt: at}
	if err := h.store.Insert(entry); err != nil {
		return Entry{}, false, fmt.Errorf("append %q: %w", scan.Text, err)
	}
	h.nextID++
	h.logger.Debug("history append", "id", entry.ID, "text", entry.Text)
	return entry, true, nil
}

// Delete removes the entry with id. A missing id is a no-op.
func (h *History) Delete(id int) error {
	removed, err := h.store.Delete(id)
	if err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}
	if removed {
		h.logger.Debug("history delete", "id", id)
	}
	return nil
}

// Entries returns the entries in scan order.
func (h *History) Entries() ([]Entry, error) {
	entries, err := h.store.List()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// Len returns the number of entries, or 0 when the store fails.
func (h *History) Len() int {
	entries, err := h.store.List()
	if err != nil {
		h.logger.Warn("list history", "error", err)
		return 0
	}
	return len(entries)
}

// Get returns the entry with id.
func (h *History) Get(id int) (Entry, bool) {
	entries, err := h.store.List()
	if err != nil {
		h.logger.Warn("list history", "error", err)
		return Entry{}, false
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// NextID returns the id the next append will get.
func (h *History) NextID() int {
	return h.nextID
}

// Copy puts the text of entry id on the clipboard and fires success
// feedback. It reports whether the entry exists; clipboard failures are
// logged and otherwise ignored. The list is never modified.
func (h *History) Copy(id int) bool {
	e, ok := h.Get(id)
	if !ok {
		return false
	}
	if h.clipboard != nil {
		if err := h.clipboard.Copy(e.Text); err != nil {
			h.logger.Warn("copy to clipboard", "id", id, "error", err)
		}
	}
	h.feedback.Success()
	return true
}

// RequestClear starts a clear that takes effect only once confirmed.
func (h *History) RequestClear() *ClearRequest {
	return &ClearRequest{h: h}
}

// Close releases the store and discards every entry.
func (h *History) Close() error {
	return h.store.Close()
}

func (h *History) clear() error {
	if h.Len() == 0 {
		return nil
	}
	if err := h.store.Clear(); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	h.logger.Debug("history cleared")
	return nil
}

// ClearRequest is a pending clear. Only the first resolution counts.
type ClearRequest struct {
	h        *History
	resolved bool
}

// Resolve clears the history when confirmed and does nothing otherwise.
func (r *ClearRequest) Resolve(confirmed bool) error {
	if r == nil || r.resolved {
		return nil
	}
	r.resolved = true
	if !confirmed {
		return nil
	}
	return r.h.clear()
}

// Confirm is Resolve(true).
func (r *ClearRequest) Confirm() error { return r.Resolve(true) }

// Cancel is Resolve(false).
func (r *ClearRequest) Cancel() { _ = r.Resolve(false) }

// Pending reports whether the request still awaits a decision.
func (r *ClearRequest) Pending() bool { return r != nil && !r.resolved }
