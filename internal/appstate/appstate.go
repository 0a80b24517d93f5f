// Package appstate holds the state shared by the screens of one application
// session. It is created once at start-up and passed explicitly to every
// screen that needs it.
package appstate

import (
	"time"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/dedup"
)

// Scan is an accepted barcode.
type Scan struct {
	Text      string
	Symbology barcode.Symbology
	Source    string
	At        time.Time
}

// State is the single-writer store of the last accepted scan.
//
// Offer is the only write path. State is not safe for concurrent use: every
// call must come from the goroutine that serializes UI events.
type State struct {
	last        Scan
	accepted    int
	subscribers map[int]func(Scan)
	nextSub     int
}

// New returns an empty state.
func New() *State {
	return &State{}
}

// LastScan returns the last accepted value, or "" when nothing was scanned.
func (s *State) LastScan() string {
	return s.last.Text
}

// Last returns the last accepted scan with its metadata.
func (s *State) Last() (Scan, bool) {
	return s.last, s.last.Text != ""
}

// Accepted returns the number of accepted scans in this session.
func (s *State) Accepted() int {
	return s.accepted
}

// Offer runs the deduplicator against the current value and stores scan when
// its text changed. The returned result tells the caller whether to fire
// feedback and append to history.
func (s *State) Offer(scan Scan) dedup.Result {
	res := dedup.Accept(scan.Text, s.last.Text)
	if !res.Changed {
		return res
	}
	s.last = scan
	s.accepted++
	for i := 0; i < s.nextSub; i++ {
		if fn, ok := s.subscribers[i]; ok {
			fn(scan)
		}
	}
	return res
}

// Subscribe registers fn to be called synchronously after every accepted
// scan, in subscription order. The returned func removes the subscription.
func (s *State) Subscribe(fn func(Scan)) (unsubscribe func()) {
	if s.subscribers == nil {
		s.subscribers = make(map[int]func(Scan))
	}
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}
