// Package storage provides the session-scoped stores behind scan history.
// No backend writes to disk.
package storage

import (
	"errors"
	"time"

	"github.com/cristianoliveira/barscan/internal/barcode"
)

var (
	// ErrInvalidID indicates a non-positive entry id.
	ErrInvalidID = errors.New("invalid entry id")
	// ErrDuplicateID indicates an insert with an id already stored.
	ErrDuplicateID = errors.New("duplicate entry id")
)

// Entry is one scanned barcode in history.
type Entry struct {
	ID        int
	Text      string
	Symbology barcode.Symbology
	ScannedAt time.Time
}

// Store keeps history entries ordered by id. Ids are assigned by the caller.
type Store interface {
	Insert(e Entry) error
	// Delete removes the entry with id and reports whether it existed.
	Delete(id int) (bool, error)
	Clear() error
	List() ([]Entry, error)
	Close() error
}
