package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/colors"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/storage/sqlite"
)

const (
	// BackendMemory selects the slice-backed store.
	BackendMemory = "memory"
	// BackendSQLite selects an in-memory SQLite database.
	BackendSQLite = "sqlite"
)

// NewFromConfig creates the store selected by history_backend.
func NewFromConfig() (Store, error) {
	return NewForBackend(config.Get("history_backend", BackendMemory))
}

// NewForBackend creates a store for the provided backend name. A SQLite
// failure falls back to memory with a warning.
func NewForBackend(backend string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		s, err := sqlite.NewSQLiteStore()
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite history, falling back to memory: %v", err))
			return NewMemoryStore(), nil
		}
		return &sqliteAdapter{s}, nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", backend)
	}
}

// sqliteAdapter converts between sqlite rows and Entry.
type sqliteAdapter struct {
	s *sqlite.SQLiteStore
}

func (a *sqliteAdapter) Insert(e Entry) error {
	if e.ID <= 0 {
		return fmt.Errorf("sqlite store: %w: %d", ErrInvalidID, e.ID)
	}
	err := a.s.Insert(sqlite.Row{ID: e.ID, Text: e.Text, Symbology: string(e.Symbology), ScannedAt: e.ScannedAt})
	if errors.Is(err, sqlite.ErrOutOfOrder) {
		return fmt.Errorf("sqlite store: %w: %d", ErrDuplicateID, e.ID)
	}
	return err
}

func (a *sqliteAdapter) Delete(id int) (bool, error) { return a.s.Delete(id) }
func (a *sqliteAdapter) Clear() error                { return a.s.Clear() }
func (a *sqliteAdapter) Close() error                { return a.s.Close() }

func (a *sqliteAdapter) List() ([]Entry, error) {
	rows, err := a.s.List()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{ID: r.ID, Text: r.Text, Symbology: barcode.Symbology(r.Symbology), ScannedAt: r.ScannedAt})
	}
	return out, nil
}
