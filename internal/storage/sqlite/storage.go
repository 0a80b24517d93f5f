// Package sqlite provides a SQLite-backed history store living entirely in
// memory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrOutOfOrder indicates an insert whose id is not greater than every
// stored id.
var ErrOutOfOrder = errors.New("entry id out of order")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scans (
	id         INTEGER PRIMARY KEY,
	text       TEXT NOT NULL,
	symbology  TEXT NOT NULL DEFAULT '',
	scanned_at TEXT NOT NULL
);`

// Row is one stored scan.
type Row struct {
	ID        int
	Text      string
	Symbology string
	ScannedAt time.Time
}

// SQLiteStore keeps rows in a private in-memory database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens a fresh in-memory database. Each connection to
// ":memory:" is its own database, so the pool is pinned to one connection.
func NewSQLiteStore() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("sqlite store: open db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite store: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database, discarding every row.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Insert stores r. Its id must exceed every stored id.
func (s *SQLiteStore) Insert(r Row) error {
	var maxID int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(id), 0) FROM scans`).Scan(&maxID); err != nil {
		return fmt.Errorf("sqlite store: read max id: %w", err)
	}
	if r.ID <= maxID {
		return fmt.Errorf("sqlite store: %w: %d <= %d", ErrOutOfOrder, r.ID, maxID)
	}
	_, err := s.db.Exec(
		`INSERT INTO scans (id, text, symbology, scanned_at) VALUES (?, ?, ?, ?)`,
		r.ID, r.Text, r.Symbology, r.ScannedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite store: insert: %w", err)
	}
	return nil
}

// Delete removes the row with id and reports whether it existed.
func (s *SQLiteStore) Delete(id int) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("sqlite store: delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite store: delete: %w", err)
	}
	return n > 0, nil
}

// Clear removes every row.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM scans`); err != nil {
		return fmt.Errorf("sqlite store: clear: %w", err)
	}
	return nil
}

// List returns all rows in id order.
func (s *SQLiteStore) List() ([]Row, error) {
	rows, err := s.db.Query(`SELECT id, text, symbology, scanned_at FROM scans ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite store: list: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		var scannedAt string
		if err := rows.Scan(&r.ID, &r.Text, &r.Symbology, &scannedAt); err != nil {
			return nil, fmt.Errorf("sqlite store: scan row: %w", err)
		}
		r.ScannedAt, err = time.Parse(time.RFC3339Nano, scannedAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: parse scanned_at %q: %w", scannedAt, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite store: list: %w", err)
	}
	return out, nil
}
