package storage

import (
	"fmt"
	"sync"
)

// MemoryStore is a slice-backed Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Insert appends e. Ids must be strictly increasing.
func (s *MemoryStore) Insert(e Entry) error {
	if e.ID <= 0 {
		return fmt.Errorf("memory store: %w: %d", ErrInvalidID, e.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.entries); n > 0 && s.entries[n-1].ID >= e.ID {
		return fmt.Errorf("memory store: %w: %d", ErrDuplicateID, e.ID)
	}
	s.entries = append(s.entries, e)
	return nil
}

// Delete removes the entry with id.
func (s *MemoryStore) Delete(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Clear removes every entry.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}

// List returns a copy of the entries in id order.
func (s *MemoryStore) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }
