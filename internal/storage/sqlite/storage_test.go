package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoresAreIsolated(t *testing.T) {
	a, err := NewSQLiteStore()
	require.NoError(t, err)
	defer a.Close()
	b, err := NewSQLiteStore()
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Insert(Row{ID: 1, Text: "123", ScannedAt: time.Now()}))

	rows, err := b.List()
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestInsertRejectsOutOfOrderIDs(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Insert(Row{ID: 5, Text: "a", ScannedAt: time.Now()}))
	require.ErrorIs(t, s.Insert(Row{ID: 5, Text: "b", ScannedAt: time.Now()}), ErrOutOfOrder)
	require.ErrorIs(t, s.Insert(Row{ID: 2, Text: "c", ScannedAt: time.Now()}), ErrOutOfOrder)
	require.NoError(t, s.Insert(Row{ID: 6, Text: "d", ScannedAt: time.Now()}))

	rows, err := s.List()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Text)
	assert.Equal(t, "d", rows[1].Text)
}

func TestScannedAtRoundTripsInUTC(t *testing.T) {
	s, err := NewSQLiteStore()
	require.NoError(t, err)
	defer s.Close()

	at := time.Date(2026, 1, 2, 3, 4, 5, 600, time.FixedZone("CET", 3600))
	require.NoError(t, s.Insert(Row{ID: 1, Text: "x", ScannedAt: at}))

	rows, err := s.List()
	require.NoError(t, err)
	assert.True(t, at.Equal(rows[0].ScannedAt))
	assert.Equal(t, time.UTC, rows[0].ScannedAt.Location())
}
