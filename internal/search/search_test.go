package search

import (
	"testing"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var entries = []storage.Entry{
	{ID: 1, Text: "0012345678905", Symbology: barcode.SymbologyUPCA},
	{ID: 2, Text: "96385074", Symbology: barcode.SymbologyEAN8},
	{ID: 4, Text: "5901234123457", Symbology: barcode.SymbologyEAN13},
	{ID: 7, Text: "ABC-123"},
}

func ids(es []storage.Entry) []int {
	out := make([]int, 0, len(es))
	for _, e := range es {
		out = append(out, e.ID)
	}
	return out
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.False(t, opts.CaseInsensitive, "default should be case-sensitive")
	assert.Equal(t, []string{FieldText, FieldSymbology}, opts.Fields)

	WithCaseInsensitive(true)(&opts)
	WithFields([]string{FieldID})(&opts)
	assert.True(t, opts.CaseInsensitive)
	assert.Equal(t, []string{FieldID}, opts.Fields)
}

func TestSubstringProvider(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		query string
		want  []int
	}{
		{"empty query matches all", nil, "", []int{1, 2, 4, 7}},
		{"digits", nil, "123", []int{1, 4, 7}},
		{"symbology label", nil, "EAN", []int{2, 4}},
		{"case sensitive", nil, "abc", []int{}},
		{"case insensitive", []Option{WithCaseInsensitive(true)}, "abc", []int{7}},
		{"id field", []Option{WithFields([]string{FieldID})}, "4", []int{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewSubstringProvider(tt.opts...)
			assert.Equal(t, tt.want, ids(Filter(p, entries, tt.query)))
		})
	}
}

func TestRegexProvider(t *testing.T) {
	p := NewRegexProvider()
	assert.Equal(t, []int{2}, ids(Filter(p, entries, `^\d{8}$`)))
	assert.Equal(t, []int{1}, ids(Filter(p, entries, `^upc`)))
	assert.Empty(t, Filter(p, entries, `[`), "invalid pattern matches nothing")

	ci := NewRegexProvider(WithCaseInsensitive(true))
	assert.Equal(t, []int{7}, ids(Filter(ci, entries, `^abc`)))
	// cached pattern keeps its flags
	assert.Equal(t, []int{7}, ids(Filter(ci, entries, `^abc`)))
}

func TestTokenProvider(t *testing.T) {
	p := NewTokenProvider(WithCaseInsensitive(true))
	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{1, 2, 4, 7}},
		{"   ", []int{1, 2, 4, 7}},
		{"123 590", []int{4}},
		{"ean13", []int{4}},
		{"UPC-A 0012", []int{1}},
		{"#2", []int{2}},
		{"#2 5901", []int{}},
		{"#x", []int{}},
		{"abc", []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(p, entries, tt.query)))
		})
	}
}

func TestFilterKeepsOrderAndInput(t *testing.T) {
	p := &MockProvider{}
	p.On("Match", mock.Anything, "q").Return(func(e storage.Entry, _ string) bool { return e.ID%2 == 0 })

	got := Filter(p, entries, "q")
	assert.Equal(t, []int{2, 4}, ids(got))
	assert.Len(t, entries, 4)
	p.AssertNumberOfCalls(t, "Match", 4)
}

func TestNewFromConfig(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("BARSCAN_HISTORY_SEARCH", "regex")
	config.Load()

	p := NewFromConfig()
	require.Equal(t, "regex", p.Name())
	assert.True(t, p.Match(entries[3], "^abc"), "case insensitive by default")

	assert.Equal(t, "substring", New("substring").Name())
	assert.Equal(t, "token", New("bogus").Name())
}
