// Package search filters scan history. Substring, regex and token strategies
// share the Provider interface so the History screen can switch between them
// through configuration.
package search

import (
	"strconv"

	"github.com/cristianoliveira/barscan/internal/config"
	"github.com/cristianoliveira/barscan/internal/storage"
)

// Field names accepted by WithFields.
const (
	FieldText      = "text"
	FieldSymbology = "symbology"
	FieldID        = "id"
)

// Provider decides whether a history entry matches a query.
type Provider interface {
	// Match returns true if the entry matches the search query. An empty
	// query matches everything.
	Match(e storage.Entry, query string) bool

	// Name returns the provider name for identification and debugging.
	Name() string
}

// Options holds configuration options for creating search providers.
type Options struct {
	CaseInsensitive bool     // If true, searches ignore case sensitivity
	Fields          []string // Fields to search in
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		CaseInsensitive: false,
		Fields:          []string{FieldText, FieldSymbology},
	}
}

// Option is a function that modifies search options.
type Option func(*Options)

// WithCaseInsensitive sets case-insensitive search.
func WithCaseInsensitive(enabled bool) Option {
	return func(o *Options) {
		o.CaseInsensitive = enabled
	}
}

// WithFields sets the fields to search in.
// Valid fields: "text", "symbology", "id".
func WithFields(fields []string) Option {
	return func(o *Options) {
		o.Fields = fields
	}
}

func applyOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fieldValues returns the searchable strings of one field. A known
// symbology is searchable both by identifier and by display label.
func fieldValues(e storage.Entry, field string) []string {
	switch field {
	case FieldText:
		return []string{e.Text}
	case FieldSymbology:
		if e.Symbology == "" {
			return nil
		}
		return []string{string(e.Symbology), e.Symbology.String()}
	case FieldID:
		return []string{strconv.Itoa(e.ID)}
	}
	return nil
}

// Filter returns the entries matching query, keeping their order.
func Filter(p Provider, entries []storage.Entry, query string) []storage.Entry {
	if query == "" {
		return entries
	}
	out := make([]storage.Entry, 0, len(entries))
	for _, e := range entries {
		if p.Match(e, query) {
			out = append(out, e)
		}
	}
	return out
}

// New returns the provider registered under name, falling back to token
// search for unknown names.
func New(name string, opts ...Option) Provider {
	switch name {
	case "substring":
		return NewSubstringProvider(opts...)
	case "regex":
		return NewRegexProvider(opts...)
	default:
		return NewTokenProvider(opts...)
	}
}

// NewFromConfig builds the provider named by "history_search".
func NewFromConfig() Provider {
	return New(
		config.Get("history_search", "token"),
		WithCaseInsensitive(config.GetBool("search_case_insensitive", true)),
	)
}
