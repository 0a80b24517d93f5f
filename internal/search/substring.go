package search

import (
	"strings"

	"github.com/cristianoliveira/barscan/internal/storage"
)

// SubstringProvider matches if any configured field contains the query.
type SubstringProvider struct {
	opts Options
}

// NewSubstringProvider creates a new substring search provider.
func NewSubstringProvider(opts ...Option) Provider {
	return &SubstringProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if any configured field contains the query substring.
func (p *SubstringProvider) Match(e storage.Entry, query string) bool {
	if query == "" {
		return true
	}
	if p.opts.CaseInsensitive {
		query = strings.ToLower(query)
	}

	for _, field := range p.opts.Fields {
		for _, value := range fieldValues(e, field) {
			if value == "" {
				continue
			}
			if p.opts.CaseInsensitive {
				value = strings.ToLower(value)
			}
			if strings.Contains(value, query) {
				return true
			}
		}
	}
	return false
}

// Name returns the provider name.
func (p *SubstringProvider) Name() string {
	return "substring"
}
