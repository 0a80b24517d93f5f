package search

import (
	"strconv"
	"strings"

	"github.com/cristianoliveira/barscan/internal/barcode"
	"github.com/cristianoliveira/barscan/internal/storage"
)

// TokenProvider splits the query on whitespace; every token must match
// (AND logic). Special tokens:
//
//	#N            only the entry with id N
//	ean13, UPC-A  only entries of that symbology
//
// Any other token must be a substring of one configured field.
type TokenProvider struct {
	opts Options
}

// NewTokenProvider creates a new token search provider.
func NewTokenProvider(opts ...Option) Provider {
	return &TokenProvider{
		opts: applyOptions(opts),
	}
}

// Match returns true if all tokens match.
func (p *TokenProvider) Match(e storage.Entry, query string) bool {
	for _, token := range strings.Fields(query) {
		if !p.matchToken(e, token) {
			return false
		}
	}
	return true
}

func (p *TokenProvider) matchToken(e storage.Entry, token string) bool {
	if rest, ok := strings.CutPrefix(token, "#"); ok {
		if id, err := strconv.Atoi(rest); err == nil {
			return e.ID == id
		}
	}
	if sym, ok := barcode.ParseSymbology(token); ok {
		return e.Symbology == sym
	}

	if p.opts.CaseInsensitive {
		token = strings.ToLower(token)
	}
	for _, field := range p.opts.Fields {
		for _, value := range fieldValues(e, field) {
			if value == "" {
				continue
			}
			if p.opts.CaseInsensitive {
				value = strings.ToLower(value)
			}
			if strings.Contains(value, token) {
				return true
			}
		}
	}
	return false
}

// Name returns the provider name.
func (p *TokenProvider) Name() string {
	return "token"
}
