package search

import (
	"regexp"
	"sync"

	"github.com/cristianoliveira/barscan/internal/storage"
)

// RegexProvider matches if any configured field matches the query pattern.
type RegexProvider struct {
	opts    Options
	cache   map[string]*regexp.Regexp
	cacheMu sync.RWMutex
}

// NewRegexProvider creates a new regex search provider.
func NewRegexProvider(opts ...Option) Provider {
	return &RegexProvider{
		opts:  applyOptions(opts),
		cache: make(map[string]*regexp.Regexp),
	}
}

// Match returns true if any configured field matches the regex pattern.
// An invalid pattern matches nothing.
func (p *RegexProvider) Match(e storage.Entry, query string) bool {
	if query == "" {
		return true
	}
	re, err := p.getRegex(query)
	if err != nil {
		return false
	}

	for _, field := range p.opts.Fields {
		for _, value := range fieldValues(e, field) {
			if value != "" && re.MatchString(value) {
				return true
			}
		}
	}
	return false
}

// Name returns the provider name.
func (p *RegexProvider) Name() string {
	return "regex"
}

// getRegex compiles the pattern once per query. The History screen
// re-filters on every keystroke.
func (p *RegexProvider) getRegex(pattern string) (*regexp.Regexp, error) {
	p.cacheMu.RLock()
	re, ok := p.cache[pattern]
	p.cacheMu.RUnlock()
	if ok {
		return re, nil
	}

	expr := pattern
	if p.opts.CaseInsensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}

	p.cacheMu.Lock()
	p.cache[pattern] = re
	p.cacheMu.Unlock()
	return re, nil
}
