package formatter

import (
	"fmt"
	"strings"
)

// Formatter renders one line per value from a validated template.
type Formatter struct {
	engine   TemplateEngine
	template string
}

// New accepts a preset name or a template with {{variable}} placeholders.
// An empty format selects the plain preset.
func New(format string) (*Formatter, error) {
	if format == "" {
		format = "plain"
	}
	engine := NewTemplateEngine()

	template := format
	if preset, err := NewPresetRegistry().Get(format); err == nil {
		template = preset.Template
	} else if !strings.Contains(format, "{{") {
		return nil, fmt.Errorf("unknown format %q: use a preset (%s) or a template such as {{text}}",
			format, PresetNames(NewPresetRegistry()))
	}

	template = unescape(template)
	if err := engine.Validate(template); err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}
	return &Formatter{engine: engine, template: template}, nil
}

// Format renders ctx. Templates are validated up front, so errors only come
// from a broken resolver.
func (f *Formatter) Format(ctx VariableContext) (string, error) {
	return f.engine.Substitute(f.template, ctx)
}

// Template returns the effective template.
func (f *Formatter) Template() string {
	return f.template
}
