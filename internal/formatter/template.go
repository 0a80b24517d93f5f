// Package formatter renders scanned values through {{variable}} templates
// and named presets for the scan and decode commands.
package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateEngine provides template parsing and variable substitution.
type TemplateEngine interface {
	// Parse returns a list of variables found in the template.
	Parse(template string) ([]string, error)

	// Substitute replaces variables in the template with values from the context.
	Substitute(template string, ctx VariableContext) (string, error)

	// Validate checks delimiters and rejects unknown variables.
	Validate(template string) error
}

type templateEngine struct {
	variablePattern *regexp.Regexp
	resolver        VariableResolver
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine() TemplateEngine {
	return &templateEngine{
		variablePattern: regexp.MustCompile(`\{\{([a-z0-9-]+)\}\}`),
		resolver:        NewVariableResolver(),
	}
}

// Parse identifies all variables in a template string using {{variable-name}} syntax.
// Returns a list of variable names found, without duplicates.
func (te *templateEngine) Parse(template string) ([]string, error) {
	seen := make(map[string]bool)
	variables := []string{}
	for _, match := range te.variablePattern.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if !seen[name] {
			variables = append(variables, name)
			seen[name] = true
		}
	}
	return variables, nil
}

// Substitute replaces all variables in the template with values from the context.
func (te *templateEngine) Substitute(template string, ctx VariableContext) (string, error) {
	var resolveErr error
	result := te.variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := match[2 : len(match)-2]
		value, err := te.resolver.Resolve(name, ctx)
		if err != nil && resolveErr == nil {
			resolveErr = err
		}
		return value
	})
	if resolveErr != nil {
		return "", resolveErr
	}
	return result, nil
}

// Validate checks that delimiters balance and every variable is known.
func (te *templateEngine) Validate(template string) error {
	openCount := strings.Count(template, "{{")
	closeCount := strings.Count(template, "}}")
	if openCount != closeCount {
		return fmt.Errorf("mismatched variable delimiters: %d opens, %d closes", openCount, closeCount)
	}

	names, _ := te.Parse(template)
	for _, name := range names {
		if _, err := te.resolver.Resolve(name, VariableContext{}); err != nil {
			return err
		}
	}
	return nil
}

// unescape turns the two-character sequences \t and \n typed on a command
// line into tab and newline.
func unescape(template string) string {
	return strings.NewReplacer(`\t`, "\t", `\n`, "\n").Replace(template)
}
