package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cristianoliveira/barscan/internal/barcode"
)

// VariableContext contains all data needed for template variable resolution.
type VariableContext struct {
	Text      string
	Symbology barcode.Symbology
	// Source is the capability name, or the file name for decoded images.
	Source string
	Time   time.Time
	// ID is the history id; zero outside the TUI.
	ID int
	// Count is the 1-based position of the value in this run.
	Count int
}

// Variables lists the names a template may use.
var Variables = []string{"text", "symbology", "symbology-id", "source", "time", "unix", "id", "count"}

// VariableResolver resolves template variables to their values.
type VariableResolver interface {
	// Resolve returns the string value for a given variable name and context.
	Resolve(varName string, ctx VariableContext) (string, error)
}

type variableResolver struct{}

// NewVariableResolver creates a new variable resolver instance.
func NewVariableResolver() VariableResolver {
	return &variableResolver{}
}

// Resolve returns the string value for a variable from the context. Unknown
// symbologies and zero times resolve to an empty string.
func (vr *variableResolver) Resolve(varName string, ctx VariableContext) (string, error) {
	switch varName {
	case "text":
		return ctx.Text, nil
	case "symbology":
		if ctx.Symbology == barcode.SymbologyUnknown {
			return "", nil
		}
		return ctx.Symbology.String(), nil
	case "symbology-id":
		return string(ctx.Symbology), nil
	case "source":
		return ctx.Source, nil
	case "time":
		if ctx.Time.IsZero() {
			return "", nil
		}
		return ctx.Time.Format(time.RFC3339), nil
	case "unix":
		if ctx.Time.IsZero() {
			return "", nil
		}
		return strconv.FormatInt(ctx.Time.Unix(), 10), nil
	case "id":
		return strconv.Itoa(ctx.ID), nil
	case "count":
		return strconv.Itoa(ctx.Count), nil
	default:
		return "", fmt.Errorf("unknown variable: %s (available: %v)", varName, Variables)
	}
}
