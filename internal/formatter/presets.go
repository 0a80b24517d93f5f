package formatter

import (
	"fmt"
	"strings"
)

// Preset represents a template preset with name, template string, and description.
type Preset struct {
	Name        string
	Template    string
	Description string
}

// PresetRegistry manages template presets.
type PresetRegistry interface {
	// Get returns a preset by name.
	Get(name string) (*Preset, error)

	// List returns all available presets.
	List() []Preset

	// Register adds a new preset.
	Register(preset Preset) error
}

type presetRegistry struct {
	presets map[string]Preset
	order   []string
}

// NewPresetRegistry creates a new preset registry with all default presets.
func NewPresetRegistry() PresetRegistry {
	registry := &presetRegistry{
		presets: make(map[string]Preset),
		order:   []string{},
	}
	registry.registerDefaults()
	return registry
}

func (pr *presetRegistry) registerDefaults() {
	presets := []Preset{
		{
			Name:        "plain",
			Template:    "{{text}}",
			Description: "The barcode value only",
		},
		{
			Name:        "detailed",
			Template:    "{{time}} {{symbology}} {{text}} ({{source}})",
			Description: "Timestamp, symbology, value and source",
		},
		{
			Name:        "numbered",
			Template:    "{{count}}. {{text}}",
			Description: "Position in this run and value",
		},
		{
			Name:        "tsv",
			Template:    "{{text}}\t{{symbology}}\t{{source}}\t{{time}}",
			Description: "Tab separated fields for spreadsheets",
		},
		{
			Name:        "csv",
			Template:    "{{text}},{{symbology}},{{source}},{{time}}",
			Description: "Comma separated fields",
		},
	}
	for _, preset := range presets {
		pr.presets[preset.Name] = preset
		pr.order = append(pr.order, preset.Name)
	}
}

// Get returns a preset by name, or an error if not found.
func (pr *presetRegistry) Get(name string) (*Preset, error) {
	preset, ok := pr.presets[name]
	if !ok {
		return nil, fmt.Errorf("preset not found: %s", name)
	}
	return &preset, nil
}

// List returns all available presets in registration order.
func (pr *presetRegistry) List() []Preset {
	result := make([]Preset, 0, len(pr.order))
	for _, name := range pr.order {
		result = append(result, pr.presets[name])
	}
	return result
}

// Register adds a new preset or overwrites an existing one.
func (pr *presetRegistry) Register(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name cannot be empty")
	}
	if preset.Template == "" {
		return fmt.Errorf("preset template cannot be empty")
	}
	if _, exists := pr.presets[preset.Name]; !exists {
		pr.order = append(pr.order, preset.Name)
	}
	pr.presets[preset.Name] = preset
	return nil
}

// PresetNames returns the registered preset names joined for help text.
func PresetNames(pr PresetRegistry) string {
	names := make([]string, 0)
	for _, p := range pr.List() {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}
