// Package render holds the lipgloss styles and the pure view functions of
// the TUI screens.
package render

import "github.com/charmbracelet/lipgloss"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Theme is the set of styles for one color scheme.
type Theme struct {
	Name      string
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Title     lipgloss.Style
	Accent    lipgloss.Style
	Selected  lipgloss.Style
	Border    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	ThemeIcon string
}

// NewTheme returns the theme called name; anything but "light" is dark.
func NewTheme(name string) Theme {
	if name == ThemeLight {
		return newTheme(ThemeLight, "0", "8", "4", "15", "12", "☾")
	}
	return newTheme(ThemeDark, "15", "8", "12", "0", "12", "☀")
}

func newTheme(name, text, muted, accent, selectedFg, selectedBg, icon string) Theme {
	return Theme{
		Name:      name,
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(text)),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(text)),
		Accent:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color(selectedFg)).Background(lipgloss.Color(selectedBg)),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(muted)).Padding(0, 1),
		Success:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		Warning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		ThemeIcon: icon,
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == ThemeLight {
		return NewTheme(ThemeDark)
	}
	return NewTheme(ThemeLight)
}
