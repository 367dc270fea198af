// Package theme owns the two fixed color palettes, the blending math
// between them, and the controller that animates mode switches.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wave-app/wave/internal/mode"
)

// Theme is the fixed palette associated with one persona. Instances
// are immutable; the two canonical themes are defined below and never
// mutated.
type Theme struct {
	Primary    lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Accent     lipgloss.Color
	Card       lipgloss.Color
	Border     lipgloss.Color
}

// The canonical palettes. Reflective is cool and muted, energetic is
// warm and saturated.
var (
	reflectiveTheme = Theme{
		Primary:    lipgloss.Color("#89b4fa"),
		Background: lipgloss.Color("#1e1e2e"),
		Text:       lipgloss.Color("#cdd6f4"),
		Accent:     lipgloss.Color("#b4befe"),
		Card:       lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),
	}

	energeticTheme = Theme{
		Primary:    lipgloss.Color("#ff79c6"),
		Background: lipgloss.Color("#21141f"),
		Text:       lipgloss.Color("#f8f8f2"),
		Accent:     lipgloss.Color("#ffb86c"),
		Card:       lipgloss.Color("#3a2436"),
		Border:     lipgloss.Color("#6b3a5e"),
	}
)

// ForMode returns the fixed Theme for the given persona. Pure lookup,
// independent of any controller state.
func ForMode(m mode.Mode) Theme {
	if m == mode.Energetic {
		return energeticTheme
	}
	return reflectiveTheme
}
