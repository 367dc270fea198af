package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/wave-app/wave/internal/theme"
)

// Styles are rebuilt every frame from the blended theme so colors
// follow the transition animation.
type Styles struct {
	App        lipgloss.Style
	Logo       lipgloss.Style
	ModeBadge  lipgloss.Style
	Card       lipgloss.Style
	Selected   lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	StatusBar  lipgloss.Style
	Suggestion lipgloss.Style
	InputPane  lipgloss.Style
}

// NewStyles derives the full style set from one theme snapshot.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Foreground(t.Text),

		Logo: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		ModeBadge: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Background(t.Card).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(t.Border),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Card).
			Padding(0, 1),

		Suggestion: lipgloss.NewStyle().
			Foreground(t.Accent).
			Italic(true),

		InputPane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Padding(0, 1),
	}
}
