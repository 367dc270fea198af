package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wave-app/wave/internal/theme"
)

// trueColor gates gradient rendering: blending hex colors per frame is
// wasted on terminals that quantize to a 16 or 256 color palette.
var trueColor = termenv.ColorProfile() == termenv.TrueColor

const logo = `
█   █ █▀█ █ █ █▀▀
█ █ █ █▀█ ▀▄▀ █▀▀
▀▀▀▀▀ ▀ ▀  ▀  ▀▀▀`

func (m Model) View() string {
	t := m.ctrl.CurrentTheme()
	if trueColor {
		t = m.ctrl.BlendedTheme()
	}
	s := NewStyles(t)

	var b strings.Builder

	b.WriteString(renderLogo(t))
	b.WriteString("\n")
	b.WriteString(s.ModeBadge.Render(strings.ToUpper(m.ctrl.Current().String())))
	if m.ctrl.Transitioning() {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  shifting %3.0f%%", m.ctrl.Progress()*100)))
	}
	b.WriteString("\n\n")

	if m.state == journalState {
		b.WriteString(s.Title.Render("journal"))
		b.WriteString("\n")
		b.WriteString(s.InputPane.Render(m.journal.View()))
		b.WriteString("\n")
		b.WriteString(s.Muted.Render("enter to classify · esc to cancel"))
		b.WriteString("\n")
		return s.App.Render(b.String())
	}

	b.WriteString(s.Title.Render("today"))
	b.WriteString("\n")
	b.WriteString(m.renderHabits(s))
	b.WriteString("\n")

	if m.suggestion != "" {
		b.WriteString(s.Suggestion.Render(m.suggestion))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStatus(s))
	return s.App.Render(b.String())
}

func (m Model) renderHabits(s Styles) string {
	if m.err != nil {
		return s.Muted.Render("habit list unavailable")
	}
	if len(m.habits) == 0 {
		return s.Muted.Render("nothing scheduled · add a habit with `wave add`")
	}

	var rows []string
	for i, h := range m.habits {
		line := fmt.Sprintf("%s  %s", h.Time, h.Desc)
		if h.Remarks != "" {
			line += "  · " + h.Remarks
		}
		if i == m.cursor {
			rows = append(rows, s.Selected.Render("▸ "+line))
		} else {
			rows = append(rows, "  "+line)
		}
	}
	return s.Card.Render(strings.Join(rows, "\n"))
}

func (m Model) renderStatus(s Styles) string {
	audio := "soundscape off"
	if m.ctrl.AudioEnabled() {
		audio = "soundscape on"
	}

	left := fmt.Sprintf("%s · %s", m.ctrl.Current(), audio)
	if m.status != "" {
		left += " · " + m.status
	}
	help := "m mode · w journal · enter done · q quit"

	return s.StatusBar.Render(left) + "\n" + s.Muted.Render(help)
}

// renderLogo paints the banner with a vertical gradient from the
// theme's primary to its accent color.
func renderLogo(t theme.Theme) string {
	lines := strings.Split(strings.TrimPrefix(logo, "\n"), "\n")
	if !trueColor {
		return lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Render(strings.Join(lines, "\n"))
	}
	height := len(lines)

	var colored []string
	for i, line := range lines {
		frac := 0.0
		if height > 1 {
			frac = float64(i) / float64(height-1)
		}
		color := theme.BlendColor(t.Primary, t.Accent, frac)
		colored = append(colored, lipgloss.NewStyle().Foreground(color).Bold(true).Render(line))
	}
	return strings.Join(colored, "\n")
}
