package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wave-app/wave/internal/classify"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Keep ticking while a transition animates; otherwise idle
		// until the next mode change restarts the loop.
		if m.ctrl.Transitioning() {
			return m, animTick()
		}
		return m, nil

	case ModeChangedMsg:
		return m, animTick()

	case HabitsChangedMsg:
		return m, m.loadHabits()

	case habitsLoadedMsg:
		m.habits = msg.habits
		m.err = msg.err
		if m.cursor >= len(m.habits) {
			m.cursor = 0
		}
		return m, nil

	case suggestionMsg:
		return m.applySuggestion(msg.res)

	case completionMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("could not record completion: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("done! %d-day streak", msg.stats.StreakDays)
		return m, m.loadHabits()

	case tea.KeyMsg:
		if m.state == journalState {
			return m.updateJournal(msg)
		}
		return m.updateDashboard(msg)
	}

	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.habits)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.ToggleMode):
		m.ctrl.Toggle()
		m.status = fmt.Sprintf("switched to %s mode", m.ctrl.Current())
		return m, animTick()

	case key.Matches(msg, keys.Audio):
		enabled := !m.ctrl.AudioEnabled()
		m.ctrl.SetAudioEnabled(enabled)
		if enabled {
			m.status = "soundscape on"
		} else {
			m.status = "soundscape off"
		}

	case key.Matches(msg, keys.Journal):
		m.state = journalState
		m.suggestion = ""
		m.journal.SetValue("")
		return m, m.journal.Focus()

	case key.Matches(msg, keys.Done):
		if len(m.habits) > 0 {
			return m, m.completeHabit(m.habits[m.cursor].ID)
		}

	case key.Matches(msg, keys.Refresh):
		return m, m.loadHabits()
	}

	return m, nil
}

func (m Model) updateJournal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.state = dashboardState
		m.journal.Blur()
		return m, nil

	case "enter":
		text := m.journal.Value()
		m.state = dashboardState
		m.journal.Blur()
		if text == "" {
			return m, nil
		}
		return m, m.classifyJournal(text)
	}

	var cmd tea.Cmd
	m.journal, cmd = m.journal.Update(msg)
	return m, cmd
}

// applySuggestion follows the advisory contract: toggle only when the
// suggestion differs from the active mode.
func (m Model) applySuggestion(res classify.Result) (tea.Model, tea.Cmd) {
	m.suggestion = classify.DescribeSuggestion(res)

	if res.SuggestedMode == nil || *res.SuggestedMode == m.ctrl.Current() {
		return m, nil
	}

	m.ctrl.Toggle()
	m.status = fmt.Sprintf("journal suggested %s mode", m.ctrl.Current())
	return m, animTick()
}
