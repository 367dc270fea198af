package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wave-app/wave/internal/classify"
	"github.com/wave-app/wave/internal/habit"
	"github.com/wave-app/wave/internal/mode"
	"github.com/wave-app/wave/internal/theme"
)

type stubStore struct {
	habits      []habit.Habit
	completions int
}

func (s *stubStore) Create(h *habit.Habit) (int64, error) { return 1, nil }
func (s *stubStore) Update(h habit.Habit) error           { return nil }
func (s *stubStore) Delete(id int64) error                { return nil }
func (s *stubStore) Get(id int64) (*habit.Habit, error)   { return nil, habit.ErrNotFound }
func (s *stubStore) SetRemarks(int64, string) error       { return nil }
func (s *stubStore) Close() error                         { return nil }

func (s *stubStore) List(habit.Type) ([]habit.Habit, error) { return s.habits, nil }

func (s *stubStore) ForDay(day, period string) ([]habit.Habit, error) { return s.habits, nil }

func (s *stubStore) AddCompletion(int64, time.Time, string) (int64, error) {
	s.completions++
	return int64(s.completions), nil
}

func (s *stubStore) Completions(int64) ([]habit.Completion, error) { return nil, nil }

func (s *stubStore) Stats(int64) (habit.Stats, error) {
	return habit.Stats{Total: s.completions, StreakDays: 1}, nil
}

func newTestModel() Model {
	store := &stubStore{habits: []habit.Habit{
		{ID: 1, Desc: "Morning run", Time: "07:30", Type: habit.TypeHealth},
		{ID: 2, Desc: "Read", Time: "21:00", Type: habit.TypeLearning},
	}}
	return NewModel(theme.NewController(nil, nil), store, classify.NewService(nil))
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestToggleKeyFlipsModeAndAnimates(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(keyPress('m'))
	m = updated.(Model)

	if m.ctrl.Current() != mode.Energetic {
		t.Fatalf("mode = %v, want energetic", m.ctrl.Current())
	}
	if cmd == nil {
		t.Fatal("toggle should schedule an animation tick")
	}
}

func TestJournalSuggestionMatchingModeDoesNotToggle(t *testing.T) {
	m := newTestModel()

	// Open the journal and submit a reflective note.
	updated, _ := m.Update(keyPress('w'))
	m = updated.(Model)
	if m.state != journalState {
		t.Fatal("w should open the journal")
	}

	m.journal.SetValue("I want to relax and reflect")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("submitting the journal should classify it")
	}

	updated, animCmd := m.Update(cmd())
	m = updated.(Model)

	if m.ctrl.Current() != mode.Reflective {
		t.Fatalf("mode = %v, suggestion matching current mode must not toggle", m.ctrl.Current())
	}
	if animCmd != nil {
		t.Fatal("no transition should start when the suggestion matches")
	}
	if !strings.Contains(m.suggestion, "reflective") {
		t.Errorf("suggestion line = %q", m.suggestion)
	}
}

func TestJournalSuggestionDifferingModeToggles(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(keyPress('w'))
	m = updated.(Model)
	m.journal.SetValue("Time to focus and achieve")
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	updated, animCmd := m.Update(cmd())
	m = updated.(Model)

	if m.ctrl.Current() != mode.Energetic {
		t.Fatalf("mode = %v, want energetic after an energetic journal", m.ctrl.Current())
	}
	if animCmd == nil {
		t.Fatal("a differing suggestion should start the transition animation")
	}
}

func TestCompletionKeyRecordsAndReports(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(habitsLoadedMsg{habits: m.store.(*stubStore).habits})
	m = updated.(Model)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("enter on a habit should record a completion")
	}

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	if m.store.(*stubStore).completions != 1 {
		t.Fatalf("completions = %d, want 1", m.store.(*stubStore).completions)
	}
	if !strings.Contains(m.status, "streak") {
		t.Errorf("status = %q, want streak message", m.status)
	}
}

func TestViewShowsHabitsAndMode(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(habitsLoadedMsg{habits: m.store.(*stubStore).habits})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "Morning run") {
		t.Error("view should list today's habits")
	}
	if !strings.Contains(view, "REFLECTIVE") {
		t.Error("view should show the mode badge")
	}
}

func TestViewJournalState(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(keyPress('w'))
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "journal") {
		t.Error("journal view should be visible")
	}
}

func TestCursorClampedOnReload(t *testing.T) {
	m := newTestModel()
	updated, _ := m.Update(habitsLoadedMsg{habits: m.store.(*stubStore).habits})
	m = updated.(Model)

	updated, _ = m.Update(keyPress('j'))
	m = updated.(Model)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	updated, _ = m.Update(habitsLoadedMsg{habits: m.store.(*stubStore).habits[:1]})
	m = updated.(Model)
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want clamped to 0", m.cursor)
	}
}
