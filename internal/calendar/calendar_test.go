package calendar

import (
	"testing"
	"time"
)

func TestRRuleWeekly(t *testing.T) {
	rule := RRule([]string{"Monday", "Wednesday", "Friday"}, nil)
	want := "RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR"
	if rule != want {
		t.Errorf("RRule = %q, want %q", rule, want)
	}
}

func TestRRuleDailyForAllOrNoDays(t *testing.T) {
	if rule := RRule(nil, nil); rule != "RRULE:FREQ=DAILY" {
		t.Errorf("empty days: %q, want daily rule", rule)
	}

	all := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if rule := RRule(all, nil); rule != "RRULE:FREQ=DAILY" {
		t.Errorf("all days: %q, want daily rule", rule)
	}
}

func TestRRuleUntil(t *testing.T) {
	until := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	rule := RRule([]string{"Sunday"}, &until)
	want := "RRULE:FREQ=WEEKLY;BYDAY=SU;UNTIL=20251231T235900Z"
	if rule != want {
		t.Errorf("RRule = %q, want %q", rule, want)
	}
}

func TestRRuleIgnoresUnknownDays(t *testing.T) {
	rule := RRule([]string{"Monday", "Funday"}, nil)
	if rule != "RRULE:FREQ=WEEKLY;BYDAY=MO" {
		t.Errorf("RRule = %q, want unknown days dropped", rule)
	}
}

func TestScheduleAndLookup(t *testing.T) {
	s := NewScheduler()
	start := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)

	ev := s.ScheduleHabit("Morning run", start, start.Add(30*time.Minute), nil, nil, []string{"Monday"})
	if ev.ID == "" {
		t.Fatal("event should get an id")
	}
	if ev.Type != EventHabit {
		t.Errorf("type = %v, want habit", ev.Type)
	}

	got, err := s.Get(ev.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Summary != "Morning run" {
		t.Errorf("summary = %q", got.Summary)
	}

	if _, err := s.Get("nope"); err != ErrEventNotFound {
		t.Errorf("missing id error = %v, want ErrEventNotFound", err)
	}
}

func TestReschedule(t *testing.T) {
	s := NewScheduler()
	start := time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC)
	s.CreateTask("Dentist", start, start.Add(time.Hour))

	moved, err := s.Reschedule("Dentist", start.Add(24*time.Hour), start.Add(25*time.Hour))
	if err != nil {
		t.Fatalf("Reschedule returned error: %v", err)
	}
	if !moved.Start.Equal(start.Add(24 * time.Hour)) {
		t.Errorf("start not moved: %v", moved.Start)
	}

	if _, err := s.Reschedule("Nothing", start, start); err != ErrEventNotFound {
		t.Errorf("unknown summary error = %v, want ErrEventNotFound", err)
	}
}

func TestEventsForDay(t *testing.T) {
	s := NewScheduler()
	today := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	tomorrow := today.AddDate(0, 0, 1)

	s.CreateTask("today", today, today.Add(time.Hour))
	s.CreateTask("tomorrow", tomorrow, tomorrow.Add(time.Hour))

	got := s.EventsForDay(today)
	if len(got) != 1 || got[0].Summary != "today" {
		t.Fatalf("EventsForDay = %+v, want only today's event", got)
	}

	s.Clear()
	if len(s.EventsForDay(today)) != 0 {
		t.Error("Clear should drop all events")
	}
}
