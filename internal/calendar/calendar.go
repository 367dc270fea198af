// Package calendar keeps an in-memory event book for scheduled habits
// and one-shot tasks. The real calendar backend is an external
// collaborator; this mirrors the slice of it the app needs.
package calendar

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrEventNotFound is returned when no event matches a lookup.
var ErrEventNotFound = errors.New("event not found")

// EventType distinguishes recurring habit events from one-shot tasks.
type EventType string

const (
	EventHabit EventType = "habit"
	EventTask  EventType = "task"
)

// Event is one calendar entry. Times are stored in UTC.
type Event struct {
	ID         string    `json:"id"`
	Summary    string    `json:"summary"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Attendees  []string  `json:"attendees,omitempty"`
	Recurrence string    `json:"recurrence,omitempty"`
	Type       EventType `json:"event_type"`
}

// Scheduler is the in-memory event book.
type Scheduler struct {
	mu     sync.Mutex
	events []Event
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// RRule builds an iCalendar recurrence rule for the given weekdays.
// All seven days (or none) collapse to a daily rule; otherwise a
// weekly BYDAY rule is produced. A non-nil until bounds the series.
func RRule(weekdays []string, until *time.Time) string {
	dayMap := map[string]string{
		"Monday":    "MO",
		"Tuesday":   "TU",
		"Wednesday": "WE",
		"Thursday":  "TH",
		"Friday":    "FR",
		"Saturday":  "SA",
		"Sunday":    "SU",
	}

	var byday []string
	for _, day := range weekdays {
		if code, ok := dayMap[day]; ok {
			byday = append(byday, code)
		}
	}

	rule := "RRULE:FREQ=WEEKLY;BYDAY=" + strings.Join(byday, ",")
	if len(byday) == 7 || len(byday) == 0 {
		rule = "RRULE:FREQ=DAILY"
	}

	if until != nil {
		rule += ";UNTIL=" + until.UTC().Format("20060102T150405Z")
	}
	return rule
}

// ScheduleHabit adds a recurring habit event and returns it.
func (s *Scheduler) ScheduleHabit(summary string, start, end time.Time, attendees []string, until *time.Time, days []string) Event {
	ev := Event{
		ID:         uuid.NewString(),
		Summary:    summary,
		Start:      start.UTC(),
		End:        end.UTC(),
		Attendees:  attendees,
		Recurrence: RRule(days, until),
		Type:       EventHabit,
	}

	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	return ev
}

// CreateTask adds a one-shot task event and returns it.
func (s *Scheduler) CreateTask(summary string, start, end time.Time) Event {
	ev := Event{
		ID:      uuid.NewString(),
		Summary: summary,
		Start:   start.UTC(),
		End:     end.UTC(),
		Type:    EventTask,
	}

	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
	return ev
}

// Reschedule moves the first event with the given summary to new times.
func (s *Scheduler) Reschedule(summary string, newStart, newEnd time.Time) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.events {
		if s.events[i].Summary == summary {
			s.events[i].Start = newStart.UTC()
			s.events[i].End = newEnd.UTC()
			return s.events[i], nil
		}
	}
	return Event{}, ErrEventNotFound
}

// Get returns the event with the given id.
func (s *Scheduler) Get(id string) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return Event{}, ErrEventNotFound
}

// EventsForDay returns the events starting on the same UTC calendar
// day as t.
func (s *Scheduler) EventsForDay(t time.Time) []Event {
	target := t.UTC().Format("2006-01-02")

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Event
	for _, ev := range s.events {
		if ev.Start.Format("2006-01-02") == target {
			out = append(out, ev)
		}
	}
	return out
}

// Clear drops every event.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()
}
