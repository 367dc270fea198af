// Package habit holds the habit domain model and its SQLite-backed
// store.
package habit

import (
	"fmt"
	"time"
)

// Type is the habit category.
type Type string

const (
	TypeHealth       Type = "Health"
	TypeLearning     Type = "Learning"
	TypeCreativity   Type = "Creativity"
	TypeProductivity Type = "Productivity"
)

// ParseType validates a habit category.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeHealth, TypeLearning, TypeCreativity, TypeProductivity:
		return Type(s), nil
	}
	return "", fmt.Errorf("invalid habit type %q", s)
}

// Weekdays in schedule order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidDay reports whether day is a known weekday name.
func ValidDay(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

// Period is a time-of-day slot a habit is scheduled in.
type Period struct {
	Name      string `json:"name"` // Morning, Afternoon, Evening
	Completed int    `json:"completed_days"`
	Total     int    `json:"total_days"`
}

// ValidPeriod reports whether name is a known time-of-day slot.
func ValidPeriod(name string) bool {
	return name == "Morning" || name == "Afternoon" || name == "Evening"
}

// Habit is one tracked habit with its schedule.
type Habit struct {
	ID         int64    `json:"id"`
	Desc       string   `json:"desc"`
	Priority   int      `json:"priority"`
	Preference int      `json:"preference"`
	Type       Type     `json:"type"`
	Time       string   `json:"time"` // clock time like "08:00"
	Remarks    string   `json:"remarks"`
	Days       []string `json:"days"`
	Periods    []Period `json:"periods"`
}

// Validate checks the fields a store insert requires.
func (h *Habit) Validate() error {
	if h.Desc == "" {
		return fmt.Errorf("habit needs a description")
	}
	if _, err := ParseType(string(h.Type)); err != nil {
		return err
	}
	for _, d := range h.Days {
		if !ValidDay(d) {
			return fmt.Errorf("invalid day %q", d)
		}
	}
	for _, p := range h.Periods {
		if !ValidPeriod(p.Name) {
			return fmt.Errorf("invalid period %q", p.Name)
		}
	}
	return nil
}

// Completion records one time a habit was done.
type Completion struct {
	ID          int64     `json:"id"`
	HabitID     int64     `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
}

// Stats summarizes a habit's completion history.
type Stats struct {
	Total      int `json:"total"`
	StreakDays int `json:"streak_days"`
}
