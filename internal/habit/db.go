package habit

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a habit id does not exist.
var ErrNotFound = errors.New("habit not found")

// Store is the single storage boundary for habits and completions.
// One backing implementation is chosen at composition time.
type Store interface {
	Create(h *Habit) (int64, error)
	Update(h Habit) error
	Delete(id int64) error
	Get(id int64) (*Habit, error)
	SetRemarks(id int64, remarks string) error
	List(typeFilter Type) ([]Habit, error)
	ForDay(day, period string) ([]Habit, error)
	AddCompletion(habitID int64, at time.Time, notes string) (int64, error)
	Completions(habitID int64) ([]Completion, error)
	Stats(habitID int64) (Stats, error)
	Close() error
}

// SQLiteStore backs the habit store with a local SQLite database.
type SQLiteStore struct {
	mu sync.Mutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	desc TEXT NOT NULL,
	priority INTEGER NOT NULL DEFAULT 1,
	preference INTEGER NOT NULL DEFAULT 0,
	type TEXT NOT NULL CHECK (type IN ('Health', 'Learning', 'Creativity', 'Productivity')),
	time TEXT NOT NULL DEFAULT '',
	remarks TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS habit_days (
	habit_id INTEGER NOT NULL,
	day TEXT NOT NULL CHECK (day IN ('Monday', 'Tuesday', 'Wednesday', 'Thursday', 'Friday', 'Saturday', 'Sunday'))
);

CREATE TABLE IF NOT EXISTS habit_periods (
	habit_id INTEGER NOT NULL,
	period TEXT NOT NULL CHECK (period IN ('Morning', 'Afternoon', 'Evening')),
	completed_days INTEGER NOT NULL DEFAULT 0,
	total_days INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS completions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	habit_id INTEGER NOT NULL,
	completed_at INTEGER NOT NULL,
	notes TEXT NOT NULL DEFAULT ''
);
`

// Open opens (creating if needed) the habit database at path.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Create inserts a habit with its days and periods and fills in the
// assigned id.
func (s *SQLiteStore) Create(h *Habit) (int64, error) {
	if err := h.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO habits (desc, priority, preference, type, time, remarks) VALUES (?, ?, ?, ?, ?, ?)`,
		h.Desc, h.Priority, h.Preference, string(h.Type), h.Time, h.Remarks,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if err := insertSchedule(tx, id, h.Days, h.Periods); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	h.ID = id
	return id, nil
}

func insertSchedule(tx *sql.Tx, id int64, days []string, periods []Period) error {
	for _, day := range days {
		if _, err := tx.Exec(`INSERT INTO habit_days (habit_id, day) VALUES (?, ?)`, id, day); err != nil {
			return err
		}
	}
	for _, p := range periods {
		if _, err := tx.Exec(
			`INSERT INTO habit_periods (habit_id, period, completed_days, total_days) VALUES (?, ?, ?, ?)`,
			id, p.Name, p.Completed, p.Total,
		); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces the habit row and its schedule.
func (s *SQLiteStore) Update(h Habit) error {
	if err := h.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`UPDATE habits SET desc = ?, priority = ?, preference = ?, type = ?, time = ?, remarks = ? WHERE id = ?`,
		h.Desc, h.Priority, h.Preference, string(h.Type), h.Time, h.Remarks, h.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(`DELETE FROM habit_days WHERE habit_id = ?`, h.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM habit_periods WHERE habit_id = ?`, h.ID); err != nil {
		return err
	}
	if err := insertSchedule(tx, h.ID, h.Days, h.Periods); err != nil {
		return err
	}

	return tx.Commit()
}

// SetRemarks updates only the remark text of a habit.
func (s *SQLiteStore) SetRemarks(id int64, remarks string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`UPDATE habits SET remarks = ? WHERE id = ?`, remarks, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a habit and everything attached to it.
func (s *SQLiteStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	for _, q := range []string{
		`DELETE FROM habit_days WHERE habit_id = ?`,
		`DELETE FROM habit_periods WHERE habit_id = ?`,
		`DELETE FROM completions WHERE habit_id = ?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Get loads one habit with its schedule.
func (s *SQLiteStore) Get(id int64) (*Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := Habit{ID: id}
	var typ string
	err := s.db.QueryRow(
		`SELECT desc, priority, preference, type, time, remarks FROM habits WHERE id = ?`, id,
	).Scan(&h.Desc, &h.Priority, &h.Preference, &typ, &h.Time, &h.Remarks)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	h.Type = Type(typ)

	if err := s.loadSchedule(&h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (s *SQLiteStore) loadSchedule(h *Habit) error {
	rows, err := s.db.Query(`SELECT day FROM habit_days WHERE habit_id = ?`, h.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return err
		}
		h.Days = append(h.Days, day)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	prows, err := s.db.Query(
		`SELECT period, completed_days, total_days FROM habit_periods WHERE habit_id = ?`, h.ID,
	)
	if err != nil {
		return err
	}
	defer prows.Close()
	for prows.Next() {
		var p Period
		if err := prows.Scan(&p.Name, &p.Completed, &p.Total); err != nil {
			return err
		}
		h.Periods = append(h.Periods, p)
	}
	return prows.Err()
}

// List returns all habits, optionally filtered by type, ordered by
// priority descending then clock time ascending.
func (s *SQLiteStore) List(typeFilter Type) ([]Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT id, desc, priority, preference, type, time, remarks FROM habits`
	args := []any{}
	if typeFilter != "" {
		query += ` WHERE type = ?`
		args = append(args, string(typeFilter))
	}
	query += ` ORDER BY priority DESC, time ASC`

	return s.queryHabits(query, args...)
}

// ForDay returns habits scheduled for the given weekday, optionally
// narrowed to a period.
func (s *SQLiteStore) ForDay(day, period string) ([]Habit, error) {
	if !ValidDay(day) {
		return nil, fmt.Errorf("invalid day %q", day)
	}
	if period != "" && !ValidPeriod(period) {
		return nil, fmt.Errorf("invalid period %q", period)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `SELECT DISTINCT h.id, h.desc, h.priority, h.preference, h.type, h.time, h.remarks
		FROM habits h
		JOIN habit_days hd ON h.id = hd.habit_id
		WHERE hd.day = ?`
	args := []any{day}
	if period != "" {
		query = `SELECT DISTINCT h.id, h.desc, h.priority, h.preference, h.type, h.time, h.remarks
			FROM habits h
			JOIN habit_days hd ON h.id = hd.habit_id
			JOIN habit_periods hp ON h.id = hp.habit_id
			WHERE hd.day = ? AND hp.period = ?`
		args = append(args, period)
	}
	query += ` ORDER BY h.priority DESC, h.time ASC`

	return s.queryHabits(query, args...)
}

func (s *SQLiteStore) queryHabits(query string, args ...any) ([]Habit, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		var h Habit
		var typ string
		if err := rows.Scan(&h.ID, &h.Desc, &h.Priority, &h.Preference, &typ, &h.Time, &h.Remarks); err != nil {
			return nil, err
		}
		h.Type = Type(typ)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range habits {
		if err := s.loadSchedule(&habits[i]); err != nil {
			return nil, err
		}
	}
	return habits, nil
}

// AddCompletion records a completion and bumps the period counters of
// the habit.
func (s *SQLiteStore) AddCompletion(habitID int64, at time.Time, notes string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int64
	err := s.db.QueryRow(`SELECT id FROM habits WHERE id = ?`, habitID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO completions (habit_id, completed_at, notes) VALUES (?, ?, ?)`,
		habitID, at.Unix(), notes,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(
		`UPDATE habit_periods SET completed_days = completed_days + 1, total_days = total_days + 1 WHERE habit_id = ?`,
		habitID,
	); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// Completions returns a habit's completion records, newest first.
func (s *SQLiteStore) Completions(habitID int64) ([]Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, habit_id, completed_at, notes FROM completions WHERE habit_id = ? ORDER BY completed_at DESC`,
		habitID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Completion
	for rows.Next() {
		var c Completion
		var ts int64
		if err := rows.Scan(&c.ID, &c.HabitID, &ts, &c.Notes); err != nil {
			return nil, err
		}
		c.CompletedAt = time.Unix(ts, 0)
		out = append(out, c)
	}
	return out, rows.Err()
}

// Stats computes the completion total and current streak for a habit.
func (s *SQLiteStore) Stats(habitID int64) (Stats, error) {
	completions, err := s.Completions(habitID)
	if err != nil {
		return Stats{}, err
	}

	times := make([]time.Time, len(completions))
	for i, c := range completions {
		times[i] = c.CompletedAt
	}
	return Stats{
		Total:      len(completions),
		StreakDays: streakDays(times),
	}, nil
}
