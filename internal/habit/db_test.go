package habit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "wave.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleHabit() *Habit {
	return &Habit{
		Desc:     "Morning run",
		Priority: 3,
		Type:     TypeHealth,
		Time:     "07:30",
		Days:     []string{"Monday", "Wednesday", "Friday"},
		Periods:  []Period{{Name: "Morning"}},
	}
}

func TestCreateAndGet(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Create(sampleHabit())
	require.NoError(t, err)
	require.NotZero(t, id)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Morning run", got.Desc)
	assert.Equal(t, TypeHealth, got.Type)
	assert.ElementsMatch(t, []string{"Monday", "Wednesday", "Friday"}, got.Days)
	require.Len(t, got.Periods, 1)
	assert.Equal(t, "Morning", got.Periods[0].Name)
}

func TestCreateRejectsInvalidHabits(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Create(&Habit{Type: TypeHealth})
	assert.Error(t, err, "missing description")

	_, err = s.Create(&Habit{Desc: "x", Type: "Sleep"})
	assert.Error(t, err, "unknown type")

	_, err = s.Create(&Habit{Desc: "x", Type: TypeHealth, Days: []string{"Funday"}})
	assert.Error(t, err, "unknown day")
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrderedByPriority(t *testing.T) {
	s := openTestStore(t)

	low := sampleHabit()
	low.Desc = "Stretch"
	low.Priority = 1
	_, err := s.Create(low)
	require.NoError(t, err)

	high := sampleHabit()
	high.Desc = "Read"
	high.Priority = 5
	high.Type = TypeLearning
	_, err = s.Create(high)
	require.NoError(t, err)

	all, err := s.List("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Read", all[0].Desc)

	learning, err := s.List(TypeLearning)
	require.NoError(t, err)
	require.Len(t, learning, 1)
	assert.Equal(t, "Read", learning[0].Desc)
}

func TestForDay(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Create(sampleHabit())
	require.NoError(t, err)

	monday, err := s.ForDay("Monday", "")
	require.NoError(t, err)
	assert.Len(t, monday, 1)

	tuesday, err := s.ForDay("Tuesday", "")
	require.NoError(t, err)
	assert.Empty(t, tuesday)

	evening, err := s.ForDay("Monday", "Evening")
	require.NoError(t, err)
	assert.Empty(t, evening)

	_, err = s.ForDay("Noday", "")
	assert.Error(t, err)
}

func TestUpdateReplacesSchedule(t *testing.T) {
	s := openTestStore(t)
	h := sampleHabit()
	_, err := s.Create(h)
	require.NoError(t, err)

	h.Desc = "Evening run"
	h.Days = []string{"Sunday"}
	h.Periods = []Period{{Name: "Evening"}}
	require.NoError(t, s.Update(*h))

	got, err := s.Get(h.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening run", got.Desc)
	assert.Equal(t, []string{"Sunday"}, got.Days)
	require.Len(t, got.Periods, 1)
	assert.Equal(t, "Evening", got.Periods[0].Name)
}

func TestDeleteCascades(t *testing.T) {
	s := openTestStore(t)
	id, err := s.Create(sampleHabit())
	require.NoError(t, err)
	_, err = s.AddCompletion(id, time.Now(), "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(id))

	_, err = s.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
	comps, err := s.Completions(id)
	require.NoError(t, err)
	assert.Empty(t, comps)

	assert.ErrorIs(t, s.Delete(id), ErrNotFound)
}

func TestCompletionsAndStats(t *testing.T) {
	s := openTestStore(t)
	id, err := s.Create(sampleHabit())
	require.NoError(t, err)

	now := time.Date(2025, 3, 12, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.AddCompletion(id, now.AddDate(0, 0, -i), "note")
		require.NoError(t, err)
	}

	comps, err := s.Completions(id)
	require.NoError(t, err)
	require.Len(t, comps, 3)
	assert.True(t, comps[0].CompletedAt.After(comps[2].CompletedAt), "newest first")

	stats, err := s.Stats(id)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 3, stats.StreakDays)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Periods[0].Completed)

	_, err = s.AddCompletion(999, now, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
