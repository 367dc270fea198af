package habit

import (
	"sort"
	"time"
)

// streakDays counts consecutive calendar days with at least one
// completion, ending at the most recent completion day. Zero
// completions means zero streak.
func streakDays(completions []time.Time) int {
	if len(completions) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(completions))
	var days []string
	for _, c := range completions {
		d := c.Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	streak := 1
	cur, _ := time.Parse("2006-01-02", days[0])
	for _, d := range days[1:] {
		next, _ := time.Parse("2006-01-02", d)
		if next.Equal(cur.AddDate(0, 0, -1)) {
			streak++
			cur = next
		} else {
			break
		}
	}
	return streak
}
