package calculator

import (
	"sort"
	"time"

	"learnhub_backend/internal/model"
)

type StreakResult struct {
	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`
}

// Streaks derives consecutive-day learning streaks from session records.
// Only sessions with positive duration count. The current streak walks back
// from today, accepting at each step the expected day or the day before it,
// so a single missed day does not break the chain. The longest streak counts
// strictly consecutive days only.
func Streaks(sessions []model.LearningSession, now time.Time) StreakResult {
	dates := distinctDates(sessions)
	if len(dates) == 0 {
		return StreakResult{}
	}

	// Descending.
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	current := 0
	expected := truncateDay(now)
	for _, d := range dates {
		if d.Equal(expected) || d.Equal(expected.AddDate(0, 0, -1)) {
			current++
			expected = d.AddDate(0, 0, -1)
		} else {
			break
		}
	}

	longest := 0
	run := 1
	for i := 1; i < len(dates); i++ {
		if dates[i].AddDate(0, 0, 1).Equal(dates[i-1]) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}

func distinctDates(sessions []model.LearningSession) []time.Time {
	seen := make(map[int64]time.Time)
	for _, s := range sessions {
		if s.Duration <= 0 {
			continue
		}
		d := truncateDay(s.SessionDate)
		seen[d.Unix()] = d
	}
	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	return dates
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
