package calculator

import (
	"sort"

	"learnhub_backend/internal/model"
)

type DayActivity struct {
	Date         string   `json:"date"`
	TotalTime    int      `json:"totalTime"` // minutes
	SessionCount int      `json:"sessionCount"`
	Courses      []string `json:"courses"`
}

// DailyActivity buckets sessions by calendar date, ascending. Each bucket
// carries total minutes, session count and the distinct course titles touched
// that day.
func DailyActivity(sessions []model.LearningSession) []DayActivity {
	type bucket struct {
		total   int
		count   int
		courses map[string]struct{}
	}

	buckets := make(map[string]*bucket)
	for _, s := range sessions {
		date := s.SessionDate.Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{courses: make(map[string]struct{})}
			buckets[date] = b
		}
		b.total += s.Duration
		b.count++
		if s.Course != nil && s.Course.Title != "" {
			b.courses[s.Course.Title] = struct{}{}
		}
	}

	days := make([]DayActivity, 0, len(buckets))
	for date, b := range buckets {
		courses := make([]string, 0, len(b.courses))
		for title := range b.courses {
			courses = append(courses, title)
		}
		sort.Strings(courses)
		days = append(days, DayActivity{
			Date:         date,
			TotalTime:    b.total,
			SessionCount: b.count,
			Courses:      courses,
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

type CategoryActivity struct {
	TotalTime    int `json:"totalTime"`
	SessionCount int `json:"sessionCount"`
}

// CategoryTotals buckets sessions by course category. Sessions without a
// preloaded course are skipped.
func CategoryTotals(sessions []model.LearningSession) map[string]CategoryActivity {
	totals := make(map[string]CategoryActivity)
	for _, s := range sessions {
		if s.Course == nil || s.Course.Category == "" {
			continue
		}
		c := totals[s.Course.Category]
		c.TotalTime += s.Duration
		c.SessionCount++
		totals[s.Course.Category] = c
	}
	return totals
}

// TotalMinutes sums session durations.
func TotalMinutes(sessions []model.LearningSession) int {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return total
}
