package calculator

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func TestDailyActivity(t *testing.T) {
	day1 := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)

	goCourse := &model.Course{Title: "Go Basics", Category: "Programming"}
	sqlCourse := &model.Course{Title: "SQL Fundamentals", Category: "Databases"}

	sessions := []model.LearningSession{
		{SessionDate: day1, Duration: 30, Course: goCourse},
		{SessionDate: day1.Add(4 * time.Hour), Duration: 20, Course: goCourse},
		{SessionDate: day2, Duration: 45, Course: sqlCourse},
	}

	days := DailyActivity(sessions)
	if len(days) != 2 {
		t.Fatalf("expected 2 day buckets, got %d", len(days))
	}

	// Ascending by date.
	if days[0].Date != "2026-08-29" || days[1].Date != "2026-08-30" {
		t.Errorf("unexpected ordering: %s, %s", days[0].Date, days[1].Date)
	}
	if days[0].TotalTime != 50 || days[0].SessionCount != 2 {
		t.Errorf("day1: expected 50 minutes over 2 sessions, got %d/%d", days[0].TotalTime, days[0].SessionCount)
	}
	if len(days[0].Courses) != 1 || days[0].Courses[0] != "Go Basics" {
		t.Errorf("day1: duplicate course titles must collapse, got %v", days[0].Courses)
	}
}

func TestCategoryTotals(t *testing.T) {
	goCourse := &model.Course{Title: "Go Basics", Category: "Programming"}
	sqlCourse := &model.Course{Title: "SQL Fundamentals", Category: "Databases"}

	sessions := []model.LearningSession{
		{Duration: 30, Course: goCourse},
		{Duration: 20, Course: goCourse},
		{Duration: 45, Course: sqlCourse},
		{Duration: 10}, // no preloaded course, skipped
	}

	totals := CategoryTotals(sessions)
	if len(totals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(totals))
	}
	if totals["Programming"].TotalTime != 50 || totals["Programming"].SessionCount != 2 {
		t.Errorf("unexpected Programming bucket: %+v", totals["Programming"])
	}
	if totals["Databases"].TotalTime != 45 {
		t.Errorf("unexpected Databases bucket: %+v", totals["Databases"])
	}
}

func TestTotalMinutes(t *testing.T) {
	sessions := []model.LearningSession{
		{Duration: 30},
		{Duration: 45},
		{Duration: 0},
	}
	if got := TotalMinutes(sessions); got != 75 {
		t.Errorf("expected 75, got %d", got)
	}
}
