package model

import (
	"testing"
	"time"
)

func TestCriteriaKey(t *testing.T) {
	cases := []struct {
		name     string
		criteria Criteria
		typ      AchievementType
		want     string
	}{
		{"streak", Criteria{StreakDays: 7}, AchievementStreak, "streak:7"},
		{"hours", Criteria{HoursLearned: 25}, AchievementTimeMilestone, "hours:25"},
		{"course milestone", Criteria{CoursesCompleted: 10}, AchievementCourseCompletion, "courses:10"},
		{"single course completion", Criteria{}, AchievementCourseCompletion, ""},
		{"skill", Criteria{SkillName: "Go"}, AchievementSkillMastery, "skill:Go"},
		{"first course", Criteria{}, AchievementFirstCourse, ""},
		{"grade excellence", Criteria{CourseGrade: 97}, AchievementGradeExcellence, ""},
	}

	for _, c := range cases {
		if got := c.criteria.Key(c.typ); got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCompletedModulesContains(t *testing.T) {
	m := CompletedModules{
		{ModuleIndex: 0},
		{ModuleIndex: 2},
	}

	if !m.Contains(0) {
		t.Error("expected index 0 to be recorded")
	}
	if m.Contains(1) {
		t.Error("index 1 was never completed")
	}
	if (CompletedModules{}).Contains(0) {
		t.Error("empty set contains nothing")
	}
}

func TestLearningSessionDuration(t *testing.T) {
	start := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	end := start.Add(45 * time.Minute)
	s := LearningSession{StartTime: start, EndTime: &end}
	if err := s.BeforeSave(nil); err != nil {
		t.Fatal(err)
	}
	if s.Duration != 45 {
		t.Errorf("expected 45 minutes, got %d", s.Duration)
	}

	// Clock skew must not produce a negative duration.
	before := start.Add(-time.Minute)
	s = LearningSession{StartTime: start, EndTime: &before}
	if err := s.BeforeSave(nil); err != nil {
		t.Fatal(err)
	}
	if s.Duration != 0 {
		t.Errorf("expected 0 for an end before start, got %d", s.Duration)
	}

	// Open sessions keep a zero duration.
	s = LearningSession{StartTime: start}
	if err := s.BeforeSave(nil); err != nil {
		t.Fatal(err)
	}
	if s.Duration != 0 {
		t.Errorf("expected 0 for an open session, got %d", s.Duration)
	}

	// A stale session being force-closed gets its duration derived too.
	closedAt := start.Add(2 * time.Hour)
	s = LearningSession{StartTime: start, EndTime: &closedAt, IsActive: false}
	if err := s.BeforeSave(nil); err != nil {
		t.Fatal(err)
	}
	if s.Duration != 120 {
		t.Errorf("expected 120 minutes for a force-closed session, got %d", s.Duration)
	}
}

func TestSubmissionPercentage(t *testing.T) {
	cases := []struct {
		score    float64
		maxScore float64
		want     int
	}{
		{85, 100, 85},
		{2, 3, 67},
		{0, 100, 0},
		{10, 0, 0},
	}

	for _, c := range cases {
		s := Submission{Score: c.score, MaxScore: c.maxScore}
		if err := s.BeforeSave(nil); err != nil {
			t.Fatal(err)
		}
		if s.Percentage != c.want {
			t.Errorf("%v/%v: expected %d%%, got %d%%", c.score, c.maxScore, c.want, s.Percentage)
		}
	}
}
