package calculator

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func sessionOn(t time.Time, minutes int) model.LearningSession {
	return model.LearningSession{SessionDate: t, Duration: minutes}
}

func TestStreaks_Contiguous(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now, 30),
		sessionOn(now.AddDate(0, 0, -1), 45),
		sessionOn(now.AddDate(0, 0, -2), 20),
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 3 {
		t.Errorf("expected current streak 3, got %d", res.CurrentStreak)
	}
	if res.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", res.LongestStreak)
	}
}

func TestStreaks_StartsYesterday(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now.AddDate(0, 0, -1), 30),
		sessionOn(now.AddDate(0, 0, -2), 30),
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 2 {
		t.Errorf("a streak ending yesterday is still current, got %d", res.CurrentStreak)
	}
}

func TestStreaks_SingleDayGapTolerated(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now, 30),
		sessionOn(now.AddDate(0, 0, -2), 30), // one-day gap, walk continues
		sessionOn(now.AddDate(0, 0, -3), 30),
		sessionOn(now.AddDate(0, 0, -4), 30),
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 4 {
		t.Errorf("expected current streak 4, got %d", res.CurrentStreak)
	}
	// Longest only counts strictly adjacent days.
	if res.LongestStreak != 3 {
		t.Errorf("expected longest streak 3, got %d", res.LongestStreak)
	}
}

func TestStreaks_TwoDayGapBreaks(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now, 30),
		sessionOn(now.AddDate(0, 0, -3), 30),
		sessionOn(now.AddDate(0, 0, -4), 30),
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 1 {
		t.Errorf("expected current streak 1, got %d", res.CurrentStreak)
	}
	if res.LongestStreak != 2 {
		t.Errorf("expected longest streak 2, got %d", res.LongestStreak)
	}
}

func TestStreaks_StaleHistory(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now.AddDate(0, 0, -5), 30),
		sessionOn(now.AddDate(0, 0, -6), 30),
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 0 {
		t.Errorf("history older than yesterday yields no current streak, got %d", res.CurrentStreak)
	}
	if res.LongestStreak != 2 {
		t.Errorf("expected longest streak 2, got %d", res.LongestStreak)
	}
}

func TestStreaks_ZeroDurationIgnored(t *testing.T) {
	now := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now, 0), // abandoned session
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 0 || res.LongestStreak != 0 {
		t.Errorf("zero-duration sessions must not count: %+v", res)
	}
}

func TestStreaks_MultipleSessionsSameDay(t *testing.T) {
	now := time.Date(2026, 8, 31, 22, 0, 0, 0, time.UTC)
	sessions := []model.LearningSession{
		sessionOn(now.Add(-1*time.Hour), 30),
		sessionOn(now.Add(-5*time.Hour), 15),
		sessionOn(now.AddDate(0, 0, -1), 30),
	}

	res := Streaks(sessions, now)
	if res.CurrentStreak != 2 {
		t.Errorf("same-day sessions collapse to one date, expected 2, got %d", res.CurrentStreak)
	}
}

func TestStreaks_Empty(t *testing.T) {
	res := Streaks(nil, time.Now())
	if res.CurrentStreak != 0 || res.LongestStreak != 0 {
		t.Errorf("expected zero result, got %+v", res)
	}
}
