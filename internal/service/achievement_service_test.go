package service

import (
	"errors"
	"testing"

	"learnhub_backend/internal/model"
	"learnhub_backend/pkg/logger"

	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

type fakeAchievementStore struct {
	created  []model.Achievement
	failNext error
}

func (f *fakeAchievementStore) Exists(userID uint, t model.AchievementType, courseID uint, criteriaKey string) (bool, error) {
	if f.failNext != nil {
		return false, f.failNext
	}
	for _, a := range f.created {
		if a.UserID == userID && a.Type == t && a.CourseID == courseID && a.Criteria.Key(a.Type) == criteriaKey {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAchievementStore) Create(a *model.Achievement) error {
	if f.failNext != nil {
		return f.failNext
	}
	f.created = append(f.created, *a)
	return nil
}

type fakeCompletionCounter struct {
	count int64
	err   error
}

func (f *fakeCompletionCounter) CountCompletedByUser(userID uint) (int64, error) {
	return f.count, f.err
}

func newEngine(store *fakeAchievementStore, counter *fakeCompletionCounter) *AchievementService {
	return &AchievementService{store: store, counter: counter}
}

func TestOnCourseCompleted_FirstCourse(t *testing.T) {
	store := &fakeAchievementStore{}
	engine := newEngine(store, &fakeCompletionCounter{count: 1})

	grade := 88.0
	unlocked := engine.OnCourseCompleted(1, 10, "Go Basics", &grade)

	if len(unlocked) != 1 {
		t.Fatalf("expected 1 achievement, got %d", len(unlocked))
	}
	if unlocked[0].Type != model.AchievementFirstCourse {
		t.Errorf("expected first_course, got %s", unlocked[0].Type)
	}
	if unlocked[0].Points != 50 {
		t.Errorf("expected 50 points, got %d", unlocked[0].Points)
	}
}

func TestOnCourseCompleted_Milestone(t *testing.T) {
	cases := []struct {
		count  int64
		points int
		rarity model.Rarity
	}{
		{5, 50, model.RarityUncommon},
		{10, 100, model.RarityRare},
		{25, 250, model.RarityEpic},
		{50, 500, model.RarityLegendary},
	}

	for _, c := range cases {
		store := &fakeAchievementStore{}
		engine := newEngine(store, &fakeCompletionCounter{count: c.count})

		unlocked := engine.OnCourseCompleted(1, 10, "Go Basics", nil)
		if len(unlocked) != 1 {
			t.Fatalf("count %d: expected 1 achievement, got %d", c.count, len(unlocked))
		}
		if unlocked[0].Points != c.points {
			t.Errorf("count %d: expected %d points, got %d", c.count, c.points, unlocked[0].Points)
		}
		if unlocked[0].Rarity != c.rarity {
			t.Errorf("count %d: expected rarity %s, got %s", c.count, c.rarity, unlocked[0].Rarity)
		}
	}
}

func TestOnCourseCompleted_NoMilestoneBetween(t *testing.T) {
	engine := newEngine(&fakeAchievementStore{}, &fakeCompletionCounter{count: 7})

	unlocked := engine.OnCourseCompleted(1, 10, "Go Basics", nil)
	if len(unlocked) != 0 {
		t.Errorf("7 completions is no milestone, got %d awards", len(unlocked))
	}
}

func TestOnCourseCompleted_GradeExcellence(t *testing.T) {
	store := &fakeAchievementStore{}
	engine := newEngine(store, &fakeCompletionCounter{count: 3})

	grade := 95.0
	unlocked := engine.OnCourseCompleted(1, 10, "Go Basics", &grade)

	if len(unlocked) != 1 {
		t.Fatalf("expected 1 achievement, got %d", len(unlocked))
	}
	a := unlocked[0]
	if a.Type != model.AchievementGradeExcellence || a.Points != 100 || a.Rarity != model.RarityRare {
		t.Errorf("unexpected grade excellence award: %+v", a)
	}

	// Same course again: deduplicated.
	again := engine.OnCourseCompleted(1, 10, "Go Basics", &grade)
	if len(again) != 0 {
		t.Errorf("duplicate grade excellence must not re-award, got %d", len(again))
	}
}

func TestOnCourseCompleted_BelowExcellenceThreshold(t *testing.T) {
	engine := newEngine(&fakeAchievementStore{}, &fakeCompletionCounter{count: 2})

	grade := 94.9
	if unlocked := engine.OnCourseCompleted(1, 10, "Go Basics", &grade); len(unlocked) != 0 {
		t.Errorf("94.9%% is below the excellence threshold, got %d awards", len(unlocked))
	}
}

func TestOnCourseCompleted_StoreFailureSwallowed(t *testing.T) {
	store := &fakeAchievementStore{failNext: errors.New("db down")}
	engine := newEngine(store, &fakeCompletionCounter{count: 1})

	grade := 99.0
	unlocked := engine.OnCourseCompleted(1, 10, "Go Basics", &grade)
	if len(unlocked) != 0 {
		t.Errorf("store failures must yield no awards, got %d", len(unlocked))
	}
}

func TestOnSessionEnded_StreakExactMatchOnly(t *testing.T) {
	store := &fakeAchievementStore{}
	engine := newEngine(store, &fakeCompletionCounter{})

	unlocked := engine.OnSessionEnded(1, 7, 0)
	if len(unlocked) != 1 {
		t.Fatalf("expected 1 streak achievement, got %d", len(unlocked))
	}
	if unlocked[0].Points != 35 {
		t.Errorf("expected 35 points for a 7-day streak, got %d", unlocked[0].Points)
	}

	// Day 8 is not a milestone.
	if again := engine.OnSessionEnded(1, 8, 0); len(again) != 0 {
		t.Errorf("streak 8 is no milestone, got %d awards", len(again))
	}

	// Re-hitting 7 after a break does not re-award.
	if again := engine.OnSessionEnded(1, 7, 0); len(again) != 0 {
		t.Errorf("streak milestone must award once, got %d", len(again))
	}
}

func TestOnSessionEnded_HourMilestonesCatchUp(t *testing.T) {
	store := &fakeAchievementStore{}
	engine := newEngine(store, &fakeCompletionCounter{})

	unlocked := engine.OnSessionEnded(1, 0, 30)
	if len(unlocked) != 2 {
		t.Fatalf("30 hours crosses 10 and 25, got %d awards", len(unlocked))
	}
	if unlocked[0].Points != 20 || unlocked[1].Points != 50 {
		t.Errorf("expected 20 and 50 points, got %d and %d", unlocked[0].Points, unlocked[1].Points)
	}

	// Next session with no new threshold crossed.
	if again := engine.OnSessionEnded(1, 0, 40); len(again) != 0 {
		t.Errorf("no new threshold crossed, got %d awards", len(again))
	}
}

func TestOnSkillMastered(t *testing.T) {
	store := &fakeAchievementStore{}
	engine := newEngine(store, &fakeCompletionCounter{})

	a := engine.OnSkillMastered(1, "Go")
	if a == nil {
		t.Fatal("expected an award")
	}
	if a.Points != 75 || a.Rarity != model.RarityRare {
		t.Errorf("unexpected skill mastery award: %+v", a)
	}

	if again := engine.OnSkillMastered(1, "Go"); again != nil {
		t.Error("same skill must award once")
	}
	if other := engine.OnSkillMastered(1, "SQL"); other == nil {
		t.Error("a different skill is a separate achievement")
	}
	if empty := engine.OnSkillMastered(1, ""); empty != nil {
		t.Error("empty skill names award nothing")
	}
}
