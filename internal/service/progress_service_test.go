package service

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"
)

func TestApplyModuleCompletion(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	progress := &model.LearningProgress{}

	done := applyModuleCompletion(progress, 4, 0, 30, now)
	if done {
		t.Error("first of four modules should not complete the course")
	}
	if progress.TotalTimeSpent != 30 {
		t.Errorf("expected 30 minutes recorded, got %d", progress.TotalTimeSpent)
	}
	if progress.CurrentModule != 1 {
		t.Errorf("expected current module 1, got %d", progress.CurrentModule)
	}
	if progress.CompletionPercentage != 25 {
		t.Errorf("expected 25%% completion, got %d", progress.CompletionPercentage)
	}
}

func TestApplyModuleCompletion_RevisitAccumulatesTime(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	progress := &model.LearningProgress{}

	applyModuleCompletion(progress, 4, 0, 30, now)
	applyModuleCompletion(progress, 4, 0, 20, now.Add(time.Hour))

	if len(progress.ModulesCompleted) != 1 {
		t.Errorf("module should only be recorded once, got %d entries", len(progress.ModulesCompleted))
	}
	if progress.TotalTimeSpent != 50 {
		t.Errorf("expected revisit time to accumulate to 50, got %d", progress.TotalTimeSpent)
	}
	if progress.CompletionPercentage != 25 {
		t.Errorf("expected completion to stay at 25%%, got %d", progress.CompletionPercentage)
	}
}

func TestApplyModuleCompletion_FinalModuleCompletesCourse(t *testing.T) {
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	progress := &model.LearningProgress{}

	for i := 0; i < 3; i++ {
		if applyModuleCompletion(progress, 4, i, 15, now) {
			t.Fatalf("module %d should not complete the course", i)
		}
	}
	if !applyModuleCompletion(progress, 4, 3, 15, now) {
		t.Error("final module should complete the course")
	}
	if !progress.IsCompleted || progress.CompletionDate == nil {
		t.Error("expected completion state and date to be set")
	}

	// Completing again must not re-trigger course completion.
	if applyModuleCompletion(progress, 4, 3, 10, now) {
		t.Error("re-completion must not report the course completed again")
	}
	if progress.TotalTimeSpent != 70 {
		t.Errorf("expected 70 minutes total, got %d", progress.TotalTimeSpent)
	}
}
