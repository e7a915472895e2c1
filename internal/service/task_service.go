package service

import (
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
)

type TaskService struct {
	TaskRepo     *repository.TaskRepository
	Achievements *AchievementService
}

func NewTaskService(taskRepo *repository.TaskRepository, achievements *AchievementService) *TaskService {
	return &TaskService{
		TaskRepo:     taskRepo,
		Achievements: achievements,
	}
}

func (s *TaskService) Create(task *model.Task) error {
	if task.Category == "" {
		task.Category = "General"
	}
	if task.Difficulty == "" {
		task.Difficulty = "Beginner"
	}
	if task.EstimatedTime <= 0 {
		task.EstimatedTime = 60
	}
	task.LastStudied = time.Now()
	return s.TaskRepo.Create(task)
}

func (s *TaskService) List(userID uint, completed *bool) ([]model.Task, error) {
	return s.TaskRepo.FindByUser(userID, completed)
}

func (s *TaskService) ListByCategory(userID uint, category string) ([]model.Task, error) {
	tasks, err := s.TaskRepo.FindByUser(userID, nil)
	if err != nil {
		return nil, err
	}
	filtered := tasks[:0]
	for _, t := range tasks {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

type TaskUpdate struct {
	Title         *string           `json:"title"`
	Description   *string           `json:"description"`
	Completed     *bool             `json:"completed"`
	Deadline      *time.Time        `json:"deadline"`
	Category      *string           `json:"category"`
	Difficulty    *string           `json:"difficulty"`
	Progress      *int              `json:"progress"`
	TimeSpent     *int              `json:"timeSpent"`
	EstimatedTime *int              `json:"estimatedTime"`
	Resources     *model.StringList `json:"resources"`
	Notes         *string           `json:"notes"`
	SkillsLearned *model.StringList `json:"skillsLearned"`
}

// Update applies partial changes. Completing a task with skills listed fires
// the skill mastery rule for each skill.
func (s *TaskService) Update(taskID, userID uint, update TaskUpdate) (*model.Task, []model.Achievement, error) {
	task, err := s.TaskRepo.FindByID(taskID)
	if err != nil {
		return nil, nil, err
	}
	if task.UserID != userID {
		return nil, nil, util.ErrNotOwner
	}

	wasCompleted := task.Completed

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
		if task.Completed {
			task.Progress = 100
		}
	}
	if update.Deadline != nil {
		task.Deadline = update.Deadline
	}
	if update.Category != nil {
		task.Category = *update.Category
	}
	if update.Difficulty != nil {
		task.Difficulty = *update.Difficulty
	}
	if update.Progress != nil {
		p := *update.Progress
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		task.Progress = p
	}
	if update.TimeSpent != nil {
		task.TimeSpent = *update.TimeSpent
	}
	if update.EstimatedTime != nil {
		task.EstimatedTime = *update.EstimatedTime
	}
	if update.Resources != nil {
		task.Resources = *update.Resources
	}
	if update.Notes != nil {
		task.Notes = *update.Notes
	}
	if update.SkillsLearned != nil {
		task.SkillsLearned = *update.SkillsLearned
	}
	task.LastStudied = time.Now()

	if err := s.TaskRepo.Update(task); err != nil {
		return nil, nil, err
	}

	var unlocked []model.Achievement
	if !wasCompleted && task.Completed {
		for _, skill := range task.SkillsLearned {
			if a := s.Achievements.OnSkillMastered(userID, skill); a != nil {
				unlocked = append(unlocked, *a)
			}
		}
	}

	return task, unlocked, nil
}

func (s *TaskService) Delete(taskID, userID uint) error {
	task, err := s.TaskRepo.FindByID(taskID)
	if err != nil {
		return err
	}
	if task.UserID != userID {
		return util.ErrNotOwner
	}
	return s.TaskRepo.Delete(taskID)
}

type TaskAnalytics struct {
	Total          int              `json:"total"`
	Completed      int              `json:"completed"`
	CompletionRate float64          `json:"completionRate"`
	TotalTimeSpent int              `json:"totalTimeSpent"` // minutes
	ByCategory     map[string]int   `json:"byCategory"`
	ByDifficulty   map[string]int   `json:"byDifficulty"`
	SkillsLearned  []string         `json:"skillsLearned"`
}

func (s *TaskService) Analytics(userID uint) (*TaskAnalytics, error) {
	tasks, err := s.TaskRepo.FindByUser(userID, nil)
	if err != nil {
		return nil, err
	}

	analytics := &TaskAnalytics{
		ByCategory:   map[string]int{},
		ByDifficulty: map[string]int{},
	}
	skills := make(map[string]bool)

	for _, t := range tasks {
		analytics.Total++
		if t.Completed {
			analytics.Completed++
		}
		analytics.TotalTimeSpent += t.TimeSpent
		analytics.ByCategory[t.Category]++
		analytics.ByDifficulty[t.Difficulty]++
		for _, skill := range t.SkillsLearned {
			if !skills[skill] {
				skills[skill] = true
				analytics.SkillsLearned = append(analytics.SkillsLearned, skill)
			}
		}
	}
	if analytics.Total > 0 {
		analytics.CompletionRate = float64(analytics.Completed) / float64(analytics.Total) * 100
	}

	return analytics, nil
}
