package service

import (
	"errors"
	"time"

	"learnhub_backend/internal/calculator"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	SessionRepo  *repository.SessionRepository
	CourseRepo   *repository.CourseRepository
	UserService  *UserService
	Achievements *AchievementService
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	sessionRepo *repository.SessionRepository,
	courseRepo *repository.CourseRepository,
	userService *UserService,
	achievements *AchievementService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		SessionRepo:  sessionRepo,
		CourseRepo:   courseRepo,
		UserService:  userService,
		Achievements: achievements,
	}
}

func (s *ProgressService) ListByUser(userID uint) ([]model.LearningProgress, error) {
	return s.ProgressRepo.FindByUser(userID)
}

func (s *ProgressService) GetByUserAndCourse(userID, courseID uint) (*model.LearningProgress, error) {
	progress, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	return progress, nil
}

type ModuleCompletionResult struct {
	Progress        *model.LearningProgress `json:"progress"`
	CourseCompleted bool                    `json:"courseCompleted"`
	NewAchievements []model.Achievement     `json:"newAchievements,omitempty"`
}

// CompleteModule records one syllabus module as done. Idempotent per module
// index. Completing the final module marks the whole course completed and
// fires the achievement rules.
func (s *ProgressService) CompleteModule(userID, courseID uint, moduleIndex, timeSpent int) (*ModuleCompletionResult, error) {
	progress, err := s.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}

	totalModules := len(course.Syllabus)
	if moduleIndex < 0 || (totalModules > 0 && moduleIndex >= totalModules) {
		return nil, util.ErrInvalidModuleIndex
	}

	result := &ModuleCompletionResult{Progress: progress}
	result.CourseCompleted = applyModuleCompletion(progress, totalModules, moduleIndex, timeSpent, time.Now())

	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	if result.CourseCompleted {
		result.NewAchievements = s.Achievements.OnCourseCompleted(userID, courseID, course.Title, progress.Grade)
	}

	return result, nil
}

// applyModuleCompletion folds one module completion into the progress record
// and reports whether it finished the course. Time spent accumulates even
// when the module was already done; a revisit is still study time.
func applyModuleCompletion(progress *model.LearningProgress, totalModules, moduleIndex, timeSpent int, now time.Time) bool {
	if !progress.ModulesCompleted.Contains(moduleIndex) {
		progress.ModulesCompleted = append(progress.ModulesCompleted, model.CompletedModule{
			ModuleIndex: moduleIndex,
			CompletedAt: now,
			TimeSpent:   timeSpent,
		})
	}
	progress.TotalTimeSpent += timeSpent

	if moduleIndex+1 > progress.CurrentModule {
		progress.CurrentModule = moduleIndex + 1
	}
	progress.CompletionPercentage = calculator.CompletionPercentage(len(progress.ModulesCompleted), totalModules)
	progress.LastAccessDate = now

	if progress.CompletionPercentage >= 100 && !progress.IsCompleted {
		progress.IsCompleted = true
		progress.CompletionDate = &now
		return true
	}
	return false
}

type BookmarkInput struct {
	ModuleIndex int    `json:"moduleIndex"`
	Topic       string `json:"topic" binding:"required"`
	Note        string `json:"note"`
}

func (s *ProgressService) AddBookmark(userID, courseID uint, input BookmarkInput) (*model.LearningProgress, error) {
	progress, err := s.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	progress.Bookmarks = append(progress.Bookmarks, model.Bookmark{
		ID:          uuid.New().String(),
		ModuleIndex: input.ModuleIndex,
		Topic:       input.Topic,
		Note:        input.Note,
		CreatedAt:   time.Now(),
	})
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) RemoveBookmark(userID, courseID uint, bookmarkID string) (*model.LearningProgress, error) {
	progress, err := s.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}

	kept := progress.Bookmarks[:0]
	for _, b := range progress.Bookmarks {
		if b.ID != bookmarkID {
			kept = append(kept, b)
		}
	}
	progress.Bookmarks = kept

	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *ProgressService) UpdateNotes(userID, courseID uint, notes string) (*model.LearningProgress, error) {
	progress, err := s.GetByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, err
	}
	progress.Notes = notes
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

type SessionInput struct {
	CourseID    uint   `json:"courseId" binding:"required"`
	ModuleIndex *int   `json:"moduleIndex"`
	DeviceType  string `json:"deviceType"`
}

// StartSession opens a study sitting. Any stale open session for the user is
// force-closed first so one user never has two running clocks.
func (s *ProgressService) StartSession(userID uint, input SessionInput, ip, userAgent string) (*model.LearningSession, error) {
	if _, err := s.GetByUserAndCourse(userID, input.CourseID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.SessionRepo.CloseStaleByUser(userID, now); err != nil {
		return nil, err
	}

	deviceType := input.DeviceType
	if deviceType == "" {
		deviceType = "desktop"
	}

	session := &model.LearningSession{
		UserID:      userID,
		CourseID:    input.CourseID,
		SessionDate: now,
		StartTime:   now,
		ModuleIndex: input.ModuleIndex,
		IsActive:    true,
		DeviceType:  deviceType,
		IPAddress:   ip,
		UserAgent:   userAgent,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

type SessionEndInput struct {
	SessionQuality string `json:"sessionQuality"`
	SessionNotes   string `json:"sessionNotes"`
}

type SessionEndResult struct {
	Session         *model.LearningSession `json:"session"`
	CurrentStreak   int                    `json:"currentStreak"`
	LongestStreak   int                    `json:"longestStreak"`
	NewAchievements []model.Achievement    `json:"newAchievements,omitempty"`
}

// EndSession closes a sitting, refreshes the user's derived stats and runs
// the session achievement rules. Stat refresh failures are logged but do not
// fail the request.
func (s *ProgressService) EndSession(userID, sessionID uint, input SessionEndInput) (*SessionEndResult, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrNotOwner
	}
	if !session.IsActive {
		return nil, util.ErrSessionClosed
	}

	now := time.Now()
	session.EndTime = &now
	session.IsActive = false
	session.SessionQuality = input.SessionQuality
	session.SessionNotes = input.SessionNotes
	if err := s.SessionRepo.Update(session); err != nil {
		return nil, err
	}

	if session.Duration > 0 {
		if progress, err := s.GetByUserAndCourse(userID, session.CourseID); err == nil {
			progress.TotalTimeSpent += session.Duration
			progress.LastAccessDate = now
			if err := s.ProgressRepo.Update(progress); err != nil {
				monitoring.BackgroundFailures.WithLabelValues("progress_time_update").Inc()
				logger.Log.Error("failed to add session time to progress",
					zap.Uint("userId", userID),
					zap.Uint("sessionId", sessionID),
					zap.Error(err),
				)
			}
		}
	}

	result := &SessionEndResult{Session: session}

	streaks, err := s.UserService.RefreshStats(userID)
	if err != nil {
		monitoring.BackgroundFailures.WithLabelValues("stats_refresh").Inc()
		logger.Log.Error("failed to refresh user stats",
			zap.Uint("userId", userID),
			zap.Error(err),
		)
		return result, nil
	}
	result.CurrentStreak = streaks.CurrentStreak
	result.LongestStreak = streaks.LongestStreak

	totalMinutes, err := s.SessionRepo.TotalMinutesByUser(userID)
	if err != nil {
		monitoring.BackgroundFailures.WithLabelValues("total_minutes").Inc()
		logger.Log.Error("failed to total session minutes",
			zap.Uint("userId", userID),
			zap.Error(err),
		)
		return result, nil
	}

	result.NewAchievements = s.Achievements.OnSessionEnded(userID, streaks.CurrentStreak, int(totalMinutes/60))
	return result, nil
}

func (s *ProgressService) SessionHistory(userID uint, days int, courseID uint) ([]model.LearningSession, error) {
	if courseID != 0 {
		return s.SessionRepo.FindByUserAndCourse(userID, courseID)
	}
	if days <= 0 {
		return s.SessionRepo.FindByUser(userID)
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.SessionRepo.FindByUserSince(userID, since)
}

// ActiveSession returns the caller's open session.
func (s *ProgressService) ActiveSession(userID uint) (*model.LearningSession, error) {
	return s.SessionRepo.FindActiveByUser(userID)
}
