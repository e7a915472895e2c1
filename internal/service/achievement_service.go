package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Milestone tables, ordered ascending. Course and streak milestones fire on
// an exact match; hour milestones catch up on every crossed threshold.
var (
	courseMilestones = []int{5, 10, 25, 50, 100}
	streakMilestones = []int{3, 7, 14, 30, 60, 100}
	hourMilestones   = []int{10, 25, 50, 100, 250, 500, 1000}
)

const leaderboardCacheTTL = 5 * time.Minute

// Narrow store interfaces so the rule engine can run against fakes in tests.
type achievementStore interface {
	Exists(userID uint, t model.AchievementType, courseID uint, criteriaKey string) (bool, error)
	Create(a *model.Achievement) error
}

type completionCounter interface {
	CountCompletedByUser(userID uint) (int64, error)
}

type AchievementService struct {
	AchievementRepo *repository.AchievementRepository
	ProgressRepo    *repository.ProgressRepository
	UserRepo        *repository.UserRepository
	Storage         *StorageService
	Redis           *redis.Client

	store   achievementStore
	counter completionCounter
}

func NewAchievementService(
	achievementRepo *repository.AchievementRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
	storage *StorageService,
	rdb *redis.Client,
) *AchievementService {
	return &AchievementService{
		AchievementRepo: achievementRepo,
		ProgressRepo:    progressRepo,
		UserRepo:        userRepo,
		Storage:         storage,
		Redis:           rdb,
		store:           achievementRepo,
		counter:         progressRepo,
	}
}

func (s *AchievementService) ListByUser(userID uint) ([]model.Achievement, error) {
	return s.AchievementRepo.FindByUser(userID)
}

func (s *AchievementService) GetByID(id uint) (*model.Achievement, error) {
	return s.AchievementRepo.FindByID(id)
}

// unlock inserts if the identity is new. Duplicate-key errors from the unique
// index are treated as already unlocked, not as failures.
func (s *AchievementService) unlock(a *model.Achievement) bool {
	exists, err := s.store.Exists(a.UserID, a.Type, a.CourseID, a.Criteria.Key(a.Type))
	if err != nil {
		s.backgroundFailure("achievement_exists", a.UserID, err)
		return false
	}
	if exists {
		return false
	}

	if err := s.store.Create(a); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return false
		}
		s.backgroundFailure("achievement_create", a.UserID, err)
		return false
	}

	monitoring.AchievementsUnlocked.WithLabelValues(string(a.Type)).Inc()
	logger.Log.Info("achievement unlocked",
		zap.Uint("userId", a.UserID),
		zap.String("type", string(a.Type)),
		zap.String("title", a.Title),
		zap.Int("points", a.Points),
	)
	return true
}

func (s *AchievementService) backgroundFailure(operation string, userID uint, err error) {
	monitoring.BackgroundFailures.WithLabelValues(operation).Inc()
	logger.Log.Error("best-effort operation failed",
		zap.String("operation", operation),
		zap.Uint("userId", userID),
		zap.Error(err),
	)
}

// OnCourseCompleted evaluates completion-triggered rules. Never returns an
// error: achievement evaluation must not fail the operation that fired it.
func (s *AchievementService) OnCourseCompleted(userID, courseID uint, courseTitle string, grade *float64) []model.Achievement {
	var unlocked []model.Achievement

	completed, err := s.counter.CountCompletedByUser(userID)
	if err != nil {
		s.backgroundFailure("count_completed", userID, err)
		return nil
	}
	n := int(completed)

	if n == 1 {
		a := &model.Achievement{
			UserID:      userID,
			Type:        model.AchievementFirstCourse,
			CourseID:    courseID,
			Title:       "First Steps",
			Description: fmt.Sprintf("Completed your first course: %s", courseTitle),
			Icon:        "🎓",
			Rarity:      model.RarityCommon,
			Points:      50,
		}
		if s.unlock(a) {
			unlocked = append(unlocked, *a)
		}
	}

	for _, m := range courseMilestones {
		if n != m {
			continue
		}
		a := &model.Achievement{
			UserID:      userID,
			Type:        model.AchievementCourseCompletion,
			Title:       fmt.Sprintf("Course Champion: %d Courses", m),
			Description: fmt.Sprintf("Completed %d courses", m),
			Icon:        "🏆",
			Criteria:    model.Criteria{CoursesCompleted: m},
			Rarity:      milestoneRarity(m, 10, 25, 50),
			Points:      m * 10,
		}
		if s.unlock(a) {
			unlocked = append(unlocked, *a)
		}
	}

	if grade != nil && *grade >= 95 {
		a := &model.Achievement{
			UserID:      userID,
			Type:        model.AchievementGradeExcellence,
			CourseID:    courseID,
			Title:       "Academic Excellence",
			Description: fmt.Sprintf("Scored %.1f%% in %s", *grade, courseTitle),
			Icon:        "⭐",
			Criteria:    model.Criteria{CourseGrade: *grade},
			Rarity:      model.RarityRare,
			Points:      100,
		}
		if s.unlock(a) {
			unlocked = append(unlocked, *a)
		}
	}

	return unlocked
}

// OnSessionEnded evaluates streak and learning-time rules after a session
// closes. Best effort, like OnCourseCompleted.
func (s *AchievementService) OnSessionEnded(userID uint, currentStreak, totalHours int) []model.Achievement {
	var unlocked []model.Achievement

	// A streak unlock only fires on the day the milestone is hit.
	for _, m := range streakMilestones {
		if currentStreak != m {
			continue
		}
		a := &model.Achievement{
			UserID:      userID,
			Type:        model.AchievementStreak,
			Title:       fmt.Sprintf("%d-Day Streak", m),
			Description: fmt.Sprintf("Learned %d days in a row", m),
			Icon:        "🔥",
			Criteria:    model.Criteria{StreakDays: m},
			Rarity:      milestoneRarity(m, 14, 30, 60),
			Points:      m * 5,
		}
		if s.unlock(a) {
			unlocked = append(unlocked, *a)
		}
		break
	}

	for _, m := range hourMilestones {
		if totalHours < m {
			break
		}
		a := &model.Achievement{
			UserID:      userID,
			Type:        model.AchievementTimeMilestone,
			Title:       fmt.Sprintf("%d Hours of Learning", m),
			Description: fmt.Sprintf("Accumulated %d hours of learning time", m),
			Icon:        "⏰",
			Criteria:    model.Criteria{HoursLearned: m},
			Rarity:      milestoneRarity(m, 100, 250, 500),
			Points:      m * 2,
		}
		if s.unlock(a) {
			unlocked = append(unlocked, *a)
		}
	}

	return unlocked
}

// OnSkillMastered awards a one-time achievement per skill name.
func (s *AchievementService) OnSkillMastered(userID uint, skill string) *model.Achievement {
	if skill == "" {
		return nil
	}
	a := &model.Achievement{
		UserID:      userID,
		Type:        model.AchievementSkillMastery,
		Title:       fmt.Sprintf("Skill Mastered: %s", skill),
		Description: fmt.Sprintf("Demonstrated mastery of %s", skill),
		Icon:        "💡",
		Criteria:    model.Criteria{SkillName: skill},
		Rarity:      model.RarityRare,
		Points:      75,
	}
	if s.unlock(a) {
		return a
	}
	return nil
}

func milestoneRarity(m, rare, epic, legendary int) model.Rarity {
	switch {
	case m >= legendary:
		return model.RarityLegendary
	case m >= epic:
		return model.RarityEpic
	case m >= rare:
		return model.RarityRare
	default:
		return model.RarityUncommon
	}
}

// Share marks an achievement as shared and fills its share URL.
func (s *AchievementService) Share(userID, achievementID uint, baseURL string) (*model.Achievement, error) {
	a, err := s.AchievementRepo.FindByID(achievementID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, util.ErrNotOwner
	}

	now := time.Now()
	a.SharedAt = &now
	a.ShareURL = fmt.Sprintf("%s/achievements/%d", baseURL, a.ID)
	if err := s.AchievementRepo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// IssueCertificate creates the per-course completion certificate. The course
// must be completed and not already certified.
func (s *AchievementService) IssueCertificate(ctx context.Context, userID, courseID uint) (*model.Achievement, error) {
	progress, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}
	if !progress.IsCompleted {
		return nil, util.ErrCourseNotCompleted
	}
	if progress.CertificateIssued {
		return nil, util.ErrCertificateIssued
	}

	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	courseTitle := ""
	if progress.Course != nil {
		courseTitle = progress.Course.Title
	}

	certID := util.GenerateCertificateID()
	code := util.GenerateVerificationCode()
	issued := time.Now()

	certURL, err := s.Storage.UploadCertificate(ctx, certID, CertificateDocument{
		CertificateID:    certID,
		VerificationCode: code,
		StudentName:      user.Name,
		CourseTitle:      courseTitle,
		Grade:            progress.Grade,
		IssueDate:        issued,
	})
	if err != nil {
		return nil, err
	}

	grade := 0.0
	if progress.Grade != nil {
		grade = *progress.Grade
	}

	a := &model.Achievement{
		UserID:      userID,
		Type:        model.AchievementCourseCompletion,
		CourseID:    courseID,
		Title:       fmt.Sprintf("Certificate: %s", courseTitle),
		Description: fmt.Sprintf("Earned a certificate of completion for %s with a grade of %.1f%%", courseTitle, grade),
		Icon:        "📜",
		Certificate: model.Certificate{
			CertificateID:    certID,
			CertificateURL:   certURL,
			IssueDate:        &issued,
			VerificationCode: code,
		},
		CertificateID:    certID,
		VerificationCode: code,
		Rarity:           model.RarityUncommon,
		Points:           25,
	}
	if err := s.AchievementRepo.Create(a); err != nil {
		if repository.IsDuplicateKeyError(err) {
			return nil, util.ErrCertificateIssued
		}
		return nil, err
	}

	progress.CertificateIssued = true
	progress.CertificateID = certID
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}

	return a, nil
}

type CertificateVerification struct {
	Valid         bool       `json:"valid"`
	CertificateID string     `json:"certificateId"`
	StudentName   string     `json:"studentName,omitempty"`
	CourseTitle   string     `json:"courseTitle,omitempty"`
	IssueDate     *time.Time `json:"issueDate,omitempty"`
}

// VerifyCertificate resolves a certificate ID, optionally checking the
// verification code when supplied.
func (s *AchievementService) VerifyCertificate(certificateID, code string) (*CertificateVerification, error) {
	a, err := s.AchievementRepo.FindByCertificateID(certificateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CertificateVerification{Valid: false, CertificateID: certificateID}, nil
		}
		return nil, err
	}

	if code != "" && code != a.VerificationCode {
		return &CertificateVerification{Valid: false, CertificateID: certificateID}, nil
	}

	result := &CertificateVerification{
		Valid:         true,
		CertificateID: certificateID,
		IssueDate:     a.Certificate.IssueDate,
	}
	if a.User != nil {
		result.StudentName = a.User.Name
	}
	if a.Course != nil {
		result.CourseTitle = a.Course.Title
	}
	return result, nil
}

// Leaderboard ranks users by achievement points, cached in Redis.
func (s *AchievementService) Leaderboard(ctx context.Context, limit int) ([]repository.LeaderboardEntry, error) {
	cacheKey := fmt.Sprintf("leaderboard:achievements:%d", limit)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []repository.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	entries, err := s.AchievementRepo.Leaderboard(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL)
		}
	}
	return entries, nil
}
