package service

import (
	"time"

	"learnhub_backend/internal/calculator"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	SessionRepo  *repository.SessionRepository
	ProgressRepo *repository.ProgressRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	progressRepo *repository.ProgressRepository,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		SessionRepo:  sessionRepo,
		ProgressRepo: progressRepo,
	}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	return s.UserRepo.FindByID(userID)
}

// ProfileUpdate carries the mutable profile fields. Pointers distinguish
// "not sent" from zero values.
type ProfileUpdate struct {
	Name                  *string           `json:"name"`
	University            *string           `json:"university"`
	Address               *string           `json:"address"`
	LearningGoals         *model.StringList `json:"learningGoals"`
	SkillTags             *model.StringList `json:"skillTags"`
	PreferredLearningTime *string           `json:"preferredLearningTime"`
	LearningPace          *string           `json:"learningPace"`
	NotificationsEnabled  *bool             `json:"notificationsEnabled"`
}

func (s *UserService) UpdateProfile(userID uint, update ProfileUpdate) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.University != nil {
		user.University = *update.University
	}
	if update.Address != nil {
		user.Address = *update.Address
	}
	if update.LearningGoals != nil {
		user.LearningGoals = *update.LearningGoals
	}
	if update.SkillTags != nil {
		user.SkillTags = *update.SkillTags
	}
	if update.PreferredLearningTime != nil {
		user.PreferredLearningTime = *update.PreferredLearningTime
	}
	if update.LearningPace != nil {
		user.LearningPace = *update.LearningPace
	}
	if update.NotificationsEnabled != nil {
		user.NotificationsEnabled = *update.NotificationsEnabled
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RefreshStats recomputes the derived learning fields from session history
// and persists them. Returns the updated streak numbers.
func (s *UserService) RefreshStats(userID uint) (calculator.StreakResult, error) {
	sessions, err := s.SessionRepo.FindByUser(userID)
	if err != nil {
		return calculator.StreakResult{}, err
	}

	now := time.Now()
	streaks := calculator.Streaks(sessions, now)
	totalHours := calculator.TotalMinutes(sessions) / 60

	var lastLearning *time.Time
	for _, sess := range sessions {
		if sess.Duration <= 0 {
			continue
		}
		if lastLearning == nil || sess.SessionDate.After(*lastLearning) {
			d := sess.SessionDate
			lastLearning = &d
		}
	}

	err = s.UserRepo.UpdateStats(userID, totalHours, streaks.CurrentStreak, streaks.LongestStreak, lastLearning)
	return streaks, err
}

// EnrollmentCounts returns the user's enrolled and completed course counts.
func (s *UserService) EnrollmentCounts(userID uint) (enrolled, completed int64, err error) {
	if enrolled, err = s.ProgressRepo.CountByUser(userID); err != nil {
		return 0, 0, err
	}
	if completed, err = s.ProgressRepo.CountCompletedByUser(userID); err != nil {
		return 0, 0, err
	}
	return enrolled, completed, nil
}
