package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.LearningSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.LearningSession, error) {
	var session model.LearningSession
	err := r.DB.First(&session, id).Error
	return &session, err
}

func (r *SessionRepository) Update(session *model.LearningSession) error {
	return r.DB.Save(session).Error
}

// FindActiveByUser returns the user's open session, if any. One open session
// per user at a time; the newest wins when stale rows linger.
func (r *SessionRepository) FindActiveByUser(userID uint) (*model.LearningSession, error) {
	var session model.LearningSession
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Order("start_time DESC").
		First(&session).Error
	return &session, err
}

// CloseStaleByUser force-ends any open sessions for the user. Each row goes
// through Save so the duration hook fires on the way out.
func (r *SessionRepository) CloseStaleByUser(userID uint, endTime time.Time) error {
	var stale []model.LearningSession
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).
		Find(&stale).Error
	if err != nil {
		return err
	}

	for i := range stale {
		end := endTime
		stale[i].IsActive = false
		stale[i].EndTime = &end
		if err := r.DB.Save(&stale[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *SessionRepository) FindByUser(userID uint) ([]model.LearningSession, error) {
	var sessions []model.LearningSession
	err := r.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("session_date DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindByUserSince(userID uint, since time.Time) ([]model.LearningSession, error) {
	var sessions []model.LearningSession
	err := r.DB.Preload("Course").
		Where("user_id = ? AND session_date >= ?", userID, since).
		Order("session_date DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *SessionRepository) FindByUserAndCourse(userID, courseID uint) ([]model.LearningSession, error) {
	var sessions []model.LearningSession
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("session_date DESC").
		Find(&sessions).Error
	return sessions, err
}

// TotalMinutesByUser sums completed session durations.
func (r *SessionRepository) TotalMinutesByUser(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.LearningSession{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(duration), 0)").
		Scan(&total).Error
	return total, err
}

func (r *SessionRepository) CountSince(cutoff time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningSession{}).
		Where("session_date >= ?", cutoff).
		Count(&count).Error
	return count, err
}
