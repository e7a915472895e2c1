package repository

import (
	"errors"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type AchievementRepository struct {
	DB *gorm.DB
}

func NewAchievementRepository(db *gorm.DB) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

func (r *AchievementRepository) Create(achievement *model.Achievement) error {
	return r.DB.Create(achievement).Error
}

func (r *AchievementRepository) FindByID(id uint) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.First(&achievement, id).Error
	return &achievement, err
}

func (r *AchievementRepository) FindByUser(userID uint) ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := r.DB.Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&achievements).Error
	return achievements, err
}

func (r *AchievementRepository) Update(achievement *model.Achievement) error {
	return r.DB.Save(achievement).Error
}

// Exists checks the dedup identity before insert. The unique index is the
// backstop against races between the check and the create.
func (r *AchievementRepository) Exists(userID uint, t model.AchievementType, courseID uint, criteriaKey string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Achievement{}).
		Where("user_id = ? AND type = ? AND course_id = ? AND criteria_key = ?",
			userID, t, courseID, criteriaKey).
		Count(&count).Error
	return count > 0, err
}

func (r *AchievementRepository) FindByCertificateID(certificateID string) (*model.Achievement, error) {
	var achievement model.Achievement
	err := r.DB.Preload("User").Preload("Course").
		Where("certificate_id = ?", certificateID).
		First(&achievement).Error
	return &achievement, err
}

// UserPoints sums the achievement points for one user.
func (r *AchievementRepository) UserPoints(userID uint) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Achievement{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(points), 0)").
		Scan(&total).Error
	return total, err
}

type LeaderboardEntry struct {
	UserID           uint   `json:"userId"`
	Name             string `json:"name"`
	TotalPoints      int    `json:"totalPoints"`
	AchievementCount int    `json:"achievementCount"`
}

// Leaderboard ranks users by achievement points.
func (r *AchievementRepository) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var entries []LeaderboardEntry
	err := r.DB.Model(&model.Achievement{}).
		Select("achievements.user_id, users.name, SUM(achievements.points) AS total_points, COUNT(*) AS achievement_count").
		Joins("JOIN users ON users.id = achievements.user_id").
		Group("achievements.user_id, users.name").
		Order("total_points DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

// IsDuplicateKeyError reports a unique-index violation on create, which the
// rule engine treats as an already-unlocked achievement.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
