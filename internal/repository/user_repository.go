package repository

import (
	"time"

	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// UpdateStats writes the derived learning stats in one statement.
func (r *UserRepository) UpdateStats(userID uint, totalHours, currentStreak, longestStreak int, lastLearning *time.Time) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_learning_hours": totalHours,
			"current_streak":       currentStreak,
			"longest_streak":       longestStreak,
			"last_learning_date":   lastLearning,
		}).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).
		Error
}

func (r *UserRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}

// CountActiveSince counts users seen after the cutoff.
func (r *UserRepository) CountActiveSince(cutoff time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("last_seen > ?", cutoff).
		Count(&count).Error
	return count, err
}
