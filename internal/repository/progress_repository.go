package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) Create(progress *model.LearningProgress) error {
	return r.DB.Create(progress).Error
}

func (r *ProgressRepository) FindByUserAndCourse(userID, courseID uint) (*model.LearningProgress, error) {
	var progress model.LearningProgress
	err := r.DB.Preload("Course").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	return &progress, err
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.LearningProgress, error) {
	var list []model.LearningProgress
	err := r.DB.Preload("Course").
		Where("user_id = ?", userID).
		Order("last_access_date DESC").
		Find(&list).Error
	return list, err
}

func (r *ProgressRepository) FindCompletedByUser(userID uint) ([]model.LearningProgress, error) {
	var list []model.LearningProgress
	err := r.DB.Preload("Course").
		Where("user_id = ? AND is_completed = ?", userID, true).
		Order("completion_date DESC").
		Find(&list).Error
	return list, err
}

func (r *ProgressRepository) FindByCourse(courseID uint) ([]model.LearningProgress, error) {
	var list []model.LearningProgress
	err := r.DB.Where("course_id = ?", courseID).Find(&list).Error
	return list, err
}

func (r *ProgressRepository) Update(progress *model.LearningProgress) error {
	return r.DB.Save(progress).Error
}

func (r *ProgressRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompletedByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).
		Where("user_id = ? AND is_completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountCompleted() (int64, error) {
	var count int64
	err := r.DB.Model(&model.LearningProgress{}).
		Where("is_completed = ?", true).
		Count(&count).Error
	return count, err
}
