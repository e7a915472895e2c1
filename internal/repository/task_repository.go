package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(task *model.Task) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) FindByID(id uint) (*model.Task, error) {
	var task model.Task
	err := r.DB.First(&task, id).Error
	return &task, err
}

func (r *TaskRepository) FindByUser(userID uint, completed *bool) ([]model.Task, error) {
	query := r.DB.Where("user_id = ?", userID)
	if completed != nil {
		query = query.Where("completed = ?", *completed)
	}
	var tasks []model.Task
	err := query.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(task *model.Task) error {
	return r.DB.Save(task).Error
}

func (r *TaskRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Task{}, id).Error
}
