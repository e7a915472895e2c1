package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter narrows the catalog listing. Zero values mean no filter.
type CourseFilter struct {
	Category   string
	Difficulty string
	Search     string
	Page       int
	Limit      int
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) List(filter CourseFilter) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("is_active = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		query = query.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var courses []model.Course
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) FindByInstructor(instructorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Save(course).Error
}

// Deactivate soft-disables a course instead of deleting it so existing
// enrollments keep resolving.
func (r *CourseRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}

func (r *CourseRepository) IncrementEnrollment(id uint) error {
	return r.DB.Model(&model.Course{}).
		Where("id = ?", id).
		Update("enrollment_count", gorm.Expr("enrollment_count + 1")).
		Error
}

func (r *CourseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// CountByCategory groups active courses by category.
func (r *CourseRepository) CountByCategory() (map[string]int64, error) {
	type row struct {
		Category string
		Count    int64
	}
	var rows []row
	err := r.DB.Model(&model.Course{}).
		Select("category, COUNT(*) AS count").
		Where("is_active = ?", true).
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Category] = r.Count
	}
	return counts, nil
}

// Categories returns the distinct active categories for catalog filters.
func (r *CourseRepository) Categories() ([]string, error) {
	var categories []string
	err := r.DB.Model(&model.Course{}).
		Where("is_active = ?", true).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
