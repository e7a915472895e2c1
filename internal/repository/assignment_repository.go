package repository

import (
	"learnhub_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) FindByCourse(courseID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("module_index, created_at").
		Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Assignment{}).
		Where("id = ?", id).
		Update("is_active", false).
		Error
}

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Preload("Assignment").First(&submission, id).Error
	return &submission, err
}

func (r *SubmissionRepository) Update(submission *model.Submission) error {
	return r.DB.Save(submission).Error
}

func (r *SubmissionRepository) FindByAssignmentAndUser(assignmentID, userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).
		Order("attempt_number").
		Find(&submissions).Error
	return submissions, err
}

// CountAttempts counts submitted or graded attempts; drafts do not consume
// an attempt.
func (r *SubmissionRepository) CountAttempts(assignmentID, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("assignment_id = ? AND user_id = ? AND status IN ?",
			assignmentID, userID,
			[]model.SubmissionStatus{model.SubmissionSubmitted, model.SubmissionGraded}).
		Count(&count).Error
	return count, err
}

// FindGradedByAssignment returns every graded submission for class stats,
// keeping only the best attempt per student.
func (r *SubmissionRepository) FindGradedByAssignment(assignmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("assignment_id = ? AND status = ?", assignmentID, model.SubmissionGraded).
		Order("user_id, percentage DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	best := make([]model.Submission, 0, len(submissions))
	seen := make(map[uint]bool)
	for _, s := range submissions {
		if seen[s.UserID] {
			continue
		}
		seen[s.UserID] = true
		best = append(best, s)
	}
	return best, nil
}

// FindBestGradedByCourseAndUser returns, per assignment in the course, the
// user's best graded submission.
func (r *SubmissionRepository) FindBestGradedByCourseAndUser(courseID, userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Where("assignments.course_id = ? AND submissions.user_id = ? AND submissions.status = ?",
			courseID, userID, model.SubmissionGraded).
		Order("submissions.assignment_id, submissions.percentage DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	best := make([]model.Submission, 0, len(submissions))
	seen := make(map[uint]bool)
	for _, s := range submissions {
		if seen[s.AssignmentID] {
			continue
		}
		seen[s.AssignmentID] = true
		best = append(best, s)
	}
	return best, nil
}

func (r *SubmissionRepository) FindPendingByAssignment(assignmentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Preload("User").
		Where("assignment_id = ? AND status = ?", assignmentID, model.SubmissionSubmitted).
		Order("submitted_at").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByUser(userID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Preload("Assignment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&submissions).Error
	return submissions, err
}
