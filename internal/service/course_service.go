package service

import (
	"errors"
	"time"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	UserRepo     *repository.UserRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	userRepo *repository.UserRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		UserRepo:     userRepo,
	}
}

func (s *CourseService) List(filter repository.CourseFilter) ([]model.Course, int64, error) {
	return s.CourseRepo.List(filter)
}

func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	return s.CourseRepo.FindByID(id)
}

func (s *CourseService) Categories() ([]string, error) {
	return s.CourseRepo.Categories()
}

// Create snapshots the instructor onto the course row so listings never join.
func (s *CourseService) Create(course *model.Course, instructorID uint) error {
	instructor, err := s.UserRepo.FindByID(instructorID)
	if err != nil {
		return err
	}

	course.InstructorID = instructor.ID
	course.InstructorName = instructor.Name
	course.InstructorEmail = instructor.Email
	course.IsActive = true
	return s.CourseRepo.Create(course)
}

// Update applies changes after an ownership check. Admins may edit any course.
func (s *CourseService) Update(course *model.Course, actorID uint, actorRole model.UserRole) error {
	existing, err := s.CourseRepo.FindByID(course.ID)
	if err != nil {
		return err
	}
	if actorRole != model.Admin && existing.InstructorID != actorID {
		return util.ErrNotOwner
	}

	// Instructor snapshot and counters are not client-writable.
	course.InstructorID = existing.InstructorID
	course.InstructorName = existing.InstructorName
	course.InstructorEmail = existing.InstructorEmail
	course.EnrollmentCount = existing.EnrollmentCount
	course.Rating = existing.Rating
	course.RatingCount = existing.RatingCount
	course.CreatedAt = existing.CreatedAt
	return s.CourseRepo.Update(course)
}

func (s *CourseService) Deactivate(courseID, actorID uint, actorRole model.UserRole) error {
	existing, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if actorRole != model.Admin && existing.InstructorID != actorID {
		return util.ErrNotOwner
	}
	return s.CourseRepo.Deactivate(courseID)
}

// Enroll creates the progress row for (user, course). Re-enrollment returns
// ErrAlreadyEnrolled; the unique index backs the check against races.
func (s *CourseService) Enroll(userID, courseID uint) (*model.LearningProgress, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, gorm.ErrRecordNotFound
	}

	_, err = s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err == nil {
		return nil, util.ErrAlreadyEnrolled
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	progress := &model.LearningProgress{
		UserID:         userID,
		CourseID:       courseID,
		EnrollmentDate: now,
		LastAccessDate: now,
	}
	if err := s.ProgressRepo.Create(progress); err != nil {
		return nil, err
	}

	if err := s.CourseRepo.IncrementEnrollment(courseID); err != nil {
		return nil, err
	}

	progress.Course = course
	return progress, nil
}

func (s *CourseService) FindByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.FindByInstructor(instructorID)
}
