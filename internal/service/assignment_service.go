package service

import (
	"errors"
	"time"

	"learnhub_backend/internal/calculator"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	SubmissionRepo *repository.SubmissionRepository
	ProgressRepo   *repository.ProgressRepository
	CourseRepo     *repository.CourseRepository
	Achievements   *AchievementService
}

func NewAssignmentService(
	assignmentRepo *repository.AssignmentRepository,
	submissionRepo *repository.SubmissionRepository,
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	achievements *AchievementService,
) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		SubmissionRepo: submissionRepo,
		ProgressRepo:   progressRepo,
		CourseRepo:     courseRepo,
		Achievements:   achievements,
	}
}

func (s *AssignmentService) Create(assignment *model.Assignment, creatorID uint, creatorRole model.UserRole) error {
	course, err := s.CourseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return err
	}
	if creatorRole != model.Admin && course.InstructorID != creatorID {
		return util.ErrNotOwner
	}

	if assignment.Weight <= 0 {
		assignment.Weight = 1
	}
	if assignment.MaxAttempts <= 0 {
		assignment.MaxAttempts = 1
	}
	if assignment.TotalPoints <= 0 && len(assignment.Questions) > 0 {
		for _, q := range assignment.Questions {
			assignment.TotalPoints += q.Points
		}
	}
	assignment.CreatedBy = creatorID
	assignment.IsActive = true
	return s.AssignmentRepo.Create(assignment)
}

// Update edits an assignment's definition. The course binding and creator
// stay untouched; replacing the questions recomputes the point total.
func (s *AssignmentService) Update(assignment *model.Assignment, actorID uint, actorRole model.UserRole) (*model.Assignment, error) {
	existing, err := s.AssignmentRepo.FindByID(assignment.ID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(existing.CourseID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.Admin && course.InstructorID != actorID {
		return nil, util.ErrNotOwner
	}

	existing.Title = assignment.Title
	existing.Description = assignment.Description
	existing.Instructions = assignment.Instructions
	existing.DueDate = assignment.DueDate
	existing.TimeLimit = assignment.TimeLimit
	existing.ModuleIndex = assignment.ModuleIndex
	existing.PassingScore = assignment.PassingScore
	existing.AutoGrade = assignment.AutoGrade
	existing.ShowCorrectAnswers = assignment.ShowCorrectAnswers
	existing.ShuffleQuestions = assignment.ShuffleQuestions
	if assignment.MaxAttempts > 0 {
		existing.MaxAttempts = assignment.MaxAttempts
	}
	if assignment.Weight > 0 {
		existing.Weight = assignment.Weight
	}
	if len(assignment.Questions) > 0 {
		existing.Questions = assignment.Questions
		existing.TotalPoints = 0
		for _, q := range assignment.Questions {
			existing.TotalPoints += q.Points
		}
	}
	if len(assignment.Rubric) > 0 {
		existing.Rubric = assignment.Rubric
	}

	if err := s.AssignmentRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Deactivate hides an assignment from course listings without touching
// existing submissions.
func (s *AssignmentService) Deactivate(assignmentID, actorID uint, actorRole model.UserRole) error {
	existing, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return err
	}
	course, err := s.CourseRepo.FindByID(existing.CourseID)
	if err != nil {
		return err
	}
	if actorRole != model.Admin && course.InstructorID != actorID {
		return util.ErrNotOwner
	}
	return s.AssignmentRepo.Deactivate(assignmentID)
}

// GetForUser loads an assignment, hiding the answer key from students.
func (s *AssignmentService) GetForUser(assignmentID, userID uint, role model.UserRole) (*model.Assignment, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}

	if role == model.Student {
		s.stripAnswerKey(assignment)
	}
	return assignment, nil
}

func (s *AssignmentService) ListByCourse(courseID uint, role model.UserRole) ([]model.Assignment, error) {
	assignments, err := s.AssignmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}
	if role == model.Student {
		for i := range assignments {
			s.stripAnswerKey(&assignments[i])
		}
	}
	return assignments, nil
}

func (s *AssignmentService) stripAnswerKey(a *model.Assignment) {
	for i := range a.Questions {
		a.Questions[i].CorrectAnswer = ""
		a.Questions[i].Explanation = ""
	}
}

type SubmissionInput struct {
	Answers   []model.Answer `json:"answers"`
	Content   string         `json:"content"`
	TimeSpent int            `json:"timeSpent"`
}

// Submit records an attempt. The attempt cap is enforced against submitted
// and graded rows. Auto-gradable quizzes are scored immediately.
func (s *AssignmentService) Submit(assignmentID, userID uint, input SubmissionInput) (*model.Submission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.ProgressRepo.FindByUserAndCourse(userID, assignment.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	attempts, err := s.SubmissionRepo.CountAttempts(assignmentID, userID)
	if err != nil {
		return nil, err
	}
	if int(attempts) >= assignment.MaxAttempts {
		return nil, util.ErrMaxAttemptsExceeded
	}

	now := time.Now()
	submission := &model.Submission{
		AssignmentID:  assignmentID,
		UserID:        userID,
		AttemptNumber: int(attempts) + 1,
		Status:        model.SubmissionSubmitted,
		SubmittedAt:   &now,
		Answers:       input.Answers,
		Content:       input.Content,
		MaxScore:      assignment.TotalPoints,
		TimeSpent:     input.TimeSpent,
		StartedAt:     now,
	}

	if assignment.AutoGrade && assignment.Type == model.AssignmentQuiz {
		result := calculator.ScoreQuiz(assignment.Questions, input.Answers)

		manual := false
		for _, g := range result.GradedAnswers {
			if g.RequiresManual {
				manual = true
				break
			}
		}

		graded := make(model.Answers, len(result.GradedAnswers))
		for i, g := range result.GradedAnswers {
			graded[i] = model.Answer{
				QuestionIndex: g.QuestionIndex,
				Answer:        g.Answer,
				IsCorrect:     g.IsCorrect,
				PointsEarned:  g.PointsEarned,
			}
		}
		submission.Answers = graded
		submission.Score = result.Score
		submission.MaxScore = result.MaxScore

		// Essays hold the whole submission in "submitted" for manual review.
		if !manual {
			submission.Status = model.SubmissionGraded
			submission.GradedAt = &now
			submission.Passed = calculator.Passed(result.Score, result.MaxScore, assignment.PassingScore)
			monitoring.SubmissionsGraded.WithLabelValues("auto").Inc()
		}
	}

	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}

	if submission.Status == model.SubmissionGraded {
		s.refreshCourseGrade(userID, assignment.CourseID)
	}

	if !assignment.ShowCorrectAnswers {
		submission.Answers = nil
	}
	return submission, nil
}

type GradeInput struct {
	Score        float64            `json:"score"`
	Feedback     string             `json:"feedback"`
	RubricScores model.RubricScores `json:"rubricScores"`
}

// Grade applies a manual grade. Only the course instructor or an admin may
// grade; rubric scores, when present, override the flat score.
func (s *AssignmentService) Grade(submissionID, graderID uint, graderRole model.UserRole, input GradeInput) (*model.Submission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		return nil, err
	}

	assignment := submission.Assignment
	if assignment == nil {
		assignment, err = s.AssignmentRepo.FindByID(submission.AssignmentID)
		if err != nil {
			return nil, err
		}
	}

	course, err := s.CourseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if graderRole != model.Admin && course.InstructorID != graderID {
		return nil, util.ErrNotOwner
	}

	if len(input.RubricScores) > 0 {
		result := calculator.ScoreRubric(input.RubricScores)
		submission.Score = result.Score
		submission.MaxScore = result.MaxScore
		submission.RubricScores = input.RubricScores
	} else {
		submission.Score = input.Score
	}

	now := time.Now()
	submission.Status = model.SubmissionGraded
	submission.GradedAt = &now
	submission.GradedBy = &graderID
	submission.Feedback = input.Feedback
	submission.Passed = calculator.Passed(submission.Score, submission.MaxScore, assignment.PassingScore)

	if err := s.SubmissionRepo.Update(submission); err != nil {
		return nil, err
	}
	monitoring.SubmissionsGraded.WithLabelValues("manual").Inc()

	s.refreshCourseGrade(submission.UserID, assignment.CourseID)
	return submission, nil
}

// refreshCourseGrade recomputes the weighted course grade and persists it to
// the enrollment row. Best effort.
func (s *AssignmentService) refreshCourseGrade(userID, courseID uint) {
	grade, err := s.CourseGrade(userID, courseID)
	if err != nil {
		monitoring.BackgroundFailures.WithLabelValues("course_grade").Inc()
		logger.Log.Error("failed to recompute course grade",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.Error(err),
		)
		return
	}

	progress, err := s.ProgressRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return
	}
	pct := grade.Percentage
	progress.Grade = &pct
	if err := s.ProgressRepo.Update(progress); err != nil {
		monitoring.BackgroundFailures.WithLabelValues("course_grade").Inc()
		logger.Log.Error("failed to persist course grade",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.Error(err),
		)
	}
}

func (s *AssignmentService) Submissions(assignmentID, userID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByAssignmentAndUser(assignmentID, userID)
}

func (s *AssignmentService) PendingSubmissions(assignmentID, actorID uint, actorRole model.UserRole) ([]model.Submission, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.Admin && course.InstructorID != actorID {
		return nil, util.ErrNotOwner
	}
	return s.SubmissionRepo.FindPendingByAssignment(assignmentID)
}

type CourseGradeReport struct {
	calculator.WeightedGrade
	LetterGrade string  `json:"letterGrade"`
	GPA         float64 `json:"gpa"`
}

// CourseGrade folds the user's best graded submissions into the weighted
// course grade with its letter and GPA equivalents.
func (s *AssignmentService) CourseGrade(userID, courseID uint) (*CourseGradeReport, error) {
	assignments, err := s.AssignmentRepo.FindByCourse(courseID)
	if err != nil {
		return nil, err
	}

	submissions, err := s.SubmissionRepo.FindBestGradedByCourseAndUser(courseID, userID)
	if err != nil {
		return nil, err
	}

	weighted := calculator.WeightedCourseGrade(submissions, assignments)
	return &CourseGradeReport{
		WeightedGrade: weighted,
		LetterGrade:   calculator.LetterGrade(weighted.Percentage),
		GPA:           calculator.GPA(weighted.Percentage),
	}, nil
}

// ClassStats summarizes graded submissions for the instructor view.
func (s *AssignmentService) ClassStats(assignmentID, actorID uint, actorRole model.UserRole) (*calculator.ClassStats, error) {
	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(assignment.CourseID)
	if err != nil {
		return nil, err
	}
	if actorRole != model.Admin && course.InstructorID != actorID {
		return nil, util.ErrNotOwner
	}

	submissions, err := s.SubmissionRepo.FindGradedByAssignment(assignmentID)
	if err != nil {
		return nil, err
	}
	stats := calculator.ClassStatistics(submissions)
	return &stats, nil
}
