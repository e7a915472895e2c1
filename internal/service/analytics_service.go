package service

import (
	"time"

	"learnhub_backend/internal/calculator"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
)

type AnalyticsService struct {
	UserRepo        *repository.UserRepository
	CourseRepo      *repository.CourseRepository
	ProgressRepo    *repository.ProgressRepository
	SessionRepo     *repository.SessionRepository
	AssignmentRepo  *repository.AssignmentRepository
	SubmissionRepo  *repository.SubmissionRepository
	AchievementRepo *repository.AchievementRepository
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.ProgressRepository,
	sessionRepo *repository.SessionRepository,
	assignmentRepo *repository.AssignmentRepository,
	submissionRepo *repository.SubmissionRepository,
	achievementRepo *repository.AchievementRepository,
) *AnalyticsService {
	return &AnalyticsService{
		UserRepo:        userRepo,
		CourseRepo:      courseRepo,
		ProgressRepo:    progressRepo,
		SessionRepo:     sessionRepo,
		AssignmentRepo:  assignmentRepo,
		SubmissionRepo:  submissionRepo,
		AchievementRepo: achievementRepo,
	}
}

type CourseSummary struct {
	CourseID             uint   `json:"courseId"`
	Title                string `json:"title"`
	CompletionPercentage int    `json:"completionPercentage"`
	IsCompleted          bool   `json:"isCompleted"`
	TotalTimeSpent       int    `json:"totalTimeSpent"`
}

type UpcomingDeadline struct {
	AssignmentID uint      `json:"assignmentId"`
	CourseID     uint      `json:"courseId"`
	Title        string    `json:"title"`
	DueDate      time.Time `json:"dueDate"`
}

type Dashboard struct {
	EnrolledCourses    int                      `json:"enrolledCourses"`
	CompletedCourses   int                      `json:"completedCourses"`
	CurrentStreak      int                      `json:"currentStreak"`
	LongestStreak      int                      `json:"longestStreak"`
	TotalLearningHours int                      `json:"totalLearningHours"`
	WeeklyMinutes      int                      `json:"weeklyMinutes"`
	TotalPoints        int64                    `json:"totalPoints"`
	Courses            []CourseSummary          `json:"courses"`
	RecentSessions     []model.LearningSession  `json:"recentSessions"`
	UpcomingDeadlines  []UpcomingDeadline       `json:"upcomingDeadlines"`
	RecentAchievements []model.Achievement      `json:"recentAchievements"`
	DailyActivity      []calculator.DayActivity `json:"dailyActivity"`
}

func (s *AnalyticsService) Dashboard(userID uint) (*Dashboard, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	progressList, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	recentSessions, err := s.SessionRepo.FindByUserSince(userID, weekAgo)
	if err != nil {
		return nil, err
	}

	achievements, err := s.AchievementRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if len(achievements) > 5 {
		achievements = achievements[:5]
	}

	points, err := s.AchievementRepo.UserPoints(userID)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		CurrentStreak:      user.CurrentStreak,
		LongestStreak:      user.LongestStreak,
		TotalLearningHours: user.TotalLearningHours,
		TotalPoints:        points,
		WeeklyMinutes:      calculator.TotalMinutes(recentSessions),
		RecentSessions:     recentSessions,
		RecentAchievements: achievements,
		DailyActivity:      calculator.DailyActivity(recentSessions),
	}

	now := time.Now()
	for _, p := range progressList {
		d.EnrolledCourses++
		if p.IsCompleted {
			d.CompletedCourses++
		}

		summary := CourseSummary{
			CourseID:             p.CourseID,
			CompletionPercentage: p.CompletionPercentage,
			IsCompleted:          p.IsCompleted,
			TotalTimeSpent:       p.TotalTimeSpent,
		}
		if p.Course != nil {
			summary.Title = p.Course.Title
		}
		d.Courses = append(d.Courses, summary)

		if p.IsCompleted {
			continue
		}
		assignments, err := s.AssignmentRepo.FindByCourse(p.CourseID)
		if err != nil {
			continue
		}
		for _, a := range assignments {
			if a.DueDate == nil || a.DueDate.Before(now) {
				continue
			}
			d.UpcomingDeadlines = append(d.UpcomingDeadlines, UpcomingDeadline{
				AssignmentID: a.ID,
				CourseID:     a.CourseID,
				Title:        a.Title,
				DueDate:      *a.DueDate,
			})
		}
	}

	return d, nil
}

type PerformanceMetrics struct {
	AverageGrade       float64 `json:"averageGrade"`
	GradedSubmissions  int     `json:"gradedSubmissions"`
	PassedSubmissions  int     `json:"passedSubmissions"`
	AverageSessionTime float64 `json:"averageSessionTime"` // minutes
	TotalSessions      int     `json:"totalSessions"`
}

type LearningReport struct {
	PeriodDays       int                                    `json:"periodDays"`
	TotalMinutes     int                                    `json:"totalMinutes"`
	CompletedCourses []CourseSummary                        `json:"completedCourses"`
	DailyActivity    []calculator.DayActivity               `json:"dailyActivity"`
	ByCategory       map[string]calculator.CategoryActivity `json:"byCategory"`
	Performance      PerformanceMetrics                     `json:"performance"`
}

// Learning summarizes a user's activity over the trailing period, optionally
// restricted to one course.
func (s *AnalyticsService) Learning(userID uint, periodDays int, courseID uint) (*LearningReport, error) {
	switch periodDays {
	case 7, 30, 90:
	default:
		periodDays = 30
	}

	since := time.Now().AddDate(0, 0, -periodDays)
	sessions, err := s.SessionRepo.FindByUserSince(userID, since)
	if err != nil {
		return nil, err
	}

	if courseID != 0 {
		filtered := sessions[:0]
		for _, sess := range sessions {
			if sess.CourseID == courseID {
				filtered = append(filtered, sess)
			}
		}
		sessions = filtered
	}

	report := &LearningReport{
		PeriodDays:    periodDays,
		TotalMinutes:  calculator.TotalMinutes(sessions),
		DailyActivity: calculator.DailyActivity(sessions),
		ByCategory:    calculator.CategoryTotals(sessions),
	}

	completed, err := s.ProgressRepo.FindCompletedByUser(userID)
	if err != nil {
		return nil, err
	}
	for _, p := range completed {
		if courseID != 0 && p.CourseID != courseID {
			continue
		}
		summary := CourseSummary{
			CourseID:             p.CourseID,
			CompletionPercentage: p.CompletionPercentage,
			IsCompleted:          true,
			TotalTimeSpent:       p.TotalTimeSpent,
		}
		if p.Course != nil {
			summary.Title = p.Course.Title
		}
		report.CompletedCourses = append(report.CompletedCourses, summary)
	}

	report.Performance.TotalSessions = len(sessions)
	if len(sessions) > 0 {
		report.Performance.AverageSessionTime = float64(report.TotalMinutes) / float64(len(sessions))
	}

	submissions, err := s.SubmissionRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	var gradeSum float64
	for _, sub := range submissions {
		if sub.Status != model.SubmissionGraded || sub.GradedAt == nil || sub.GradedAt.Before(since) {
			continue
		}
		if courseID != 0 && (sub.Assignment == nil || sub.Assignment.CourseID != courseID) {
			continue
		}
		report.Performance.GradedSubmissions++
		gradeSum += float64(sub.Percentage)
		if sub.Passed {
			report.Performance.PassedSubmissions++
		}
	}
	if report.Performance.GradedSubmissions > 0 {
		report.Performance.AverageGrade = gradeSum / float64(report.Performance.GradedSubmissions)
	}

	return report, nil
}

type InstructorCourseStats struct {
	CourseID          uint    `json:"courseId"`
	Title             string  `json:"title"`
	EnrollmentCount   int64   `json:"enrollmentCount"`
	CompletedCount    int64   `json:"completedCount"`
	CompletionRate    float64 `json:"completionRate"`
	AverageGrade      float64 `json:"averageGrade"`
	GradedEnrollments int     `json:"gradedEnrollments"`
}

// Instructor reports per-course enrollment and outcome stats for the
// instructor's own courses.
func (s *AnalyticsService) Instructor(instructorID uint) ([]InstructorCourseStats, error) {
	courses, err := s.CourseRepo.FindByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	stats := make([]InstructorCourseStats, 0, len(courses))
	for _, course := range courses {
		entry := InstructorCourseStats{
			CourseID: course.ID,
			Title:    course.Title,
		}

		enrolled, err := s.ProgressRepo.CountByCourse(course.ID)
		if err != nil {
			return nil, err
		}
		entry.EnrollmentCount = enrolled

		progressList, err := s.ProgressRepo.FindByCourse(course.ID)
		if err != nil {
			return nil, err
		}

		var gradeSum float64
		for _, p := range progressList {
			if p.IsCompleted {
				entry.CompletedCount++
			}
			if p.Grade != nil {
				gradeSum += *p.Grade
				entry.GradedEnrollments++
			}
		}
		if enrolled > 0 {
			entry.CompletionRate = float64(entry.CompletedCount) / float64(enrolled) * 100
		}
		if entry.GradedEnrollments > 0 {
			entry.AverageGrade = gradeSum / float64(entry.GradedEnrollments)
		}

		stats = append(stats, entry)
	}

	return stats, nil
}

type SystemReport struct {
	TotalUsers       int64          `json:"totalUsers"`
	ActiveUsers      int64          `json:"activeUsers"` // seen in last 7 days
	TotalCourses     int64          `json:"totalCourses"`
	TotalEnrollments int64          `json:"totalEnrollments"`
	CompletedCourses int64          `json:"completedCourses"`
	CompletionRate   float64        `json:"completionRate"`
	SessionsThisWeek int64          `json:"sessionsThisWeek"`
	CoursesByCategory map[string]int64 `json:"coursesByCategory"`
}

// System is the admin-wide platform report.
func (s *AnalyticsService) System() (*SystemReport, error) {
	report := &SystemReport{CoursesByCategory: map[string]int64{}}
	var err error

	if report.TotalUsers, err = s.UserRepo.Count(); err != nil {
		return nil, err
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	if report.ActiveUsers, err = s.UserRepo.CountActiveSince(weekAgo); err != nil {
		return nil, err
	}
	if report.TotalCourses, err = s.CourseRepo.Count(); err != nil {
		return nil, err
	}
	if report.TotalEnrollments, err = s.ProgressRepo.Count(); err != nil {
		return nil, err
	}
	if report.CompletedCourses, err = s.ProgressRepo.CountCompleted(); err != nil {
		return nil, err
	}
	if report.TotalEnrollments > 0 {
		report.CompletionRate = float64(report.CompletedCourses) / float64(report.TotalEnrollments) * 100
	}
	if report.SessionsThisWeek, err = s.SessionRepo.CountSince(weekAgo); err != nil {
		return nil, err
	}

	byCategory, err := s.CourseRepo.CountByCategory()
	if err != nil {
		return nil, err
	}
	report.CoursesByCategory = byCategory

	return report, nil
}
