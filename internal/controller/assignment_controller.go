package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
}

func NewAssignmentController(assignmentService *service.AssignmentService) *AssignmentController {
	return &AssignmentController{AssignmentService: assignmentService}
}

// ListByCourse godoc
// @Summary List a course's assignments
// @Description Answer keys are stripped for students
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=[]model.Assignment} "Success"
// @Router /api/assignments/course/{courseId} [get]
func (c *AssignmentController) ListByCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	assignments, err := c.AssignmentService.ListByCourse(courseID, claims.Role)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, assignments)
}

// Get godoc
// @Summary Get one assignment
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response{data=model.Assignment} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/assignments/{id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	assignment, err := c.AssignmentService.GetForUser(uint(id), claims.UserID, claims.Role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Assignment not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, assignment)
}

// Create godoc
// @Summary Create an assignment
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Assignment true "Assignment"
// @Success 201 {object} util.Response{data=model.Assignment} "Created"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/assignments [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var assignment model.Assignment
	if err := ctx.ShouldBindJSON(&assignment); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if assignment.CourseID == 0 || assignment.Title == "" || assignment.Type == "" {
		util.BadRequest(ctx, "courseId, title and type are required")
		return
	}

	if err := c.AssignmentService.Create(&assignment, claims.UserID, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can create assignments")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, assignment)
}

// Update godoc
// @Summary Update an assignment
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body model.Assignment true "Assignment"
// @Success 200 {object} util.Response{data=model.Assignment} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/assignments/{id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	var assignment model.Assignment
	if err := ctx.ShouldBindJSON(&assignment); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	assignment.ID = uint(id)

	updated, err := c.AssignmentService.Update(&assignment, claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can edit assignments")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Assignment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, updated)
}

// Delete godoc
// @Summary Deactivate an assignment
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/assignments/{id} [delete]
func (c *AssignmentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	if err := c.AssignmentService.Deactivate(uint(id), claims.UserID, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can remove assignments")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Assignment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Submit godoc
// @Summary Submit an assignment attempt
// @Description Quizzes with auto-grading are scored immediately
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Param   body body service.SubmissionInput true "Submission"
// @Success 201 {object} util.Response{data=model.Submission} "Created"
// @Failure 403 {object} util.Response "Attempt cap reached"
// @Failure 404 {object} util.Response "Not enrolled or assignment missing"
// @Router /api/assignments/{id}/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	var input service.SubmissionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssignmentService.Submit(uint(id), claims.UserID, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrMaxAttemptsExceeded):
			util.Forbidden(ctx, "Maximum attempts exceeded")
		case errors.Is(err, util.ErrNotEnrolled):
			util.NotFound(ctx, "Not enrolled in this course")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Assignment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, submission)
}

// MySubmissions godoc
// @Summary List the current user's attempts for one assignment
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response{data=[]model.Submission} "Success"
// @Router /api/assignments/{id}/submissions/my [get]
func (c *AssignmentController) MySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	submissions, err := c.AssignmentService.Submissions(uint(id), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}

// PendingSubmissions godoc
// @Summary List submissions awaiting manual grading
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response{data=[]model.Submission} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/assignments/{id}/submissions [get]
func (c *AssignmentController) PendingSubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	submissions, err := c.AssignmentService.PendingSubmissions(uint(id), claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can view submissions")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Assignment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submissions)
}

// Grade godoc
// @Summary Grade a submission manually
// @Tags assignments
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Submission ID"
// @Param   body body service.GradeInput true "Grade"
// @Success 200 {object} util.Response{data=model.Submission} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/assignments/submissions/{id}/grade [put]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid submission id")
		return
	}

	var input service.GradeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssignmentService.Grade(uint(id), claims.UserID, claims.Role, input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can grade submissions")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Submission not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submission)
}

// Statistics godoc
// @Summary Class statistics for one assignment
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Assignment ID"
// @Success 200 {object} util.Response{data=calculator.ClassStats} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/assignments/{id}/statistics [get]
func (c *AssignmentController) Statistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid assignment id")
		return
	}

	stats, err := c.AssignmentService.ClassStats(uint(id), claims.UserID, claims.Role)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can view statistics")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Assignment not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, stats)
}

// CourseGrade godoc
// @Summary Weighted course grade for the current user
// @Tags assignments
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=service.CourseGradeReport} "Success"
// @Router /api/assignments/course/{courseId}/grade [get]
func (c *AssignmentController) CourseGrade(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	grade, err := c.AssignmentService.CourseGrade(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, grade)
}
