package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

func courseIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("courseId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return 0, false
	}
	return uint(id), true
}

// GetCourseProgress godoc
// @Summary Get progress for one enrolled course
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 200 {object} util.Response{data=model.LearningProgress} "Success"
// @Failure 404 {object} util.Response "Not enrolled"
// @Router /api/progress/course/{courseId} [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetByUserAndCourse(claims.UserID, courseID)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "Not enrolled in this course")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

type ModuleCompletionRequest struct {
	ModuleIndex int `json:"moduleIndex"`
	TimeSpent   int `json:"timeSpent"` // minutes
}

// CompleteModule godoc
// @Summary Mark a syllabus module as completed
// @Description Idempotent per module index; finishing the last module completes the course
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Param   body body ModuleCompletionRequest true "Module completion"
// @Success 200 {object} util.Response{data=service.ModuleCompletionResult} "Success"
// @Failure 400 {object} util.Response "Invalid module index"
// @Failure 404 {object} util.Response "Not enrolled"
// @Router /api/progress/course/{courseId}/module [put]
func (c *ProgressController) CompleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	var req ModuleCompletionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.CompleteModule(claims.UserID, courseID, req.ModuleIndex, req.TimeSpent)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotEnrolled):
			util.NotFound(ctx, "Not enrolled in this course")
		case errors.Is(err, util.ErrInvalidModuleIndex):
			util.BadRequest(ctx, "module index out of range")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// AddBookmark godoc
// @Summary Add a bookmark to a course
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Param   body body service.BookmarkInput true "Bookmark"
// @Success 201 {object} util.Response{data=model.LearningProgress} "Created"
// @Router /api/progress/course/{courseId}/bookmark [post]
func (c *ProgressController) AddBookmark(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	var input service.BookmarkInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.AddBookmark(claims.UserID, courseID, input)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "Not enrolled in this course")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, progress)
}

// RemoveBookmark godoc
// @Summary Remove a bookmark
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Param   bookmarkId path string true "Bookmark ID"
// @Success 200 {object} util.Response{data=model.LearningProgress} "Success"
// @Router /api/progress/course/{courseId}/bookmark/{bookmarkId} [delete]
func (c *ProgressController) RemoveBookmark(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.RemoveBookmark(claims.UserID, courseID, ctx.Param("bookmarkId"))
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "Not enrolled in this course")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

// UpdateNotes godoc
// @Summary Replace the course notes
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Param   body body NotesRequest true "Notes"
// @Success 200 {object} util.Response{data=model.LearningProgress} "Success"
// @Router /api/progress/course/{courseId}/notes [put]
func (c *ProgressController) UpdateNotes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	var req NotesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateNotes(claims.UserID, courseID, req.Notes)
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "Not enrolled in this course")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// StartSession godoc
// @Summary Start a learning session
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SessionInput true "Session"
// @Success 201 {object} util.Response{data=model.LearningSession} "Created"
// @Failure 404 {object} util.Response "Not enrolled"
// @Router /api/progress/session/start [post]
func (c *ProgressController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var input service.SessionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.ProgressService.StartSession(claims.UserID, input, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		if errors.Is(err, util.ErrNotEnrolled) {
			util.NotFound(ctx, "Not enrolled in this course")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, session)
}

// EndSession godoc
// @Summary End a learning session
// @Description Derives duration, refreshes streak stats and evaluates achievements
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   sessionId path int true "Session ID"
// @Param   body body service.SessionEndInput true "Session wrap-up"
// @Success 200 {object} util.Response{data=service.SessionEndResult} "Success"
// @Failure 403 {object} util.Response "Not the session owner"
// @Failure 404 {object} util.Response "Session not found"
// @Failure 409 {object} util.Response "Session already ended"
// @Router /api/progress/session/{sessionId}/end [put]
func (c *ProgressController) EndSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("sessionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var input service.SessionEndInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.EndSession(claims.UserID, uint(sessionID), input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Not your session")
		case errors.Is(err, util.ErrSessionClosed):
			util.Error(ctx, 409, "Session already ended")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Session not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// SessionHistory godoc
// @Summary List recent learning sessions
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "Trailing window in days"
// @Param   courseId query int false "Restrict to one course"
// @Success 200 {object} util.Response{data=[]model.LearningSession} "Success"
// @Router /api/progress/sessions [get]
func (c *ProgressController) SessionHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "30"))
	courseID, _ := strconv.ParseUint(ctx.Query("courseId"), 10, 32)
	sessions, err := c.ProgressService.SessionHistory(claims.UserID, days, uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sessions)
}

// ActiveSession godoc
// @Summary Get the caller's open learning session
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.LearningSession} "Success"
// @Failure 404 {object} util.Response "No open session"
// @Router /api/progress/session/active [get]
func (c *ProgressController) ActiveSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	session, err := c.ProgressService.ActiveSession(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "No active session")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, session)
}
