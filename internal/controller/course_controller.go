package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CourseController struct {
	CourseService   *service.CourseService
	ProgressService *service.ProgressService
}

func NewCourseController(courseService *service.CourseService, progressService *service.ProgressService) *CourseController {
	return &CourseController{
		CourseService:   courseService,
		ProgressService: progressService,
	}
}

// List godoc
// @Summary List the course catalog
// @Tags courses
// @Produce  json
// @Param   category query string false "Category filter"
// @Param   difficulty query string false "Difficulty filter"
// @Param   search query string false "Title/description search"
// @Param   page query int false "Page number"
// @Param   limit query int false "Page size"
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	filter := repository.CourseFilter{
		Category:   ctx.Query("category"),
		Difficulty: ctx.Query("difficulty"),
		Search:     ctx.Query("search"),
		Page:       page,
		Limit:      limit,
	}

	courses, total, err := c.CourseService.List(filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Get one course
// @Tags courses
// @Produce  json
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [get]
func (c *CourseController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	course, err := c.CourseService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Attach the caller's own progress when a valid token was supplied.
	if claims := util.GetUserFromContext(ctx); claims != nil {
		if progress, err := c.ProgressService.GetByUserAndCourse(claims.UserID, course.ID); err == nil {
			course.Progress = progress
		}
	}

	util.Success(ctx, course)
}

// Categories godoc
// @Summary List the distinct course categories
// @Tags courses
// @Produce  json
// @Success 200 {object} util.Response{data=[]string} "Success"
// @Router /api/courses/categories [get]
func (c *CourseController) Categories(ctx *gin.Context) {
	categories, err := c.CourseService.Categories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, categories)
}

// Create godoc
// @Summary Create a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Course true "Course"
// @Success 201 {object} util.Response{data=model.Course} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if course.Title == "" || course.Category == "" || course.Difficulty == "" {
		util.BadRequest(ctx, "title, category and difficulty are required")
		return
	}

	if err := c.CourseService.Create(&course, claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// Update godoc
// @Summary Update a course
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Param   body body model.Course true "Course"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{id} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course.ID = uint(id)

	if err := c.CourseService.Update(&course, claims.UserID, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can edit this course")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, course)
}

// Delete godoc
// @Summary Deactivate a course
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/courses/{id} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	if err := c.CourseService.Deactivate(uint(id), claims.UserID, claims.Role); err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Only the course instructor can remove this course")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Course ID"
// @Success 201 {object} util.Response{data=model.LearningProgress} "Created"
// @Failure 404 {object} util.Response "Course not found"
// @Failure 409 {object} util.Response "Already enrolled"
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	progress, err := c.CourseService.Enroll(claims.UserID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.Error(ctx, 409, "Already enrolled in this course")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, progress)
}

// Teaching godoc
// @Summary List the courses the current instructor teaches
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Course} "Success"
// @Router /api/courses/teaching/my [get]
func (c *CourseController) Teaching(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	courses, err := c.CourseService.FindByInstructor(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// MyCourses godoc
// @Summary List the current user's enrollments
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.LearningProgress} "Success"
// @Router /api/courses/enrolled/my [get]
func (c *CourseController) MyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	list, err := c.ProgressService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}
