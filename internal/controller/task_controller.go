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

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// List godoc
// @Summary List personal learning tasks
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Param   completed query bool false "Filter by completion"
// @Success 200 {object} util.Response{data=[]model.Task} "Success"
// @Router /api/tasks [get]
func (c *TaskController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var completed *bool
	if raw := ctx.Query("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			util.BadRequest(ctx, "completed must be a boolean")
			return
		}
		completed = &v
	}

	tasks, err := c.TaskService.List(claims.UserID, completed)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// ListByCategory godoc
// @Summary List tasks in one category
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Param   category path string true "Category"
// @Success 200 {object} util.Response{data=[]model.Task} "Success"
// @Router /api/tasks/category/{category} [get]
func (c *TaskController) ListByCategory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	tasks, err := c.TaskService.ListByCategory(claims.UserID, ctx.Param("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tasks)
}

// Create godoc
// @Summary Create a personal learning task
// @Tags tasks
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body model.Task true "Task"
// @Success 201 {object} util.Response{data=model.Task} "Created"
// @Router /api/tasks [post]
func (c *TaskController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var task model.Task
	if err := ctx.ShouldBindJSON(&task); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if task.Title == "" {
		util.BadRequest(ctx, "title is required")
		return
	}
	task.UserID = claims.UserID

	if err := c.TaskService.Create(&task); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, task)
}

// Update godoc
// @Summary Update a task
// @Description Completing a task with skills listed may unlock achievements
// @Tags tasks
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Task ID"
// @Param   body body service.TaskUpdate true "Fields to change"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Router /api/tasks/{id} [put]
func (c *TaskController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	var update service.TaskUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, unlocked, err := c.TaskService.Update(uint(id), claims.UserID, update)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Not your task")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Task not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{
		"task":            task,
		"newAchievements": unlocked,
	})
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Task ID"
// @Success 200 {object} util.Response "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Router /api/tasks/{id} [delete]
func (c *TaskController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid task id")
		return
	}

	if err := c.TaskService.Delete(uint(id), claims.UserID); err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Not your task")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Task not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// Analytics godoc
// @Summary Personal task analytics
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.TaskAnalytics} "Success"
// @Router /api/tasks/analytics [get]
func (c *TaskController) Analytics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	analytics, err := c.TaskService.Analytics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}
