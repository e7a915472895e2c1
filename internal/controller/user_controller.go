package controller

import (
	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// UpdateProfile godoc
// @Summary Update the current user's profile
// @Tags users
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProfileUpdate true "Fields to change"
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.ProfileUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateProfile(claims.UserID, update)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// GetStats godoc
// @Summary Get the current user's learning stats
// @Description Recomputes streaks and learning hours from session history
// @Tags users
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "Success"
// @Router /api/profile/stats [get]
func (c *UserController) GetStats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	streaks, err := c.UserService.RefreshStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	enrolled, completed, err := c.UserService.EnrollmentCounts(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"currentStreak":      streaks.CurrentStreak,
		"longestStreak":      streaks.LongestStreak,
		"totalLearningHours": user.TotalLearningHours,
		"lastLearningDate":   user.LastLearningDate,
		"enrolledCourses":    enrolled,
		"completedCourses":   completed,
	})
}
