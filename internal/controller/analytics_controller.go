package controller

import (
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// Dashboard godoc
// @Summary Learner dashboard
// @Description Progress summary, recent sessions, upcoming deadlines and streaks
// @Tags analytics
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard} "Success"
// @Router /api/analytics/dashboard [get]
func (c *AnalyticsController) Dashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.AnalyticsService.Dashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, dashboard)
}

// Learning godoc
// @Summary Learning activity report
// @Tags analytics
// @Produce  json
// @Security ApiKeyAuth
// @Param   period query int false "Trailing window in days (7, 30 or 90)"
// @Param   courseId query int false "Restrict to one course"
// @Success 200 {object} util.Response{data=service.LearningReport} "Success"
// @Router /api/analytics/learning [get]
func (c *AnalyticsController) Learning(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	period, _ := strconv.Atoi(ctx.DefaultQuery("period", "30"))
	courseID, _ := strconv.ParseUint(ctx.Query("courseId"), 10, 32)

	report, err := c.AnalyticsService.Learning(claims.UserID, period, uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// Instructor godoc
// @Summary Instructor course statistics
// @Tags analytics
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.InstructorCourseStats} "Success"
// @Router /api/analytics/instructor [get]
func (c *AnalyticsController) Instructor(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.AnalyticsService.Instructor(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// System godoc
// @Summary Platform-wide statistics
// @Tags analytics
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.SystemReport} "Success"
// @Router /api/analytics/system [get]
func (c *AnalyticsController) System(ctx *gin.Context) {
	report, err := c.AnalyticsService.System()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
