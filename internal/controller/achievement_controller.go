package controller

import (
	"errors"
	"strconv"

	"learnhub_backend/internal/service"
	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AchievementController struct {
	AchievementService *service.AchievementService
}

func NewAchievementController(achievementService *service.AchievementService) *AchievementController {
	return &AchievementController{AchievementService: achievementService}
}

// MyAchievements godoc
// @Summary List the current user's achievements
// @Tags achievements
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Achievement} "Success"
// @Router /api/achievements/my [get]
func (c *AchievementController) MyAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	achievements, err := c.AchievementService.ListByUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}

// Get godoc
// @Summary View a single achievement
// @Description Shared achievements are public; unshared ones only resolve for their owner
// @Tags achievements
// @Produce  json
// @Param   id path int true "Achievement ID"
// @Success 200 {object} util.Response{data=model.Achievement} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/achievements/{id} [get]
func (c *AchievementController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid achievement id")
		return
	}

	achievement, err := c.AchievementService.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx, "Achievement not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if achievement.SharedAt == nil {
		claims := util.GetUserFromContext(ctx)
		if claims == nil || claims.UserID != achievement.UserID {
			util.NotFound(ctx, "Achievement not found")
			return
		}
	}
	util.Success(ctx, achievement)
}

// Share godoc
// @Summary Mark an achievement as shared
// @Tags achievements
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Achievement ID"
// @Success 200 {object} util.Response{data=model.Achievement} "Success"
// @Failure 403 {object} util.Response "Not the owner"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/achievements/{id}/share [post]
func (c *AchievementController) Share(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid achievement id")
		return
	}

	baseURL := "https://" + ctx.Request.Host
	achievement, err := c.AchievementService.Share(claims.UserID, uint(id), baseURL)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotOwner):
			util.Forbidden(ctx, "Not your achievement")
		case errors.Is(err, gorm.ErrRecordNotFound):
			util.NotFound(ctx, "Achievement not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, achievement)
}

// IssueCertificate godoc
// @Summary Issue a completion certificate for a finished course
// @Tags achievements
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "Course ID"
// @Success 201 {object} util.Response{data=model.Achievement} "Created"
// @Failure 400 {object} util.Response "Certificate already issued"
// @Failure 404 {object} util.Response "Course not completed"
// @Router /api/achievements/certificates/course/{courseId} [post]
func (c *AchievementController) IssueCertificate(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	courseID, ok := courseIDParam(ctx)
	if !ok {
		return
	}

	achievement, err := c.AchievementService.IssueCertificate(ctx.Request.Context(), claims.UserID, courseID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCertificateIssued):
			util.BadRequest(ctx, "Certificate already issued")
		case errors.Is(err, util.ErrCourseNotCompleted), errors.Is(err, util.ErrNotEnrolled):
			util.NotFound(ctx, "Course not completed")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, achievement)
}

// Verify godoc
// @Summary Verify a certificate
// @Description Public endpoint; the verification code is optional
// @Tags achievements
// @Produce  json
// @Param   certificateId query string true "Certificate ID"
// @Param   verificationCode query string false "Verification code"
// @Success 200 {object} util.Response{data=service.CertificateVerification} "Success"
// @Router /api/achievements/verify [get]
func (c *AchievementController) Verify(ctx *gin.Context) {
	certificateID := ctx.Query("certificateId")
	if certificateID == "" {
		util.BadRequest(ctx, "certificateId is required")
		return
	}

	result, err := c.AchievementService.VerifyCertificate(certificateID, ctx.Query("verificationCode"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Leaderboard godoc
// @Summary Achievement points leaderboard
// @Tags achievements
// @Produce  json
// @Param   limit query int false "Number of entries"
// @Success 200 {object} util.Response{data=[]repository.LeaderboardEntry} "Success"
// @Router /api/achievements/leaderboard [get]
func (c *AchievementController) Leaderboard(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	entries, err := c.AchievementService.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
