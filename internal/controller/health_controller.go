package controller

import (
	"context"
	"time"

	"learnhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check godoc
// @Summary Service health check
// @Tags health
// @Produce  json
// @Success 200 {object} util.Response{data=object} "Healthy"
// @Failure 503 {object} util.Response "Database unreachable"
// @Router /api/health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.Error(ctx, 503, "database unavailable")
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		util.Error(ctx, 503, "database unavailable")
		return
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
