package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/facultyhub/internal/app/models/dto"
	"github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/middleware"
)

// StatsController serves the dashboard figures
type StatsController struct {
	statsService *services.StatsService
	logger       zerolog.Logger
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService, logger zerolog.Logger) *StatsController {
	return &StatsController{
		statsService: statsService,
		logger:       logger,
	}
}

// Dashboard returns the summary counts
// @Summary Dashboard statistics
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStats}
// @Router /stats/dashboard [get]
func (c *StatsController) Dashboard(ctx *gin.Context) {
	stats, err := c.statsService.Dashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, stats, "")
}

// Activities returns the most recent grade and registration events
// @Summary Recent activity
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Number of entries"
// @Success 200 {object} dto.APIResponse{data=[]dto.Activity}
// @Router /stats/activities [get]
func (c *StatsController) Activities(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit <= 0 {
		limit = services.DefaultActivityLimit
	}

	activities, err := c.statsService.Activities(ctx.Request.Context(), limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if activities == nil {
		activities = []dto.Activity{}
	}
	respond(ctx, http.StatusOK, activities, "")
}
