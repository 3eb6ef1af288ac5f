package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/services"
	"github.com/burakd/teamdocs/internal/middleware"
)

// AnalyticsController handles the read-only dashboard endpoints
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetOverview returns the headline dashboard numbers
// @Summary Get analytics overview
// @Description Returns headline counts plus status and category distributions
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {object} dto.OverviewResponse "Overview retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	overview, err := c.analyticsService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, overview)
}

// GetTeamPerformance returns per-member performance rows
// @Summary Get team performance
// @Description Returns per-member assignment counts and completion rates, best first
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {array} dto.MemberPerformance "Performance retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/team-performance [get]
func (c *AnalyticsController) GetTeamPerformance(ctx *gin.Context) {
	performance, err := c.analyticsService.TeamPerformance(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, performance)
}

// GetWeeklyProgress returns the last week's daily status buckets
// @Summary Get weekly progress
// @Description Returns per-day status counts over assignments touched in the last week
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {array} dto.DailyProgress "Progress retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/weekly-progress [get]
func (c *AnalyticsController) GetWeeklyProgress(ctx *gin.Context) {
	progress, err := c.analyticsService.WeeklyProgress(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, progress)
}

// GetCategoryProgress returns per-category status breakdowns
// @Summary Get category progress
// @Description Returns per-category status breakdowns with completion rates
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {array} dto.CategoryProgress "Progress retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/category-progress [get]
func (c *AnalyticsController) GetCategoryProgress(ctx *gin.Context) {
	progress, err := c.analyticsService.CategoryProgress(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, progress)
}

// GetProductivity returns productivity metrics
// @Summary Get productivity metrics
// @Description Returns recent completion volume, duration statistics and most active members
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {object} dto.ProductivityResponse "Metrics retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/productivity [get]
func (c *AnalyticsController) GetProductivity(ctx *gin.Context) {
	productivity, err := c.analyticsService.Productivity(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, productivity)
}

// GetPriorityDistribution returns per-priority counts
// @Summary Get priority distribution
// @Description Returns per-priority assignment counts with completion rates
// @Tags analytics
// @Accept json
// @Produce json
// @Success 200 {array} dto.PriorityStats "Distribution retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/priority-distribution [get]
func (c *AnalyticsController) GetPriorityDistribution(ctx *gin.Context) {
	distribution, err := c.analyticsService.PriorityDistribution(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, distribution)
}
