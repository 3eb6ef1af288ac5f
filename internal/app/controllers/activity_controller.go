package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/services"
	"github.com/burakd/teamdocs/internal/middleware"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

const defaultActivityPageLimit = 20

// ActivityController handles activity log operations
type ActivityController struct {
	activityService *services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService *services.ActivityService) *ActivityController {
	return &ActivityController{
		activityService: activityService,
	}
}

// ListActivity lists activity entries
// @Summary List activity entries
// @Description Retrieves a filtered, paginated list of activity entries, newest first
// @Tags activity
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param type query string false "Filter by activity type"
// @Param actor query string false "Filter by actor member ID"
// @Param target query string false "Case-insensitive match on target"
// @Param dateFrom query string false "RFC 3339 lower bound"
// @Param dateTo query string false "RFC 3339 upper bound"
// @Success 200 {object} dto.ListResponse "Activity retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid date filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity [get]
func (c *ActivityController) ListActivity(ctx *gin.Context) {
	page, limit := helpers.ParsePagination(ctx, defaultActivityPageLimit)
	q := dto.ActivityListQuery{
		Page:   page,
		Limit:  limit,
		Type:   ctx.Query("type"),
		Actor:  ctx.Query("actor"),
		Target: ctx.Query("target"),
	}

	for name, dest := range map[string]**time.Time{
		"dateFrom": &q.DateFrom,
		"dateTo":   &q.DateTo,
	} {
		if raw := ctx.Query(name); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
					dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid date format, expected RFC 3339").WithField(name)))
				return
			}
			*dest = &t
		}
	}

	result, err := c.activityService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// RecordActivity manually records an activity entry
// @Summary Record an activity entry
// @Description Stores a manually submitted activity entry
// @Tags activity
// @Accept json
// @Produce json
// @Param request body dto.RecordActivityRequest true "Activity entry"
// @Success 201 {object} models.ActivityLog "Activity recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown actor"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity [post]
func (c *ActivityController) RecordActivity(ctx *gin.Context) {
	var req dto.RecordActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	entry, err := c.activityService.Record(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, entry)
}

// GetRecentActivity returns the last day of activity
// @Summary Get recent activity
// @Description Returns the last 24 hours of activity, capped at 50 entries
// @Tags activity
// @Accept json
// @Produce json
// @Success 200 {array} models.ActivityLog "Recent activity retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity/recent [get]
func (c *ActivityController) GetRecentActivity(ctx *gin.Context) {
	entries, err := c.activityService.Recent(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// GetActivityStats returns activity log statistics
// @Summary Get activity statistics
// @Description Returns type distribution, daily volume and the most active members
// @Tags activity
// @Accept json
// @Produce json
// @Success 200 {object} dto.ActivityStatsResponse "Statistics retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity/stats [get]
func (c *ActivityController) GetActivityStats(ctx *gin.Context) {
	stats, err := c.activityService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// GetMemberActivity returns one member's activity
// @Summary Get a member's activity
// @Description Retrieves a paginated list of one member's activity, newest first
// @Tags activity
// @Accept json
// @Produce json
// @Param id path string true "Team member ID"
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.ListResponse "Member activity retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid team member ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity/member/{id} [get]
func (c *ActivityController) GetMemberActivity(ctx *gin.Context) {
	page, limit := helpers.ParsePagination(ctx, defaultActivityPageLimit)

	result, err := c.activityService.ByMember(ctx.Request.Context(), ctx.Param("id"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetTargetTimeline returns the full history of one target
// @Summary Get a target's timeline
// @Description Returns every activity entry touching one target, newest first
// @Tags activity
// @Accept json
// @Produce json
// @Param target path string true "Target name"
// @Success 200 {array} models.ActivityLog "Timeline retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing target"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity/timeline/{target} [get]
func (c *ActivityController) GetTargetTimeline(ctx *gin.Context) {
	entries, err := c.activityService.Timeline(ctx.Request.Context(), ctx.Param("target"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, entries)
}

// CleanupActivity deletes old activity entries
// @Summary Clean up old activity entries
// @Description Deletes entries older than daysOld days (default 90)
// @Tags activity
// @Accept json
// @Produce json
// @Param daysOld query int false "Retention window in days"
// @Success 200 {object} map[string]interface{} "Cleanup completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid daysOld value"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /activity/cleanup [delete]
func (c *ActivityController) CleanupActivity(ctx *gin.Context) {
	daysOld := 0
	if raw := ctx.Query("daysOld"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "daysOld must be a positive number").WithField("daysOld")))
			return
		}
		daysOld = parsed
	}

	deleted, err := c.activityService.Cleanup(ctx.Request.Context(), daysOld)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Cleanup completed",
		"deleted": deleted,
	})
}
