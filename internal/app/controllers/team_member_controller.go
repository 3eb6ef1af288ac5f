package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/services"
	"github.com/burakd/teamdocs/internal/middleware"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

const defaultMemberLimit = 10

// TeamMemberController handles team member operations
type TeamMemberController struct {
	memberService *services.TeamMemberService
}

// NewTeamMemberController creates a new TeamMemberController
func NewTeamMemberController(memberService *services.TeamMemberService) *TeamMemberController {
	return &TeamMemberController{
		memberService: memberService,
	}
}

// ListTeamMembers lists team members
// @Summary List team members
// @Description Retrieves a paginated list of team members, active ones by default
// @Tags team-members
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param role query string false "Filter by role"
// @Param isActive query string false "true, false or all"
// @Success 200 {object} dto.ListResponse "Team members retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /team-members [get]
func (c *TeamMemberController) ListTeamMembers(ctx *gin.Context) {
	page, limit := helpers.ParsePagination(ctx, defaultMemberLimit)
	q := dto.TeamMemberListQuery{
		Page:     page,
		Limit:    limit,
		Role:     ctx.Query("role"),
		IsActive: ctx.DefaultQuery("isActive", "true"),
	}

	result, err := c.memberService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetTeamMember retrieves a team member by ID
// @Summary Get team member by ID
// @Description Retrieves a single team member; deactivated members are still returned
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} models.TeamMember "Team member retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid team member ID"
// @Failure 404 {object} dto.ErrorResponse "Team member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /team-members/{id} [get]
func (c *TeamMemberController) GetTeamMember(ctx *gin.Context) {
	member, err := c.memberService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// CreateTeamMember registers a new team member
// @Summary Create a new team member
// @Description Registers a new team member with a unique email
// @Tags team-members
// @Accept json
// @Produce json
// @Param request body dto.CreateTeamMemberRequest true "Team member information"
// @Success 201 {object} models.TeamMember "Team member created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /team-members [post]
func (c *TeamMemberController) CreateTeamMember(ctx *gin.Context) {
	var req dto.CreateTeamMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	member, err := c.memberService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, member)
}

// UpdateTeamMember updates an existing team member
// @Summary Update a team member
// @Description Applies a partial update; omitted fields keep their values
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID"
// @Param request body dto.UpdateTeamMemberRequest true "Updated member information"
// @Success 200 {object} models.TeamMember "Team member updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Team member not found"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /team-members/{id} [put]
func (c *TeamMemberController) UpdateTeamMember(ctx *gin.Context) {
	var req dto.UpdateTeamMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	member, err := c.memberService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, member)
}

// DeactivateTeamMember deactivates a team member
// @Summary Deactivate a team member
// @Description Soft-removes a member; the record and its history are kept
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} dto.MessageResponse "Team member deactivated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid team member ID"
// @Failure 404 {object} dto.ErrorResponse "Team member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /team-members/{id} [delete]
func (c *TeamMemberController) DeactivateTeamMember(ctx *gin.Context) {
	if _, err := c.memberService.Deactivate(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Team member deactivated"})
}

// GetTeamMemberStats retrieves a member's assignment statistics
// @Summary Get team member statistics
// @Description Returns the member's per-status assignment rollup and recent assignments
// @Tags team-members
// @Accept json
// @Produce json
// @Param id path string true "Team member ID"
// @Success 200 {object} dto.TeamMemberStatsResponse "Statistics retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid team member ID"
// @Failure 404 {object} dto.ErrorResponse "Team member not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /team-members/{id}/stats [get]
func (c *TeamMemberController) GetTeamMemberStats(ctx *gin.Context) {
	stats, err := c.memberService.Stats(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
