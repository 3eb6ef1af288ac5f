package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/services"
	"github.com/burakd/teamdocs/internal/middleware"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

const defaultAssignmentLimit = 10

// AssignmentController handles assignment operations
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
	}
}

// ListAssignments lists assignments
// @Summary List assignments
// @Description Retrieves a filtered, sorted, paginated list of assignments
// @Tags assignments
// @Accept json
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param assigneeId query string false "Filter by assignee"
// @Param search query string false "Case-insensitive match on topic, assignee or description"
// @Param sortBy query string false "Sort field (default createdAt)"
// @Param sortOrder query string false "asc or desc (default desc)"
// @Success 200 {object} dto.ListResponse "Assignments retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter value"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments [get]
func (c *AssignmentController) ListAssignments(ctx *gin.Context) {
	page, limit := helpers.ParsePagination(ctx, defaultAssignmentLimit)
	q := dto.AssignmentListQuery{
		Page:       page,
		Limit:      limit,
		Category:   ctx.Query("category"),
		Status:     ctx.Query("status"),
		AssigneeID: ctx.Query("assigneeId"),
		Search:     ctx.Query("search"),
		SortBy:     ctx.DefaultQuery("sortBy", "createdAt"),
		SortOrder:  ctx.DefaultQuery("sortOrder", "desc"),
	}

	result, err := c.assignmentService.List(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// GetAssignment retrieves an assignment by ID
// @Summary Get assignment by ID
// @Description Retrieves a single assignment; soft-deleted ones behave as missing
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.Assignment "Assignment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [get]
func (c *AssignmentController) GetAssignment(ctx *gin.Context) {
	assignment, err := c.assignmentService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// CreateAssignment creates a new assignment
// @Summary Create a new assignment
// @Description Creates an assignment for an existing team member
// @Tags assignments
// @Accept json
// @Produce json
// @Param request body dto.CreateAssignmentRequest true "Assignment information"
// @Success 201 {object} models.Assignment "Assignment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown assignee"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assignment, err := c.assignmentService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, assignment)
}

// UpdateAssignment updates an existing assignment
// @Summary Update an assignment
// @Description Applies a partial update; omitted fields keep their values
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body dto.UpdateAssignmentRequest true "Updated assignment information"
// @Success 200 {object} models.Assignment "Assignment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [put]
func (c *AssignmentController) UpdateAssignment(ctx *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assignment, err := c.assignmentService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// UpdateAssignmentStatus changes an assignment's status
// @Summary Update assignment status
// @Description Changes the status, stamping start and completion dates on first transition
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} models.Assignment "Status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/status [patch]
func (c *AssignmentController) UpdateAssignmentStatus(ctx *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assignment, err := c.assignmentService.UpdateStatus(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// DeleteAssignment soft-deletes an assignment
// @Summary Delete an assignment
// @Description Soft-deletes the assignment; it drops out of listings and aggregates
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} dto.MessageResponse "Assignment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid assignment ID"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id} [delete]
func (c *AssignmentController) DeleteAssignment(ctx *gin.Context) {
	if err := c.assignmentService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Assignment deleted"})
}

// AddAssignmentNote appends a note to an assignment
// @Summary Add a note to an assignment
// @Description Appends a note authored by an existing team member
// @Tags assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body dto.AddNoteRequest true "Note content and author"
// @Success 200 {object} models.Assignment "Note added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or unknown author"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/{id}/notes [post]
func (c *AssignmentController) AddAssignmentNote(ctx *gin.Context) {
	var req dto.AddNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	assignment, err := c.assignmentService.AddNote(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, assignment)
}

// GetAssignmentsDueToday lists assignments due today and overdue ones
// @Summary Get assignments due today
// @Description Returns assignments due within the current day plus everything overdue
// @Tags assignments
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Due assignments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/due/today [get]
func (c *AssignmentController) GetAssignmentsDueToday(ctx *gin.Context) {
	dueToday, overdue, err := c.assignmentService.DueToday(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"dueToday": dueToday,
		"overdue":  overdue,
	})
}

// GetOverdueAssignments lists assignments past their due date
// @Summary Get overdue assignments
// @Description Returns open assignments whose due date has passed, longest overdue first
// @Tags assignments
// @Accept json
// @Produce json
// @Success 200 {array} models.Assignment "Overdue assignments retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /assignments/overdue [get]
func (c *AssignmentController) GetOverdueAssignments(ctx *gin.Context) {
	overdue, err := c.assignmentService.Overdue(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, overdue)
}
