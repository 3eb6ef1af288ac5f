package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/controllers"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	memberController *controllers.TeamMemberController,
	assignmentController *controllers.AssignmentController,
	activityController *controllers.ActivityController,
	analyticsController *controllers.AnalyticsController,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Team member routes
	members := api.Group("/team-members")
	{
		members.GET("", memberController.ListTeamMembers)
		members.POST("", memberController.CreateTeamMember)
		members.GET("/:id", memberController.GetTeamMember)
		members.PUT("/:id", memberController.UpdateTeamMember)
		members.DELETE("/:id", memberController.DeactivateTeamMember)
		members.GET("/:id/stats", memberController.GetTeamMemberStats)
	}

	// Assignment routes. The fixed /overdue and /due/today paths must be
	// registered on their own segments so they never collide with the :id
	// parameter.
	assignments := api.Group("/assignments")
	{
		assignments.GET("", assignmentController.ListAssignments)
		assignments.POST("", assignmentController.CreateAssignment)
		assignments.GET("/overdue", assignmentController.GetOverdueAssignments)
		assignments.GET("/due/today", assignmentController.GetAssignmentsDueToday)
		assignments.GET("/:id", assignmentController.GetAssignment)
		assignments.PUT("/:id", assignmentController.UpdateAssignment)
		assignments.PATCH("/:id/status", assignmentController.UpdateAssignmentStatus)
		assignments.DELETE("/:id", assignmentController.DeleteAssignment)
		assignments.POST("/:id/notes", assignmentController.AddAssignmentNote)
	}

	// Activity log routes
	activity := api.Group("/activity")
	{
		activity.GET("", activityController.ListActivity)
		activity.POST("", activityController.RecordActivity)
		activity.GET("/recent", activityController.GetRecentActivity)
		activity.GET("/stats", activityController.GetActivityStats)
		activity.GET("/member/:id", activityController.GetMemberActivity)
		activity.GET("/timeline/:target", activityController.GetTargetTimeline)
		activity.DELETE("/cleanup", activityController.CleanupActivity)
	}

	// Analytics routes (read-only)
	analytics := api.Group("/analytics")
	{
		analytics.GET("/overview", analyticsController.GetOverview)
		analytics.GET("/team-performance", analyticsController.GetTeamPerformance)
		analytics.GET("/weekly-progress", analyticsController.GetWeeklyProgress)
		analytics.GET("/category-progress", analyticsController.GetCategoryProgress)
		analytics.GET("/productivity", analyticsController.GetProductivity)
		analytics.GET("/priority-distribution", analyticsController.GetPriorityDistribution)
	}
}
