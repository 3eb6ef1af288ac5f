package dto

import "github.com/burakd/teamdocs/internal/app/models"

// CreateTeamMemberRequest is the payload for adding a team member.
type CreateTeamMemberRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Role           string   `json:"role"`
	Skills         []string `json:"skills"`
	GithubUsername string   `json:"githubUsername"`
}

// UpdateTeamMemberRequest is the payload for updating a team member.
// Omitted fields keep their current values.
type UpdateTeamMemberRequest struct {
	Name           *string  `json:"name"`
	Email          *string  `json:"email"`
	Role           *string  `json:"role"`
	Skills         []string `json:"skills"`
	GithubUsername *string  `json:"githubUsername"`
	IsActive       *bool    `json:"isActive"`
}

// TeamMemberListQuery carries the supported member list filters.
type TeamMemberListQuery struct {
	Page     int
	Limit    int
	Role     string
	IsActive string // "true", "false" or "all"
}

// StatusBucket is one per-status rollup row in a member's statistics.
type StatusBucket struct {
	Status     string  `json:"status" bson:"_id"`
	Count      int64   `json:"count" bson:"count"`
	TotalHours float64 `json:"totalHours" bson:"totalHours"`
}

// TeamMemberStatsResponse is the body of GET /team-members/:id/stats.
type TeamMemberStatsResponse struct {
	Member            *models.TeamMember   `json:"member"`
	Stats             []StatusBucket       `json:"stats"`
	RecentAssignments []AssignmentSnapshot `json:"recentAssignments"`
}

// AssignmentSnapshot is the trimmed assignment view in member stats.
type AssignmentSnapshot struct {
	ID       string `json:"id"`
	Topic    string `json:"topic"`
	Status   string `json:"status"`
	DueDate  string `json:"dueDate"`
	Progress int    `json:"progress"`
}
