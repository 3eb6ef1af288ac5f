package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Team member roles.
const (
	RoleDeveloper = "developer"
	RoleTrainee   = "trainee"
	RoleLead      = "lead"
)

// ValidRole reports whether role is one of the known member roles.
func ValidRole(role string) bool {
	switch role {
	case RoleDeveloper, RoleTrainee, RoleLead:
		return true
	}
	return false
}

// TeamMember represents a member of the documentation team.
// AssignedTopics and CompletedTopics are derived counters: they always hold
// the result of the last full recount over the assignments collection and
// are never authored directly.
type TeamMember struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	Email           string             `json:"email" bson:"email"`
	Role            string             `json:"role" bson:"role"`
	Skills          []string           `json:"skills" bson:"skills"`
	AssignedTopics  int64              `json:"assignedTopics" bson:"assignedTopics"`
	CompletedTopics int64              `json:"completedTopics" bson:"completedTopics"`
	JoinDate        time.Time          `json:"joinDate" bson:"joinDate"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	ProfileImage    string             `json:"profileImage,omitempty" bson:"profileImage,omitempty"`
	GithubUsername  string             `json:"githubUsername,omitempty" bson:"githubUsername,omitempty"`
	LastLoginDate   *time.Time         `json:"lastLoginDate,omitempty" bson:"lastLoginDate,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CompletionRate returns the member's completed/assigned ratio as a whole
// percentage, 0 when nothing is assigned.
func (m *TeamMember) CompletionRate() int {
	if m.AssignedTopics == 0 {
		return 0
	}
	return int(float64(m.CompletedTopics)/float64(m.AssignedTopics)*100 + 0.5)
}
