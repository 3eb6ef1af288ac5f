package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment statuses.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusReview     = "review"
	StatusCompleted  = "completed"
)

// Assignment categories.
const (
	CategoryCoreJava = "core-java"
	CategoryBackend  = "backend"
	CategoryFrontend = "frontend"
)

// Assignment priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidStatus reports whether status is one of the known assignment statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusReview, StatusCompleted:
		return true
	}
	return false
}

// ValidCategory reports whether category is one of the known categories.
func ValidCategory(category string) bool {
	switch category {
	case CategoryCoreJava, CategoryBackend, CategoryFrontend:
		return true
	}
	return false
}

// ValidPriority reports whether priority is one of the known priorities.
func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Note is a comment embedded in an assignment document.
type Note struct {
	Author    primitive.ObjectID `json:"author" bson:"author"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Assignment represents a documentation topic assigned to a team member.
// Assignee holds the member name denormalized at write time; AssigneeID is
// the owning reference.
type Assignment struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Topic            string               `json:"topic" bson:"topic"`
	Category         string               `json:"category" bson:"category"`
	Assignee         string               `json:"assignee" bson:"assignee"`
	AssigneeID       primitive.ObjectID   `json:"assigneeId" bson:"assigneeId"`
	Status           string               `json:"status" bson:"status"`
	Priority         string               `json:"priority" bson:"priority"`
	DueDate          time.Time            `json:"dueDate" bson:"dueDate"`
	Description      string               `json:"description,omitempty" bson:"description,omitempty"`
	Progress         int                  `json:"progress" bson:"progress"`
	EstimatedHours   *float64             `json:"estimatedHours,omitempty" bson:"estimatedHours,omitempty"`
	ActualHours      *float64             `json:"actualHours,omitempty" bson:"actualHours,omitempty"`
	StartDate        *time.Time           `json:"startDate,omitempty" bson:"startDate,omitempty"`
	CompletionDate   *time.Time           `json:"completionDate,omitempty" bson:"completionDate,omitempty"`
	Reviewers        []primitive.ObjectID `json:"reviewers" bson:"reviewers"`
	Tags             []string             `json:"tags" bson:"tags"`
	DocumentationURL string               `json:"documentationUrl,omitempty" bson:"documentationUrl,omitempty"`
	GithubPrURL      string               `json:"githubPrUrl,omitempty" bson:"githubPrUrl,omitempty"`
	Notes            []Note               `json:"notes" bson:"notes"`
	IsDeleted        bool                 `json:"isDeleted" bson:"isDeleted"`
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// DaysRemaining returns the number of calendar days until the due date,
// rounded up. Completed assignments report 0.
func (a *Assignment) DaysRemaining(now time.Time) int {
	if a.Status == StatusCompleted {
		return 0
	}
	diff := a.DueDate.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// IsOverdue reports whether the assignment is past due and not completed.
func (a *Assignment) IsOverdue(now time.Time) bool {
	if a.Status == StatusCompleted {
		return false
	}
	return a.DaysRemaining(now) < 0
}

// ApplyStatusTransition stamps the transition side effects on a status
// change: first move into in-progress sets the start date, first move into
// completed sets the completion date and forces progress to 100.
func (a *Assignment) ApplyStatusTransition(now time.Time) {
	if a.Status == StatusInProgress && a.StartDate == nil {
		t := now
		a.StartDate = &t
	}
	if a.Status == StatusCompleted {
		if a.CompletionDate == nil {
			t := now
			a.CompletionDate = &t
		}
		a.Progress = 100
	}
}
