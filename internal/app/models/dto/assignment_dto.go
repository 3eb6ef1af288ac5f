package dto

import "time"

// CreateAssignmentRequest is the payload for creating an assignment.
type CreateAssignmentRequest struct {
	Topic          string    `json:"topic" binding:"required"`
	Category       string    `json:"category" binding:"required"`
	AssigneeID     string    `json:"assigneeId" binding:"required"`
	DueDate        time.Time `json:"dueDate" binding:"required"`
	Priority       string    `json:"priority"`
	Description    string    `json:"description"`
	EstimatedHours *float64  `json:"estimatedHours"`
	Tags           []string  `json:"tags"`
	Reviewers      []string  `json:"reviewers"`
}

// UpdateAssignmentRequest is the payload for a full assignment update.
// Omitted fields keep their current values.
type UpdateAssignmentRequest struct {
	Topic            *string    `json:"topic"`
	Category         *string    `json:"category"`
	AssigneeID       *string    `json:"assigneeId"`
	Status           *string    `json:"status"`
	Priority         *string    `json:"priority"`
	DueDate          *time.Time `json:"dueDate"`
	Description      *string    `json:"description"`
	Progress         *int       `json:"progress"`
	EstimatedHours   *float64   `json:"estimatedHours"`
	ActualHours      *float64   `json:"actualHours"`
	Tags             []string   `json:"tags"`
	Reviewers        []string   `json:"reviewers"`
	DocumentationURL *string    `json:"documentationUrl"`
	GithubPrURL      *string    `json:"githubPrUrl"`
}

// UpdateStatusRequest is the payload of PATCH /assignments/:id/status.
type UpdateStatusRequest struct {
	Status   string `json:"status" binding:"required"`
	Progress *int   `json:"progress"`
}

// AddNoteRequest is the payload of POST /assignments/:id/notes.
type AddNoteRequest struct {
	Content  string `json:"content" binding:"required"`
	AuthorID string `json:"authorId" binding:"required"`
}

// AssignmentListQuery carries the supported assignment list filters.
// Search OR-matches topic, assignee and description case-insensitively;
// the remaining filters are combined with AND.
type AssignmentListQuery struct {
	Page       int
	Limit      int
	Category   string
	Status     string
	AssigneeID string
	Search     string
	SortBy     string
	SortOrder  string
}
