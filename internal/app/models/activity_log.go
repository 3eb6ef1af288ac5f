package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType identifies what kind of mutation an activity entry records.
type ActivityType string

const (
	ActivityAssignmentCreated ActivityType = "assignment_created"
	ActivityAssignmentUpdated ActivityType = "assignment_updated"
	ActivityStatusChanged     ActivityType = "status_changed"
	ActivityMemberAdded       ActivityType = "member_added"
	ActivityMemberUpdated     ActivityType = "member_updated"
)

// ValidActivityType reports whether t is one of the known activity types.
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityAssignmentCreated, ActivityAssignmentUpdated,
		ActivityStatusChanged, ActivityMemberAdded, ActivityMemberUpdated:
		return true
	}
	return false
}

// ActivityDetails carries the structured payload of an activity entry.
type ActivityDetails struct {
	From        string `json:"from,omitempty" bson:"from,omitempty"`
	To          string `json:"to,omitempty" bson:"to,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// ActivityMetadata holds optional references back to the mutated records.
type ActivityMetadata struct {
	AssignmentID *primitive.ObjectID `json:"assignmentId,omitempty" bson:"assignmentId,omitempty"`
	TeamMemberID *primitive.ObjectID `json:"teamMemberId,omitempty" bson:"teamMemberId,omitempty"`
}

// ActivityLog is an append-only audit record. Entries are never updated or
// soft-deleted; the age-based cleanup is the only delete path. ActorName is
// denormalized from the member record at write time so reads need no join.
type ActivityLog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Type      ActivityType       `json:"type" bson:"type"`
	Actor     primitive.ObjectID `json:"actor" bson:"actor"`
	ActorName string             `json:"actorName" bson:"actorName"`
	Target    string             `json:"target" bson:"target"`
	Details   ActivityDetails    `json:"details" bson:"details"`
	Metadata  ActivityMetadata   `json:"metadata" bson:"metadata"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
