package dto

import (
	"time"

	"github.com/burakd/teamdocs/internal/app/models"
)

// RecordActivityRequest is the payload for manually logging an activity.
// ActorName is resolved from the actor's member record when omitted.
type RecordActivityRequest struct {
	Type      string                  `json:"type" binding:"required"`
	Actor     string                  `json:"actor" binding:"required"`
	ActorName string                  `json:"actorName"`
	Target    string                  `json:"target" binding:"required"`
	Details   models.ActivityDetails  `json:"details"`
	Metadata  models.ActivityMetadata `json:"metadata"`
}

// ActivityListQuery carries the supported activity list filters.
type ActivityListQuery struct {
	Page     int
	Limit    int
	Type     string
	Actor    string
	Target   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// TypeCount is one activity-type distribution row.
type TypeCount struct {
	Type  string `json:"type" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// DayCount is one calendar-day activity bucket.
type DayCount struct {
	Date  string `json:"date" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// ActiveMember is one most-active-members row.
type ActiveMember struct {
	Actor     string `json:"actor" bson:"actor"`
	ActorName string `json:"actorName" bson:"actorName"`
	Count     int64  `json:"count" bson:"count"`
}

// ActivityStatsResponse is the body of GET /activity/stats.
type ActivityStatsResponse struct {
	TypeDistribution  []TypeCount    `json:"typeDistribution"`
	DailyActivity     []DayCount     `json:"dailyActivity"`
	MostActiveMembers []ActiveMember `json:"mostActiveMembers"`
}
