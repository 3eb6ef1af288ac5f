package dto

// Overview is the headline block of GET /analytics/overview.
type Overview struct {
	TotalMembers     int64   `json:"totalMembers"`
	TotalAssignments int64   `json:"totalAssignments"`
	CompletionRate   float64 `json:"completionRate"`
	Overdue          int64   `json:"overdue"`
	DueToday         int64   `json:"dueToday"`
}

// GroupCount is a generic grouped count row (status, category, ...).
type GroupCount struct {
	Key   string `json:"key" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// OverviewResponse is the body of GET /analytics/overview.
type OverviewResponse struct {
	Overview             Overview     `json:"overview"`
	StatusDistribution   []GroupCount `json:"statusDistribution"`
	CategoryDistribution []GroupCount `json:"categoryDistribution"`
}

// MemberPerformance is one row of GET /analytics/team-performance.
type MemberPerformance struct {
	ID                    string  `json:"id" bson:"_id"`
	Name                  string  `json:"name" bson:"name"`
	Role                  string  `json:"role" bson:"role"`
	TotalAssignments      int64   `json:"totalAssignments" bson:"totalAssignments"`
	CompletedAssignments  int64   `json:"completedAssignments" bson:"completedAssignments"`
	InProgressAssignments int64   `json:"inProgressAssignments" bson:"inProgressAssignments"`
	OverdueAssignments    int64   `json:"overdueAssignments" bson:"overdueAssignments"`
	CompletionRate        float64 `json:"completionRate" bson:"completionRate"`
}

// StatusCount pairs a status with its count inside a daily bucket.
type StatusCount struct {
	Status string `json:"status" bson:"status"`
	Count  int64  `json:"count" bson:"count"`
}

// DailyProgress is one calendar-day row of GET /analytics/weekly-progress.
type DailyProgress struct {
	Date         string        `json:"date" bson:"_id"`
	StatusCounts []StatusCount `json:"statusCounts" bson:"statusCounts"`
}

// CategoryProgress is one row of GET /analytics/category-progress.
type CategoryProgress struct {
	Category       string  `json:"category" bson:"_id"`
	Total          int64   `json:"total" bson:"total"`
	Completed      int64   `json:"completed" bson:"completed"`
	InProgress     int64   `json:"inProgress" bson:"inProgress"`
	Pending        int64   `json:"pending" bson:"pending"`
	InReview       int64   `json:"inReview" bson:"inReview"`
	CompletionRate float64 `json:"completionRate" bson:"completionRate"`
}

// CompletionStats aggregates completion durations in days over assignments
// that carry both a creation and a completion timestamp.
type CompletionStats struct {
	AvgCompletionDays float64 `json:"avgCompletionDays" bson:"avgCompletionDays"`
	MinCompletionDays float64 `json:"minCompletionDays" bson:"minCompletionDays"`
	MaxCompletionDays float64 `json:"maxCompletionDays" bson:"maxCompletionDays"`
}

// ProductivityResponse is the body of GET /analytics/productivity.
type ProductivityResponse struct {
	RecentCompletions int64           `json:"recentCompletions"`
	CompletionStats   CompletionStats `json:"completionStats"`
	MostActiveMembers []ActiveMember  `json:"mostActiveMembers"`
}

// PriorityStats is one row of GET /analytics/priority-distribution.
type PriorityStats struct {
	Priority       string  `json:"priority" bson:"_id"`
	Count          int64   `json:"count" bson:"count"`
	Completed      int64   `json:"completed" bson:"completed"`
	CompletionRate float64 `json:"completionRate" bson:"completionRate"`
}
