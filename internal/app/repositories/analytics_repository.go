package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
)

// AnalyticsRepository holds the read-only aggregation pipelines over the
// assignment and activity collections. Each query is independent and
// stateless; all of them return zeroed or empty results on empty input.
// Rates are deliberately not computed here; the service layer derives them
// through the one shared zero-denominator helper.
type AnalyticsRepository interface {
	CountActiveMembers(ctx context.Context) (int64, error)
	CountAssignments(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context) (int64, error)
	CountOverdue(ctx context.Context, now time.Time) (int64, error)
	CountDueBetween(ctx context.Context, from, to time.Time) (int64, error)
	StatusDistribution(ctx context.Context) ([]dto.GroupCount, error)
	CategoryDistribution(ctx context.Context) ([]dto.GroupCount, error)
	TeamPerformance(ctx context.Context, now time.Time) ([]dto.MemberPerformance, error)
	WeeklyProgress(ctx context.Context, since time.Time) ([]dto.DailyProgress, error)
	CategoryProgress(ctx context.Context) ([]dto.CategoryProgress, error)
	RecentCompletions(ctx context.Context, since time.Time) (int64, error)
	CompletionStats(ctx context.Context) (*dto.CompletionStats, error)
	PriorityDistribution(ctx context.Context) ([]dto.PriorityStats, error)
}

type analyticsRepository struct {
	members     *mongo.Collection
	assignments *mongo.Collection
}

// NewAnalyticsRepository creates a new analytics repository.
func NewAnalyticsRepository(database *mongo.Database) AnalyticsRepository {
	return &analyticsRepository{
		members:     memberCollection(database),
		assignments: assignmentCollection(database),
	}
}

func (r *analyticsRepository) CountActiveMembers(ctx context.Context) (int64, error) {
	count, err := r.members.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return 0, fmt.Errorf("error counting members: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountAssignments(ctx context.Context) (int64, error) {
	count, err := r.assignments.CountDocuments(ctx, bson.M{"isDeleted": false})
	if err != nil {
		return 0, fmt.Errorf("error counting assignments: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountCompleted(ctx context.Context) (int64, error) {
	count, err := r.assignments.CountDocuments(ctx, bson.M{
		"status":    models.StatusCompleted,
		"isDeleted": false,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting completed assignments: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	count, err := r.assignments.CountDocuments(ctx, bson.M{
		"dueDate":   bson.M{"$lt": now},
		"status":    bson.M{"$ne": models.StatusCompleted},
		"isDeleted": false,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting overdue assignments: %w", err)
	}
	return count, nil
}

func (r *analyticsRepository) CountDueBetween(ctx context.Context, from, to time.Time) (int64, error) {
	count, err := r.assignments.CountDocuments(ctx, bson.M{
		"dueDate":   bson.M{"$gte": from, "$lt": to},
		"status":    bson.M{"$ne": models.StatusCompleted},
		"isDeleted": false,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting due assignments: %w", err)
	}
	return count, nil
}

// groupCount runs a single-field $group count over live assignments.
func (r *analyticsRepository) groupCount(ctx context.Context, field string) ([]dto.GroupCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isDeleted": false}}},
		{{Key: "$group", Value: bson.M{"_id": "$" + field, "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating %s distribution: %w", field, err)
	}
	defer cursor.Close(ctx)

	counts := []dto.GroupCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("error decoding %s distribution: %w", field, err)
	}
	return counts, nil
}

func (r *analyticsRepository) StatusDistribution(ctx context.Context) ([]dto.GroupCount, error) {
	return r.groupCount(ctx, "status")
}

func (r *analyticsRepository) CategoryDistribution(ctx context.Context) ([]dto.GroupCount, error) {
	return r.groupCount(ctx, "category")
}

// TeamPerformance joins each active member against their live assignments
// and counts total / completed / in-progress / overdue per member.
func (r *analyticsRepository) TeamPerformance(ctx context.Context, now time.Time) ([]dto.MemberPerformance, error) {
	liveAssignments := bson.M{"$filter": bson.M{
		"input": "$assignments",
		"cond":  bson.M{"$eq": bson.A{"$$this.isDeleted", false}},
	}}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isActive": true}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "assignments",
			"localField":   "_id",
			"foreignField": "assigneeId",
			"as":           "assignments",
		}}},
		{{Key: "$addFields", Value: bson.M{"assignments": liveAssignments}}},
		{{Key: "$project", Value: bson.M{
			"_id":              bson.M{"$toString": "$_id"},
			"name":             1,
			"role":             1,
			"totalAssignments": bson.M{"$size": "$assignments"},
			"completedAssignments": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$assignments",
				"cond":  bson.M{"$eq": bson.A{"$$this.status", models.StatusCompleted}},
			}}},
			"inProgressAssignments": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$assignments",
				"cond":  bson.M{"$eq": bson.A{"$$this.status", models.StatusInProgress}},
			}}},
			"overdueAssignments": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$assignments",
				"cond": bson.M{"$and": bson.A{
					bson.M{"$lt": bson.A{"$$this.dueDate", now}},
					bson.M{"$ne": bson.A{"$$this.status", models.StatusCompleted}},
				}},
			}}},
		}}},
	}

	cursor, err := r.members.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating team performance: %w", err)
	}
	defer cursor.Close(ctx)

	performance := []dto.MemberPerformance{}
	if err := cursor.All(ctx, &performance); err != nil {
		return nil, fmt.Errorf("error decoding team performance: %w", err)
	}
	return performance, nil
}

// WeeklyProgress buckets recently touched assignments by calendar day and
// status within the day.
func (r *analyticsRepository) WeeklyProgress(ctx context.Context, since time.Time) ([]dto.DailyProgress, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"updatedAt": bson.M{"$gte": since},
			"isDeleted": false,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"date": bson.M{"$dateToString": bson.M{
					"format": "%Y-%m-%d",
					"date":   "$updatedAt",
				}},
				"status": "$status",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": "$_id.date",
			"statusCounts": bson.M{"$push": bson.M{
				"status": "$_id.status",
				"count":  "$count",
			}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating weekly progress: %w", err)
	}
	defer cursor.Close(ctx)

	progress := []dto.DailyProgress{}
	if err := cursor.All(ctx, &progress); err != nil {
		return nil, fmt.Errorf("error decoding weekly progress: %w", err)
	}
	return progress, nil
}

// CategoryProgress counts live assignments per category broken down by
// status.
func (r *analyticsRepository) CategoryProgress(ctx context.Context) ([]dto.CategoryProgress, error) {
	statusSum := func(status string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$status", status}}, 1, 0,
		}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isDeleted": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$category",
			"total":      bson.M{"$sum": 1},
			"completed":  statusSum(models.StatusCompleted),
			"inProgress": statusSum(models.StatusInProgress),
			"pending":    statusSum(models.StatusPending),
			"inReview":   statusSum(models.StatusReview),
		}}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating category progress: %w", err)
	}
	defer cursor.Close(ctx)

	progress := []dto.CategoryProgress{}
	if err := cursor.All(ctx, &progress); err != nil {
		return nil, fmt.Errorf("error decoding category progress: %w", err)
	}
	return progress, nil
}

func (r *analyticsRepository) RecentCompletions(ctx context.Context, since time.Time) (int64, error) {
	count, err := r.assignments.CountDocuments(ctx, bson.M{
		"status":    models.StatusCompleted,
		"updatedAt": bson.M{"$gte": since},
		"isDeleted": false,
	})
	if err != nil {
		return 0, fmt.Errorf("error counting recent completions: %w", err)
	}
	return count, nil
}

// CompletionStats computes average, shortest and longest completion
// duration in days over assignments carrying both creation and completion
// timestamps. Returns nil when no assignment qualifies.
func (r *analyticsRepository) CompletionStats(ctx context.Context) (*dto.CompletionStats, error) {
	const millisPerDay = 1000 * 60 * 60 * 24

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":         models.StatusCompleted,
			"completionDate": bson.M{"$exists": true, "$ne": nil},
			"isDeleted":      false,
		}}},
		{{Key: "$project", Value: bson.M{
			"completionDays": bson.M{"$divide": bson.A{
				bson.M{"$subtract": bson.A{"$completionDate", "$createdAt"}},
				millisPerDay,
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":               nil,
			"avgCompletionDays": bson.M{"$avg": "$completionDays"},
			"minCompletionDays": bson.M{"$min": "$completionDays"},
			"maxCompletionDays": bson.M{"$max": "$completionDays"},
		}}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating completion stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []dto.CompletionStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error decoding completion stats: %w", err)
	}
	if len(stats) == 0 {
		return nil, nil
	}
	return &stats[0], nil
}

// PriorityDistribution counts live assignments and completions per
// priority.
func (r *analyticsRepository) PriorityDistribution(ctx context.Context) ([]dto.PriorityStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"isDeleted": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$priority",
			"count": bson.M{"$sum": 1},
			"completed": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", models.StatusCompleted}}, 1, 0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.assignments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating priority distribution: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []dto.PriorityStats{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error decoding priority distribution: %w", err)
	}
	return stats, nil
}
