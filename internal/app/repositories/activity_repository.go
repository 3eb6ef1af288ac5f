package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

// ActivityRepository handles database operations for the activity log.
// Entries are append-only; the only delete path is the age-based cleanup.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, q dto.ActivityListQuery) ([]*models.ActivityLog, int64, error)
	Recent(ctx context.Context, since time.Time, limit int64) ([]*models.ActivityLog, error)
	ByActor(ctx context.Context, actorID primitive.ObjectID, page, limit int) ([]*models.ActivityLog, int64, error)
	ByTarget(ctx context.Context, target string) ([]*models.ActivityLog, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	TypeDistribution(ctx context.Context) ([]dto.TypeCount, error)
	DailyCounts(ctx context.Context, since time.Time) ([]dto.DayCount, error)
	MostActiveActors(ctx context.Context, since time.Time, limit int) ([]dto.ActiveMember, error)
}

type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new activity log repository.
func NewActivityRepository(database *mongo.Database) ActivityRepository {
	return &activityRepository{collection: activityCollection(database)}
}

// Insert appends a new activity entry.
func (r *activityRepository) Insert(ctx context.Context, entry *models.ActivityLog) error {
	entry.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("error inserting activity entry: %w", err)
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

// List returns a page of activity entries, newest first.
func (r *activityRepository) List(ctx context.Context, q dto.ActivityListQuery) ([]*models.ActivityLog, int64, error) {
	filter := bson.M{}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.Actor != "" {
		if id, err := primitive.ObjectIDFromHex(q.Actor); err == nil {
			filter["actor"] = id
		}
	}
	if q.Target != "" {
		filter["target"] = primitive.Regex{Pattern: q.Target, Options: "i"}
	}
	if q.DateFrom != nil || q.DateTo != nil {
		created := bson.M{}
		if q.DateFrom != nil {
			created["$gte"] = *q.DateFrom
		}
		if q.DateTo != nil {
			created["$lte"] = *q.DateTo
		}
		filter["createdAt"] = created
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting activity entries: %w", err)
	}

	offset, limit := helpers.OffsetLimit(q.Page, q.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.ActivityLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("error decoding activity entries: %w", err)
	}
	return entries, total, nil
}

// Recent returns the newest entries since the given instant.
func (r *activityRepository) Recent(ctx context.Context, since time.Time, limit int64) ([]*models.ActivityLog, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": since}}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding recent activity: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.ActivityLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding recent activity: %w", err)
	}
	return entries, nil
}

// ByActor returns a page of one member's activity, newest first.
func (r *activityRepository) ByActor(ctx context.Context, actorID primitive.ObjectID, page, limit int) ([]*models.ActivityLog, int64, error) {
	filter := bson.M{"actor": actorID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting actor activity: %w", err)
	}

	offset, lim := helpers.OffsetLimit(page, limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(lim)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing actor activity: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.ActivityLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, fmt.Errorf("error decoding actor activity: %w", err)
	}
	return entries, total, nil
}

// ByTarget returns the timeline for a target label, matched
// case-insensitively, newest first.
func (r *activityRepository) ByTarget(ctx context.Context, target string) ([]*models.ActivityLog, error) {
	filter := bson.M{"target": primitive.Regex{Pattern: target, Options: "i"}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding target timeline: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*models.ActivityLog{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding target timeline: %w", err)
	}
	return entries, nil
}

// DeleteOlderThan bulk-purges entries created before the cutoff and
// returns how many were removed.
func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("error cleaning up activity entries: %w", err)
	}
	return result.DeletedCount, nil
}

// TypeDistribution groups all entries by type, most frequent first.
func (r *activityRepository) TypeDistribution(ctx context.Context) ([]dto.TypeCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating type distribution: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []dto.TypeCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("error decoding type distribution: %w", err)
	}
	return counts, nil
}

// DailyCounts buckets entries since the given instant by calendar day.
func (r *activityRepository) DailyCounts(ctx context.Context, since time.Time) ([]dto.DayCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$createdAt",
			}},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating daily counts: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []dto.DayCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("error decoding daily counts: %w", err)
	}
	return counts, nil
}

// MostActiveActors ranks actors by entry count since the given instant.
func (r *activityRepository) MostActiveActors(ctx context.Context, since time.Time, limit int) ([]dto.ActiveMember, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdAt": bson.M{"$gte": since}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"actor": "$actor", "actorName": "$actorName"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"_id":       0,
			"actor":     bson.M{"$toString": "$_id.actor"},
			"actorName": "$_id.actorName",
			"count":     1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating most active actors: %w", err)
	}
	defer cursor.Close(ctx)

	actors := []dto.ActiveMember{}
	if err := cursor.All(ctx, &actors); err != nil {
		return nil, fmt.Errorf("error decoding most active actors: %w", err)
	}
	return actors, nil
}
