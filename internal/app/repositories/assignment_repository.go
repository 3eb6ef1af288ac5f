package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/pkg/apperrors"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

// AssignmentRepository handles database operations for assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	List(ctx context.Context, q dto.AssignmentListQuery) ([]*models.Assignment, int64, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) (*models.Assignment, error)
	CountByAssignee(ctx context.Context, memberID primitive.ObjectID) (assigned, completed int64, err error)
	DueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error)
	Overdue(ctx context.Context, before time.Time) ([]*models.Assignment, error)
	RecentByAssignee(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Assignment, error)
	StatsByAssignee(ctx context.Context, memberID primitive.ObjectID) ([]dto.StatusBucket, error)
}

type assignmentRepository struct {
	collection *mongo.Collection
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(database *mongo.Database) AssignmentRepository {
	return &assignmentRepository{collection: assignmentCollection(database)}
}

// Create inserts a new assignment.
func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	now := time.Now()
	assignment.CreatedAt = now
	assignment.UpdatedAt = now
	if assignment.Tags == nil {
		assignment.Tags = []string{}
	}
	if assignment.Reviewers == nil {
		assignment.Reviewers = []primitive.ObjectID{}
	}
	if assignment.Notes == nil {
		assignment.Notes = []models.Note{}
	}

	result, err := r.collection.InsertOne(ctx, assignment)
	if err != nil {
		return fmt.Errorf("error creating assignment: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		assignment.ID = id
	}
	return nil
}

// GetByID retrieves an assignment regardless of its soft-delete flag; the
// service layer turns deleted hits into not-found.
func (r *assignmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving assignment: %w", err)
	}
	return &assignment, nil
}

// listFilter builds the AND filter for the list query. The search term
// OR-matches topic, assignee and description case-insensitively.
func listFilter(q dto.AssignmentListQuery) bson.M {
	filter := bson.M{"isDeleted": false}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.AssigneeID != "" {
		if id, err := primitive.ObjectIDFromHex(q.AssigneeID); err == nil {
			filter["assigneeId"] = id
		}
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: q.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"topic": pattern},
			bson.M{"assignee": pattern},
			bson.M{"description": pattern},
		}
	}
	return filter
}

// List returns a page of non-deleted assignments plus the total count.
func (r *assignmentRepository) List(ctx context.Context, q dto.AssignmentListQuery) ([]*models.Assignment, int64, error) {
	filter := listFilter(q)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting assignments: %w", err)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortDir := -1
	if q.SortOrder == "asc" {
		sortDir = 1
	}

	offset, limit := helpers.OffsetLimit(q.Page, q.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: sortBy, Value: sortDir}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing assignments: %w", err)
	}
	defer cursor.Close(ctx)

	assignments := []*models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, 0, fmt.Errorf("error decoding assignments: %w", err)
	}
	return assignments, total, nil
}

// Update persists the full assignment document.
func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	assignment.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": assignment.ID}, assignment)
	if err != nil {
		return fmt.Errorf("error updating assignment: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// SoftDelete flips the deleted flag and returns the updated record so the
// caller can refresh the assignee's counters.
func (r *assignmentRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	update := bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var assignment models.Assignment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error deleting assignment: %w", err)
	}
	return &assignment, nil
}

// AddNote appends an embedded note and returns the updated assignment.
func (r *assignmentRepository) AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) (*models.Assignment, error) {
	update := bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var assignment models.Assignment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&assignment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("error adding note: %w", err)
	}
	return &assignment, nil
}

// CountByAssignee recounts a member's live assignments. This is the full
// recount behind the derived member counters: idempotent and self-healing
// against missed triggers.
func (r *assignmentRepository) CountByAssignee(ctx context.Context, memberID primitive.ObjectID) (int64, int64, error) {
	assigned, err := r.collection.CountDocuments(ctx, bson.M{
		"assigneeId": memberID,
		"isDeleted":  false,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("error counting assigned topics: %w", err)
	}

	completed, err := r.collection.CountDocuments(ctx, bson.M{
		"assigneeId": memberID,
		"status":     models.StatusCompleted,
		"isDeleted":  false,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("error counting completed topics: %w", err)
	}

	return assigned, completed, nil
}

// DueBetween returns open assignments with a due date in [from, to),
// highest priority first.
func (r *assignmentRepository) DueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error) {
	filter := bson.M{
		"dueDate":   bson.M{"$gte": from, "$lt": to},
		"status":    bson.M{"$ne": models.StatusCompleted},
		"isDeleted": false,
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "dueDate", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding due assignments: %w", err)
	}
	defer cursor.Close(ctx)

	assignments := []*models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("error decoding due assignments: %w", err)
	}
	return assignments, nil
}

// Overdue returns open assignments whose due date has passed.
func (r *assignmentRepository) Overdue(ctx context.Context, before time.Time) ([]*models.Assignment, error) {
	filter := bson.M{
		"dueDate":   bson.M{"$lt": before},
		"status":    bson.M{"$ne": models.StatusCompleted},
		"isDeleted": false,
	}
	opts := options.Find().SetSort(bson.D{{Key: "dueDate", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding overdue assignments: %w", err)
	}
	defer cursor.Close(ctx)

	assignments := []*models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("error decoding overdue assignments: %w", err)
	}
	return assignments, nil
}

// RecentByAssignee returns a member's most recently updated assignments.
func (r *assignmentRepository) RecentByAssignee(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Assignment, error) {
	filter := bson.M{"assigneeId": memberID, "isDeleted": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "updatedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding recent assignments: %w", err)
	}
	defer cursor.Close(ctx)

	assignments := []*models.Assignment{}
	if err := cursor.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("error decoding recent assignments: %w", err)
	}
	return assignments, nil
}

// StatsByAssignee groups a member's live assignments by status, summing
// the recorded actual hours per bucket.
func (r *assignmentRepository) StatsByAssignee(ctx context.Context, memberID primitive.ObjectID) ([]dto.StatusBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"assigneeId": memberID, "isDeleted": false}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$status",
			"count":      bson.M{"$sum": 1},
			"totalHours": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$actualHours", 0}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("error aggregating member stats: %w", err)
	}
	defer cursor.Close(ctx)

	stats := []dto.StatusBucket{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("error decoding member stats: %w", err)
	}
	return stats, nil
}
