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
	"github.com/burakd/teamdocs/internal/pkg/dberrors"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

// TeamMemberRepository handles database operations for team members.
type TeamMemberRepository interface {
	Create(ctx context.Context, member *models.TeamMember) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error)
	FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.TeamMember, error)
	List(ctx context.Context, q dto.TeamMemberListQuery) ([]*models.TeamMember, int64, error)
	Update(ctx context.Context, member *models.TeamMember) error
	Deactivate(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error)
	SetTopicCounts(ctx context.Context, id primitive.ObjectID, assigned, completed int64) error
}

type teamMemberRepository struct {
	collection *mongo.Collection
}

// NewTeamMemberRepository creates a new team member repository.
func NewTeamMemberRepository(database *mongo.Database) TeamMemberRepository {
	return &teamMemberRepository{collection: memberCollection(database)}
}

// Create inserts a new team member.
func (r *teamMemberRepository) Create(ctx context.Context, member *models.TeamMember) error {
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.JoinDate.IsZero() {
		member.JoinDate = now
	}
	if member.Skills == nil {
		member.Skills = []string{}
	}

	result, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating team member: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		member.ID = id
	}
	return nil
}

// GetByID retrieves a team member by ID. Deactivated members are still
// returned; the caller decides whether that matters.
func (r *teamMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving team member: %w", err)
	}
	return &member, nil
}

// FindByEmail looks a member up by email, optionally excluding one id
// (used for uniqueness checks on update).
func (r *teamMemberRepository) FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.TeamMember, error) {
	filter := bson.M{"email": email}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}

	var member models.TeamMember
	err := r.collection.FindOne(ctx, filter).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("error finding team member by email: %w", err)
	}
	return &member, nil
}

// List returns a page of members plus the total matching count.
func (r *teamMemberRepository) List(ctx context.Context, q dto.TeamMemberListQuery) ([]*models.TeamMember, int64, error) {
	filter := bson.M{}
	if q.Role != "" {
		filter["role"] = q.Role
	}
	if q.IsActive != "all" {
		filter["isActive"] = q.IsActive != "false"
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting team members: %w", err)
	}

	offset, limit := helpers.OffsetLimit(q.Page, q.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing team members: %w", err)
	}
	defer cursor.Close(ctx)

	members := []*models.TeamMember{}
	if err := cursor.All(ctx, &members); err != nil {
		return nil, 0, fmt.Errorf("error decoding team members: %w", err)
	}
	return members, total, nil
}

// Update persists the full member document.
func (r *teamMemberRepository) Update(ctx context.Context, member *models.TeamMember) error {
	member.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": member.ID}, member)
	if err != nil {
		if dberrors.IsDuplicateKeyError(err) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating team member: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}

// Deactivate flips the active flag off and returns the updated record.
func (r *teamMemberRepository) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var member models.TeamMember
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrMemberNotFound
		}
		return nil, fmt.Errorf("error deactivating team member: %w", err)
	}
	return &member, nil
}

// SetTopicCounts writes the derived assignment counters for a member.
func (r *teamMemberRepository) SetTopicCounts(ctx context.Context, id primitive.ObjectID, assigned, completed int64) error {
	update := bson.M{"$set": bson.M{
		"assignedTopics":  assigned,
		"completedTopics": completed,
		"updatedAt":       time.Now(),
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating topic counts: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrMemberNotFound
	}
	return nil
}
