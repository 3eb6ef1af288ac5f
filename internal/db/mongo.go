package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/burakd/teamdocs/internal/config"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

// Collection names used across the application.
const (
	CollectionTeamMembers = "teammembers"
	CollectionAssignments = "assignments"
	CollectionActivityLog = "activitylogs"
)

// MongoDB database connection structure
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongoDB connects to the document database and pings it within the
// configured timeout.
func NewMongoDB(cfg *config.Config) (*MongoDB, error) {
	timeout := helpers.ParseDuration(cfg.Database.ConnectTimeout, 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Database.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.Database.Name),
	}, nil
}

// Close disconnects the underlying client.
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		return nil
	}
	return db.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the list and aggregation queries rely
// on. Index creation is idempotent, so this runs on every startup.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	members := db.Database.Collection(CollectionTeamMembers)
	if _, err := members.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	}); err != nil {
		return fmt.Errorf("failed to create team member email index: %w", err)
	}

	assignments := db.Database.Collection(CollectionAssignments)
	assignmentIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigneeId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}, {Key: "status", Value: 1}}},
	}
	if _, err := assignments.Indexes().CreateMany(ctx, assignmentIndexes); err != nil {
		return fmt.Errorf("failed to create assignment indexes: %w", err)
	}

	activity := db.Database.Collection(CollectionActivityLog)
	activityIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "actor", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := activity.Indexes().CreateMany(ctx, activityIndexes); err != nil {
		return fmt.Errorf("failed to create activity log indexes: %w", err)
	}

	return nil
}
