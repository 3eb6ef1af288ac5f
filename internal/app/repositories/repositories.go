package repositories

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/burakd/teamdocs/internal/db"
)

// Repositories is the container for all data access dependencies.
type Repositories struct {
	TeamMemberRepository TeamMemberRepository
	AssignmentRepository AssignmentRepository
	ActivityRepository   ActivityRepository
	AnalyticsRepository  AnalyticsRepository
}

// NewRepositories creates all repositories backed by the given database.
func NewRepositories(database *mongo.Database) *Repositories {
	return &Repositories{
		TeamMemberRepository: NewTeamMemberRepository(database),
		AssignmentRepository: NewAssignmentRepository(database),
		ActivityRepository:   NewActivityRepository(database),
		AnalyticsRepository:  NewAnalyticsRepository(database),
	}
}

func memberCollection(database *mongo.Database) *mongo.Collection {
	return database.Collection(db.CollectionTeamMembers)
}

func assignmentCollection(database *mongo.Database) *mongo.Collection {
	return database.Collection(db.CollectionAssignments)
}

func activityCollection(database *mongo.Database) *mongo.Collection {
	return database.Collection(db.CollectionActivityLog)
}
