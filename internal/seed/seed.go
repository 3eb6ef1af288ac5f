package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/repositories"
	"github.com/burakd/teamdocs/internal/pkg/logger"
)

type seedMember struct {
	name   string
	email  string
	role   string
	skills []string
}

type seedAssignment struct {
	topic       string
	category    string
	assignee    string // seed member name
	status      string
	priority    string
	dueInDays   int
	description string
	progress    int
}

var defaultMembers = []seedMember{
	{"John Smith", "john.smith@company.com", models.RoleDeveloper, []string{"Java", "Spring Boot", "Microservices"}},
	{"Jane Doe", "jane.doe@company.com", models.RoleDeveloper, []string{"Java", "OOP", "Design Patterns"}},
	{"Mike Johnson", "mike.johnson@company.com", models.RoleLead, []string{"Java", "Spring Boot", "Architecture"}},
	{"Sarah Wilson", "sarah.wilson@company.com", models.RoleDeveloper, []string{"React", "JavaScript", "Frontend"}},
}

var defaultAssignments = []seedAssignment{
	{"Abstract Classes in Java", models.CategoryCoreJava, "John Smith", models.StatusInProgress, models.PriorityHigh, 4, "Document abstract classes with real-world examples", 60},
	{"Object-Oriented Programming", models.CategoryCoreJava, "Jane Doe", models.StatusPending, models.PriorityMedium, 6, "Cover OOP principles with examples", 0},
	{"Spring Boot Fundamentals", models.CategoryBackend, "Mike Johnson", models.StatusReview, models.PriorityHigh, 3, "Complete guide to Spring Boot basics", 90},
	{"React.js Fundamentals", models.CategoryFrontend, "Sarah Wilson", models.StatusCompleted, models.PriorityMedium, 1, "Comprehensive React.js documentation", 100},
}

// CreateDefaultData populates empty collections with a starter team and
// board so a fresh install has something to show. Non-empty collections
// are left untouched.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories) error {
	_, memberCount, err := repos.TeamMemberRepository.List(ctx, dto.TeamMemberListQuery{Page: 1, Limit: 1, IsActive: "all"})
	if err != nil {
		return fmt.Errorf("error checking team members: %w", err)
	}
	if memberCount > 0 {
		logger.Debug().Msg("Team members already present, skipping seed")
		return nil
	}

	now := time.Now()
	membersByName := make(map[string]*models.TeamMember, len(defaultMembers))

	for _, m := range defaultMembers {
		member := &models.TeamMember{
			Name:      m.name,
			Email:     m.email,
			Role:      m.role,
			Skills:    m.skills,
			JoinDate:  now,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repos.TeamMemberRepository.Create(ctx, member); err != nil {
			return fmt.Errorf("error seeding member %s: %w", m.name, err)
		}
		membersByName[m.name] = member
	}

	for _, a := range defaultAssignments {
		assignee := membersByName[a.assignee]
		assignment := &models.Assignment{
			Topic:       a.topic,
			Category:    a.category,
			Assignee:    assignee.Name,
			AssigneeID:  assignee.ID,
			Status:      a.status,
			Priority:    a.priority,
			DueDate:     now.AddDate(0, 0, a.dueInDays),
			Description: a.description,
			Progress:    a.progress,
			Reviewers:   nil,
			Tags:        []string{},
			Notes:       []models.Note{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		assignment.ApplyStatusTransition(now)
		if err := repos.AssignmentRepository.Create(ctx, assignment); err != nil {
			return fmt.Errorf("error seeding assignment %s: %w", a.topic, err)
		}
	}

	for _, member := range membersByName {
		assigned, completed, err := repos.AssignmentRepository.CountByAssignee(ctx, member.ID)
		if err != nil {
			return fmt.Errorf("error counting seeded assignments: %w", err)
		}
		if err := repos.TeamMemberRepository.SetTopicCounts(ctx, member.ID, assigned, completed); err != nil {
			return fmt.Errorf("error setting seeded topic counts: %w", err)
		}
	}

	logger.Info().
		Int("members", len(defaultMembers)).
		Int("assignments", len(defaultAssignments)).
		Msg("Default data created")
	return nil
}
