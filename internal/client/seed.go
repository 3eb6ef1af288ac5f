package client

import (
	"time"

	"github.com/burakd/teamdocs/internal/app/models"
)

// Built-in fallback data shown when neither the API nor the cache is
// available. It mirrors the server's default seed.
func seedMembers() []models.TeamMember {
	now := time.Now()
	return []models.TeamMember{
		{Name: "John Smith", Email: "john.smith@company.com", Role: models.RoleDeveloper,
			Skills: []string{"Java", "Spring Boot", "Microservices"}, IsActive: true, JoinDate: now},
		{Name: "Jane Doe", Email: "jane.doe@company.com", Role: models.RoleDeveloper,
			Skills: []string{"Java", "OOP", "Design Patterns"}, IsActive: true, JoinDate: now},
		{Name: "Mike Johnson", Email: "mike.johnson@company.com", Role: models.RoleLead,
			Skills: []string{"Java", "Spring Boot", "Architecture"}, IsActive: true, JoinDate: now},
		{Name: "Sarah Wilson", Email: "sarah.wilson@company.com", Role: models.RoleDeveloper,
			Skills: []string{"React", "JavaScript", "Frontend"}, IsActive: true, JoinDate: now},
	}
}

func seedAssignments() []models.Assignment {
	now := time.Now()
	return []models.Assignment{
		{Topic: "Abstract Classes in Java", Category: models.CategoryCoreJava, Assignee: "John Smith",
			Status: models.StatusInProgress, Priority: models.PriorityHigh,
			DueDate: now.AddDate(0, 0, 4), Progress: 60,
			Description: "Document abstract classes with real-world examples"},
		{Topic: "Object-Oriented Programming", Category: models.CategoryCoreJava, Assignee: "Jane Doe",
			Status: models.StatusPending, Priority: models.PriorityMedium,
			DueDate: now.AddDate(0, 0, 6), Progress: 0,
			Description: "Cover OOP principles with examples"},
		{Topic: "Spring Boot Fundamentals", Category: models.CategoryBackend, Assignee: "Mike Johnson",
			Status: models.StatusReview, Priority: models.PriorityHigh,
			DueDate: now.AddDate(0, 0, 3), Progress: 90,
			Description: "Complete guide to Spring Boot basics"},
		{Topic: "React.js Fundamentals", Category: models.CategoryFrontend, Assignee: "Sarah Wilson",
			Status: models.StatusCompleted, Priority: models.PriorityMedium,
			DueDate: now.AddDate(0, 0, 1), Progress: 100,
			Description: "Comprehensive React.js documentation"},
	}
}
