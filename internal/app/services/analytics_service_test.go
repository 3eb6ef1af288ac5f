package services

import (
	"context"
	"testing"

	"github.com/burakd/teamdocs/internal/app/models/dto"
)

func TestOverviewComputesCompletionRate(t *testing.T) {
	repo := &mockAnalyticsRepo{
		activeMembers:    4,
		totalAssignments: 8,
		completed:        3,
		overdue:          1,
		dueToday:         2,
	}
	service := NewAnalyticsService(repo, &mockActivityRepo{})

	overview, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}

	if overview.Overview.CompletionRate != 37.5 {
		t.Errorf("expected completion rate 37.5, got %v", overview.Overview.CompletionRate)
	}
	if overview.Overview.TotalMembers != 4 || overview.Overview.Overdue != 1 || overview.Overview.DueToday != 2 {
		t.Errorf("unexpected overview numbers: %+v", overview.Overview)
	}
}

func TestOverviewZeroAssignments(t *testing.T) {
	service := NewAnalyticsService(&mockAnalyticsRepo{}, &mockActivityRepo{})

	overview, err := service.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview returned error: %v", err)
	}
	if overview.Overview.CompletionRate != 0 {
		t.Errorf("expected rate 0 on empty board, got %v", overview.Overview.CompletionRate)
	}
}

func TestTeamPerformanceSortsByRate(t *testing.T) {
	repo := &mockAnalyticsRepo{
		performance: []dto.MemberPerformance{
			{Name: "Low", TotalAssignments: 4, CompletedAssignments: 1},
			{Name: "Idle", TotalAssignments: 0, CompletedAssignments: 0},
			{Name: "High", TotalAssignments: 3, CompletedAssignments: 3},
		},
	}
	service := NewAnalyticsService(repo, &mockActivityRepo{})

	performance, err := service.TeamPerformance(context.Background())
	if err != nil {
		t.Fatalf("TeamPerformance returned error: %v", err)
	}

	if performance[0].Name != "High" || performance[0].CompletionRate != 100 {
		t.Errorf("expected High first at 100%%, got %+v", performance[0])
	}
	if performance[1].Name != "Low" || performance[1].CompletionRate != 25 {
		t.Errorf("expected Low second at 25%%, got %+v", performance[1])
	}
	if performance[2].Name != "Idle" || performance[2].CompletionRate != 0 {
		t.Errorf("expected member without assignments last at 0%%, got %+v", performance[2])
	}
}

func TestCategoryProgressRates(t *testing.T) {
	repo := &mockAnalyticsRepo{
		categoryProgress: []dto.CategoryProgress{
			{Category: "backend", Total: 3, Completed: 2},
			{Category: "frontend", Total: 0, Completed: 0},
		},
	}
	service := NewAnalyticsService(repo, &mockActivityRepo{})

	progress, err := service.CategoryProgress(context.Background())
	if err != nil {
		t.Fatalf("CategoryProgress returned error: %v", err)
	}

	if progress[0].CompletionRate != 66.7 {
		t.Errorf("expected backend rate 66.7, got %v", progress[0].CompletionRate)
	}
	if progress[1].CompletionRate != 0 {
		t.Errorf("expected empty category rate 0, got %v", progress[1].CompletionRate)
	}
}

func TestProductivityWithoutCompletions(t *testing.T) {
	service := NewAnalyticsService(&mockAnalyticsRepo{}, &mockActivityRepo{})

	productivity, err := service.Productivity(context.Background())
	if err != nil {
		t.Fatalf("Productivity returned error: %v", err)
	}
	if productivity.CompletionStats.AvgCompletionDays != 0 {
		t.Errorf("expected zeroed completion stats, got %+v", productivity.CompletionStats)
	}
}

func TestProductivityRoundsDurations(t *testing.T) {
	repo := &mockAnalyticsRepo{
		recentCompletions: 2,
		completionStats: &dto.CompletionStats{
			AvgCompletionDays: 3.14159,
			MinCompletionDays: 0.5,
			MaxCompletionDays: 9.99,
		},
	}
	service := NewAnalyticsService(repo, &mockActivityRepo{})

	productivity, err := service.Productivity(context.Background())
	if err != nil {
		t.Fatalf("Productivity returned error: %v", err)
	}
	if productivity.CompletionStats.AvgCompletionDays != 3.1 {
		t.Errorf("expected avg rounded to 3.1, got %v", productivity.CompletionStats.AvgCompletionDays)
	}
	if productivity.CompletionStats.MaxCompletionDays != 10 {
		t.Errorf("expected max rounded to 10, got %v", productivity.CompletionStats.MaxCompletionDays)
	}
}

func TestPriorityDistributionRates(t *testing.T) {
	repo := &mockAnalyticsRepo{
		priorities: []dto.PriorityStats{
			{Priority: "high", Count: 4, Completed: 3},
			{Priority: "low", Count: 0, Completed: 0},
		},
	}
	service := NewAnalyticsService(repo, &mockActivityRepo{})

	stats, err := service.PriorityDistribution(context.Background())
	if err != nil {
		t.Fatalf("PriorityDistribution returned error: %v", err)
	}
	if stats[0].CompletionRate != 75 {
		t.Errorf("expected high rate 75, got %v", stats[0].CompletionRate)
	}
	if stats[1].CompletionRate != 0 {
		t.Errorf("expected empty priority rate 0, got %v", stats[1].CompletionRate)
	}
}
