package services

import (
	"context"
	"sort"
	"time"

	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/repositories"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

const (
	weeklyProgressDays = 7
	productivityDays   = 30
	activeMemberDays   = 30
	activeMemberLimit  = 5
)

// AnalyticsService assembles the read-only dashboards. Counts come from
// the aggregation pipelines; every rate is derived here so the
// zero-denominator behavior stays uniform.
type AnalyticsService struct {
	analyticsRepo repositories.AnalyticsRepository
	activityRepo  repositories.ActivityRepository
}

// NewAnalyticsService creates a new AnalyticsService instance.
func NewAnalyticsService(analyticsRepo repositories.AnalyticsRepository, activityRepo repositories.ActivityRepository) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		activityRepo:  activityRepo,
	}
}

// Overview returns the headline numbers plus the status and category
// distributions.
func (s *AnalyticsService) Overview(ctx context.Context) (*dto.OverviewResponse, error) {
	now := time.Now()

	totalMembers, err := s.analyticsRepo.CountActiveMembers(ctx)
	if err != nil {
		return nil, err
	}
	totalAssignments, err := s.analyticsRepo.CountAssignments(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := s.analyticsRepo.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	overdue, err := s.analyticsRepo.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := helpers.DayBounds(now)
	dueToday, err := s.analyticsRepo.CountDueBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	statusDistribution, err := s.analyticsRepo.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}
	categoryDistribution, err := s.analyticsRepo.CategoryDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.OverviewResponse{
		Overview: dto.Overview{
			TotalMembers:     totalMembers,
			TotalAssignments: totalAssignments,
			CompletionRate:   helpers.Round1(helpers.Percent(completed, totalAssignments)),
			Overdue:          overdue,
			DueToday:         dueToday,
		},
		StatusDistribution:   statusDistribution,
		CategoryDistribution: categoryDistribution,
	}, nil
}

// TeamPerformance returns per-member assignment counts with completion
// rates, best performers first.
func (s *AnalyticsService) TeamPerformance(ctx context.Context) ([]dto.MemberPerformance, error) {
	performance, err := s.analyticsRepo.TeamPerformance(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	for i := range performance {
		p := &performance[i]
		p.CompletionRate = helpers.Round1(helpers.Percent(p.CompletedAssignments, p.TotalAssignments))
	}

	sort.SliceStable(performance, func(i, j int) bool {
		if performance[i].CompletionRate != performance[j].CompletionRate {
			return performance[i].CompletionRate > performance[j].CompletionRate
		}
		return performance[i].TotalAssignments > performance[j].TotalAssignments
	})

	return performance, nil
}

// WeeklyProgress returns the per-day status activity of the last week.
func (s *AnalyticsService) WeeklyProgress(ctx context.Context) ([]dto.DailyProgress, error) {
	since := helpers.DaysAgo(time.Now(), weeklyProgressDays)
	return s.analyticsRepo.WeeklyProgress(ctx, since)
}

// CategoryProgress returns per-category status breakdowns with completion
// rates.
func (s *AnalyticsService) CategoryProgress(ctx context.Context) ([]dto.CategoryProgress, error) {
	progress, err := s.analyticsRepo.CategoryProgress(ctx)
	if err != nil {
		return nil, err
	}

	for i := range progress {
		p := &progress[i]
		p.CompletionRate = helpers.Round1(helpers.Percent(p.Completed, p.Total))
	}

	return progress, nil
}

// Productivity returns recent completion volume, completion-duration
// statistics and the most active members.
func (s *AnalyticsService) Productivity(ctx context.Context) (*dto.ProductivityResponse, error) {
	now := time.Now()

	recentCompletions, err := s.analyticsRepo.RecentCompletions(ctx, helpers.DaysAgo(now, productivityDays))
	if err != nil {
		return nil, err
	}

	stats, err := s.analyticsRepo.CompletionStats(ctx)
	if err != nil {
		return nil, err
	}
	completionStats := dto.CompletionStats{}
	if stats != nil {
		completionStats = dto.CompletionStats{
			AvgCompletionDays: helpers.Round1(stats.AvgCompletionDays),
			MinCompletionDays: helpers.Round1(stats.MinCompletionDays),
			MaxCompletionDays: helpers.Round1(stats.MaxCompletionDays),
		}
	}

	mostActive, err := s.activityRepo.MostActiveActors(ctx, helpers.DaysAgo(now, activeMemberDays), activeMemberLimit)
	if err != nil {
		return nil, err
	}

	return &dto.ProductivityResponse{
		RecentCompletions: recentCompletions,
		CompletionStats:   completionStats,
		MostActiveMembers: mostActive,
	}, nil
}

// PriorityDistribution returns per-priority counts with completion rates.
func (s *AnalyticsService) PriorityDistribution(ctx context.Context) ([]dto.PriorityStats, error) {
	stats, err := s.analyticsRepo.PriorityDistribution(ctx)
	if err != nil {
		return nil, err
	}

	for i := range stats {
		p := &stats[i]
		p.CompletionRate = helpers.Round1(helpers.Percent(p.Completed, p.Count))
	}

	return stats, nil
}
