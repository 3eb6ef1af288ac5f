package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/repositories"
	"github.com/burakd/teamdocs/internal/pkg/apperrors"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
	"github.com/burakd/teamdocs/internal/pkg/logger"
)

const (
	recentActivityWindow = 24 * time.Hour
	recentActivityLimit  = 50
	defaultRetentionDays = 90
	statsDailyDays       = 7
	statsActorDays       = 30
	statsActorLimit      = 5
)

// ActivityService handles the append-only activity log.
type ActivityService struct {
	activityRepo repositories.ActivityRepository
	memberRepo   repositories.TeamMemberRepository
}

// NewActivityService creates a new ActivityService instance.
func NewActivityService(activityRepo repositories.ActivityRepository, memberRepo repositories.TeamMemberRepository) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		memberRepo:   memberRepo,
	}
}

// Record validates and stores a manually submitted activity entry. The
// actor name is resolved from the member record when the caller omits it.
func (s *ActivityService) Record(ctx context.Context, req dto.RecordActivityRequest) (*models.ActivityLog, error) {
	activityType := models.ActivityType(req.Type)
	if !models.ValidActivityType(activityType) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidActivityType, fmt.Sprintf("unknown activity type: %s", req.Type))
	}

	actorID, err := primitive.ObjectIDFromHex(req.Actor)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid actor id format")
	}

	actorName := req.ActorName
	if actorName == "" {
		member, err := s.memberRepo.GetByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, apperrors.ErrActorNotFound
		}
		actorName = member.Name
	}

	entry := &models.ActivityLog{
		Type:      activityType,
		Actor:     actorID,
		ActorName: actorName,
		Target:    req.Target,
		Details:   req.Details,
		Metadata:  req.Metadata,
		CreatedAt: time.Now(),
	}

	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordEvent stores a system-generated activity entry. The mutation it
// documents has already been committed by the caller; a failed insert is
// returned so the request still surfaces the gap in the audit trail.
func (s *ActivityService) RecordEvent(ctx context.Context, activityType models.ActivityType, actor primitive.ObjectID, actorName, target string, details models.ActivityDetails, metadata models.ActivityMetadata) error {
	entry := &models.ActivityLog{
		Type:      activityType,
		Actor:     actor,
		ActorName: actorName,
		Target:    target,
		Details:   details,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
	return s.activityRepo.Insert(ctx, entry)
}

// List returns a filtered, paginated page of activity entries.
func (s *ActivityService) List(ctx context.Context, q dto.ActivityListQuery) (*dto.ListResponse, error) {
	entries, total, err := s.activityRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &dto.ListResponse{
		Items:       entries,
		TotalPages:  helpers.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Total:       total,
	}, nil
}

// Recent returns the last day of activity, capped at 50 entries.
func (s *ActivityService) Recent(ctx context.Context) ([]*models.ActivityLog, error) {
	since := time.Now().Add(-recentActivityWindow)
	return s.activityRepo.Recent(ctx, since, recentActivityLimit)
}

// ByMember returns the activity performed by one member, newest first.
func (s *ActivityService) ByMember(ctx context.Context, memberID string, page, limit int) (*dto.ListResponse, error) {
	actorID, err := primitive.ObjectIDFromHex(memberID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid team member id format")
	}

	entries, total, err := s.activityRepo.ByActor(ctx, actorID, page, limit)
	if err != nil {
		return nil, err
	}

	return &dto.ListResponse{
		Items:       entries,
		TotalPages:  helpers.TotalPages(total, limit),
		CurrentPage: page,
		Total:       total,
	}, nil
}

// Timeline returns every entry touching one target, newest first.
func (s *ActivityService) Timeline(ctx context.Context, target string) ([]*models.ActivityLog, error) {
	if target == "" {
		return nil, apperrors.NewBadRequestError("target is required")
	}
	return s.activityRepo.ByTarget(ctx, target)
}

// Stats aggregates the activity log: type distribution over all time, daily
// volume over the last week, most active members over the last month.
func (s *ActivityService) Stats(ctx context.Context) (*dto.ActivityStatsResponse, error) {
	now := time.Now()

	typeDistribution, err := s.activityRepo.TypeDistribution(ctx)
	if err != nil {
		return nil, err
	}

	dailyActivity, err := s.activityRepo.DailyCounts(ctx, helpers.DaysAgo(now, statsDailyDays))
	if err != nil {
		return nil, err
	}

	mostActive, err := s.activityRepo.MostActiveActors(ctx, helpers.DaysAgo(now, statsActorDays), statsActorLimit)
	if err != nil {
		return nil, err
	}

	return &dto.ActivityStatsResponse{
		TypeDistribution:  typeDistribution,
		DailyActivity:     dailyActivity,
		MostActiveMembers: mostActive,
	}, nil
}

// Cleanup deletes entries older than daysOld days (90 when zero) and
// returns the number removed.
func (s *ActivityService) Cleanup(ctx context.Context, daysOld int) (int64, error) {
	if daysOld < 0 {
		return 0, apperrors.NewBadRequestError("daysOld must be a positive number")
	}
	if daysOld == 0 {
		daysOld = defaultRetentionDays
	}

	cutoff := helpers.DaysAgo(time.Now(), daysOld)
	deleted, err := s.activityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("deleted", deleted).Int("daysOld", daysOld).Msg("Activity log cleanup completed")
	return deleted, nil
}
