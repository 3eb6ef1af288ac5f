package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/repositories"
	"github.com/burakd/teamdocs/internal/pkg/apperrors"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
)

const recentAssignmentLimit = 5

// TeamMemberService contains the business logic for team members.
type TeamMemberService struct {
	memberRepo     repositories.TeamMemberRepository
	assignmentRepo repositories.AssignmentRepository
	activity       *ActivityService
	notifier       ChangeNotifier
}

// NewTeamMemberService creates a new TeamMemberService instance.
func NewTeamMemberService(memberRepo repositories.TeamMemberRepository, assignmentRepo repositories.AssignmentRepository, activity *ActivityService, notifier ChangeNotifier) *TeamMemberService {
	return &TeamMemberService{
		memberRepo:     memberRepo,
		assignmentRepo: assignmentRepo,
		activity:       activity,
		notifier:       notifier,
	}
}

// normalizeEmail lowercases and trims an address so the stored form is
// canonical and the uniqueness pre-check matches regardless of casing.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create registers a new team member. Email is stored lowercased and must
// be unique; the role defaults to developer.
func (s *TeamMemberService) Create(ctx context.Context, req dto.CreateTeamMemberRequest) (*models.TeamMember, error) {
	role := req.Role
	if role == "" {
		role = models.RoleDeveloper
	}
	if !models.ValidRole(role) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidRole, fmt.Sprintf("unknown role: %s", role))
	}

	email := normalizeEmail(req.Email)
	existing, err := s.memberRepo.FindByEmail(ctx, email, nil)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	now := time.Now()
	member := &models.TeamMember{
		Name:           req.Name,
		Email:          email,
		Role:           role,
		Skills:         req.Skills,
		GithubUsername: req.GithubUsername,
		JoinDate:       now,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if member.Skills == nil {
		member.Skills = []string{}
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}

	if err := s.activity.RecordEvent(ctx, models.ActivityMemberAdded, member.ID, member.Name, member.Name,
		models.ActivityDetails{Description: fmt.Sprintf("%s joined the team as %s", member.Name, member.Role)},
		models.ActivityMetadata{TeamMemberID: &member.ID}); err != nil {
		return nil, err
	}
	s.notifier.Notify()

	return member, nil
}

// GetByID returns one member by ID. Deactivated members are still
// returned; only a missing record is an error.
func (s *TeamMemberService) GetByID(ctx context.Context, id string) (*models.TeamMember, error) {
	memberID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid team member id format")
	}

	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperrors.ErrMemberNotFound
	}
	return member, nil
}

// List returns a filtered, paginated page of team members.
func (s *TeamMemberService) List(ctx context.Context, q dto.TeamMemberListQuery) (*dto.ListResponse, error) {
	members, total, err := s.memberRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &dto.ListResponse{
		Items:       members,
		TotalPages:  helpers.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Total:       total,
	}, nil
}

// Update applies a partial update to a member. A changed email is checked
// for uniqueness against every other member.
func (s *TeamMemberService) Update(ctx context.Context, id string, req dto.UpdateTeamMemberRequest) (*models.TeamMember, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		if email := normalizeEmail(*req.Email); email != member.Email {
			existing, err := s.memberRepo.FindByEmail(ctx, email, &member.ID)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperrors.ErrEmailAlreadyExists
			}
			member.Email = email
		}
	}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidRole, fmt.Sprintf("unknown role: %s", *req.Role))
		}
		member.Role = *req.Role
	}
	if req.Name != nil {
		member.Name = *req.Name
	}
	if req.Skills != nil {
		member.Skills = req.Skills
	}
	if req.GithubUsername != nil {
		member.GithubUsername = *req.GithubUsername
	}
	if req.IsActive != nil {
		member.IsActive = *req.IsActive
	}
	member.UpdatedAt = time.Now()

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}

	if err := s.activity.RecordEvent(ctx, models.ActivityMemberUpdated, member.ID, member.Name, member.Name,
		models.ActivityDetails{Description: fmt.Sprintf("%s's profile was updated", member.Name)},
		models.ActivityMetadata{TeamMemberID: &member.ID}); err != nil {
		return nil, err
	}
	s.notifier.Notify()

	return member, nil
}

// Deactivate soft-removes a member. The record and its history survive; the
// member simply stops appearing in active listings and rosters.
func (s *TeamMemberService) Deactivate(ctx context.Context, id string) (*models.TeamMember, error) {
	memberID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid team member id format")
	}

	member, err := s.memberRepo.Deactivate(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperrors.ErrMemberNotFound
	}

	if err := s.activity.RecordEvent(ctx, models.ActivityMemberUpdated, member.ID, member.Name, member.Name,
		models.ActivityDetails{Description: fmt.Sprintf("%s was deactivated", member.Name)},
		models.ActivityMetadata{TeamMemberID: &member.ID}); err != nil {
		return nil, err
	}
	s.notifier.Notify()

	return member, nil
}

// Stats returns a member's per-status assignment rollup and their most
// recently touched assignments.
func (s *TeamMemberService) Stats(ctx context.Context, id string) (*dto.TeamMemberStatsResponse, error) {
	member, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	stats, err := s.assignmentRepo.StatsByAssignee(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	recent, err := s.assignmentRepo.RecentByAssignee(ctx, member.ID, recentAssignmentLimit)
	if err != nil {
		return nil, err
	}

	snapshots := make([]dto.AssignmentSnapshot, 0, len(recent))
	for _, a := range recent {
		snapshots = append(snapshots, dto.AssignmentSnapshot{
			ID:       a.ID.Hex(),
			Topic:    a.Topic,
			Status:   a.Status,
			DueDate:  a.DueDate.Format("2006-01-02"),
			Progress: a.Progress,
		})
	}

	return &dto.TeamMemberStatsResponse{
		Member:            member,
		Stats:             stats,
		RecentAssignments: snapshots,
	}, nil
}

// RefreshTopicCounts recounts the member's assigned and completed topics
// from the assignments collection and stores the result. The recount is
// idempotent, so a missed trigger heals on the next write.
func (s *TeamMemberService) RefreshTopicCounts(ctx context.Context, memberID primitive.ObjectID) error {
	assigned, completed, err := s.assignmentRepo.CountByAssignee(ctx, memberID)
	if err != nil {
		return fmt.Errorf("error recounting topics: %w", err)
	}
	return s.memberRepo.SetTopicCounts(ctx, memberID, assigned, completed)
}
