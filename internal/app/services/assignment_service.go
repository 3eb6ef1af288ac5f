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

// AssignmentService contains the business logic for documentation
// assignments. Every write keeps the assignee topic counters in step by
// recounting from the assignments collection afterwards, and records an
// activity entry describing the mutation.
type AssignmentService struct {
	assignmentRepo repositories.AssignmentRepository
	memberRepo     repositories.TeamMemberRepository
	members        *TeamMemberService
	activity       *ActivityService
	notifier       ChangeNotifier
}

// NewAssignmentService creates a new AssignmentService instance.
func NewAssignmentService(assignmentRepo repositories.AssignmentRepository, memberRepo repositories.TeamMemberRepository, members *TeamMemberService, activity *ActivityService, notifier ChangeNotifier) *AssignmentService {
	return &AssignmentService{
		assignmentRepo: assignmentRepo,
		memberRepo:     memberRepo,
		members:        members,
		activity:       activity,
		notifier:       notifier,
	}
}

// Create stores a new assignment. The assignee must resolve to an existing
// member; their name is denormalized onto the assignment at write time.
func (s *AssignmentService) Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.Assignment, error) {
	assigneeID, err := primitive.ObjectIDFromHex(req.AssigneeID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid assignee id format")
	}

	assignee, err := s.memberRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, apperrors.ErrAssigneeNotFound
	}

	if !models.ValidCategory(req.Category) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCategory, fmt.Sprintf("unknown category: %s", req.Category))
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidPriority, fmt.Sprintf("unknown priority: %s", priority))
	}

	reviewers, err := parseObjectIDs(req.Reviewers)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid reviewer id format")
	}

	now := time.Now()
	assignment := &models.Assignment{
		Topic:          req.Topic,
		Category:       req.Category,
		Assignee:       assignee.Name,
		AssigneeID:     assignee.ID,
		Status:         models.StatusPending,
		Priority:       priority,
		DueDate:        req.DueDate,
		Description:    req.Description,
		Progress:       0,
		EstimatedHours: req.EstimatedHours,
		Reviewers:      reviewers,
		Tags:           req.Tags,
		Notes:          []models.Note{},
		IsDeleted:      false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if assignment.Tags == nil {
		assignment.Tags = []string{}
	}

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.refreshTopicCounts(ctx, assignee.ID)
	if err := s.activity.RecordEvent(ctx, models.ActivityAssignmentCreated, assignee.ID, assignee.Name, assignment.Topic,
		models.ActivityDetails{Description: fmt.Sprintf("%s was assigned to %s", assignee.Name, assignment.Topic)},
		models.ActivityMetadata{AssignmentID: &assignment.ID, TeamMemberID: &assignee.ID}); err != nil {
		return nil, err
	}
	s.notifier.Notify()

	return assignment, nil
}

// GetByID returns one assignment by ID. Soft-deleted assignments behave as
// missing.
func (s *AssignmentService) GetByID(ctx context.Context, id string) (*models.Assignment, error) {
	assignmentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid assignment id format")
	}

	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil || assignment.IsDeleted {
		return nil, apperrors.ErrAssignmentNotFound
	}
	return assignment, nil
}

// List returns a filtered, sorted, paginated page of assignments.
func (s *AssignmentService) List(ctx context.Context, q dto.AssignmentListQuery) (*dto.ListResponse, error) {
	if q.Status != "" && !models.ValidStatus(q.Status) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("unknown status: %s", q.Status))
	}
	if q.Category != "" && !models.ValidCategory(q.Category) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCategory, fmt.Sprintf("unknown category: %s", q.Category))
	}

	assignments, total, err := s.assignmentRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &dto.ListResponse{
		Items:       assignments,
		TotalPages:  helpers.TotalPages(total, q.Limit),
		CurrentPage: q.Page,
		Total:       total,
	}, nil
}

// Update applies a partial update. A status change triggers the transition
// stamps; an assignee change re-resolves the denormalized name and recounts
// both members' topic counters.
func (s *AssignmentService) Update(ctx context.Context, id string, req dto.UpdateAssignmentRequest) (*models.Assignment, error) {
	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := assignment.Status
	oldAssigneeID := assignment.AssigneeID

	if req.AssigneeID != nil {
		assigneeID, err := primitive.ObjectIDFromHex(*req.AssigneeID)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid assignee id format")
		}
		assignee, err := s.memberRepo.GetByID(ctx, assigneeID)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			return nil, apperrors.ErrAssigneeNotFound
		}
		assignment.AssigneeID = assignee.ID
		assignment.Assignee = assignee.Name
	}

	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("unknown status: %s", *req.Status))
		}
		assignment.Status = *req.Status
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCategory, fmt.Sprintf("unknown category: %s", *req.Category))
		}
		assignment.Category = *req.Category
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidPriority, fmt.Sprintf("unknown priority: %s", *req.Priority))
		}
		assignment.Priority = *req.Priority
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, apperrors.NewBadRequestError("progress must be between 0 and 100")
		}
		assignment.Progress = *req.Progress
	}
	if req.Reviewers != nil {
		reviewers, err := parseObjectIDs(req.Reviewers)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid reviewer id format")
		}
		assignment.Reviewers = reviewers
	}
	if req.Topic != nil {
		assignment.Topic = *req.Topic
	}
	if req.DueDate != nil {
		assignment.DueDate = *req.DueDate
	}
	if req.Description != nil {
		assignment.Description = *req.Description
	}
	if req.EstimatedHours != nil {
		assignment.EstimatedHours = req.EstimatedHours
	}
	if req.ActualHours != nil {
		assignment.ActualHours = req.ActualHours
	}
	if req.Tags != nil {
		assignment.Tags = req.Tags
	}
	if req.DocumentationURL != nil {
		assignment.DocumentationURL = *req.DocumentationURL
	}
	if req.GithubPrURL != nil {
		assignment.GithubPrURL = *req.GithubPrURL
	}

	now := time.Now()
	if assignment.Status != oldStatus {
		assignment.ApplyStatusTransition(now)
	}
	assignment.UpdatedAt = now

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if assignment.AssigneeID != oldAssigneeID {
		s.refreshTopicCounts(ctx, oldAssigneeID)
		s.refreshTopicCounts(ctx, assignment.AssigneeID)
	} else if assignment.Status != oldStatus {
		s.refreshTopicCounts(ctx, assignment.AssigneeID)
	}

	var recordErr error
	if assignment.Status != oldStatus {
		recordErr = s.activity.RecordEvent(ctx, models.ActivityStatusChanged, assignment.AssigneeID, assignment.Assignee, assignment.Topic,
			models.ActivityDetails{From: oldStatus, To: assignment.Status},
			models.ActivityMetadata{AssignmentID: &assignment.ID, TeamMemberID: &assignment.AssigneeID})
	} else {
		recordErr = s.activity.RecordEvent(ctx, models.ActivityAssignmentUpdated, assignment.AssigneeID, assignment.Assignee, assignment.Topic,
			models.ActivityDetails{Description: fmt.Sprintf("%s was updated", assignment.Topic)},
			models.ActivityMetadata{AssignmentID: &assignment.ID, TeamMemberID: &assignment.AssigneeID})
	}
	if recordErr != nil {
		return nil, recordErr
	}
	s.notifier.Notify()

	return assignment, nil
}

// UpdateStatus changes only the status (and optionally the progress) of an
// assignment, applying the transition stamps.
func (s *AssignmentService) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (*models.Assignment, error) {
	if !models.ValidStatus(req.Status) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidStatus, fmt.Sprintf("unknown status: %s", req.Status))
	}

	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := assignment.Status
	assignment.Status = req.Status
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return nil, apperrors.NewBadRequestError("progress must be between 0 and 100")
		}
		assignment.Progress = *req.Progress
	}

	now := time.Now()
	assignment.ApplyStatusTransition(now)
	assignment.UpdatedAt = now

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	s.refreshTopicCounts(ctx, assignment.AssigneeID)
	if assignment.Status != oldStatus {
		if err := s.activity.RecordEvent(ctx, models.ActivityStatusChanged, assignment.AssigneeID, assignment.Assignee, assignment.Topic,
			models.ActivityDetails{From: oldStatus, To: assignment.Status},
			models.ActivityMetadata{AssignmentID: &assignment.ID, TeamMemberID: &assignment.AssigneeID}); err != nil {
			return nil, err
		}
	}
	s.notifier.Notify()

	return assignment, nil
}

// Delete soft-deletes an assignment. The document stays behind for the
// audit trail but drops out of every listing and aggregate.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	assignmentID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.NewBadRequestError("invalid assignment id format")
	}

	assignment, err := s.assignmentRepo.SoftDelete(ctx, assignmentID)
	if err != nil {
		return err
	}
	if assignment == nil {
		return apperrors.ErrAssignmentNotFound
	}

	s.refreshTopicCounts(ctx, assignment.AssigneeID)
	if err := s.activity.RecordEvent(ctx, models.ActivityAssignmentUpdated, assignment.AssigneeID, assignment.Assignee, assignment.Topic,
		models.ActivityDetails{Description: fmt.Sprintf("%s was removed", assignment.Topic)},
		models.ActivityMetadata{AssignmentID: &assignment.ID, TeamMemberID: &assignment.AssigneeID}); err != nil {
		return err
	}
	s.notifier.Notify()

	return nil
}

// AddNote appends a note to an assignment. The author must resolve to an
// existing member.
func (s *AssignmentService) AddNote(ctx context.Context, id string, req dto.AddNoteRequest) (*models.Assignment, error) {
	assignment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	authorID, err := primitive.ObjectIDFromHex(req.AuthorID)
	if err != nil {
		return nil, apperrors.NewBadRequestError("invalid author id format")
	}
	author, err := s.memberRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperrors.ErrActorNotFound
	}

	note := models.Note{
		Author:    author.ID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	return s.assignmentRepo.AddNote(ctx, assignment.ID, note)
}

// DueToday returns the assignments due within the current calendar day,
// most urgent first, alongside everything already overdue.
func (s *AssignmentService) DueToday(ctx context.Context) (dueToday, overdue []*models.Assignment, err error) {
	now := time.Now()
	start, end := helpers.DayBounds(now)

	dueToday, err = s.assignmentRepo.DueBetween(ctx, start, end)
	if err != nil {
		return nil, nil, err
	}

	overdue, err = s.assignmentRepo.Overdue(ctx, start)
	if err != nil {
		return nil, nil, err
	}

	return dueToday, overdue, nil
}

// Overdue returns every open assignment whose due date has passed, the
// longest overdue first. Anything due before the end of the current day
// counts as overdue.
func (s *AssignmentService) Overdue(ctx context.Context) ([]*models.Assignment, error) {
	_, endOfDay := helpers.DayBounds(time.Now())
	return s.assignmentRepo.Overdue(ctx, endOfDay)
}

// refreshTopicCounts keeps the assignee counters in step after a write,
// best effort. The recount is idempotent so a logged failure here
// self-heals on the member's next assignment write.
func (s *AssignmentService) refreshTopicCounts(ctx context.Context, memberID primitive.ObjectID) {
	if err := s.members.RefreshTopicCounts(ctx, memberID); err != nil {
		logger.Warn().Err(err).Str("memberId", memberID.Hex()).Msg("Failed to refresh topic counts")
	}
}

func parseObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	parsed := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, oid)
	}
	return parsed, nil
}
