package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/pkg/apperrors"
)

func newActivityFixture(members ...*models.TeamMember) (*ActivityService, *mockActivityRepo, *mockMemberRepo) {
	memberRepo := newMockMemberRepo(members...)
	activityRepo := &mockActivityRepo{}
	return NewActivityService(activityRepo, memberRepo), activityRepo, memberRepo
}

func TestRecordResolvesActorName(t *testing.T) {
	member := &models.TeamMember{Name: "Jane Doe", IsActive: true}
	service, _, _ := newActivityFixture(member)

	entry, err := service.Record(context.Background(), dto.RecordActivityRequest{
		Type:   string(models.ActivityStatusChanged),
		Actor:  member.ID.Hex(),
		Target: "Generics in Java",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	if entry.ActorName != "Jane Doe" {
		t.Errorf("expected actor name resolved from member record, got %q", entry.ActorName)
	}
	if entry.CreatedAt.IsZero() {
		t.Error("expected createdAt to be stamped")
	}
}

func TestRecordKeepsExplicitActorName(t *testing.T) {
	member := &models.TeamMember{Name: "Jane Doe", IsActive: true}
	service, _, _ := newActivityFixture(member)

	entry, err := service.Record(context.Background(), dto.RecordActivityRequest{
		Type:      string(models.ActivityMemberUpdated),
		Actor:     member.ID.Hex(),
		ActorName: "J. Doe",
		Target:    "Jane Doe",
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if entry.ActorName != "J. Doe" {
		t.Errorf("expected explicit actor name kept, got %q", entry.ActorName)
	}
}

func TestRecordRejectsUnknownType(t *testing.T) {
	service, _, _ := newActivityFixture()

	_, err := service.Record(context.Background(), dto.RecordActivityRequest{
		Type:   "assignment_archived",
		Actor:  "64b000000000000000000001",
		Target: "X",
	})
	if !errors.Is(err, apperrors.ErrInvalidActivityType) {
		t.Errorf("expected ErrInvalidActivityType, got %v", err)
	}
}

func TestRecordRejectsUnknownActor(t *testing.T) {
	service, _, _ := newActivityFixture()

	_, err := service.Record(context.Background(), dto.RecordActivityRequest{
		Type:   string(models.ActivityStatusChanged),
		Actor:  "64b000000000000000000001",
		Target: "X",
	})
	if !errors.Is(err, apperrors.ErrActorNotFound) {
		t.Errorf("expected ErrActorNotFound, got %v", err)
	}
}

func TestCleanupDefaultsToNinetyDays(t *testing.T) {
	service, activityRepo, _ := newActivityFixture()

	old := &models.ActivityLog{Target: "old", CreatedAt: time.Now().AddDate(0, 0, -120)}
	fresh := &models.ActivityLog{Target: "fresh", CreatedAt: time.Now().AddDate(0, 0, -10)}
	activityRepo.entries = []*models.ActivityLog{old, fresh}

	deleted, err := service.Cleanup(context.Background(), 0)
	if err != nil {
		t.Fatalf("Cleanup returned error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 entry deleted, got %d", deleted)
	}
	if len(activityRepo.entries) != 1 || activityRepo.entries[0].Target != "fresh" {
		t.Errorf("expected only the fresh entry to survive, got %+v", activityRepo.entries)
	}
}

func TestCleanupRejectsNegativeWindow(t *testing.T) {
	service, _, _ := newActivityFixture()

	if _, err := service.Cleanup(context.Background(), -1); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}
}

func TestTimelineRequiresTarget(t *testing.T) {
	service, _, _ := newActivityFixture()

	if _, err := service.Timeline(context.Background(), ""); !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for empty target, got %v", err)
	}
}

func TestRecordEventStoresEntry(t *testing.T) {
	service, activityRepo, _ := newActivityFixture()

	err := service.RecordEvent(context.Background(), models.ActivityAssignmentCreated,
		primitive.NewObjectID(), "Jane Doe", "Generics in Java",
		models.ActivityDetails{}, models.ActivityMetadata{})
	if err != nil {
		t.Fatalf("RecordEvent returned error: %v", err)
	}

	if len(activityRepo.entries) != 1 {
		t.Errorf("expected entry stored, got %d", len(activityRepo.entries))
	}
}

func TestRecordEventReturnsInsertFailure(t *testing.T) {
	service, activityRepo, _ := newActivityFixture()
	activityRepo.insertErr = errors.New("log collection unavailable")

	err := service.RecordEvent(context.Background(), models.ActivityAssignmentCreated,
		primitive.NewObjectID(), "Jane Doe", "Generics in Java",
		models.ActivityDetails{}, models.ActivityMetadata{})
	if !errors.Is(err, activityRepo.insertErr) {
		t.Errorf("expected the insert failure returned, got %v", err)
	}
}
