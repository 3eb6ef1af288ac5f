package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	"github.com/burakd/teamdocs/internal/app/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubMemberRepo keeps members in memory, just enough backing for the
// HTTP-level tests below.
type stubMemberRepo struct {
	members map[primitive.ObjectID]*models.TeamMember
}

func newStubMemberRepo(members ...*models.TeamMember) *stubMemberRepo {
	r := &stubMemberRepo{members: make(map[primitive.ObjectID]*models.TeamMember)}
	for _, m := range members {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		r.members[m.ID] = m
	}
	return r
}

func (r *stubMemberRepo) Create(ctx context.Context, member *models.TeamMember) error {
	member.ID = primitive.NewObjectID()
	r.members[member.ID] = member
	return nil
}

func (r *stubMemberRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	return r.members[id], nil
}

func (r *stubMemberRepo) FindByEmail(ctx context.Context, email string, excludeID *primitive.ObjectID) (*models.TeamMember, error) {
	for _, m := range r.members {
		if excludeID != nil && m.ID == *excludeID {
			continue
		}
		if m.Email == email {
			return m, nil
		}
	}
	return nil, nil
}

func (r *stubMemberRepo) List(ctx context.Context, q dto.TeamMemberListQuery) ([]*models.TeamMember, int64, error) {
	var out []*models.TeamMember
	for _, m := range r.members {
		if q.IsActive == "true" && !m.IsActive {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMemberRepo) Update(ctx context.Context, member *models.TeamMember) error {
	r.members[member.ID] = member
	return nil
}

func (r *stubMemberRepo) Deactivate(ctx context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	m := r.members[id]
	if m != nil {
		m.IsActive = false
	}
	return m, nil
}

func (r *stubMemberRepo) SetTopicCounts(ctx context.Context, id primitive.ObjectID, assigned, completed int64) error {
	return nil
}

// stubAssignmentRepo returns canned overdue rows and empty results for
// everything else.
type stubAssignmentRepo struct {
	overdue []*models.Assignment
}

func (stubAssignmentRepo) Create(ctx context.Context, a *models.Assignment) error { return nil }
func (stubAssignmentRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return nil, nil
}
func (stubAssignmentRepo) List(ctx context.Context, q dto.AssignmentListQuery) ([]*models.Assignment, int64, error) {
	return nil, 0, nil
}
func (stubAssignmentRepo) Update(ctx context.Context, a *models.Assignment) error { return nil }
func (stubAssignmentRepo) SoftDelete(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return nil, nil
}
func (stubAssignmentRepo) AddNote(ctx context.Context, id primitive.ObjectID, note models.Note) (*models.Assignment, error) {
	return nil, nil
}
func (stubAssignmentRepo) CountByAssignee(ctx context.Context, memberID primitive.ObjectID) (int64, int64, error) {
	return 0, 0, nil
}
func (stubAssignmentRepo) DueBetween(ctx context.Context, from, to time.Time) ([]*models.Assignment, error) {
	return nil, nil
}
func (r stubAssignmentRepo) Overdue(ctx context.Context, before time.Time) ([]*models.Assignment, error) {
	return r.overdue, nil
}
func (stubAssignmentRepo) RecentByAssignee(ctx context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Assignment, error) {
	return nil, nil
}
func (stubAssignmentRepo) StatsByAssignee(ctx context.Context, memberID primitive.ObjectID) ([]dto.StatusBucket, error) {
	return nil, nil
}

// stubActivityRepo records inserts and returns empty results otherwise.
type stubActivityRepo struct {
	entries []*models.ActivityLog
}

func (r *stubActivityRepo) Insert(ctx context.Context, entry *models.ActivityLog) error {
	r.entries = append(r.entries, entry)
	return nil
}
func (r *stubActivityRepo) List(ctx context.Context, q dto.ActivityListQuery) ([]*models.ActivityLog, int64, error) {
	return nil, 0, nil
}
func (r *stubActivityRepo) Recent(ctx context.Context, since time.Time, limit int64) ([]*models.ActivityLog, error) {
	return nil, nil
}
func (r *stubActivityRepo) ByActor(ctx context.Context, actorID primitive.ObjectID, page, limit int) ([]*models.ActivityLog, int64, error) {
	return nil, 0, nil
}
func (r *stubActivityRepo) ByTarget(ctx context.Context, target string) ([]*models.ActivityLog, error) {
	return nil, nil
}
func (r *stubActivityRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}
func (r *stubActivityRepo) TypeDistribution(ctx context.Context) ([]dto.TypeCount, error) {
	return nil, nil
}
func (r *stubActivityRepo) DailyCounts(ctx context.Context, since time.Time) ([]dto.DayCount, error) {
	return nil, nil
}
func (r *stubActivityRepo) MostActiveActors(ctx context.Context, since time.Time, limit int) ([]dto.ActiveMember, error) {
	return nil, nil
}

type nopNotifier struct{}

func (nopNotifier) Notify() {}

func newMemberRouter(repo *stubMemberRepo) *gin.Engine {
	activity := services.NewActivityService(&stubActivityRepo{}, repo)
	service := services.NewTeamMemberService(repo, stubAssignmentRepo{}, activity, nopNotifier{})
	controller := NewTeamMemberController(service)

	router := gin.New()
	group := router.Group("/api/team-members")
	group.GET("", controller.ListTeamMembers)
	group.POST("", controller.CreateTeamMember)
	group.GET("/:id", controller.GetTeamMember)
	group.DELETE("/:id", controller.DeactivateTeamMember)
	return router
}

func TestListTeamMembersEnvelope(t *testing.T) {
	repo := newStubMemberRepo(
		&models.TeamMember{Name: "John Smith", Email: "john@team.dev", Role: models.RoleDeveloper, IsActive: true},
		&models.TeamMember{Name: "Gone Dev", Email: "gone@team.dev", Role: models.RoleDeveloper, IsActive: false},
	)
	router := newMemberRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/team-members", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Items       []models.TeamMember `json:"items"`
		TotalPages  int                 `json:"totalPages"`
		CurrentPage int                 `json:"currentPage"`
		Total       int64               `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	// Inactive members are filtered out by default
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected one active member, got total=%d items=%d", resp.Total, len(resp.Items))
	}
	if resp.CurrentPage != 1 || resp.TotalPages != 1 {
		t.Errorf("unexpected paging: page=%d pages=%d", resp.CurrentPage, resp.TotalPages)
	}
}

func TestGetTeamMemberNotFound(t *testing.T) {
	router := newMemberRouter(newStubMemberRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/team-members/"+primitive.NewObjectID().Hex(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", w.Code, w.Body.String())
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != dto.ErrorCodeResourceNotFound {
		t.Errorf("unexpected error detail: %+v", resp.Error)
	}
}

func TestCreateTeamMemberBindingError(t *testing.T) {
	router := newMemberRouter(newStubMemberRepo())

	// Missing required email
	body := bytes.NewBufferString(`{"name":"No Email"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/team-members", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Error == nil || resp.Error.Code != dto.ErrorCodeValidationFailed {
		t.Errorf("unexpected error detail: %+v", resp.Error)
	}
}

func TestCreateTeamMemberDuplicateEmail(t *testing.T) {
	router := newMemberRouter(newStubMemberRepo(
		&models.TeamMember{Name: "John Smith", Email: "john@team.dev", IsActive: true},
	))

	body := bytes.NewBufferString(`{"name":"Impostor","email":"john@team.dev"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/team-members", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if resp.Error == nil || resp.Error.Field != "email" {
		t.Errorf("expected the email field flagged, got %+v", resp.Error)
	}
}

func TestCreateTeamMemberCreated(t *testing.T) {
	repo := newStubMemberRepo()
	router := newMemberRouter(repo)

	body := bytes.NewBufferString(`{"name":"Sarah Wilson","email":"sarah@team.dev","skills":["React"]}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/team-members", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var member models.TeamMember
	if err := json.Unmarshal(w.Body.Bytes(), &member); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if member.Role != models.RoleDeveloper {
		t.Errorf("expected default role, got %q", member.Role)
	}
	if !member.IsActive {
		t.Error("new members start active")
	}
}

func TestDeactivateTeamMember(t *testing.T) {
	member := &models.TeamMember{Name: "John Smith", Email: "john@team.dev", IsActive: true}
	repo := newStubMemberRepo(member)
	router := newMemberRouter(repo)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/team-members/%s", member.ID.Hex()), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if member.IsActive {
		t.Error("member must be deactivated")
	}
}
