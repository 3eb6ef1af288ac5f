package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/services"
)

func newAssignmentRouter(assignmentRepo stubAssignmentRepo, memberRepo *stubMemberRepo) *gin.Engine {
	activity := services.NewActivityService(&stubActivityRepo{}, memberRepo)
	memberService := services.NewTeamMemberService(memberRepo, assignmentRepo, activity, nopNotifier{})
	service := services.NewAssignmentService(assignmentRepo, memberRepo, memberService, activity, nopNotifier{})
	controller := NewAssignmentController(service)

	router := gin.New()
	group := router.Group("/api/assignments")
	group.GET("/overdue", controller.GetOverdueAssignments)
	group.GET("/:id", controller.GetAssignment)
	return router
}

func TestGetOverdueAssignments(t *testing.T) {
	repo := stubAssignmentRepo{overdue: []*models.Assignment{
		{Topic: "Late Topic", Category: models.CategoryBackend, Status: models.StatusInProgress,
			DueDate: time.Now().AddDate(0, 0, -3)},
	}}
	router := newAssignmentRouter(repo, newStubMemberRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/assignments/overdue", nil)
	router.ServeHTTP(w, req)

	// The fixed path must resolve to the overdue handler, not the :id one.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var overdue []models.Assignment
	if err := json.Unmarshal(w.Body.Bytes(), &overdue); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(overdue) != 1 || overdue[0].Topic != "Late Topic" {
		t.Errorf("unexpected overdue list: %+v", overdue)
	}
}

func TestGetOverdueAssignmentsEmpty(t *testing.T) {
	router := newAssignmentRouter(stubAssignmentRepo{}, newStubMemberRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/assignments/overdue", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
}
