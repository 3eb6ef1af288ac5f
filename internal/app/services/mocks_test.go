package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
)

// In-memory repository fakes used across the service tests.

type mockMemberRepo struct {
	members     map[primitive.ObjectID]*models.TeamMember
	topicCounts map[primitive.ObjectID][2]int64
}

func newMockMemberRepo(members ...*models.TeamMember) *mockMemberRepo {
	repo := &mockMemberRepo{
		members:     make(map[primitive.ObjectID]*models.TeamMember),
		topicCounts: make(map[primitive.ObjectID][2]int64),
	}
	for _, m := range members {
		if m.ID.IsZero() {
			m.ID = primitive.NewObjectID()
		}
		repo.members[m.ID] = m
	}
	return repo
}

func (r *mockMemberRepo) Create(_ context.Context, member *models.TeamMember) error {
	member.ID = primitive.NewObjectID()
	r.members[member.ID] = member
	return nil
}

func (r *mockMemberRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	return r.members[id], nil
}

func (r *mockMemberRepo) FindByEmail(_ context.Context, email string, excludeID *primitive.ObjectID) (*models.TeamMember, error) {
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

func (r *mockMemberRepo) List(_ context.Context, q dto.TeamMemberListQuery) ([]*models.TeamMember, int64, error) {
	members := []*models.TeamMember{}
	for _, m := range r.members {
		if q.IsActive == "true" && !m.IsActive {
			continue
		}
		if q.IsActive == "false" && m.IsActive {
			continue
		}
		if q.Role != "" && m.Role != q.Role {
			continue
		}
		members = append(members, m)
	}
	return members, int64(len(members)), nil
}

func (r *mockMemberRepo) Update(_ context.Context, member *models.TeamMember) error {
	r.members[member.ID] = member
	return nil
}

func (r *mockMemberRepo) Deactivate(_ context.Context, id primitive.ObjectID) (*models.TeamMember, error) {
	member := r.members[id]
	if member == nil {
		return nil, nil
	}
	member.IsActive = false
	return member, nil
}

func (r *mockMemberRepo) SetTopicCounts(_ context.Context, id primitive.ObjectID, assigned, completed int64) error {
	r.topicCounts[id] = [2]int64{assigned, completed}
	if member := r.members[id]; member != nil {
		member.AssignedTopics = assigned
		member.CompletedTopics = completed
	}
	return nil
}

type mockAssignmentRepo struct {
	assignments map[primitive.ObjectID]*models.Assignment
}

func newMockAssignmentRepo(assignments ...*models.Assignment) *mockAssignmentRepo {
	repo := &mockAssignmentRepo{assignments: make(map[primitive.ObjectID]*models.Assignment)}
	for _, a := range assignments {
		if a.ID.IsZero() {
			a.ID = primitive.NewObjectID()
		}
		repo.assignments[a.ID] = a
	}
	return repo
}

func (r *mockAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	assignment.ID = primitive.NewObjectID()
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *mockAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	return r.assignments[id], nil
}

func (r *mockAssignmentRepo) List(_ context.Context, q dto.AssignmentListQuery) ([]*models.Assignment, int64, error) {
	assignments := []*models.Assignment{}
	for _, a := range r.assignments {
		if a.IsDeleted {
			continue
		}
		if q.Status != "" && a.Status != q.Status {
			continue
		}
		if q.Category != "" && a.Category != q.Category {
			continue
		}
		assignments = append(assignments, a)
	}
	return assignments, int64(len(assignments)), nil
}

func (r *mockAssignmentRepo) Update(_ context.Context, assignment *models.Assignment) error {
	r.assignments[assignment.ID] = assignment
	return nil
}

func (r *mockAssignmentRepo) SoftDelete(_ context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	assignment := r.assignments[id]
	if assignment == nil || assignment.IsDeleted {
		return nil, nil
	}
	assignment.IsDeleted = true
	return assignment, nil
}

func (r *mockAssignmentRepo) AddNote(_ context.Context, id primitive.ObjectID, note models.Note) (*models.Assignment, error) {
	assignment := r.assignments[id]
	if assignment == nil {
		return nil, nil
	}
	assignment.Notes = append(assignment.Notes, note)
	return assignment, nil
}

func (r *mockAssignmentRepo) CountByAssignee(_ context.Context, memberID primitive.ObjectID) (int64, int64, error) {
	var assigned, completed int64
	for _, a := range r.assignments {
		if a.IsDeleted || a.AssigneeID != memberID {
			continue
		}
		assigned++
		if a.Status == models.StatusCompleted {
			completed++
		}
	}
	return assigned, completed, nil
}

func (r *mockAssignmentRepo) DueBetween(_ context.Context, from, to time.Time) ([]*models.Assignment, error) {
	assignments := []*models.Assignment{}
	for _, a := range r.assignments {
		if a.IsDeleted || a.Status == models.StatusCompleted {
			continue
		}
		if !a.DueDate.Before(from) && a.DueDate.Before(to) {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (r *mockAssignmentRepo) Overdue(_ context.Context, before time.Time) ([]*models.Assignment, error) {
	assignments := []*models.Assignment{}
	for _, a := range r.assignments {
		if a.IsDeleted || a.Status == models.StatusCompleted {
			continue
		}
		if a.DueDate.Before(before) {
			assignments = append(assignments, a)
		}
	}
	return assignments, nil
}

func (r *mockAssignmentRepo) RecentByAssignee(_ context.Context, memberID primitive.ObjectID, limit int64) ([]*models.Assignment, error) {
	assignments := []*models.Assignment{}
	for _, a := range r.assignments {
		if a.IsDeleted || a.AssigneeID != memberID {
			continue
		}
		if int64(len(assignments)) == limit {
			break
		}
		assignments = append(assignments, a)
	}
	return assignments, nil
}

func (r *mockAssignmentRepo) StatsByAssignee(_ context.Context, memberID primitive.ObjectID) ([]dto.StatusBucket, error) {
	counts := map[string]int64{}
	for _, a := range r.assignments {
		if a.IsDeleted || a.AssigneeID != memberID {
			continue
		}
		counts[a.Status]++
	}
	buckets := []dto.StatusBucket{}
	for status, count := range counts {
		buckets = append(buckets, dto.StatusBucket{Status: status, Count: count})
	}
	return buckets, nil
}

type mockActivityRepo struct {
	entries   []*models.ActivityLog
	insertErr error
}

func (r *mockActivityRepo) Insert(_ context.Context, entry *models.ActivityLog) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	entry.ID = primitive.NewObjectID()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *mockActivityRepo) List(_ context.Context, q dto.ActivityListQuery) ([]*models.ActivityLog, int64, error) {
	entries := []*models.ActivityLog{}
	for _, e := range r.entries {
		if q.Type != "" && string(e.Type) != q.Type {
			continue
		}
		entries = append(entries, e)
	}
	return entries, int64(len(entries)), nil
}

func (r *mockActivityRepo) Recent(_ context.Context, since time.Time, limit int64) ([]*models.ActivityLog, error) {
	entries := []*models.ActivityLog{}
	for _, e := range r.entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		if int64(len(entries)) == limit {
			break
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *mockActivityRepo) ByActor(_ context.Context, actorID primitive.ObjectID, page, limit int) ([]*models.ActivityLog, int64, error) {
	entries := []*models.ActivityLog{}
	for _, e := range r.entries {
		if e.Actor == actorID {
			entries = append(entries, e)
		}
	}
	return entries, int64(len(entries)), nil
}

func (r *mockActivityRepo) ByTarget(_ context.Context, target string) ([]*models.ActivityLog, error) {
	entries := []*models.ActivityLog{}
	for _, e := range r.entries {
		if e.Target == target {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *mockActivityRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	kept := r.entries[:0]
	var deleted int64
	for _, e := range r.entries {
		if e.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
	return deleted, nil
}

func (r *mockActivityRepo) TypeDistribution(_ context.Context) ([]dto.TypeCount, error) {
	counts := map[models.ActivityType]int64{}
	for _, e := range r.entries {
		counts[e.Type]++
	}
	distribution := []dto.TypeCount{}
	for t, count := range counts {
		distribution = append(distribution, dto.TypeCount{Type: string(t), Count: count})
	}
	return distribution, nil
}

func (r *mockActivityRepo) DailyCounts(_ context.Context, since time.Time) ([]dto.DayCount, error) {
	return nil, nil
}

func (r *mockActivityRepo) MostActiveActors(_ context.Context, since time.Time, limit int) ([]dto.ActiveMember, error) {
	return nil, nil
}

// lastEntry returns the most recently inserted activity entry.
func (r *mockActivityRepo) lastEntry() *models.ActivityLog {
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

// mockAnalyticsRepo returns canned aggregation results.
type mockAnalyticsRepo struct {
	activeMembers     int64
	totalAssignments  int64
	completed         int64
	overdue           int64
	dueToday          int64
	statusCounts      []dto.GroupCount
	categoryCounts    []dto.GroupCount
	performance       []dto.MemberPerformance
	weekly            []dto.DailyProgress
	categoryProgress  []dto.CategoryProgress
	recentCompletions int64
	completionStats   *dto.CompletionStats
	priorities        []dto.PriorityStats
}

func (r *mockAnalyticsRepo) CountActiveMembers(_ context.Context) (int64, error) {
	return r.activeMembers, nil
}
func (r *mockAnalyticsRepo) CountAssignments(_ context.Context) (int64, error) {
	return r.totalAssignments, nil
}
func (r *mockAnalyticsRepo) CountCompleted(_ context.Context) (int64, error) {
	return r.completed, nil
}
func (r *mockAnalyticsRepo) CountOverdue(_ context.Context, _ time.Time) (int64, error) {
	return r.overdue, nil
}
func (r *mockAnalyticsRepo) CountDueBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return r.dueToday, nil
}
func (r *mockAnalyticsRepo) StatusDistribution(_ context.Context) ([]dto.GroupCount, error) {
	return r.statusCounts, nil
}
func (r *mockAnalyticsRepo) CategoryDistribution(_ context.Context) ([]dto.GroupCount, error) {
	return r.categoryCounts, nil
}
func (r *mockAnalyticsRepo) TeamPerformance(_ context.Context, _ time.Time) ([]dto.MemberPerformance, error) {
	return r.performance, nil
}
func (r *mockAnalyticsRepo) WeeklyProgress(_ context.Context, _ time.Time) ([]dto.DailyProgress, error) {
	return r.weekly, nil
}
func (r *mockAnalyticsRepo) CategoryProgress(_ context.Context) ([]dto.CategoryProgress, error) {
	return r.categoryProgress, nil
}
func (r *mockAnalyticsRepo) RecentCompletions(_ context.Context, _ time.Time) (int64, error) {
	return r.recentCompletions, nil
}
func (r *mockAnalyticsRepo) CompletionStats(_ context.Context) (*dto.CompletionStats, error) {
	return r.completionStats, nil
}
func (r *mockAnalyticsRepo) PriorityDistribution(_ context.Context) ([]dto.PriorityStats, error) {
	return r.priorities, nil
}

// countingNotifier records how often the sync hook fired.
type countingNotifier struct {
	calls int
}

func (n *countingNotifier) Notify() { n.calls++ }
