package services

import (
	"github.com/burakd/teamdocs/internal/app/repositories"
)

// ChangeNotifier is poked after every successful write so downstream
// consumers (the README sync) can refresh. Implementations must be
// non-blocking.
type ChangeNotifier interface {
	Notify()
}

// noopNotifier is used when no sync target is configured.
type noopNotifier struct{}

func (noopNotifier) Notify() {}

// Services contains all service instances
type Services struct {
	TeamMemberService *TeamMemberService
	AssignmentService *AssignmentService
	ActivityService   *ActivityService
	AnalyticsService  *AnalyticsService
}

// NewServices creates and initializes all services
func NewServices(repos *repositories.Repositories, notifier ChangeNotifier) *Services {
	if notifier == nil {
		notifier = noopNotifier{}
	}

	activityService := NewActivityService(repos.ActivityRepository, repos.TeamMemberRepository)
	memberService := NewTeamMemberService(repos.TeamMemberRepository, repos.AssignmentRepository, activityService, notifier)

	return &Services{
		TeamMemberService: memberService,
		// Assignment writes recount the assignee's topic counters through
		// the member service.
		AssignmentService: NewAssignmentService(repos.AssignmentRepository, repos.TeamMemberRepository, memberService, activityService, notifier),
		ActivityService:   activityService,
		AnalyticsService:  NewAnalyticsService(repos.AnalyticsRepository, repos.ActivityRepository),
	}
}
