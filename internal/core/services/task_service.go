package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/scheduling"
	"github.com/SscSPs/boutique_ops/internal/core/tasks"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

const taskModule = "tasks"

// taskService implements the TaskSvc interface
type taskService struct {
	BaseService
	scopedService
	taskRepo     portsrepo.TaskReader
	employeeRepo portsrepo.EmployeeReader
	roster       *rosterProvider
	anchor       time.Time
	notifier     Notifier
	reminders    bool
}

// TaskServiceOption configures optional collaborators of the task service.
type TaskServiceOption func(*taskService)

// WithTaskNotifier sets where reminders are sent.
func WithTaskNotifier(n Notifier) TaskServiceOption {
	return func(s *taskService) { s.notifier = n }
}

// WithTaskReminders toggles reminder sending.
func WithTaskReminders(enabled bool) TaskServiceOption {
	return func(s *taskService) { s.reminders = enabled }
}

// WithTaskClock pins the wall clock.
func WithTaskClock(clock func() time.Time) TaskServiceOption {
	return func(s *taskService) { s.Clock = clock }
}

// NewTaskService creates a new task service. Rotation plans advance weekly from the pattern's
// rotation anchor.
func NewTaskService(repos portsrepo.RepositoryProvider, scope portssvc.ScopeSvc, pattern scheduling.TeamPattern, opts ...TaskServiceOption) portssvc.TaskSvc {
	s := &taskService{
		scopedService: scopedService{scope: scope},
		taskRepo:      repos.TaskRepo,
		employeeRepo:  repos.EmployeeRepo,
		roster:        newRosterProvider(repos, pattern),
		anchor:        pattern.RotationAnchor,
		notifier:      nopNotifier{},
		reminders:     true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.TaskSvc = (*taskService)(nil)

// ListTaskAssignments assigns every task of the scope running on the date.
func (s *taskService) ListTaskAssignments(ctx context.Context, identity domain.Identity, q dto.TaskAssignmentsQuery) ([]domain.TaskAssignment, error) {
	date, err := parseDateField("date", q.Date)
	if err != nil {
		return nil, err
	}
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, taskModule)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, scope.BoutiqueIDs, date)
}

func (s *taskService) assign(ctx context.Context, boutiqueIDs []string, date time.Time) ([]domain.TaskAssignment, error) {
	all, err := s.taskRepo.ListActiveTasks(ctx, boutiqueIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks")
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	runnable := tasks.RunnableOn(all, date)
	out := make([]domain.TaskAssignment, 0, len(runnable))
	if len(runnable) == 0 {
		return out, nil
	}

	roster, err := s.roster.RosterForDate(ctx, date, boutiqueIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to build roster for task assignment", slog.String("date", calendar.DateKey(date)))
		return nil, err
	}
	for _, t := range runnable {
		out = append(out, tasks.AssignOnDate(t, date, roster, s.anchor))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].BoutiqueID != out[j].BoutiqueID {
			return out[i].BoutiqueID < out[j].BoutiqueID
		}
		return out[i].TaskName < out[j].TaskName
	})
	return out, nil
}

// SendTaskReminders notifies the assignee of each task running the day after req.Date. Unassigned
// tasks and assignees without a user account are skipped.
func (s *taskService) SendTaskReminders(ctx context.Context, identity domain.Identity, req dto.SendTaskRemindersRequest) (*dto.TaskRemindersResponse, error) {
	if err := requireRole(identity, identity.Role.CanEditSchedule(), "send task reminders"); err != nil {
		return nil, err
	}
	if !s.reminders {
		return nil, apperrors.NewForbiddenError(apperrors.CodeForbidden, "task reminders are disabled")
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, taskModule)
	if err != nil {
		return nil, err
	}

	due := date.AddDate(0, 0, 1)
	assignments, err := s.assign(ctx, []string{boutiqueID}, due)
	if err != nil {
		return nil, err
	}

	resp := &dto.TaskRemindersResponse{DueDate: calendar.DateKey(due)}
	var empIDs []string
	for _, a := range assignments {
		if a.Reason != domain.ReasonUnassigned {
			empIDs = append(empIDs, a.AssignedEmpID)
		}
	}
	users := make(map[string]string)
	if len(empIDs) > 0 {
		emps, err := s.employeeRepo.ListEmployeesByIDs(ctx, empIDs)
		if err != nil {
			return nil, fmt.Errorf("list assignees: %w", err)
		}
		for _, e := range emps {
			if e.UserID != nil {
				users[e.EmpID] = *e.UserID
			}
		}
	}

	now := s.Now()
	for _, a := range assignments {
		userID := users[a.AssignedEmpID]
		if a.Reason == domain.ReasonUnassigned || userID == "" {
			resp.Skipped++
			continue
		}
		s.notifier.Notify(ctx, domain.Notification{
			Kind:        domain.NotifyTaskDueTomorrow,
			BoutiqueID:  a.BoutiqueID,
			RecipientID: userID,
			Title:       "Task due tomorrow",
			Body:        fmt.Sprintf("%s is yours on %s", a.TaskName, a.Date),
			Data: map[string]string{
				"taskId": a.TaskID,
				"empId":  a.AssignedEmpID,
				"date":   a.Date,
				"reason": string(a.Reason),
			},
			OccurredAt: now,
		})
		resp.Sent++
	}

	s.LogInfo(ctx, "Task reminders sent",
		slog.String("boutique_id", boutiqueID),
		slog.String("due_date", resp.DueDate),
		slog.Int("sent", resp.Sent),
		slog.Int("skipped", resp.Skipped))
	return resp, nil
}
