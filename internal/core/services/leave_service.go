package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/SscSPs/boutique_ops/internal/utils/pagination"
	"github.com/google/uuid"
)

const (
	leaveModule       = "leave"
	defaultLeavePage  = 50
	maxLeavePageLimit = 200
)

// leaveService implements the LeaveSvcFacade interface
type leaveService struct {
	BaseService
	scopedService
	leaveRepo     portsrepo.LeaveRepositoryFacade
	employeeRepo  portsrepo.EmployeeReader
	notifier      Notifier
	coverageCache *cache.CoverageCache
}

// LeaveServiceOption configures optional collaborators of the leave service.
type LeaveServiceOption func(*leaveService)

// WithLeaveNotifier sets where escalation and decision facts are sent.
func WithLeaveNotifier(n Notifier) LeaveServiceOption {
	return func(s *leaveService) { s.notifier = n }
}

// WithLeaveCoverageCache shares the coverage cache so approvals invalidate stale rosters.
func WithLeaveCoverageCache(c *cache.CoverageCache) LeaveServiceOption {
	return func(s *leaveService) { s.coverageCache = c }
}

// WithLeaveClock pins the wall clock.
func WithLeaveClock(clock func() time.Time) LeaveServiceOption {
	return func(s *leaveService) { s.Clock = clock }
}

// NewLeaveService creates a new leave service
func NewLeaveService(repos portsrepo.RepositoryProvider, scope portssvc.ScopeSvc, opts ...LeaveServiceOption) portssvc.LeaveSvcFacade {
	s := &leaveService{
		scopedService: scopedService{scope: scope},
		leaveRepo:     repos.LeaveRepo,
		employeeRepo:  repos.EmployeeRepo,
		notifier:      nopNotifier{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.LeaveSvcFacade = (*leaveService)(nil)

// CreateLeave files a PENDING request. Employees file for themselves; managers and assistant
// managers may file for an employee in their write scope.
func (s *leaveService) CreateLeave(ctx context.Context, identity domain.Identity, req dto.CreateLeaveRequest) (*domain.LeaveRequest, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	start, err := parseDateField("startDate", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDateField("endDate", req.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, apperrors.NewValidationFailedError("endDate", "must not be before startDate")
	}
	leaveType, err := domain.ParseLeaveType(req.Type)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("type", err.Error())
	}

	emp, err := s.leaveSubject(ctx, identity, req.EmpID)
	if err != nil {
		return nil, err
	}
	if emp.UserID == nil || *emp.UserID == "" {
		return nil, apperrors.NewValidationFailedError("empId", "employee has no user account")
	}

	overlap, err := s.leaveRepo.HasOverlappingLeave(ctx, *emp.UserID, start, end)
	if err != nil {
		s.LogError(ctx, err, "Failed to check leave overlap", slog.String("emp_id", emp.EmpID))
		return nil, fmt.Errorf("check leave overlap: %w", err)
	}
	if overlap {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict,
			fmt.Sprintf("an open or approved leave request already covers part of %s..%s", req.StartDate, req.EndDate))
	}

	now := s.Now()
	leave := domain.LeaveRequest{
		LeaveID:     uuid.NewString(),
		UserID:      *emp.UserID,
		EmpID:       emp.EmpID,
		BoutiqueID:  emp.BoutiqueID,
		StartDate:   start,
		EndDate:     end,
		Type:        leaveType,
		Reason:      req.Reason,
		Status:      domain.LeavePending,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: identity.UserID, LastUpdatedAt: now, LastUpdatedBy: identity.UserID},
	}
	if err := s.leaveRepo.SaveLeave(ctx, leave); err != nil {
		s.LogError(ctx, err, "Failed to save leave request", slog.String("emp_id", emp.EmpID))
		return nil, fmt.Errorf("save leave request: %w", err)
	}

	s.LogInfo(ctx, "Leave request created",
		slog.String("leave_id", leave.LeaveID),
		slog.String("emp_id", emp.EmpID),
		slog.String("start", req.StartDate),
		slog.String("end", req.EndDate))
	return &leave, nil
}

// leaveSubject resolves whose leave is being filed.
func (s *leaveService) leaveSubject(ctx context.Context, identity domain.Identity, empID string) (*domain.Employee, error) {
	if empID == "" || empID == identity.EmpID || identity.Role == domain.RoleEmployee {
		emp, err := s.employeeRepo.FindEmployeeByUserID(ctx, identity.UserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("empId", "caller has no employee record")
			}
			return nil, fmt.Errorf("find caller employee: %w", err)
		}
		if empID != "" && empID != emp.EmpID {
			return nil, apperrors.NewForbiddenError(apperrors.CodeForbidden, "employees may only file their own leave")
		}
		return emp, nil
	}

	scope, err := s.writeScope(ctx, identity, "", leaveModule)
	if err != nil {
		return nil, err
	}
	return s.scopedEmployee(ctx, s.employeeRepo, scope, empID)
}

// DecideLeave applies action to the request.
func (s *leaveService) DecideLeave(ctx context.Context, identity domain.Identity, leaveID string, action domain.LeaveAction, req dto.LeaveDecisionRequest) (*domain.LeaveRequest, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	leave, err := s.leaveRepo.FindLeaveByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("leave request", leaveID)
		}
		s.LogError(ctx, err, "Failed to load leave request", slog.String("leave_id", leaveID))
		return nil, fmt.Errorf("find leave request: %w", err)
	}

	if err := authorizeLeaveAction(identity, *leave, action); err != nil {
		return nil, err
	}
	scope, _, err := s.writeBoutique(ctx, identity, leave.BoutiqueID, leaveModule)
	if err != nil {
		return nil, err
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "leave request", leaveID, leave.BoutiqueID); err != nil {
		return nil, err
	}

	previous := leave.Status
	next, err := previous.Next(action)
	switch {
	case errors.Is(err, domain.ErrLeaveAlreadyDecided):
		return nil, apperrors.NewConflictError(apperrors.CodeAlreadyDecided, fmt.Sprintf("leave request is already %s", previous))
	case err != nil:
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, err.Error())
	}

	now := s.Now()
	actor := identity.UserID
	leave.Status = next
	leave.LastUpdatedAt = now
	leave.LastUpdatedBy = actor
	if req.Note != "" {
		leave.DecisionNote = req.Note
	}
	switch action {
	case domain.LeaveActionEscalate:
		leave.EscalatedBy = &actor
		leave.EscalatedAt = &now
	case domain.LeaveActionApprove, domain.LeaveActionReject, domain.LeaveActionCancel:
		leave.DecidedBy = &actor
		leave.DecidedAt = &now
	}

	if err := s.leaveRepo.UpdateLeaveStatus(ctx, *leave, previous); err != nil {
		if apperrors.CodeOf(err) == apperrors.CodeAlreadyDecided {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update leave request", slog.String("leave_id", leaveID))
		return nil, fmt.Errorf("update leave request: %w", err)
	}

	if next == domain.LeaveApproved && s.coverageCache != nil {
		s.coverageCache.ClearCoverageValidationCache()
	}
	s.notifyTransition(ctx, *leave, action)

	s.LogInfo(ctx, "Leave request transitioned",
		slog.String("leave_id", leaveID),
		slog.String("from", string(previous)),
		slog.String("to", string(next)))
	return leave, nil
}

// authorizeLeaveAction checks the role rules of each transition. Only ADMIN and SUPER_ADMIN decide
// escalated requests, and nobody approves or rejects their own leave.
func authorizeLeaveAction(identity domain.Identity, leave domain.LeaveRequest, action domain.LeaveAction) error {
	own := leave.UserID == identity.UserID
	switch action {
	case domain.LeaveActionCancel:
		return requireRole(identity, own || identity.Role.CanDecideLeave(), "cancel this leave request")
	case domain.LeaveActionEscalate:
		return requireRole(identity, identity.Role.CanEscalateLeave() && !own, "escalate leave")
	case domain.LeaveActionApprove, domain.LeaveActionReject:
		if err := requireRole(identity, identity.Role.CanDecideLeave() && !own, "decide leave"); err != nil {
			return err
		}
		if leave.Status == domain.LeaveEscalated {
			return requireRole(identity, identity.Role == domain.RoleAdmin || identity.Role == domain.RoleSuperAdmin, "decide escalated leave")
		}
		return nil
	default:
		return apperrors.NewValidationFailedError("action", fmt.Sprintf("unknown leave action %q", action))
	}
}

func (s *leaveService) notifyTransition(ctx context.Context, leave domain.LeaveRequest, action domain.LeaveAction) {
	data := map[string]string{
		"leaveId":   leave.LeaveID,
		"empId":     leave.EmpID,
		"startDate": calendar.DateKey(leave.StartDate),
		"endDate":   calendar.DateKey(leave.EndDate),
		"status":    string(leave.Status),
	}
	switch action {
	case domain.LeaveActionEscalate:
		s.notifier.Notify(ctx, domain.Notification{
			Kind:       domain.NotifyLeaveEscalated,
			BoutiqueID: leave.BoutiqueID,
			Title:      "Leave request escalated",
			Body:       fmt.Sprintf("Leave of %s from %s to %s needs an admin decision", leave.EmpID, data["startDate"], data["endDate"]),
			Data:       data,
			OccurredAt: leave.LastUpdatedAt,
		})
	case domain.LeaveActionApprove, domain.LeaveActionReject:
		s.notifier.Notify(ctx, domain.Notification{
			Kind:        domain.NotifyLeaveDecided,
			BoutiqueID:  leave.BoutiqueID,
			RecipientID: leave.UserID,
			Title:       "Leave request " + string(leave.Status),
			Body:        fmt.Sprintf("Your leave from %s to %s was %s", data["startDate"], data["endDate"], leave.Status),
			Data:        data,
			OccurredAt:  leave.LastUpdatedAt,
		})
	case domain.LeaveActionCancel:
	}
}

// ListLeaves returns one page of leave requests in scope, ordered by (startDate, createdAt).
func (s *leaveService) ListLeaves(ctx context.Context, identity domain.Identity, q dto.ListLeavesQuery) ([]domain.LeaveRequest, string, error) {
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, leaveModule)
	if err != nil {
		return nil, "", err
	}

	limit := pagination.ClampLimit(q.Limit, defaultLeavePage, maxLeavePageLimit)
	filter := portsrepo.LeaveFilter{BoutiqueIDs: scope.BoutiqueIDs, Limit: limit + 1}
	if identity.Role == domain.RoleEmployee {
		filter.UserID = identity.UserID
	}
	if q.Status != "" {
		status, err := domain.ParseLeaveStatus(q.Status)
		if err != nil {
			return nil, "", apperrors.NewValidationFailedError("status", err.Error())
		}
		filter.Statuses = []domain.LeaveStatus{status}
	}
	if q.NextToken != "" {
		afterStart, afterCreated, err := pagination.DecodeToken(q.NextToken)
		if err != nil {
			s.LogWarn(ctx, "Invalid leave pagination token", slog.String("error", err.Error()))
			return nil, "", apperrors.NewValidationFailedError("nextToken", "is not a valid pagination token")
		}
		filter.AfterStartDate = &afterStart
		filter.AfterCreatedAt = &afterCreated
	}

	leaves, err := s.leaveRepo.ListLeaves(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list leave requests")
		return nil, "", fmt.Errorf("list leave requests: %w", err)
	}

	var next string
	if len(leaves) > limit {
		leaves = leaves[:limit]
		last := leaves[len(leaves)-1]
		next = pagination.EncodeToken(last.StartDate, last.CreatedAt)
	}
	if leaves == nil {
		leaves = []domain.LeaveRequest{}
	}
	return leaves, next, nil
}
