package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock ScopeService ---
type MockScopeService struct {
	mock.Mock
}

func (m *MockScopeService) ResolveScope(ctx context.Context, identity domain.Identity, req domain.ScopeRequest) (*domain.Scope, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scope), args.Error(1)
}

func (m *MockScopeService) AssertBoutiqueInScope(ctx context.Context, scope *domain.Scope, entityType, entityID, boutiqueID string) error {
	args := m.Called(ctx, scope, entityType, entityID, boutiqueID)
	return args.Error(0)
}

var _ portssvc.ScopeSvc = (*MockScopeService)(nil)

// --- Mock ScheduleService ---
type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) GetDaySchedule(ctx context.Context, identity domain.Identity, q dto.DayScheduleQuery) (*domain.DaySchedule, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DaySchedule), args.Error(1)
}

func (m *MockScheduleService) GetWeekSchedule(ctx context.Context, identity domain.Identity, q dto.WeekScheduleQuery) (*domain.WeekSchedule, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeekSchedule), args.Error(1)
}

func (m *MockScheduleService) SetShiftOverride(ctx context.Context, identity domain.Identity, req dto.SetShiftOverrideRequest) (*domain.ShiftOverride, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftOverride), args.Error(1)
}

func (m *MockScheduleService) ClearShiftOverride(ctx context.Context, identity domain.Identity, req dto.ClearShiftOverrideRequest) error {
	return m.Called(ctx, identity, req).Error(0)
}

func (m *MockScheduleService) AddGuestCoverage(ctx context.Context, identity domain.Identity, req dto.AddGuestCoverageRequest) (*domain.ShiftOverride, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftOverride), args.Error(1)
}

func (m *MockScheduleService) AssertScheduleEditable(ctx context.Context, boutiqueID string, dates []time.Time) error {
	return m.Called(ctx, boutiqueID, dates).Error(0)
}

func (m *MockScheduleService) LockDay(ctx context.Context, identity domain.Identity, req dto.DayLockRequest) (*domain.ScheduleDayLock, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleDayLock), args.Error(1)
}

func (m *MockScheduleService) UnlockDay(ctx context.Context, identity domain.Identity, req dto.DayLockRequest) error {
	return m.Called(ctx, identity, req).Error(0)
}

func (m *MockScheduleService) LockWeek(ctx context.Context, identity domain.Identity, req dto.WeekLockRequest) (*domain.ScheduleWeekLock, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleWeekLock), args.Error(1)
}

func (m *MockScheduleService) UnlockWeek(ctx context.Context, identity domain.Identity, req dto.WeekLockRequest) error {
	return m.Called(ctx, identity, req).Error(0)
}

func (m *MockScheduleService) ListCoverageRules(ctx context.Context, identity domain.Identity) ([]domain.CoverageRule, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoverageRule), args.Error(1)
}

func (m *MockScheduleService) UpsertCoverageRule(ctx context.Context, identity domain.Identity, day time.Weekday, req dto.UpsertCoverageRuleRequest) (*domain.CoverageRule, error) {
	args := m.Called(ctx, identity, day, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoverageRule), args.Error(1)
}

var _ portssvc.ScheduleSvcFacade = (*MockScheduleService)(nil)

// --- Mock TargetService ---
type MockTargetService struct {
	mock.Mock
}

func (m *MockTargetService) UpsertBoutiqueTarget(ctx context.Context, identity domain.Identity, req dto.UpsertBoutiqueTargetRequest) (*domain.BoutiqueMonthlyTarget, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoutiqueMonthlyTarget), args.Error(1)
}

func (m *MockTargetService) GenerateTargets(ctx context.Context, identity domain.Identity, req dto.MonthTargetRequest) ([]domain.EmployeeMonthlyTarget, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeMonthlyTarget), args.Error(1)
}

func (m *MockTargetService) ResetTargets(ctx context.Context, identity domain.Identity, req dto.MonthTargetRequest) (int64, error) {
	args := m.Called(ctx, identity, req)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTargetService) ListEmployeeTargets(ctx context.Context, identity domain.Identity, q dto.TargetsQuery) ([]domain.EmployeeMonthlyTarget, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeMonthlyTarget), args.Error(1)
}

func (m *MockTargetService) GetTargetMetrics(ctx context.Context, identity domain.Identity, q dto.TargetMetricsQuery) (*domain.TargetMetrics, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TargetMetrics), args.Error(1)
}

func (m *MockTargetService) GetDashboardSalesMetrics(ctx context.Context, identity domain.Identity, q dto.DashboardQuery) (*domain.DashboardSalesMetrics, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardSalesMetrics), args.Error(1)
}

var _ portssvc.TargetSvcFacade = (*MockTargetService)(nil)

// --- Mock SalesService ---
type MockSalesService struct {
	mock.Mock
}

func (m *MockSalesService) UpsertSalesSummary(ctx context.Context, identity domain.Identity, req dto.UpsertSalesSummaryRequest) (*domain.SalesSummary, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

func (m *MockSalesService) UpsertSalesLine(ctx context.Context, identity domain.Identity, summaryID string, req dto.UpsertSalesLineRequest) (*domain.SalesLine, error) {
	args := m.Called(ctx, identity, summaryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesLine), args.Error(1)
}

func (m *MockSalesService) GetReconciliation(ctx context.Context, identity domain.Identity, summaryID string) (*domain.Reconciliation, error) {
	args := m.Called(ctx, identity, summaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reconciliation), args.Error(1)
}

func (m *MockSalesService) LockSalesSummary(ctx context.Context, identity domain.Identity, summaryID string) (*domain.SalesSummary, error) {
	args := m.Called(ctx, identity, summaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

var _ portssvc.SalesLedgerSvc = (*MockSalesService)(nil)

// --- Mock LeaveService ---
type MockLeaveService struct {
	mock.Mock
}

func (m *MockLeaveService) ListLeaves(ctx context.Context, identity domain.Identity, q dto.ListLeavesQuery) ([]domain.LeaveRequest, string, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.LeaveRequest), args.String(1), args.Error(2)
}

func (m *MockLeaveService) CreateLeave(ctx context.Context, identity domain.Identity, req dto.CreateLeaveRequest) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveService) DecideLeave(ctx context.Context, identity domain.Identity, leaveID string, action domain.LeaveAction, req dto.LeaveDecisionRequest) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, identity, leaveID, action, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

var _ portssvc.LeaveSvcFacade = (*MockLeaveService)(nil)

// --- Mock TaskService ---
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) ListTaskAssignments(ctx context.Context, identity domain.Identity, q dto.TaskAssignmentsQuery) ([]domain.TaskAssignment, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAssignment), args.Error(1)
}

func (m *MockTaskService) SendTaskReminders(ctx context.Context, identity domain.Identity, req dto.SendTaskRemindersRequest) (*dto.TaskRemindersResponse, error) {
	args := m.Called(ctx, identity, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TaskRemindersResponse), args.Error(1)
}

var _ portssvc.TaskSvc = (*MockTaskService)(nil)

// --- Mock EmployeeService ---
type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) DeactivateEmployee(ctx context.Context, identity domain.Identity, empID string) (*domain.DeactivationReport, error) {
	args := m.Called(ctx, identity, empID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeactivationReport), args.Error(1)
}

func (m *MockEmployeeService) AssignZone(ctx context.Context, identity domain.Identity, zoneID string, req dto.AssignZoneRequest) (*domain.ZoneAssignment, error) {
	args := m.Called(ctx, identity, zoneID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ZoneAssignment), args.Error(1)
}

func (m *MockEmployeeService) ListZoneAssignments(ctx context.Context, identity domain.Identity, q dto.ZoneAssignmentsQuery) ([]domain.ZoneAssignment, error) {
	args := m.Called(ctx, identity, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ZoneAssignment), args.Error(1)
}

var _ portssvc.EmployeeSvcFacade = (*MockEmployeeService)(nil)
