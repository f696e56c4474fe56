package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockBoutiqueRepository is a mock type for the BoutiqueRepositoryFacade interface
type MockBoutiqueRepository struct {
	mock.Mock
}

func (m *MockBoutiqueRepository) FindBoutiqueByID(ctx context.Context, boutiqueID string) (*domain.Boutique, error) {
	args := m.Called(ctx, boutiqueID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Boutique), args.Error(1)
}

func (m *MockBoutiqueRepository) ListActiveBoutiqueIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBoutiqueRepository) ListActiveMemberships(ctx context.Context, userID string) ([]domain.BoutiqueMembership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoutiqueMembership), args.Error(1)
}

func (m *MockBoutiqueRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockEmployeeRepository is a mock type for the EmployeeRepositoryFacade interface
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, empID string) (*domain.Employee, error) {
	args := m.Called(ctx, empID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployeesByBoutiques(ctx context.Context, boutiqueIDs []string) ([]domain.Employee, error) {
	args := m.Called(ctx, boutiqueIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployeesByIDs(ctx context.Context, empIDs []string) ([]domain.Employee, error) {
	args := m.Called(ctx, empIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListTeamAssignments(ctx context.Context, empIDs []string) ([]domain.TeamAssignment, error) {
	args := m.Called(ctx, empIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TeamAssignment), args.Error(1)
}

func (m *MockEmployeeRepository) ListRoleWeights(ctx context.Context) ([]domain.RoleWeightVersion, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RoleWeightVersion), args.Error(1)
}

func (m *MockEmployeeRepository) DeactivateEmployee(ctx context.Context, empID, actorUserID string, at time.Time) (*domain.DeactivationReport, error) {
	args := m.Called(ctx, empID, actorUserID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeactivationReport), args.Error(1)
}

// MockScheduleRepository is a mock type for the ScheduleRepositoryFacade interface
type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) ListActiveOverrides(ctx context.Context, boutiqueIDs []string, from, to time.Time) ([]domain.ShiftOverride, error) {
	args := m.Called(ctx, boutiqueIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShiftOverride), args.Error(1)
}

func (m *MockScheduleRepository) UpsertOverride(ctx context.Context, override domain.ShiftOverride) (*domain.ShiftOverride, error) {
	args := m.Called(ctx, override)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftOverride), args.Error(1)
}

func (m *MockScheduleRepository) DeleteOverride(ctx context.Context, boutiqueID, empID string, date time.Time) (int64, error) {
	args := m.Called(ctx, boutiqueID, empID, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScheduleRepository) ListWeekLocks(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.ScheduleWeekLock, error) {
	args := m.Called(ctx, boutiqueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleWeekLock), args.Error(1)
}

func (m *MockScheduleRepository) ListDayLocks(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.ScheduleDayLock, error) {
	args := m.Called(ctx, boutiqueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleDayLock), args.Error(1)
}

func (m *MockScheduleRepository) LockDay(ctx context.Context, lock domain.ScheduleDayLock) (*domain.ScheduleDayLock, error) {
	args := m.Called(ctx, lock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleDayLock), args.Error(1)
}

func (m *MockScheduleRepository) UnlockDay(ctx context.Context, boutiqueID string, date time.Time) (bool, error) {
	args := m.Called(ctx, boutiqueID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) LockWeek(ctx context.Context, lock domain.ScheduleWeekLock) (*domain.ScheduleWeekLock, error) {
	args := m.Called(ctx, lock)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScheduleWeekLock), args.Error(1)
}

func (m *MockScheduleRepository) UnlockWeek(ctx context.Context, boutiqueID string, weekStart time.Time) (bool, error) {
	args := m.Called(ctx, boutiqueID, weekStart)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) ListCoverageRules(ctx context.Context) ([]domain.CoverageRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CoverageRule), args.Error(1)
}

func (m *MockScheduleRepository) UpsertCoverageRule(ctx context.Context, rule domain.CoverageRule) (*domain.CoverageRule, error) {
	args := m.Called(ctx, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CoverageRule), args.Error(1)
}

// MockLeaveRepository is a mock type for the LeaveRepositoryFacade interface
type MockLeaveRepository struct {
	mock.Mock
}

func (m *MockLeaveRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error) {
	args := m.Called(ctx, leaveID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRepository) ListLeaves(ctx context.Context, filter portsrepo.LeaveFilter) ([]domain.LeaveRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LeaveRequest), args.Error(1)
}

func (m *MockLeaveRepository) HasOverlappingLeave(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	args := m.Called(ctx, userID, start, end)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaveRepository) SaveLeave(ctx context.Context, leave domain.LeaveRequest) error {
	args := m.Called(ctx, leave)
	return args.Error(0)
}

func (m *MockLeaveRepository) UpdateLeaveStatus(ctx context.Context, leave domain.LeaveRequest, expected domain.LeaveStatus) error {
	args := m.Called(ctx, leave, expected)
	return args.Error(0)
}

// MockTargetRepository is a mock type for the TargetRepositoryFacade interface
type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) FindBoutiqueTarget(ctx context.Context, boutiqueID, month string) (*domain.BoutiqueMonthlyTarget, error) {
	args := m.Called(ctx, boutiqueID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoutiqueMonthlyTarget), args.Error(1)
}

func (m *MockTargetRepository) ListBoutiqueTargets(ctx context.Context, boutiqueIDs []string, month string) ([]domain.BoutiqueMonthlyTarget, error) {
	args := m.Called(ctx, boutiqueIDs, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BoutiqueMonthlyTarget), args.Error(1)
}

func (m *MockTargetRepository) ListEmployeeTargets(ctx context.Context, boutiqueIDs []string, month string) ([]domain.EmployeeMonthlyTarget, error) {
	args := m.Called(ctx, boutiqueIDs, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmployeeMonthlyTarget), args.Error(1)
}

func (m *MockTargetRepository) FindEmployeeTarget(ctx context.Context, userID, month string) (*domain.EmployeeMonthlyTarget, error) {
	args := m.Called(ctx, userID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployeeMonthlyTarget), args.Error(1)
}

func (m *MockTargetRepository) UpsertBoutiqueTarget(ctx context.Context, target domain.BoutiqueMonthlyTarget) (*domain.BoutiqueMonthlyTarget, error) {
	args := m.Called(ctx, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BoutiqueMonthlyTarget), args.Error(1)
}

func (m *MockTargetRepository) ReplaceEmployeeTargets(ctx context.Context, boutiqueID, month string, rows []domain.EmployeeMonthlyTarget) error {
	args := m.Called(ctx, boutiqueID, month, rows)
	return args.Error(0)
}

func (m *MockTargetRepository) DeleteEmployeeTargets(ctx context.Context, boutiqueID, month string) (int64, error) {
	args := m.Called(ctx, boutiqueID, month)
	return args.Get(0).(int64), args.Error(1)
}

// MockSalesRepository is a mock type for the SalesRepositoryFacade interface
type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) FindSummaryByID(ctx context.Context, summaryID string) (*domain.SalesSummary, error) {
	args := m.Called(ctx, summaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

func (m *MockSalesRepository) ListLines(ctx context.Context, summaryID string) ([]domain.SalesLine, error) {
	args := m.Called(ctx, summaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesLine), args.Error(1)
}

func (m *MockSalesRepository) SumSummariesByDay(ctx context.Context, boutiqueIDs []string, from, to time.Time) ([]domain.DailyTotal, error) {
	args := m.Called(ctx, boutiqueIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyTotal), args.Error(1)
}

func (m *MockSalesRepository) SumLinesByDay(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.DailyTotal, error) {
	args := m.Called(ctx, boutiqueID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyTotal), args.Error(1)
}

func (m *MockSalesRepository) UpsertSummary(ctx context.Context, summary domain.SalesSummary) (*domain.SalesSummary, error) {
	args := m.Called(ctx, summary)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

func (m *MockSalesRepository) UpsertLine(ctx context.Context, line domain.SalesLine) (*domain.SalesLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesLine), args.Error(1)
}

// LockSummary runs check against the summary and lines registered with the expectation, the way
// the repository does inside its transaction.
func (m *MockSalesRepository) LockSummary(ctx context.Context, summaryID, lockedBy string, at time.Time, check portsrepo.SummaryLockCheck) (*domain.SalesSummary, error) {
	args := m.Called(ctx, summaryID, lockedBy, at)
	if args.Error(2) != nil {
		return nil, args.Error(2)
	}
	summary := args.Get(0).(domain.SalesSummary)
	lines := args.Get(1).([]domain.SalesLine)
	if err := check(summary, lines); err != nil {
		return nil, err
	}
	summary.Status = domain.SalesSummaryLocked
	summary.LockedBy = &lockedBy
	summary.LockedAt = &at
	return &summary, nil
}

// MockTaskRepository is a mock type for the TaskRepositoryFacade interface
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) ListActiveTasks(ctx context.Context, boutiqueIDs []string) ([]domain.Task, error) {
	args := m.Called(ctx, boutiqueIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}

// MockZoneRepository is a mock type for the ZoneRepositoryFacade interface
type MockZoneRepository struct {
	mock.Mock
}

func (m *MockZoneRepository) FindZoneByID(ctx context.Context, zoneID string) (*domain.InventoryZone, error) {
	args := m.Called(ctx, zoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryZone), args.Error(1)
}

func (m *MockZoneRepository) ListActiveZoneAssignments(ctx context.Context, boutiqueIDs []string) ([]domain.ZoneAssignment, error) {
	args := m.Called(ctx, boutiqueIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ZoneAssignment), args.Error(1)
}

func (m *MockZoneRepository) AssignZone(ctx context.Context, assignment domain.ZoneAssignment) (*domain.ZoneAssignment, error) {
	args := m.Called(ctx, assignment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ZoneAssignment), args.Error(1)
}

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	notes []domain.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, note domain.Notification) {
	r.notes = append(r.notes, note)
}

// inlineTx runs each unit of work on the caller's context and counts the runs.
type inlineTx struct {
	runs int
}

func (t *inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.runs++
	return fn(ctx)
}

// mockRepos bundles one mock per repository facade.
type mockRepos struct {
	boutique *MockBoutiqueRepository
	employee *MockEmployeeRepository
	schedule *MockScheduleRepository
	leave    *MockLeaveRepository
	target   *MockTargetRepository
	sales    *MockSalesRepository
	task     *MockTaskRepository
	zone     *MockZoneRepository
	tx       *inlineTx
}

func newMockRepos() *mockRepos {
	return &mockRepos{
		boutique: new(MockBoutiqueRepository),
		employee: new(MockEmployeeRepository),
		schedule: new(MockScheduleRepository),
		leave:    new(MockLeaveRepository),
		target:   new(MockTargetRepository),
		sales:    new(MockSalesRepository),
		task:     new(MockTaskRepository),
		zone:     new(MockZoneRepository),
		tx:       new(inlineTx),
	}
}

func (r *mockRepos) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BoutiqueRepo: r.boutique,
		EmployeeRepo: r.employee,
		ScheduleRepo: r.schedule,
		LeaveRepo:    r.leave,
		TargetRepo:   r.target,
		SalesRepo:    r.sales,
		TaskRepo:     r.task,
		ZoneRepo:     r.zone,
		TxManager:    r.tx,
	}
}

func strPtr(s string) *string { return &s }

// fixedClock returns a clock pinned to the instant.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
