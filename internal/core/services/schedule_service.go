package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/scheduling"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/platform/metrics"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const scheduleModule = "schedule"

// scheduleService implements the ScheduleSvcFacade interface
type scheduleService struct {
	BaseService
	scopedService
	scheduleRepo  portsrepo.ScheduleRepositoryFacade
	employeeRepo  portsrepo.EmployeeReader
	roster        *rosterProvider
	pattern       scheduling.TeamPattern
	validator     *scheduling.Validator
	coverageCache *cache.CoverageCache
	metrics       *metrics.Metrics
	guestCoverage bool
}

// ScheduleServiceOption configures optional collaborators of the schedule service.
type ScheduleServiceOption func(*scheduleService)

// WithCoverageCache sets the coverage validation cache.
func WithCoverageCache(c *cache.CoverageCache) ScheduleServiceOption {
	return func(s *scheduleService) { s.coverageCache = c }
}

// WithScheduleMetrics sets the metrics sink for schedule writes.
func WithScheduleMetrics(m *metrics.Metrics) ScheduleServiceOption {
	return func(s *scheduleService) { s.metrics = m }
}

// WithGuestCoverage toggles guest coverage writes.
func WithGuestCoverage(enabled bool) ScheduleServiceOption {
	return func(s *scheduleService) { s.guestCoverage = enabled }
}

// WithScheduleClock pins the wall clock.
func WithScheduleClock(clock func() time.Time) ScheduleServiceOption {
	return func(s *scheduleService) { s.Clock = clock }
}

// NewScheduleService creates a new schedule service with the provided dependencies
func NewScheduleService(
	repos portsrepo.RepositoryProvider,
	scope portssvc.ScopeSvc,
	pattern scheduling.TeamPattern,
	opts ...ScheduleServiceOption,
) portssvc.ScheduleSvcFacade {
	s := &scheduleService{
		scopedService: scopedService{scope: scope},
		scheduleRepo:  repos.ScheduleRepo,
		employeeRepo:  repos.EmployeeRepo,
		roster:        newRosterProvider(repos, pattern),
		pattern:       pattern,
		validator:     scheduling.NewValidator(),
		guestCoverage: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.coverageCache == nil {
		s.coverageCache = cache.NewCoverageCache(2*time.Minute, s.metrics)
	}
	return s
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// GetDaySchedule returns roster, coverage findings, suggestion and lock state for one date.
func (s *scheduleService) GetDaySchedule(ctx context.Context, identity domain.Identity, q dto.DayScheduleQuery) (*domain.DaySchedule, error) {
	date, err := parseDateField("date", q.Date)
	if err != nil {
		return nil, err
	}
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, scheduleModule)
	if err != nil {
		return nil, err
	}
	rules, err := s.rulesByDay(ctx)
	if err != nil {
		return nil, err
	}

	day, err := s.daySchedule(ctx, date, scope.BoutiqueIDs, rules)
	if err != nil {
		return nil, err
	}
	if len(scope.BoutiqueIDs) == 1 {
		week := calendar.WeekStart(date)
		weekLocks, dayLocks, err := s.locksFor(ctx, scope.BoutiqueIDs[0], week, date, date)
		if err != nil {
			return nil, err
		}
		attachLocks(day, weekLocks, dayLocks)
	}
	return day, nil
}

// GetWeekSchedule returns the seven day schedules of the Saturday-start week. Days are built in parallel.
func (s *scheduleService) GetWeekSchedule(ctx context.Context, identity domain.Identity, q dto.WeekScheduleQuery) (*domain.WeekSchedule, error) {
	anyDay, err := parseDateField("weekStart", q.WeekStart)
	if err != nil {
		return nil, err
	}
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, scheduleModule)
	if err != nil {
		return nil, err
	}
	rules, err := s.rulesByDay(ctx)
	if err != nil {
		return nil, err
	}

	dates := calendar.WeekDates(anyDay)
	days := make([]domain.DaySchedule, len(dates))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range dates {
		g.Go(func() error {
			day, err := s.daySchedule(gctx, d, scope.BoutiqueIDs, rules)
			if err != nil {
				return fmt.Errorf("%s: %w", calendar.DateKey(d), err)
			}
			days[i] = *day
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to build week schedule", slog.String("week_start", calendar.DateKey(dates[0])))
		return nil, err
	}

	if len(scope.BoutiqueIDs) == 1 {
		weekLocks, dayLocks, err := s.locksFor(ctx, scope.BoutiqueIDs[0], dates[0], dates[0], dates[6])
		if err != nil {
			return nil, err
		}
		for i := range days {
			attachLocks(&days[i], weekLocks, dayLocks)
		}
	}
	return &domain.WeekSchedule{WeekStart: calendar.DateKey(dates[0]), Days: days}, nil
}

// daySchedule builds the read model of one date. Coverage findings come from the cache when fresh.
func (s *scheduleService) daySchedule(ctx context.Context, date time.Time, boutiqueIDs []string, rules map[time.Weekday]domain.CoverageRule) (*domain.DaySchedule, error) {
	roster, err := s.roster.RosterForDate(ctx, date, boutiqueIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to build roster", slog.String("date", calendar.DateKey(date)))
		return nil, err
	}

	key := calendar.DateKey(date)
	entry, ok := s.coverageCache.Get(key, boutiqueIDs)
	if !ok {
		day := scheduling.DayContext{Date: date, Roster: roster, IsRamadan: s.pattern.IsRamadan(date)}
		if rule, found := rules[date.Weekday()]; found {
			day.Rule = &rule
		}
		findings := s.validator.Validate(day)
		entry = cache.CoverageEntry{Validations: findings, Suggestion: scheduling.Suggest(day, findings)}
		s.coverageCache.Put(key, boutiqueIDs, entry)
	}

	return &domain.DaySchedule{
		Date:        key,
		Roster:      roster,
		Validations: entry.Validations,
		Suggestion:  entry.Suggestion,
		IsRamadan:   s.pattern.IsRamadan(date),
	}, nil
}

func (s *scheduleService) rulesByDay(ctx context.Context) (map[time.Weekday]domain.CoverageRule, error) {
	rules, err := s.scheduleRepo.ListCoverageRules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list coverage rules")
		return nil, fmt.Errorf("list coverage rules: %w", err)
	}
	out := make(map[time.Weekday]domain.CoverageRule, len(rules))
	for _, r := range rules {
		out[r.DayOfWeek] = r
	}
	return out, nil
}

func (s *scheduleService) locksFor(ctx context.Context, boutiqueID string, weekStart, from, to time.Time) ([]domain.ScheduleWeekLock, []domain.ScheduleDayLock, error) {
	weekLocks, err := s.scheduleRepo.ListWeekLocks(ctx, boutiqueID, weekStart, weekStart)
	if err != nil {
		return nil, nil, fmt.Errorf("list week locks: %w", err)
	}
	dayLocks, err := s.scheduleRepo.ListDayLocks(ctx, boutiqueID, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("list day locks: %w", err)
	}
	return weekLocks, dayLocks, nil
}

func attachLocks(day *domain.DaySchedule, weekLocks []domain.ScheduleWeekLock, dayLocks []domain.ScheduleDayLock) {
	for i := range weekLocks {
		day.WeekLock = &weekLocks[i]
	}
	for i := range dayLocks {
		if calendar.DateKey(dayLocks[i].Date) == day.Date {
			day.DayLock = &dayLocks[i]
		}
	}
}

// AssertScheduleEditable fails when any of dates falls in a locked week or on a locked day. Weeks
// are checked first.
func (s *scheduleService) AssertScheduleEditable(ctx context.Context, boutiqueID string, dates []time.Time) error {
	if len(dates) == 0 {
		return nil
	}
	sorted := slices.Clone(dates)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })
	first, last := sorted[0], sorted[len(sorted)-1]

	weekLocks, err := s.scheduleRepo.ListWeekLocks(ctx, boutiqueID, calendar.WeekStart(first), calendar.WeekStart(last))
	if err != nil {
		s.LogError(ctx, err, "Failed to list week locks", slog.String("boutique_id", boutiqueID))
		return fmt.Errorf("list week locks: %w", err)
	}
	lockedWeeks := make(map[string]domain.ScheduleWeekLock, len(weekLocks))
	for _, l := range weekLocks {
		lockedWeeks[calendar.DateKey(l.WeekStart)] = l
	}
	for _, d := range sorted {
		if l, ok := lockedWeeks[calendar.DateKey(calendar.WeekStart(d))]; ok {
			return &apperrors.ScheduleLockedError{
				Code:      apperrors.CodeWeekLocked,
				Date:      calendar.DateKey(d),
				WeekStart: calendar.DateKey(l.WeekStart),
				LockedBy:  l.LockedBy,
				LockedAt:  l.LockedAt,
			}
		}
	}

	dayLocks, err := s.scheduleRepo.ListDayLocks(ctx, boutiqueID, first, last)
	if err != nil {
		s.LogError(ctx, err, "Failed to list day locks", slog.String("boutique_id", boutiqueID))
		return fmt.Errorf("list day locks: %w", err)
	}
	lockedDays := make(map[string]domain.ScheduleDayLock, len(dayLocks))
	for _, l := range dayLocks {
		lockedDays[calendar.DateKey(l.Date)] = l
	}
	for _, d := range sorted {
		if l, ok := lockedDays[calendar.DateKey(d)]; ok {
			return &apperrors.ScheduleLockedError{
				Code:     apperrors.CodeDayLocked,
				Date:     calendar.DateKey(d),
				LockedBy: l.LockedBy,
				LockedAt: l.LockedAt,
			}
		}
	}
	return nil
}

// SetShiftOverride replaces an employee's default shift on a date at their home boutique.
func (s *scheduleService) SetShiftOverride(ctx context.Context, identity domain.Identity, req dto.SetShiftOverrideRequest) (*domain.ShiftOverride, error) {
	const op = "set_override"
	if err := requireRole(identity, identity.Role.CanEditSchedule(), "edit the schedule"); err != nil {
		return nil, err
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	shift, err := domain.ParseOverrideShift(req.OverrideShift)
	if err != nil || shift.IsGuestCoverage() {
		return nil, apperrors.NewValidationFailedError("overrideShift", "must be one of NONE, MORNING, EVENING")
	}

	emp, err := s.writableEmployee(ctx, identity, req.BoutiqueID, req.EmpID)
	if err != nil {
		return nil, err
	}
	if err := s.guard(ctx, op, []string{emp.BoutiqueID}, date); err != nil {
		return nil, err
	}

	now := s.Now()
	saved, err := s.scheduleRepo.UpsertOverride(ctx, domain.ShiftOverride{
		OverrideID:    uuid.NewString(),
		BoutiqueID:    emp.BoutiqueID,
		EmpID:         emp.EmpID,
		Date:          date,
		OverrideShift: shift,
		IsActive:      true,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: identity.UserID, LastUpdatedAt: now, LastUpdatedBy: identity.UserID},
	})
	if apperrors.CodeOf(err) == apperrors.CodeConflict {
		s.metrics.ScheduleWrite(op, "conflict")
		return nil, err
	}
	if err != nil {
		s.metrics.ScheduleWrite(op, "error")
		s.LogError(ctx, err, "Failed to save shift override", slog.String("emp_id", emp.EmpID), slog.String("date", req.Date))
		return nil, fmt.Errorf("save shift override: %w", err)
	}

	s.scheduleChanged(op)
	s.LogInfo(ctx, "Shift override saved",
		slog.String("emp_id", emp.EmpID),
		slog.String("date", req.Date),
		slog.String("override_shift", string(shift)))
	return saved, nil
}

// ClearShiftOverride removes an override held by a boutique in the caller's write scope: the host for
// guest coverage, the home boutique otherwise. Only that boutique's locks apply.
func (s *scheduleService) ClearShiftOverride(ctx context.Context, identity domain.Identity, req dto.ClearShiftOverrideRequest) error {
	const op = "clear_override"
	if err := requireRole(identity, identity.Role.CanEditSchedule(), "edit the schedule"); err != nil {
		return err
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return err
	}
	scope, err := s.writeScope(ctx, identity, req.BoutiqueID, scheduleModule)
	if err != nil {
		return err
	}

	existing, err := s.scheduleRepo.ListActiveOverrides(ctx, scope.BoutiqueIDs, date, date)
	if err != nil {
		return fmt.Errorf("list overrides: %w", err)
	}
	var target *domain.ShiftOverride
	for i := range existing {
		if existing[i].EmpID == req.EmpID {
			target = &existing[i]
			break
		}
	}
	if target == nil {
		return apperrors.NewNotFoundError("shift override", req.EmpID+"@"+req.Date)
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "shift override", target.OverrideID, target.BoutiqueID); err != nil {
		return err
	}
	if err := s.guard(ctx, op, []string{target.BoutiqueID}, date); err != nil {
		return err
	}

	removed, err := s.scheduleRepo.DeleteOverride(ctx, target.BoutiqueID, target.EmpID, date)
	if err != nil {
		s.metrics.ScheduleWrite(op, "error")
		s.LogError(ctx, err, "Failed to delete shift override", slog.String("emp_id", target.EmpID), slog.String("date", req.Date))
		return fmt.Errorf("delete shift override: %w", err)
	}
	if removed == 0 {
		return apperrors.NewNotFoundError("shift override", req.EmpID+"@"+req.Date)
	}

	s.scheduleChanged(op)
	s.LogInfo(ctx, "Shift override cleared",
		slog.String("emp_id", target.EmpID),
		slog.String("boutique_id", target.BoutiqueID),
		slog.String("date", req.Date))
	return nil
}

// AddGuestCoverage places an employee homed elsewhere on the host boutique's roster.
func (s *scheduleService) AddGuestCoverage(ctx context.Context, identity domain.Identity, req dto.AddGuestCoverageRequest) (*domain.ShiftOverride, error) {
	const op = "guest_coverage"
	if !s.guestCoverage {
		return nil, apperrors.NewForbiddenError(apperrors.CodeForbidden, "guest coverage is disabled")
	}
	if err := requireRole(identity, identity.Role.CanEditSchedule(), "edit the schedule"); err != nil {
		return nil, err
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	shift, err := domain.GuestOverrideFor(domain.Shift(req.Shift))
	if err != nil {
		return nil, apperrors.NewValidationFailedError("shift", "must be AM or PM")
	}
	_, host, err := s.writeBoutique(ctx, identity, req.HostBoutiqueID, scheduleModule)
	if err != nil {
		return nil, err
	}

	emp, err := s.employeeRepo.FindEmployeeByID(ctx, req.EmpID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("employee", req.EmpID)
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	if !emp.IsSchedulable() {
		return nil, apperrors.NewValidationFailedError("empId", "employee is not active")
	}
	if emp.BoutiqueID == host {
		return nil, apperrors.NewValidationFailedError("empId", "employee already belongs to the host boutique")
	}
	if err := s.guard(ctx, op, []string{host, emp.BoutiqueID}, date); err != nil {
		return nil, err
	}

	now := s.Now()
	source := emp.BoutiqueID
	saved, err := s.scheduleRepo.UpsertOverride(ctx, domain.ShiftOverride{
		OverrideID:       uuid.NewString(),
		BoutiqueID:       host,
		EmpID:            emp.EmpID,
		Date:             date,
		OverrideShift:    shift,
		SourceBoutiqueID: &source,
		IsActive:         true,
		AuditFields:      domain.AuditFields{CreatedAt: now, CreatedBy: identity.UserID, LastUpdatedAt: now, LastUpdatedBy: identity.UserID},
	})
	if apperrors.CodeOf(err) == apperrors.CodeConflict {
		s.metrics.ScheduleWrite(op, "conflict")
		s.LogWarn(ctx, "Guest coverage collides with another boutique's override",
			slog.String("emp_id", emp.EmpID), slog.String("host_boutique_id", host), slog.String("date", req.Date))
		return nil, err
	}
	if err != nil {
		s.metrics.ScheduleWrite(op, "error")
		s.LogError(ctx, err, "Failed to save guest coverage", slog.String("emp_id", emp.EmpID), slog.String("host_boutique_id", host))
		return nil, fmt.Errorf("save guest coverage: %w", err)
	}

	s.scheduleChanged(op)
	s.LogInfo(ctx, "Guest coverage added",
		slog.String("emp_id", emp.EmpID),
		slog.String("home_boutique_id", source),
		slog.String("host_boutique_id", host),
		slog.String("date", req.Date))
	return saved, nil
}

// writableEmployee loads an employee whose home boutique is in the caller's write scope.
func (s *scheduleService) writableEmployee(ctx context.Context, identity domain.Identity, boutiqueID, empID string) (*domain.Employee, error) {
	scope, err := s.writeScope(ctx, identity, boutiqueID, scheduleModule)
	if err != nil {
		return nil, err
	}
	emp, err := s.scopedEmployee(ctx, s.employeeRepo, scope, empID)
	if err != nil {
		return nil, err
	}
	if !emp.IsSchedulable() {
		return nil, apperrors.NewValidationFailedError("empId", "employee is not active")
	}
	return emp, nil
}

// guard runs the lock guard for every boutique whose roster the write changes.
func (s *scheduleService) guard(ctx context.Context, op string, boutiqueIDs []string, dates ...time.Time) error {
	for _, id := range boutiqueIDs {
		if err := s.AssertScheduleEditable(ctx, id, dates); err != nil {
			if errors.Is(err, apperrors.ErrLocked) {
				s.metrics.ScheduleWrite(op, "locked")
				s.LogWarn(ctx, "Schedule write blocked by lock", slog.String("boutique_id", id), slog.String("reason", err.Error()))
			}
			return err
		}
	}
	return nil
}

func (s *scheduleService) scheduleChanged(op string) {
	s.coverageCache.ClearCoverageValidationCache()
	s.metrics.ScheduleWrite(op, "ok")
}

// LockDay freezes one date of a boutique's schedule.
func (s *scheduleService) LockDay(ctx context.Context, identity domain.Identity, req dto.DayLockRequest) (*domain.ScheduleDayLock, error) {
	if err := requireRole(identity, identity.Role.CanLockSchedule(), "lock the schedule"); err != nil {
		return nil, err
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return nil, err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, scheduleModule)
	if err != nil {
		return nil, err
	}

	lock, err := s.scheduleRepo.LockDay(ctx, domain.ScheduleDayLock{
		BoutiqueID: boutiqueID,
		Date:       date,
		LockedBy:   identity.UserID,
		LockedAt:   s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to lock day", slog.String("boutique_id", boutiqueID), slog.String("date", req.Date))
		return nil, fmt.Errorf("lock day: %w", err)
	}
	s.metrics.ScheduleWrite("lock_day", "ok")
	s.LogInfo(ctx, "Day locked", slog.String("boutique_id", boutiqueID), slog.String("date", req.Date))
	return lock, nil
}

// UnlockDay removes a day lock.
func (s *scheduleService) UnlockDay(ctx context.Context, identity domain.Identity, req dto.DayLockRequest) error {
	if err := requireRole(identity, identity.Role.CanLockSchedule(), "unlock the schedule"); err != nil {
		return err
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		return err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, scheduleModule)
	if err != nil {
		return err
	}

	existed, err := s.scheduleRepo.UnlockDay(ctx, boutiqueID, date)
	if err != nil {
		s.LogError(ctx, err, "Failed to unlock day", slog.String("boutique_id", boutiqueID), slog.String("date", req.Date))
		return fmt.Errorf("unlock day: %w", err)
	}
	if !existed {
		return apperrors.NewNotFoundError("day lock", boutiqueID+"@"+req.Date)
	}
	s.metrics.ScheduleWrite("unlock_day", "ok")
	s.LogInfo(ctx, "Day unlocked", slog.String("boutique_id", boutiqueID), slog.String("date", req.Date))
	return nil
}

// LockWeek freezes the Saturday-start week containing req.WeekStart.
func (s *scheduleService) LockWeek(ctx context.Context, identity domain.Identity, req dto.WeekLockRequest) (*domain.ScheduleWeekLock, error) {
	if err := requireRole(identity, identity.Role.CanLockSchedule(), "lock the schedule"); err != nil {
		return nil, err
	}
	anyDay, err := parseDateField("weekStart", req.WeekStart)
	if err != nil {
		return nil, err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, scheduleModule)
	if err != nil {
		return nil, err
	}

	weekStart := calendar.WeekStart(anyDay)
	lock, err := s.scheduleRepo.LockWeek(ctx, domain.ScheduleWeekLock{
		BoutiqueID: boutiqueID,
		WeekStart:  weekStart,
		LockedBy:   identity.UserID,
		LockedAt:   s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to lock week", slog.String("boutique_id", boutiqueID), slog.String("week_start", calendar.DateKey(weekStart)))
		return nil, fmt.Errorf("lock week: %w", err)
	}
	s.metrics.ScheduleWrite("lock_week", "ok")
	s.LogInfo(ctx, "Week locked", slog.String("boutique_id", boutiqueID), slog.String("week_start", calendar.DateKey(weekStart)))
	return lock, nil
}

// UnlockWeek removes a week lock.
func (s *scheduleService) UnlockWeek(ctx context.Context, identity domain.Identity, req dto.WeekLockRequest) error {
	if err := requireRole(identity, identity.Role.CanLockSchedule(), "unlock the schedule"); err != nil {
		return err
	}
	anyDay, err := parseDateField("weekStart", req.WeekStart)
	if err != nil {
		return err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, scheduleModule)
	if err != nil {
		return err
	}

	weekStart := calendar.WeekStart(anyDay)
	existed, err := s.scheduleRepo.UnlockWeek(ctx, boutiqueID, weekStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to unlock week", slog.String("boutique_id", boutiqueID))
		return fmt.Errorf("unlock week: %w", err)
	}
	if !existed {
		return apperrors.NewNotFoundError("week lock", boutiqueID+"@"+calendar.DateKey(weekStart))
	}
	s.metrics.ScheduleWrite("unlock_week", "ok")
	s.LogInfo(ctx, "Week unlocked", slog.String("boutique_id", boutiqueID), slog.String("week_start", calendar.DateKey(weekStart)))
	return nil
}

// ListCoverageRules returns every configured weekday rule ordered Sunday first.
func (s *scheduleService) ListCoverageRules(ctx context.Context, identity domain.Identity) ([]domain.CoverageRule, error) {
	if err := requireIdentity(identity); err != nil {
		return nil, err
	}
	rules, err := s.scheduleRepo.ListCoverageRules(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list coverage rules")
		return nil, fmt.Errorf("list coverage rules: %w", err)
	}
	slices.SortFunc(rules, func(a, b domain.CoverageRule) int { return int(a.DayOfWeek) - int(b.DayOfWeek) })
	return rules, nil
}

// UpsertCoverageRule changes one weekday's rule and clears the coverage validation cache.
func (s *scheduleService) UpsertCoverageRule(ctx context.Context, identity domain.Identity, day time.Weekday, req dto.UpsertCoverageRuleRequest) (*domain.CoverageRule, error) {
	if err := requireRole(identity, identity.Role.CanEditCoverageRules(), "edit coverage rules"); err != nil {
		return nil, err
	}
	if day < time.Sunday || day > time.Saturday {
		return nil, apperrors.NewValidationFailedError("dayOfWeek", "must be between 0 (Sunday) and 6 (Saturday)")
	}
	if req.MinAM < 0 || req.MinPM < 0 {
		return nil, apperrors.NewValidationFailedError("minAm", "minimums must not be negative")
	}
	if req.Enabled == nil {
		return nil, apperrors.NewValidationFailedError("enabled", "is required")
	}

	rule, err := s.scheduleRepo.UpsertCoverageRule(ctx, domain.CoverageRule{
		DayOfWeek: day,
		MinAM:     req.MinAM,
		MinPM:     req.MinPM,
		Enabled:   *req.Enabled,
		UpdatedBy: identity.UserID,
		UpdatedAt: s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save coverage rule", slog.Int("day_of_week", int(day)))
		return nil, fmt.Errorf("save coverage rule: %w", err)
	}

	s.coverageCache.ClearCoverageValidationCache()
	s.LogInfo(ctx, "Coverage rule updated",
		slog.Int("day_of_week", int(day)),
		slog.Int("min_am", rule.MinAM),
		slog.Int("min_pm", rule.MinPM),
		slog.Bool("enabled", rule.Enabled))
	return rule, nil
}
