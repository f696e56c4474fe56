package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/boutique_ops/internal/core/ports/services"
	"github.com/SscSPs/boutique_ops/internal/core/scheduling"
	"github.com/SscSPs/boutique_ops/internal/core/targets"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/platform/metrics"
	"github.com/SscSPs/boutique_ops/internal/platform/redis"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/SscSPs/boutique_ops/internal/utils/temporal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const targetsModule = "targets"

// targetService implements the TargetSvcFacade interface
type targetService struct {
	BaseService
	scopedService
	targetRepo   portsrepo.TargetRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	leaveRepo    portsrepo.LeaveReader
	salesRepo    portsrepo.SalesReader
	auditRepo    portsrepo.AuditWriter
	txManager    portsrepo.TransactionManager
	pattern      scheduling.TeamPattern
	roleWeights  map[domain.Position]decimal.Decimal
	locker       Locker
	lockTTL      time.Duration
	metrics      *metrics.Metrics
	yoy          *cache.Snapshot[int64]
}

// TargetServiceOption configures optional collaborators of the target service.
type TargetServiceOption func(*targetService)

// WithGenerationLock guards target generation with a named lock held for at most ttl.
func WithGenerationLock(l Locker, ttl time.Duration) TargetServiceOption {
	return func(s *targetService) {
		s.locker = l
		s.lockTTL = ttl
	}
}

// WithTargetMetrics sets the metrics sink.
func WithTargetMetrics(m *metrics.Metrics) TargetServiceOption {
	return func(s *targetService) { s.metrics = m }
}

// WithYearOverYearCache sets the cache of prior-year sales totals.
func WithYearOverYearCache(c *cache.Snapshot[int64]) TargetServiceOption {
	return func(s *targetService) { s.yoy = c }
}

// WithTargetClock pins the wall clock.
func WithTargetClock(clock func() time.Time) TargetServiceOption {
	return func(s *targetService) { s.Clock = clock }
}

// NewTargetService creates a new target service. roleWeights is the fallback used when no
// effective-dated weight version exists for a position.
func NewTargetService(
	repos portsrepo.RepositoryProvider,
	scope portssvc.ScopeSvc,
	pattern scheduling.TeamPattern,
	roleWeights map[domain.Position]decimal.Decimal,
	opts ...TargetServiceOption,
) portssvc.TargetSvcFacade {
	s := &targetService{
		scopedService: scopedService{scope: scope},
		targetRepo:    repos.TargetRepo,
		employeeRepo:  repos.EmployeeRepo,
		leaveRepo:     repos.LeaveRepo,
		salesRepo:     repos.SalesRepo,
		auditRepo:     repos.BoutiqueRepo,
		txManager:     repos.TxManager,
		pattern:       pattern,
		roleWeights:   roleWeights,
		locker:        localLocker{},
		lockTTL:       30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.yoy == nil {
		s.yoy = cache.NewSnapshot[int64]("yoy_sales", 10*time.Minute, nil, s.metrics)
	}
	return s
}

var _ portssvc.TargetSvcFacade = (*targetService)(nil)

// UpsertBoutiqueTarget sets the boutique target of a month.
func (s *targetService) UpsertBoutiqueTarget(ctx context.Context, identity domain.Identity, req dto.UpsertBoutiqueTargetRequest) (*domain.BoutiqueMonthlyTarget, error) {
	if err := requireRole(identity, identity.Role.CanManageTargets(), "manage targets"); err != nil {
		return nil, err
	}
	if _, err := parseMonthField("month", req.Month); err != nil {
		return nil, err
	}
	if req.AmountHalalas < 0 {
		return nil, apperrors.NewValidationFailedError("amountHalalas", "must be a non-negative integer")
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, targetsModule)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	saved, err := s.targetRepo.UpsertBoutiqueTarget(ctx, domain.BoutiqueMonthlyTarget{
		BoutiqueID:    boutiqueID,
		Month:         req.Month,
		AmountHalalas: req.AmountHalalas,
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: identity.UserID, LastUpdatedAt: now, LastUpdatedBy: identity.UserID},
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save boutique target", slog.String("boutique_id", boutiqueID), slog.String("month", req.Month))
		return nil, fmt.Errorf("save boutique target: %w", err)
	}
	s.LogInfo(ctx, "Boutique target saved",
		slog.String("boutique_id", boutiqueID),
		slog.String("month", req.Month),
		slog.Int64("amount_halalas", req.AmountHalalas))
	return saved, nil
}

// GenerateTargets allocates the boutique target across eligible employees. Only one generation per
// (boutique, month) runs at a time; a concurrent call gets GENERATION_IN_PROGRESS.
func (s *targetService) GenerateTargets(ctx context.Context, identity domain.Identity, req dto.MonthTargetRequest) ([]domain.EmployeeMonthlyTarget, error) {
	if err := requireRole(identity, identity.Role.CanManageTargets(), "manage targets"); err != nil {
		return nil, err
	}
	if _, err := parseMonthField("month", req.Month); err != nil {
		return nil, err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, targetsModule)
	if err != nil {
		return nil, err
	}

	var rows []domain.EmployeeMonthlyTarget
	err = s.locker.WithLock(ctx, "targets:"+boutiqueID+":"+req.Month, s.lockTTL, func(ctx context.Context) error {
		var genErr error
		rows, genErr = s.generate(ctx, identity, boutiqueID, req.Month)
		return genErr
	})
	if errors.Is(err, redis.ErrLockNotObtained) {
		s.metrics.TargetGeneration("busy")
		s.LogWarn(ctx, "Target generation already running", slog.String("boutique_id", boutiqueID), slog.String("month", req.Month))
		return nil, apperrors.NewConflictError(apperrors.CodeGenerationInProgress, "target generation for this month is already running")
	}
	if err != nil {
		s.metrics.TargetGeneration("error")
		return nil, err
	}
	s.metrics.TargetGeneration("ok")
	return rows, nil
}

func (s *targetService) generate(ctx context.Context, identity domain.Identity, boutiqueID, month string) ([]domain.EmployeeMonthlyTarget, error) {
	bt, err := s.targetRepo.FindBoutiqueTarget(ctx, boutiqueID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("boutique target", boutiqueID+"@"+month)
		}
		s.LogError(ctx, err, "Failed to load boutique target", slog.String("boutique_id", boutiqueID))
		return nil, fmt.Errorf("find boutique target: %w", err)
	}

	staff, err := s.employeeRepo.ListEmployeesByBoutiques(ctx, []string{boutiqueID})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	eligible := make([]domain.Employee, 0, len(staff))
	empIDs := make([]string, 0, len(staff))
	for _, e := range staff {
		if e.IsTargetEligible() {
			eligible = append(eligible, e)
			empIDs = append(empIDs, e.EmpID)
		}
	}
	if len(eligible) == 0 {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, "boutique has no target-eligible employees")
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].EmpID < eligible[j].EmpID })

	dates, err := calendar.DatesInMonth(month)
	if err != nil {
		return nil, apperrors.NewValidationFailedError("month", "must be a month in YYYY-MM format")
	}
	first, last := dates[0], dates[len(dates)-1]

	teamRows, err := s.employeeRepo.ListTeamAssignments(ctx, empIDs)
	if err != nil {
		return nil, fmt.Errorf("list team assignments: %w", err)
	}
	teams := scheduling.NewTeamIndex(teamRows)

	leaveDates, err := s.approvedLeaveDates(ctx, empIDs, first, last)
	if err != nil {
		return nil, err
	}
	weightAt, err := s.roleWeightIndex(ctx)
	if err != nil {
		return nil, err
	}

	type input struct {
		emp      domain.Employee
		weight   decimal.Decimal
		presence targets.Presence
	}
	inputs := make([]input, 0, len(eligible))
	shares := make([]targets.Share, 0, len(eligible))
	for _, emp := range eligible {
		roleWeight, err := weightAt(emp.Position, first)
		if err != nil {
			return nil, err
		}
		working := s.pattern.WorkingDays(emp, func(d time.Time) domain.Team { return scheduling.TeamOn(teams, emp, d) }, dates)
		leaveDays := 0
		for _, d := range working {
			if leaveDates[emp.EmpID][calendar.DateKey(d)] {
				leaveDays++
			}
		}
		p := targets.Presence{WorkingDays: len(working), LeaveDays: leaveDays, DaysInMonth: len(dates)}
		inputs = append(inputs, input{emp: emp, weight: roleWeight, presence: p})
		shares = append(shares, targets.Share{Key: emp.EmpID, Weight: targets.AllocationWeight(roleWeight, p)})
	}

	allocs, err := targets.AllocateLargestRemainder(bt.AmountHalalas, shares)
	if err != nil {
		return nil, fmt.Errorf("allocate targets: %w", err)
	}
	if sum := targets.Sum(allocs); sum != bt.AmountHalalas {
		return nil, apperrors.NewInvariantViolationError(fmt.Sprintf("allocation sums to %d, boutique target is %d", sum, bt.AmountHalalas))
	}

	now := s.Now()
	rows := make([]domain.EmployeeMonthlyTarget, 0, len(inputs))
	for i, in := range inputs {
		factor, err := in.presence.Factor()
		if err != nil {
			return nil, err
		}
		effective, err := targets.EffectiveWeight(in.weight, in.presence)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.EmployeeMonthlyTarget{
			UserID:                      *in.emp.UserID,
			EmpID:                       in.emp.EmpID,
			BoutiqueID:                  boutiqueID,
			Month:                       month,
			AmountHalalas:               allocs[i].Amount,
			RoleAtGeneration:            in.emp.Position,
			EffectiveWeightAtGeneration: effective,
			ScheduledDaysInMonth:        in.presence.ScheduledDays(),
			LeaveDaysInMonth:            in.presence.LeaveDays,
			PresenceFactor:              factor,
			GeneratedAt:                 now,
			GeneratedBy:                 identity.UserID,
		})
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.targetRepo.ReplaceEmployeeTargets(ctx, boutiqueID, month, rows); err != nil {
			return fmt.Errorf("store employee targets: %w", err)
		}
		return s.audit(ctx, identity, domain.AuditActionTargetsGen, boutiqueID, map[string]any{
			"month":         month,
			"employees":     len(rows),
			"amountHalalas": bt.AmountHalalas,
		})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to store generated targets", slog.String("boutique_id", boutiqueID), slog.String("month", month))
		return nil, err
	}

	s.LogInfo(ctx, "Targets generated",
		slog.String("boutique_id", boutiqueID),
		slog.String("month", month),
		slog.Int("employees", len(rows)),
		slog.Int64("amount_halalas", bt.AmountHalalas))
	return rows, nil
}

// approvedLeaveDates maps employee id to the set of date keys covered by approved leave in [from, to].
func (s *targetService) approvedLeaveDates(ctx context.Context, empIDs []string, from, to time.Time) (map[string]map[string]bool, error) {
	leaves, err := s.leaveRepo.ListLeaves(ctx, portsrepo.LeaveFilter{
		EmpIDs:   empIDs,
		Statuses: []domain.LeaveStatus{domain.LeaveApproved},
		From:     &from,
		To:       &to,
	})
	if err != nil {
		return nil, fmt.Errorf("list approved leave: %w", err)
	}
	out := make(map[string]map[string]bool)
	for _, l := range leaves {
		if !l.Overlaps(from, to) {
			continue
		}
		if out[l.EmpID] == nil {
			out[l.EmpID] = make(map[string]bool)
		}
		for d := maxDate(l.StartDate, from); !d.After(l.EndDate) && !d.After(to); d = d.AddDate(0, 0, 1) {
			out[l.EmpID][calendar.DateKey(d)] = true
		}
	}
	return out, nil
}

// roleWeightIndex returns a lookup of the weight in force for a position on a date, falling back
// to the configured table.
func (s *targetService) roleWeightIndex(ctx context.Context) (func(domain.Position, time.Time) (decimal.Decimal, error), error) {
	versions, err := s.employeeRepo.ListRoleWeights(ctx)
	if err != nil {
		return nil, fmt.Errorf("list role weights: %w", err)
	}
	index := temporal.NewKeyedIndex(versions,
		func(v domain.RoleWeightVersion) domain.Position { return v.Position },
		func(v domain.RoleWeightVersion) time.Time { return v.EffectiveFrom },
	)
	return func(p domain.Position, d time.Time) (decimal.Decimal, error) {
		if v, ok := index.At(p, d); ok {
			return v.Weight, nil
		}
		if w, ok := s.roleWeights[p]; ok {
			return w, nil
		}
		return decimal.Zero, apperrors.NewValidationFailedError("position", fmt.Sprintf("no role weight configured for %q", p))
	}, nil
}

// ResetTargets clears a month's generated employee targets.
func (s *targetService) ResetTargets(ctx context.Context, identity domain.Identity, req dto.MonthTargetRequest) (int64, error) {
	if err := requireRole(identity, identity.Role.CanManageTargets(), "manage targets"); err != nil {
		return 0, err
	}
	if _, err := parseMonthField("month", req.Month); err != nil {
		return 0, err
	}
	_, boutiqueID, err := s.writeBoutique(ctx, identity, req.BoutiqueID, targetsModule)
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.targetRepo.DeleteEmployeeTargets(ctx, boutiqueID, req.Month)
		if err != nil {
			return fmt.Errorf("reset targets: %w", err)
		}
		return s.audit(ctx, identity, domain.AuditActionTargetsReset, boutiqueID, map[string]any{"month": req.Month, "deleted": deleted})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reset targets", slog.String("boutique_id", boutiqueID), slog.String("month", req.Month))
		return 0, err
	}

	s.LogInfo(ctx, "Targets reset", slog.String("boutique_id", boutiqueID), slog.String("month", req.Month), slog.Int64("deleted", deleted))
	return deleted, nil
}

func (s *targetService) audit(ctx context.Context, identity domain.Identity, action, boutiqueID string, details map[string]any) error {
	entry := domain.AuditLogEntry{
		AuditID:     uuid.NewString(),
		ActorUserID: identity.UserID,
		Module:      targetsModule,
		Action:      action,
		BoutiqueIDs: []string{boutiqueID},
		Details:     details,
		At:          s.Now(),
	}
	if err := s.auditRepo.SaveAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("audit %s: %w", action, err)
	}
	return nil
}

// ListEmployeeTargets lists the month's employee targets in scope. Employees only see their own.
func (s *targetService) ListEmployeeTargets(ctx context.Context, identity domain.Identity, q dto.TargetsQuery) ([]domain.EmployeeMonthlyTarget, error) {
	if _, err := parseMonthField("month", q.Month); err != nil {
		return nil, err
	}
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, targetsModule)
	if err != nil {
		return nil, err
	}

	rows, err := s.targetRepo.ListEmployeeTargets(ctx, scope.BoutiqueIDs, q.Month)
	if err != nil {
		s.LogError(ctx, err, "Failed to list employee targets", slog.String("month", q.Month))
		return nil, fmt.Errorf("list employee targets: %w", err)
	}
	if identity.Role == domain.RoleEmployee {
		own := rows[:0]
		for _, r := range rows {
			if r.UserID == identity.UserID {
				own = append(own, r)
			}
		}
		rows = own
	}
	if rows == nil {
		rows = []domain.EmployeeMonthlyTarget{}
	}
	return rows, nil
}
