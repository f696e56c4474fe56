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
	"github.com/SscSPs/boutique_ops/internal/core/targets"
	"github.com/SscSPs/boutique_ops/internal/dto"
	"github.com/SscSPs/boutique_ops/internal/platform/cache"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/SscSPs/boutique_ops/internal/utils/money"
)

// GetTargetMetrics decomposes the boutique target, or one employee's target when q.UserID is set.
// Ledger amounts are whole SAR and are converted to halalas before comparison.
func (s *targetService) GetTargetMetrics(ctx context.Context, identity domain.Identity, q dto.TargetMetricsQuery) (*domain.TargetMetrics, error) {
	first, err := parseMonthField("month", q.Month)
	if err != nil {
		return nil, err
	}
	last := first.AddDate(0, 0, calendar.DaysInMonth(first)-1)

	scope, err := s.readScope(ctx, identity, q.ScopeQuery, targetsModule)
	if err != nil {
		return nil, err
	}

	if q.UserID != "" || identity.Role == domain.RoleEmployee {
		userID := q.UserID
		if identity.Role == domain.RoleEmployee {
			if userID != "" && userID != identity.UserID {
				return nil, apperrors.NewForbiddenError(apperrors.CodeForbidden, "employees may only read their own target")
			}
			userID = identity.UserID
		}
		if userID != identity.UserID {
			if err := s.assertUserInScope(ctx, scope, userID); err != nil {
				return nil, err
			}
		}
		return s.employeeMetrics(ctx, scope, userID, q.Month, first, last)
	}

	boutiqueID, err := singleBoutique(scope)
	if err != nil {
		return nil, err
	}
	var monthTarget int64
	bt, err := s.targetRepo.FindBoutiqueTarget(ctx, boutiqueID, q.Month)
	switch {
	case err == nil:
		monthTarget = bt.AmountHalalas
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		s.LogError(ctx, err, "Failed to load boutique target", slog.String("boutique_id", boutiqueID))
		return nil, fmt.Errorf("find boutique target: %w", err)
	}

	totals, err := s.salesRepo.SumSummariesByDay(ctx, []string{boutiqueID}, first, last)
	if err != nil {
		return nil, fmt.Errorf("sum sales summaries: %w", err)
	}
	m, err := targets.ComputeMetrics(targets.MetricsInput{
		BoutiqueID:   boutiqueID,
		MonthKey:     q.Month,
		MonthTarget:  monthTarget,
		Today:        s.Today(),
		DailyActuals: dailyHalalas(totals, boutiqueID),
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// assertUserInScope fails alike for unknown users and users homed outside scope.
func (s *targetService) assertUserInScope(ctx context.Context, scope *domain.Scope, userID string) error {
	emp, err := s.employeeRepo.FindEmployeeByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("find employee: %w", err)
		}
		if scope.IsGlobal {
			return apperrors.NewNotFoundError("employee", userID)
		}
		return &apperrors.CrossBoutiqueError{EntityType: "user", EntityID: userID}
	}
	return s.scope.AssertBoutiqueInScope(ctx, scope, "user", userID, emp.BoutiqueID)
}

func (s *targetService) employeeMetrics(ctx context.Context, scope *domain.Scope, userID, month string, first, last time.Time) (*domain.TargetMetrics, error) {
	et, err := s.targetRepo.FindEmployeeTarget(ctx, userID, month)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("employee target", userID+"@"+month)
		}
		s.LogError(ctx, err, "Failed to load employee target", slog.String("user_id", userID))
		return nil, fmt.Errorf("find employee target: %w", err)
	}
	if err := s.scope.AssertBoutiqueInScope(ctx, scope, "employee target", userID, et.BoutiqueID); err != nil {
		return nil, err
	}

	totals, err := s.salesRepo.SumLinesByDay(ctx, et.BoutiqueID, first, last)
	if err != nil {
		return nil, fmt.Errorf("sum sales lines: %w", err)
	}
	m, err := targets.ComputeMetrics(targets.MetricsInput{
		BoutiqueID:   et.BoutiqueID,
		UserID:       userID,
		MonthKey:     month,
		MonthTarget:  et.AmountHalalas,
		Today:        s.Today(),
		DailyActuals: dailyHalalas(totals, et.EmpID),
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetDashboardSalesMetrics builds the sales dashboard for every boutique in scope.
func (s *targetService) GetDashboardSalesMetrics(ctx context.Context, identity domain.Identity, q dto.DashboardQuery) (*domain.DashboardSalesMetrics, error) {
	if err := requireRole(identity, identity.Role != domain.RoleEmployee, "view the sales dashboard"); err != nil {
		return nil, err
	}
	first, err := parseMonthField("month", q.Month)
	if err != nil {
		return nil, err
	}
	scope, err := s.readScope(ctx, identity, q.ScopeQuery, targetsModule)
	if err != nil {
		return nil, err
	}

	last := first.AddDate(0, 0, calendar.DaysInMonth(first)-1)
	today := s.Today()
	asOf := last
	if today.Before(asOf) {
		asOf = today
	}

	out := &domain.DashboardSalesMetrics{Month: q.Month, IsGlobal: scope.IsGlobal, Boutiques: []domain.BoutiqueSalesDashboard{}}
	if asOf.Before(first) {
		asOf = first.AddDate(0, 0, -1)
	}

	boutiqueTargets, err := s.targetRepo.ListBoutiqueTargets(ctx, scope.BoutiqueIDs, q.Month)
	if err != nil {
		return nil, fmt.Errorf("list boutique targets: %w", err)
	}
	targetOf := make(map[string]int64, len(boutiqueTargets))
	for _, t := range boutiqueTargets {
		targetOf[t.BoutiqueID] = t.AmountHalalas
	}

	employeeTargets, err := s.targetRepo.ListEmployeeTargets(ctx, scope.BoutiqueIDs, q.Month)
	if err != nil {
		return nil, fmt.Errorf("list employee targets: %w", err)
	}
	byBoutique := make(map[string][]domain.EmployeeMonthlyTarget)
	empIDs := make([]string, 0, len(employeeTargets))
	for _, t := range employeeTargets {
		byBoutique[t.BoutiqueID] = append(byBoutique[t.BoutiqueID], t)
		empIDs = append(empIDs, t.EmpID)
	}
	names, err := s.employeeNames(ctx, empIDs)
	if err != nil {
		return nil, err
	}

	var summaries []domain.DailyTotal
	if !asOf.Before(first) {
		summaries, err = s.salesRepo.SumSummariesByDay(ctx, scope.BoutiqueIDs, first, asOf)
		if err != nil {
			return nil, fmt.Errorf("sum sales summaries: %w", err)
		}
	}
	actualOf := make(map[string]int64)
	for _, t := range summaries {
		actualOf[t.Key] += money.SARToHalalas(t.AmountSAR)
	}

	for _, boutiqueID := range scope.BoutiqueIDs {
		target := targetOf[boutiqueID]
		actual := actualOf[boutiqueID]
		block := domain.BoutiqueSalesDashboard{
			BoutiqueID:    boutiqueID,
			Month:         q.Month,
			TargetHalalas: target,
			ActualHalalas: actual,
			Pct:           targets.Pct(actual, target),
			TargetDisplay: money.FormatSARFromHalalas(target),
			ActualDisplay: money.FormatSARFromHalalas(actual),
			Employees:     []domain.EmployeeSalesRow{},
		}

		if rows := byBoutique[boutiqueID]; len(rows) > 0 && !asOf.Before(first) {
			lines, err := s.salesRepo.SumLinesByDay(ctx, boutiqueID, first, asOf)
			if err != nil {
				return nil, fmt.Errorf("sum sales lines: %w", err)
			}
			lineActual := make(map[string]int64)
			for _, l := range lines {
				lineActual[l.Key] += money.SARToHalalas(l.AmountSAR)
			}
			for _, r := range rows {
				block.Employees = append(block.Employees, domain.EmployeeSalesRow{
					EmpID:         r.EmpID,
					UserID:        r.UserID,
					Name:          names[r.EmpID],
					TargetHalalas: r.AmountHalalas,
					ActualHalalas: lineActual[r.EmpID],
					Pct:           targets.Pct(lineActual[r.EmpID], r.AmountHalalas),
				})
			}
			sort.Slice(block.Employees, func(i, j int) bool { return block.Employees[i].EmpID < block.Employees[j].EmpID })
		}

		yoy, err := s.yearOverYear(ctx, boutiqueID, first, asOf, actual)
		if err != nil {
			return nil, err
		}
		block.YoY = yoy
		out.Boutiques = append(out.Boutiques, block)
	}

	s.LogDebug(ctx, "Dashboard built", slog.String("month", q.Month), slog.Int("boutiques", len(out.Boutiques)))
	return out, nil
}

// yearOverYear compares [first, asOf] with the same span one year earlier. The prior total is
// immutable history once the span is past, so it is cached.
func (s *targetService) yearOverYear(ctx context.Context, boutiqueID string, first, asOf time.Time, actual int64) (domain.YearOverYear, error) {
	yoy := domain.YearOverYear{Period: calendar.MonthKey(first)}
	priorFirst := first.AddDate(-1, 0, 0)
	yoy.PriorPeriod = calendar.MonthKey(priorFirst)
	if asOf.Before(first) {
		return yoy, nil
	}

	// Feb 29 has no counterpart; AddDate would roll it into March.
	priorDay := min(asOf.Day(), calendar.DaysInMonth(priorFirst))
	priorAsOf := priorFirst.AddDate(0, 0, priorDay-1)

	key := cache.Key("yoy", []string{boutiqueID}, calendar.DateKey(priorFirst), calendar.DateKey(priorAsOf))
	prior, ok, err := s.yoy.Get(ctx, key)
	if err != nil {
		s.LogWarn(ctx, "Year-over-year cache read failed", slog.String("error", err.Error()))
	}
	if !ok {
		totals, err := s.salesRepo.SumSummariesByDay(ctx, []string{boutiqueID}, priorFirst, priorAsOf)
		if err != nil {
			return yoy, fmt.Errorf("sum prior-year summaries: %w", err)
		}
		prior = 0
		for _, t := range totals {
			prior += money.SARToHalalas(t.AmountSAR)
		}
		if err := s.yoy.Set(ctx, key, prior); err != nil {
			s.LogWarn(ctx, "Year-over-year cache write failed", slog.String("error", err.Error()))
		}
	}

	yoy.PriorActualHalalas = prior
	yoy.ChangePct = targets.Pct(actual-prior, prior)
	return yoy, nil
}

func (s *targetService) employeeNames(ctx context.Context, empIDs []string) (map[string]string, error) {
	names := make(map[string]string, len(empIDs))
	if len(empIDs) == 0 {
		return names, nil
	}
	emps, err := s.employeeRepo.ListEmployeesByIDs(ctx, empIDs)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	for _, e := range emps {
		names[e.EmpID] = e.Name
	}
	return names, nil
}

// dailyHalalas keeps the totals of one key and converts them from SAR to halalas by date key.
func dailyHalalas(totals []domain.DailyTotal, key string) map[string]int64 {
	out := make(map[string]int64)
	for _, t := range totals {
		if t.Key != key {
			continue
		}
		out[calendar.DateKey(t.Date)] += money.SARToHalalas(t.AmountSAR)
	}
	return out
}

