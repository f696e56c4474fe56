package services

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// ScheduleReaderSvc defines schedule read models
type ScheduleReaderSvc interface {
	// GetDaySchedule returns roster, coverage findings, suggestion and lock state for one date.
	GetDaySchedule(ctx context.Context, identity domain.Identity, q dto.DayScheduleQuery) (*domain.DaySchedule, error)

	// GetWeekSchedule returns the seven day schedules of the Saturday-start week.
	GetWeekSchedule(ctx context.Context, identity domain.Identity, q dto.WeekScheduleQuery) (*domain.WeekSchedule, error)
}

// ScheduleWriterSvc defines schedule mutations. Every one passes the lock guard first.
type ScheduleWriterSvc interface {
	// SetShiftOverride replaces an employee's default shift on a date.
	SetShiftOverride(ctx context.Context, identity domain.Identity, req dto.SetShiftOverrideRequest) (*domain.ShiftOverride, error)

	// ClearShiftOverride removes the override of an employee on a date.
	ClearShiftOverride(ctx context.Context, identity domain.Identity, req dto.ClearShiftOverrideRequest) error

	// AddGuestCoverage places an employee homed elsewhere on the host boutique's roster.
	AddGuestCoverage(ctx context.Context, identity domain.Identity, req dto.AddGuestCoverageRequest) (*domain.ShiftOverride, error)
}

// ScheduleLockSvc defines the schedule lock guard and lock management
type ScheduleLockSvc interface {
	// AssertScheduleEditable fails with WEEK_LOCKED or DAY_LOCKED when any date is frozen. Week
	// locks are checked before day locks.
	AssertScheduleEditable(ctx context.Context, boutiqueID string, dates []time.Time) error

	LockDay(ctx context.Context, identity domain.Identity, req dto.DayLockRequest) (*domain.ScheduleDayLock, error)
	UnlockDay(ctx context.Context, identity domain.Identity, req dto.DayLockRequest) error
	LockWeek(ctx context.Context, identity domain.Identity, req dto.WeekLockRequest) (*domain.ScheduleWeekLock, error)
	UnlockWeek(ctx context.Context, identity domain.Identity, req dto.WeekLockRequest) error
}

// CoverageRuleSvc defines coverage rule management
type CoverageRuleSvc interface {
	// ListCoverageRules returns every configured weekday rule.
	ListCoverageRules(ctx context.Context, identity domain.Identity) ([]domain.CoverageRule, error)

	// UpsertCoverageRule changes one weekday's rule and clears the coverage validation cache.
	UpsertCoverageRule(ctx context.Context, identity domain.Identity, day time.Weekday, req dto.UpsertCoverageRuleRequest) (*domain.CoverageRule, error)
}

// ScheduleSvcFacade combines all schedule-related service interfaces
type ScheduleSvcFacade interface {
	ScheduleReaderSvc
	ScheduleWriterSvc
	ScheduleLockSvc
	CoverageRuleSvc
}
