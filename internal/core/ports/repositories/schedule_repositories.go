package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// ShiftOverrideReader defines read operations for shift overrides
type ShiftOverrideReader interface {
	// ListActiveOverrides returns active overrides in [from, to] whose host boutique is one of
	// boutiqueIDs or whose employee is homed in one of them.
	ListActiveOverrides(ctx context.Context, boutiqueIDs []string, from, to time.Time) ([]domain.ShiftOverride, error)
}

// ShiftOverrideWriter defines write operations for shift overrides
type ShiftOverrideWriter interface {
	// UpsertOverride stores the override for (empID, date), replacing an existing one of the same
	// boutique. A row held by another boutique fails with CONFLICT.
	UpsertOverride(ctx context.Context, override domain.ShiftOverride) (*domain.ShiftOverride, error)

	// DeleteOverride removes the override boutiqueID holds for (empID, date) and reports the rows removed.
	DeleteOverride(ctx context.Context, boutiqueID, empID string, date time.Time) (int64, error)
}

// ScheduleLockReader defines read operations for schedule locks
type ScheduleLockReader interface {
	// ListWeekLocks returns the week locks of a boutique with weekStart in [from, to].
	ListWeekLocks(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.ScheduleWeekLock, error)

	// ListDayLocks returns the day locks of a boutique with date in [from, to].
	ListDayLocks(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.ScheduleDayLock, error)
}

// ScheduleLockWriter defines write operations for schedule locks
type ScheduleLockWriter interface {
	// LockDay creates the day lock, or returns the existing one unchanged.
	LockDay(ctx context.Context, lock domain.ScheduleDayLock) (*domain.ScheduleDayLock, error)

	// UnlockDay removes a day lock and reports whether one existed.
	UnlockDay(ctx context.Context, boutiqueID string, date time.Time) (bool, error)

	// LockWeek creates the week lock, or returns the existing one unchanged.
	LockWeek(ctx context.Context, lock domain.ScheduleWeekLock) (*domain.ScheduleWeekLock, error)

	// UnlockWeek removes a week lock and reports whether one existed.
	UnlockWeek(ctx context.Context, boutiqueID string, weekStart time.Time) (bool, error)
}

// CoverageRuleStore defines persistence of coverage rules
type CoverageRuleStore interface {
	// ListCoverageRules returns the rule of every configured weekday.
	ListCoverageRules(ctx context.Context) ([]domain.CoverageRule, error)

	// UpsertCoverageRule stores the rule for its weekday.
	UpsertCoverageRule(ctx context.Context, rule domain.CoverageRule) (*domain.CoverageRule, error)
}

// ScheduleRepositoryFacade combines all schedule-related repository interfaces
type ScheduleRepositoryFacade interface {
	ShiftOverrideReader
	ShiftOverrideWriter
	ScheduleLockReader
	ScheduleLockWriter
	CoverageRuleStore
}
