package targets

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// snapshotPlaces is the precision persisted for presence factors and effective weights.
const snapshotPlaces = 6

// Presence describes one employee's availability in a month.
type Presence struct {
	WorkingDays int
	LeaveDays   int
	DaysInMonth int
}

// ScheduledDays is working days net of approved leave taken on working days.
func (p Presence) ScheduledDays() int {
	return max(p.WorkingDays-p.LeaveDays, 0)
}

// Factor is scheduledDays / daysInMonth, rounded for snapshotting.
func (p Presence) Factor() (decimal.Decimal, error) {
	if p.DaysInMonth <= 0 {
		return decimal.Zero, fmt.Errorf("days in month must be positive, got %d", p.DaysInMonth)
	}
	return decimal.NewFromInt(int64(p.ScheduledDays())).
		DivRound(decimal.NewFromInt(int64(p.DaysInMonth)), snapshotPlaces), nil
}

// EffectiveWeight is roleWeight * presence factor, rounded for snapshotting.
func EffectiveWeight(roleWeight decimal.Decimal, p Presence) (decimal.Decimal, error) {
	f, err := p.Factor()
	if err != nil {
		return decimal.Zero, err
	}
	return roleWeight.Mul(f).Round(snapshotPlaces), nil
}

// AllocationWeight is roleWeight * scheduledDays, proportional to the effective weight but free of
// the division's rounding.
func AllocationWeight(roleWeight decimal.Decimal, p Presence) decimal.Decimal {
	return roleWeight.Mul(decimal.NewFromInt(int64(p.ScheduledDays())))
}

// Pct returns actual/target*100 rounded to the nearest integer; a zero target is 0%.
func Pct(actual, target int64) int64 {
	if target == 0 {
		return 0
	}
	return decimal.NewFromInt(actual).Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(target), 0).IntPart()
}
