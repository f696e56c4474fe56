package targets

import "fmt"

// GetDailyTargetForDay returns the share of monthTarget for a 1-based day of the month.
// Days 1..remainder get base+1 and the rest get base, where base = monthTarget / daysInMonth.
func GetDailyTargetForDay(monthTarget int64, daysInMonth, dayOfMonth int) (int64, error) {
	if monthTarget < 0 {
		return 0, fmt.Errorf("month target must be non-negative, got %d", monthTarget)
	}
	if daysInMonth <= 0 {
		return 0, fmt.Errorf("days in month must be positive, got %d", daysInMonth)
	}
	if dayOfMonth < 1 || dayOfMonth > daysInMonth {
		return 0, fmt.Errorf("day %d outside 1..%d", dayOfMonth, daysInMonth)
	}
	base := monthTarget / int64(daysInMonth)
	remainder := monthTarget - base*int64(daysInMonth)
	if int64(dayOfMonth) <= remainder {
		return base + 1, nil
	}
	return base, nil
}

// SumDailyTargets adds the daily targets of days from..to inclusive, clipped to the month.
func SumDailyTargets(monthTarget int64, daysInMonth, from, to int) (int64, error) {
	from = max(from, 1)
	to = min(to, daysInMonth)
	var sum int64
	for d := from; d <= to; d++ {
		v, err := GetDailyTargetForDay(monthTarget, daysInMonth, d)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum, nil
}
