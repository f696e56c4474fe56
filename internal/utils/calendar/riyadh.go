// Package calendar holds the Asia/Riyadh civil calendar used for every day, week and month boundary.
//
// Civil dates are carried as time.Time values at 00:00 UTC; instants are real UTC times. Riyadh has
// no daylight saving, so the offset is a fixed +03:00.
package calendar

import (
	"fmt"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// Riyadh is the fixed +03:00 zone used for all business boundaries.
var Riyadh = time.FixedZone("Asia/Riyadh", 3*60*60)

// WeekStartDay is the first day of the regional business week.
const WeekStartDay = time.Saturday

// ParseDateKey parses "YYYY-MM-DD" into a civil date.
func ParseDateKey(key string) (time.Time, error) {
	d, err := time.Parse(dateLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", key)
	}
	return d, nil
}

// DateKey formats a civil date as "YYYY-MM-DD".
func DateKey(d time.Time) string {
	return d.Format(dateLayout)
}

// ParseMonthKey parses "YYYY-MM" into the civil date of the first day of that month.
func ParseMonthKey(key string) (time.Time, error) {
	m, err := time.Parse(monthLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", key)
	}
	return m, nil
}

// MonthKey formats the month containing civil date d as "YYYY-MM".
func MonthKey(d time.Time) string {
	return d.Format(monthLayout)
}

// CivilDate truncates any time to its civil date component without zone conversion.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TodayInRiyadh returns the Riyadh civil date at instant now.
func TodayInRiyadh(now time.Time) time.Time {
	return CivilDate(now.In(Riyadh))
}

// StartOfDay returns the UTC instant of 00:00 Riyadh on civil date d.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, Riyadh).UTC()
}

// GetMonthRange returns [first day 00:00 Riyadh, first day of next month 00:00 Riyadh) as UTC instants.
func GetMonthRange(monthKey string) (start, endExclusive time.Time, err error) {
	first, err := ParseMonthKey(monthKey)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return StartOfDay(first), StartOfDay(first.AddDate(0, 1, 0)), nil
}

// GetDaysInMonth returns the number of calendar days in the month.
func GetDaysInMonth(monthKey string) (int, error) {
	first, err := ParseMonthKey(monthKey)
	if err != nil {
		return 0, err
	}
	return DaysInMonth(first), nil
}

// DaysInMonth returns the number of days in the month containing civil date d.
func DaysInMonth(d time.Time) int {
	first := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// DatesInMonth lists every civil date of the month in order.
func DatesInMonth(monthKey string) ([]time.Time, error) {
	first, err := ParseMonthKey(monthKey)
	if err != nil {
		return nil, err
	}
	n := DaysInMonth(first)
	dates := make([]time.Time, n)
	for i := range n {
		dates[i] = first.AddDate(0, 0, i)
	}
	return dates, nil
}

// WeekStart returns the Saturday on or before civil date d.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) - int(WeekStartDay) + 7) % 7
	return CivilDate(d).AddDate(0, 0, -offset)
}

// IsWeekStart reports whether d is a Saturday.
func IsWeekStart(d time.Time) bool {
	return d.Weekday() == WeekStartDay
}

// WeekDates returns the seven civil dates Saturday..Friday of the week containing d.
func WeekDates(d time.Time) []time.Time {
	start := WeekStart(d)
	dates := make([]time.Time, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// WeeksBetween counts whole Saturday-start weeks from the week of anchor to the week of d.
// The result is negative when d precedes anchor.
func WeeksBetween(anchor, d time.Time) int {
	days := int(WeekStart(d).Sub(WeekStart(anchor)).Hours() / 24)
	if days >= 0 {
		return days / 7
	}
	return -((-days + 6) / 7)
}

// DateRange is an inclusive range of civil dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses two "YYYY-MM-DD" keys into an inclusive range.
func NewDateRange(startKey, endKey string) (DateRange, error) {
	start, err := ParseDateKey(startKey)
	if err != nil {
		return DateRange{}, err
	}
	end, err := ParseDateKey(endKey)
	if err != nil {
		return DateRange{}, err
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("date range end %s precedes start %s", endKey, startKey)
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains reports whether civil date d lies in the range.
func (r DateRange) Contains(d time.Time) bool {
	d = CivilDate(d)
	return !d.Before(r.Start) && !d.After(r.End)
}
