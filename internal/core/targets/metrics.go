package targets

import (
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
	"github.com/SscSPs/boutique_ops/internal/utils/money"
)

// MetricsInput feeds ComputeMetrics. DailyActuals is keyed by "YYYY-MM-DD" in halalas.
type MetricsInput struct {
	BoutiqueID   string
	UserID       string
	MonthKey     string
	MonthTarget  int64
	Today        time.Time
	DailyActuals map[string]int64
}

// ComputeMetrics decomposes a monthly target into day, week and month-to-date figures as of Today.
// A past month is measured as of its last day; a future month has no elapsed days.
func ComputeMetrics(in MetricsInput) (domain.TargetMetrics, error) {
	first, err := calendar.ParseMonthKey(in.MonthKey)
	if err != nil {
		return domain.TargetMetrics{}, err
	}
	days := calendar.DaysInMonth(first)
	last := first.AddDate(0, 0, days-1)

	m := domain.TargetMetrics{
		BoutiqueID:         in.BoutiqueID,
		UserID:             in.UserID,
		Month:              in.MonthKey,
		DaysInMonth:        days,
		MonthTargetHalalas: in.MonthTarget,
	}

	today := calendar.CivilDate(in.Today)
	if today.Before(first) {
		m.RemainingHalalas = in.MonthTarget
		m.RemainingDisplay = money.FormatSARFromHalalas(in.MonthTarget)
		m.Daily = period(0, 0)
		m.Week = period(0, 0)
		m.MonthToDate = period(0, 0)
		return m, nil
	}
	asOf := today
	if asOf.After(last) {
		asOf = last
	}
	asOfDay := asOf.Day()
	m.AsOfDate = calendar.DateKey(asOf)

	dailyTarget, err := GetDailyTargetForDay(in.MonthTarget, days, asOfDay)
	if err != nil {
		return domain.TargetMetrics{}, err
	}
	m.Daily = period(dailyTarget, in.DailyActuals[calendar.DateKey(asOf)])

	week := calendar.WeekDates(asOf)
	weekFrom, weekTo := week[0], week[6]
	if weekFrom.Before(first) {
		weekFrom = first
	}
	if weekTo.After(last) {
		weekTo = last
	}
	m.WeekStart = calendar.DateKey(weekFrom)
	m.WeekEndInclusive = calendar.DateKey(weekTo)
	weekTarget, err := SumDailyTargets(in.MonthTarget, days, weekFrom.Day(), weekTo.Day())
	if err != nil {
		return domain.TargetMetrics{}, err
	}
	m.Week = period(weekTarget, sumActuals(in.DailyActuals, weekFrom, asOf))

	mtdTarget, err := SumDailyTargets(in.MonthTarget, days, 1, asOfDay)
	if err != nil {
		return domain.TargetMetrics{}, err
	}
	mtdActual := sumActuals(in.DailyActuals, first, asOf)
	m.MonthToDate = period(mtdTarget, mtdActual)

	m.PctDaily = m.Daily.Pct
	m.PctWeek = m.Week.Pct
	m.PctMonth = Pct(mtdActual, in.MonthTarget)
	m.RemainingHalalas = max(in.MonthTarget-mtdActual, 0)
	m.RemainingDisplay = money.FormatSARFromHalalas(m.RemainingHalalas)
	return m, nil
}

func period(target, actual int64) domain.PeriodMetric {
	return domain.PeriodMetric{
		TargetHalalas: target,
		ActualHalalas: actual,
		Pct:           Pct(actual, target),
		TargetDisplay: money.FormatSARFromHalalas(target),
		ActualDisplay: money.FormatSARFromHalalas(actual),
	}
}

func sumActuals(actuals map[string]int64, from, to time.Time) int64 {
	var sum int64
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		sum += actuals[calendar.DateKey(d)]
	}
	return sum
}
