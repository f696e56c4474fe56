// Package tasks decides which recurring tasks run on a date and who is responsible for them.
package tasks

import (
	"slices"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

// ScheduleMatches reports whether a single schedule rule selects civil date d.
// A MONTHLY day beyond the end of a short month falls on that month's last day.
func ScheduleMatches(s domain.TaskSchedule, d time.Time) bool {
	d = calendar.CivilDate(d)
	if s.StartsOn != nil && d.Before(calendar.CivilDate(*s.StartsOn)) {
		return false
	}
	if s.EndsOn != nil && d.After(calendar.CivilDate(*s.EndsOn)) {
		return false
	}

	switch s.Kind {
	case domain.TaskDaily:
		return true
	case domain.TaskWeekly:
		return slices.Contains(s.Weekdays, d.Weekday())
	case domain.TaskMonthly:
		if s.DayOfMonth < 1 {
			return false
		}
		day := min(s.DayOfMonth, calendar.DaysInMonth(d))
		return d.Day() == day
	case domain.TaskOnce:
		return s.OnDate != nil && calendar.CivilDate(*s.OnDate).Equal(d)
	default:
		return false
	}
}

// RunsOn reports whether an active task has any schedule rule selecting d.
func RunsOn(task domain.Task, d time.Time) bool {
	if !task.IsActive {
		return false
	}
	for _, s := range task.Schedules {
		if ScheduleMatches(s, d) {
			return true
		}
	}
	return false
}

// RunnableOn filters tasks down to those that run on d, preserving order.
func RunnableOn(tasks []domain.Task, d time.Time) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if RunsOn(t, d) {
			out = append(out, t)
		}
	}
	return out
}
