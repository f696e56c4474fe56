// Package scheduling holds the deterministic schedule computations: the default team pattern, the
// roster merge, coverage validation and the coverage suggestion.
package scheduling

import (
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

// TeamPattern produces the default shift for a team on a date.
//
// Weeks start on Saturday and alternate from RotationAnchor: in even weeks team A works AM and team B
// works PM, odd weeks swap. Fridays outside Ramadan are PM for everyone. During Ramadan Friday keeps
// the normal alternation, which adds the AM shift.
type TeamPattern struct {
	RotationAnchor time.Time
	Ramadan        calendar.DateRange
}

// IsRamadan reports whether the civil date falls in the configured Ramadan range.
func (p TeamPattern) IsRamadan(date time.Time) bool {
	return p.Ramadan.Contains(date)
}

// IsFridayAMClosed reports whether the fixed Friday rule applies on date.
func (p TeamPattern) IsFridayAMClosed(date time.Time) bool {
	return date.Weekday() == time.Friday && !p.IsRamadan(date)
}

// ShiftFor returns the team's default shift on date.
func (p TeamPattern) ShiftFor(team domain.Team, date time.Time) domain.Shift {
	if p.IsFridayAMClosed(date) {
		return domain.ShiftPM
	}
	even := calendar.WeeksBetween(p.RotationAnchor, date)%2 == 0
	switch team {
	case domain.TeamA:
		if even {
			return domain.ShiftAM
		}
		return domain.ShiftPM
	case domain.TeamB:
		if even {
			return domain.ShiftPM
		}
		return domain.ShiftAM
	default:
		return domain.ShiftOff
	}
}

// DefaultShiftFor applies the employee's weekly day off on top of the team pattern.
func (p TeamPattern) DefaultShiftFor(emp domain.Employee, team domain.Team, date time.Time) domain.Shift {
	if emp.WeeklyOffDay != nil && *emp.WeeklyOffDay == date.Weekday() {
		return domain.ShiftOff
	}
	return p.ShiftFor(team, date)
}

// WorkingDays counts the dates on which the employee works under the default pattern.
func (p TeamPattern) WorkingDays(emp domain.Employee, teamAt func(time.Time) domain.Team, dates []time.Time) []time.Time {
	working := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if p.DefaultShiftFor(emp, teamAt(d), d) != domain.ShiftOff {
			working = append(working, d)
		}
	}
	return working
}
