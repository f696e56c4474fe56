package scheduling

import (
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTeamPatternAlternatesWeekly(t *testing.T) {
	p := testPattern(t)

	sunday := mustDate(t, "2026-03-29") // even week from the anchor
	assert.Equal(t, domain.ShiftAM, p.ShiftFor(domain.TeamA, sunday))
	assert.Equal(t, domain.ShiftPM, p.ShiftFor(domain.TeamB, sunday))

	nextSunday := mustDate(t, "2026-04-05")
	assert.Equal(t, domain.ShiftPM, p.ShiftFor(domain.TeamA, nextSunday))
	assert.Equal(t, domain.ShiftAM, p.ShiftFor(domain.TeamB, nextSunday))
}

func TestTeamPatternFriday(t *testing.T) {
	p := testPattern(t)

	regularFriday := mustDate(t, "2026-04-03")
	assert.False(t, p.IsRamadan(regularFriday))
	assert.Equal(t, domain.ShiftPM, p.ShiftFor(domain.TeamA, regularFriday))
	assert.Equal(t, domain.ShiftPM, p.ShiftFor(domain.TeamB, regularFriday))

	ramadanFriday := mustDate(t, "2026-03-06")
	assert.True(t, p.IsRamadan(ramadanFriday))
	assert.Equal(t, domain.ShiftAM, p.ShiftFor(domain.TeamA, ramadanFriday))
}

func TestWeeklyOffDay(t *testing.T) {
	p := testPattern(t)
	emp := employee("E1", "Huda", "B1", domain.TeamA)
	off := mustDate(t, "2026-03-29").Weekday()
	emp.WeeklyOffDay = &off

	assert.Equal(t, domain.ShiftOff, p.DefaultShiftFor(emp, domain.TeamA, mustDate(t, "2026-03-29")))
	assert.Equal(t, domain.ShiftAM, p.DefaultShiftFor(emp, domain.TeamA, mustDate(t, "2026-03-30")))

	dates := []string{"2026-03-28", "2026-03-29", "2026-03-30"}
	parsed := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		parsed = append(parsed, mustDate(t, d))
	}
	working := p.WorkingDays(emp, func(time.Time) domain.Team { return domain.TeamA }, parsed)
	assert.Len(t, working, 2)
}
