package scheduling

import (
	"testing"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestFor(day DayContext) domain.CoverageSuggestion {
	return Suggest(day, NewValidator().Validate(day))
}

func TestSuggestMovesPMToAMWhenAMShort(t *testing.T) {
	sunday := mustDate(t, "2026-03-29")
	pm := entries("E5", "E3", "E4")
	pm[1].Source = domain.SourceOverride
	day := DayContext{
		Date:   sunday,
		Roster: domain.Roster{AM: entries("E1"), PM: pm},
		Rule:   &domain.CoverageRule{DayOfWeek: time.Sunday, MinAM: 2, MinPM: 2, Enabled: true},
	}

	s := suggestFor(day)
	require.NotNil(t, s.Move)
	assert.Equal(t, "E4", s.Move.EmpID, "pattern placements move before explicit overrides, then by id")
	assert.Equal(t, domain.ShiftPM, s.Move.From)
	assert.Equal(t, domain.ShiftAM, s.Move.To)
}

func TestSuggestReportsShortfallWhenNoMoveExists(t *testing.T) {
	sunday := mustDate(t, "2026-03-29")
	day := DayContext{
		Date:   sunday,
		Roster: domain.Roster{AM: entries("E1"), PM: entries("E2", "E3")},
		Rule:   &domain.CoverageRule{DayOfWeek: time.Sunday, MinAM: 2, MinPM: 2, Enabled: true},
	}
	s := suggestFor(day)
	assert.Nil(t, s.Move)
	assert.Equal(t, "need 1 more AM, 0 available to move", s.Explanation)

	day.Roster = domain.Roster{AM: entries("E1"), PM: entries("E2")}
	s = suggestFor(day)
	assert.Nil(t, s.Move)
	assert.Equal(t, "need 1 more AM and 1 more PM, 0 available to move", s.Explanation)
}

func TestSuggestNeverMovesGuests(t *testing.T) {
	sunday := mustDate(t, "2026-03-29")
	pm := entries("G1", "G2", "E2")
	pm[0].IsGuest = true
	pm[1].IsGuest = true
	day := DayContext{
		Date:   sunday,
		Roster: domain.Roster{AM: entries("E1"), PM: pm},
		Rule:   &domain.CoverageRule{DayOfWeek: time.Sunday, MinAM: 2, MinPM: 1, Enabled: true},
	}
	s := suggestFor(day)
	require.NotNil(t, s.Move)
	assert.Equal(t, "E2", s.Move.EmpID)
}

func TestSuggestFridayAM(t *testing.T) {
	friday := mustDate(t, "2026-04-03")
	day := DayContext{Date: friday, Roster: domain.Roster{AM: entries("E2", "E1"), PM: entries("E3")}}
	s := suggestFor(day)
	require.NotNil(t, s.Move)
	assert.Equal(t, "E1", s.Move.EmpID)
	assert.Equal(t, domain.ShiftPM, s.Move.To)
}

func TestSuggestWarningOnly(t *testing.T) {
	sunday := mustDate(t, "2026-03-29")
	day := DayContext{
		Date:   sunday,
		Roster: domain.Roster{AM: entries("E1"), PM: entries("E2", "E3")},
		Rule:   &domain.CoverageRule{DayOfWeek: time.Sunday, MinAM: 1, MinPM: 1, Enabled: true},
	}
	s := suggestFor(day)
	require.NotNil(t, s.Move)
	assert.Equal(t, domain.ShiftAM, s.Move.To)

	day.Roster = domain.Roster{AM: entries("E1", "E2"), PM: entries("E3")}
	s = suggestFor(day)
	assert.Nil(t, s.Move)
	assert.Equal(t, "coverage meets all rules", s.Explanation)
}
