package scheduling

import (
	"fmt"
	"sort"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

// Suggest proposes at most one AM/PM move that addresses the binding finding of the day.
// Guests are never moved; employees on leave are not on the roster to begin with.
func Suggest(day DayContext, findings []domain.ValidationResult) domain.CoverageSuggestion {
	out := domain.CoverageSuggestion{Date: calendar.DateKey(day.Date)}

	var minAM, minPM int
	if rule, ok := day.headcountRule(); ok {
		minAM, minPM = rule.MinAM, rule.MinPM
	}
	am, pm := len(day.Roster.AM), len(day.Roster.PM)

	has := make(map[domain.ValidationCode]bool, len(findings))
	for _, f := range findings {
		has[f.Code] = true
	}

	switch {
	case has[domain.CodeFridayAMNotAllowed]:
		cand := movable(day.Roster.AM)
		if len(cand) == 0 {
			out.Explanation = fmt.Sprintf("%d guest(s) on Friday AM, no boutique staff available to move to PM", am)
			return out
		}
		out.Move = move(cand[0], domain.ShiftAM, domain.ShiftPM)
		out.Explanation = fmt.Sprintf("Friday AM is closed outside Ramadan: %s", out.Move)

	case has[domain.CodeInsufficientAM] && has[domain.CodeInsufficientPM]:
		out.Explanation = fmt.Sprintf("need %d more AM and %d more PM, 0 available to move", minAM-am, minPM-pm)

	case has[domain.CodeInsufficientAM]:
		cand := movable(day.Roster.PM)
		spare := max(pm-minPM, 0)
		if spare == 0 || len(cand) == 0 {
			out.Explanation = fmt.Sprintf("need %d more AM, 0 available to move", minAM-am)
			return out
		}
		out.Move = move(cand[0], domain.ShiftPM, domain.ShiftAM)
		out.Explanation = fmt.Sprintf("need %d more AM, %d available to move: %s", minAM-am, min(spare, len(cand)), out.Move)

	case has[domain.CodeInsufficientPM]:
		var cand []domain.RosterEntry
		spare := 0
		if !day.FridayAMClosed() {
			cand = movable(day.Roster.AM)
			spare = max(am-minAM, 0)
		}
		if spare == 0 || len(cand) == 0 {
			out.Explanation = fmt.Sprintf("need %d more PM, 0 available to move", minPM-pm)
			return out
		}
		out.Move = move(cand[0], domain.ShiftAM, domain.ShiftPM)
		out.Explanation = fmt.Sprintf("need %d more PM, %d available to move: %s", minPM-pm, min(spare, len(cand)), out.Move)

	case has[domain.CodeAMBelowPM]:
		cand := movable(day.Roster.PM)
		if pm-1 < minPM || len(cand) == 0 {
			out.Explanation = fmt.Sprintf("AM (%d) below PM (%d), no move keeps PM at its minimum of %d", am, pm, minPM)
			return out
		}
		out.Move = move(cand[0], domain.ShiftPM, domain.ShiftAM)
		out.Explanation = fmt.Sprintf("AM (%d) below PM (%d): %s", am, pm, out.Move)

	default:
		out.Explanation = "coverage meets all rules"
	}
	return out
}

// movable lists the boutique's own staff in a slot, pattern placements before explicit overrides,
// then by employee id.
func movable(entries []domain.RosterEntry) []domain.RosterEntry {
	cand := make([]domain.RosterEntry, 0, len(entries))
	for _, e := range entries {
		if !e.IsGuest {
			cand = append(cand, e)
		}
	}
	sort.SliceStable(cand, func(i, j int) bool {
		oi, oj := cand[i].Source == domain.SourceOverride, cand[j].Source == domain.SourceOverride
		if oi != oj {
			return !oi
		}
		return cand[i].EmpID < cand[j].EmpID
	})
	return cand
}

func move(e domain.RosterEntry, from, to domain.Shift) *domain.ShiftMove {
	return &domain.ShiftMove{EmpID: e.EmpID, Name: e.Name, From: from, To: to}
}
