package scheduling

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/temporal"
)

// TeamIndex resolves an employee's team on a date from effective-dated assignments.
type TeamIndex = temporal.KeyedIndex[string, domain.TeamAssignment]

// NewTeamIndex indexes team assignment rows by employee and effective date.
func NewTeamIndex(rows []domain.TeamAssignment) *TeamIndex {
	return temporal.NewKeyedIndex(rows,
		func(r domain.TeamAssignment) string { return r.EmpID },
		func(r domain.TeamAssignment) time.Time { return r.EffectiveFrom },
	)
}

// TeamOn returns the team in force for emp on date, falling back to the employee record.
func TeamOn(teams *TeamIndex, emp domain.Employee, date time.Time) domain.Team {
	if row, ok := teams.At(emp.EmpID, date); ok {
		return row.Team
	}
	return emp.Team
}

// RosterInput is everything the roster merge needs for one date.
//
// Employees must contain every employee homed in BoutiqueIDs plus the home records of guests named by
// Overrides. Overrides are the active rows for Date whose host or employee touches the scope.
type RosterInput struct {
	Date        time.Time
	BoutiqueIDs []string
	Employees   []domain.Employee
	Teams       *TeamIndex
	Overrides   []domain.ShiftOverride
	OnLeave     map[string]bool
}

// BuildRoster merges the team pattern with the date's overrides.
func BuildRoster(p TeamPattern, in RosterInput) domain.Roster {
	inScope := make(map[string]bool, len(in.BoutiqueIDs))
	for _, id := range in.BoutiqueIDs {
		inScope[id] = true
	}

	overridesByEmp := make(map[string][]domain.ShiftOverride)
	for _, o := range in.Overrides {
		if !o.IsActive || !o.Date.Equal(in.Date) {
			continue
		}
		overridesByEmp[o.EmpID] = append(overridesByEmp[o.EmpID], o)
	}
	for emp := range overridesByEmp {
		rows := overridesByEmp[emp]
		sort.Slice(rows, func(i, j int) bool { return rows[i].OverrideID < rows[j].OverrideID })
	}

	employees := slices.Clone(in.Employees)
	sort.Slice(employees, func(i, j int) bool { return employees[i].EmpID < employees[j].EmpID })

	ids := slices.Clone(in.BoutiqueIDs)
	sort.Strings(ids)
	roster := domain.Roster{Date: in.Date, BoutiqueIDs: ids}

	for _, emp := range employees {
		if !emp.IsSchedulable() {
			continue
		}
		homeInScope := inScope[emp.BoutiqueID]

		var local *domain.ShiftOverride
		coveringElsewhere := false
		for i, o := range overridesByEmp[emp.EmpID] {
			if inScope[o.BoutiqueID] {
				if local == nil {
					local = &overridesByEmp[emp.EmpID][i]
				}
				continue
			}
			if o.OverrideShift.IsGuestCoverage() || o.BoutiqueID != emp.BoutiqueID {
				coveringElsewhere = true
			}
		}
		if local == nil && (!homeInScope || coveringElsewhere) {
			continue
		}

		entry := domain.RosterEntry{
			EmpID:          emp.EmpID,
			Name:           emp.Name,
			Position:       emp.Position,
			HomeBoutiqueID: emp.BoutiqueID,
			HostBoutiqueID: emp.BoutiqueID,
		}

		if in.OnLeave[emp.EmpID] {
			if homeInScope {
				entry.Shift = domain.ShiftOff
				roster.OnLeave = append(roster.OnLeave, entry)
			}
			continue
		}

		if local != nil {
			entry.HostBoutiqueID = local.BoutiqueID
			entry.IsGuest = local.BoutiqueID != emp.BoutiqueID
			entry.Shift = local.OverrideShift.Shift()
			entry.Source = domain.SourceOverride
			if entry.IsGuest {
				entry.Source = domain.SourceGuest
				if entry.Shift == domain.ShiftOff {
					continue
				}
			}
		} else {
			entry.Shift = p.DefaultShiftFor(emp, TeamOn(in.Teams, emp, in.Date), in.Date)
			entry.Source = domain.SourcePattern
		}

		switch entry.Shift {
		case domain.ShiftAM:
			roster.AM = append(roster.AM, entry)
		case domain.ShiftPM:
			roster.PM = append(roster.PM, entry)
		case domain.ShiftOff:
			roster.Off = append(roster.Off, entry)
		}
	}

	for _, list := range [][]domain.RosterEntry{roster.AM, roster.PM, roster.Off, roster.OnLeave} {
		sortEntries(list)
	}
	return roster
}

func sortEntries(entries []domain.RosterEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name), strings.ToLower(entries[j].Name)
		if a != b {
			return a < b
		}
		return entries[i].EmpID < entries[j].EmpID
	})
}
