package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/SscSPs/boutique_ops/internal/core/scheduling"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

// rosterProvider loads what the roster merge needs for a date and runs it.
type rosterProvider struct {
	BaseService
	employeeRepo portsrepo.EmployeeReader
	teamRepo     portsrepo.TemporalReader
	scheduleRepo portsrepo.ShiftOverrideReader
	leaveRepo    portsrepo.LeaveReader
	pattern      scheduling.TeamPattern
}

func newRosterProvider(repos portsrepo.RepositoryProvider, pattern scheduling.TeamPattern) *rosterProvider {
	return &rosterProvider{
		employeeRepo: repos.EmployeeRepo,
		teamRepo:     repos.EmployeeRepo,
		scheduleRepo: repos.ScheduleRepo,
		leaveRepo:    repos.LeaveRepo,
		pattern:      pattern,
	}
}

// RosterForDate returns the operational AM/PM split of the boutiques on date, guests included.
func (p *rosterProvider) RosterForDate(ctx context.Context, date time.Time, boutiqueIDs []string) (domain.Roster, error) {
	employees, err := p.employeeRepo.ListEmployeesByBoutiques(ctx, boutiqueIDs)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("list employees: %w", err)
	}
	overrides, err := p.scheduleRepo.ListActiveOverrides(ctx, boutiqueIDs, date, date)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("list overrides: %w", err)
	}

	known := make(map[string]bool, len(employees))
	for _, e := range employees {
		known[e.EmpID] = true
	}
	var guests []string
	for _, o := range overrides {
		if !known[o.EmpID] {
			known[o.EmpID] = true
			guests = append(guests, o.EmpID)
		}
	}
	if len(guests) > 0 {
		guestRecords, err := p.employeeRepo.ListEmployeesByIDs(ctx, guests)
		if err != nil {
			return domain.Roster{}, fmt.Errorf("list guest employees: %w", err)
		}
		employees = append(employees, guestRecords...)
	}

	empIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		empIDs = append(empIDs, e.EmpID)
	}
	teams, err := p.teamRepo.ListTeamAssignments(ctx, empIDs)
	if err != nil {
		return domain.Roster{}, fmt.Errorf("list team assignments: %w", err)
	}
	onLeave, err := p.approvedLeave(ctx, empIDs, date, date)
	if err != nil {
		return domain.Roster{}, err
	}

	roster := scheduling.BuildRoster(p.pattern, scheduling.RosterInput{
		Date:        date,
		BoutiqueIDs: boutiqueIDs,
		Employees:   employees,
		Teams:       scheduling.NewTeamIndex(teams),
		Overrides:   overrides,
		OnLeave:     onLeave[calendar.DateKey(date)],
	})
	p.LogDebug(ctx, "Roster built",
		slog.String("date", calendar.DateKey(date)),
		slog.Int("am", len(roster.AM)),
		slog.Int("pm", len(roster.PM)))
	return roster, nil
}

// approvedLeave maps each date in [from, to] to the employees on approved leave that day.
func (p *rosterProvider) approvedLeave(ctx context.Context, empIDs []string, from, to time.Time) (map[string]map[string]bool, error) {
	out := make(map[string]map[string]bool)
	if len(empIDs) == 0 {
		return out, nil
	}
	leaves, err := p.leaveRepo.ListLeaves(ctx, portsrepo.LeaveFilter{
		EmpIDs:   empIDs,
		Statuses: []domain.LeaveStatus{domain.LeaveApproved},
		From:     &from,
		To:       &to,
	})
	if err != nil {
		return nil, fmt.Errorf("list approved leave: %w", err)
	}
	for _, l := range leaves {
		for d := maxDate(l.StartDate, from); !d.After(l.EndDate) && !d.After(to); d = d.AddDate(0, 0, 1) {
			key := calendar.DateKey(d)
			if out[key] == nil {
				out[key] = make(map[string]bool)
			}
			out[key][l.EmpID] = true
		}
	}
	return out, nil
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
