package tasks

import (
	"fmt"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/utils/calendar"
)

type candidate struct {
	slot   string
	reason domain.AssignmentReason
	empID  string
}

// ResponsibleOn resolves the primary, backup1 and backup2 employee ids of a plan for week of d.
// Rotation members, when present, override the explicit assignees: the primary advances one member
// per week from anchor and the backups are the next two members in order.
func ResponsibleOn(plan domain.TaskPlan, d, anchor time.Time) (primary, backup1, backup2 string) {
	members := plan.RotationMembers
	if len(members) == 0 {
		return plan.PrimaryEmpID, deref(plan.Backup1EmpID), deref(plan.Backup2EmpID)
	}

	n := len(members)
	idx := calendar.WeeksBetween(anchor, d) % n
	if idx < 0 {
		idx += n
	}
	pick := func(offset int) string {
		if offset >= n {
			return ""
		}
		return members[(idx+offset)%n]
	}
	return pick(0), pick(1), pick(2)
}

// AssignOnDate picks the responsible employee for task on d from that date's roster. The first of
// primary, backup1, backup2 working at the task's boutique wins, guests included; otherwise the task
// is reported unassigned. The UNASSIGNED placeholder never counts as present.
func AssignOnDate(task domain.Task, d time.Time, roster domain.Roster, anchor time.Time) domain.TaskAssignment {
	primary, backup1, backup2 := ResponsibleOn(task.Plan, d, anchor)
	candidates := []candidate{
		{slot: "primary", reason: domain.ReasonPrimary, empID: primary},
		{slot: "backup1", reason: domain.ReasonBackup1, empID: backup1},
		{slot: "backup2", reason: domain.ReasonBackup2, empID: backup2},
	}

	out := domain.TaskAssignment{
		TaskID:      task.TaskID,
		TaskName:    task.Name,
		BoutiqueID:  task.BoutiqueID,
		Date:        calendar.DateKey(d),
		Reason:      domain.ReasonUnassigned,
		ReasonNotes: []string{},
	}

	for _, c := range candidates {
		if c.empID == "" {
			out.ReasonNotes = append(out.ReasonNotes, c.slot+" not set")
			continue
		}
		if c.empID == domain.UnassignedEmpID {
			out.ReasonNotes = append(out.ReasonNotes, c.slot+" is unassigned")
			continue
		}
		if entry, ok := workingEntry(roster, task.BoutiqueID, c.empID); ok {
			out.AssignedEmpID = entry.EmpID
			out.AssignedName = entry.Name
			out.Reason = c.reason
			return out
		}
		out.ReasonNotes = append(out.ReasonNotes, fmt.Sprintf("%s %s %s", c.slot, c.empID, absence(roster, task.BoutiqueID, c.empID)))
	}

	out.AssignedEmpID = domain.UnassignedEmpID
	out.ReasonNotes = append(out.ReasonNotes, "no responsible employee is working on "+out.Date)
	return out
}

func workingEntry(roster domain.Roster, boutiqueID, empID string) (domain.RosterEntry, bool) {
	for _, list := range [][]domain.RosterEntry{roster.AM, roster.PM} {
		for _, e := range list {
			if e.EmpID == empID && e.HostBoutiqueID == boutiqueID {
				return e, true
			}
		}
	}
	return domain.RosterEntry{}, false
}

func absence(roster domain.Roster, boutiqueID, empID string) string {
	for _, list := range [][]domain.RosterEntry{roster.AM, roster.PM} {
		for _, e := range list {
			if e.EmpID == empID && e.HostBoutiqueID != boutiqueID {
				return "is working at " + e.HostBoutiqueID
			}
		}
	}
	for _, e := range roster.OnLeave {
		if e.EmpID == empID {
			return "is on leave"
		}
	}
	for _, e := range roster.Off {
		if e.EmpID == empID {
			return "is off"
		}
	}
	return "is not on the roster"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
