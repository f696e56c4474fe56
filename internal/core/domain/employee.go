package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// UnassignedEmpID is the system-only placeholder employee that stands in for a removed assignee.
const UnassignedEmpID = "UNASSIGNED"

// Team is the rotation team an employee belongs to.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

// ParseTeam validates a stored team value.
func ParseTeam(s string) (Team, error) {
	switch Team(s) {
	case TeamA, TeamB:
		return Team(s), nil
	default:
		return "", fmt.Errorf("unknown team %q", s)
	}
}

// Position is an employee's job title. It drives the sales-target role weight.
type Position string

const (
	PositionManager             Position = "Manager"
	PositionAssistantManager    Position = "Assistant Manager"
	PositionHighJewelleryExpert Position = "High Jewellery Expert"
	PositionSeniorSalesAdvisor  Position = "Senior Sales Advisor"
	PositionSalesAdvisor        Position = "Sales Advisor"
)

// Employee is a person who can be scheduled. BoutiqueID is the single source of truth for tenancy.
type Employee struct {
	EmpID              string        `json:"empId"`
	Name               string        `json:"name"`
	BoutiqueID         string        `json:"boutiqueId"`
	UserID             *string       `json:"userId,omitempty"`
	Team               Team          `json:"team"`
	Position           Position      `json:"position"`
	WeeklyOffDay       *time.Weekday `json:"weeklyOffDay,omitempty"`
	IsActive           bool          `json:"isActive"`
	IsSystemOnly       bool          `json:"isSystemOnly"`
	ExcludeFromTargets bool          `json:"excludeFromTargets"`
	AuditFields
}

// IsSchedulable reports whether the employee belongs on a real roster.
func (e Employee) IsSchedulable() bool {
	return e.IsActive && !e.IsSystemOnly && e.EmpID != UnassignedEmpID
}

// IsTargetEligible reports whether the employee takes part in monthly target allocation.
func (e Employee) IsTargetEligible() bool {
	return e.IsSchedulable() && !e.ExcludeFromTargets && e.UserID != nil && *e.UserID != ""
}

// TeamAssignment is an effective-dated team membership row.
type TeamAssignment struct {
	EmpID         string    `json:"empId"`
	Team          Team      `json:"team"`
	EffectiveFrom time.Time `json:"effectiveFrom"`
}

// RoleWeightVersion is an effective-dated sales-target weight for a position.
type RoleWeightVersion struct {
	Position      Position        `json:"position"`
	Weight        decimal.Decimal `json:"weight"`
	EffectiveFrom time.Time       `json:"effectiveFrom"`
}

// DeactivationReport lists what the deactivation cascade touched.
type DeactivationReport struct {
	EmpID                      string    `json:"empId"`
	TaskPlansReassigned        int64     `json:"taskPlansReassigned"`
	ShiftOverridesDeleted      int64     `json:"shiftOverridesDeleted"`
	ZoneAssignmentsClosed      int64     `json:"zoneAssignmentsClosed"`
	RotationMembershipsRemoved int64     `json:"rotationMembershipsRemoved"`
	QueueEntriesRemoved        int64     `json:"queueEntriesRemoved"`
	DeactivatedAt              time.Time `json:"deactivatedAt"`
	DeactivatedBy              string    `json:"deactivatedBy"`
}
