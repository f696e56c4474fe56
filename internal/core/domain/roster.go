package domain

import "time"

// RosterSource records why an employee landed in a slot.
type RosterSource string

const (
	SourcePattern  RosterSource = "PATTERN"
	SourceOverride RosterSource = "OVERRIDE"
	SourceGuest    RosterSource = "GUEST"
)

// RosterEntry is one employee's placement on a date.
type RosterEntry struct {
	EmpID          string       `json:"empId"`
	Name           string       `json:"name"`
	Position       Position     `json:"position"`
	HomeBoutiqueID string       `json:"homeBoutiqueId"`
	HostBoutiqueID string       `json:"hostBoutiqueId"`
	Shift          Shift        `json:"shift"`
	Source         RosterSource `json:"source"`
	IsGuest        bool         `json:"isGuest"`
}

// Roster is the operational AM/PM split for a set of boutiques on one date.
type Roster struct {
	Date        time.Time     `json:"date"`
	BoutiqueIDs []string      `json:"boutiqueIds"`
	AM          []RosterEntry `json:"amEmployees"`
	PM          []RosterEntry `json:"pmEmployees"`
	Off         []RosterEntry `json:"offEmployees"`
	OnLeave     []RosterEntry `json:"onLeave"`
}

// IsWorking reports whether empID is on the AM or PM list.
func (r Roster) IsWorking(empID string) bool {
	_, ok := r.ShiftOf(empID)
	return ok
}

// ShiftOf returns the working shift of empID on this roster.
func (r Roster) ShiftOf(empID string) (Shift, bool) {
	for _, e := range r.AM {
		if e.EmpID == empID {
			return ShiftAM, true
		}
	}
	for _, e := range r.PM {
		if e.EmpID == empID {
			return ShiftPM, true
		}
	}
	return ShiftOff, false
}
