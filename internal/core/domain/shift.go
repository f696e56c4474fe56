package domain

import (
	"fmt"
	"time"
)

// Shift is the half-day slot an employee works on a given date.
type Shift string

const (
	ShiftAM  Shift = "AM"
	ShiftPM  Shift = "PM"
	ShiftOff Shift = "OFF"
)

// OverrideShift is the stored value of a per-date shift exception.
type OverrideShift string

const (
	OverrideNone          OverrideShift = "NONE"
	OverrideMorning       OverrideShift = "MORNING"
	OverrideEvening       OverrideShift = "EVENING"
	OverrideCoverRashidAM OverrideShift = "COVER_RASHID_AM"
	OverrideCoverRashidPM OverrideShift = "COVER_RASHID_PM"
)

// ParseOverrideShift converts a stored value into an OverrideShift. Unknown values are rejected
// so that a future enum member never silently reads as "not working".
func ParseOverrideShift(s string) (OverrideShift, error) {
	switch OverrideShift(s) {
	case OverrideNone, OverrideMorning, OverrideEvening, OverrideCoverRashidAM, OverrideCoverRashidPM:
		return OverrideShift(s), nil
	default:
		return "", fmt.Errorf("unknown override shift %q", s)
	}
}

// Shift maps the override onto the roster slot it produces. NONE means the employee is off.
func (o OverrideShift) Shift() Shift {
	switch o {
	case OverrideMorning, OverrideCoverRashidAM:
		return ShiftAM
	case OverrideEvening, OverrideCoverRashidPM:
		return ShiftPM
	case OverrideNone:
		return ShiftOff
	default:
		return ShiftOff
	}
}

// IsGuestCoverage reports whether the override places the employee at a host boutique.
func (o OverrideShift) IsGuestCoverage() bool {
	switch o {
	case OverrideCoverRashidAM, OverrideCoverRashidPM:
		return true
	case OverrideNone, OverrideMorning, OverrideEvening:
		return false
	default:
		return false
	}
}

// GuestOverrideFor returns the guest-coverage override for a working shift.
func GuestOverrideFor(s Shift) (OverrideShift, error) {
	switch s {
	case ShiftAM:
		return OverrideCoverRashidAM, nil
	case ShiftPM:
		return OverrideCoverRashidPM, nil
	case ShiftOff:
		return "", fmt.Errorf("guest coverage needs a working shift")
	default:
		return "", fmt.Errorf("unknown shift %q", s)
	}
}

// ShiftOverride is a per-date, per-employee exception layered over the team pattern.
// BoutiqueID is the host; SourceBoutiqueID is set for guest coverage.
type ShiftOverride struct {
	OverrideID       string        `json:"overrideId"`
	BoutiqueID       string        `json:"boutiqueId"`
	EmpID            string        `json:"empId"`
	Date             time.Time     `json:"date"`
	OverrideShift    OverrideShift `json:"overrideShift"`
	SourceBoutiqueID *string       `json:"sourceBoutiqueId,omitempty"`
	IsActive         bool          `json:"isActive"`
	AuditFields
}

// ScheduleDayLock freezes one date of a boutique's schedule.
type ScheduleDayLock struct {
	BoutiqueID string    `json:"boutiqueId"`
	Date       time.Time `json:"date"`
	LockedBy   string    `json:"lockedBy"`
	LockedAt   time.Time `json:"lockedAt"`
}

// ScheduleWeekLock freezes a Saturday-start week of a boutique's schedule.
type ScheduleWeekLock struct {
	BoutiqueID string    `json:"boutiqueId"`
	WeekStart  time.Time `json:"weekStart"`
	LockedBy   string    `json:"lockedBy"`
	LockedAt   time.Time `json:"lockedAt"`
}
