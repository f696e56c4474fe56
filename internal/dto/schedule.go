package dto

// DayScheduleQuery selects one date of the schedule.
type DayScheduleQuery struct {
	ScopeQuery
	Date string `form:"date" binding:"required,datekey"`
}

// WeekScheduleQuery selects a Saturday-start week. Any date inside the week is accepted.
type WeekScheduleQuery struct {
	ScopeQuery
	WeekStart string `form:"weekStart" binding:"required,datekey"`
}

// SetShiftOverrideRequest replaces an employee's default shift on one date at their home boutique.
type SetShiftOverrideRequest struct {
	BoutiqueID    string `json:"boutiqueId"`
	EmpID         string `json:"empId" binding:"required"`
	Date          string `json:"date" binding:"required,datekey"`
	OverrideShift string `json:"overrideShift" binding:"required,oneof=NONE MORNING EVENING"`
}

// ClearShiftOverrideRequest removes an override, restoring the team pattern for the date.
type ClearShiftOverrideRequest struct {
	BoutiqueID string `json:"boutiqueId"`
	EmpID      string `json:"empId" binding:"required"`
	Date       string `json:"date" binding:"required,datekey"`
}

// AddGuestCoverageRequest places an employee from another boutique on the host roster.
type AddGuestCoverageRequest struct {
	HostBoutiqueID string `json:"hostBoutiqueId" binding:"required"`
	EmpID          string `json:"empId" binding:"required"`
	Date           string `json:"date" binding:"required,datekey"`
	Shift          string `json:"shift" binding:"required,oneof=AM PM"`
}

// DayLockRequest locks or unlocks one date.
type DayLockRequest struct {
	BoutiqueID string `json:"boutiqueId"`
	Date       string `json:"date" binding:"required,datekey"`
}

// WeekLockRequest locks or unlocks the week containing WeekStart.
type WeekLockRequest struct {
	BoutiqueID string `json:"boutiqueId"`
	WeekStart  string `json:"weekStart" binding:"required,datekey"`
}

// UpsertCoverageRuleRequest sets the headcount policy of one weekday.
type UpsertCoverageRuleRequest struct {
	MinAM   int   `json:"minAm" binding:"min=0,max=50"`
	MinPM   int   `json:"minPm" binding:"min=0,max=50"`
	Enabled *bool `json:"enabled" binding:"required"`
}
