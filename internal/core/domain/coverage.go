package domain

import (
	"fmt"
	"time"
)

// CoverageRule is the minimum headcount policy for one day of the week.
type CoverageRule struct {
	DayOfWeek time.Weekday `json:"dayOfWeek"`
	MinAM     int          `json:"minAm"`
	MinPM     int          `json:"minPm"`
	Enabled   bool         `json:"enabled"`
	UpdatedBy string       `json:"updatedBy"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Severity grades a coverage finding.
type Severity string

const (
	SeverityViolation Severity = "VIOLATION"
	SeverityWarning   Severity = "WARNING"
)

// ValidationCode identifies a coverage finding.
type ValidationCode string

const (
	CodeInsufficientAM     ValidationCode = "INSUFFICIENT_AM_COVERAGE"
	CodeInsufficientPM     ValidationCode = "INSUFFICIENT_PM_COVERAGE"
	CodeFridayAMNotAllowed ValidationCode = "FRIDAY_AM_NOT_ALLOWED"
	CodeAMBelowPM          ValidationCode = "AM_BELOW_PM"
)

// ValidationResult is one advisory coverage finding for a date.
type ValidationResult struct {
	Code     ValidationCode `json:"code"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Date     string         `json:"date"`
	EmpIDs   []string       `json:"empIds,omitempty"`
}

// IsViolation reports whether the finding is a hard violation rather than a warning.
func (v ValidationResult) IsViolation() bool {
	switch v.Severity {
	case SeverityViolation:
		return true
	case SeverityWarning:
		return false
	default:
		return true
	}
}

// ShiftMove proposes moving one employee between shifts.
type ShiftMove struct {
	EmpID string `json:"empId"`
	Name  string `json:"name"`
	From  Shift  `json:"from"`
	To    Shift  `json:"to"`
}

func (m ShiftMove) String() string {
	return fmt.Sprintf("move %s (%s) from %s to %s", m.Name, m.EmpID, m.From, m.To)
}

// CoverageSuggestion is the single advisory remediation for a date. Move is nil when no
// valid move exists.
type CoverageSuggestion struct {
	Date        string     `json:"date"`
	Move        *ShiftMove `json:"suggestion"`
	Explanation string     `json:"explanation"`
}

// DaySchedule is the read model for one date: roster, findings, suggestion and lock state.
type DaySchedule struct {
	Date        string             `json:"date"`
	Roster      Roster             `json:"roster"`
	Validations []ValidationResult `json:"validations"`
	Suggestion  CoverageSuggestion `json:"suggestion"`
	IsRamadan   bool               `json:"isRamadan"`
	DayLock     *ScheduleDayLock   `json:"dayLock,omitempty"`
	WeekLock    *ScheduleWeekLock  `json:"weekLock,omitempty"`
}

// WeekSchedule groups seven consecutive DaySchedules starting on Saturday.
type WeekSchedule struct {
	WeekStart string        `json:"weekStart"`
	Days      []DaySchedule `json:"days"`
}
