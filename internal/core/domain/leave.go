package domain

import (
	"errors"
	"fmt"
	"time"
)

// LeaveStatus is the state of a leave request.
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "PENDING"
	LeaveEscalated LeaveStatus = "ESCALATED"
	LeaveApproved  LeaveStatus = "APPROVED"
	LeaveRejected  LeaveStatus = "REJECTED"
	LeaveCancelled LeaveStatus = "CANCELLED"
)

// ParseLeaveStatus validates a stored status.
func ParseLeaveStatus(s string) (LeaveStatus, error) {
	switch LeaveStatus(s) {
	case LeavePending, LeaveEscalated, LeaveApproved, LeaveRejected, LeaveCancelled:
		return LeaveStatus(s), nil
	default:
		return "", fmt.Errorf("unknown leave status %q", s)
	}
}

// IsTerminal reports whether no further decision is possible.
func (s LeaveStatus) IsTerminal() bool {
	switch s {
	case LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	case LeavePending, LeaveEscalated:
		return false
	default:
		return true
	}
}

// BlocksOverlap reports whether a request in this state reserves its dates.
func (s LeaveStatus) BlocksOverlap() bool {
	switch s {
	case LeavePending, LeaveEscalated, LeaveApproved:
		return true
	case LeaveRejected, LeaveCancelled:
		return false
	default:
		return true
	}
}

// LeaveAction is a transition requested on a leave request.
type LeaveAction string

const (
	LeaveActionApprove  LeaveAction = "APPROVE"
	LeaveActionReject   LeaveAction = "REJECT"
	LeaveActionEscalate LeaveAction = "ESCALATE"
	LeaveActionCancel   LeaveAction = "CANCEL"
)

// ErrLeaveAlreadyDecided is returned when a transition targets a terminal request.
var ErrLeaveAlreadyDecided = errors.New("leave request already decided")

// ErrLeaveTransition is returned for a transition that is not defined from the current state.
var ErrLeaveTransition = errors.New("leave transition not allowed")

// Next returns the state reached by applying action to s.
func (s LeaveStatus) Next(action LeaveAction) (LeaveStatus, error) {
	if s.IsTerminal() {
		return s, ErrLeaveAlreadyDecided
	}
	switch action {
	case LeaveActionApprove:
		return LeaveApproved, nil
	case LeaveActionReject:
		return LeaveRejected, nil
	case LeaveActionCancel:
		return LeaveCancelled, nil
	case LeaveActionEscalate:
		if s == LeaveEscalated {
			return s, ErrLeaveTransition
		}
		return LeaveEscalated, nil
	default:
		return s, fmt.Errorf("%w: unknown action %q", ErrLeaveTransition, action)
	}
}

// LeaveType classifies a leave request.
type LeaveType string

const (
	LeaveAnnual    LeaveType = "ANNUAL"
	LeaveSick      LeaveType = "SICK"
	LeaveEmergency LeaveType = "EMERGENCY"
	LeaveUnpaid    LeaveType = "UNPAID"
)

// ParseLeaveType validates a leave type.
func ParseLeaveType(s string) (LeaveType, error) {
	switch LeaveType(s) {
	case LeaveAnnual, LeaveSick, LeaveEmergency, LeaveUnpaid:
		return LeaveType(s), nil
	default:
		return "", fmt.Errorf("unknown leave type %q", s)
	}
}

// LeaveRequest covers the inclusive civil-date range [StartDate, EndDate].
type LeaveRequest struct {
	LeaveID      string      `json:"leaveId"`
	UserID       string      `json:"userId"`
	EmpID        string      `json:"empId"`
	BoutiqueID   string      `json:"boutiqueId"`
	StartDate    time.Time   `json:"startDate"`
	EndDate      time.Time   `json:"endDate"`
	Type         LeaveType   `json:"type"`
	Reason       string      `json:"reason"`
	Status       LeaveStatus `json:"status"`
	EscalatedBy  *string     `json:"escalatedBy,omitempty"`
	EscalatedAt  *time.Time  `json:"escalatedAt,omitempty"`
	DecidedBy    *string     `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time  `json:"decidedAt,omitempty"`
	DecisionNote string      `json:"decisionNote,omitempty"`
	AuditFields
}

// Covers reports whether the civil date falls inside the request.
func (l LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(l.StartDate) && !date.After(l.EndDate)
}

// Overlaps reports whether the request shares any date with [start, end].
func (l LeaveRequest) Overlaps(start, end time.Time) bool {
	return !l.StartDate.After(end) && !l.EndDate.Before(start)
}
