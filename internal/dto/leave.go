package dto

import "github.com/SscSPs/boutique_ops/internal/core/domain"

// CreateLeaveRequest files a leave request. EmpID is only honoured for managers filing on behalf
// of an employee; everyone else files for themselves.
type CreateLeaveRequest struct {
	EmpID     string `json:"empId"`
	StartDate string `json:"startDate" binding:"required,datekey"`
	EndDate   string `json:"endDate" binding:"required,datekey"`
	Type      string `json:"type" binding:"required,oneof=ANNUAL SICK EMERGENCY UNPAID"`
	Reason    string `json:"reason" binding:"max=500"`
}

// LeaveDecisionRequest carries the optional note of an approve/reject/escalate/cancel action.
type LeaveDecisionRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// ListLeavesQuery filters and pages leave requests.
type ListLeavesQuery struct {
	ScopeQuery
	Status    string `form:"status" binding:"omitempty,oneof=PENDING ESCALATED APPROVED REJECTED CANCELLED"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// ListLeavesResponse is one page of leave requests.
type ListLeavesResponse struct {
	Leaves    []domain.LeaveRequest `json:"leaves"`
	NextToken string                `json:"nextToken,omitempty"`
}
