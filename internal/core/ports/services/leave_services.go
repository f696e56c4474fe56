package services

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// LeaveReaderSvc defines leave reads
type LeaveReaderSvc interface {
	// ListLeaves returns one page of leave requests in scope and the token of the next page.
	ListLeaves(ctx context.Context, identity domain.Identity, q dto.ListLeavesQuery) ([]domain.LeaveRequest, string, error)
}

// LeaveWriterSvc defines leave filing and the approval state machine
type LeaveWriterSvc interface {
	CreateLeave(ctx context.Context, identity domain.Identity, req dto.CreateLeaveRequest) (*domain.LeaveRequest, error)

	// DecideLeave applies action to the request. Terminal requests yield ALREADY_DECIDED.
	DecideLeave(ctx context.Context, identity domain.Identity, leaveID string, action domain.LeaveAction, req dto.LeaveDecisionRequest) (*domain.LeaveRequest, error)
}

// LeaveSvcFacade combines all leave-related service interfaces
type LeaveSvcFacade interface {
	LeaveReaderSvc
	LeaveWriterSvc
}
