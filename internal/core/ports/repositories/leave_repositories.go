package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// LeaveFilter narrows a leave listing. Zero values do not filter.
type LeaveFilter struct {
	BoutiqueIDs []string
	EmpIDs      []string
	UserID      string
	Statuses    []domain.LeaveStatus
	// From and To select requests overlapping the inclusive range.
	From *time.Time
	To   *time.Time
	// AfterStartDate and AfterCreatedAt form the keyset cursor of the previous page.
	AfterStartDate *time.Time
	AfterCreatedAt *time.Time
	Limit          int
}

// LeaveReader defines read operations for leave requests
type LeaveReader interface {
	// FindLeaveByID retrieves a leave request.
	FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error)

	// ListLeaves lists leave requests ordered by (startDate, createdAt).
	ListLeaves(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error)

	// HasOverlappingLeave reports whether the user holds a PENDING, ESCALATED or APPROVED request
	// sharing a date with [start, end].
	HasOverlappingLeave(ctx context.Context, userID string, start, end time.Time) (bool, error)
}

// LeaveWriter defines write operations for leave requests
type LeaveWriter interface {
	// SaveLeave persists a new leave request.
	SaveLeave(ctx context.Context, leave domain.LeaveRequest) error

	// UpdateLeaveStatus writes the decision fields of leave if its stored status is still expected.
	// A changed status yields an ALREADY_DECIDED conflict.
	UpdateLeaveStatus(ctx context.Context, leave domain.LeaveRequest, expected domain.LeaveStatus) error
}

// LeaveRepositoryFacade combines all leave-related repository interfaces
type LeaveRepositoryFacade interface {
	LeaveReader
	LeaveWriter
}
