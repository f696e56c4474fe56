package services

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// TaskSvc defines task assignment and reminders
type TaskSvc interface {
	// ListTaskAssignments assigns every task running on the date. Tasks not running are omitted.
	ListTaskAssignments(ctx context.Context, identity domain.Identity, q dto.TaskAssignmentsQuery) ([]domain.TaskAssignment, error)

	// SendTaskReminders notifies the assignee of each task running the day after req.Date.
	SendTaskReminders(ctx context.Context, identity domain.Identity, req dto.SendTaskRemindersRequest) (*dto.TaskRemindersResponse, error)
}
