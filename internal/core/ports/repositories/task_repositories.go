package repositories

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// TaskReader defines read operations for tasks
type TaskReader interface {
	// ListActiveTasks returns the active tasks of the boutiques with schedules, plan and rotation.
	ListActiveTasks(ctx context.Context, boutiqueIDs []string) ([]domain.Task, error)
}

// TaskRepositoryFacade combines all task-related repository interfaces
type TaskRepositoryFacade interface {
	TaskReader
}
