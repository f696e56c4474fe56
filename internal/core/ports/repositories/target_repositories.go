package repositories

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// TargetReader defines read operations for monthly targets
type TargetReader interface {
	// FindBoutiqueTarget retrieves the boutique target of a month.
	FindBoutiqueTarget(ctx context.Context, boutiqueID, month string) (*domain.BoutiqueMonthlyTarget, error)

	// ListBoutiqueTargets returns the month's boutique targets for the boutiques that have one.
	ListBoutiqueTargets(ctx context.Context, boutiqueIDs []string, month string) ([]domain.BoutiqueMonthlyTarget, error)

	// ListEmployeeTargets returns the month's employee targets of the boutiques.
	ListEmployeeTargets(ctx context.Context, boutiqueIDs []string, month string) ([]domain.EmployeeMonthlyTarget, error)

	// FindEmployeeTarget retrieves one user's target of a month.
	FindEmployeeTarget(ctx context.Context, userID, month string) (*domain.EmployeeMonthlyTarget, error)
}

// TargetWriter defines write operations for monthly targets
type TargetWriter interface {
	// UpsertBoutiqueTarget creates or replaces the (boutique, month) target.
	UpsertBoutiqueTarget(ctx context.Context, target domain.BoutiqueMonthlyTarget) (*domain.BoutiqueMonthlyTarget, error)

	// ReplaceEmployeeTargets swaps the month's employee targets for rows in one transaction and
	// verifies, inside it, that they sum to the stored boutique target.
	ReplaceEmployeeTargets(ctx context.Context, boutiqueID, month string, rows []domain.EmployeeMonthlyTarget) error

	// DeleteEmployeeTargets clears the month's generated rows and reports how many were removed.
	DeleteEmployeeTargets(ctx context.Context, boutiqueID, month string) (int64, error)
}

// TargetRepositoryFacade combines all target-related repository interfaces
type TargetRepositoryFacade interface {
	TargetReader
	TargetWriter
}
