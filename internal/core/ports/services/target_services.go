package services

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// TargetWriterSvc defines monthly target management
type TargetWriterSvc interface {
	// UpsertBoutiqueTarget sets the boutique target of a month. Idempotent on (boutique, month).
	UpsertBoutiqueTarget(ctx context.Context, identity domain.Identity, req dto.UpsertBoutiqueTargetRequest) (*domain.BoutiqueMonthlyTarget, error)

	// GenerateTargets allocates the boutique target across eligible employees.
	GenerateTargets(ctx context.Context, identity domain.Identity, req dto.MonthTargetRequest) ([]domain.EmployeeMonthlyTarget, error)

	// ResetTargets clears a month's generated employee targets.
	ResetTargets(ctx context.Context, identity domain.Identity, req dto.MonthTargetRequest) (int64, error)
}

// TargetReaderSvc defines target reads and sales metrics
type TargetReaderSvc interface {
	// ListEmployeeTargets lists the month's employee targets in scope.
	ListEmployeeTargets(ctx context.Context, identity domain.Identity, q dto.TargetsQuery) ([]domain.EmployeeMonthlyTarget, error)

	// GetTargetMetrics decomposes a boutique or employee target into day, week and month figures.
	GetTargetMetrics(ctx context.Context, identity domain.Identity, q dto.TargetMetricsQuery) (*domain.TargetMetrics, error)

	// GetDashboardSalesMetrics builds the sales dashboard for every boutique in scope.
	GetDashboardSalesMetrics(ctx context.Context, identity domain.Identity, q dto.DashboardQuery) (*domain.DashboardSalesMetrics, error)
}

// TargetSvcFacade combines all target-related service interfaces
type TargetSvcFacade interface {
	TargetWriterSvc
	TargetReaderSvc
}
