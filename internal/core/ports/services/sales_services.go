package services

import (
	"context"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	"github.com/SscSPs/boutique_ops/internal/dto"
)

// SalesLedgerSvc defines the daily sales ledger
type SalesLedgerSvc interface {
	UpsertSalesSummary(ctx context.Context, identity domain.Identity, req dto.UpsertSalesSummaryRequest) (*domain.SalesSummary, error)
	UpsertSalesLine(ctx context.Context, identity domain.Identity, summaryID string, req dto.UpsertSalesLineRequest) (*domain.SalesLine, error)
	GetReconciliation(ctx context.Context, identity domain.Identity, summaryID string) (*domain.Reconciliation, error)

	// LockSalesSummary locks a summary whose lines reconcile exactly.
	LockSalesSummary(ctx context.Context, identity domain.Identity, summaryID string) (*domain.SalesSummary, error)
}
