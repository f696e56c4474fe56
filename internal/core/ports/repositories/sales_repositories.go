package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
)

// SummaryLockCheck decides inside the lock transaction whether the summary may be locked.
type SummaryLockCheck func(summary domain.SalesSummary, lines []domain.SalesLine) error

// SalesReader defines read operations for the sales ledger
type SalesReader interface {
	// FindSummaryByID retrieves a daily summary.
	FindSummaryByID(ctx context.Context, summaryID string) (*domain.SalesSummary, error)

	// ListLines returns a summary's lines ordered by employee id.
	ListLines(ctx context.Context, summaryID string) ([]domain.SalesLine, error)

	// SumSummariesByDay returns summary totals keyed by boutique for dates in [from, to].
	SumSummariesByDay(ctx context.Context, boutiqueIDs []string, from, to time.Time) ([]domain.DailyTotal, error)

	// SumLinesByDay returns line totals keyed by employee for a boutique's dates in [from, to].
	SumLinesByDay(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.DailyTotal, error)
}

// SalesWriter defines write operations for the sales ledger
type SalesWriter interface {
	// UpsertSummary creates or updates the (boutique, date) summary. A LOCKED summary is refused
	// with LEDGER_LOCKED.
	UpsertSummary(ctx context.Context, summary domain.SalesSummary) (*domain.SalesSummary, error)

	// UpsertLine creates or updates the (summary, employee) line. A LOCKED summary is refused
	// with LEDGER_LOCKED.
	UpsertLine(ctx context.Context, line domain.SalesLine) (*domain.SalesLine, error)

	// LockSummary row-locks the summary, runs check on it and its lines and marks it LOCKED when
	// check passes, all in one transaction.
	LockSummary(ctx context.Context, summaryID, lockedBy string, at time.Time, check SummaryLockCheck) (*domain.SalesSummary, error)
}

// SalesRepositoryFacade combines all sales-related repository interfaces
type SalesRepositoryFacade interface {
	SalesReader
	SalesWriter
}
