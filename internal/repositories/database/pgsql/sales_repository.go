package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSalesRepository struct {
	BaseRepository
}

func newPgxSalesRepository(pool *pgxpool.Pool) portsrepo.SalesRepositoryFacade {
	return &PgxSalesRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SalesRepositoryFacade = (*PgxSalesRepository)(nil)

const summaryColumns = `
	summary_id, boutique_id, date, total_sar, status, locked_by, locked_at,
	created_at, created_by, last_updated_at, last_updated_by
`

const lineColumns = `summary_id, emp_id, amount_sar, created_at, created_by, last_updated_at, last_updated_by`

func scanSummary(row pgx.Row) (domain.SalesSummary, error) {
	var s domain.SalesSummary
	var status string
	if err := row.Scan(
		&s.SummaryID, &s.BoutiqueID, &s.Date, &s.TotalSAR, &status, &s.LockedBy, &s.LockedAt,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	); err != nil {
		return s, err
	}
	var err error
	s.Status, err = domain.ParseSalesSummaryStatus(status)
	return s, err
}

func scanLine(row pgx.Row) (domain.SalesLine, error) {
	var l domain.SalesLine
	err := row.Scan(&l.SummaryID, &l.EmpID, &l.AmountSAR, &l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy)
	return l, err
}

func ledgerLockedError(summaryID string) error {
	return apperrors.NewConflictError(apperrors.CodeLedgerLocked, "sales summary "+summaryID+" is locked")
}

func (r *PgxSalesRepository) findSummary(ctx context.Context, q querier, summaryID string, forUpdate bool) (*domain.SalesSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM sales_summaries WHERE summary_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanSummary(q.QueryRow(ctx, query, summaryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find sales summary "+summaryID, err)
	}
	return &s, nil
}

func (r *PgxSalesRepository) FindSummaryByID(ctx context.Context, summaryID string) (*domain.SalesSummary, error) {
	return r.findSummary(ctx, r.db(ctx), summaryID, false)
}

func (r *PgxSalesRepository) listLines(ctx context.Context, q querier, summaryID string) ([]domain.SalesLine, error) {
	rows, err := q.Query(ctx, `SELECT `+lineColumns+` FROM sales_lines WHERE summary_id = $1 ORDER BY emp_id;`, summaryID)
	if err != nil {
		return nil, internalError("failed to query sales lines", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.SalesLine, error) {
		return scanLine(row)
	})
	if err != nil {
		return nil, internalError("failed to collect sales lines", err)
	}
	return lines, nil
}

func (r *PgxSalesRepository) ListLines(ctx context.Context, summaryID string) ([]domain.SalesLine, error) {
	return r.listLines(ctx, r.db(ctx), summaryID)
}

func (r *PgxSalesRepository) collectTotals(ctx context.Context, query string, args ...any) ([]domain.DailyTotal, error) {
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, internalError("failed to query sales totals", err)
	}
	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DailyTotal, error) {
		var t domain.DailyTotal
		err := row.Scan(&t.Key, &t.Date, &t.AmountSAR)
		return t, err
	})
	if err != nil {
		return nil, internalError("failed to collect sales totals", err)
	}
	return totals, nil
}

func (r *PgxSalesRepository) SumSummariesByDay(ctx context.Context, boutiqueIDs []string, from, to time.Time) ([]domain.DailyTotal, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.DailyTotal{}, nil
	}
	return r.collectTotals(ctx, `
		SELECT boutique_id, date, SUM(total_sar)::BIGINT
		FROM sales_summaries
		WHERE boutique_id = ANY($1) AND date BETWEEN $2 AND $3
		GROUP BY boutique_id, date
		ORDER BY boutique_id, date;
	`, boutiqueIDs, from, to)
}

func (r *PgxSalesRepository) SumLinesByDay(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.DailyTotal, error) {
	return r.collectTotals(ctx, `
		SELECT l.emp_id, s.date, SUM(l.amount_sar)::BIGINT
		FROM sales_lines l
		JOIN sales_summaries s ON s.summary_id = l.summary_id
		WHERE s.boutique_id = $1 AND s.date BETWEEN $2 AND $3
		GROUP BY l.emp_id, s.date
		ORDER BY l.emp_id, s.date;
	`, boutiqueID, from, to)
}

// UpsertSummary only updates OPEN rows; an empty RETURNING means the existing row is LOCKED.
func (r *PgxSalesRepository) UpsertSummary(ctx context.Context, summary domain.SalesSummary) (*domain.SalesSummary, error) {
	query := `
		INSERT INTO sales_summaries AS s (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL, $6, $7, $8, $9)
		ON CONFLICT (boutique_id, date) DO UPDATE SET
			total_sar = EXCLUDED.total_sar,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE s.status = 'OPEN'
		RETURNING ` + summaryColumns + `;
	`
	saved, err := scanSummary(r.db(ctx).QueryRow(ctx, query,
		summary.SummaryID,
		summary.BoutiqueID,
		summary.Date,
		summary.TotalSAR,
		string(domain.SalesSummaryOpen),
		summary.CreatedAt,
		summary.CreatedBy,
		summary.LastUpdatedAt,
		summary.LastUpdatedBy,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflictError(apperrors.CodeLedgerLocked, "sales summary for "+summary.BoutiqueID+" on that date is locked")
		}
		return nil, internalError("failed to upsert sales summary for "+summary.BoutiqueID, err)
	}
	return &saved, nil
}

// UpsertLine holds a share lock on the summary so a concurrent LockSummary waits for the write.
func (r *PgxSalesRepository) UpsertLine(ctx context.Context, line domain.SalesLine) (*domain.SalesLine, error) {
	var saved domain.SalesLine
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var status string
		err := tx.QueryRow(ctx, `SELECT status FROM sales_summaries WHERE summary_id = $1 FOR SHARE;`, line.SummaryID).Scan(&status)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return internalError("failed to read sales summary "+line.SummaryID, err)
		}
		if domain.SalesSummaryStatus(status) != domain.SalesSummaryOpen {
			return ledgerLockedError(line.SummaryID)
		}

		query := `
			INSERT INTO sales_lines (` + lineColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (summary_id, emp_id) DO UPDATE SET
				amount_sar = EXCLUDED.amount_sar,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by
			RETURNING ` + lineColumns + `;
		`
		saved, err = scanLine(tx.QueryRow(ctx, query,
			line.SummaryID,
			line.EmpID,
			line.AmountSAR,
			line.CreatedAt,
			line.CreatedBy,
			line.LastUpdatedAt,
			line.LastUpdatedBy,
		))
		if err != nil {
			if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
				return apperrors.NewNotFoundError("employee", line.EmpID)
			}
			return internalError("failed to upsert sales line for "+line.EmpID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *PgxSalesRepository) LockSummary(ctx context.Context, summaryID, lockedBy string, at time.Time, check portsrepo.SummaryLockCheck) (*domain.SalesSummary, error) {
	var locked *domain.SalesSummary
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		summary, err := r.findSummary(ctx, tx, summaryID, true)
		if err != nil {
			return err
		}
		if summary.IsLocked() {
			return ledgerLockedError(summaryID)
		}
		lines, err := r.listLines(ctx, tx, summaryID)
		if err != nil {
			return err
		}
		if err := check(*summary, lines); err != nil {
			return err
		}

		query := `
			UPDATE sales_summaries SET
				status = $2, locked_by = $3, locked_at = $4, last_updated_at = $4, last_updated_by = $3
			WHERE summary_id = $1
			RETURNING ` + summaryColumns + `;
		`
		s, err := scanSummary(tx.QueryRow(ctx, query, summaryID, string(domain.SalesSummaryLocked), lockedBy, at))
		if err != nil {
			return internalError("failed to lock sales summary "+summaryID, err)
		}
		locked = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return locked, nil
}
