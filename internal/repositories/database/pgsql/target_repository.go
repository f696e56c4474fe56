package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTargetRepository struct {
	BaseRepository
}

func newPgxTargetRepository(pool *pgxpool.Pool) portsrepo.TargetRepositoryFacade {
	return &PgxTargetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TargetRepositoryFacade = (*PgxTargetRepository)(nil)

const boutiqueTargetColumns = `boutique_id, month, amount_halalas, created_at, created_by, last_updated_at, last_updated_by`

const employeeTargetColumns = `
	user_id, emp_id, boutique_id, month, amount_halalas, role_at_generation,
	effective_weight_at_generation, scheduled_days_in_month, leave_days_in_month, presence_factor,
	generated_at, generated_by
`

func scanBoutiqueTarget(row pgx.Row) (domain.BoutiqueMonthlyTarget, error) {
	var t domain.BoutiqueMonthlyTarget
	err := row.Scan(&t.BoutiqueID, &t.Month, &t.AmountHalalas, &t.CreatedAt, &t.CreatedBy, &t.LastUpdatedAt, &t.LastUpdatedBy)
	return t, err
}

func scanEmployeeTarget(row pgx.Row) (domain.EmployeeMonthlyTarget, error) {
	var t domain.EmployeeMonthlyTarget
	err := row.Scan(
		&t.UserID, &t.EmpID, &t.BoutiqueID, &t.Month, &t.AmountHalalas, &t.RoleAtGeneration,
		&t.EffectiveWeightAtGeneration, &t.ScheduledDaysInMonth, &t.LeaveDaysInMonth, &t.PresenceFactor,
		&t.GeneratedAt, &t.GeneratedBy,
	)
	return t, err
}

func (r *PgxTargetRepository) FindBoutiqueTarget(ctx context.Context, boutiqueID, month string) (*domain.BoutiqueMonthlyTarget, error) {
	query := `SELECT ` + boutiqueTargetColumns + ` FROM boutique_monthly_targets WHERE boutique_id = $1 AND month = $2;`
	t, err := scanBoutiqueTarget(r.db(ctx).QueryRow(ctx, query, boutiqueID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find boutique target "+boutiqueID+"@"+month, err)
	}
	return &t, nil
}

func (r *PgxTargetRepository) ListBoutiqueTargets(ctx context.Context, boutiqueIDs []string, month string) ([]domain.BoutiqueMonthlyTarget, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.BoutiqueMonthlyTarget{}, nil
	}
	query := `
		SELECT ` + boutiqueTargetColumns + `
		FROM boutique_monthly_targets
		WHERE boutique_id = ANY($1) AND month = $2
		ORDER BY boutique_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueIDs, month)
	if err != nil {
		return nil, internalError("failed to query boutique targets", err)
	}
	targets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BoutiqueMonthlyTarget, error) {
		return scanBoutiqueTarget(row)
	})
	if err != nil {
		return nil, internalError("failed to collect boutique targets", err)
	}
	return targets, nil
}

func (r *PgxTargetRepository) ListEmployeeTargets(ctx context.Context, boutiqueIDs []string, month string) ([]domain.EmployeeMonthlyTarget, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.EmployeeMonthlyTarget{}, nil
	}
	query := `
		SELECT ` + employeeTargetColumns + `
		FROM employee_monthly_targets
		WHERE boutique_id = ANY($1) AND month = $2
		ORDER BY boutique_id, emp_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueIDs, month)
	if err != nil {
		return nil, internalError("failed to query employee targets", err)
	}
	targets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EmployeeMonthlyTarget, error) {
		return scanEmployeeTarget(row)
	})
	if err != nil {
		return nil, internalError("failed to collect employee targets", err)
	}
	return targets, nil
}

func (r *PgxTargetRepository) FindEmployeeTarget(ctx context.Context, userID, month string) (*domain.EmployeeMonthlyTarget, error) {
	query := `SELECT ` + employeeTargetColumns + ` FROM employee_monthly_targets WHERE user_id = $1 AND month = $2;`
	t, err := scanEmployeeTarget(r.db(ctx).QueryRow(ctx, query, userID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find employee target "+userID+"@"+month, err)
	}
	return &t, nil
}

func (r *PgxTargetRepository) UpsertBoutiqueTarget(ctx context.Context, target domain.BoutiqueMonthlyTarget) (*domain.BoutiqueMonthlyTarget, error) {
	query := `
		INSERT INTO boutique_monthly_targets (` + boutiqueTargetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (boutique_id, month) DO UPDATE SET
			amount_halalas = EXCLUDED.amount_halalas,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + boutiqueTargetColumns + `;
	`
	saved, err := scanBoutiqueTarget(r.db(ctx).QueryRow(ctx, query,
		target.BoutiqueID,
		target.Month,
		target.AmountHalalas,
		target.CreatedAt,
		target.CreatedBy,
		target.LastUpdatedAt,
		target.LastUpdatedBy,
	))
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return nil, apperrors.NewNotFoundError("boutique", target.BoutiqueID)
		}
		return nil, internalError("failed to upsert boutique target "+target.BoutiqueID+"@"+target.Month, err)
	}
	return &saved, nil
}

// ReplaceEmployeeTargets locks the boutique target row, swaps the month's rows with a batch insert and
// re-reads the stored sum before committing.
func (r *PgxTargetRepository) ReplaceEmployeeTargets(ctx context.Context, boutiqueID, month string, rows []domain.EmployeeMonthlyTarget) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var boutiqueTotal int64
		err := tx.QueryRow(ctx,
			`SELECT amount_halalas FROM boutique_monthly_targets WHERE boutique_id = $1 AND month = $2 FOR UPDATE;`,
			boutiqueID, month,
		).Scan(&boutiqueTotal)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("boutique target", boutiqueID+"@"+month)
			}
			return internalError("failed to lock boutique target", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM employee_monthly_targets WHERE boutique_id = $1 AND month = $2;`, boutiqueID, month); err != nil {
			return internalError("failed to clear employee targets", err)
		}

		insert := `
			INSERT INTO employee_monthly_targets (` + employeeTargetColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
		`
		batch := &pgx.Batch{}
		for _, row := range rows {
			batch.Queue(insert,
				row.UserID,
				row.EmpID,
				row.BoutiqueID,
				row.Month,
				row.AmountHalalas,
				string(row.RoleAtGeneration),
				row.EffectiveWeightAtGeneration,
				row.ScheduledDaysInMonth,
				row.LeaveDaysInMonth,
				row.PresenceFactor,
				row.GeneratedAt,
				row.GeneratedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if code, _ := pgErrorCode(err); code == pgUniqueViolation {
				return apperrors.NewConflictError(apperrors.CodeConflict, "an employee already holds a target for "+month+" at another boutique")
			}
			return internalError("failed to insert employee targets", err)
		}

		var stored int64
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(amount_halalas), 0) FROM employee_monthly_targets WHERE boutique_id = $1 AND month = $2;`,
			boutiqueID, month,
		).Scan(&stored)
		if err != nil {
			return internalError("failed to verify employee target sum", err)
		}
		if stored != boutiqueTotal {
			return apperrors.NewInvariantViolationError(fmt.Sprintf("employee targets sum to %d, boutique target is %d", stored, boutiqueTotal))
		}
		return nil
	})
}

func (r *PgxTargetRepository) DeleteEmployeeTargets(ctx context.Context, boutiqueID, month string) (int64, error) {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM employee_monthly_targets WHERE boutique_id = $1 AND month = $2;`, boutiqueID, month)
	if err != nil {
		return 0, internalError("failed to delete employee targets", err)
	}
	return tag.RowsAffected(), nil
}
