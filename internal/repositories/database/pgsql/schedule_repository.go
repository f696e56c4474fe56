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

type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryFacade {
	return &PgxScheduleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ScheduleRepositoryFacade = (*PgxScheduleRepository)(nil)

const overrideColumns = `
	o.override_id, o.boutique_id, o.emp_id, o.date, o.override_shift, o.source_boutique_id, o.is_active,
	o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
`

func scanOverride(row pgx.Row) (domain.ShiftOverride, error) {
	var o domain.ShiftOverride
	var shift string
	if err := row.Scan(
		&o.OverrideID, &o.BoutiqueID, &o.EmpID, &o.Date, &shift, &o.SourceBoutiqueID, &o.IsActive,
		&o.CreatedAt, &o.CreatedBy, &o.LastUpdatedAt, &o.LastUpdatedBy,
	); err != nil {
		return o, err
	}
	parsed, err := domain.ParseOverrideShift(shift)
	if err != nil {
		return o, err
	}
	o.OverrideShift = parsed
	return o, nil
}

func (r *PgxScheduleRepository) ListActiveOverrides(ctx context.Context, boutiqueIDs []string, from, to time.Time) ([]domain.ShiftOverride, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.ShiftOverride{}, nil
	}
	query := `
		SELECT ` + overrideColumns + `
		FROM shift_overrides o
		JOIN employees e ON e.emp_id = o.emp_id
		WHERE o.is_active
		  AND o.date BETWEEN $2 AND $3
		  AND (o.boutique_id = ANY($1) OR e.boutique_id = ANY($1))
		ORDER BY o.date, o.emp_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueIDs, from, to)
	if err != nil {
		return nil, internalError("failed to query shift overrides", err)
	}
	overrides, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ShiftOverride, error) {
		return scanOverride(row)
	})
	if err != nil {
		return nil, internalError("failed to collect shift overrides", err)
	}
	return overrides, nil
}

func (r *PgxScheduleRepository) UpsertOverride(ctx context.Context, override domain.ShiftOverride) (*domain.ShiftOverride, error) {
	query := `
		INSERT INTO shift_overrides AS o (
			override_id, boutique_id, emp_id, date, override_shift, source_boutique_id, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (emp_id, date) DO UPDATE SET
			boutique_id = EXCLUDED.boutique_id,
			override_shift = EXCLUDED.override_shift,
			source_boutique_id = EXCLUDED.source_boutique_id,
			is_active = EXCLUDED.is_active,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		WHERE o.boutique_id = EXCLUDED.boutique_id
		RETURNING ` + overrideColumns + `;
	`
	row := r.db(ctx).QueryRow(ctx, query,
		override.OverrideID,
		override.BoutiqueID,
		override.EmpID,
		override.Date,
		string(override.OverrideShift),
		override.SourceBoutiqueID,
		override.IsActive,
		override.CreatedAt,
		override.CreatedBy,
		override.LastUpdatedAt,
		override.LastUpdatedBy,
	)
	saved, err := scanOverride(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// the (emp_id, date) row belongs to another boutique
			return nil, apperrors.NewConflictError(apperrors.CodeConflict,
				"employee "+override.EmpID+" already has an override at another boutique on this date")
		}
		if code, _ := pgErrorCode(err); code == pgForeignKeyViolation {
			return nil, apperrors.NewValidationFailedError("boutiqueId", "must reference an existing boutique")
		}
		return nil, internalError("failed to upsert shift override for "+override.EmpID, err)
	}
	return &saved, nil
}

func (r *PgxScheduleRepository) DeleteOverride(ctx context.Context, boutiqueID, empID string, date time.Time) (int64, error) {
	tag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM shift_overrides WHERE emp_id = $1 AND date = $2 AND boutique_id = $3;`, empID, date, boutiqueID)
	if err != nil {
		return 0, internalError("failed to delete shift override for "+empID, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxScheduleRepository) ListWeekLocks(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.ScheduleWeekLock, error) {
	query := `
		SELECT boutique_id, week_start, locked_by, locked_at
		FROM schedule_week_locks
		WHERE boutique_id = $1 AND week_start BETWEEN $2 AND $3
		ORDER BY week_start;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueID, from, to)
	if err != nil {
		return nil, internalError("failed to query week locks", err)
	}
	locks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScheduleWeekLock, error) {
		var l domain.ScheduleWeekLock
		err := row.Scan(&l.BoutiqueID, &l.WeekStart, &l.LockedBy, &l.LockedAt)
		return l, err
	})
	if err != nil {
		return nil, internalError("failed to collect week locks", err)
	}
	return locks, nil
}

func (r *PgxScheduleRepository) ListDayLocks(ctx context.Context, boutiqueID string, from, to time.Time) ([]domain.ScheduleDayLock, error) {
	query := `
		SELECT boutique_id, date, locked_by, locked_at
		FROM schedule_day_locks
		WHERE boutique_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueID, from, to)
	if err != nil {
		return nil, internalError("failed to query day locks", err)
	}
	locks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ScheduleDayLock, error) {
		var l domain.ScheduleDayLock
		err := row.Scan(&l.BoutiqueID, &l.Date, &l.LockedBy, &l.LockedAt)
		return l, err
	})
	if err != nil {
		return nil, internalError("failed to collect day locks", err)
	}
	return locks, nil
}

// LockDay inserts the lock; an existing lock wins and is returned as stored.
func (r *PgxScheduleRepository) LockDay(ctx context.Context, lock domain.ScheduleDayLock) (*domain.ScheduleDayLock, error) {
	query := `
		WITH ins AS (
			INSERT INTO schedule_day_locks (boutique_id, date, locked_by, locked_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (boutique_id, date) DO NOTHING
			RETURNING boutique_id, date, locked_by, locked_at
		)
		SELECT boutique_id, date, locked_by, locked_at FROM ins
		UNION ALL
		SELECT boutique_id, date, locked_by, locked_at FROM schedule_day_locks
		WHERE boutique_id = $1 AND date = $2
		LIMIT 1;
	`
	var saved domain.ScheduleDayLock
	err := r.db(ctx).QueryRow(ctx, query, lock.BoutiqueID, lock.Date, lock.LockedBy, lock.LockedAt).
		Scan(&saved.BoutiqueID, &saved.Date, &saved.LockedBy, &saved.LockedAt)
	if err != nil {
		return nil, internalError("failed to lock day for "+lock.BoutiqueID, err)
	}
	return &saved, nil
}

func (r *PgxScheduleRepository) UnlockDay(ctx context.Context, boutiqueID string, date time.Time) (bool, error) {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM schedule_day_locks WHERE boutique_id = $1 AND date = $2;`, boutiqueID, date)
	if err != nil {
		return false, internalError("failed to unlock day for "+boutiqueID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// LockWeek inserts the lock; an existing lock wins and is returned as stored.
func (r *PgxScheduleRepository) LockWeek(ctx context.Context, lock domain.ScheduleWeekLock) (*domain.ScheduleWeekLock, error) {
	query := `
		WITH ins AS (
			INSERT INTO schedule_week_locks (boutique_id, week_start, locked_by, locked_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (boutique_id, week_start) DO NOTHING
			RETURNING boutique_id, week_start, locked_by, locked_at
		)
		SELECT boutique_id, week_start, locked_by, locked_at FROM ins
		UNION ALL
		SELECT boutique_id, week_start, locked_by, locked_at FROM schedule_week_locks
		WHERE boutique_id = $1 AND week_start = $2
		LIMIT 1;
	`
	var saved domain.ScheduleWeekLock
	err := r.db(ctx).QueryRow(ctx, query, lock.BoutiqueID, lock.WeekStart, lock.LockedBy, lock.LockedAt).
		Scan(&saved.BoutiqueID, &saved.WeekStart, &saved.LockedBy, &saved.LockedAt)
	if err != nil {
		return nil, internalError("failed to lock week for "+lock.BoutiqueID, err)
	}
	return &saved, nil
}

func (r *PgxScheduleRepository) UnlockWeek(ctx context.Context, boutiqueID string, weekStart time.Time) (bool, error) {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM schedule_week_locks WHERE boutique_id = $1 AND week_start = $2;`, boutiqueID, weekStart)
	if err != nil {
		return false, internalError("failed to unlock week for "+boutiqueID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PgxScheduleRepository) ListCoverageRules(ctx context.Context) ([]domain.CoverageRule, error) {
	query := `
		SELECT day_of_week, min_am, min_pm, enabled, updated_by, updated_at
		FROM coverage_rules
		ORDER BY day_of_week;
	`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, internalError("failed to query coverage rules", err)
	}
	rules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CoverageRule, error) {
		return scanCoverageRule(row)
	})
	if err != nil {
		return nil, internalError("failed to collect coverage rules", err)
	}
	return rules, nil
}

func (r *PgxScheduleRepository) UpsertCoverageRule(ctx context.Context, rule domain.CoverageRule) (*domain.CoverageRule, error) {
	query := `
		INSERT INTO coverage_rules (day_of_week, min_am, min_pm, enabled, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (day_of_week) DO UPDATE SET
			min_am = EXCLUDED.min_am,
			min_pm = EXCLUDED.min_pm,
			enabled = EXCLUDED.enabled,
			updated_by = EXCLUDED.updated_by,
			updated_at = EXCLUDED.updated_at
		RETURNING day_of_week, min_am, min_pm, enabled, updated_by, updated_at;
	`
	saved, err := scanCoverageRule(r.db(ctx).QueryRow(ctx, query,
		int16(rule.DayOfWeek), rule.MinAM, rule.MinPM, rule.Enabled, rule.UpdatedBy, rule.UpdatedAt,
	))
	if err != nil {
		return nil, internalError("failed to upsert coverage rule for "+rule.DayOfWeek.String(), err)
	}
	return &saved, nil
}

func scanCoverageRule(row pgx.Row) (domain.CoverageRule, error) {
	var rule domain.CoverageRule
	var dow int16
	if err := row.Scan(&dow, &rule.MinAM, &rule.MinPM, &rule.Enabled, &rule.UpdatedBy, &rule.UpdatedAt); err != nil {
		return rule, err
	}
	if dow < 0 || dow > 6 {
		return rule, errors.New("coverage rule day_of_week out of range")
	}
	rule.DayOfWeek = time.Weekday(dow)
	return rule, nil
}
