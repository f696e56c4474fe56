package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxZoneRepository struct {
	BaseRepository
}

func newPgxZoneRepository(pool *pgxpool.Pool) portsrepo.ZoneRepositoryFacade {
	return &PgxZoneRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ZoneRepositoryFacade = (*PgxZoneRepository)(nil)

const zoneAssignmentColumns = `assignment_id, zone_id, boutique_id, emp_id, is_active, assigned_by, assigned_at, ended_at`

func scanZoneAssignment(row pgx.Row) (domain.ZoneAssignment, error) {
	var a domain.ZoneAssignment
	err := row.Scan(&a.AssignmentID, &a.ZoneID, &a.BoutiqueID, &a.EmpID, &a.IsActive, &a.AssignedBy, &a.AssignedAt, &a.EndedAt)
	return a, err
}

func (r *PgxZoneRepository) FindZoneByID(ctx context.Context, zoneID string) (*domain.InventoryZone, error) {
	var z domain.InventoryZone
	err := r.db(ctx).QueryRow(ctx, `SELECT zone_id, boutique_id, code, name FROM inventory_zones WHERE zone_id = $1;`, zoneID).
		Scan(&z.ZoneID, &z.BoutiqueID, &z.Code, &z.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find zone "+zoneID, err)
	}
	return &z, nil
}

func (r *PgxZoneRepository) ListActiveZoneAssignments(ctx context.Context, boutiqueIDs []string) ([]domain.ZoneAssignment, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.ZoneAssignment{}, nil
	}
	query := `
		SELECT ` + zoneAssignmentColumns + `
		FROM zone_assignments
		WHERE boutique_id = ANY($1) AND is_active
		ORDER BY boutique_id, zone_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueIDs)
	if err != nil {
		return nil, internalError("failed to query zone assignments", err)
	}
	assignments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ZoneAssignment, error) {
		return scanZoneAssignment(row)
	})
	if err != nil {
		return nil, internalError("failed to collect zone assignments", err)
	}
	return assignments, nil
}

// AssignZone closes the zone's active row and inserts the new one in a transaction; the partial
// unique index on active rows catches a concurrent assignment.
func (r *PgxZoneRepository) AssignZone(ctx context.Context, assignment domain.ZoneAssignment) (*domain.ZoneAssignment, error) {
	var saved domain.ZoneAssignment
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT zone_id FROM inventory_zones WHERE zone_id = $1 FOR UPDATE;`, assignment.ZoneID); err != nil {
			return internalError("failed to lock zone "+assignment.ZoneID, err)
		}
		_, err := tx.Exec(ctx,
			`UPDATE zone_assignments SET is_active = FALSE, ended_at = $2 WHERE zone_id = $1 AND is_active;`,
			assignment.ZoneID, assignment.AssignedAt,
		)
		if err != nil {
			return internalError("failed to close zone assignment", err)
		}

		query := `
			INSERT INTO zone_assignments (` + zoneAssignmentColumns + `)
			VALUES ($1, $2, $3, $4, TRUE, $5, $6, NULL)
			RETURNING ` + zoneAssignmentColumns + `;
		`
		saved, err = scanZoneAssignment(tx.QueryRow(ctx, query,
			assignment.AssignmentID,
			assignment.ZoneID,
			assignment.BoutiqueID,
			assignment.EmpID,
			assignment.AssignedBy,
			assignment.AssignedAt,
		))
		if err != nil {
			switch code, _ := pgErrorCode(err); code {
			case pgUniqueViolation:
				return apperrors.NewConflictError(apperrors.CodeConflict, "zone "+assignment.ZoneID+" was assigned concurrently")
			case pgForeignKeyViolation:
				return apperrors.NewNotFoundError("employee", assignment.EmpID)
			}
			return internalError("failed to insert zone assignment", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
