package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBoutiqueRepository struct {
	BaseRepository
}

func newPgxBoutiqueRepository(pool *pgxpool.Pool) portsrepo.BoutiqueRepositoryFacade {
	return &PgxBoutiqueRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BoutiqueRepositoryFacade = (*PgxBoutiqueRepository)(nil)

func (r *PgxBoutiqueRepository) FindBoutiqueByID(ctx context.Context, boutiqueID string) (*domain.Boutique, error) {
	query := `
		SELECT boutique_id, code, name, region_id, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM boutiques
		WHERE boutique_id = $1;
	`
	var b domain.Boutique
	err := r.db(ctx).QueryRow(ctx, query, boutiqueID).Scan(
		&b.BoutiqueID, &b.Code, &b.Name, &b.RegionID, &b.IsActive,
		&b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to find boutique "+boutiqueID, err)
	}
	return &b, nil
}

func (r *PgxBoutiqueRepository) ListActiveBoutiqueIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT boutique_id FROM boutiques WHERE is_active ORDER BY code;`)
	if err != nil {
		return nil, internalError("failed to list boutiques", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, internalError("failed to collect boutique ids", err)
	}
	return ids, nil
}

func (r *PgxBoutiqueRepository) ListActiveMemberships(ctx context.Context, userID string) ([]domain.BoutiqueMembership, error) {
	query := `
		SELECT m.user_id, m.boutique_id, m.access, m.is_active, m.joined_at
		FROM boutique_memberships m
		JOIN boutiques b ON b.boutique_id = m.boutique_id
		WHERE m.user_id = $1 AND m.is_active AND b.is_active
		ORDER BY m.boutique_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, internalError("failed to query memberships", err)
	}
	defer rows.Close()

	memberships := []domain.BoutiqueMembership{}
	for rows.Next() {
		var m domain.BoutiqueMembership
		var access string
		if err := rows.Scan(&m.UserID, &m.BoutiqueID, &access, &m.IsActive, &m.JoinedAt); err != nil {
			return nil, internalError("failed to scan membership", err)
		}
		if m.Access, err = domain.ParseMembershipAccess(access); err != nil {
			return nil, internalError("corrupt membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("failed to iterate memberships", err)
	}
	return memberships, nil
}

func (r *PgxBoutiqueRepository) SaveAuditEntry(ctx context.Context, entry domain.AuditLogEntry) error {
	var details []byte
	if len(entry.Details) > 0 {
		var err error
		if details, err = json.Marshal(entry.Details); err != nil {
			return fmt.Errorf("encode audit details: %w", err)
		}
	}
	boutiqueIDs := entry.BoutiqueIDs
	if boutiqueIDs == nil {
		boutiqueIDs = []string{}
	}

	query := `
		INSERT INTO audit_log (audit_id, actor_user_id, module, action, boutique_ids, details, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		entry.AuditID,
		entry.ActorUserID,
		entry.Module,
		entry.Action,
		boutiqueIDs,
		details,
		entry.At,
	)
	if err != nil {
		return internalError("failed to save audit entry "+entry.AuditID, err)
	}
	return nil
}
