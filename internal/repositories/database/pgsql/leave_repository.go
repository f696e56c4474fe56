package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/boutique_ops/internal/apperrors"
	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLeaveRepository struct {
	BaseRepository
}

func newPgxLeaveRepository(pool *pgxpool.Pool) portsrepo.LeaveRepositoryFacade {
	return &PgxLeaveRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LeaveRepositoryFacade = (*PgxLeaveRepository)(nil)

const leaveSelect = `
SELECT
	l.leave_id, l.user_id, l.emp_id, l.boutique_id, l.start_date, l.end_date, l.type, l.reason,
	l.status, l.escalated_by, l.escalated_at, l.decided_by, l.decided_at, l.decision_note,
	l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
FROM leave_requests l
`

// blockingStatuses are the states that reserve their dates against new requests.
var blockingStatuses = []string{string(domain.LeavePending), string(domain.LeaveEscalated), string(domain.LeaveApproved)}

func scanLeave(row pgx.Row) (domain.LeaveRequest, error) {
	var l domain.LeaveRequest
	var leaveType, status string
	if err := row.Scan(
		&l.LeaveID, &l.UserID, &l.EmpID, &l.BoutiqueID, &l.StartDate, &l.EndDate, &leaveType, &l.Reason,
		&status, &l.EscalatedBy, &l.EscalatedAt, &l.DecidedBy, &l.DecidedAt, &l.DecisionNote,
		&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
	); err != nil {
		return l, err
	}
	var err error
	if l.Type, err = domain.ParseLeaveType(leaveType); err != nil {
		return l, err
	}
	l.Status, err = domain.ParseLeaveStatus(status)
	return l, err
}

func (r *PgxLeaveRepository) FindLeaveByID(ctx context.Context, leaveID string) (*domain.LeaveRequest, error) {
	rows, err := r.db(ctx).Query(ctx, leaveSelect+`WHERE l.leave_id = $1`, leaveID)
	if err != nil {
		return nil, internalError("failed to query leave "+leaveID, err)
	}
	leave, err := pgx.CollectOneRow(rows, func(row pgx.CollectableRow) (domain.LeaveRequest, error) {
		return scanLeave(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, internalError("failed to scan leave "+leaveID, err)
	}
	return &leave, nil
}

// ListLeaves builds the WHERE clause from the non-zero filter fields.
func (r *PgxLeaveRepository) ListLeaves(ctx context.Context, filter portsrepo.LeaveFilter) ([]domain.LeaveRequest, error) {
	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(args))))
	}

	if len(filter.BoutiqueIDs) > 0 {
		add("l.boutique_id = ANY(?)", filter.BoutiqueIDs)
	}
	if len(filter.EmpIDs) > 0 {
		add("l.emp_id = ANY(?)", filter.EmpIDs)
	}
	if filter.UserID != "" {
		add("l.user_id = ?", filter.UserID)
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		add("l.status = ANY(?)", statuses)
	}
	if filter.From != nil {
		add("l.end_date >= ?", *filter.From)
	}
	if filter.To != nil {
		add("l.start_date <= ?", *filter.To)
	}
	if filter.AfterStartDate != nil && filter.AfterCreatedAt != nil {
		args = append(args, *filter.AfterStartDate, *filter.AfterCreatedAt)
		n := len(args)
		conditions = append(conditions, "(l.start_date, l.created_at) > ($"+strconv.Itoa(n-1)+", $"+strconv.Itoa(n)+")")
	}

	var query strings.Builder
	query.WriteString(leaveSelect)
	if len(conditions) > 0 {
		query.WriteString("WHERE " + strings.Join(conditions, " AND ") + "\n")
	}
	query.WriteString("ORDER BY l.start_date, l.created_at, l.leave_id")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	}

	rows, err := r.db(ctx).Query(ctx, query.String(), args...)
	if err != nil {
		return nil, internalError("failed to query leaves", err)
	}
	leaves, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LeaveRequest, error) {
		return scanLeave(row)
	})
	if err != nil {
		return nil, internalError("failed to collect leaves", err)
	}
	return leaves, nil
}

func (r *PgxLeaveRepository) HasOverlappingLeave(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE user_id = $1 AND status = ANY($2) AND start_date <= $4 AND end_date >= $3
		);
	`
	var exists bool
	if err := r.db(ctx).QueryRow(ctx, query, userID, blockingStatuses, start, end).Scan(&exists); err != nil {
		return false, internalError("failed to check overlapping leave for "+userID, err)
	}
	return exists, nil
}

func (r *PgxLeaveRepository) SaveLeave(ctx context.Context, leave domain.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (
			leave_id, user_id, emp_id, boutique_id, start_date, end_date, type, reason, status,
			decision_note, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		leave.LeaveID,
		leave.UserID,
		leave.EmpID,
		leave.BoutiqueID,
		leave.StartDate,
		leave.EndDate,
		string(leave.Type),
		leave.Reason,
		string(leave.Status),
		leave.DecisionNote,
		leave.CreatedAt,
		leave.CreatedBy,
		leave.LastUpdatedAt,
		leave.LastUpdatedBy,
	)
	if err != nil {
		if code, _ := pgErrorCode(err); code == pgUniqueViolation {
			return apperrors.NewConflictError(apperrors.CodeConflict, "leave "+leave.LeaveID+" already exists")
		}
		return internalError("failed to save leave "+leave.LeaveID, err)
	}
	return nil
}

// UpdateLeaveStatus is a compare-and-set on the status column.
func (r *PgxLeaveRepository) UpdateLeaveStatus(ctx context.Context, leave domain.LeaveRequest, expected domain.LeaveStatus) error {
	query := `
		UPDATE leave_requests SET
			status = $2,
			escalated_by = $3,
			escalated_at = $4,
			decided_by = $5,
			decided_at = $6,
			decision_note = $7,
			last_updated_at = $8,
			last_updated_by = $9
		WHERE leave_id = $1 AND status = $10;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		leave.LeaveID,
		string(leave.Status),
		leave.EscalatedBy,
		leave.EscalatedAt,
		leave.DecidedBy,
		leave.DecidedAt,
		leave.DecisionNote,
		leave.LastUpdatedAt,
		leave.LastUpdatedBy,
		string(expected),
	)
	if err != nil {
		return internalError("failed to update leave "+leave.LeaveID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindLeaveByID(ctx, leave.LeaveID); err != nil {
			return err
		}
		return apperrors.NewConflictError(apperrors.CodeAlreadyDecided, "leave "+leave.LeaveID+" was decided concurrently")
	}
	return nil
}
