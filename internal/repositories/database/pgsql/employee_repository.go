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

type PgxEmployeeRepository struct {
	BaseRepository
}

func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

const employeeSelect = `
SELECT
	e.emp_id, e.name, e.boutique_id, e.user_id, e.team, e.position, e.weekly_off_day,
	e.is_active, e.is_system_only, e.exclude_from_targets,
	e.created_at, e.created_by, e.last_updated_at, e.last_updated_by
FROM employees e
`

// getEmployees runs employeeSelect with the given filter and scans every row.
func (r *PgxEmployeeRepository) getEmployees(ctx context.Context, q querier, filterQuery string, args ...any) ([]domain.Employee, error) {
	rows, err := q.Query(ctx, employeeSelect+filterQuery, args...)
	if err != nil {
		return nil, internalError("failed to query employees", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		var (
			e          domain.Employee
			boutiqueID *string
			team       string
			offDay     *int16
		)
		if err := rows.Scan(
			&e.EmpID, &e.Name, &boutiqueID, &e.UserID, &team, &e.Position, &offDay,
			&e.IsActive, &e.IsSystemOnly, &e.ExcludeFromTargets,
			&e.CreatedAt, &e.CreatedBy, &e.LastUpdatedAt, &e.LastUpdatedBy,
		); err != nil {
			return nil, internalError("failed to scan employee", err)
		}
		if boutiqueID != nil {
			e.BoutiqueID = *boutiqueID
		}
		if e.Team, err = domain.ParseTeam(team); err != nil {
			return nil, internalError("corrupt employee row "+e.EmpID, err)
		}
		if offDay != nil {
			wd := time.Weekday(*offDay)
			e.WeeklyOffDay = &wd
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("failed to iterate employees", err)
	}
	return employees, nil
}

func (r *PgxEmployeeRepository) findOne(ctx context.Context, filterQuery string, arg string) (*domain.Employee, error) {
	employees, err := r.getEmployees(ctx, r.db(ctx), filterQuery, arg)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &employees[0], nil
}

func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, empID string) (*domain.Employee, error) {
	return r.findOne(ctx, `WHERE e.emp_id = $1`, empID)
}

func (r *PgxEmployeeRepository) FindEmployeeByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	return r.findOne(ctx, `WHERE e.user_id = $1`, userID)
}

func (r *PgxEmployeeRepository) ListEmployeesByBoutiques(ctx context.Context, boutiqueIDs []string) ([]domain.Employee, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.Employee{}, nil
	}
	return r.getEmployees(ctx, r.db(ctx), `WHERE e.boutique_id = ANY($1) AND e.is_active ORDER BY e.emp_id`, boutiqueIDs)
}

func (r *PgxEmployeeRepository) ListEmployeesByIDs(ctx context.Context, empIDs []string) ([]domain.Employee, error) {
	if len(empIDs) == 0 {
		return []domain.Employee{}, nil
	}
	return r.getEmployees(ctx, r.db(ctx), `WHERE e.emp_id = ANY($1) ORDER BY e.emp_id`, empIDs)
}

func (r *PgxEmployeeRepository) ListTeamAssignments(ctx context.Context, empIDs []string) ([]domain.TeamAssignment, error) {
	if len(empIDs) == 0 {
		return []domain.TeamAssignment{}, nil
	}
	query := `
		SELECT emp_id, team, effective_from
		FROM employee_team_assignments
		WHERE emp_id = ANY($1)
		ORDER BY emp_id, effective_from;
	`
	rows, err := r.db(ctx).Query(ctx, query, empIDs)
	if err != nil {
		return nil, internalError("failed to query team assignments", err)
	}
	defer rows.Close()

	assignments := []domain.TeamAssignment{}
	for rows.Next() {
		var a domain.TeamAssignment
		var team string
		if err := rows.Scan(&a.EmpID, &team, &a.EffectiveFrom); err != nil {
			return nil, internalError("failed to scan team assignment", err)
		}
		if a.Team, err = domain.ParseTeam(team); err != nil {
			return nil, internalError("corrupt team assignment of "+a.EmpID, err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, internalError("failed to iterate team assignments", err)
	}
	return assignments, nil
}

func (r *PgxEmployeeRepository) ListRoleWeights(ctx context.Context) ([]domain.RoleWeightVersion, error) {
	rows, err := r.db(ctx).Query(ctx, `SELECT position, weight, effective_from FROM role_weights ORDER BY position, effective_from;`)
	if err != nil {
		return nil, internalError("failed to query role weights", err)
	}
	versions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RoleWeightVersion, error) {
		var v domain.RoleWeightVersion
		err := row.Scan(&v.Position, &v.Weight, &v.EffectiveFrom)
		return v, err
	})
	if err != nil {
		return nil, internalError("failed to collect role weights", err)
	}
	return versions, nil
}

// DeactivateEmployee runs the whole cascade in one transaction. The employee row is locked first so
// concurrent deactivations of the same employee serialise.
func (r *PgxEmployeeRepository) DeactivateEmployee(ctx context.Context, empID, actorUserID string, at time.Time) (*domain.DeactivationReport, error) {
	report := &domain.DeactivationReport{EmpID: empID, DeactivatedAt: at, DeactivatedBy: actorUserID}

	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var active bool
		err := tx.QueryRow(ctx, `SELECT is_active FROM employees WHERE emp_id = $1 FOR UPDATE;`, empID).Scan(&active)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return internalError("failed to lock employee "+empID, err)
		}
		if !active {
			return apperrors.NewConflictError(apperrors.CodeConflict, "employee "+empID+" is already inactive")
		}

		steps := []struct {
			name  string
			query string
			args  []any
			count *int64
		}{
			{
				name: "reassign task plans",
				query: `
					UPDATE task_plans SET
						primary_emp_id = CASE WHEN primary_emp_id = $1 THEN $2 ELSE primary_emp_id END,
						backup1_emp_id = CASE WHEN backup1_emp_id = $1 THEN NULL ELSE backup1_emp_id END,
						backup2_emp_id = CASE WHEN backup2_emp_id = $1 THEN NULL ELSE backup2_emp_id END
					WHERE primary_emp_id = $1 OR backup1_emp_id = $1 OR backup2_emp_id = $1;`,
				args:  []any{empID, domain.UnassignedEmpID},
				count: &report.TaskPlansReassigned,
			},
			{
				name:  "delete shift overrides",
				query: `DELETE FROM shift_overrides WHERE emp_id = $1;`,
				args:  []any{empID},
				count: &report.ShiftOverridesDeleted,
			},
			{
				name:  "close zone assignments",
				query: `UPDATE zone_assignments SET is_active = FALSE, ended_at = $2 WHERE emp_id = $1 AND is_active;`,
				args:  []any{empID, at},
				count: &report.ZoneAssignmentsClosed,
			},
			{
				name:  "remove rotation memberships",
				query: `DELETE FROM task_rotation_members WHERE emp_id = $1;`,
				args:  []any{empID},
				count: &report.RotationMembershipsRemoved,
			},
			{
				name:  "remove queue entries",
				query: `DELETE FROM task_queue_entries WHERE emp_id = $1;`,
				args:  []any{empID},
				count: &report.QueueEntriesRemoved,
			},
			{
				name: "deactivate employee",
				query: `
					UPDATE employees SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
					WHERE emp_id = $1;`,
				args: []any{empID, at, actorUserID},
			},
		}
		for _, step := range steps {
			tag, err := tx.Exec(ctx, step.query, step.args...)
			if err != nil {
				return internalError("deactivation cascade failed to "+step.name, err)
			}
			if step.count != nil {
				*step.count = tag.RowsAffected()
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}
