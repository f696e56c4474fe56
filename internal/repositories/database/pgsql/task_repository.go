package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/boutique_ops/internal/core/domain"
	portsrepo "github.com/SscSPs/boutique_ops/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

// ListActiveTasks loads tasks with their plan, then schedules and rotation members in one batch.
func (r *PgxTaskRepository) ListActiveTasks(ctx context.Context, boutiqueIDs []string) ([]domain.Task, error) {
	if len(boutiqueIDs) == 0 {
		return []domain.Task{}, nil
	}
	query := `
		SELECT t.task_id, t.boutique_id, t.name, t.is_active,
		       COALESCE(p.primary_emp_id, $2), p.backup1_emp_id, p.backup2_emp_id
		FROM tasks t
		LEFT JOIN task_plans p ON p.task_id = t.task_id
		WHERE t.boutique_id = ANY($1) AND t.is_active
		ORDER BY t.boutique_id, t.task_id;
	`
	rows, err := r.db(ctx).Query(ctx, query, boutiqueIDs, domain.UnassignedEmpID)
	if err != nil {
		return nil, internalError("failed to query tasks", err)
	}
	tasks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Task, error) {
		var t domain.Task
		err := row.Scan(&t.TaskID, &t.BoutiqueID, &t.Name, &t.IsActive,
			&t.Plan.PrimaryEmpID, &t.Plan.Backup1EmpID, &t.Plan.Backup2EmpID)
		return t, err
	})
	if err != nil {
		return nil, internalError("failed to collect tasks", err)
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	taskIDs := make([]string, len(tasks))
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.TaskID
		index[t.TaskID] = i
	}

	batch := &pgx.Batch{}
	batch.Queue(`
		SELECT task_id, kind, weekdays, day_of_month, on_date, starts_on, ends_on
		FROM task_schedules
		WHERE task_id = ANY($1)
		ORDER BY task_id, schedule_id;
	`, taskIDs).Query(func(rows pgx.Rows) error {
		for rows.Next() {
			var (
				taskID, kind string
				weekdays     []int16
				dayOfMonth   int16
				s            domain.TaskSchedule
			)
			if err := rows.Scan(&taskID, &kind, &weekdays, &dayOfMonth, &s.OnDate, &s.StartsOn, &s.EndsOn); err != nil {
				return err
			}
			parsed, err := domain.ParseTaskScheduleKind(kind)
			if err != nil {
				return err
			}
			s.Kind = parsed
			s.DayOfMonth = int(dayOfMonth)
			for _, wd := range weekdays {
				s.Weekdays = append(s.Weekdays, time.Weekday(wd))
			}
			i := index[taskID]
			tasks[i].Schedules = append(tasks[i].Schedules, s)
		}
		return rows.Err()
	})
	batch.Queue(`
		SELECT task_id, emp_id
		FROM task_rotation_members
		WHERE task_id = ANY($1)
		ORDER BY task_id, sort_order, emp_id;
	`, taskIDs).Query(func(rows pgx.Rows) error {
		for rows.Next() {
			var taskID, empID string
			if err := rows.Scan(&taskID, &empID); err != nil {
				return err
			}
			i := index[taskID]
			tasks[i].Plan.RotationMembers = append(tasks[i].Plan.RotationMembers, empID)
		}
		return rows.Err()
	})

	if err := r.Pool.SendBatch(ctx, batch).Close(); err != nil {
		return nil, internalError("failed to load task schedules and rotations", err)
	}
	return tasks, nil
}
