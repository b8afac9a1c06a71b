package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const taskColumns = `t.id, t.title, t.stage, t.deadline, t.created_at, t.updated_at,
  t.is_trashed, t.version, t.team, t.subtasks, t.documents, t.activities`

const insertTaskQuery = `
INSERT INTO tasks (id, title, stage, deadline, created_at, updated_at,
  is_trashed, version, team, subtasks, documents, activities)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const updateTaskQuery = `
UPDATE tasks SET title = ?, stage = ?, deadline = ?, updated_at = ?,
  is_trashed = ?, team = ?, subtasks = ?, documents = ?, activities = ?,
  version = version + 1
WHERE id = ? AND version = ?`

// TaskRepository stores each aggregate as one row with its collections
// encoded as JSON. task_subtasks and task_team are derived indexes kept in
// the same transaction.
type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID         string    `db:"id"`
	Title      string    `db:"title"`
	Stage      string    `db:"stage"`
	Deadline   time.Time `db:"deadline"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
	IsTrashed  bool      `db:"is_trashed"`
	Version    int64     `db:"version"`
	Team       string    `db:"team"`
	Subtasks   string    `db:"subtasks"`
	Documents  string    `db:"documents"`
	Activities string    `db:"activities"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	row, err := mapDomainTaskToRow(task)
	if err != nil {
		return err
	}

	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(insertTaskQuery),
			row.ID, row.Title, row.Stage, row.Deadline, row.CreatedAt, row.UpdatedAt,
			row.IsTrashed, row.Version, row.Team, row.Subtasks, row.Documents, row.Activities,
		)
		if err != nil {
			return fmt.Errorf("insert task: %w", err)
		}
		return writeIndexes(ctx, tx, task)
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (domain.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *TaskRepository) GetBySubtaskID(ctx context.Context, subtaskID string) (domain.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + `
FROM tasks t
JOIN task_subtasks s ON s.task_id = t.id
WHERE s.subtask_id = ?`)
	task, err := r.getOne(ctx, query, subtaskID)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return domain.Task{}, domain.ErrSubtaskNotFound
	}
	return task, err
}

// Save writes the aggregate only if nobody saved it since it was loaded.
func (r *TaskRepository) Save(ctx context.Context, task *domain.Task) error {
	row, err := mapDomainTaskToRow(*task)
	if err != nil {
		return err
	}

	err = r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(updateTaskQuery),
			row.Title, row.Stage, row.Deadline, row.UpdatedAt,
			row.IsTrashed, row.Team, row.Subtasks, row.Documents, row.Activities,
			row.ID, row.Version,
		)
		if err != nil {
			return fmt.Errorf("update task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			var count int
			if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM tasks WHERE id = ?`), row.ID); err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrTaskNotFound
			}
			return domain.ErrConcurrentUpdate
		}
		return writeIndexes(ctx, tx, *task)
	})
	if err != nil {
		return err
	}
	task.Version++
	return nil
}

func (r *TaskRepository) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	where := []string{"t.is_trashed = ?"}
	args := []any{filter.Trashed}

	if filter.MemberID != "" {
		where = append(where, "EXISTS (SELECT 1 FROM task_team tt WHERE tt.task_id = t.id AND tt.user_id = ?)")
		args = append(args, filter.MemberID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		where = append(where, "LOWER(t.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(search)+"%")
	}
	if filter.CreatedFrom != nil {
		where = append(where, "t.created_at >= ?")
		args = append(args, filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		where = append(where, "t.created_at <= ?")
		args = append(args, filter.CreatedTo.UTC())
	}

	query := `SELECT ` + taskColumns + ` FROM tasks t WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY t.created_at DESC, t.id`
	return r.selectTasks(ctx, r.db.Rebind(query), args...)
}

func (r *TaskRepository) ListWithTrashedSubtasks(ctx context.Context) ([]domain.Task, error) {
	query := r.db.Rebind(`SELECT ` + taskColumns + `
FROM tasks t
WHERE EXISTS (SELECT 1 FROM task_subtasks s WHERE s.task_id = t.id AND s.is_trashed = ?)
ORDER BY t.created_at DESC, t.id`)
	return r.selectTasks(ctx, query, true)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return domain.ErrTaskNotFound
		}
		return clearIndexes(ctx, tx, []string{id})
	})
}

func (r *TaskRepository) DeleteTrashed(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.inTx(ctx, func(tx *sqlx.Tx) error {
		var ids []string
		if err := tx.SelectContext(ctx, &ids, tx.Rebind(`SELECT id FROM tasks WHERE is_trashed = ?`), true); err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM tasks WHERE is_trashed = ?`), true)
		if err != nil {
			return fmt.Errorf("delete trashed tasks: %w", err)
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return err
		}
		return clearIndexes(ctx, tx, ids)
	})
	return deleted, err
}

func (r *TaskRepository) RestoreTrashed(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`UPDATE tasks SET is_trashed = ?, version = version + 1 WHERE is_trashed = ?`),
		false, true,
	)
	if err != nil {
		return 0, fmt.Errorf("restore trashed tasks: %w", err)
	}
	return res.RowsAffected()
}

func (r *TaskRepository) getOne(ctx context.Context, query string, args ...any) (domain.Task, error) {
	var row taskRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row)
}

func (r *TaskRepository) selectTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		task, err := mapTaskRowToDomainTask(row)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

func (r *TaskRepository) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func writeIndexes(ctx context.Context, tx *sqlx.Tx, task domain.Task) error {
	if err := clearIndexes(ctx, tx, []string{task.ID}); err != nil {
		return err
	}
	for _, s := range task.Subtasks {
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO task_subtasks (subtask_id, task_id, is_trashed) VALUES (?, ?, ?)`),
			s.ID, task.ID, s.IsTrashed,
		); err != nil {
			return fmt.Errorf("index subtask %s: %w", s.ID, err)
		}
	}
	for _, userID := range task.Team {
		if _, err := tx.ExecContext(ctx,
			tx.Rebind(`INSERT INTO task_team (task_id, user_id) VALUES (?, ?)`),
			task.ID, userID,
		); err != nil {
			return fmt.Errorf("index team member %s: %w", userID, err)
		}
	}
	return nil
}

func clearIndexes(ctx context.Context, tx *sqlx.Tx, taskIDs []string) error {
	for _, table := range []string{"task_subtasks", "task_team"} {
		query, args, err := sqlx.In(`DELETE FROM `+table+` WHERE task_id IN (?)`, taskIDs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
