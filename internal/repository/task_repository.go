package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

const taskColumns = `id, name, description, cron_expression, task_type, game_name, is_enabled, last_run_at, created_at`

// TaskRepository handles scheduled task data operations
type TaskRepository struct{}

// NewTaskRepository creates a new task repository
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{}
}

// CreateTask inserts a scheduled task
func (r *TaskRepository) CreateTask(ctx context.Context, db DBExecutor, t *model.ScheduledTask) error {
	query := db.Rebind(`
		INSERT INTO scheduled_tasks (name, description, cron_expression, task_type, game_name, is_enabled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	t.CreatedAt = Now()
	if err := db.GetContext(ctx, &t.ID, query,
		t.Name, nullString(t.Description), t.CronExpression, string(t.TaskType),
		nullString(t.GameName), t.IsEnabled, t.CreatedAt); err != nil {
		return apperr.Persistence("failed to create task", err)
	}

	return nil
}

// GetTask retrieves a task by ID
func (r *TaskRepository) GetTask(ctx context.Context, db DBExecutor, id int64) (*model.ScheduledTask, error) {
	var t model.ScheduledTask
	err := db.GetContext(ctx, &t, db.Rebind(`SELECT `+taskColumns+` FROM scheduled_tasks WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("task %d not found", id)
		}
		return nil, apperr.Persistence("failed to get task", err)
	}

	return &t, nil
}

// ListTasks returns all tasks in creation order
func (r *TaskRepository) ListTasks(ctx context.Context, db DBExecutor) ([]model.ScheduledTask, error) {
	tasks := []model.ScheduledTask{}
	if err := db.SelectContext(ctx, &tasks, `SELECT `+taskColumns+` FROM scheduled_tasks ORDER BY id ASC`); err != nil {
		return nil, apperr.Persistence("failed to list tasks", err)
	}

	return tasks, nil
}

// SetEnabled toggles a task
func (r *TaskRepository) SetEnabled(ctx context.Context, db DBExecutor, id int64, enabled bool) error {
	return r.exec(ctx, db, id, `UPDATE scheduled_tasks SET is_enabled = ? WHERE id = ?`, enabled, id)
}

// MarkRun records when a task last ran
func (r *TaskRepository) MarkRun(ctx context.Context, db DBExecutor, id int64, at time.Time) error {
	return r.exec(ctx, db, id, `UPDATE scheduled_tasks SET last_run_at = ? WHERE id = ?`, at.UTC(), id)
}

// DeleteTask removes a task
func (r *TaskRepository) DeleteTask(ctx context.Context, db DBExecutor, id int64) error {
	return r.exec(ctx, db, id, `DELETE FROM scheduled_tasks WHERE id = ?`, id)
}

func (r *TaskRepository) exec(ctx context.Context, db DBExecutor, id int64, query string, args ...interface{}) error {
	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return apperr.Persistence("failed to update task", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Persistence("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("task %d not found", id)
	}

	return nil
}
