package repository

import (
	"context"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

// UpdateLogRepository appends and reads audit records. Records are never updated.
type UpdateLogRepository struct{}

// NewUpdateLogRepository creates a new update log repository
func NewUpdateLogRepository() *UpdateLogRepository {
	return &UpdateLogRepository{}
}

// CreateLog appends an audit record
func (r *UpdateLogRepository) CreateLog(ctx context.Context, db DBExecutor, l *model.UpdateLog) error {
	query := db.Rebind(`
		INSERT INTO update_logs (title, description, operation_type, affected_count, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`)

	l.CreatedAt = Now()
	if err := db.GetContext(ctx, &l.ID, query,
		l.Title, l.Description, string(l.OperationType), l.AffectedCount, l.CreatedAt); err != nil {
		return apperr.Persistence("failed to create update log", err)
	}

	return nil
}

// ListLogs returns the newest audit records first
func (r *UpdateLogRepository) ListLogs(ctx context.Context, db DBExecutor, limit int) ([]model.UpdateLog, error) {
	query := db.Rebind(`
		SELECT id, title, description, operation_type, affected_count, created_at
		FROM update_logs
		ORDER BY id DESC
		LIMIT ?
	`)

	logs := []model.UpdateLog{}
	if err := db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, apperr.Persistence("failed to list update logs", err)
	}

	return logs, nil
}
