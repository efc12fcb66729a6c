package repository

import (
	"context"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

const crawlLogColumns = `id, task_id, task_name, game_name, fetched, created, duplicates, invalid, error, created_at`

// CrawlLogRepository appends and reads crawl run records
type CrawlLogRepository struct{}

// NewCrawlLogRepository creates a new crawl log repository
func NewCrawlLogRepository() *CrawlLogRepository {
	return &CrawlLogRepository{}
}

// CreateLog appends a crawl run record
func (r *CrawlLogRepository) CreateLog(ctx context.Context, db DBExecutor, l *model.CrawlLog) error {
	query := db.Rebind(`
		INSERT INTO crawl_logs (task_id, task_name, game_name, fetched, created, duplicates, invalid, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	var taskID interface{}
	if l.TaskID != nil {
		taskID = *l.TaskID
	}

	l.CreatedAt = Now()
	if err := db.GetContext(ctx, &l.ID, query,
		taskID, l.TaskName, nullString(l.GameName), l.Fetched, l.Created,
		l.Duplicates, l.Invalid, nullString(l.Error), l.CreatedAt); err != nil {
		return apperr.Persistence("failed to create crawl log", err)
	}

	return nil
}

// ListLogs returns the newest crawl runs first
func (r *CrawlLogRepository) ListLogs(ctx context.Context, db DBExecutor, limit int) ([]model.CrawlLog, error) {
	query := db.Rebind(`SELECT ` + crawlLogColumns + ` FROM crawl_logs ORDER BY id DESC LIMIT ?`)

	logs := []model.CrawlLog{}
	if err := db.SelectContext(ctx, &logs, query, limit); err != nil {
		return nil, apperr.Persistence("failed to list crawl logs", err)
	}

	return logs, nil
}
