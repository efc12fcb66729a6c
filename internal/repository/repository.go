package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/config"
)

// DBExecutor interface for database operations (can be *sqlx.DB or *sqlx.Tx)
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
	DriverName() string
}

// forUpdate appends a row lock where the dialect supports one. SQLite
// serializes writers on its single connection instead.
func forUpdate(db DBExecutor, query string) string {
	if db.DriverName() == config.DriverPostgres {
		return query + " FOR UPDATE"
	}
	return query
}

func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// Now returns the storage timestamp for the current instant
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
