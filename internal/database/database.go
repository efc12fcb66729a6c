package database

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/Jhoney47/GameCodeBase/internal/config"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know by name.
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// DB holds database connections
type DB struct {
	Conn *sqlx.DB
}

// NewDB creates new database connections using config
func NewDB(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*DB, error) {
	db, err := Open(ctx, cfg.Database.Driver, cfg.Database.GetDatabaseURL())
	if err != nil {
		return nil, err
	}

	if cfg.Database.Driver == config.DriverPostgres {
		// Configure connection pool
		db.Conn.SetMaxOpenConns(cfg.Database.MaxConns)
		db.Conn.SetMaxIdleConns(cfg.Database.MinConns)
		db.Conn.SetConnMaxLifetime(time.Hour)
	}

	logger.Info("connected to database", zap.String("driver", cfg.Database.Driver))

	return db, nil
}

// sqlitePragmas are applied by the driver to every new connection
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
}

// SQLiteDSN appends the connection pragmas to a SQLite path
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	var b strings.Builder
	b.WriteString(path)
	for _, pragma := range sqlitePragmas {
		b.WriteString(sep)
		b.WriteString("_pragma=")
		b.WriteString(url.QueryEscape(pragma))
		sep = "&"
	}
	return b.String()
}

// Open connects with the given driver and DSN and verifies the connection.
// SQLite is limited to a single connection so writers serialize.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	if driver == config.DriverSQLite {
		dsn = SQLiteDSN(dsn)
	}

	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	return &DB{Conn: conn}, nil
}

// Migrate creates the schema if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if db.Conn.DriverName() == config.DriverSQLite {
		schema = sqliteSchema
	}

	for _, stmt := range schema {
		if _, err := db.Conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// Close closes all database connections
func (db *DB) Close() error {
	if err := db.Conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
