package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig `env:",prefix=SERVER_"`

	// Database configuration
	Database DatabaseConfig `env:",prefix=DB_"`

	// Application configuration
	App AppConfig `env:",prefix=APP_"`

	// Snapshot export configuration
	Export ExportConfig `env:",prefix=EXPORT_"`

	// Git remote for the exported artifact
	Git GitConfig `env:",prefix=GIT_"`

	// S3 mirror for the exported artifact
	S3 S3Config `env:",prefix=S3_"`

	// Redis-backed pipeline event queue
	Redis RedisConfig `env:",prefix=REDIS_"`

	// Review and batch policy
	Review ReviewConfig `env:",prefix=REVIEW_"`

	// Crawler feed used by scheduled tasks
	Crawler CrawlerConfig `env:",prefix=CRAWLER_"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port         string `env:"PORT,default=8080"`
	Host         string `env:"HOST,default=0.0.0.0"`
	ReadTimeout  int    `env:"READ_TIMEOUT,default=30"`  // seconds
	WriteTimeout int    `env:"WRITE_TIMEOUT,default=30"` // seconds
}

// DatabaseConfig holds PostgreSQL or SQLite configuration
type DatabaseConfig struct {
	Driver   string `env:"DRIVER,default=postgres"` // 'postgres' or 'sqlite'
	Host     string `env:"HOST,default=localhost"`
	Port     string `env:"PORT,default=5432"`
	User     string `env:"USER,default=postgres"`
	Password string `env:"PASSWORD,default=postgres"`
	Name     string `env:"NAME,default=gamecodebase"`
	SSLMode  string `env:"SSL_MODE,default=disable"`
	MaxConns int    `env:"MAX_CONNS,default=25"`
	MinConns int    `env:"MIN_CONNS,default=5"`
	Path     string `env:"PATH,default=gamecodebase.db"` // sqlite only
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	Debug       bool   `env:"DEBUG,default=false"`
}

// ExportConfig controls where and how the snapshot artifact is written
type ExportConfig struct {
	Path          string        `env:"PATH,default=GameCodeBase.json"`
	CatalogFile   string        `env:"CATALOG_FILE"`
	IncludeScores bool          `env:"INCLUDE_SCORES,default=false"`
	MinInterval   time.Duration `env:"MIN_INTERVAL,default=2s"` // pacing between pipeline runs
}

// GitConfig holds the version-controlled remote for the artifact
type GitConfig struct {
	Enabled      bool          `env:"ENABLED,default=false"`
	RepoDir      string        `env:"REPO_DIR,default=."`
	Remote       string        `env:"REMOTE,default=origin"`
	Branch       string        `env:"BRANCH"`
	Username     string        `env:"USERNAME"`
	Token        string        `env:"TOKEN"`
	AuthorName   string        `env:"AUTHOR_NAME,default=gamecodebase-bot"`
	AuthorEmail  string        `env:"AUTHOR_EMAIL,default=bot@gamecodebase.local"`
	CommitPrefix string        `env:"COMMIT_PREFIX,default=自动更新兑换码数据"`
	PushTimeout  time.Duration `env:"PUSH_TIMEOUT,default=30s"`
}

// S3Config holds the optional object storage mirror
type S3Config struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION,default=us-east-1"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
	Key             string `env:"KEY,default=GameCodeBase.json"`
	PathStyle       bool   `env:"PATH_STYLE,default=false"`
}

// RedisConfig selects the Redis event queue when URL is set
type RedisConfig struct {
	URL      string `env:"URL"`
	QueueKey string `env:"QUEUE_KEY,default=gamecodebase:pipeline:events"`
}

// ReviewConfig holds review and batch policy knobs
type ReviewConfig struct {
	AutoPublish          bool `env:"AUTO_PUBLISH,default=true"`
	InvalidAfterFailures int  `env:"INVALID_AFTER_FAILURES,default=3"`
	BatchDeleteLimit     int  `env:"BATCH_DELETE_LIMIT,default=20"`
}

// CrawlerConfig points at the external crawler feed
type CrawlerConfig struct {
	URL     string        `env:"URL"`
	Timeout time.Duration `env:"TIMEOUT,default=20s"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith loads configuration from the given lookuper
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Review.BatchDeleteLimit <= 0 {
		return fmt.Errorf("REVIEW_BATCH_DELETE_LIMIT must be positive")
	}
	if c.Review.InvalidAfterFailures <= 0 {
		return fmt.Errorf("REVIEW_INVALID_AFTER_FAILURES must be positive")
	}
	if c.Export.Path == "" {
		return fmt.Errorf("EXPORT_PATH is required")
	}
	return nil
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// GetDatabaseURL returns the data source name for the configured driver
func (c *DatabaseConfig) GetDatabaseURL() string {
	if c.Driver == DriverSQLite {
		return c.Path
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// GetServerAddr returns the server address
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDevelopment returns true if running in development environment
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// Enabled reports whether the S3 mirror is configured
func (c *S3Config) Enabled() bool {
	return c.Bucket != ""
}
