package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Jhoney47/GameCodeBase/internal/adminv1"
	"github.com/Jhoney47/GameCodeBase/internal/catalog"
	"github.com/Jhoney47/GameCodeBase/internal/config"
	"github.com/Jhoney47/GameCodeBase/internal/database"
	"github.com/Jhoney47/GameCodeBase/internal/ingest"
	"github.com/Jhoney47/GameCodeBase/internal/logger"
	"github.com/Jhoney47/GameCodeBase/internal/pipeline"
	"github.com/Jhoney47/GameCodeBase/internal/publisher"
	"github.com/Jhoney47/GameCodeBase/internal/service"
	"github.com/Jhoney47/GameCodeBase/internal/snapshot"
)

func main() {
	ctx := context.Background()

	// Load configuration from environment variables
	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.App)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting GameCodeBase", zap.String("environment", cfg.App.Environment))

	cat, err := catalog.Load(cfg.Export.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load catalog", zap.Error(err))
	}

	// Initialize database connections
	db, err := database.NewDB(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connections", zap.Error(err))
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		log.Fatal("Failed to migrate database", zap.Error(err))
	}

	pub, err := newPublisher(cfg, log)
	if err != nil {
		log.Fatal("Failed to configure publisher", zap.Error(err))
	}

	queue, err := newQueue(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to configure event queue", zap.Error(err))
	}

	orchestrator := pipeline.NewOrchestrator(
		db.Conn,
		snapshot.NewBuilder(cat.PredefinedGames, cfg.Export.IncludeScores),
		pub,
		queue,
		cfg.Export.MinInterval,
		log,
	)

	runCtx, stopPipeline := context.WithCancel(ctx)
	pipelineDone := make(chan struct{})
	go func() {
		defer close(pipelineDone)
		if err := orchestrator.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Pipeline stopped", zap.Error(err))
		}
	}()
	// Bring the artifact in line with the store on startup.
	orchestrator.Notify(ctx, "startup")

	var source ingest.Source
	if cfg.Crawler.URL != "" {
		source = ingest.NewHTTPSource(cfg.Crawler)
	}

	adminServer := service.NewAdminServer(db.Conn, cat, cfg.Review, orchestrator, source, log)

	// Create HTTP mux
	mux := http.NewServeMux()

	// Register admin service handler
	path, handler := adminv1.NewAdminServiceHandler(
		adminServer,
		connect.WithInterceptors(service.NewObservabilityInterceptor(log)),
	)
	mux.Handle(path, handler)

	// Add health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		hostname, _ := os.Hostname()
		w.WriteHeader(http.StatusOK)
		response := fmt.Sprintf(`{"status":"ok","service":"gamecodebase","hostname":"%s"}`, hostname)
		w.Write([]byte(response))
	})

	// Add database health check endpoint
	mux.HandleFunc("/health/db", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Conn.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"error","message":"database unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(fmt.Sprintf(`{"status":"ok","%s":"connected"}`, cfg.Database.Driver)))
	})

	// Add Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:           cfg.Server.GetServerAddr(),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
		// Use h2c so we can serve HTTP/2 without TLS
		Handler: h2c.NewHandler(mux, &http2.Server{}),
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting admin service", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	stopPipeline()
	<-pipelineDone
	if closer, ok := queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Error closing event queue", zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// newPublisher writes the artifact locally and mirrors it to the configured
// remotes.
func newPublisher(cfg *config.Config, log *zap.Logger) (*publisher.FilePublisher, error) {
	opts := []publisher.Option{publisher.WithPushTimeout(cfg.Git.PushTimeout)}

	if cfg.Git.Enabled {
		opts = append(opts, publisher.WithRemote(publisher.NewGitRemote(cfg.Git)))
		log.Info("Git remote enabled", zap.String("repo", cfg.Git.RepoDir), zap.String("remote", cfg.Git.Remote))
	}
	if cfg.S3.Enabled() {
		s3Remote, err := publisher.NewS3Remote(cfg.S3)
		if err != nil {
			return nil, err
		}
		opts = append(opts, publisher.WithRemote(s3Remote))
		log.Info("S3 mirror enabled", zap.String("bucket", cfg.S3.Bucket), zap.String("key", cfg.S3.Key))
	}

	return publisher.NewFilePublisher(cfg.Export.Path, log, opts...), nil
}

func newQueue(ctx context.Context, cfg *config.Config, log *zap.Logger) (pipeline.Queue, error) {
	if cfg.Redis.URL == "" {
		return pipeline.NewMemoryQueue(), nil
	}
	q, err := pipeline.ConnectRedisQueue(ctx, cfg.Redis.URL, cfg.Redis.QueueKey)
	if err != nil {
		return nil, err
	}
	log.Info("Using Redis event queue", zap.String("key", cfg.Redis.QueueKey))
	return q, nil
}
