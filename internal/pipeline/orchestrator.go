// Package pipeline turns state changes into published snapshots.
//
// Mutations call Notify, which only enqueues an event. Run consumes the queue,
// coalesces bursts into a single run, paces runs with a rate limiter and
// serializes build+publish so commits land in order. RunOnce is the
// synchronous entry point for callers that need the publish result.
package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Jhoney47/GameCodeBase/internal/metrics"
	"github.com/Jhoney47/GameCodeBase/internal/publisher"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/snapshot"
)

// Notifier is implemented by anything that can schedule a snapshot rebuild
type Notifier interface {
	Notify(ctx context.Context, reason string)
}

// Orchestrator sequences snapshot build and publish
type Orchestrator struct {
	db        *sqlx.DB
	codeRepo  *repository.CodeRepository
	builder   *snapshot.Builder
	publisher publisher.Publisher
	queue     Queue
	limiter   *rate.Limiter
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewOrchestrator creates an orchestrator. minInterval is the minimum time
// between two queued runs; zero disables pacing.
func NewOrchestrator(db *sqlx.DB, builder *snapshot.Builder, pub publisher.Publisher, queue Queue, minInterval time.Duration, logger *zap.Logger) *Orchestrator {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &Orchestrator{
		db:        db,
		codeRepo:  repository.NewCodeRepository(),
		builder:   builder,
		publisher: pub,
		queue:     queue,
		limiter:   rate.NewLimiter(limit, 1),
		logger:    logger,
		now:       repository.Now,
	}
}

// Notify schedules a rebuild. It never fails the caller; a lost event only
// delays the artifact until the next one.
func (o *Orchestrator) Notify(ctx context.Context, reason string) {
	e := NewEvent(reason)
	if err := o.queue.Push(context.WithoutCancel(ctx), e); err != nil {
		o.logger.Warn("Failed to enqueue pipeline event",
			zap.String("eventId", e.ID),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return
	}
	o.logger.Debug("Pipeline event queued", zap.String("eventId", e.ID), zap.String("reason", reason))
}

// RunOnce builds the snapshot from the store and publishes it. A store
// failure aborts before anything is published.
func (o *Orchestrator) RunOnce(ctx context.Context, reason string) (*publisher.Result, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	start := time.Now()
	result := "failed"
	exported := 0
	defer func() {
		metrics.RecordPipelineRun(result, time.Since(start).Seconds(), exported)
	}()

	codes, err := o.codeRepo.ListCodes(ctx, o.db, repository.CodeFilter{})
	if err != nil {
		return nil, err
	}

	s := o.builder.Build(codes, o.now())
	res, err := o.publisher.Publish(ctx, s)
	if err != nil {
		return nil, err
	}

	exported = s.TotalCodes
	result = "published"
	if res.NoOp {
		result = "noop"
	}
	o.logger.Info("Pipeline run finished",
		zap.String("reason", reason),
		zap.Int("totalCodes", s.TotalCodes),
		zap.String("digest", res.Digest),
		zap.Bool("noOp", res.NoOp),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// Run consumes events until ctx is done. Failed runs are logged and dropped;
// the next event retries from fresh state.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("Pipeline worker started")
	defer o.logger.Info("Pipeline worker stopped")

	for {
		e, err := o.queue.Pop(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			o.logger.Error("Failed to read pipeline event", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		if err := o.limiter.Wait(ctx); err != nil {
			return nil
		}

		// Everything queued so far is covered by this run.
		coalesced, err := o.queue.Drain(ctx)
		if err != nil {
			o.logger.Warn("Failed to drain pipeline events", zap.Error(err))
		}

		o.logger.Debug("Running pipeline",
			zap.String("eventId", e.ID),
			zap.String("reason", e.Reason),
			zap.Int("coalesced", coalesced),
		)
		if _, err := o.RunOnce(ctx, e.Reason); err != nil {
			o.logger.Error("Pipeline run failed",
				zap.String("eventId", e.ID),
				zap.String("reason", e.Reason),
				zap.Error(err),
			)
		}
	}
}
