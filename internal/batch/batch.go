// Package batch applies bulk publish, unpublish and delete operations under
// a cardinality policy.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/metrics"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/review"
	"github.com/Jhoney47/GameCodeBase/internal/scoring"
)

// Operation is a bulk mutation
type Operation string

const (
	OpPublish   Operation = "publish"
	OpUnpublish Operation = "unpublish"
	OpDelete    Operation = "delete"
)

// DefaultDeleteLimit bounds how many codes a single delete may remove
const DefaultDeleteLimit = 20

// Valid reports whether op is a known operation
func (op Operation) Valid() bool {
	return op == OpPublish || op == OpUnpublish || op == OpDelete
}

func (op Operation) title() string {
	switch op {
	case OpPublish:
		return "批量上架兑换码"
	case OpUnpublish:
		return "批量下架兑换码"
	default:
		return "批量删除兑换码"
	}
}

// Result reports how a batch was applied. Skipped covers ids that do not
// exist and ids the operation does not apply to.
type Result struct {
	Succeeded          int     `json:"succeeded"`
	Skipped            int     `json:"skipped"`
	SkippedIDs         []int64 `json:"skippedIds"`
	EligibilityChanged bool    `json:"eligibilityChanged"`
}

// Guard validates and applies batch operations in a single transaction
type Guard struct {
	db          *sqlx.DB
	codeRepo    *repository.CodeRepository
	logRepo     *repository.UpdateLogRepository
	machine     *review.Machine
	scorer      *scoring.Engine
	deleteLimit int
	logger      *zap.Logger
	now         func() time.Time
}

// NewGuard creates a batch guard. A non-positive deleteLimit falls back to DefaultDeleteLimit.
func NewGuard(db *sqlx.DB, machine *review.Machine, scorer *scoring.Engine, deleteLimit int, logger *zap.Logger) *Guard {
	if deleteLimit <= 0 {
		deleteLimit = DefaultDeleteLimit
	}
	return &Guard{
		db:          db,
		codeRepo:    repository.NewCodeRepository(),
		logRepo:     repository.NewUpdateLogRepository(),
		machine:     machine,
		scorer:      scorer,
		deleteLimit: deleteLimit,
		logger:      logger,
		now:         repository.Now,
	}
}

// Validate checks the request shape and policy ceiling and returns the
// deduplicated ids in request order. Ids that cannot exist, such as zero,
// are kept and skipped by Apply like any other missing id.
func (g *Guard) Validate(ids []int64, op Operation) ([]int64, error) {
	if !op.Valid() {
		return nil, apperr.Validation("unknown batch operation %q", op)
	}
	if len(ids) == 0 {
		return nil, apperr.Validation("no code ids given")
	}

	seen := make(map[int64]struct{}, len(ids))
	unique := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	if op == OpDelete && len(unique) > g.deleteLimit {
		return nil, apperr.Validation("a batch may delete at most %d codes, got %d", g.deleteLimit, len(unique))
	}

	return unique, nil
}

// Apply validates the request and applies op to every id. Nothing is
// touched when validation fails. One update log is written per call.
func (g *Guard) Apply(ctx context.Context, ids []int64, op Operation) (*Result, error) {
	unique, err := g.Validate(ids, op)
	if err != nil {
		metrics.RecordBatchOperation(string(op), "rejected")
		return nil, err
	}

	result, err := g.apply(ctx, unique, op)
	if err != nil {
		metrics.RecordBatchOperation(string(op), "failed")
		return nil, err
	}

	metrics.RecordBatchOperation(string(op), "applied")
	g.logger.Info("Batch operation applied",
		zap.String("operation", string(op)),
		zap.Int("requested", len(unique)),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

func (g *Guard) apply(ctx context.Context, ids []int64, op Operation) (*Result, error) {
	// Start transaction
	tx, err := g.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, apperr.Persistence("failed to begin transaction", err)
	}
	defer tx.Rollback()

	result := &Result{SkippedIDs: []int64{}}
	now := g.now()

	for _, id := range ids {
		applied, changed, err := g.applyOne(ctx, tx, id, op, now)
		if err != nil {
			return nil, fmt.Errorf("failed to %s code %d: %w", op, id, err)
		}
		if !applied {
			result.Skipped++
			result.SkippedIDs = append(result.SkippedIDs, id)
			continue
		}
		result.Succeeded++
		if changed {
			result.EligibilityChanged = true
		}
	}

	// affectedCount records the requested count, not the applied one
	if err := g.logRepo.CreateLog(ctx, tx, &model.UpdateLog{
		Title:         op.title(),
		Description:   fmt.Sprintf("批量操作影响 %d 个兑换码", len(ids)),
		OperationType: model.OpBatch,
		AffectedCount: len(ids),
	}); err != nil {
		return nil, err
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return nil, apperr.Persistence("failed to commit transaction", err)
	}

	return result, nil
}

func (g *Guard) applyOne(ctx context.Context, tx *sqlx.Tx, id int64, op Operation, now time.Time) (applied, changed bool, err error) {
	if id <= 0 {
		return false, false, nil
	}
	c, err := g.codeRepo.GetCodeForUpdate(ctx, tx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}

	if op == OpDelete {
		deleted, err := g.codeRepo.DeleteCode(ctx, tx, id)
		if err != nil {
			return false, false, err
		}
		return deleted, deleted && c.Eligible(), nil
	}

	change, err := g.machine.SetPublished(c, op == OpPublish, now)
	if errors.Is(err, apperr.ErrValidation) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	if !change.EligibilityChanged {
		return true, false, nil
	}

	g.scorer.Annotate(c, now)
	if err := g.codeRepo.UpdateCode(ctx, tx, c); err != nil {
		return false, false, err
	}
	return true, true, nil
}
