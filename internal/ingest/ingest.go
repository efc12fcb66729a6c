// Package ingest turns candidate codes from crawlers, user submissions and
// legacy snapshots into pending records.
package ingest

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/metrics"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/scoring"
)

const (
	// SourceUserSubmission is the platform recorded for user submitted codes
	SourceUserSubmission = "用户提交"

	maxCodeLength = 128
	maxGameLength = 255
)

// Result counts what happened to each candidate
type Result struct {
	Created    int      `json:"created"`
	Duplicates int      `json:"duplicates"`
	Invalid    int      `json:"invalid"`
	CreatedIDs []int64  `json:"createdIds"`
	Rejected   []string `json:"rejected,omitempty"`
}

// Ingester creates records for new candidates, skipping ones already stored
type Ingester struct {
	db       *sqlx.DB
	codeRepo *repository.CodeRepository
	scorer   *scoring.Engine
	logger   *zap.Logger
	now      func() time.Time
}

// NewIngester creates an ingester
func NewIngester(db *sqlx.DB, scorer *scoring.Engine, logger *zap.Logger) *Ingester {
	return &Ingester{
		db:       db,
		codeRepo: repository.NewCodeRepository(),
		scorer:   scorer,
		logger:   logger,
		now:      repository.Now,
	}
}

// Ingest validates candidates and stores the new ones as pending. Candidates
// without a source platform get defaultSource. A store failure aborts the
// whole call and nothing is created.
func (i *Ingester) Ingest(ctx context.Context, candidates []model.CandidateCode, defaultSource string) (*Result, error) {
	result := &Result{CreatedIDs: []int64{}}
	now := i.now()

	records := make([]model.RedemptionCode, 0, len(candidates))
	for _, cand := range candidates {
		c, err := normalize(cand, defaultSource)
		if err != nil {
			result.Invalid++
			result.Rejected = append(result.Rejected, err.Error())
			continue
		}
		c.Status = model.StatusActive
		c.ReviewStatus = model.ReviewPending
		records = append(records, c)
	}

	if err := i.store(ctx, records, now, result); err != nil {
		return nil, err
	}

	i.record(result)
	return result, nil
}

// store creates records in one transaction, counting duplicates. Records are
// deduplicated within the batch as well as against the store.
func (i *Ingester) store(ctx context.Context, records []model.RedemptionCode, now time.Time, result *Result) error {
	if len(records) == 0 {
		return nil
	}

	// Start transaction
	tx, err := i.db.BeginTxx(ctx, nil)
	if err != nil {
		return apperr.Persistence("failed to begin transaction", err)
	}
	defer tx.Rollback()

	seen := make(map[string]struct{}, len(records))
	for idx := range records {
		c := &records[idx]
		key := c.GameName + "\x00" + c.Code
		if _, ok := seen[key]; ok {
			result.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		i.scorer.Annotate(c, now)
		created, err := i.codeRepo.Create(ctx, tx, c)
		if err != nil {
			return err
		}
		if !created {
			result.Duplicates++
			continue
		}
		result.Created++
		result.CreatedIDs = append(result.CreatedIDs, c.ID)
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return apperr.Persistence("failed to commit transaction", err)
	}
	return nil
}

func (i *Ingester) record(result *Result) {
	metrics.RecordIngested("created", result.Created)
	metrics.RecordIngested("duplicate", result.Duplicates)
	metrics.RecordIngested("invalid", result.Invalid)

	i.logger.Info("Candidates ingested",
		zap.Int("created", result.Created),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("invalid", result.Invalid),
	)
}

// normalize trims a candidate and checks its shape
func normalize(cand model.CandidateCode, defaultSource string) (model.RedemptionCode, error) {
	game := strings.TrimSpace(cand.GameName)
	code := strings.TrimSpace(cand.Code)
	switch {
	case game == "":
		return model.RedemptionCode{}, apperr.Validation("candidate %q has no game name", code)
	case code == "":
		return model.RedemptionCode{}, apperr.Validation("candidate for %s has no code", game)
	case utf8.RuneCountInString(code) > maxCodeLength:
		return model.RedemptionCode{}, apperr.Validation("code for %s is longer than %d characters", game, maxCodeLength)
	case utf8.RuneCountInString(game) > maxGameLength:
		return model.RedemptionCode{}, apperr.Validation("game name is longer than %d characters", maxGameLength)
	}

	codeType := cand.CodeType
	if codeType == "" {
		codeType = model.CodePermanent
	}
	if !codeType.Valid() {
		return model.RedemptionCode{}, apperr.Validation("code %s/%s has unknown type %q", game, code, codeType)
	}

	source := strings.TrimSpace(cand.SourcePlatform)
	if source == "" {
		source = defaultSource
	}

	c := model.RedemptionCode{
		GameName:          game,
		Code:              code,
		RewardDescription: strings.TrimSpace(cand.RewardDescription),
		SourcePlatform:    source,
		CodeType:          codeType,
	}
	if url := strings.TrimSpace(cand.SourceURL); url != "" {
		c.SourceURL = &url
	}
	if cand.ExpireDate != nil && !cand.ExpireDate.IsZero() {
		expire := cand.ExpireDate.UTC()
		c.ExpireDate = &expire
	}
	return c, nil
}
