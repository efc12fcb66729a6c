package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Jhoney47/GameCodeBase/internal/adminv1"
	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/batch"
	"github.com/Jhoney47/GameCodeBase/internal/catalog"
	"github.com/Jhoney47/GameCodeBase/internal/config"
	"github.com/Jhoney47/GameCodeBase/internal/ingest"
	"github.com/Jhoney47/GameCodeBase/internal/metrics"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/pipeline"
	"github.com/Jhoney47/GameCodeBase/internal/publisher"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/review"
	"github.com/Jhoney47/GameCodeBase/internal/scoring"
)

const (
	defaultLogLimit      = 20
	defaultCrawlLogLimit = 10
	maxLogLimit          = 100
	maxListLimit         = 1000
)

// Pipeline schedules and runs snapshot publishes
type Pipeline interface {
	pipeline.Notifier
	RunOnce(ctx context.Context, reason string) (*publisher.Result, error)
}

// AdminServer implements the admin service
type AdminServer struct {
	db       *sqlx.DB
	codeRepo *repository.CodeRepository
	logRepo  *repository.UpdateLogRepository
	taskRepo *repository.TaskRepository
	crawlLog *repository.CrawlLogRepository
	machine  *review.Machine
	guard    *batch.Guard
	ingester *ingest.Ingester
	scorer   *scoring.Engine
	pipeline Pipeline
	source   ingest.Source
	logger   *zap.Logger
	now      func() time.Time
}

// NewAdminServer creates a new AdminServer instance. source may be nil when
// no crawler feed is configured.
func NewAdminServer(db *sqlx.DB, cat *catalog.Catalog, policy config.ReviewConfig, pipe Pipeline, source ingest.Source, logger *zap.Logger) *AdminServer {
	scorer := scoring.NewEngine(cat)
	machine := review.NewMachine(review.Policy{
		AutoPublish:          policy.AutoPublish,
		InvalidAfterFailures: policy.InvalidAfterFailures,
	})

	return &AdminServer{
		db:       db,
		codeRepo: repository.NewCodeRepository(),
		logRepo:  repository.NewUpdateLogRepository(),
		taskRepo: repository.NewTaskRepository(),
		crawlLog: repository.NewCrawlLogRepository(),
		machine:  machine,
		guard:    batch.NewGuard(db, machine, scorer, policy.BatchDeleteLimit, logger),
		ingester: ingest.NewIngester(db, scorer, logger),
		scorer:   scorer,
		pipeline: pipe,
		source:   source,
		logger:   logger,
		now:      repository.Now,
	}
}

// codeMutation changes c in memory and optionally returns an audit entry
type codeMutation func(c *model.RedemptionCode, now time.Time) (review.Change, *model.UpdateLog, error)

// mutateCode locks a code, applies fn, rescores and persists it together
// with the audit entry in one transaction.
func (s *AdminServer) mutateCode(ctx context.Context, id int64, fn codeMutation) (*model.RedemptionCode, review.Change, error) {
	// Start transaction
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, review.Change{}, apperr.Persistence("failed to begin transaction", err)
	}
	defer tx.Rollback()

	c, err := s.codeRepo.GetCodeForUpdate(ctx, tx, id)
	if err != nil {
		return nil, review.Change{}, err
	}

	now := s.now()
	change, entry, err := fn(c, now)
	if err != nil {
		return nil, review.Change{}, err
	}

	s.scorer.Annotate(c, now)
	if err := s.codeRepo.UpdateCode(ctx, tx, c); err != nil {
		return nil, review.Change{}, err
	}
	if entry != nil {
		if err := s.logRepo.CreateLog(ctx, tx, entry); err != nil {
			return nil, review.Change{}, err
		}
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return nil, review.Change{}, apperr.Persistence("failed to commit transaction", err)
	}
	return c, change, nil
}

// ReviewCode approves or rejects a pending code
func (s *AdminServer) ReviewCode(
	ctx context.Context,
	req *connect.Request[adminv1.ReviewCodeRequest],
) (*connect.Response[adminv1.CodeResponse], error) {
	action := review.Action(req.Msg.Action)

	c, _, err := s.mutateCode(ctx, req.Msg.CodeID, func(c *model.RedemptionCode, now time.Time) (review.Change, *model.UpdateLog, error) {
		change, err := s.machine.Review(c, action, req.Msg.ReviewNote, now)
		if err != nil {
			return change, nil, err
		}
		title, verb := "审核拒绝兑换码", "已被拒绝"
		if action == review.ActionApprove {
			title, verb = "审核通过兑换码", "已通过审核"
		}
		return change, &model.UpdateLog{
			Title:         title,
			Description:   fmt.Sprintf("兑换码 ID: %d %s", c.ID, verb),
			OperationType: model.OpEdit,
			AffectedCount: 1,
		}, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	metrics.RecordReviewTransition(string(action))
	// Rejected codes are never exported, so only approval rebuilds.
	if action == review.ActionApprove {
		s.pipeline.Notify(ctx, "review approved")
	}

	return connect.NewResponse(&adminv1.CodeResponse{Code: c}), nil
}

// SetPublished toggles the publish flag of an approved code
func (s *AdminServer) SetPublished(
	ctx context.Context,
	req *connect.Request[adminv1.SetPublishedRequest],
) (*connect.Response[adminv1.CodeResponse], error) {
	published := req.Msg.IsPublished

	c, _, err := s.mutateCode(ctx, req.Msg.CodeID, func(c *model.RedemptionCode, now time.Time) (review.Change, *model.UpdateLog, error) {
		change, err := s.machine.SetPublished(c, published, now)
		if err != nil {
			return change, nil, err
		}
		entry := &model.UpdateLog{
			Title:         "下架兑换码",
			Description:   fmt.Sprintf("兑换码 ID: %d 已下架", c.ID),
			OperationType: model.OpUnpublish,
			AffectedCount: 1,
		}
		if published {
			entry.Title = "上架兑换码"
			entry.Description = fmt.Sprintf("兑换码 ID: %d 已上架", c.ID)
			entry.OperationType = model.OpPublish
		}
		return change, entry, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	action := "unpublish"
	if published {
		action = "publish"
	}
	metrics.RecordReviewTransition(action)
	s.pipeline.Notify(ctx, action)

	return connect.NewResponse(&adminv1.CodeResponse{Code: c}), nil
}

// DeleteCode removes a code from the store and from future snapshots
func (s *AdminServer) DeleteCode(
	ctx context.Context,
	req *connect.Request[adminv1.DeleteCodeRequest],
) (*connect.Response[adminv1.DeleteCodeResponse], error) {
	// Start transaction
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, toConnectError(apperr.Persistence("failed to begin transaction", err))
	}
	defer tx.Rollback()

	deleted, err := s.codeRepo.DeleteCode(ctx, tx, req.Msg.CodeID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !deleted {
		return nil, toConnectError(apperr.NotFound("code %d not found", req.Msg.CodeID))
	}

	if err := s.logRepo.CreateLog(ctx, tx, &model.UpdateLog{
		Title:         "删除兑换码",
		Description:   fmt.Sprintf("兑换码 ID: %d 已删除", req.Msg.CodeID),
		OperationType: model.OpDelete,
		AffectedCount: 1,
	}); err != nil {
		return nil, toConnectError(err)
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return nil, toConnectError(apperr.Persistence("failed to commit transaction", err))
	}

	s.pipeline.Notify(ctx, "delete")
	return connect.NewResponse(&adminv1.DeleteCodeResponse{Deleted: true}), nil
}

// MarkInvalid flags a code as no longer redeemable
func (s *AdminServer) MarkInvalid(
	ctx context.Context,
	req *connect.Request[adminv1.MarkInvalidRequest],
) (*connect.Response[adminv1.CodeResponse], error) {
	c, change, err := s.mutateCode(ctx, req.Msg.CodeID, func(c *model.RedemptionCode, now time.Time) (review.Change, *model.UpdateLog, error) {
		description := fmt.Sprintf("兑换码 ID: %d 已标记失效", c.ID)
		if req.Msg.Reason != "" {
			description += ": " + req.Msg.Reason
		}
		return s.machine.MarkInvalid(c), &model.UpdateLog{
			Title:         "标记兑换码失效",
			Description:   description,
			OperationType: model.OpEdit,
			AffectedCount: 1,
		}, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	metrics.RecordReviewTransition("mark_invalid")
	if change.EligibilityChanged {
		s.pipeline.Notify(ctx, "mark invalid")
	}
	return connect.NewResponse(&adminv1.CodeResponse{Code: c}), nil
}

// Reactivate restores an invalid code
func (s *AdminServer) Reactivate(
	ctx context.Context,
	req *connect.Request[adminv1.ReactivateRequest],
) (*connect.Response[adminv1.CodeResponse], error) {
	c, change, err := s.mutateCode(ctx, req.Msg.CodeID, func(c *model.RedemptionCode, now time.Time) (review.Change, *model.UpdateLog, error) {
		change, err := s.machine.Reactivate(c)
		if err != nil {
			return change, nil, err
		}
		return change, &model.UpdateLog{
			Title:         "恢复兑换码",
			Description:   fmt.Sprintf("兑换码 ID: %d 已恢复有效", c.ID),
			OperationType: model.OpEdit,
			AffectedCount: 1,
		}, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	metrics.RecordReviewTransition("reactivate")
	if change.EligibilityChanged {
		s.pipeline.Notify(ctx, "reactivate")
	}
	return connect.NewResponse(&adminv1.CodeResponse{Code: c}), nil
}

// SubmitFeedback records whether a user could redeem a code
func (s *AdminServer) SubmitFeedback(
	ctx context.Context,
	req *connect.Request[adminv1.SubmitFeedbackRequest],
) (*connect.Response[adminv1.CodeResponse], error) {
	var verifiedBefore int
	c, change, err := s.mutateCode(ctx, req.Msg.CodeID, func(c *model.RedemptionCode, now time.Time) (review.Change, *model.UpdateLog, error) {
		verifiedBefore = c.VerificationCount
		return s.machine.Feedback(c, req.Msg.Success), nil, nil
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	switch {
	case change.EligibilityChanged:
		metrics.RecordReviewTransition("feedback_downgrade")
		s.pipeline.Notify(ctx, "feedback downgrade")
	case c.Eligible() && c.VerificationCount != verifiedBefore:
		// verificationCount is part of the exported record
		s.pipeline.Notify(ctx, "feedback")
	}
	return connect.NewResponse(&adminv1.CodeResponse{Code: c}), nil
}

// BatchOperation applies publish, unpublish or delete to many codes
func (s *AdminServer) BatchOperation(
	ctx context.Context,
	req *connect.Request[adminv1.BatchOperationRequest],
) (*connect.Response[adminv1.BatchOperationResponse], error) {
	result, err := s.guard.Apply(ctx, req.Msg.CodeIDs, batch.Operation(req.Msg.Operation))
	if err != nil {
		return nil, toConnectError(err)
	}

	// One rebuild for the whole batch.
	if result.EligibilityChanged {
		s.pipeline.Notify(ctx, "batch "+req.Msg.Operation)
	}

	return connect.NewResponse(&adminv1.BatchOperationResponse{
		Succeeded:  result.Succeeded,
		Skipped:    result.Skipped,
		SkippedIDs: result.SkippedIDs,
	}), nil
}

// SubmitCode stores a user submitted code as pending. A duplicate returns
// the record already stored under the same game and code.
func (s *AdminServer) SubmitCode(
	ctx context.Context,
	req *connect.Request[adminv1.SubmitCodeRequest],
) (*connect.Response[adminv1.SubmitCodeResponse], error) {
	result, err := s.ingester.Ingest(ctx, []model.CandidateCode{req.Msg.Candidate}, ingest.SourceUserSubmission)
	if err != nil {
		return nil, toConnectError(err)
	}
	if result.Invalid > 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New(result.Rejected[0]))
	}
	if result.Created == 0 {
		existing, err := s.codeRepo.FindByKey(ctx, s.db,
			strings.TrimSpace(req.Msg.Candidate.GameName), strings.TrimSpace(req.Msg.Candidate.Code))
		if err != nil {
			return nil, toConnectError(err)
		}
		return connect.NewResponse(&adminv1.SubmitCodeResponse{Code: existing, Duplicate: true}), nil
	}

	c, err := s.codeRepo.GetCode(ctx, s.db, result.CreatedIDs[0])
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.SubmitCodeResponse{Code: c}), nil
}

// IngestCandidates stores crawler candidates as pending
func (s *AdminServer) IngestCandidates(
	ctx context.Context,
	req *connect.Request[adminv1.IngestCandidatesRequest],
) (*connect.Response[adminv1.IngestResponse], error) {
	source := req.Msg.Source
	if source == "" {
		source = "crawler"
	}

	result, err := s.ingester.Ingest(ctx, req.Msg.Candidates, source)
	if err != nil {
		return nil, toConnectError(err)
	}
	if result.Created > 0 {
		s.pipeline.Notify(ctx, "crawl ingest")
	}
	return connect.NewResponse(&adminv1.IngestResponse{Result: result}), nil
}

// ImportSnapshot loads codes from an existing export document
func (s *AdminServer) ImportSnapshot(
	ctx context.Context,
	req *connect.Request[adminv1.ImportSnapshotRequest],
) (*connect.Response[adminv1.IngestResponse], error) {
	if doc := bytes.TrimSpace(req.Msg.Document); len(doc) == 0 || bytes.Equal(doc, []byte("null")) {
		return nil, toConnectError(apperr.Validation("document is required"))
	}

	result, err := s.ingester.ImportLegacy(ctx, req.Msg.Document)
	if err != nil {
		return nil, toConnectError(err)
	}
	if result.Created > 0 {
		s.pipeline.Notify(ctx, "legacy import")
	}
	return connect.NewResponse(&adminv1.IngestResponse{Result: result}), nil
}

// GetCode returns a code with a freshly computed score breakdown
func (s *AdminServer) GetCode(
	ctx context.Context,
	req *connect.Request[adminv1.GetCodeRequest],
) (*connect.Response[adminv1.GetCodeResponse], error) {
	c, err := s.codeRepo.GetCode(ctx, s.db, req.Msg.CodeID)
	if err != nil {
		return nil, toConnectError(err)
	}

	score := s.scorer.Score(c, s.now())
	breakdown := make(map[string]int, len(score.Breakdown))
	for f, v := range score.Breakdown {
		breakdown[string(f)] = v
	}

	return connect.NewResponse(&adminv1.GetCodeResponse{
		Code:      c,
		Score:     score.Score,
		Breakdown: breakdown,
	}), nil
}

// ListCodes lists codes, optionally by game and review status
func (s *AdminServer) ListCodes(
	ctx context.Context,
	req *connect.Request[adminv1.ListCodesRequest],
) (*connect.Response[adminv1.ListCodesResponse], error) {
	filter := repository.CodeFilter{
		GameName:     req.Msg.GameName,
		ReviewStatus: model.ReviewStatus(req.Msg.ReviewStatus),
		Limit:        req.Msg.Limit,
	}
	if filter.ReviewStatus != "" && !filter.ReviewStatus.Valid() {
		return nil, toConnectError(apperr.Validation("unknown review status %q", req.Msg.ReviewStatus))
	}
	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, toConnectError(apperr.Validation("limit must be between 0 and %d", maxListLimit))
	}

	codes, err := s.codeRepo.ListCodes(ctx, s.db, filter)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.ListCodesResponse{Codes: codes}), nil
}

// ListPending lists codes awaiting review
func (s *AdminServer) ListPending(
	ctx context.Context,
	req *connect.Request[adminv1.ListPendingRequest],
) (*connect.Response[adminv1.ListCodesResponse], error) {
	codes, err := s.codeRepo.ListCodes(ctx, s.db, repository.CodeFilter{ReviewStatus: model.ReviewPending})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.ListCodesResponse{Codes: codes}), nil
}

// ListUpdateLogs returns the newest audit entries
func (s *AdminServer) ListUpdateLogs(
	ctx context.Context,
	req *connect.Request[adminv1.ListUpdateLogsRequest],
) (*connect.Response[adminv1.ListUpdateLogsResponse], error) {
	limit := req.Msg.Limit
	if limit == 0 {
		limit = defaultLogLimit
	}
	if limit < 1 || limit > maxLogLimit {
		return nil, toConnectError(apperr.Validation("limit must be between 1 and %d", maxLogLimit))
	}

	logs, err := s.logRepo.ListLogs(ctx, s.db, limit)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.ListUpdateLogsResponse{Logs: logs}), nil
}

// GetStats summarizes the store
func (s *AdminServer) GetStats(
	ctx context.Context,
	req *connect.Request[adminv1.GetStatsRequest],
) (*connect.Response[adminv1.GetStatsResponse], error) {
	stats, err := s.codeRepo.GetStats(ctx, s.db)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.GetStatsResponse{Stats: stats}), nil
}

// PublishNow builds and publishes the snapshot and waits for the result
func (s *AdminServer) PublishNow(
	ctx context.Context,
	req *connect.Request[adminv1.PublishNowRequest],
) (*connect.Response[adminv1.PublishNowResponse], error) {
	result, err := s.pipeline.RunOnce(ctx, "publish now")
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.PublishNowResponse{Result: result}), nil
}

// Rescore recomputes stored scores, which drift as codes age
func (s *AdminServer) Rescore(
	ctx context.Context,
	req *connect.Request[adminv1.RescoreRequest],
) (*connect.Response[adminv1.RescoreResponse], error) {
	// Start transaction
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, toConnectError(apperr.Persistence("failed to begin transaction", err))
	}
	defer tx.Rollback()

	codes, err := s.codeRepo.ListCodes(ctx, tx, repository.CodeFilter{})
	if err != nil {
		return nil, toConnectError(err)
	}

	now := s.now()
	res := &adminv1.RescoreResponse{Scanned: len(codes)}
	eligibleChanged := false
	for i := range codes {
		c := &codes[i]
		before := c.CredibilityScore
		s.scorer.Annotate(c, now)
		if c.CredibilityScore == before {
			continue
		}
		if err := s.codeRepo.UpdateCode(ctx, tx, c); err != nil {
			return nil, toConnectError(err)
		}
		res.Updated++
		if c.Eligible() {
			eligibleChanged = true
		}
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return nil, toConnectError(apperr.Persistence("failed to commit transaction", err))
	}

	s.logger.Info("Scores recomputed", zap.Int("scanned", res.Scanned), zap.Int("updated", res.Updated))
	// Exported order follows the stored score.
	if eligibleChanged {
		s.pipeline.Notify(ctx, "rescore")
	}
	return connect.NewResponse(res), nil
}
