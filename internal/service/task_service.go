package service

import (
	"context"
	"errors"
	"strings"

	"connectrpc.com/connect"
	"go.uber.org/zap"

	"github.com/Jhoney47/GameCodeBase/internal/adminv1"
	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

// ListTasks lists scheduled tasks
func (s *AdminServer) ListTasks(
	ctx context.Context,
	req *connect.Request[adminv1.ListTasksRequest],
) (*connect.Response[adminv1.ListTasksResponse], error) {
	tasks, err := s.taskRepo.ListTasks(ctx, s.db)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.ListTasksResponse{Tasks: tasks}), nil
}

// CreateTask registers a crawl trigger. The cron expression is stored for
// the external scheduler and only checked for its five-field shape.
func (s *AdminServer) CreateTask(
	ctx context.Context,
	req *connect.Request[adminv1.CreateTaskRequest],
) (*connect.Response[adminv1.TaskResponse], error) {
	task, err := newTask(req.Msg)
	if err != nil {
		return nil, toConnectError(err)
	}

	if err := s.taskRepo.CreateTask(ctx, s.db, task); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.TaskResponse{Task: task}), nil
}

func newTask(msg *adminv1.CreateTaskRequest) (*model.ScheduledTask, error) {
	name := strings.TrimSpace(msg.Name)
	if name == "" {
		return nil, apperr.Validation("task name is required")
	}
	cron := strings.Join(strings.Fields(msg.CronExpression), " ")
	if len(strings.Fields(cron)) != 5 {
		return nil, apperr.Validation("cron expression %q must have 5 fields", msg.CronExpression)
	}

	taskType := model.TaskType(msg.TaskType)
	if taskType == "" {
		taskType = model.TaskCrawlAll
	}
	if !taskType.Valid() {
		return nil, apperr.Validation("unknown task type %q", msg.TaskType)
	}

	task := &model.ScheduledTask{
		Name:           name,
		CronExpression: cron,
		TaskType:       taskType,
		IsEnabled:      true,
	}
	if d := strings.TrimSpace(msg.Description); d != "" {
		task.Description = &d
	}
	if g := strings.TrimSpace(msg.GameName); g != "" {
		task.GameName = &g
	}
	if taskType == model.TaskCrawlGame && task.GameName == nil {
		return nil, apperr.Validation("crawl_game tasks need a game name")
	}
	return task, nil
}

// SetTaskEnabled enables or disables a task
func (s *AdminServer) SetTaskEnabled(
	ctx context.Context,
	req *connect.Request[adminv1.SetTaskEnabledRequest],
) (*connect.Response[adminv1.TaskResponse], error) {
	if err := s.taskRepo.SetEnabled(ctx, s.db, req.Msg.TaskID, req.Msg.IsEnabled); err != nil {
		return nil, toConnectError(err)
	}
	task, err := s.taskRepo.GetTask(ctx, s.db, req.Msg.TaskID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.TaskResponse{Task: task}), nil
}

// DeleteTask removes a task
func (s *AdminServer) DeleteTask(
	ctx context.Context,
	req *connect.Request[adminv1.DeleteTaskRequest],
) (*connect.Response[adminv1.DeleteTaskResponse], error) {
	if err := s.taskRepo.DeleteTask(ctx, s.db, req.Msg.TaskID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.DeleteTaskResponse{}), nil
}

// TriggerTask runs a task's crawl now and ingests the result. The external
// scheduler calls this when a cron expression fires.
func (s *AdminServer) TriggerTask(
	ctx context.Context,
	req *connect.Request[adminv1.TriggerTaskRequest],
) (*connect.Response[adminv1.TriggerTaskResponse], error) {
	if s.source == nil {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("crawler feed is not configured"))
	}

	task, err := s.taskRepo.GetTask(ctx, s.db, req.Msg.TaskID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if !task.IsEnabled {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("task is disabled"))
	}

	gameName := ""
	if task.TaskType == model.TaskCrawlGame && task.GameName != nil {
		gameName = *task.GameName
	}

	entry := &model.CrawlLog{TaskID: &task.ID, TaskName: task.Name}
	if gameName != "" {
		entry.GameName = &gameName
	}

	candidates, err := s.source.Fetch(ctx, gameName)
	if err != nil {
		s.logger.Warn("Crawler fetch failed", zap.Int64("taskId", task.ID), zap.String("game", gameName), zap.Error(err))
		s.recordCrawl(ctx, entry, err)
		return nil, connect.NewError(connect.CodeUnavailable, err)
	}
	entry.Fetched = len(candidates)

	result, err := s.ingester.Ingest(ctx, candidates, "crawler")
	if err != nil {
		s.recordCrawl(ctx, entry, err)
		return nil, toConnectError(err)
	}
	entry.Created = result.Created
	entry.Duplicates = result.Duplicates
	entry.Invalid = result.Invalid
	s.recordCrawl(ctx, entry, nil)

	now := s.now()
	if err := s.taskRepo.MarkRun(ctx, s.db, task.ID, now); err != nil {
		return nil, toConnectError(err)
	}
	task.LastRunAt = &now

	if result.Created > 0 {
		s.pipeline.Notify(ctx, "task "+task.Name)
	}
	return connect.NewResponse(&adminv1.TriggerTaskResponse{Task: task, Result: result}), nil
}

// recordCrawl appends the run to the crawl log. A failed write is logged
// and does not fail the run.
func (s *AdminServer) recordCrawl(ctx context.Context, entry *model.CrawlLog, runErr error) {
	if runErr != nil {
		msg := runErr.Error()
		entry.Error = &msg
	}
	if err := s.crawlLog.CreateLog(ctx, s.db, entry); err != nil {
		s.logger.Warn("Failed to record crawl run", zap.String("task", entry.TaskName), zap.Error(err))
	}
}

// ListCrawlLogs returns the newest crawl runs
func (s *AdminServer) ListCrawlLogs(
	ctx context.Context,
	req *connect.Request[adminv1.ListCrawlLogsRequest],
) (*connect.Response[adminv1.ListCrawlLogsResponse], error) {
	limit := req.Msg.Limit
	if limit == 0 {
		limit = defaultCrawlLogLimit
	}
	if limit < 1 || limit > maxLogLimit {
		return nil, toConnectError(apperr.Validation("limit must be between 1 and %d", maxLogLimit))
	}

	logs, err := s.crawlLog.ListLogs(ctx, s.db, limit)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&adminv1.ListCrawlLogsResponse{Logs: logs}), nil
}
