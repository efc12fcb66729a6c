package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/testutil"
)

func TestUpdateLogsNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewUpdateLogRepository()
	ctx := context.Background()

	for i, op := range []model.OperationType{model.OpPublish, model.OpBatch, model.OpDelete} {
		l := &model.UpdateLog{Title: string(op), Description: "test", OperationType: op, AffectedCount: i + 1}
		if err := repo.CreateLog(ctx, db.Conn, l); err != nil {
			t.Fatalf("CreateLog: %v", err)
		}
	}

	logs, err := repo.ListLogs(ctx, db.Conn, 2)
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("Expected 2 logs, got %d", len(logs))
	}
	if logs[0].OperationType != model.OpDelete || logs[1].OperationType != model.OpBatch {
		t.Errorf("Expected newest first, got %s then %s", logs[0].OperationType, logs[1].OperationType)
	}
	if logs[0].AffectedCount != 3 || logs[0].CreatedAt.IsZero() {
		t.Errorf("Unexpected log: %+v", logs[0])
	}
}

func TestTaskLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewTaskRepository()
	ctx := context.Background()

	game := "铃兰之剑"
	task := &model.ScheduledTask{Name: "nightly", CronExpression: "0 3 * * *", TaskType: model.TaskCrawlGame, GameName: &game, IsEnabled: true}
	if err := repo.CreateTask(ctx, db.Conn, task); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if err := repo.SetEnabled(ctx, db.Conn, task.ID, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	ranAt := time.Date(2026, 2, 1, 3, 0, 0, 0, time.UTC)
	if err := repo.MarkRun(ctx, db.Conn, task.ID, ranAt); err != nil {
		t.Fatalf("MarkRun: %v", err)
	}

	got, err := repo.GetTask(ctx, db.Conn, task.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.IsEnabled || got.GameName == nil || *got.GameName != game || got.LastRunAt == nil || !got.LastRunAt.Equal(ranAt) {
		t.Errorf("Unexpected task: %+v", got)
	}

	tasks, err := repo.ListTasks(ctx, db.Conn)
	if err != nil || len(tasks) != 1 {
		t.Fatalf("Expected one task, got %d (%v)", len(tasks), err)
	}

	if err := repo.DeleteTask(ctx, db.Conn, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := repo.DeleteTask(ctx, db.Conn, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
}
