package repository_test

import (
	"context"
	"testing"

	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
	"github.com/Jhoney47/GameCodeBase/internal/testutil"
)

func TestCrawlLogsNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCrawlLogRepository()
	ctx := context.Background()

	taskID := int64(7)
	game := "铃兰之剑"
	failure := "feed timed out"
	entries := []*model.CrawlLog{
		{TaskID: &taskID, TaskName: "hourly", GameName: &game, Fetched: 3, Created: 2, Duplicates: 1},
		{TaskID: &taskID, TaskName: "hourly", GameName: &game, Error: &failure},
		{TaskName: "nightly", Fetched: 4, Duplicates: 3, Invalid: 1},
	}
	for _, l := range entries {
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

	newest := logs[0]
	if newest.TaskName != "nightly" || newest.TaskID != nil || newest.GameName != nil || !newest.Succeeded() {
		t.Errorf("Unexpected newest log %+v", newest)
	}
	if newest.Duplicates != 3 || newest.Invalid != 1 || newest.CreatedAt.IsZero() {
		t.Errorf("Unexpected counts %+v", newest)
	}

	failed := logs[1]
	if failed.Succeeded() || *failed.Error != failure || failed.TaskID == nil || *failed.TaskID != taskID {
		t.Errorf("Unexpected failed log %+v", failed)
	}
}
