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

func TestCreateDeduplicatesOnGameAndCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeRepository()
	ctx := context.Background()

	first := testutil.NewCode("铃兰之剑", "SWORD2026")
	created, err := repo.Create(ctx, db.Conn, &first)
	if err != nil || !created {
		t.Fatalf("Expected first insert to succeed, got created=%v err=%v", created, err)
	}
	if first.ID == 0 {
		t.Fatal("Expected ID to be assigned")
	}

	dup := testutil.NewCode("铃兰之剑", "SWORD2026")
	created, err = repo.Create(ctx, db.Conn, &dup)
	if err != nil {
		t.Fatalf("Duplicate insert returned error: %v", err)
	}
	if created {
		t.Error("Expected duplicate (gameName, code) to be skipped")
	}

	other := testutil.NewCode("杖剑传说", "SWORD2026")
	created, err = repo.Create(ctx, db.Conn, &other)
	if err != nil || !created {
		t.Errorf("Same code in another game should be created, got created=%v err=%v", created, err)
	}
}

func TestGetUpdateRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeRepository()
	ctx := context.Background()

	c := testutil.CreateTestCode(t, db, "X", "ROUND")

	url := "https://www.taptap.cn/post/1"
	expire := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	note := "checked in game"
	c.SourceURL = &url
	c.ExpireDate = &expire
	c.ReviewStatus = model.ReviewApproved
	c.ReviewNote = &note
	c.IsPublished = true
	c.VerificationCount = 7
	c.CredibilityScore = 88
	if err := repo.UpdateCode(ctx, db.Conn, &c); err != nil {
		t.Fatalf("UpdateCode: %v", err)
	}

	got, err := repo.GetCode(ctx, db.Conn, c.ID)
	if err != nil {
		t.Fatalf("GetCode: %v", err)
	}
	if got.SourceURL == nil || *got.SourceURL != url {
		t.Errorf("Expected source url %q, got %v", url, got.SourceURL)
	}
	if got.ExpireDate == nil || !got.ExpireDate.Equal(expire) {
		t.Errorf("Expected expire date %v, got %v", expire, got.ExpireDate)
	}
	if got.PublishDate != nil {
		t.Errorf("Expected nil publish date, got %v", got.PublishDate)
	}
	if !got.IsPublished || got.ReviewStatus != model.ReviewApproved || got.VerificationCount != 7 || got.CredibilityScore != 88 {
		t.Errorf("Unexpected code after update: %+v", got)
	}
	if !got.Eligible() {
		t.Error("Expected code to be eligible")
	}
}

func TestMissingCodeIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeRepository()
	ctx := context.Background()

	if _, err := repo.GetCode(ctx, db.Conn, 42); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := repo.UpdateCode(ctx, db.Conn, &model.RedemptionCode{ID: 42, CodeType: model.CodePermanent, Status: model.StatusActive, ReviewStatus: model.ReviewPending}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on update, got %v", err)
	}
	deleted, err := repo.DeleteCode(ctx, db.Conn, 42)
	if err != nil || deleted {
		t.Errorf("Expected delete of missing code to report false, got %v %v", deleted, err)
	}
	found, err := repo.FindByKey(ctx, db.Conn, "X", "NOPE")
	if err != nil || found != nil {
		t.Errorf("Expected nil for missing key, got %v %v", found, err)
	}
}

func TestListCodesFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeRepository()
	ctx := context.Background()

	testutil.CreateTestCode(t, db, "A", "A1")
	testutil.CreateTestCode(t, db, "B", "B1", testutil.WithReview(model.ReviewApproved))
	testutil.CreateTestCode(t, db, "A", "A2", testutil.WithReview(model.ReviewApproved))

	all, err := repo.ListCodes(ctx, db.Conn, repository.CodeFilter{})
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if len(all) != 3 || all[0].Code != "A1" || all[2].Code != "A2" {
		t.Errorf("Expected creation order A1,B1,A2, got %v", all)
	}

	approvedA, err := repo.ListCodes(ctx, db.Conn, repository.CodeFilter{GameName: "A", ReviewStatus: model.ReviewApproved})
	if err != nil {
		t.Fatalf("ListCodes: %v", err)
	}
	if len(approvedA) != 1 || approvedA[0].Code != "A2" {
		t.Errorf("Expected only A2, got %v", approvedA)
	}

	limited, err := repo.ListCodes(ctx, db.Conn, repository.CodeFilter{Limit: 2})
	if err != nil || len(limited) != 2 {
		t.Errorf("Expected 2 codes with limit, got %d (%v)", len(limited), err)
	}
}

func TestGetStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCodeRepository()
	ctx := context.Background()

	stats, err := repo.GetStats(ctx, db.Conn)
	if err != nil {
		t.Fatalf("GetStats on empty table: %v", err)
	}
	if stats.Total != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	testutil.CreateTestCode(t, db, "A", "P1")
	testutil.CreateTestCode(t, db, "A", "E1", testutil.Eligible())
	testutil.CreateTestCode(t, db, "A", "R1", testutil.WithReview(model.ReviewRejected))

	stats, err = repo.GetStats(ctx, db.Conn)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	want := model.Stats{Total: 3, Active: 3, Pending: 1, Approved: 1, Rejected: 1, Published: 1, Eligible: 1}
	if *stats != want {
		t.Errorf("GetStats = %+v, want %+v", *stats, want)
	}
}
