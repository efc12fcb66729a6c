// Package testutil provides a throwaway SQLite store and code fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/config"
	"github.com/Jhoney47/GameCodeBase/internal/database"
	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/repository"
)

// SetupTestDB creates a fresh SQLite database with the full schema
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, config.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CodeOption mutates a fixture before it is inserted
type CodeOption func(*model.RedemptionCode)

// Eligible makes the fixture active, approved and published
func Eligible() CodeOption {
	return func(c *model.RedemptionCode) {
		c.Status = model.StatusActive
		c.ReviewStatus = model.ReviewApproved
		c.IsPublished = true
		published := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
		c.PublishDate = &published
	}
}

// WithReview sets the review status
func WithReview(s model.ReviewStatus) CodeOption {
	return func(c *model.RedemptionCode) { c.ReviewStatus = s }
}

// WithVerifications sets the verification count
func WithVerifications(n int) CodeOption {
	return func(c *model.RedemptionCode) { c.VerificationCount = n }
}

// NewCode builds an unsaved pending fixture
func NewCode(gameName, code string, opts ...CodeOption) model.RedemptionCode {
	c := model.RedemptionCode{
		GameName:          gameName,
		Code:              code,
		RewardDescription: "钻石x100",
		SourcePlatform:    "TapTap论坛",
		CodeType:          model.CodePermanent,
		Status:            model.StatusActive,
		ReviewStatus:      model.ReviewPending,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// CreateTestCode inserts a fixture and returns it with its ID
func CreateTestCode(t *testing.T, db *database.DB, gameName, code string, opts ...CodeOption) model.RedemptionCode {
	t.Helper()

	c := NewCode(gameName, code, opts...)
	created, err := repository.NewCodeRepository().Create(context.Background(), db.Conn, &c)
	if err != nil {
		t.Fatalf("Failed to create test code: %v", err)
	}
	if !created {
		t.Fatalf("Test code %s/%s already exists", gameName, code)
	}
	return c
}

// CreateTestCodes inserts n pending codes for gameName and returns their IDs
func CreateTestCodes(t *testing.T, db *database.DB, gameName string, n int, opts ...CodeOption) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		c := CreateTestCode(t, db, gameName, fmt.Sprintf("CODE%03d", i), opts...)
		ids = append(ids, c.ID)
	}
	return ids
}
