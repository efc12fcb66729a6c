package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

const codeColumns = `id, game_name, code, reward_description, source_platform, source_url,
	code_type, expire_date, status, review_status, review_note, is_published, publish_date,
	verification_count, failure_count, credibility_score, created_at, updated_at`

// CodeFilter narrows List results; zero values match everything
type CodeFilter struct {
	GameName     string
	ReviewStatus model.ReviewStatus
	Limit        int
}

// CodeRepository handles redemption code data operations
type CodeRepository struct{}

// NewCodeRepository creates a new code repository
func NewCodeRepository() *CodeRepository {
	return &CodeRepository{}
}

// Create inserts a code. It reports false without error when (game_name, code)
// already exists.
func (r *CodeRepository) Create(ctx context.Context, db DBExecutor, c *model.RedemptionCode) (bool, error) {
	query := db.Rebind(`
		INSERT INTO redemption_codes (game_name, code, reward_description, source_platform, source_url,
			code_type, expire_date, status, review_status, review_note, is_published, publish_date,
			verification_count, failure_count, credibility_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (game_name, code) DO NOTHING
		RETURNING id
	`)

	now := Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	err := db.GetContext(ctx, &c.ID, query,
		c.GameName, c.Code, c.RewardDescription, c.SourcePlatform, nullString(c.SourceURL),
		string(c.CodeType), nullTime(c.ExpireDate), string(c.Status), string(c.ReviewStatus),
		nullString(c.ReviewNote), c.IsPublished, nullTime(c.PublishDate),
		c.VerificationCount, c.FailureCount, c.CredibilityScore, c.CreatedAt, c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Persistence("failed to create code", err)
	}

	return true, nil
}

// GetCode retrieves a code by ID
func (r *CodeRepository) GetCode(ctx context.Context, db DBExecutor, id int64) (*model.RedemptionCode, error) {
	return r.get(ctx, db, db.Rebind(`SELECT `+codeColumns+` FROM redemption_codes WHERE id = ?`), id)
}

// GetCodeForUpdate retrieves a code by ID and locks the row for the rest of the transaction
func (r *CodeRepository) GetCodeForUpdate(ctx context.Context, db DBExecutor, id int64) (*model.RedemptionCode, error) {
	return r.get(ctx, db, db.Rebind(forUpdate(db, `SELECT `+codeColumns+` FROM redemption_codes WHERE id = ?`)), id)
}

func (r *CodeRepository) get(ctx context.Context, db DBExecutor, query string, id int64) (*model.RedemptionCode, error) {
	var c model.RedemptionCode
	err := db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("code %d not found", id)
		}
		return nil, apperr.Persistence("failed to get code", err)
	}

	return &c, nil
}

// FindByKey returns the code with the given identity, or nil when absent
func (r *CodeRepository) FindByKey(ctx context.Context, db DBExecutor, gameName, code string) (*model.RedemptionCode, error) {
	query := db.Rebind(`SELECT ` + codeColumns + ` FROM redemption_codes WHERE game_name = ? AND code = ?`)

	var c model.RedemptionCode
	err := db.GetContext(ctx, &c, query, gameName, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Persistence("failed to find code", err)
	}

	return &c, nil
}

// ListCodes retrieves codes matching filter in creation order
func (r *CodeRepository) ListCodes(ctx context.Context, db DBExecutor, filter CodeFilter) ([]model.RedemptionCode, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.GameName != "" {
		conditions = append(conditions, "game_name = ?")
		args = append(args, filter.GameName)
	}
	if filter.ReviewStatus != "" {
		conditions = append(conditions, "review_status = ?")
		args = append(args, string(filter.ReviewStatus))
	}

	query := `SELECT ` + codeColumns + ` FROM redemption_codes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	codes := []model.RedemptionCode{}
	if err := db.SelectContext(ctx, &codes, db.Rebind(query), args...); err != nil {
		return nil, apperr.Persistence("failed to list codes", err)
	}

	return codes, nil
}

// UpdateCode persists every mutable field of c
func (r *CodeRepository) UpdateCode(ctx context.Context, db DBExecutor, c *model.RedemptionCode) error {
	query := db.Rebind(`
		UPDATE redemption_codes
		SET reward_description = ?, source_platform = ?, source_url = ?, code_type = ?, expire_date = ?,
			status = ?, review_status = ?, review_note = ?, is_published = ?, publish_date = ?,
			verification_count = ?, failure_count = ?, credibility_score = ?, updated_at = ?
		WHERE id = ?
	`)

	c.UpdatedAt = Now()
	result, err := db.ExecContext(ctx, query,
		c.RewardDescription, c.SourcePlatform, nullString(c.SourceURL), string(c.CodeType), nullTime(c.ExpireDate),
		string(c.Status), string(c.ReviewStatus), nullString(c.ReviewNote), c.IsPublished, nullTime(c.PublishDate),
		c.VerificationCount, c.FailureCount, c.CredibilityScore, c.UpdatedAt, c.ID)
	if err != nil {
		return apperr.Persistence("failed to update code", err)
	}

	// Check if any row was actually updated
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperr.Persistence("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("code %d not found", c.ID)
	}

	return nil
}

// DeleteCode removes a code; it reports false when the code did not exist
func (r *CodeRepository) DeleteCode(ctx context.Context, db DBExecutor, id int64) (bool, error) {
	result, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM redemption_codes WHERE id = ?`), id)
	if err != nil {
		return false, apperr.Persistence("failed to delete code", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperr.Persistence("failed to get rows affected", err)
	}

	return rowsAffected > 0, nil
}

// GetStats counts codes per status dimension
func (r *CodeRepository) GetStats(ctx context.Context, db DBExecutor) (*model.Stats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) AS active,
			COALESCE(SUM(CASE WHEN status = 'invalid' THEN 1 ELSE 0 END), 0) AS invalid,
			COALESCE(SUM(CASE WHEN review_status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN review_status = 'approved' THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN review_status = 'rejected' THEN 1 ELSE 0 END), 0) AS rejected,
			COALESCE(SUM(CASE WHEN is_published THEN 1 ELSE 0 END), 0) AS published,
			COALESCE(SUM(CASE WHEN is_published AND status = 'active' AND review_status = 'approved' THEN 1 ELSE 0 END), 0) AS eligible
		FROM redemption_codes
	`

	var stats model.Stats
	if err := db.GetContext(ctx, &stats, query); err != nil {
		return nil, apperr.Persistence("failed to get stats", err)
	}

	return &stats, nil
}
