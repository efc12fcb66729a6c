package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/apperr"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

// legacyCode is a code as found in an existing export file. Pointers tell a
// missing field apart from an empty one.
type legacyCode struct {
	Code              string  `json:"code"`
	RewardDescription string  `json:"rewardDescription"`
	SourcePlatform    string  `json:"sourcePlatform"`
	SourceURL         *string `json:"sourceUrl"`
	ExpireDate        *string `json:"expireDate"`
	Status            *string `json:"status"`
	CodeType          string  `json:"codeType"`
	PublishDate       *string `json:"publishDate"`
	VerificationCount int     `json:"verificationCount"`
	ReviewStatus      *string `json:"reviewStatus"`
}

type legacySnapshot struct {
	Games []struct {
		GameName string       `json:"gameName"`
		Codes    []legacyCode `json:"codes"`
	} `json:"games"`
}

// ParseLegacySnapshot reads an export file into records. A code without a
// reviewStatus is imported as pending, so nothing unreviewed is re-exported.
// Approved active codes are imported as published. Malformed dates are
// dropped; malformed codes are counted and reported in rejected.
func ParseLegacySnapshot(data []byte) ([]model.RedemptionCode, []string, error) {
	var doc legacySnapshot
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, apperr.Validation("invalid snapshot document: %v", err)
	}

	var (
		records  []model.RedemptionCode
		rejected []string
	)
	for _, g := range doc.Games {
		for _, lc := range g.Codes {
			c, err := fromLegacy(g.GameName, lc)
			if err != nil {
				rejected = append(rejected, err.Error())
				continue
			}
			records = append(records, c)
		}
	}
	return records, rejected, nil
}

func fromLegacy(game string, lc legacyCode) (model.RedemptionCode, error) {
	cand := model.CandidateCode{
		GameName:          game,
		Code:              lc.Code,
		RewardDescription: lc.RewardDescription,
		SourcePlatform:    lc.SourcePlatform,
		CodeType:          model.CodeType(lc.CodeType),
		ExpireDate:        parseTime(lc.ExpireDate),
	}
	if lc.SourceURL != nil {
		cand.SourceURL = *lc.SourceURL
	}

	c, err := normalize(cand, "")
	if err != nil {
		return model.RedemptionCode{}, err
	}

	c.ReviewStatus = model.ReviewPending
	if lc.ReviewStatus != nil {
		c.ReviewStatus = model.ReviewStatus(*lc.ReviewStatus)
		if !c.ReviewStatus.Valid() {
			return model.RedemptionCode{}, apperr.Validation("code %s/%s has unknown review status %q", c.GameName, c.Code, *lc.ReviewStatus)
		}
	}

	c.Status = model.StatusActive
	if lc.Status != nil && *lc.Status == string(model.StatusInvalid) {
		c.Status = model.StatusInvalid
	}

	c.VerificationCount = max(lc.VerificationCount, 0)
	c.PublishDate = parseTime(lc.PublishDate)
	c.IsPublished = c.ReviewStatus == model.ReviewApproved && c.Status == model.StatusActive
	return c, nil
}

func parseTime(s *string) *time.Time {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(*s))
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// ImportLegacy loads an existing export file. Codes already in the store are
// counted as duplicates and left untouched.
func (i *Ingester) ImportLegacy(ctx context.Context, data []byte) (*Result, error) {
	records, rejected, err := ParseLegacySnapshot(data)
	if err != nil {
		return nil, err
	}

	result := &Result{CreatedIDs: []int64{}, Invalid: len(rejected), Rejected: rejected}
	if err := i.store(ctx, records, i.now(), result); err != nil {
		return nil, err
	}

	i.record(result)
	return result, nil
}
