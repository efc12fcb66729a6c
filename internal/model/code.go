package model

import (
	"time"
)

// CodeType distinguishes permanent codes from time-limited ones
type CodeType string

const (
	CodePermanent CodeType = "permanent"
	CodeLimited   CodeType = "limited"
)

// Valid reports whether t is a known code type
func (t CodeType) Valid() bool {
	return t == CodePermanent || t == CodeLimited
}

// CodeStatus is the usability state of a code, orthogonal to review
type CodeStatus string

const (
	StatusActive  CodeStatus = "active"
	StatusInvalid CodeStatus = "invalid"
)

// ReviewStatus is the review state of a code
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Valid reports whether s is a known review status
func (s ReviewStatus) Valid() bool {
	return s == ReviewPending || s == ReviewApproved || s == ReviewRejected
}

// RedemptionCode represents a tracked redemption code in the database.
// (GameName, Code) is unique.
type RedemptionCode struct {
	ID                int64        `db:"id" json:"id"`
	GameName          string       `db:"game_name" json:"gameName"`
	Code              string       `db:"code" json:"code"`
	RewardDescription string       `db:"reward_description" json:"rewardDescription"`
	SourcePlatform    string       `db:"source_platform" json:"sourcePlatform"`
	SourceURL         *string      `db:"source_url" json:"sourceUrl"`
	CodeType          CodeType     `db:"code_type" json:"codeType"`
	ExpireDate        *time.Time   `db:"expire_date" json:"expireDate"`
	Status            CodeStatus   `db:"status" json:"status"`
	ReviewStatus      ReviewStatus `db:"review_status" json:"reviewStatus"`
	ReviewNote        *string      `db:"review_note" json:"reviewNote,omitempty"`
	IsPublished       bool         `db:"is_published" json:"isPublished"`
	PublishDate       *time.Time   `db:"publish_date" json:"publishDate"`
	VerificationCount int          `db:"verification_count" json:"verificationCount"`
	FailureCount      int          `db:"failure_count" json:"failureCount"`
	CredibilityScore  int          `db:"credibility_score" json:"credibilityScore"`
	CreatedAt         time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updatedAt"`
}

// Eligible reports whether the code belongs in the exported snapshot
func (c *RedemptionCode) Eligible() bool {
	return c.Status == StatusActive && c.ReviewStatus == ReviewApproved && c.IsPublished
}

// Expired reports whether the code has an expiry date before now
func (c *RedemptionCode) Expired(now time.Time) bool {
	return c.ExpireDate != nil && c.ExpireDate.Before(now)
}

// CandidateCode is a raw code yielded by a crawler or a user submission
type CandidateCode struct {
	GameName          string     `json:"gameName"`
	Code              string     `json:"code"`
	RewardDescription string     `json:"rewardDescription,omitempty"`
	SourcePlatform    string     `json:"sourcePlatform,omitempty"`
	SourceURL         string     `json:"sourceUrl,omitempty"`
	ExpireDate        *time.Time `json:"expireDate,omitempty"`
	CodeType          CodeType   `json:"codeType,omitempty"`
}
