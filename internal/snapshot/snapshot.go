// Package snapshot builds the public export document from the code store.
//
// A snapshot holds eligible codes only, grouped by game. Predefined games
// always have a group, even an empty one, and come first in their configured
// order; other games follow in the order their first code was created.
// Building the same input twice yields byte-identical output apart from
// lastUpdated.
package snapshot

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Jhoney47/GameCodeBase/internal/model"
	"github.com/Jhoney47/GameCodeBase/internal/scoring"
)

const (
	// SchemaVersion changes only when the document shape changes.
	SchemaVersion = "2.0.1"
	// ScoredSchemaVersion is the shape with per-code credibilityScore.
	ScoredSchemaVersion = "2.1.0"

	// TimeLayout is ISO-8601 in UTC with millisecond precision.
	TimeLayout = "2006-01-02T15:04:05.000Z"

	unknownReward = "未知奖励"
	unknownSource = "未知来源"
)

// PublicCodeView is the externally safe projection of a code
type PublicCodeView struct {
	Code              string  `json:"code"`
	RewardDescription string  `json:"rewardDescription"`
	SourcePlatform    string  `json:"sourcePlatform"`
	SourceURL         *string `json:"sourceUrl"`
	ExpireDate        *string `json:"expireDate"`
	Status            string  `json:"status"`
	CodeType          string  `json:"codeType"`
	PublishDate       *string `json:"publishDate"`
	VerificationCount int     `json:"verificationCount"`
	ReviewStatus      string  `json:"reviewStatus"`
	CredibilityScore  *int    `json:"credibilityScore,omitempty"`
}

// GameGroup is one game section of the snapshot
type GameGroup struct {
	GameName  string           `json:"gameName"`
	CodeCount int              `json:"codeCount"`
	Codes     []PublicCodeView `json:"codes"`
}

// Snapshot is the export document
type Snapshot struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	TotalCodes  int         `json:"totalCodes"`
	Games       []GameGroup `json:"games"`
}

// Builder turns a set of codes into a Snapshot
type Builder struct {
	predefined    []string
	includeScores bool
}

// NewBuilder creates a builder seeded with the predefined games in order
func NewBuilder(predefined []string, includeScores bool) *Builder {
	games := make([]string, len(predefined))
	copy(games, predefined)
	return &Builder{predefined: games, includeScores: includeScores}
}

// Build filters codes to eligible ones and groups them. codes is not modified.
func (b *Builder) Build(codes []model.RedemptionCode, now time.Time) *Snapshot {
	eligible := make([]model.RedemptionCode, 0, len(codes))
	for _, c := range codes {
		if c.Eligible() {
			eligible = append(eligible, c)
		}
	}
	// First-seen order is creation order.
	sort.SliceStable(eligible, func(i, j int) bool { return eligible[i].ID < eligible[j].ID })

	order := make([]string, 0, len(b.predefined))
	groups := make(map[string][]model.RedemptionCode, len(b.predefined))
	for _, game := range b.predefined {
		if _, ok := groups[game]; ok {
			continue
		}
		groups[game] = []model.RedemptionCode{}
		order = append(order, game)
	}
	for _, c := range eligible {
		if _, ok := groups[c.GameName]; !ok {
			order = append(order, c.GameName)
		}
		groups[c.GameName] = append(groups[c.GameName], c)
	}

	s := &Snapshot{
		Version:     b.version(),
		LastUpdated: FormatTime(now),
		TotalCodes:  len(eligible),
		Games:       make([]GameGroup, 0, len(order)),
	}
	for _, game := range order {
		members := groups[game]
		sort.SliceStable(members, func(i, j int) bool {
			return scoring.Less(members[i].CredibilityScore, members[i], members[j].CredibilityScore, members[j])
		})

		views := make([]PublicCodeView, 0, len(members))
		for i := range members {
			views = append(views, b.view(&members[i]))
		}
		s.Games = append(s.Games, GameGroup{GameName: game, CodeCount: len(views), Codes: views})
	}

	return s
}

func (b *Builder) version() string {
	if b.includeScores {
		return ScoredSchemaVersion
	}
	return SchemaVersion
}

func (b *Builder) view(c *model.RedemptionCode) PublicCodeView {
	v := PublicCodeView{
		Code:              c.Code,
		RewardDescription: c.RewardDescription,
		SourcePlatform:    c.SourcePlatform,
		ExpireDate:        formatTimePtr(c.ExpireDate),
		Status:            string(c.Status),
		CodeType:          string(c.CodeType),
		PublishDate:       formatTimePtr(c.PublishDate),
		VerificationCount: max(c.VerificationCount, 0),
		ReviewStatus:      string(c.ReviewStatus),
	}
	if v.RewardDescription == "" {
		v.RewardDescription = unknownReward
	}
	if v.SourcePlatform == "" {
		v.SourcePlatform = unknownSource
	}
	if c.SourceURL != nil && *c.SourceURL != "" {
		url := *c.SourceURL
		v.SourceURL = &url
	}
	if b.includeScores {
		score := c.CredibilityScore
		v.CredibilityScore = &score
	}
	return v
}

// FormatTime renders t in the snapshot timestamp layout
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}

// Encode renders s in its canonical on-disk form: two-space indentation,
// struct field order, no HTML escaping, trailing newline.
func Encode(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an encoded snapshot
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &s, nil
}

// Digest is the SHA-256 of the canonical encoding with lastUpdated blanked,
// so two snapshots with the same content share a digest.
func Digest(s *Snapshot) (string, error) {
	content := *s
	content.LastUpdated = ""
	data, err := Encode(&content)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
