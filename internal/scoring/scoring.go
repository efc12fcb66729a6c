// Package scoring computes the credibility score of a redemption code.
//
// The score is a clamped weighted sum of normalized factors:
//
//	base          constant floor for every code
//	verification  saturating in verificationCount
//	source        trust weight of the source platform
//	freshness     decays with age since publishDate unless confirmed by verifications
//	failures      penalty per user-reported failure, capped
//	expiry        penalty once expireDate has passed
//
// Missing or malformed optional fields contribute a neutral value instead of failing.
package scoring

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Jhoney47/GameCodeBase/internal/catalog"
	"github.com/Jhoney47/GameCodeBase/internal/model"
)

// Factor names one contribution in a score breakdown.
type Factor string

const (
	FactorBase         Factor = "base"
	FactorVerification Factor = "verification"
	FactorSource       Factor = "source"
	FactorFreshness    Factor = "freshness"
	FactorFailures     Factor = "failures"
	FactorExpiry       Factor = "expiry"
)

const (
	MinScore = 0
	MaxScore = 100

	baseScore         = 20.0
	maxVerification   = 40.0
	verificationHalf  = 5.0 // verifications needed for half of maxVerification
	maxSource         = 25.0
	maxFreshness      = 15.0
	confirmedAt       = 3 // verifications that fully offset age decay
	failurePenalty    = 12.0
	maxFailurePenalty = 60.0
	expiredPenalty    = 20.0

	freshWindow = 7 * 24 * time.Hour
	staleAfter  = 90 * 24 * time.Hour
)

// factors fixes the summation order so rounding is deterministic.
var factors = []Factor{FactorBase, FactorVerification, FactorSource, FactorFreshness, FactorFailures, FactorExpiry}

// Result is a score with its per-factor contributions.
type Result struct {
	Score     int            `json:"score"`
	Breakdown map[Factor]int `json:"breakdown"`
}

// Engine scores codes against a fixed platform trust table.
type Engine struct {
	platforms     []platformRule
	defaultWeight float64
}

// platformRule matches a platform whose name contains tokens as a
// contiguous run of whole tokens.
type platformRule struct {
	tokens []string
	weight float64
}

// NewEngine creates an engine from the catalog's platform weights.
func NewEngine(c *catalog.Catalog) *Engine {
	rules := make([]platformRule, 0, len(c.Platforms))
	for _, p := range c.Platforms {
		if t := tokenize(p.Match); len(t) > 0 {
			rules = append(rules, platformRule{tokens: t, weight: p.Weight})
		}
	}
	return &Engine{platforms: rules, defaultWeight: c.DefaultWeight}
}

// PlatformWeight returns the trust weight of platform. The first matching
// entry wins; unknown or empty platforms get the default weight. Matching is
// on whole tokens, so "非官方攻略站" does not match "官方" and "manga" does
// not match "nga".
func (e *Engine) PlatformWeight(platform string) float64 {
	tokens := tokenize(platform)
	if len(tokens) == 0 {
		return e.defaultWeight
	}
	for _, rule := range e.platforms {
		if containsRun(tokens, rule.tokens) {
			return rule.weight
		}
	}
	return e.defaultWeight
}

// tokenize lowercases s and splits it on anything that is not a letter or
// digit, and between ASCII and non-ASCII runs, so "TapTap论坛" yields
// ["taptap", "论坛"].
func tokenize(s string) []string {
	var (
		tokens []string
		cur    []rune
		ascii  bool
	)
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
		}
	}
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		isASCII := r < utf8.RuneSelf
		if len(cur) > 0 && isASCII != ascii {
			flush()
		}
		ascii = isASCII
		cur = append(cur, r)
	}
	flush()
	return tokens
}

func containsRun(tokens, run []string) bool {
	for i := 0; i+len(run) <= len(tokens); i++ {
		if slices.Equal(tokens[i:i+len(run)], run) {
			return true
		}
	}
	return false
}

// Score computes the credibility score of c as of now. It never fails.
func (e *Engine) Score(c *model.RedemptionCode, now time.Time) Result {
	verifications := max(c.VerificationCount, 0)
	failures := max(c.FailureCount, 0)

	contrib := map[Factor]float64{
		FactorBase:         baseScore,
		FactorVerification: verificationContribution(verifications),
		FactorSource:       maxSource * e.PlatformWeight(c.SourcePlatform),
		FactorFreshness:    freshnessContribution(c.PublishDate, verifications, now),
		FactorFailures:     -math.Min(float64(failures)*failurePenalty, maxFailurePenalty),
		FactorExpiry:       0,
	}
	if c.Expired(now) {
		contrib[FactorExpiry] = -expiredPenalty
	}

	var sum float64
	breakdown := make(map[Factor]int, len(contrib))
	for _, f := range factors {
		sum += contrib[f]
		breakdown[f] = int(math.Round(contrib[f]))
	}

	return Result{Score: clamp(int(math.Round(sum))), Breakdown: breakdown}
}

// Annotate stores the current score on c.
func (e *Engine) Annotate(c *model.RedemptionCode, now time.Time) {
	c.CredibilityScore = e.Score(c, now).Score
}

// Rank orders codes by score descending, ties broken by verificationCount
// descending and then by code for a total order.
func (e *Engine) Rank(codes []model.RedemptionCode, now time.Time) {
	type ranked struct {
		score int
		code  model.RedemptionCode
	}
	items := make([]ranked, len(codes))
	for i := range codes {
		items[i] = ranked{score: e.Score(&codes[i], now).Score, code: codes[i]}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return Less(items[i].score, items[i].code, items[j].score, items[j].code)
	})
	for i := range items {
		codes[i] = items[i].code
	}
}

// Less reports whether a (with score sa) ranks before b (with score sb).
func Less(sa int, a model.RedemptionCode, sb int, b model.RedemptionCode) bool {
	if sa != sb {
		return sa > sb
	}
	if a.VerificationCount != b.VerificationCount {
		return a.VerificationCount > b.VerificationCount
	}
	if a.GameName != b.GameName {
		return a.GameName < b.GameName
	}
	return a.Code < b.Code
}

func verificationContribution(n int) float64 {
	v := float64(n)
	return maxVerification * v / (v + verificationHalf)
}

// freshnessContribution decays linearly from full at freshWindow to zero at
// staleAfter. Verifications buy back the decayed share; a missing publish
// date is neutral (half).
func freshnessContribution(published *time.Time, verifications int, now time.Time) float64 {
	if published == nil || published.IsZero() {
		return maxFreshness / 2
	}

	age := now.Sub(*published)
	decay := 1.0
	switch {
	case age <= freshWindow:
	case age >= staleAfter:
		decay = 0
	default:
		decay = 1 - float64(age-freshWindow)/float64(staleAfter-freshWindow)
	}

	confirmed := math.Min(float64(verifications), confirmedAt) / confirmedAt
	return maxFreshness * (decay + (1-decay)*confirmed)
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
