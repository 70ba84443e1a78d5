package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonesrussell/leadscout/internal/catalog"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// Community engagement bonus bands. Views dominate; the whole bonus is
// capped so engagement alone can never carry an off-topic account.
const (
	communityViewsViral   = 10000
	communityViewsHigh    = 5000
	communityViewsGood    = 1000
	communityCommentsMin  = 5
	communityLikesMin     = 200
	communityBonusViral   = 20
	communityBonusHigh    = 15
	communityBonusGood    = 10
	communityBonusSignal  = 5
	communityBonusCap     = 30
)

// GroupResult is the outcome of community classification. Reason is a
// human-readable trace of which stage decided.
type GroupResult struct {
	Qualified bool   `json:"qualified"`
	Reason    string `json:"reason"`
	Score     int    `json:"score"`
}

// GroupMetrics is an optional engagement sample for the bonus stage.
type GroupMetrics struct {
	Views    int
	Likes    int
	Comments int
}

// CommunityClassifier is the tiered variant for group/community accounts.
// Location signals cascade (first matching tier wins) because they all
// attest the same fact; content signals stay additive.
type CommunityClassifier struct {
	tables    catalog.Community
	content   *keywordMatcher
	integrity *keywordMatcher
	whitelist []*regexp.Regexp
	threshold int
	logger    logger.Logger
}

// NewCommunity builds the community classifier from the catalog's
// community tables. Whitelist patterns must already have passed catalog
// validation.
func NewCommunity(cat *catalog.Catalog, threshold int, log logger.Logger) *CommunityClassifier {
	tables := cat.Community

	integrityGroups := make([]catalog.Group, 0, len(tables.IntegrityGroups))
	byName := make(map[string]catalog.Group, len(tables.ContentGroups))
	for _, g := range tables.ContentGroups {
		byName[g.Name] = g
	}
	for _, name := range tables.IntegrityGroups {
		if g, ok := byName[name]; ok {
			integrityGroups = append(integrityGroups, g)
		}
	}

	whitelist := make([]*regexp.Regexp, 0, len(tables.UsernameWhitelist))
	for _, pattern := range tables.UsernameWhitelist {
		whitelist = append(whitelist, regexp.MustCompile(pattern))
	}

	return &CommunityClassifier{
		tables:    tables,
		content:   newKeywordMatcher(tables.ContentGroups),
		integrity: newKeywordMatcher(integrityGroups),
		whitelist: whitelist,
		threshold: threshold,
		logger:    log,
	}
}

// Classify evaluates a group/community account: hard rejects first, then
// the location cascade, the content integrity gate, additive content
// scoring and an optional engagement bonus.
func (c *CommunityClassifier) Classify(bio, username string, metrics *GroupMetrics) GroupResult {
	bioLower := strings.ToLower(bio)
	userLower := strings.ToLower(username)

	if c.isBadUsername(userLower) {
		return GroupResult{Reason: fmt.Sprintf("rejected: bad username %q", userLower)}
	}

	for _, neg := range c.tables.LocationBlacklist {
		if strings.Contains(bioLower, neg) {
			return GroupResult{Reason: fmt.Sprintf("rejected: negative location %q", neg)}
		}
	}

	locScore, locTier := c.locationScore(bioLower)
	if locScore == 0 {
		return GroupResult{Reason: "rejected: not in target region"}
	}

	combined := bioLower + " " + userLower

	if !c.integrity.MatchAny(combined) {
		return GroupResult{Reason: "rejected: no content match"}
	}

	contentScore, matched := c.contentScore(combined)

	bonus := 0
	if metrics != nil {
		bonus = engagementBonus(metrics)
	}

	total := locScore + contentScore + bonus
	if total >= c.threshold {
		return GroupResult{
			Qualified: true,
			Reason:    fmt.Sprintf("passed: %d pts (%s, cats=%v)", total, locTier, matched),
			Score:     total,
		}
	}

	return GroupResult{Reason: fmt.Sprintf("failed: %d pts", total), Score: total}
}

// locationScore walks the cascade in priority order and returns the first
// matching tier's points. A tier keyword can be suppressed by its
// exclusion term ("baja california" is not Southern California).
func (c *CommunityClassifier) locationScore(bioLower string) (int, string) {
	for _, tier := range c.tables.LocationTiers {
		for _, kw := range tier.Keywords {
			if !strings.Contains(bioLower, kw) {
				continue
			}
			if tier.ExcludeWith != "" && strings.Contains(bioLower, tier.ExcludeWith) {
				continue
			}
			return tier.Points, tier.Name
		}
	}
	return 0, ""
}

func (c *CommunityClassifier) contentScore(combined string) (int, []string) {
	score := 0
	var matched []string
	for _, gi := range c.content.Match(combined) {
		g := c.tables.ContentGroups[gi]
		if g.Points == 0 {
			continue
		}
		score += g.Points
		matched = append(matched, g.Name)
	}
	return score, matched
}

func (c *CommunityClassifier) isBadUsername(userLower string) bool {
	for _, term := range c.tables.UsernameBlacklist {
		if !strings.Contains(userLower, term) {
			continue
		}
		whitelisted := false
		for _, pattern := range c.whitelist {
			if pattern.MatchString(userLower) {
				whitelisted = true
				break
			}
		}
		if !whitelisted {
			return true
		}
	}
	return false
}

func engagementBonus(m *GroupMetrics) int {
	bonus := 0

	switch {
	case m.Views > communityViewsViral:
		bonus += communityBonusViral
	case m.Views > communityViewsHigh:
		bonus += communityBonusHigh
	case m.Views > communityViewsGood:
		bonus += communityBonusGood
	}

	if m.Comments >= communityCommentsMin {
		bonus += communityBonusSignal
	}
	if m.Likes >= communityLikesMin {
		bonus += communityBonusSignal
	}

	if bonus > communityBonusCap {
		bonus = communityBonusCap
	}
	return bonus
}
