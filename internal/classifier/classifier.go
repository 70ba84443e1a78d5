package classifier

import (
	"strings"

	"github.com/jonesrussell/leadscout/internal/catalog"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// Config holds the classifier thresholds and the hard-filter bounds.
type Config struct {
	ScoreThreshold int
	HardFilter     HardFilterConfig
}

// Classifier scores individual creator accounts. Classification is pure:
// the same candidate snapshot always produces the same breakdown, with no
// I/O and no randomness.
type Classifier struct {
	cat        *catalog.Catalog
	hardFilter *HardFilter
	positive   *keywordMatcher
	venue      *keywordMatcher
	negative   *keywordMatcher
	threshold  int
	logger     logger.Logger
}

// New builds a classifier over the given catalog. The Aho-Corasick
// automatons are built once here and reused for every candidate.
func New(cat *catalog.Catalog, cfg Config, log logger.Logger) *Classifier {
	return &Classifier{
		cat:        cat,
		hardFilter: NewHardFilter(cfg.HardFilter),
		positive:   newKeywordMatcher(cat.Positive),
		venue:      newKeywordMatcher([]catalog.Group{cat.VenueAnchors}),
		negative:   newKeywordMatcher(cat.Negative),
		threshold:  cfg.ScoreThreshold,
		logger:     log,
	}
}

// CatalogVersion returns the version of the loaded signal catalog.
func (c *Classifier) CatalogVersion() string {
	return c.cat.Version
}

// Classify evaluates a candidate and returns the full score breakdown.
// Hard-filter failures short-circuit with a zero score and reasons tagged
// with the hard-fail prefix; otherwise every signal group is evaluated,
// positives and negatives alike, with no early exit.
func (c *Classifier) Classify(cand *domain.Candidate) *domain.ScoreBreakdown {
	breakdown := &domain.ScoreBreakdown{}

	if reasons := c.hardFilter.Check(cand); len(reasons) > 0 {
		for _, r := range reasons {
			breakdown.Signals = append(breakdown.Signals, domain.SignalScore{
				Name: domain.HardFailPrefix + r,
			})
		}
		c.logger.Debug("hard filter reject",
			logger.String("username", cand.Username),
			logger.Strings("reasons", reasons))
		return breakdown
	}

	blob := strings.ToLower(cand.Bio + " " + cand.DisplayName + " " + cand.Username)

	for _, gi := range c.positive.Match(blob) {
		g := c.cat.Positive[gi]
		breakdown.Add(g.Name, g.Points)
	}

	if c.venue.MatchAny(blob) {
		breakdown.Add(c.cat.VenueAnchors.Name, c.cat.VenueAnchors.Points)
	}

	c.scoreCategory(cand, breakdown)

	// Negative groups are not gated by positive matches; a spam marker
	// costs the same whether or not the bio also looks like a creator.
	for _, gi := range c.negative.Match(blob) {
		g := c.cat.Negative[gi]
		breakdown.Add(g.Name, g.Points)
	}

	if cand.Category != "" && containsExact(c.cat.BadCategories, cand.Category) {
		breakdown.Add("bad_category", c.cat.BadCategoryPoints)
	}

	breakdown.Qualified = breakdown.Total >= c.threshold

	c.logger.Debug("classified candidate",
		logger.String("username", cand.Username),
		logger.Int("score", breakdown.Total),
		logger.Bool("qualified", breakdown.Qualified),
		logger.Strings("signals", breakdown.SignalNames()))

	return breakdown
}

// scoreCategory applies the category override: an exact good-category match
// earns the full bonus; the soft food-adjacent label earns it only for
// accounts not flagged as a business.
func (c *Classifier) scoreCategory(cand *domain.Candidate, breakdown *domain.ScoreBreakdown) {
	if cand.Category == "" {
		return
	}

	if containsExact(c.cat.GoodCategories, cand.Category) {
		breakdown.Add("good_category", c.cat.GoodCategoryPoints)
		return
	}

	if strings.EqualFold(cand.Category, c.cat.SoftCategory) && !cand.IsBusiness {
		breakdown.Add("good_category_creator", c.cat.GoodCategoryPoints)
	}
}

func containsExact(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
