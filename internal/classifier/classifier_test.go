package classifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/leadscout/internal/catalog"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

func testConfig() Config {
	return Config{
		ScoreThreshold: 45,
		HardFilter: HardFilterConfig{
			FollowerMin: 500,
			FollowerMax: 150000,
			RatioMax:    2.0,
			MinMedia:    30,
			RecencyDays: 30,
		},
	}
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)
	return New(catalog.Default(), testConfig(), log)
}

func recentPost() *time.Time {
	ts := time.Now().AddDate(0, 0, -2)
	return &ts
}

func healthyCandidate(bio string) *domain.Candidate {
	return &domain.Candidate{
		Platform:       domain.PlatformInstagram,
		Username:       "someuser",
		Bio:            bio,
		FollowerCount:  5000,
		FollowingCount: 800,
		MediaCount:     120,
		LastPostAt:     recentPost(),
	}
}

func TestClassifyQualifiesCreatorProfile(t *testing.T) {
	c := newTestClassifier(t)

	cand := healthyCandidate("Los Angeles foodie | hidden gems | DM for collabs")
	breakdown := c.Classify(cand)

	assert.True(t, breakdown.Qualified)
	assert.Equal(t, 65, breakdown.Total)
	assert.Equal(t, []string{
		"identity_keywords", "niche_food_keywords", "location_strong", "intent_commercial",
	}, breakdown.SignalNames())
}

func TestClassifyRejectsBusinessProfile(t *testing.T) {
	c := newTestClassifier(t)

	cand := healthyCandidate("Best tacos in LA! Order now")
	cand.Category = "Restaurant"
	cand.IsBusiness = true

	breakdown := c.Classify(cand)

	assert.False(t, breakdown.Qualified)
	assert.Equal(t, -30, breakdown.Total)
	assert.Contains(t, breakdown.SignalNames(), "business_keywords")
	assert.Contains(t, breakdown.SignalNames(), "bad_category")
}

func TestClassifyIsDeterministic(t *testing.T) {
	c := newTestClassifier(t)
	cand := healthyCandidate("SoCal coffee and matcha creator, DM for collabs")

	first := c.Classify(cand)
	for range 5 {
		again := c.Classify(cand)
		assert.Equal(t, first.Total, again.Total)
		assert.Equal(t, first.Qualified, again.Qualified)
		assert.Equal(t, first.SignalNames(), again.SignalNames())
	}
}

func TestClassifyEngagementPodFloor(t *testing.T) {
	c := newTestClassifier(t)

	cand := healthyCandidate("follow4follow gain train, best eats in LA")
	breakdown := c.Classify(cand)

	assert.False(t, breakdown.Qualified)
	assert.Contains(t, breakdown.SignalNames(), "engagement_pod")
	// A single pod marker wipes out several strong positives at once.
	assert.LessOrEqual(t, breakdown.Total, 0)
}

func TestClassifyHardFailShortCircuits(t *testing.T) {
	c := newTestClassifier(t)

	cand := healthyCandidate("Los Angeles foodie | DM for collabs")
	cand.FollowerCount = 100

	breakdown := c.Classify(cand)

	assert.False(t, breakdown.Qualified)
	assert.Equal(t, 0, breakdown.Total)
	assert.True(t, breakdown.HardFailed())
}

func TestClassifyCategoryOverrides(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		isBusiness bool
		signal     string
		wantBonus  bool
	}{
		{"good category exact", "Digital Creator", false, "good_category", true},
		{"soft category personal account", "Food & Beverage", false, "good_category_creator", true},
		{"soft category business account", "Food & Beverage", true, "good_category_creator", false},
		{"bad category", "Restaurant", false, "bad_category", true},
		{"unknown category", "Astrology", false, "good_category", false},
	}

	c := newTestClassifier(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := healthyCandidate("just a person")
			cand.Category = tt.category
			cand.IsBusiness = tt.isBusiness

			breakdown := c.Classify(cand)
			if tt.wantBonus {
				assert.Contains(t, breakdown.SignalNames(), tt.signal)
			} else {
				assert.NotContains(t, breakdown.SignalNames(), tt.signal)
			}
		})
	}
}

func TestHardFilterAccumulatesAllReasons(t *testing.T) {
	f := NewHardFilter(testConfig().HardFilter)

	stale := time.Now().AddDate(0, 0, -60)
	cand := &domain.Candidate{
		FollowerCount:  200,
		FollowingCount: 900,
		MediaCount:     5,
		IsPrivate:      true,
		LastPostAt:     &stale,
	}

	reasons := f.Check(cand)
	assert.Len(t, reasons, 5)
}

func TestHardFilterBounds(t *testing.T) {
	f := NewHardFilter(testConfig().HardFilter)

	tests := []struct {
		name    string
		mutate  func(*domain.Candidate)
		wantLen int
	}{
		{"passes all checks", func(c *domain.Candidate) {}, 0},
		{"follower min is inclusive", func(c *domain.Candidate) { c.FollowerCount = 500; c.FollowingCount = 400 }, 0},
		{"follower max is inclusive", func(c *domain.Candidate) { c.FollowerCount = 150000 }, 0},
		{"too few followers", func(c *domain.Candidate) { c.FollowerCount = 499; c.FollowingCount = 400 }, 1},
		{"too many followers", func(c *domain.Candidate) { c.FollowerCount = 150001 }, 1},
		{"ratio over limit", func(c *domain.Candidate) { c.FollowingCount = 10001 }, 1},
		{"private account", func(c *domain.Candidate) { c.IsPrivate = true }, 1},
		{"too few posts", func(c *domain.Candidate) { c.MediaCount = 29 }, 1},
		{"no last post timestamp skips recency", func(c *domain.Candidate) { c.LastPostAt = nil }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := healthyCandidate("")
			tt.mutate(cand)
			assert.Len(t, f.Check(cand), tt.wantLen)
		})
	}
}

func TestZeroFollowersSkipsRatioCheck(t *testing.T) {
	f := NewHardFilter(testConfig().HardFilter)

	cand := healthyCandidate("")
	cand.FollowerCount = 0
	cand.FollowingCount = 5000

	reasons := f.Check(cand)
	// Range violation only; the ratio is undefined at zero followers.
	assert.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "outside range")
}
