package discovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/leadscout/internal/dedup"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/provider"
)

type fakeProfileAPI struct {
	feed      []provider.FeedPost
	feedErr   error
	authors   map[string]string
	authorErr error
	profileID string
	followers []string
	similar   []string
}

func (f *fakeProfileAPI) FetchHashtagFeed(context.Context, string, int) ([]provider.FeedPost, error) {
	return f.feed, f.feedErr
}

func (f *fakeProfileAPI) ResolvePostAuthor(_ context.Context, shortcode string) (string, error) {
	if f.authorErr != nil {
		return "", f.authorErr
	}
	username, ok := f.authors[shortcode]
	if !ok {
		return "", provider.ErrNotFound
	}
	return username, nil
}

func (f *fakeProfileAPI) FetchProfileID(context.Context, string) (string, error) {
	return f.profileID, nil
}

func (f *fakeProfileAPI) FetchFollowers(context.Context, string) ([]string, error) {
	return f.followers, nil
}

func (f *fakeProfileAPI) FetchSimilarAccounts(context.Context, string) ([]string, error) {
	return f.similar, nil
}

type fakeSearchAPI struct {
	mu      sync.Mutex
	results map[string][]string
	fails   map[string]int
	calls   map[string]int
}

func (f *fakeSearchAPI) Search(_ context.Context, query string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[query]++

	if f.fails[query] > 0 {
		f.fails[query]--
		return nil, provider.ErrRateLimited
	}
	return f.results[query], nil
}

func testLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error"})
	require.NoError(t, err)
	return log
}

func newTestEngine(profile ProfileAPI, search SearchAPI, t *testing.T) *Engine {
	t.Helper()
	return NewEngine(profile, search, dedup.NewMemoryStore(), Config{
		SearchRPS:   1000,
		BackoffBase: time.Millisecond,
	}, testLogger(t))
}

func usernamesOf(results []Result) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Username)
	}
	return names
}

func TestDiscoverHashtagGatesAndDedupes(t *testing.T) {
	profile := &fakeProfileAPI{
		feed: []provider.FeedPost{
			{Shortcode: "aaa", OwnerID: "1", Likes: 80},                // passes on likes
			{Shortcode: "bbb", OwnerID: "2", Comments: 3},             // passes on comments
			{Shortcode: "ccc", OwnerID: "3", Views: 900},              // passes on views
			{Shortcode: "ddd", OwnerID: "4", Likes: 10, Comments: 1},  // gated
			{Shortcode: "eee", OwnerID: "1", Likes: 200},              // duplicate owner
		},
		authors: map[string]string{
			"aaa": "la_foodie",
			"bbb": "oc_eats",
			"ccc": "sd_brunch",
		},
	}
	engine := newTestEngine(profile, nil, t)

	results, stats, err := engine.DiscoverHashtag(context.Background(), "lafoodie")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"la_foodie", "oc_eats", "sd_brunch"}, usernamesOf(results))
	assert.Equal(t, 5, stats.Fetched)
	assert.Equal(t, 1, stats.Gated)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 3, stats.Emitted)

	for _, r := range results {
		assert.Equal(t, domain.PlatformInstagram, r.Platform)
		assert.Equal(t, SourceHashtag, r.Source)
	}
}

func TestDiscoverHashtagSameIdentifierTwiceEmitsOnce(t *testing.T) {
	profile := &fakeProfileAPI{
		feed: []provider.FeedPost{
			{Shortcode: "aaa", OwnerID: "1", Likes: 80},
		},
		authors: map[string]string{"aaa": "la_foodie"},
	}
	engine := newTestEngine(profile, nil, t)

	first, _, err := engine.DiscoverHashtag(context.Background(), "lafoodie")
	require.NoError(t, err)
	second, _, err := engine.DiscoverHashtag(context.Background(), "lafoodie")
	require.NoError(t, err)

	assert.Len(t, append(first, second...), 1)
}

func TestDiscoverHashtagResolveFailureIsNotFatal(t *testing.T) {
	profile := &fakeProfileAPI{
		feed: []provider.FeedPost{
			{Shortcode: "aaa", OwnerID: "1", Likes: 80},
			{Shortcode: "bbb", OwnerID: "2", Likes: 80},
		},
		authors: map[string]string{"bbb": "oc_eats"},
	}
	engine := newTestEngine(profile, nil, t)

	results, stats, err := engine.DiscoverHashtag(context.Background(), "lafoodie")
	require.NoError(t, err)

	assert.Equal(t, []string{"oc_eats"}, usernamesOf(results))
	assert.Equal(t, 1, stats.Errors)
}

func TestDiscoverPeersMergesFollowersAndSimilar(t *testing.T) {
	profile := &fakeProfileAPI{
		profileID: "99",
		followers: []string{"la_foodie", "oc_eats"},
		similar:   []string{"oc_eats", "sd_brunch", "seedaccount"},
	}
	engine := newTestEngine(profile, nil, t)

	results, stats, err := engine.DiscoverPeers(context.Background(), "seedaccount")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"la_foodie", "oc_eats", "sd_brunch"}, usernamesOf(results))
	assert.Equal(t, 5, stats.Fetched)
	assert.Equal(t, 2, stats.Duplicates)
	assert.Equal(t, 3, stats.Emitted)
	assert.Equal(t, SourcePeers, results[0].Source)
}

func TestDiscoverSearchExtractsAndDedupes(t *testing.T) {
	search := &fakeSearchAPI{results: map[string][]string{
		"la food blogger instagram": {
			"https://www.instagram.com/la_foodie/",
			"https://www.instagram.com/explore/tags/lafood/",
			"https://www.tiktok.com/@sd.brunch",
			"https://news.example.com/article",
		},
		"oc eats instagram": {
			"https://www.instagram.com/la_foodie.",
			"https://www.instagram.com/oc_eats",
		},
	}}
	engine := newTestEngine(nil, search, t)

	results, stats, err := engine.DiscoverSearch(context.Background(), []string{
		"la food blogger instagram",
		"oc eats instagram",
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"la_foodie", "sd.brunch", "oc_eats"}, usernamesOf(results))
	assert.Equal(t, 6, stats.Fetched)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 3, stats.Emitted)
}

func TestDiscoverSearchRetriesRateLimit(t *testing.T) {
	search := &fakeSearchAPI{
		results: map[string][]string{
			"q": {"https://www.instagram.com/la_foodie"},
		},
		fails: map[string]int{"q": 2},
	}
	engine := newTestEngine(nil, search, t)

	results, stats, err := engine.DiscoverSearch(context.Background(), []string{"q"})
	require.NoError(t, err)

	assert.Equal(t, []string{"la_foodie"}, usernamesOf(results))
	assert.Equal(t, 3, search.calls["q"])
	assert.Equal(t, 0, stats.Errors)
}

func TestDiscoverSearchDropsQueryAfterRetriesExhausted(t *testing.T) {
	search := &fakeSearchAPI{
		results: map[string][]string{
			"bad":  nil,
			"good": {"https://www.instagram.com/la_foodie"},
		},
		fails: map[string]int{"bad": 10},
	}
	engine := newTestEngine(nil, search, t)

	results, stats, err := engine.DiscoverSearch(context.Background(), []string{"bad", "good"})
	require.NoError(t, err)

	assert.Equal(t, []string{"la_foodie"}, usernamesOf(results))
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 3, search.calls["bad"])
}

func TestDiscoverHashtagFeedErrorIsFatal(t *testing.T) {
	profile := &fakeProfileAPI{feedErr: errors.New("provider down")}
	engine := newTestEngine(profile, nil, t)

	_, _, err := engine.DiscoverHashtag(context.Background(), "lafoodie")
	assert.Error(t, err)
}

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform domain.Platform
		username string
		ok       bool
	}{
		{"instagram profile", "https://www.instagram.com/la_foodie/", domain.PlatformInstagram, "la_foodie", true},
		{"instagram uppercase", "https://www.instagram.com/LA_Foodie", domain.PlatformInstagram, "la_foodie", true},
		{"instagram trailing dot", "https://www.instagram.com/la_foodie.", domain.PlatformInstagram, "la_foodie", true},
		{"instagram post route", "https://www.instagram.com/p/Cxyz123/", "", "", false},
		{"instagram reel route", "https://www.instagram.com/reel/Cxyz123/", "", "", false},
		{"instagram explore", "https://www.instagram.com/explore/tags/food/", "", "", false},
		{"instagram stories", "https://www.instagram.com/stories/la_foodie/", "", "", false},
		{"tiktok profile", "https://www.tiktok.com/@sd.brunch", domain.PlatformTikTok, "sd.brunch", true},
		{"unrelated url", "https://news.example.com/article", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform, username, ok := ExtractUsername(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.platform, platform)
			assert.Equal(t, tt.username, username)
		})
	}
}
