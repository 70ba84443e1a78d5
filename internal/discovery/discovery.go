// Package discovery produces raw candidate usernames from three
// independent sources: hashtag feeds, the social graph around seed
// accounts, and web-search queries. Every source filters through the
// dedup store so a username enters classification at most once.
package discovery

import (
	"context"
	"time"

	"github.com/jonesrussell/leadscout/internal/dedup"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/provider"
)

// ProfileAPI is the slice of the profile provider that discovery consumes.
type ProfileAPI interface {
	FetchHashtagFeed(ctx context.Context, tag string, pages int) ([]provider.FeedPost, error)
	ResolvePostAuthor(ctx context.Context, shortcode string) (string, error)
	FetchProfileID(ctx context.Context, username string) (string, error)
	FetchFollowers(ctx context.Context, userID string) ([]string, error)
	FetchSimilarAccounts(ctx context.Context, username string) ([]string, error)
}

// SearchAPI is the web-search capability consumed by the search source.
type SearchAPI interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Config bounds discovery fan-out and retry behavior.
type Config struct {
	HashtagPages  int
	Concurrency   int
	SearchRPS     float64
	SearchRetries int
	BackoffBase   time.Duration
}

// Engine runs the discovery sources against shared dedup state.
type Engine struct {
	profile ProfileAPI
	search  SearchAPI
	store   dedup.Store
	cfg     Config
	logger  logger.Logger
}

// NewEngine wires a discovery engine.
func NewEngine(profile ProfileAPI, search SearchAPI, store dedup.Store, cfg Config, log logger.Logger) *Engine {
	if cfg.HashtagPages <= 0 {
		cfg.HashtagPages = 3
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.SearchRPS <= 0 {
		cfg.SearchRPS = 1.0
	}
	if cfg.SearchRetries <= 0 {
		cfg.SearchRetries = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 30 * time.Second
	}
	return &Engine{
		profile: profile,
		search:  search,
		store:   store,
		cfg:     cfg,
		logger:  log,
	}
}

// usernameNamespace returns the per-platform username dedup namespace.
func usernameNamespace(platform domain.Platform) string {
	if platform == domain.PlatformTikTok {
		return dedup.NamespaceTikTokUsernames
	}
	return dedup.NamespaceUsernames
}
