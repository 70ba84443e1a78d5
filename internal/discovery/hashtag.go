package discovery

import (
	"context"
	"fmt"

	"github.com/jonesrussell/leadscout/internal/dedup"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// Discovery source labels, persisted on candidates.
const (
	SourceHashtag = "hashtag"
	SourcePeers   = "peers"
	SourceSearch  = "search"
)

// Result is one newly discovered account.
type Result struct {
	Platform domain.Platform
	Username string
	Source   string
}

// Engagement gate thresholds. A hashtag post with no traction is almost
// always a dormant or throwaway account, so resolving its author wastes a
// provider call. One met threshold is enough.
const (
	gateMinComments = 2
	gateMinLikes    = 50
	gateMinViews    = 500
)

// passesEngagementGate reports whether a feed post shows enough traction
// to justify resolving its author.
func passesEngagementGate(comments, likes, views int) bool {
	return comments >= gateMinComments || likes >= gateMinLikes || views >= gateMinViews
}

// DiscoverHashtag scans a hashtag feed and emits post authors that pass
// the engagement gate and have not been seen before. Owner ids are
// deduplicated before author resolution so the same account posting
// repeatedly under the tag costs one resolution at most.
func (e *Engine) DiscoverHashtag(ctx context.Context, tag string) ([]Result, domain.DiscoveryStats, error) {
	stats := domain.DiscoveryStats{Source: SourceHashtag}

	posts, err := e.profile.FetchHashtagFeed(ctx, tag, e.cfg.HashtagPages)
	if err != nil {
		return nil, stats, fmt.Errorf("hashtag discovery %q: %w", tag, err)
	}
	stats.Fetched = len(posts)

	var results []Result
	for _, post := range posts {
		if ctx.Err() != nil {
			return results, stats, ctx.Err()
		}

		if !passesEngagementGate(post.Comments, post.Likes, post.Views) {
			stats.Gated++
			continue
		}

		if post.OwnerID != "" {
			fresh, err := e.store.Add(ctx, dedup.NamespaceOwners, post.OwnerID)
			if err != nil {
				return results, stats, fmt.Errorf("hashtag discovery %q: owner dedup: %w", tag, err)
			}
			if !fresh {
				stats.Duplicates++
				continue
			}
		}

		username, err := e.profile.ResolvePostAuthor(ctx, post.Shortcode)
		if err != nil {
			stats.Errors++
			e.logger.Warn("failed to resolve post author",
				logger.String("tag", tag),
				logger.String("shortcode", post.Shortcode),
				logger.Error(err))
			continue
		}

		res, emitted, err := e.markNew(ctx, domain.PlatformInstagram, username, SourceHashtag)
		if err != nil {
			return results, stats, fmt.Errorf("hashtag discovery %q: %w", tag, err)
		}
		if !emitted {
			stats.Duplicates++
			continue
		}
		results = append(results, res)
		stats.Emitted++
	}

	e.logger.Info("hashtag discovery complete",
		logger.String("tag", tag),
		logger.Int("fetched", stats.Fetched),
		logger.Int("gated", stats.Gated),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("emitted", stats.Emitted))

	return results, stats, nil
}

// markNew records the username in its platform namespace and builds the
// result when the username was not seen before.
func (e *Engine) markNew(ctx context.Context, platform domain.Platform, username, source string) (Result, bool, error) {
	fresh, err := e.store.Add(ctx, usernameNamespace(platform), username)
	if err != nil {
		return Result{}, false, fmt.Errorf("username dedup %q: %w", username, err)
	}
	if !fresh {
		return Result{}, false, nil
	}
	return Result{Platform: platform, Username: username, Source: source}, true, nil
}
