package discovery

import (
	"context"
	"fmt"

	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
)

// DiscoverPeers walks the social graph around a seed account: its
// followers plus the provider's lookalike suggestions. Seeds are
// hand-picked accounts already known to match the persona, so their
// neighborhood is dense with candidates.
func (e *Engine) DiscoverPeers(ctx context.Context, seed string) ([]Result, domain.DiscoveryStats, error) {
	stats := domain.DiscoveryStats{Source: SourcePeers}

	seedID, err := e.profile.FetchProfileID(ctx, seed)
	if err != nil {
		return nil, stats, fmt.Errorf("peer discovery %q: resolve seed: %w", seed, err)
	}

	followers, err := e.profile.FetchFollowers(ctx, seedID)
	if err != nil {
		stats.Errors++
		e.logger.Warn("failed to fetch followers",
			logger.String("seed", seed),
			logger.Error(err))
	}

	similar, err := e.profile.FetchSimilarAccounts(ctx, seed)
	if err != nil {
		stats.Errors++
		e.logger.Warn("failed to fetch similar accounts",
			logger.String("seed", seed),
			logger.Error(err))
	}

	var results []Result
	for _, username := range append(followers, similar...) {
		if ctx.Err() != nil {
			return results, stats, ctx.Err()
		}
		stats.Fetched++

		if username == seed {
			stats.Duplicates++
			continue
		}

		res, emitted, err := e.markNew(ctx, domain.PlatformInstagram, username, SourcePeers)
		if err != nil {
			return results, stats, fmt.Errorf("peer discovery %q: %w", seed, err)
		}
		if !emitted {
			stats.Duplicates++
			continue
		}
		results = append(results, res)
		stats.Emitted++
	}

	e.logger.Info("peer discovery complete",
		logger.String("seed", seed),
		logger.Int("fetched", stats.Fetched),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("emitted", stats.Emitted))

	return results, stats, nil
}
