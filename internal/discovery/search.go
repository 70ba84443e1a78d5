package discovery

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/provider"
	"github.com/jonesrussell/leadscout/internal/retry"
)

// DiscoverSearch fans targeted queries out to the web-search provider and
// extracts profile usernames from the result URLs. Queries run
// concurrently behind a shared rate limiter; a rate-limited query retries
// with exponential backoff and is dropped, not fatal, when retries run
// out.
func (e *Engine) DiscoverSearch(ctx context.Context, queries []string) ([]Result, domain.DiscoveryStats, error) {
	stats := domain.DiscoveryStats{Source: SourceSearch}
	limiter := rate.NewLimiter(rate.Limit(e.cfg.SearchRPS), 1)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		results  []Result
		dedupErr error
	)
	sem := make(chan struct{}, e.cfg.Concurrency)

	for _, query := range queries {
		wg.Add(1)
		sem <- struct{}{}
		go func(query string) {
			defer wg.Done()
			defer func() { <-sem }()

			urls, err := e.runQuery(ctx, limiter, query)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				stats.Errors++
				e.logger.Warn("search query dropped",
					logger.String("query", query),
					logger.Error(err))
				return
			}
			stats.Fetched += len(urls)

			for _, rawURL := range urls {
				platform, username, ok := ExtractUsername(rawURL)
				if !ok {
					stats.Gated++
					continue
				}

				res, emitted, err := e.markNew(ctx, platform, username, SourceSearch)
				if err != nil {
					if dedupErr == nil {
						dedupErr = fmt.Errorf("search discovery: %w", err)
					}
					return
				}
				if !emitted {
					stats.Duplicates++
					continue
				}
				results = append(results, res)
				stats.Emitted++
			}
		}(query)
	}
	wg.Wait()

	if dedupErr != nil {
		return results, stats, dedupErr
	}
	if err := ctx.Err(); err != nil {
		return results, stats, err
	}

	e.logger.Info("search discovery complete",
		logger.Int("queries", len(queries)),
		logger.Int("fetched", stats.Fetched),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("emitted", stats.Emitted),
		logger.Int("errors", stats.Errors))

	return results, stats, nil
}

// runQuery executes one search under the shared rate limiter, retrying
// rate-limit responses with exponential backoff.
func (e *Engine) runQuery(ctx context.Context, limiter *rate.Limiter, query string) ([]string, error) {
	var urls []string
	err := retry.Do(ctx, retry.Config{
		MaxAttempts:  e.cfg.SearchRetries,
		InitialDelay: e.cfg.BackoffBase,
		Multiplier:   2.0,
		IsRetryable: func(err error) bool {
			return errors.Is(err, provider.ErrRateLimited)
		},
	}, func() error {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		var err error
		urls, err = e.search.Search(ctx, query)
		return err
	})
	return urls, err
}
