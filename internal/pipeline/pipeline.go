// Package pipeline drives candidates from discovery through
// classification, persistence and enrichment with a bounded worker pool.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonesrussell/leadscout/internal/classifier"
	"github.com/jonesrussell/leadscout/internal/discovery"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/enrich"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/metrics"
	"github.com/jonesrussell/leadscout/internal/provider"
)

// Rejection kinds used for reporting.
const (
	rejectionHardFilter = "hard_filter"
	rejectionLowScore   = "low_score"

	lowScoreReason = "score below threshold"

	// emailSourceAPI marks emails the profile provider handed over
	// directly, skipping the waterfall.
	emailSourceAPI = "api"

	providerProfile = "profile"
)

// ProfileFetcher is the profile capability the pipeline consumes.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*provider.Profile, error)
	FetchUserFeed(ctx context.Context, username string) ([]provider.FeedPost, error)
}

// Discoverer produces raw candidates from the configured sources.
type Discoverer interface {
	DiscoverHashtag(ctx context.Context, tag string) ([]discovery.Result, domain.DiscoveryStats, error)
	DiscoverPeers(ctx context.Context, seed string) ([]discovery.Result, domain.DiscoveryStats, error)
	DiscoverSearch(ctx context.Context, queries []string) ([]discovery.Result, domain.DiscoveryStats, error)
}

// LeadStore persists qualified leads.
type LeadStore interface {
	Promote(ctx context.Context, lead *domain.Lead) error
	SetEnrichment(ctx context.Context, platform domain.Platform, username, email, source string, attemptedAt time.Time) error
}

// RejectionStore persists rejection verdicts.
type RejectionStore interface {
	Upsert(ctx context.Context, rec *domain.RejectionRecord) error
}

// RunStore persists pipeline run records.
type RunStore interface {
	Create(ctx context.Context, run *domain.Run) error
	Finish(ctx context.Context, run *domain.Run) error
}

// Enricher runs the contact waterfall for one candidate.
type Enricher interface {
	Enrich(ctx context.Context, cand *domain.Candidate) domain.EnrichmentResult
}

// Config holds pipeline inputs and limits.
type Config struct {
	Hashtags      []string
	SeedAccounts  []string
	SearchQueries []string
	Concurrency   int
	MinPosts      int
	EnrichLeads   bool
}

// Pipeline wires the stages together.
type Pipeline struct {
	cfg        Config
	discoverer Discoverer
	profiles   ProfileFetcher
	clf        *classifier.Classifier
	community  *classifier.CommunityClassifier
	leads      LeadStore
	rejections RejectionStore
	runs       RunStore
	enricher   Enricher
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// New builds a pipeline. metrics may be nil to disable instrumentation;
// enricher may be nil to skip the contact waterfall.
func New(
	cfg Config,
	discoverer Discoverer,
	profiles ProfileFetcher,
	clf *classifier.Classifier,
	community *classifier.CommunityClassifier,
	leads LeadStore,
	rejections RejectionStore,
	runs RunStore,
	enricher Enricher,
	m *metrics.Metrics,
	log logger.Logger,
) *Pipeline {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.MinPosts <= 0 {
		cfg.MinPosts = 3
	}
	return &Pipeline{
		cfg:        cfg,
		discoverer: discoverer,
		profiles:   profiles,
		clf:        clf,
		community:  community,
		leads:      leads,
		rejections: rejections,
		runs:       runs,
		enricher:   enricher,
		metrics:    m,
		logger:     log,
	}
}

// counters aggregates per-run outcomes across workers.
type counters struct {
	mu         sync.Mutex
	discovered int
	classified int
	qualified  int
	rejected   int
	enriched   int
	errors     int
}

// Run executes one full sweep: discovery, then classification and
// enrichment of everything discovered. The run record is persisted up
// front and finalized with counters even when the sweep fails partway.
func (p *Pipeline) Run(ctx context.Context, snapshot domain.Run) (*domain.Run, error) {
	run := snapshot
	run.ID = uuid.NewString()
	run.Status = domain.RunStatusRunning
	run.CatalogVersion = p.clf.CatalogVersion()

	if err := p.runs.Create(ctx, &run); err != nil {
		return nil, err
	}

	results, discoverErr := p.discover(ctx)

	var c counters
	c.discovered = len(results)

	p.process(ctx, results, &c)

	run.Discovered = c.discovered
	run.Classified = c.classified
	run.Qualified = c.qualified
	run.Rejected = c.rejected
	run.Enriched = c.enriched
	run.Errors = c.errors
	run.Status = domain.RunStatusCompleted
	if discoverErr != nil || ctx.Err() != nil {
		run.Status = domain.RunStatusFailed
	}

	if err := p.runs.Finish(ctx, &run); err != nil {
		p.logger.Error("failed to finalize run",
			logger.String("run_id", run.ID),
			logger.Error(err))
	}

	p.logger.Info("pipeline run finished",
		logger.String("run_id", run.ID),
		logger.String("status", run.Status),
		logger.Int("discovered", run.Discovered),
		logger.Int("qualified", run.Qualified),
		logger.Int("rejected", run.Rejected),
		logger.Int("enriched", run.Enriched),
		logger.Int("errors", run.Errors))

	return &run, discoverErr
}

// discover runs every configured source, collecting what it can. A source
// failure is logged and the remaining sources still run; the first error
// is reported so the run is marked failed.
func (p *Pipeline) discover(ctx context.Context) ([]discovery.Result, error) {
	var (
		results  []discovery.Result
		firstErr error
	)

	keep := func(batch []discovery.Result, stats domain.DiscoveryStats, err error) {
		results = append(results, batch...)
		if p.metrics != nil {
			p.metrics.RecordDiscovery(stats.Source, stats.Emitted, stats.Gated, stats.Duplicates)
		}
		if err != nil && firstErr == nil && !errors.Is(err, context.Canceled) {
			firstErr = err
		}
		if err != nil {
			p.logger.Error("discovery source failed",
				logger.String("source", stats.Source),
				logger.Error(err))
		}
	}

	for _, tag := range p.cfg.Hashtags {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		keep(p.discoverer.DiscoverHashtag(ctx, tag))
	}

	for _, seed := range p.cfg.SeedAccounts {
		if ctx.Err() != nil {
			return results, ctx.Err()
		}
		keep(p.discoverer.DiscoverPeers(ctx, seed))
	}

	if len(p.cfg.SearchQueries) > 0 && ctx.Err() == nil {
		keep(p.discoverer.DiscoverSearch(ctx, p.cfg.SearchQueries))
	}

	return results, firstErr
}

// process fans candidates out to the worker pool. A failure on one
// candidate never aborts the others.
func (p *Pipeline) process(ctx context.Context, results []discovery.Result, c *counters) {
	queue := make(chan discovery.Result)

	var wg sync.WaitGroup
	for range p.cfg.Concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if p.metrics != nil {
				p.metrics.ActiveWorkers.Inc()
				defer p.metrics.ActiveWorkers.Dec()
			}
			for res := range queue {
				if p.metrics != nil {
					p.metrics.QueueDepth.Dec()
				}
				p.handle(ctx, res, c)
			}
		}()
	}

	for _, res := range results {
		if ctx.Err() != nil {
			break
		}
		if p.metrics != nil {
			p.metrics.QueueDepth.Inc()
		}
		queue <- res
	}
	close(queue)
	wg.Wait()
}

// recordProviderCall instruments one outbound provider request.
func (p *Pipeline) recordProviderCall(name string, err error) {
	if p.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if errors.Is(err, provider.ErrRateLimited) {
			p.metrics.RecordRateLimit(name)
		}
	}
	p.metrics.RecordProviderRequest(name, outcome)
}

// handle runs one candidate through fetch, classify, persist, enrich.
func (p *Pipeline) handle(ctx context.Context, res discovery.Result, c *counters) {
	profile, err := p.profiles.FetchProfile(ctx, res.Username)
	p.recordProviderCall(providerProfile, err)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			p.logger.Debug("candidate profile gone",
				logger.String("username", res.Username))
			return
		}
		c.mu.Lock()
		c.errors++
		c.mu.Unlock()
		p.logger.Warn("failed to fetch candidate profile",
			logger.String("username", res.Username),
			logger.Error(err))
		return
	}

	cand := profile.Candidate(res.Platform, res.Source)

	start := time.Now()
	breakdown := p.clf.Classify(cand)
	if p.metrics != nil {
		p.metrics.RecordClassification(breakdown.Total, breakdown.Qualified, time.Since(start))
	}

	c.mu.Lock()
	c.classified++
	c.mu.Unlock()

	if !breakdown.Qualified {
		if !breakdown.HardFailed() && p.tryCommunity(ctx, cand, c) {
			return
		}
		p.reject(ctx, cand, breakdown, c)
		return
	}

	p.qualify(ctx, cand, breakdown, c)
}

// tryCommunity gives low-scoring accounts a second look through the
// community cascade. Spotlight pages rarely carry the personal-creator
// signals the individual path rewards, yet a well-run local food page is
// still worth outreach.
func (p *Pipeline) tryCommunity(ctx context.Context, cand *domain.Candidate, c *counters) bool {
	if p.community == nil {
		return false
	}

	engagement := p.analyzeEngagement(ctx, cand)
	var gm *classifier.GroupMetrics
	if engagement.PostCount > 0 {
		gm = &classifier.GroupMetrics{
			Views:    int(engagement.AvgViews),
			Likes:    int(engagement.AvgLikes),
			Comments: int(engagement.AvgComments),
		}
	}

	result := p.community.Classify(cand.Bio, cand.Username, gm)
	if !result.Qualified {
		return false
	}

	p.logger.Info("community page qualified",
		logger.String("username", cand.Username),
		logger.String("reason", result.Reason))

	lead := p.buildLead(cand, result.Score, []string{"community"}, engagement)
	if err := p.leads.Promote(ctx, lead); err != nil {
		c.mu.Lock()
		c.errors++
		c.mu.Unlock()
		p.logger.Error("failed to persist community lead",
			logger.String("username", cand.Username),
			logger.Error(err))
		return true
	}

	c.mu.Lock()
	c.qualified++
	c.mu.Unlock()

	if p.cfg.EnrichLeads {
		p.enrich(ctx, cand, c)
	}
	return true
}

// reject persists the verdict so the account is not re-fetched until an
// operator clears it.
func (p *Pipeline) reject(ctx context.Context, cand *domain.Candidate, breakdown *domain.ScoreBreakdown, c *counters) {
	kind := rejectionLowScore
	reasons := []string{lowScoreReason}
	if breakdown.HardFailed() {
		kind = rejectionHardFilter
		reasons = nil
		for _, sig := range breakdown.Signals {
			reasons = append(reasons, strings.TrimPrefix(sig.Name, domain.HardFailPrefix))
		}
	}
	if p.metrics != nil {
		p.metrics.RecordRejection(kind)
	}

	rec := &domain.RejectionRecord{
		Platform: cand.Platform,
		Username: cand.Username,
		Reasons:  reasons,
		Signals:  breakdown.SignalNames(),
		Score:    breakdown.Total,
	}
	if err := p.rejections.Upsert(ctx, rec); err != nil {
		c.mu.Lock()
		c.errors++
		c.mu.Unlock()
		p.logger.Error("failed to persist rejection",
			logger.String("username", cand.Username),
			logger.Error(err))
		return
	}

	c.mu.Lock()
	c.rejected++
	c.mu.Unlock()
}

// qualify builds the lead, folds in the engagement bonus, persists it and
// runs enrichment.
func (p *Pipeline) qualify(ctx context.Context, cand *domain.Candidate, breakdown *domain.ScoreBreakdown, c *counters) {
	engagement := p.analyzeEngagement(ctx, cand)
	lead := p.buildLead(cand, breakdown.Total+engagement.Score, breakdown.SignalNames(), engagement)

	if err := p.leads.Promote(ctx, lead); err != nil {
		c.mu.Lock()
		c.errors++
		c.mu.Unlock()
		p.logger.Error("failed to persist lead",
			logger.String("username", cand.Username),
			logger.Error(err))
		return
	}

	c.mu.Lock()
	c.qualified++
	c.mu.Unlock()

	if p.cfg.EnrichLeads {
		p.enrich(ctx, cand, c)
	}
}

// buildLead snapshots a candidate into a persistable lead.
func (p *Pipeline) buildLead(cand *domain.Candidate, score int, signals []string, engagement classifier.EngagementResult) *domain.Lead {
	return &domain.Lead{
		Platform:         cand.Platform,
		Username:         cand.Username,
		DisplayName:      cand.DisplayName,
		Bio:              cand.Bio,
		FollowerCount:    cand.FollowerCount,
		FollowingCount:   cand.FollowingCount,
		MediaCount:       cand.MediaCount,
		IsVerified:       cand.IsVerified,
		IsBusiness:       cand.IsBusiness,
		Category:         cand.Category,
		ExternalURL:      cand.ExternalURL,
		City:             cand.City,
		Score:            score,
		MatchedSignals:   signals,
		EngagementScore:  engagement.Score,
		EngagementStatus: engagement.Status,
		Phone:            cand.Phone,
		Source:           cand.Source,
		DiscoveredAt:     cand.DiscoveredAt,
	}
}

// analyzeEngagement fetches the recent feed and scores it. A feed fetch
// failure degrades to no bonus rather than failing the candidate.
func (p *Pipeline) analyzeEngagement(ctx context.Context, cand *domain.Candidate) classifier.EngagementResult {
	feed, err := p.profiles.FetchUserFeed(ctx, cand.Username)
	p.recordProviderCall(providerProfile, err)
	if err != nil {
		p.logger.Warn("failed to fetch feed for engagement analysis",
			logger.String("username", cand.Username),
			logger.Error(err))
		return classifier.EngagementResult{Status: classifier.StatusInsufficientData}
	}

	posts := make([]domain.Post, len(feed))
	for i, fp := range feed {
		posts[i] = fp.Post()
	}
	return classifier.AnalyzeEngagement(posts, p.cfg.MinPosts)
}

// enrich resolves a contact email for a freshly promoted lead. The
// provider-supplied email short-circuits the waterfall when usable.
func (p *Pipeline) enrich(ctx context.Context, cand *domain.Candidate, c *counters) {
	start := time.Now()

	var result domain.EnrichmentResult
	source := ""
	switch {
	case enrich.IsValidEmail(cand.PublicEmail):
		result = domain.EnrichmentResult{
			Email:       strings.ToLower(cand.PublicEmail),
			AttemptedAt: time.Now().UTC(),
		}
		source = emailSourceAPI
	case p.enricher != nil:
		result = p.enricher.Enrich(ctx, cand)
		source = string(result.Tier)
	default:
		return
	}

	if p.metrics != nil {
		p.metrics.RecordEnrichment(source, result.Found(), time.Since(start))
	}

	if err := p.leads.SetEnrichment(ctx, cand.Platform, cand.Username,
		result.Email, source, result.AttemptedAt); err != nil {
		c.mu.Lock()
		c.errors++
		c.mu.Unlock()
		p.logger.Error("failed to persist enrichment",
			logger.String("username", cand.Username),
			logger.Error(err))
		return
	}

	if result.Found() {
		c.mu.Lock()
		c.enriched++
		c.mu.Unlock()
	}
}
