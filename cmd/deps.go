package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/leadscout/internal/catalog"
	"github.com/jonesrussell/leadscout/internal/classifier"
	"github.com/jonesrussell/leadscout/internal/config"
	"github.com/jonesrussell/leadscout/internal/database"
	"github.com/jonesrussell/leadscout/internal/dedup"
	"github.com/jonesrussell/leadscout/internal/discovery"
	"github.com/jonesrussell/leadscout/internal/domain"
	"github.com/jonesrussell/leadscout/internal/enrich"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/metrics"
	"github.com/jonesrussell/leadscout/internal/pipeline"
	"github.com/jonesrussell/leadscout/internal/provider"
)

// appDeps holds the shared dependencies a command needs.
type appDeps struct {
	Config *config.Config
	Logger logger.Logger
}

// newAppDeps loads configuration and builds the logger.
func newAppDeps() (*appDeps, error) {
	cfg, err := config.LoadOrDefault(config.GetConfigPath(cfgFile))
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if debug {
		cfg.Logging.Level = "debug"
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &appDeps{Config: cfg, Logger: log}, nil
}

// loadCatalog returns the configured signal catalog, compiled-in by
// default.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Classification.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.Classification.CatalogPath)
}

// newClassifiers builds the individual and community classifiers.
func newClassifiers(cfg *config.Config, cat *catalog.Catalog, log logger.Logger) (*classifier.Classifier, *classifier.CommunityClassifier) {
	clf := classifier.New(cat, classifier.Config{
		ScoreThreshold: cfg.Classification.ScoreThreshold,
		HardFilter: classifier.HardFilterConfig{
			FollowerMin: cfg.Classification.FollowerMin,
			FollowerMax: cfg.Classification.FollowerMax,
			RatioMax:    cfg.Classification.RatioMax,
			MinMedia:    cfg.Classification.MinMedia,
			RecencyDays: cfg.Classification.RecencyDays,
		},
	}, log)
	community := classifier.NewCommunity(cat, cfg.Classification.GroupThreshold, log)
	return clf, community
}

// openDatabase opens the Postgres pool.
func openDatabase(cfg *config.Config) (*sqlx.DB, error) {
	return database.NewPostgresConnection(cfg.Database.DSN())
}

// newDedupStore connects the Redis-backed dedup store.
func newDedupStore(ctx context.Context, cfg *config.Config) (*dedup.RedisStore, error) {
	return dedup.NewRedisStore(ctx, dedup.RedisOptions{
		Addr:       cfg.Redis.URL,
		Password:   cfg.Redis.Password,
		DB:         cfg.Redis.Database,
		MaxRetries: cfg.Redis.MaxRetries,
		Timeout:    cfg.Redis.Timeout,
	})
}

// newProfileClient builds the profile provider client.
func newProfileClient(cfg *config.Config, log logger.Logger) *provider.ProfileClient {
	p := cfg.Providers.Profile
	return provider.NewProfileClient(p.BaseURL, p.APIKey, p.Timeout, log)
}

// newDiscoveryEngine wires the discovery engine against live providers.
func newDiscoveryEngine(cfg *config.Config, store dedup.Store, log logger.Logger) *discovery.Engine {
	profile := newProfileClient(cfg, log)
	s := cfg.Providers.Search
	search := provider.NewSearchClient(s.BaseURL, s.APIKey, s.Timeout, log)

	return discovery.NewEngine(profile, search, store, discovery.Config{
		HashtagPages:  cfg.Discovery.HashtagPages,
		Concurrency:   cfg.Discovery.Concurrency,
		SearchRPS:     cfg.Discovery.SearchRPS,
		SearchRetries: cfg.Discovery.SearchRetries,
		BackoffBase:   cfg.Discovery.BackoffBase,
	}, log)
}

// newWaterfall wires the contact waterfall.
func newWaterfall(cfg *config.Config, log logger.Logger) *enrich.Waterfall {
	scanner := enrich.NewLinkScanner(cfg.Enrichment.LinkTimeout, log)
	r := cfg.Providers.Renderer

	var renderer enrich.Renderer
	if r.BaseURL != "" {
		renderer = provider.NewRenderClient(r.BaseURL, r.APIKey, r.Timeout, log)
	}
	return enrich.NewWaterfall(scanner, renderer, cfg.Enrichment.RendererDevice, log)
}

// newPipeline wires the full sweep pipeline over live dependencies.
func newPipeline(ctx context.Context, deps *appDeps, db *sqlx.DB, m *metrics.Metrics) (*pipeline.Pipeline, *dedup.RedisStore, error) {
	cfg := deps.Config
	log := deps.Logger

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	clf, community := newClassifiers(cfg, cat, log)

	store, err := newDedupStore(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect dedup store: %w", err)
	}

	engine := newDiscoveryEngine(cfg, store, log)

	var enricher pipeline.Enricher
	if cfg.Enrichment.Enabled {
		enricher = newWaterfall(cfg, log)
	}

	p := pipeline.New(
		pipeline.Config{
			Hashtags:      cfg.Discovery.Hashtags,
			SeedAccounts:  cfg.Discovery.SeedAccounts,
			SearchQueries: cfg.Discovery.SearchQueries,
			Concurrency:   cfg.Service.Concurrency,
			MinPosts:      cfg.Classification.MinPosts,
			EnrichLeads:   cfg.Enrichment.Enabled,
		},
		engine,
		newProfileClient(cfg, log),
		clf,
		community,
		database.NewLeadsRepository(db),
		database.NewRejectionsRepository(db),
		database.NewRunsRepository(db),
		enricher,
		m,
		log,
	)
	return p, store, nil
}

// runSnapshot captures the settings a run executes with.
func runSnapshot(cfg *config.Config) domain.Run {
	return domain.Run{
		FollowerMin:    cfg.Classification.FollowerMin,
		FollowerMax:    cfg.Classification.FollowerMax,
		ScoreThreshold: cfg.Classification.ScoreThreshold,
	}
}
