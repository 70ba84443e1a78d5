package config

import (
	"fmt"
	"os"
	"time"

	"github.com/jonesrussell/leadscout/internal/logger"
)

// Default configuration values.
const (
	defaultServiceName     = "leadscout"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8080
	defaultConcurrency     = 5
	defaultBatchSize       = 50
	defaultDBHost          = "localhost"
	defaultDBPort          = 5432
	defaultDBUser          = "postgres"
	defaultDBName          = "leadscout"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultRedisURL        = "localhost:6379"
	defaultRedisMaxRetries = 3
	defaultRedisTimeoutSec = 5
	defaultScoreThreshold  = 45
	defaultGroupThreshold  = 35
	defaultFollowerMin     = 500
	defaultFollowerMax     = 150000
	defaultRatioMax        = 2.0
	defaultMinMedia        = 30
	defaultRecencyDays     = 30
	defaultMinPosts        = 3
	defaultHashtagPages    = 3
	defaultSearchRPS       = 1.0
	defaultSearchRetries   = 3
	defaultBackoffBaseSec  = 30
	defaultProviderTimeout = 30 * time.Second
	defaultRenderTimeout   = 90 * time.Second
	defaultLinkTimeout     = 15 * time.Second
	defaultRendererDevice  = "iPhone 13"
	defaultSweepSchedule   = "0 */6 * * *"
)

// Config holds all configuration for the leadscout service.
type Config struct {
	Service        ServiceConfig        `yaml:"service"`
	Database       DatabaseConfig       `yaml:"database"`
	Redis          RedisConfig          `yaml:"redis"`
	Logging        logger.Config        `yaml:"logging"`
	Classification ClassificationConfig `yaml:"classification"`
	Discovery      DiscoveryConfig      `yaml:"discovery"`
	Enrichment     EnrichmentConfig     `yaml:"enrichment"`
	Providers      ProvidersConfig      `yaml:"providers"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`
	Port          int    `env:"LEADSCOUT_PORT"        yaml:"port"`
	Debug         bool   `env:"APP_DEBUG"             yaml:"debug"`
	Concurrency   int    `env:"LEADSCOUT_CONCURRENCY" yaml:"concurrency"`
	BatchSize     int    `yaml:"batch_size"`
	SweepSchedule string `yaml:"sweep_schedule"`
}

// DatabaseConfig holds Postgres configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// DSN returns the Postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

// RedisConfig holds Redis configuration for the dedup store.
type RedisConfig struct {
	URL        string        `env:"REDIS_URL"      yaml:"url"`
	Password   string        `env:"REDIS_PASSWORD" yaml:"password"`
	Database   int           `yaml:"database"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ClassificationConfig holds hard-filter bounds and scoring thresholds.
type ClassificationConfig struct {
	// ScoreThreshold is the minimum additive score for an individual account.
	ScoreThreshold int `env:"SCORE_THRESHOLD" yaml:"score_threshold"`
	// GroupThreshold is the minimum combined score for community accounts.
	GroupThreshold int `yaml:"group_threshold"`
	// CatalogPath optionally overrides the compiled-in signal catalog.
	CatalogPath string  `env:"CATALOG_PATH" yaml:"catalog_path"`
	FollowerMin int     `env:"FOLLOWER_MIN" yaml:"follower_min"`
	FollowerMax int     `env:"FOLLOWER_MAX" yaml:"follower_max"`
	RatioMax    float64 `yaml:"ratio_max"`
	MinMedia    int     `yaml:"min_media"`
	RecencyDays int     `yaml:"recency_days"`
	// MinPosts is the engagement sample size below which no bonus is awarded.
	MinPosts int `yaml:"min_posts"`
}

// DiscoveryConfig holds discovery source inputs and fan-out limits.
type DiscoveryConfig struct {
	Hashtags     []string `env:"DISCOVERY_HASHTAGS" yaml:"hashtags"`
	SeedAccounts []string `env:"DISCOVERY_SEEDS"    yaml:"seed_accounts"`
	// HashtagPages is how many feed pages each hashtag source pulls.
	HashtagPages  int      `yaml:"hashtag_pages"`
	SearchQueries []string `yaml:"search_queries"`
	Concurrency   int      `yaml:"concurrency"`
	// SearchRPS caps outbound search-provider calls per second.
	SearchRPS     float64       `yaml:"search_rps"`
	SearchRetries int           `yaml:"search_retries"`
	BackoffBase   time.Duration `yaml:"backoff_base"`
}

// EnrichmentConfig holds contact-waterfall settings.
type EnrichmentConfig struct {
	Enabled bool `yaml:"enabled"`
	// LinkTimeout bounds a single bio-link page fetch.
	LinkTimeout time.Duration `yaml:"link_timeout"`
	// RendererDevice is the device profile used for rendered-profile capture.
	RendererDevice string `yaml:"renderer_device"`
}

// ProvidersConfig holds the outbound provider endpoints.
type ProvidersConfig struct {
	Profile  ProviderConfig `yaml:"profile"`
	Search   ProviderConfig `yaml:"search"`
	Renderer ProviderConfig `yaml:"renderer"`
}

// ProviderConfig holds a single provider endpoint.
type ProviderConfig struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return loadWithDefaults[Config](path, SetDefaults)
}

// LoadOrDefault loads the config file when present and falls back to
// defaults plus environment overrides when it is not.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := loadEnvFiles(); err != nil {
			return nil, fmt.Errorf("load environment files: %w", err)
		}
		cfg := &Config{}
		SetDefaults(cfg)
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return Load(path)
}

// SetDefaults applies default values to the config.
func SetDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	cfg.Logging.SetDefaults()
	setClassificationDefaults(&cfg.Classification)
	setDiscoveryDefaults(&cfg.Discovery)
	setEnrichmentDefaults(&cfg.Enrichment)
	setProviderDefaults(&cfg.Providers)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
	if s.Concurrency == 0 {
		s.Concurrency = defaultConcurrency
	}
	if s.BatchSize == 0 {
		s.BatchSize = defaultBatchSize
	}
	if s.SweepSchedule == "" {
		s.SweepSchedule = defaultSweepSchedule
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setRedisDefaults(r *RedisConfig) {
	if r.URL == "" {
		r.URL = defaultRedisURL
	}
	if r.MaxRetries == 0 {
		r.MaxRetries = defaultRedisMaxRetries
	}
	if r.Timeout == 0 {
		r.Timeout = defaultRedisTimeoutSec * time.Second
	}
}

func setClassificationDefaults(c *ClassificationConfig) {
	if c.ScoreThreshold == 0 {
		c.ScoreThreshold = defaultScoreThreshold
	}
	if c.GroupThreshold == 0 {
		c.GroupThreshold = defaultGroupThreshold
	}
	if c.FollowerMin == 0 {
		c.FollowerMin = defaultFollowerMin
	}
	if c.FollowerMax == 0 {
		c.FollowerMax = defaultFollowerMax
	}
	if c.RatioMax == 0 {
		c.RatioMax = defaultRatioMax
	}
	if c.MinMedia == 0 {
		c.MinMedia = defaultMinMedia
	}
	if c.RecencyDays == 0 {
		c.RecencyDays = defaultRecencyDays
	}
	if c.MinPosts == 0 {
		c.MinPosts = defaultMinPosts
	}
}

func setDiscoveryDefaults(d *DiscoveryConfig) {
	if d.HashtagPages == 0 {
		d.HashtagPages = defaultHashtagPages
	}
	if d.Concurrency == 0 {
		d.Concurrency = defaultConcurrency
	}
	if d.SearchRPS == 0 {
		d.SearchRPS = defaultSearchRPS
	}
	if d.SearchRetries == 0 {
		d.SearchRetries = defaultSearchRetries
	}
	if d.BackoffBase == 0 {
		d.BackoffBase = defaultBackoffBaseSec * time.Second
	}
}

func setEnrichmentDefaults(e *EnrichmentConfig) {
	if e.LinkTimeout == 0 {
		e.LinkTimeout = defaultLinkTimeout
	}
	if e.RendererDevice == "" {
		e.RendererDevice = defaultRendererDevice
	}
}

func setProviderDefaults(p *ProvidersConfig) {
	if p.Profile.Timeout == 0 {
		p.Profile.Timeout = defaultProviderTimeout
	}
	if p.Search.Timeout == 0 {
		p.Search.Timeout = defaultProviderTimeout
	}
	if p.Renderer.Timeout == 0 {
		p.Renderer.Timeout = defaultRenderTimeout
	}
}
