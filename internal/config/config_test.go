package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "service:\n  name: leadscout\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "leadscout", cfg.Service.Name)
	assert.Equal(t, defaultServicePort, cfg.Service.Port)
	assert.Equal(t, defaultScoreThreshold, cfg.Classification.ScoreThreshold)
	assert.Equal(t, defaultFollowerMin, cfg.Classification.FollowerMin)
	assert.Equal(t, defaultFollowerMax, cfg.Classification.FollowerMax)
	assert.InEpsilon(t, defaultRatioMax, cfg.Classification.RatioMax, 0.001)
	assert.Equal(t, defaultMinMedia, cfg.Classification.MinMedia)
	assert.Equal(t, defaultRecencyDays, cfg.Classification.RecencyDays)
	assert.Equal(t, defaultHashtagPages, cfg.Discovery.HashtagPages)
	assert.Equal(t, defaultRedisURL, cfg.Redis.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, defaultRenderTimeout, cfg.Providers.Renderer.Timeout)
}

func TestLoadYAMLValues(t *testing.T) {
	path := writeConfigFile(t, `
service:
  port: 9090
  concurrency: 8
classification:
  score_threshold: 60
  follower_min: 1000
discovery:
  hashtags:
    - lafoodie
    - ocfoodie
  hashtag_pages: 5
  backoff_base: 10s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Service.Port)
	assert.Equal(t, 8, cfg.Service.Concurrency)
	assert.Equal(t, 60, cfg.Classification.ScoreThreshold)
	assert.Equal(t, 1000, cfg.Classification.FollowerMin)
	assert.Equal(t, []string{"lafoodie", "ocfoodie"}, cfg.Discovery.Hashtags)
	assert.Equal(t, 5, cfg.Discovery.HashtagPages)
	assert.Equal(t, 10*time.Second, cfg.Discovery.BackoffBase)
}

func TestLoadEnvOverridesWin(t *testing.T) {
	path := writeConfigFile(t, "classification:\n  score_threshold: 60\n")

	t.Setenv("SCORE_THRESHOLD", "75")
	t.Setenv("POSTGRES_HOST", "db.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 75, cfg.Classification.ScoreThreshold)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "secret", Database: "leadscout", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=leadscout sslmode=disable",
		d.DSN())
}
