package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "jobmarket")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "secret")
	t.Setenv("CONFIG_FILE", "")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := Load()
	require.ErrorIs(t, err, errMissingRequiredEnv)
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
	assert.NotContains(t, err.Error(), "HTTP_PORT")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "jobmarket", cfg.App.AppName)
	assert.Equal(t, 0.8, cfg.Matching.DedupThreshold)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "INFO", cfg.Logger.Level)
	assert.Equal(t, []string{"developer", "software engineer", "programmer"}, cfg.Ingestion.JoobleKeywords)
	assert.Equal(t, 4, cfg.Ingestion.Workers)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DEDUP_THRESHOLD", "0.9")
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("LOG_LEVEL", " debug ")
	t.Setenv("DB_POOL_MAX_CONNS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.9, cfg.Matching.DedupThreshold)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, "DEBUG", cfg.Logger.Level)
	assert.Equal(t, int32(12), cfg.Database.PoolMaxConns)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	setRequired(t)
	t.Setenv("DEDUP_THRESHOLD", "1.5")

	_, err := Load()
	assert.ErrorIs(t, err, errInvalidConfig)
}

func TestLoad_ConfigFile(t *testing.T) {
	setRequired(t)
	t.Setenv("INGEST_WORKERS", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ingestion:
  workers: 7
  jooble_keywords: [golang, rust]
matching:
  taxonomy_file: /etc/jobmarket/taxonomy.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Ingestion.Workers)
	assert.Equal(t, []string{"golang", "rust"}, cfg.Ingestion.JoobleKeywords)
	assert.Equal(t, "/etc/jobmarket/taxonomy.yaml", cfg.Matching.TaxonomyFile)
}
