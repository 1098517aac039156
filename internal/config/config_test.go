package config

import (
	"testing"
	"time"

	"github.com/draftroom/keeper-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDev, cfg.AppEnv)
	assert.Equal(t, "keeper-league-api", cfg.ServiceName)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.WriteTimeout)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, logging.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.StatsFeedEnabled)
}

func TestLoadRejectsInvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
}

func TestLoadStatsFeedRequiresCredentials(t *testing.T) {
	t.Setenv("STATSFEED_ENABLED", "true")
	t.Setenv("STATSFEED_BASE_URL", "")
	t.Setenv("STATSFEED_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATSFEED_BASE_URL")

	t.Setenv("STATSFEED_BASE_URL", "https://feed.example.com")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STATSFEED_TOKEN")

	t.Setenv("STATSFEED_TOKEN", "secret")
	t.Setenv("INTERNAL_JOB_TOKEN", "job-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.StatsFeedEnabled)
	assert.Equal(t, "https://feed.example.com", cfg.StatsFeedBaseURL)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logging.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, logging.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, logging.LevelError, parseLogLevel(" error "))
	assert.Equal(t, logging.LevelInfo, parseLogLevel("anything"))
}
