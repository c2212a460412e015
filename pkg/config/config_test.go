package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "./data/health_analytics.db", cfg.SQLite.Path)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 10, cfg.Chat.MaxTurnsPerSession)
	assert.Equal(t, 1000, cfg.Chat.MaxSessions)
	assert.Equal(t, 5, cfg.Chat.FetchTimeoutSec)
	assert.Equal(t, 60, cfg.RateLimit.MaxRequestsPerMinute)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EAGLE_SERVER_PORT", "9090")
	t.Setenv("EAGLE_CHAT_MAXTURNSPERSESSION", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Chat.MaxTurnsPerSession)
}
