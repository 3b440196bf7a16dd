package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.APIEndpoint)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.TTLDashboard)
	assert.Equal(t, 5*time.Minute, cfg.TTLPosts)
	assert.Equal(t, 30*time.Minute, cfg.TTLBoards)
	assert.NotEmpty(t, cfg.CacheDBPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CORKBOARD_API_URL", "https://boards.example.com/api")
	t.Setenv("CORKBOARD_TTL_BOARDS", "1h")
	t.Setenv("CORKBOARD_CACHE_DB", "/tmp/cork.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://boards.example.com/api", cfg.APIEndpoint)
	assert.Equal(t, time.Hour, cfg.TTLBoards)
	assert.Equal(t, "/tmp/cork.db", cfg.CacheDBPath)
}
