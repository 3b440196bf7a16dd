package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is loaded from environment variables. cmd/corkboard loads a .env
// file first, so either works.
type Config struct {
	APIEndpoint   string        `env:"CORKBOARD_API_URL" envDefault:"http://localhost:8080/api"`
	HTTPTimeout   time.Duration `env:"CORKBOARD_HTTP_TIMEOUT" envDefault:"15s"`
	RequestRPS    float64       `env:"CORKBOARD_RPS" envDefault:"4"`
	RequestBurst  int           `env:"CORKBOARD_BURST" envDefault:"4"`
	CacheDBPath   string        `env:"CORKBOARD_CACHE_DB"`
	CacheMaxBytes int64         `env:"CORKBOARD_CACHE_MAX_BYTES" envDefault:"1048576"`

	TTLDashboard   time.Duration `env:"CORKBOARD_TTL_DASHBOARD" envDefault:"5m"`
	TTLPosts       time.Duration `env:"CORKBOARD_TTL_POSTS" envDefault:"5m"`
	TTLBoards      time.Duration `env:"CORKBOARD_TTL_BOARDS" envDefault:"30m"`
	SearchDebounce time.Duration `env:"CORKBOARD_SEARCH_DEBOUNCE" envDefault:"300ms"`
}

// Load parses the environment and fills in the default cache path.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.CacheDBPath == "" {
		c.CacheDBPath = defaultCacheDBPath()
	}
	return c, nil
}

func defaultCacheDBPath() string {
	home, _ := os.UserHomeDir()
	if home == "" {
		home = "."
	}
	return filepath.Join(home, ".cache", "corkboard", "corkboard.db")
}
