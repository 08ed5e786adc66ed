// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Storage keys: reference tables are provisioned externally (or by
// `pokedata-ingest seed`), the ranking and detail keys are written here.
// --------------------------------------------------------------------------

const (
	KeyBaseStat    = "BASE_STAT"
	KeyNames       = "names"
	KeyTypes       = "types"
	KeyTokusei     = "tokusei"
	KeyPokeTypeMap = "poke_type_map"

	KeyRanking = "double_battle_pokemon_ranking"
	KeyDetail  = "double_battle_pokemon_detail"
)

// KV backends selectable through KV_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMinio    = "minio"
)

// --------------------------------------------------------------------------
// Config struct: populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production

	// CORS: a single allowed origin, echoed on every response
	CORSAllowOrigin string

	// DefaultLimit applies when ?limit= is missing or non-numeric.
	DefaultLimit int

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Storage
	KVBackend string

	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	RedisURL string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Upstream battle-data service
	HomeAPIBaseURL            string
	HomeResourceBaseURL       string
	UpstreamTimeout           time.Duration
	UpstreamRequestsPerMinute int

	// SeedDir, when set, is loaded into the store at API startup.
	SeedDir string

	// Maintenance
	CleanupInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8787)),
		Environment: envOr("ENVIRONMENT", "development"),

		CORSAllowOrigin: envOr("CORS_ALLOW_ORIGIN", "https://quiz-poke-data.pages.dev"),
		DefaultLimit:    envInt("DEFAULT_LIMIT", 30),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", false),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		KVBackend: strings.ToLower(envOr("KV_BACKEND", BackendMemory)),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		RedisURL: envOr("REDIS_URL", ""),

		MinioEndpoint:  envOr("MINIO_ENDPOINT", ""),
		MinioAccessKey: envOr("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: envOr("MINIO_SECRET_KEY", ""),
		MinioBucket:    envOr("MINIO_BUCKET", "pokemon-data"),
		MinioUseSSL:    envBool("MINIO_USE_SSL", true),

		HomeAPIBaseURL:            envOr("HOME_API_BASE_URL", "https://api.battle.pokemon-home.com"),
		HomeResourceBaseURL:       envOr("HOME_RESOURCE_BASE_URL", "https://resource.pokemon-home.com/battledata"),
		UpstreamTimeout:           time.Duration(envInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,
		UpstreamRequestsPerMinute: envInt("UPSTREAM_REQUESTS_PER_MINUTE", 120),

		SeedDir: envOr("SEED_DIR", ""),

		CleanupInterval: time.Duration(envInt("CLEANUP_INTERVAL_MINUTES", 30)) * time.Minute,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.KVBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when KV_BACKEND=%s", c.KVBackend)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL must be set when KV_BACKEND=%s", c.KVBackend)
		}
	case BackendMinio:
		if c.MinioEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT must be set when KV_BACKEND=%s", c.KVBackend)
		}
	default:
		return fmt.Errorf("unknown KV_BACKEND %q", c.KVBackend)
	}
	if c.CORSAllowOrigin == "" {
		return fmt.Errorf("CORS_ALLOW_ORIGIN must not be empty")
	}
	return nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}
