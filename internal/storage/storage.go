// Package storage opens the key-value backend selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/db"
	"github.com/albapepper/pokedata/internal/kv"
)

// Backend is an opened store plus its release function.
type Backend struct {
	kv.Store
	Name  string
	close func()
}

// Close releases connections held by the backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to the backend named by cfg.KVBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.KVBackend {
	case config.BackendMemory:
		logger.Warn("Using in-memory store; set SEED_DIR to load reference data")
		return &Backend{Store: kv.NewMemory(), Name: cfg.KVBackend}, nil

	case config.BackendPostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		logger.Info("Database connected",
			"min_conns", cfg.DBPoolMinConns,
			"max_conns", cfg.DBPoolMaxConns)
		return &Backend{Store: kv.NewPostgres(pool.Pool), Name: cfg.KVBackend, close: pool.Close}, nil

	case config.BackendRedis:
		r, err := kv.NewRedisFromURL(cfg.RedisURL, "")
		if err != nil {
			return nil, err
		}
		if err := r.Ping(ctx); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("Redis connected")
		return &Backend{Store: r, Name: cfg.KVBackend, close: func() { _ = r.Close() }}, nil

	case config.BackendMinio:
		s, err := kv.NewObjectStore(ctx, cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, err
		}
		logger.Info("Object storage connected", "bucket", cfg.MinioBucket)
		return &Backend{Store: s, Name: cfg.KVBackend}, nil
	}
	return nil, fmt.Errorf("unknown KV backend %q", cfg.KVBackend)
}

// Sweeper returns the backend's sweeper when it needs periodic purging.
func (b *Backend) Sweeper() (kv.Sweeper, bool) {
	s, ok := b.Store.(kv.Sweeper)
	return s, ok
}

// Pinger returns the backend's health probe when it has one.
func (b *Backend) Pinger() (kv.Pinger, bool) {
	p, ok := b.Store.(kv.Pinger)
	return p, ok
}
