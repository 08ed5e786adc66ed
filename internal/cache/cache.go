// Package cache implements cache-aside reads over a kv.Store: return the
// stored value, or compute it with a producer and store it with a TTL.
//
// There is no single-flight: concurrent misses on one key each run the
// producer and each write the result. Entries go away only by TTL.
package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/albapepper/pokedata/internal/kv"
	"github.com/albapepper/pokedata/internal/metrics"
)

// TTLRanking is how long a fetched ranking snapshot is kept (86400 s).
const TTLRanking = 24 * time.Hour

var jsonNull = []byte("null")

// Store wraps a kv.Store with a fixed TTL.
type Store struct {
	kv     kv.Store
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a cache-aside store writing entries with ttl.
func New(store kv.Store, ttl time.Duration, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: store, ttl: ttl, logger: logger}
}

// Get returns the value cached under key. On a miss it calls produce,
// stores the JSON encoding of the result and returns the result as
// produced.
//
// A stored JSON null counts as a miss, so an absent (nil) result is written
// but retried on the next call. Storage failures are logged: a failed read
// is a miss, a failed write still returns the produced value.
func Get[T any](ctx context.Context, s *Store, key string, produce func(context.Context) T) T {
	if v, ok := lookup[T](ctx, s, key); ok {
		metrics.RecordCacheLookup(key, metrics.ResultHit)
		return v
	}
	metrics.RecordCacheLookup(key, metrics.ResultMiss)

	v := produce(ctx)

	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("Cache encode failed", "key", key, "error", err)
		return v
	}
	if err := s.kv.Put(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Cache write failed", "key", key, "error", err)
	}
	return v
}

func lookup[T any](ctx context.Context, s *Store, key string) (T, bool) {
	var v T
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("Cache read failed", "key", key, "error", err)
		}
		return v, false
	}
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn("Cached value unreadable", "key", key, "error", err)
		return v, false
	}
	return v, true
}
