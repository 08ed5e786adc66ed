// Package kv defines the key-value storage contract the service reads
// reference tables from and caches ranking snapshots in, plus its backends.
//
// Every backend stores opaque bytes under a string key with an optional TTL.
// A zero TTL means the entry never expires.
package kv

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("kv: key not found")

// Store is the get/put/TTL interface shared by all backends.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Sweeper is implemented by backends that do not expire entries on their
// own and need a periodic purge.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

// Pinger is implemented by backends that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// expiry converts a TTL into an absolute deadline. The zero time means
// no expiry.
func expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
