package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the Postgres backend needs. The
// statement names refer to prepared statements registered by package db.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Prepared statement names registered on every pool connection.
const (
	StmtGet    = "kv_get"
	StmtPut    = "kv_put"
	StmtSweep  = "kv_sweep"
	StmtHealth = "health_check"
)

// Postgres stores entries in the kv_entries table. Expired rows are hidden
// from reads and purged by Sweep.
type Postgres struct {
	q Querier
}

// NewPostgres wraps a pool (or any Querier).
func NewPostgres(q Querier) *Postgres {
	return &Postgres{q: q}
}

// Get returns the live value stored under key.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.q.QueryRow(ctx, StmtGet, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

// Put upserts value under key.
func (p *Postgres) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if at := expiry(time.Now().UTC(), ttl); !at.IsZero() {
		expiresAt = &at
	}
	if _, err := p.q.Exec(ctx, StmtPut, key, value, expiresAt); err != nil {
		return fmt.Errorf("kv put %q: %w", key, err)
	}
	return nil
}

// Sweep deletes expired rows.
func (p *Postgres) Sweep(ctx context.Context) (int64, error) {
	tag, err := p.q.Exec(ctx, StmtSweep)
	if err != nil {
		return 0, fmt.Errorf("kv sweep: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Ping runs the trivial health statement.
func (p *Postgres) Ping(ctx context.Context) error {
	var n int
	return p.q.QueryRow(ctx, StmtHealth).Scan(&n)
}
