// Package maintenance runs periodic background tasks as Go tickers.
// Backends without native expiry (memory, Postgres, object storage) rely on
// the cleanup sweep to drop expired entries; reads already ignore them.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/pokedata/internal/kv"
	"github.com/albapepper/pokedata/internal/metrics"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CleanupInterval time.Duration // Expired kv entries
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, sweeper kv.Sweeper, cfg Config, logger *slog.Logger) {
	if cfg.CleanupInterval <= 0 {
		logger.Info("Maintenance tickers disabled")
		return
	}
	logger.Info("Maintenance tickers started", "cleanup", cfg.CleanupInterval)

	t := time.NewTicker(cfg.CleanupInterval)
	defer t.Stop()

	runLoop(ctx, t.C, func() { Cleanup(ctx, sweeper, logger) })
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// Cleanup sweeps expired entries once and returns how many were removed.
func Cleanup(ctx context.Context, sweeper kv.Sweeper, logger *slog.Logger) int64 {
	n, err := sweeper.Sweep(ctx)
	if err != nil {
		logger.Warn("Cleanup: failed to sweep expired entries", "error", err)
	}
	if n > 0 {
		metrics.RecordSwept(n)
		logger.Info("Cleanup: swept expired entries", "count", n)
	}
	return n
}
