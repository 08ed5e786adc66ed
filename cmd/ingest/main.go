// Command ingest is the pokedata ingestion CLI.
//
// Usage:
//
//	pokedata-ingest seed --dir ./data
//	pokedata-ingest season
//	pokedata-ingest ranking --force
//	pokedata-ingest detail
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/pokedata/internal/cache"
	"github.com/albapepper/pokedata/internal/catalog"
	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/provider/home"
	"github.com/albapepper/pokedata/internal/ranking"
	"github.com/albapepper/pokedata/internal/storage"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "pokedata-ingest",
		Short: "pokedata ingestion CLI",
	}

	root.AddCommand(seedCmd())
	root.AddCommand(seasonCmd())
	root.AddCommand(rankingCmd())
	root.AddCommand(detailCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write reference files (BASE_STAT, names, types, tokusei, poke_type_map) into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, _ *config.Config, backend *storage.Backend) error {
				res, err := catalog.Seed(ctx, backend, dir)
				if err != nil {
					return err
				}
				logger.Info("Seed finished", "written", res.Written, "missing", res.Missing)
				if len(res.Written) == 0 {
					return fmt.Errorf("no reference files found in %s", dir)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "data", "Directory holding the reference files")
	return cmd
}

// --------------------------------------------------------------------------
// season / ranking / detail commands
// --------------------------------------------------------------------------

func seasonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "season",
		Short: "Print the competition descriptor of the latest doubles season",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			d, ok := newFetcher(cfg).ResolveLatestDoubles(ctx)
			if !ok {
				return ranking.ErrNotFound
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		},
	}
}

func rankingCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Warm the cached doubles usage ranking",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, backend *storage.Backend) error {
				fetcher := newFetcher(cfg)
				start := time.Now()

				var entries []ranking.Entry
				if force {
					entries = fetcher.LatestUsageRanking(ctx)
					if entries != nil {
						if err := putJSON(ctx, backend, config.KeyRanking, entries); err != nil {
							return err
						}
					}
				} else {
					rankings := cache.New(backend, cache.TTLRanking, logger)
					entries = cache.Get(ctx, rankings, config.KeyRanking, fetcher.LatestUsageRanking)
				}
				if entries == nil {
					return ranking.ErrNotFound
				}
				logger.Info("Ranking cached", "entries", len(entries), "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Refetch even when a cached ranking exists")
	return cmd
}

func detailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detail",
		Short: "Fetch and store the merged per-Pokemon detail shards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, backend *storage.Backend) error {
				start := time.Now()
				detail := newFetcher(cfg).LatestDetail(ctx)
				if detail == nil {
					return ranking.ErrNotFound
				}
				if err := putJSON(ctx, backend, config.KeyDetail, detail); err != nil {
					return err
				}
				logger.Info("Detail cached", "entries", len(detail), "duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func runIngest(fn func(ctx context.Context, cfg *config.Config, backend *storage.Backend) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.KVBackend == config.BackendMemory {
		logger.Warn("KV_BACKEND=memory: results are discarded when the command exits")
	}

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	return fn(ctx, cfg, backend)
}

func newFetcher(cfg *config.Config) *ranking.Fetcher {
	client := home.NewClient(cfg.HomeAPIBaseURL, cfg.HomeResourceBaseURL, cfg.UpstreamTimeout, cfg.UpstreamRequestsPerMinute, logger)
	return ranking.NewFetcher(client, logger)
}

func putJSON(ctx context.Context, backend *storage.Backend, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := backend.Put(ctx, key, data, cache.TTLRanking); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
