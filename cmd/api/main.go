// Command api is the pokedata API server.
//
// Usage:
//
//	pokedata-api
//	KV_BACKEND=redis REDIS_URL=redis://localhost:6379/0 pokedata-api

// @title pokedata API
// @version 1.0.0
// @description Serves the top of the Pokemon HOME Scarlet/Violet double-battle usage ranking joined with names, types and base stats.
// @host localhost:8787
// @BasePath /
// @schemes http https
// @contact.name pokedata
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/pokedata/internal/api"
	"github.com/albapepper/pokedata/internal/cache"
	"github.com/albapepper/pokedata/internal/catalog"
	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/maintenance"
	"github.com/albapepper/pokedata/internal/provider/home"
	"github.com/albapepper/pokedata/internal/ranking"
	"github.com/albapepper/pokedata/internal/storage"

	_ "github.com/albapepper/pokedata/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", "backend", cfg.KVBackend, "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	if cfg.SeedDir != "" {
		res, err := catalog.Seed(ctx, backend, cfg.SeedDir)
		if err != nil {
			logger.Error("Failed to seed reference data", "dir", cfg.SeedDir, "error", err)
			os.Exit(1)
		}
		logger.Info("Reference data seeded", "written", res.Written, "missing", res.Missing)
	}

	client := home.NewClient(cfg.HomeAPIBaseURL, cfg.HomeResourceBaseURL, cfg.UpstreamTimeout, cfg.UpstreamRequestsPerMinute, logger)
	fetcher := ranking.NewFetcher(client, logger)
	rankings := cache.New(backend, cache.TTLRanking, logger)

	if sweeper, ok := backend.Sweeper(); ok {
		go maintenance.Start(ctx, sweeper, maintenance.Config{CleanupInterval: cfg.CleanupInterval}, logger)
	}

	// The unwrapped store exposes Ping and Stats to the health handler.
	router := api.NewRouter(backend.Store, rankings, fetcher, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting pokedata API",
			"addr", addr,
			"environment", cfg.Environment,
			"backend", backend.Name,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
