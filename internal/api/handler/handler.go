// Package handler provides HTTP handlers for all API endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/pokedata/internal/api/respond"
	"github.com/albapepper/pokedata/internal/cache"
	"github.com/albapepper/pokedata/internal/kv"
	"github.com/albapepper/pokedata/internal/ranking"
)

// RankingSource produces the current usage ranking, nil when unavailable.
// *ranking.Fetcher satisfies it.
type RankingSource interface {
	LatestUsageRanking(ctx context.Context) []ranking.Entry
}

// Handler holds shared dependencies for all endpoint handlers. It carries
// no per-request state.
type Handler struct {
	store        kv.Store
	rankings     *cache.Store
	source       RankingSource
	defaultLimit int
	logger       *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(store kv.Store, rankings *cache.Store, source RankingSource, defaultLimit int, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:        store,
		rankings:     rankings,
		source:       source,
		defaultLimit: defaultLimit,
		logger:       logger,
	}
}

// NotFound answers every unmatched route.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respond.WriteRouteNotFound(w)
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckStore verifies the key-value backend is reachable.
// @Summary Storage health check
// @Description Pings the configured key-value backend and reports its statistics when available.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/store [get]
func (h *Handler) HealthCheckStore(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if s, ok := h.store.(interface{ Stats() map[string]interface{} }); ok {
		body["store"] = s.Stats()
	}
	if p, ok := h.store.(kv.Pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			h.logger.Warn("Store health check failed", "error", err)
			body["status"] = "unhealthy"
			body["error"] = "Storage connectivity check failed"
			respond.WriteJSONObject(w, http.StatusServiceUnavailable, body)
			return
		}
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}
