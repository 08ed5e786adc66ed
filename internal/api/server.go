package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/pokedata/internal/api/handler"
	"github.com/albapepper/pokedata/internal/cache"
	"github.com/albapepper/pokedata/internal/config"
	"github.com/albapepper/pokedata/internal/kv"
	"github.com/albapepper/pokedata/internal/metrics"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(store kv.Store, rankings *cache.Store, source handler.RankingSource, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(TimingMiddleware)

	// CORS: rs/cors validates the preflight and sets Vary, then the fixed
	// headers replace its per-request values.
	c := corslib.New(corslib.Options{
		AllowedOrigins:     []string{cfg.CORSAllowOrigin},
		AllowedMethods:     CORSMethods,
		AllowedHeaders:     CORSHeaders,
		AllowCredentials:   false,
		OptionsPassthrough: true,
	})
	r.Use(c.Handler)
	r.Use(FixedCORSMiddleware(cfg.CORSAllowOrigin))

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(store, rankings, source, cfg.DefaultLimit, logger)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	// --- Routes ---

	// Docs
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusFound)
	})
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/store", h.HealthCheckStore)
	})

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Get("/api/pokedata/", h.GetPokeData)

	return r
}
