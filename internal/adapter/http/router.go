package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/ish/pocketledger/internal/adapter/http/handler"
	"github.com/ish/pocketledger/internal/adapter/http/middleware"
	"github.com/ish/pocketledger/internal/usecase"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	QuickAddHandler    *handler.QuickAddHandler
	HealthHandler      *handler.HealthHandler
	SessionResolver    middleware.SessionResolver
	SessionCookieName  string
	IdempotencyStore   usecase.IdempotencyStore
	QuickAddRateLimit  float64
	QuickAddRateBurst  int
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session-scoped API
	r.Group(func(r chi.Router) {
		sessionMiddleware := middleware.NewSessionMiddleware(cfg.SessionResolver, cfg.SessionCookieName, cfg.Logger)
		r.Use(sessionMiddleware.Wrap)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", cfg.TransactionHandler.List)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		// Quick-add calls out to a language model, so it is rate limited
		// per user and replay-protected.
		r.Group(func(r chi.Router) {
			rateLimiter := middleware.NewRateLimiter(cfg.QuickAddRateLimit, cfg.QuickAddRateBurst)
			r.Use(rateLimiter.Limit)

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Post("/ai", cfg.QuickAddHandler.Create)
		})
	})

	return r
}
