package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/clickwise/clickwise/internal/api/handlers"
	"github.com/clickwise/clickwise/internal/api/middleware"
	"github.com/clickwise/clickwise/internal/observability"
	"github.com/clickwise/clickwise/internal/services/cpc"
	"github.com/clickwise/clickwise/internal/services/prediction"
	"github.com/clickwise/clickwise/pkg/httputil"
)

// Router holds the HTTP router and its dependencies
type Router struct {
	chi.Router
	logger *zap.Logger
}

// RouterConfig contains configuration for the router
type RouterConfig struct {
	Engine        *prediction.Engine
	Estimator     *cpc.Estimator
	Metrics       *observability.Metrics
	Logger        *zap.Logger
	EnableCORS    bool
	MaxBatchItems int
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Base middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRecoveryMiddleware(cfg.Logger).Handler)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger, cfg.Metrics).Handler)
	r.Use(chimw.Timeout(60 * time.Second))

	// CORS configuration
	if cfg.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/health", healthHandler)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		predictHandler := handlers.NewPredictHandler(cfg.Engine, cfg.Metrics, cfg.MaxBatchItems, cfg.Logger)
		cpcHandler := handlers.NewCPCHandler(cfg.Estimator, cfg.Metrics, cfg.Logger)

		r.Post("/predict", predictHandler.Predict)
		r.Post("/predict/batch", predictHandler.PredictBatch)
		r.Post("/cpc/estimate", cpcHandler.Estimate)
	})

	return &Router{
		Router: r,
		logger: cfg.Logger,
	}
}

// healthHandler returns basic health status
func healthHandler(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "clickwise-api",
	})
}
