package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/api"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/jwt"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/metrics"
)

type Router struct {
	ResolverHandler       *ResolverHandler
	SettlementPlanHandler *SettlementPlanHandler
	HealthHandler         *HealthHandler
	JWTClient             jwt.JWTClient
	// Limiter is nil when rate limiting is disabled
	Limiter   *AgencyLimiter
	Metrics   *metrics.Metrics
	AppLogger logger.LoggerInterface
}

func NewRouter(resolverHandler *ResolverHandler, settlementPlanHandler *SettlementPlanHandler, healthHandler *HealthHandler, jwtClient jwt.JWTClient, limiter *AgencyLimiter, m *metrics.Metrics, appLogger logger.LoggerInterface) *Router {
	return &Router{
		ResolverHandler:       resolverHandler,
		SettlementPlanHandler: settlementPlanHandler,
		HealthHandler:         healthHandler,
		JWTClient:             jwtClient,
		Limiter:               limiter,
		Metrics:               m,
		AppLogger:             appLogger,
	}
}

func (r *Router) SetupRoutes() http.Handler {
	router := chi.NewRouter()
	apiClient := api.New(r.AppLogger)

	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.Heartbeat("/ping"))
	router.Use(LoggingMiddleware(r.AppLogger))
	if r.Metrics != nil {
		router.Use(MetricsMiddleware(r.Metrics))
		router.Method(http.MethodGet, "/metrics", r.Metrics.Handler())
	}

	router.Get("/health", r.HealthHandler.HealthCheckHandler)

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(JWTMiddleware(r.JWTClient, r.AppLogger, apiClient))
		if r.Limiter != nil {
			var recorder RateLimitRecorder
			if r.Metrics != nil {
				recorder = r.Metrics
			}
			v1.Use(RateLimitMiddleware(r.Limiter, recorder, r.AppLogger, apiClient))
		}

		v1.Route("/validating-carriers", func(vc chi.Router) {
			vc.Post("/resolve", r.ResolverHandler.ResolveHandler)
			vc.Post("/resolve-batch", r.ResolverHandler.ResolveBatchHandler)
		})
		v1.Get("/settlement-plans/{country}", r.SettlementPlanHandler.GetHandler)
	})
	return router
}
