package http

import (
	"context"
	"net/http"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/api"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
)

// HealthCheck reports whether one dependency is reachable
type HealthCheck func(ctx context.Context) error

// HealthHandler handles HTTP requests for health check operations
type HealthHandler struct {
	// Checks are run on every health request, keyed by dependency name
	Checks map[string]HealthCheck
	Logger logger.LoggerInterface
	API    api.Api
}

// NewHealthHandler creates a new instance of HealthHandler
func NewHealthHandler(checks map[string]HealthCheck, appLogger logger.LoggerInterface) *HealthHandler {
	return &HealthHandler{
		Checks: checks,
		Logger: appLogger,
		API:    api.New(appLogger),
	}
}

// HealthCheckHandler reports the service status and that of each dependency
// Returns a 200 status code when every check passes, 503 otherwise
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
	defer cancel()
	h.Logger.InfoContext(ctx, "Health check endpoint called")

	dependencies := make(map[string]string, len(h.Checks))
	healthy := true
	for name, check := range h.Checks {
		if err := check(ctx); err != nil {
			h.Logger.WarnContext(ctx, "Health check failed", "dependency", name, "error", err)
			dependencies[name] = "unhealthy"
			healthy = false
			continue
		}
		dependencies[name] = "healthy"
	}

	healthData := map[string]any{
		"status":       "healthy",
		"message":      "Service is running",
		"dependencies": dependencies,
	}
	if !healthy {
		healthData["status"] = "unhealthy"
		healthData["message"] = "Dependency check failed"
		h.API.ServiceUnavailable(ctx, w, healthData)
		return
	}
	h.API.Success(ctx, w, healthData)
}
