package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/api"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain"
)

// writeError maps usecase errors to responses; AppError codes become the HTTP status
func writeError(ctx context.Context, w http.ResponseWriter, apiClient api.Api, log logger.LoggerInterface, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		log.ErrorContext(ctx, "Unexpected error", "error", err)
		apiClient.InternalServerError(ctx, w, "An unexpected error occurred")
		return
	}

	switch appErr.Code {
	case http.StatusBadRequest:
		apiClient.BadRequest(ctx, w, appErr.Message)
	case http.StatusNotFound:
		apiClient.NotFound(ctx, w, appErr.Message)
	case http.StatusServiceUnavailable:
		log.ErrorContext(ctx, "Reference data unavailable", "error", err)
		apiClient.Error(ctx, w, http.StatusServiceUnavailable, &api.Error{Code: "SERVICE_UNAVAILABLE", Message: appErr.Message})
	default:
		log.ErrorContext(ctx, "Unhandled application error", "code", appErr.Code, "error", err)
		apiClient.InternalServerError(ctx, w, "An unexpected error occurred")
	}
}

// pointOfSale fills an empty country or host from the access token
func pointOfSale(ctx context.Context, country, hostID string) (string, string) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return country, hostID
	}
	if country == "" {
		country = claims.Country
	}
	if hostID == "" {
		hostID = claims.HostID
	}
	return country, hostID
}
