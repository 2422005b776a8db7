// Package api writes the JSON response envelope shared by the HTTP services.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response represents the standard API response format
type Response struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Data      any    `json:"data,omitempty"`
	Error     *Error `json:"error,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
}

// Meta carries response metadata
type Meta struct {
	Count    int   `json:"count,omitempty"`
	Distinct int   `json:"distinct,omitempty"`
	TookMs   int64 `json:"took_ms"`
}

// Error represents the standard error format
type Error struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail contains detailed error information for specific fields
type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Api defines methods for standard API responses
type Api interface {
	Success(ctx context.Context, w http.ResponseWriter, data any)
	SuccessWithMeta(ctx context.Context, w http.ResponseWriter, data any, meta *Meta)
	Error(ctx context.Context, w http.ResponseWriter, statusCode int, apiErr *Error)
	BadRequest(ctx context.Context, w http.ResponseWriter, message string)
	Unauthorized(ctx context.Context, w http.ResponseWriter, message string)
	NotFound(ctx context.Context, w http.ResponseWriter, message string)
	TooManyRequests(ctx context.Context, w http.ResponseWriter, retryAfter time.Duration)
	ServiceUnavailable(ctx context.Context, w http.ResponseWriter, data any)
	InternalServerError(ctx context.Context, w http.ResponseWriter, message string)
	ValidationError(ctx context.Context, w http.ResponseWriter, fields map[string]string)
}

type api struct {
	logger logger.LoggerInterface
}

// New creates a new instance of the API response handler
func New(log logger.LoggerInterface) Api {
	if log == nil {
		log = logger.NoOpLogger()
	}
	return &api{logger: log}
}

func (a *api) write(ctx context.Context, w http.ResponseWriter, statusCode int, response Response) {
	response.RequestID = middleware.GetReqID(ctx)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		a.logger.ErrorContext(ctx, "Failed to encode response", "error", err)
	}
}

// Success sends a 200 response with data
func (a *api) Success(ctx context.Context, w http.ResponseWriter, data any) {
	a.write(ctx, w, http.StatusOK, Response{Status: StatusSuccess, Data: data})
}

// SuccessWithMeta sends a 200 response with data and metadata
func (a *api) SuccessWithMeta(ctx context.Context, w http.ResponseWriter, data any, meta *Meta) {
	a.write(ctx, w, http.StatusOK, Response{Status: StatusSuccess, Data: data, Meta: meta})
}

// Error sends an error response with specific HTTP status code and error details
func (a *api) Error(ctx context.Context, w http.ResponseWriter, statusCode int, apiErr *Error) {
	a.write(ctx, w, statusCode, Response{Status: StatusError, Error: apiErr})
}

// BadRequest sends a 400 Bad Request response
func (a *api) BadRequest(ctx context.Context, w http.ResponseWriter, message string) {
	a.Error(ctx, w, http.StatusBadRequest, &Error{Code: "BAD_REQUEST", Message: message})
}

// Unauthorized sends a 401 Unauthorized response
func (a *api) Unauthorized(ctx context.Context, w http.ResponseWriter, message string) {
	a.Error(ctx, w, http.StatusUnauthorized, &Error{Code: "UNAUTHORIZED", Message: message})
}

// NotFound sends a 404 Not Found response
func (a *api) NotFound(ctx context.Context, w http.ResponseWriter, message string) {
	a.Error(ctx, w, http.StatusNotFound, &Error{Code: "NOT_FOUND", Message: message})
}

// TooManyRequests sends a 429 response with a Retry-After header in whole seconds
func (a *api) TooManyRequests(ctx context.Context, w http.ResponseWriter, retryAfter time.Duration) {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(secs))
	a.Error(ctx, w, http.StatusTooManyRequests, &Error{Code: "RATE_LIMITED", Message: "too many requests"})
}

// ServiceUnavailable sends a 503 response carrying data, used by health checks
func (a *api) ServiceUnavailable(ctx context.Context, w http.ResponseWriter, data any) {
	a.write(ctx, w, http.StatusServiceUnavailable, Response{
		Status: StatusError,
		Data:   data,
		Error:  &Error{Code: "SERVICE_UNAVAILABLE", Message: "dependency check failed"},
	})
}

// InternalServerError sends a 500 Internal Server Error response
func (a *api) InternalServerError(ctx context.Context, w http.ResponseWriter, message string) {
	a.Error(ctx, w, http.StatusInternalServerError, &Error{Code: "INTERNAL_SERVER_ERROR", Message: message})
}

// ValidationError sends a 422 response listing field errors sorted by field name
func (a *api) ValidationError(ctx context.Context, w http.ResponseWriter, fields map[string]string) {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		details = append(details, ErrorDetail{Field: field, Message: msg})
	}
	sort.Slice(details, func(i, j int) bool { return details[i].Field < details[j].Field })

	a.Error(ctx, w, http.StatusUnprocessableEntity, &Error{
		Code:    "VALIDATION_ERROR",
		Message: "Validation failed",
		Details: details,
	})
}
