package domain

import "errors"

// Error types with HTTP status codes
type AppError struct {
	Message string
	Code    int
}

func (e *AppError) Error() string {
	return e.Message
}

// Custom error types
var (
	ErrInvalidRequest = &AppError{
		Message: "invalid resolution request",
		Code:    400, // StatusBadRequest
	}
	ErrPointOfSaleRequired = &AppError{
		Message: "point of sale country and host are required",
		Code:    400, // StatusBadRequest
	}
	ErrBatchTooLarge = &AppError{
		Message: "too many itineraries in batch",
		Code:    400, // StatusBadRequest
	}
	ErrPlanNotFound = &AppError{
		Message: "no settlement plans found for country",
		Code:    404, // StatusNotFound
	}
	ErrReferenceDataUnavailable = &AppError{
		Message: "reference data is unavailable",
		Code:    503, // StatusServiceUnavailable
	}
)

// Standard error types for repositories
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidSnapshot = errors.New("invalid reference data snapshot")
)
