package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/contracts/validating_carrier_service"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/api"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/validator"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/usecase"
)

// maxBodyBytes bounds request bodies of the resolve endpoints
const maxBodyBytes = 1 << 20

// ResolverHandler handles HTTP requests for validating carrier resolution
type ResolverHandler struct {
	// ResolverUseCase contains the resolution logic
	ResolverUseCase usecase.ResolverUseCase
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewResolverHandler creates a new instance of ResolverHandler
func NewResolverHandler(resolverUseCase usecase.ResolverUseCase, logger logger.LoggerInterface) *ResolverHandler {
	return &ResolverHandler{
		ResolverUseCase: resolverUseCase,
		Logger:          logger,
		API:             api.New(logger),
	}
}

// ResolveHandler resolves the validating carriers of one itinerary
// Returns a 200 status code with the outcome, including domain failures
// Returns a 400 status code for an unreadable body or missing point of sale
// Returns a 422 status code for validation errors
// Returns a 503 status code when reference data cannot be read
func (h *ResolverHandler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	h.Logger.InfoContext(ctx, "Resolve handler called")

	var req validating_carrier_service.ResolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for resolution", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.Logger.WarnContext(ctx, "Validation failed for resolution", "errors", validationErrors)
		h.API.ValidationError(ctx, w, validationErrors)
		return
	}
	req.Country, req.HostID = pointOfSale(ctx, req.Country, req.HostID)

	m, err := validating_carrier_service.ResolveRequestToModel(&req)
	if err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}

	outcome, err := h.ResolverUseCase.Resolve(ctx, m)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Resolution completed in handler", "result", outcome.Result.String(), "plan", outcome.SettlementPlan)
	h.API.SuccessWithMeta(ctx, w, validating_carrier_service.OutcomeToResponse(outcome), &api.Meta{
		Count:  len(outcome.ValidatingCxrs),
		TookMs: time.Since(start).Milliseconds(),
	})
}

// ResolveBatchHandler resolves several itineraries of one point of sale
// Returns a 200 status code with one outcome per itinerary
// Returns a 400 status code for an unreadable body or an oversized batch
// Returns a 422 status code for validation errors
func (h *ResolverHandler) ResolveBatchHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	h.Logger.InfoContext(ctx, "Resolve batch handler called")

	var req validating_carrier_service.ResolveBatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.Logger.ErrorContext(ctx, "Invalid request body for batch resolution", "error", err)
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}

	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.Logger.WarnContext(ctx, "Validation failed for batch resolution", "errors", validationErrors)
		h.API.ValidationError(ctx, w, validationErrors)
		return
	}
	req.Country, req.HostID = pointOfSale(ctx, req.Country, req.HostID)

	base, itineraries, err := validating_carrier_service.ResolveBatchRequestToModel(&req)
	if err != nil {
		h.API.BadRequest(ctx, w, err.Error())
		return
	}

	batch, err := h.ResolverUseCase.ResolveBatch(ctx, base, itineraries)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Batch resolution completed in handler", "itineraries", len(batch.Outcomes), "distinct", batch.Distinct)
	h.API.SuccessWithMeta(ctx, w, validating_carrier_service.BatchOutcomeToResponse(batch), &api.Meta{
		Count:    len(batch.Outcomes),
		Distinct: batch.Distinct,
		TookMs:   time.Since(start).Milliseconds(),
	})
}
