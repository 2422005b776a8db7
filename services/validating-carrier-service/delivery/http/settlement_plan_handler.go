package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/contracts/validating_carrier_service"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/api"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/validator"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/usecase"
)

// SettlementPlanHandler handles HTTP requests displaying settlement plans
type SettlementPlanHandler struct {
	DisplayUseCase usecase.DisplayUseCase
	Logger         logger.LoggerInterface
	API            api.Api
}

// NewSettlementPlanHandler creates a new instance of SettlementPlanHandler
func NewSettlementPlanHandler(displayUseCase usecase.DisplayUseCase, logger logger.LoggerInterface) *SettlementPlanHandler {
	return &SettlementPlanHandler{
		DisplayUseCase: displayUseCase,
		Logger:         logger,
		API:            api.New(logger),
	}
}

// GetHandler lists the settlement plans of a country with their participating carriers
// The host and date come from the host_id and date query parameters
// Returns a 404 status code when the country has no settlement plan
func (h *SettlementPlanHandler) GetHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.Logger.InfoContext(ctx, "Get settlement plans handler called")

	req := validating_carrier_service.SettlementPlansRequest{
		Country: chi.URLParam(r, "country"),
		HostID:  r.URL.Query().Get("host_id"),
		Date:    r.URL.Query().Get("date"),
	}
	if validationErrors := validator.ValidateStruct(&req); validationErrors != nil {
		h.Logger.WarnContext(ctx, "Validation failed for settlement plans", "errors", validationErrors)
		h.API.ValidationError(ctx, w, validationErrors)
		return
	}
	_, req.HostID = pointOfSale(ctx, req.Country, req.HostID)

	var date time.Time
	if req.Date != "" {
		var err error
		if date, err = time.Parse(validating_carrier_service.DateLayout, req.Date); err != nil {
			h.API.BadRequest(ctx, w, "Invalid date")
			return
		}
	}

	display, err := h.DisplayUseCase.SettlementPlans(ctx, req.Country, req.HostID, date)
	if err != nil {
		writeError(ctx, w, h.API, h.Logger, err)
		return
	}

	h.Logger.InfoContext(ctx, "Settlement plans retrieved in handler", "country", display.Country, "plans", len(display.Plans))
	h.API.Success(ctx, w, validating_carrier_service.SettlementPlansToResponse(display))
}
