// Package validating_carrier_service contains request and response contracts for the validating carrier service
package validating_carrier_service

import (
	"fmt"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// DateLayout is the layout of ticket dates in requests
const DateLayout = "2006-01-02"

// NSP modes accepted in requests
const (
	NSPModeNoValidation = "NO_VALIDATION"
	NSPModeInterline    = "INTERLINE_VALIDATION"
)

// SegmentRequest is one flight segment; "**" marks an open segment
type SegmentRequest struct {
	MarketingCarrier string `json:"marketing_carrier" validate:"required,carrier|eq=**"`
	OperatingCarrier string `json:"operating_carrier,omitempty" validate:"omitempty,carrier"`
}

// NoSettlementPlanRequest asks for carriers ticketed without a settlement plan
type NoSettlementPlanRequest struct {
	Mode      string   `json:"mode" validate:"required,oneof=NO_VALIDATION INTERLINE_VALIDATION"`
	Carriers  []string `json:"carriers,omitempty" validate:"omitempty,dive,carrier"`
	Countries []string `json:"countries,omitempty" validate:"omitempty,dive,nation"`
}

// ResolveRequest represents the request payload for resolving validating carriers
// Country and host default to the point of sale of the access token
type ResolveRequest struct {
	Country                     string                   `json:"country,omitempty" validate:"omitempty,nation"`
	HostID                      string                   `json:"host_id,omitempty" validate:"omitempty,min=2,max=3,alphanum"`
	SettlementPlan              string                   `json:"settlement_plan,omitempty" validate:"omitempty,plan"`
	ValidatingCarrier           string                   `json:"validating_carrier,omitempty" validate:"omitempty,carrier"`
	Segments                    []SegmentRequest         `json:"segments" validate:"required,min=1,max=99,dive"`
	ParticipatingCarriers       []string                 `json:"participating_carriers,omitempty" validate:"omitempty,max=99,dive,carrier"`
	TicketType                  string                   `json:"ticket_type,omitempty" validate:"omitempty,oneof=ETKT_PREF ETKT_REQ PAPER_TKT_PREF PAPER_TKT_REQ"`
	TicketDate                  string                   `json:"ticket_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OnlyCheckAgreementExistence bool                     `json:"only_check_agreement_existence,omitempty"`
	NoSettlementPlan            *NoSettlementPlanRequest `json:"no_settlement_plan,omitempty" validate:"omitempty"`
	Diagnostic                  bool                     `json:"diagnostic,omitempty"`
}

// ItineraryRequest is one itinerary of a batch
type ItineraryRequest struct {
	Segments              []SegmentRequest `json:"segments" validate:"required,min=1,max=99,dive"`
	ParticipatingCarriers []string         `json:"participating_carriers,omitempty" validate:"omitempty,max=99,dive,carrier"`
}

// ResolveBatchRequest resolves several itineraries for one point of sale
type ResolveBatchRequest struct {
	Country                     string                   `json:"country,omitempty" validate:"omitempty,nation"`
	HostID                      string                   `json:"host_id,omitempty" validate:"omitempty,min=2,max=3,alphanum"`
	SettlementPlan              string                   `json:"settlement_plan,omitempty" validate:"omitempty,plan"`
	ValidatingCarrier           string                   `json:"validating_carrier,omitempty" validate:"omitempty,carrier"`
	TicketType                  string                   `json:"ticket_type,omitempty" validate:"omitempty,oneof=ETKT_PREF ETKT_REQ PAPER_TKT_PREF PAPER_TKT_REQ"`
	TicketDate                  string                   `json:"ticket_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	OnlyCheckAgreementExistence bool                     `json:"only_check_agreement_existence,omitempty"`
	NoSettlementPlan            *NoSettlementPlanRequest `json:"no_settlement_plan,omitempty" validate:"omitempty"`
	Itineraries                 []ItineraryRequest       `json:"itineraries" validate:"required,min=1,dive"`
}

// PlanOutcomeResponse is the outcome of one settlement plan
type PlanOutcomeResponse struct {
	SettlementPlan          string              `json:"settlement_plan,omitempty"`
	Result                  string              `json:"result"`
	Status                  string              `json:"status"`
	ValidatingCarriers      []string            `json:"validating_carriers"`
	DefaultCarrier          string              `json:"default_carrier,omitempty"`
	SwappedFor              string              `json:"swapped_for,omitempty"`
	TicketType              string              `json:"ticket_type,omitempty"`
	IsGsaSwap               bool                `json:"is_gsa_swap"`
	IsMultipleGsaSwap       bool                `json:"is_multiple_gsa_swap"`
	IsGtcCarrier            bool                `json:"is_gtc_carrier"`
	Message                 string              `json:"message"`
	GsaSwaps                map[string][]string `json:"gsa_swaps,omitempty"`
	InterlineValidCountries map[string][]string `json:"interline_valid_countries,omitempty"`
}

// ResolveResponse represents the response payload of one resolution
type ResolveResponse struct {
	PlanOutcomeResponse
	Trailer []string              `json:"trailer"`
	Plans   []PlanOutcomeResponse `json:"plans,omitempty"`
	HashKey string                `json:"hash_key"`
	Trace   []model.TraceEvent    `json:"trace,omitempty"`
}

// ResolveBatchResponse holds one outcome per requested itinerary, in request order
type ResolveBatchResponse struct {
	Outcomes []ResolveResponse `json:"outcomes"`
}

func parseTicketDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ticket date %q: %w", s, err)
	}
	return date, nil
}

func segmentsToModel(segments []SegmentRequest) []model.Segment {
	out := make([]model.Segment, len(segments))
	for i, s := range segments {
		out[i] = model.Segment{MarketingCarrier: s.MarketingCarrier, OperatingCarrier: s.OperatingCarrier}
	}
	return out
}

func nspToModel(req *NoSettlementPlanRequest) *model.NSPOptions {
	if req == nil {
		return nil
	}
	mode := model.NSPNoValidation
	if req.Mode == NSPModeInterline {
		mode = model.NSPInterlineValidation
	}
	return &model.NSPOptions{Mode: mode, Carriers: req.Carriers, Countries: req.Countries}
}

// ResolveRequestToModel converts ResolveRequest to model.ResolveRequest
func ResolveRequestToModel(req *ResolveRequest) (*model.ResolveRequest, error) {
	date, err := parseTicketDate(req.TicketDate)
	if err != nil {
		return nil, err
	}
	return &model.ResolveRequest{
		Country:                     req.Country,
		HostID:                      req.HostID,
		SettlementPlan:              req.SettlementPlan,
		ValidatingCarrier:           req.ValidatingCarrier,
		Segments:                    segmentsToModel(req.Segments),
		ParticipatingCarriers:       req.ParticipatingCarriers,
		TicketType:                  model.ParseTicketType(req.TicketType),
		TicketDate:                  date,
		OnlyCheckAgreementExistence: req.OnlyCheckAgreementExistence,
		NoSettlementPlan:            nspToModel(req.NoSettlementPlan),
		Diagnostic:                  req.Diagnostic,
	}, nil
}

// ResolveBatchRequestToModel splits a batch into its shared request and itineraries
func ResolveBatchRequestToModel(req *ResolveBatchRequest) (*model.ResolveRequest, []model.Itinerary, error) {
	date, err := parseTicketDate(req.TicketDate)
	if err != nil {
		return nil, nil, err
	}
	base := &model.ResolveRequest{
		Country:                     req.Country,
		HostID:                      req.HostID,
		SettlementPlan:              req.SettlementPlan,
		ValidatingCarrier:           req.ValidatingCarrier,
		TicketType:                  model.ParseTicketType(req.TicketType),
		TicketDate:                  date,
		OnlyCheckAgreementExistence: req.OnlyCheckAgreementExistence,
		NoSettlementPlan:            nspToModel(req.NoSettlementPlan),
	}
	itineraries := make([]model.Itinerary, len(req.Itineraries))
	for i, it := range req.Itineraries {
		itineraries[i] = model.Itinerary{
			Segments:              segmentsToModel(it.Segments),
			ParticipatingCarriers: it.ParticipatingCarriers,
		}
	}
	return base, itineraries, nil
}

// PlanOutcomeToResponse converts model.PlanOutcome to PlanOutcomeResponse
func PlanOutcomeToResponse(o *model.PlanOutcome) PlanOutcomeResponse {
	resp := PlanOutcomeResponse{
		SettlementPlan:          o.SettlementPlan,
		Result:                  o.Result.String(),
		Status:                  o.Status.String(),
		ValidatingCarriers:      o.ValidatingCxrs,
		DefaultCarrier:          o.DefaultCxr,
		SwappedFor:              o.SwappedFor,
		IsGsaSwap:               o.IsGsaSwap,
		IsMultipleGsaSwap:       o.IsMultipleGsaSwap,
		IsGtcCarrier:            o.IsGtcCarrier,
		Message:                 o.Message,
		GsaSwaps:                o.GsaSwaps,
		InterlineValidCountries: o.InterlineValidCountries,
	}
	if resp.ValidatingCarriers == nil {
		resp.ValidatingCarriers = []string{}
	}
	if o.TicketType != model.TicketTypeNone {
		resp.TicketType = o.TicketType.String()
	}
	return resp
}

// OutcomeToResponse converts model.Outcome to ResolveResponse
func OutcomeToResponse(o *model.Outcome) *ResolveResponse {
	resp := &ResolveResponse{
		PlanOutcomeResponse: PlanOutcomeToResponse(&o.PlanOutcome),
		Trailer:             o.Trailer,
		HashKey:             o.HashKey,
		Trace:               o.Trace,
	}
	for i := range o.Plans {
		resp.Plans = append(resp.Plans, PlanOutcomeToResponse(&o.Plans[i]))
	}
	return resp
}

// BatchOutcomeToResponse converts model.BatchOutcome to ResolveBatchResponse
func BatchOutcomeToResponse(b *model.BatchOutcome) *ResolveBatchResponse {
	resp := &ResolveBatchResponse{Outcomes: make([]ResolveResponse, len(b.Outcomes))}
	for i, o := range b.Outcomes {
		resp.Outcomes[i] = *OutcomeToResponse(o)
	}
	return resp
}
