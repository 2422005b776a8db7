// Package validating_carrier_service contains request and response contracts for the validating carrier service
package validating_carrier_service

import (
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// SettlementPlansRequest represents the request for the settlement plans of a country
type SettlementPlansRequest struct {
	Country string `json:"country" validate:"required,nation"`
	HostID  string `json:"host_id,omitempty" validate:"omitempty,min=2,max=3,alphanum"`
	Date    string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// PlanCarrierResponse is a carrier participating in a plan
type PlanCarrierResponse struct {
	Carrier    string `json:"carrier"`
	TicketType string `json:"ticket_type"`
}

// SettlementPlanResponse represents one settlement plan and its carriers
type SettlementPlanResponse struct {
	SettlementPlan           string                `json:"settlement_plan"`
	PreferredTicketingMethod string                `json:"preferred_ticketing_method,omitempty"`
	RequiredTicketingMethod  string                `json:"required_ticketing_method,omitempty"`
	Carriers                 []PlanCarrierResponse `json:"carriers"`
	NeutralCarriers          []string              `json:"neutral_carriers,omitempty"`
}

// SettlementPlansResponse represents the settlement plans of a point of sale
type SettlementPlansResponse struct {
	Country     string                   `json:"country"`
	HostID      string                   `json:"host_id"`
	Date        string                   `json:"date"`
	PrimaryPlan string                   `json:"primary_plan,omitempty"`
	Plans       []SettlementPlanResponse `json:"plans"`
}

// SettlementPlansToResponse converts model.SettlementPlanDisplay to SettlementPlansResponse
func SettlementPlansToResponse(d *model.SettlementPlanDisplay) *SettlementPlansResponse {
	resp := &SettlementPlansResponse{
		Country:     d.Country,
		HostID:      d.HostID,
		Date:        d.Date.Format(DateLayout),
		PrimaryPlan: d.PrimaryPlan,
		Plans:       make([]SettlementPlanResponse, len(d.Plans)),
	}
	for i, p := range d.Plans {
		plan := SettlementPlanResponse{
			SettlementPlan:           p.SettlementPlan,
			PreferredTicketingMethod: string(p.PreferredTicketingMethod),
			RequiredTicketingMethod:  string(p.RequiredTicketingMethod),
			Carriers:                 make([]PlanCarrierResponse, len(p.Carriers)),
			NeutralCarriers:          p.NeutralCarriers,
		}
		for j, c := range p.Carriers {
			plan.Carriers[j] = PlanCarrierResponse{Carrier: c.Carrier, TicketType: c.TicketType.String()}
		}
		resp.Plans[i] = plan
	}
	return resp
}
