package model

import "time"

// PlanCarrier is a carrier participating in a plan with its resolved ticket type
type PlanCarrier struct {
	Carrier    string     `json:"carrier"`
	TicketType TicketType `json:"ticket_type"`
}

// PlanDisplay describes one settlement plan of a country
type PlanDisplay struct {
	SettlementPlan           string          `json:"settlement_plan"`
	PreferredTicketingMethod TicketingMethod `json:"preferred_ticketing_method,omitempty"`
	RequiredTicketingMethod  TicketingMethod `json:"required_ticketing_method,omitempty"`
	Carriers                 []PlanCarrier   `json:"carriers"`
	NeutralCarriers          []string        `json:"neutral_carriers,omitempty"`
}

// SettlementPlanDisplay lists the settlement plans of a point of sale in hierarchy order
type SettlementPlanDisplay struct {
	Country     string        `json:"country"`
	HostID      string        `json:"host_id"`
	Date        time.Time     `json:"date"`
	PrimaryPlan string        `json:"primary_plan,omitempty"`
	Plans       []PlanDisplay `json:"plans"`
}
