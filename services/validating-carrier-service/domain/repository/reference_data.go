// Package repository defines the interfaces for data access layer
package repository

import (
	"context"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// ReferenceData interface defines the read contract for settlement and agreement reference data
// Every lookup returns only records in force on the given date
type ReferenceData interface {
	// GetSettlementPlans returns the settlement plans of a country
	GetSettlementPlans(ctx context.Context, country string, date time.Time) ([]model.SettlementPlan, error)
	// GetCarrierParticipation returns the participation records of one carrier in a plan
	// An empty result means the carrier does not participate
	GetCarrierParticipation(ctx context.Context, country, hostID, planCode, carrier string, date time.Time) ([]model.CarrierParticipation, error)
	// GetPlanParticipants returns every carrier participating in a plan
	GetPlanParticipants(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.CarrierParticipation, error)
	// GetInterlineAgreements returns the agreements held by a validating carrier in a country
	GetInterlineAgreements(ctx context.Context, country, hostID, validatingCarrier string, date time.Time) ([]model.InterlineAgreement, error)
	// GetGeneralSalesAgents returns the GSA records for a carrier that does not participate in a plan
	GetGeneralSalesAgents(ctx context.Context, hostID, country, planCode, carrier string, date time.Time) ([]model.GeneralSalesAgent, error)
	// GetNeutralValidatingCarriers returns the neutral carriers of a plan
	GetNeutralValidatingCarriers(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.NeutralValidatingCarrier, error)
	// NationExists reports whether the country code is a known nation
	NationExists(ctx context.Context, country string, date time.Time) (bool, error)
}

// CacheInvalidator drops cached reference data of a country
type CacheInvalidator interface {
	Invalidate(ctx context.Context, country string) error
}

// EventPublisher publishes resolution events
type EventPublisher interface {
	// PublishResolved publishes an outcome event; delivery is asynchronous
	PublishResolved(ctx context.Context, event model.ResolvedEvent)
	// PublishTrace publishes one trace event of a resolution
	PublishTrace(ctx context.Context, hashKey string, event model.TraceEvent)
}
