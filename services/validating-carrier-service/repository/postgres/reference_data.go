// Package postgres provides PostgreSQL implementation for the reference data gateway
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"

	"gorm.io/gorm"
)

// referenceDataRepository implements the ReferenceData repository interface using PostgreSQL
type referenceDataRepository struct {
	// db is the GORM database instance for database operations
	db *gorm.DB
	// logger is used for logging operations within the repository
	logger logger.LoggerInterface
}

// NewReferenceDataRepository creates a new instance of referenceDataRepository
func NewReferenceDataRepository(db *gorm.DB, logger logger.LoggerInterface) repository.ReferenceData {
	return &referenceDataRepository{
		db:     db,
		logger: logger,
	}
}

// effectiveOn keeps records in force on date
func effectiveOn(date time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("eff_date <= ? AND (disc_date IS NULL OR disc_date >= ?)", date, date)
	}
}

// GetSettlementPlans retrieves the settlement plans of a country
func (r *referenceDataRepository) GetSettlementPlans(ctx context.Context, country string, date time.Time) ([]model.SettlementPlan, error) {
	r.logger.InfoContext(ctx, "Getting settlement plans", "country", country)
	var plans []model.SettlementPlan
	if err := r.db.WithContext(ctx).
		Where("country = ?", country).
		Scopes(effectiveOn(date)).
		Order("created_at").
		Find(&plans).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get settlement plans", "country", country, "error", err)
		return nil, fmt.Errorf("failed to get settlement plans: %w", err)
	}
	if len(plans) == 0 {
		r.logger.WarnContext(ctx, "No settlement plans for country", "country", country)
	}
	return plans, nil
}

// GetCarrierParticipation retrieves the participation records of a carrier in a plan
func (r *referenceDataRepository) GetCarrierParticipation(ctx context.Context, country, hostID, planCode, carrier string, date time.Time) ([]model.CarrierParticipation, error) {
	r.logger.InfoContext(ctx, "Getting carrier participation", "country", country, "host", hostID, "plan", planCode, "carrier", carrier)
	var records []model.CarrierParticipation
	if err := r.db.WithContext(ctx).
		Where("country = ? AND host_id = ? AND plan_code = ? AND carrier = ?", country, hostID, planCode, carrier).
		Scopes(effectiveOn(date)).
		Order("created_at").
		Find(&records).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get carrier participation", "carrier", carrier, "plan", planCode, "error", err)
		return nil, fmt.Errorf("failed to get carrier participation: %w", err)
	}
	return records, nil
}

// GetPlanParticipants retrieves every carrier participating in a plan
func (r *referenceDataRepository) GetPlanParticipants(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.CarrierParticipation, error) {
	r.logger.InfoContext(ctx, "Getting plan participants", "country", country, "host", hostID, "plan", planCode)
	var records []model.CarrierParticipation
	if err := r.db.WithContext(ctx).
		Where("country = ? AND host_id = ? AND plan_code = ?", country, hostID, planCode).
		Scopes(effectiveOn(date)).
		Order("carrier").
		Find(&records).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get plan participants", "plan", planCode, "error", err)
		return nil, fmt.Errorf("failed to get plan participants: %w", err)
	}
	return records, nil
}

// GetInterlineAgreements retrieves the agreements held by a validating carrier
func (r *referenceDataRepository) GetInterlineAgreements(ctx context.Context, country, hostID, validatingCarrier string, date time.Time) ([]model.InterlineAgreement, error) {
	r.logger.InfoContext(ctx, "Getting interline agreements", "country", country, "host", hostID, "carrier", validatingCarrier)
	var agreements []model.InterlineAgreement
	if err := r.db.WithContext(ctx).
		Where("country = ? AND host_id = ? AND validating_carrier = ?", country, hostID, validatingCarrier).
		Scopes(effectiveOn(date)).
		Order("created_at").
		Find(&agreements).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get interline agreements", "carrier", validatingCarrier, "error", err)
		return nil, fmt.Errorf("failed to get interline agreements: %w", err)
	}
	return agreements, nil
}

// GetGeneralSalesAgents retrieves the GSA records of a non-participating carrier
func (r *referenceDataRepository) GetGeneralSalesAgents(ctx context.Context, hostID, country, planCode, carrier string, date time.Time) ([]model.GeneralSalesAgent, error) {
	r.logger.InfoContext(ctx, "Getting general sales agents", "country", country, "host", hostID, "plan", planCode, "carrier", carrier)
	var agents []model.GeneralSalesAgent
	if err := r.db.WithContext(ctx).
		Where("country = ? AND host_id = ? AND plan_code = ? AND non_participating_carrier = ?", country, hostID, planCode, carrier).
		Scopes(effectiveOn(date)).
		Order("created_at").
		Find(&agents).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get general sales agents", "carrier", carrier, "error", err)
		return nil, fmt.Errorf("failed to get general sales agents: %w", err)
	}
	return agents, nil
}

// GetNeutralValidatingCarriers retrieves the neutral carriers of a plan
func (r *referenceDataRepository) GetNeutralValidatingCarriers(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.NeutralValidatingCarrier, error) {
	r.logger.InfoContext(ctx, "Getting neutral validating carriers", "country", country, "host", hostID, "plan", planCode)
	var carriers []model.NeutralValidatingCarrier
	if err := r.db.WithContext(ctx).
		Where("country = ? AND host_id = ? AND plan_code = ?", country, hostID, planCode).
		Scopes(effectiveOn(date)).
		Order("created_at").
		Find(&carriers).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to get neutral validating carriers", "plan", planCode, "error", err)
		return nil, fmt.Errorf("failed to get neutral validating carriers: %w", err)
	}
	return carriers, nil
}

// NationExists reports whether the country code is a known nation
func (r *referenceDataRepository) NationExists(ctx context.Context, country string, date time.Time) (bool, error) {
	r.logger.InfoContext(ctx, "Checking nation", "country", country)
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Nation{}).
		Where("code = ?", country).
		Scopes(effectiveOn(date)).
		Count(&count).Error; err != nil {
		r.logger.ErrorContext(ctx, "Failed to check nation", "country", country, "error", err)
		return false, fmt.Errorf("failed to check nation: %w", err)
	}
	if count == 0 {
		r.logger.WarnContext(ctx, "Nation not found", "country", country)
	}
	return count > 0, nil
}
