package postgres

import (
	"context"
	"fmt"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"

	"gorm.io/gorm"
)

const seedBatchSize = 200

// Seed loads a reference set into an empty database in one transaction
// It does nothing when settlement plans are already present
func Seed(ctx context.Context, db *gorm.DB, set *model.ReferenceSet, log logger.LoggerInterface) error {
	var existing int64
	if err := db.WithContext(ctx).Model(&model.SettlementPlan{}).Count(&existing).Error; err != nil {
		return fmt.Errorf("failed to count settlement plans: %w", err)
	}
	if existing > 0 {
		log.InfoContext(ctx, "Reference data already present, skipping seed", "settlement_plans", existing)
		return nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		batches := []struct {
			name    string
			records any
			size    int
		}{
			{"nations", &set.Nations, len(set.Nations)},
			{"settlement plans", &set.SettlementPlans, len(set.SettlementPlans)},
			{"participations", &set.Participations, len(set.Participations)},
			{"general sales agents", &set.GeneralSalesAgents, len(set.GeneralSalesAgents)},
			{"interline agreements", &set.InterlineAgreements, len(set.InterlineAgreements)},
			{"neutral carriers", &set.NeutralCarriers, len(set.NeutralCarriers)},
		}
		for _, b := range batches {
			if b.size == 0 {
				continue
			}
			if err := tx.CreateInBatches(b.records, seedBatchSize).Error; err != nil {
				return fmt.Errorf("failed to seed %s: %w", b.name, err)
			}
			log.InfoContext(ctx, "Seeded reference records", "table", b.name, "count", b.size)
		}
		return nil
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to seed reference data", "error", err)
		return err
	}
	return nil
}
