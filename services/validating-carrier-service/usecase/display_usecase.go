package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

// DisplayUseCase shows which carriers may ticket under each plan of a country
type DisplayUseCase interface {
	SettlementPlans(ctx context.Context, country, hostID string, date time.Time) (*model.SettlementPlanDisplay, error)
}

type displayUseCase struct {
	gateway repository.ReferenceData
	logger  logger.LoggerInterface
	now     func() time.Time
}

// NewDisplayUseCase creates a new instance of displayUseCase
func NewDisplayUseCase(gateway repository.ReferenceData, appLogger logger.LoggerInterface) DisplayUseCase {
	return &displayUseCase{
		gateway: gateway,
		logger:  appLogger,
		now:     time.Now,
	}
}

func (uc *displayUseCase) SettlementPlans(ctx context.Context, country, hostID string, date time.Time) (*model.SettlementPlanDisplay, error) {
	country, hostID = code(country), code(hostID)
	if country == "" || hostID == "" {
		return nil, domain.ErrPointOfSaleRequired
	}
	if date.IsZero() {
		date = uc.now()
	}
	date = date.UTC()
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	uc.logger.InfoContext(ctx, "Displaying settlement plans", "country", country, "host", hostID)

	plans, err := uc.gateway.GetSettlementPlans(ctx, country, date)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to get settlement plans", "country", country, "error", err)
		return nil, fmt.Errorf("failed to get settlement plans: %w: %w", domain.ErrReferenceDataUnavailable, err)
	}
	if len(plans) == 0 {
		uc.logger.WarnContext(ctx, "No settlement plan for country", "country", country)
		return nil, domain.ErrPlanNotFound
	}
	plans = slices.Clone(plans)
	sortPlans(plans)

	out := &model.SettlementPlanDisplay{
		Country:     country,
		HostID:      hostID,
		Date:        date,
		PrimaryPlan: PlanFromHierarchy(planCodes(plans)),
		Plans:       make([]model.PlanDisplay, 0, len(plans)),
	}
	for i := range plans {
		plan := &plans[i]
		display, err := uc.planDisplay(ctx, plan, hostID, date)
		if err != nil {
			uc.logger.ErrorContext(ctx, "Failed to display settlement plan", "country", country, "plan", plan.PlanCode, "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrReferenceDataUnavailable, err)
		}
		out.Plans = append(out.Plans, display)
	}
	return out, nil
}

func (uc *displayUseCase) planDisplay(ctx context.Context, plan *model.SettlementPlan, hostID string, date time.Time) (model.PlanDisplay, error) {
	display := model.PlanDisplay{
		SettlementPlan:           plan.PlanCode,
		PreferredTicketingMethod: plan.PreferredTicketingMethod,
		RequiredTicketingMethod:  plan.RequiredTicketingMethod,
		Carriers:                 []model.PlanCarrier{},
	}

	participants, err := uc.gateway.GetPlanParticipants(ctx, plan.Country, hostID, plan.PlanCode, date)
	if err != nil {
		return display, fmt.Errorf("failed to get plan participants: %w", err)
	}
	for i := range participants {
		p := &participants[i]
		if slices.ContainsFunc(display.Carriers, func(c model.PlanCarrier) bool { return c.Carrier == p.Carrier }) {
			continue
		}
		display.Carriers = append(display.Carriers, model.PlanCarrier{
			Carrier:    p.Carrier,
			TicketType: ticketingMethod(plan, p),
		})
	}
	slices.SortFunc(display.Carriers, func(a, b model.PlanCarrier) int {
		switch {
		case a.Carrier < b.Carrier:
			return -1
		case a.Carrier > b.Carrier:
			return 1
		}
		return 0
	})

	if !swapAllowed(plan.PlanCode) {
		return display, nil
	}
	neutral, err := uc.gateway.GetNeutralValidatingCarriers(ctx, plan.Country, hostID, plan.PlanCode, date)
	if err != nil {
		return display, fmt.Errorf("failed to get neutral validating carriers: %w", err)
	}
	for _, n := range neutral {
		if !slices.Contains(display.NeutralCarriers, n.Carrier) {
			display.NeutralCarriers = append(display.NeutralCarriers, n.Carrier)
		}
	}
	slices.Sort(display.NeutralCarriers)
	return display, nil
}
