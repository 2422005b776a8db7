package usecase

import (
	"context"
	"slices"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// run resolves the request against every selected plan
// Domain failures are returned as outcomes; errors come only from the gateway
func (r *resolution) run(ctx context.Context) (*model.Outcome, error) {
	req := r.req
	if r.opts.CheckNation {
		ok, err := r.gateway.NationExists(ctx, req.Country, req.TicketDate)
		if err != nil {
			return nil, err
		}
		r.record(ctx, model.TraceEvent{Kind: model.TraceNationChecked, Carrier: req.Country, Passed: ok})
		if !ok {
			return r.errorOutcome(newFailure(model.InvalidNation, req.Country, "")), nil
		}
	}

	plans, err := r.gateway.GetSettlementPlans(ctx, req.Country, req.TicketDate)
	if err != nil {
		return nil, err
	}
	plans = slices.Clone(plans)
	sortPlans(plans)
	r.plans = plans

	selected, fail := r.selectPlans(plans)
	r.record(ctx, model.TraceEvent{
		Kind: model.TracePlanResolved, Plan: req.SettlementPlan, Carriers: planCodes(selected),
		Passed: len(selected) > 0, Status: fail.status,
	})
	if len(selected) == 0 {
		return r.errorOutcome(fail), nil
	}

	outcomes := make([]model.PlanOutcome, 0, len(selected))
	for i := range selected {
		pv, fail, err := r.carrierList(ctx, &selected[i])
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, r.assemblePlan(ctx, pv, fail))
	}

	if len(outcomes) == 1 {
		return &model.Outcome{
			PlanOutcome: outcomes[0],
			Trailer:     wrapLines(planTrailer(&outcomes[0]), r.opts.TrailerWidth),
		}, nil
	}
	return r.aggregate(outcomes), nil
}

// selectPlans picks the plans to resolve, or the failure when there is none
func (r *resolution) selectPlans(plans []model.SettlementPlan) ([]model.SettlementPlan, failure) {
	req := r.req
	nsp := req.NoSettlementPlan
	nspPlan := model.SettlementPlan{Country: req.Country, PlanCode: model.PlanNSP}

	if len(plans) == 0 && nsp == nil {
		if req.SettlementPlan != "" {
			return nil, newFailure(model.InvalidSettlementPlan, "", "")
		}
		return nil, newFailure(model.NoSettlementPlanForNation, req.Country, "")
	}

	var selected []model.SettlementPlan
	switch {
	case req.SettlementPlan == model.PlanNSP && nsp != nil:
		return []model.SettlementPlan{nspPlan}, failure{}
	case req.SettlementPlan != "":
		p, ok := findPlan(plans, req.SettlementPlan)
		if !ok {
			return nil, newFailure(model.InvalidSettlementPlan, "", "")
		}
		selected = []model.SettlementPlan{p}
	case r.opts.MultiPlan:
		selected = slices.Clone(plans)
	default:
		code := PlanFromHierarchy(planCodes(plans))
		if code == "" && nsp == nil {
			return nil, newFailure(model.NoSettlementPlanForNation, req.Country, "")
		}
		if p, ok := findPlan(plans, code); ok {
			selected = []model.SettlementPlan{p}
		}
	}

	if nsp != nil {
		if _, ok := findPlan(selected, model.PlanNSP); !ok {
			selected = append(selected, nspPlan)
		}
	}
	return selected, failure{}
}

func (r *resolution) errorOutcome(f failure) *model.Outcome {
	return &model.Outcome{
		PlanOutcome: model.PlanOutcome{
			SettlementPlan: r.req.SettlementPlan,
			Result:         model.Error,
			Status:         f.status,
			Message:        f.message,
		},
		Trailer: []string{f.message},
	}
}
