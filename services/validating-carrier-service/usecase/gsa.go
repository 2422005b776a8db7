package usecase

import (
	"context"
	"slices"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// genSalesAgents returns the agents that may validate for a carrier not participating in plan
// Only agents holding a third-party agreement with that carrier are kept, in record order
func (r *resolution) genSalesAgents(ctx context.Context, plan *model.SettlementPlan, cxr string) ([]string, error) {
	records, err := r.gateway.GetGeneralSalesAgents(ctx, r.req.HostID, r.req.Country, plan.PlanCode, cxr, r.req.TicketDate)
	if err != nil {
		return nil, err
	}

	var agents []string
	for _, rec := range records {
		agent := rec.AgentCarrier
		if slices.Contains(agents, agent) {
			continue
		}
		ok, err := r.hasThirdPartyAgreement(ctx, agent, cxr)
		if err != nil {
			return nil, err
		}
		if ok {
			agents = append(agents, agent)
		}
	}

	r.record(ctx, model.TraceEvent{
		Kind: model.TraceGsaCandidates, Plan: plan.PlanCode, Carrier: cxr, Carriers: agents,
		Passed: len(agents) > 0,
	})
	return agents, nil
}

func (r *resolution) hasThirdPartyAgreement(ctx context.Context, agent, cxr string) (bool, error) {
	agreements, err := r.agreements(ctx, r.req.Country, agent)
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(agreements, func(a model.InterlineAgreement) bool {
		return a.ParticipatingCarrier == cxr && a.AgreementType == model.AgreementThirdParty
	}), nil
}

// addNeutralCarriers validates the neutral carriers of plan into pv
func (r *resolution) addNeutralCarriers(ctx context.Context, plan *model.SettlementPlan, pv *model.PlanValidation) error {
	if !swapAllowed(plan.PlanCode) || !r.opts.NeutralEnabled {
		return nil
	}
	records, err := r.gateway.GetNeutralValidatingCarriers(ctx, r.req.Country, r.req.HostID, plan.PlanCode, r.req.TicketDate)
	if err != nil {
		return err
	}

	var tried []string
	for _, rec := range records {
		cxr := rec.Carrier
		if slices.Contains(tried, cxr) {
			continue
		}
		tried = append(tried, cxr)

		data := &model.ValidatingCxrData{}
		ok, err := r.participates(ctx, plan, cxr, data)
		if err != nil {
			return err
		}
		if !ok || isTicketTypeConflict(data.TicketType, r.requested) {
			continue
		}
		pass, err := r.interline(ctx, plan, r.req.Country, cxr, "", true, data)
		if err != nil {
			return err
		}
		if pass {
			pv.Add(cxr, data, model.SourceNeutral)
		}
	}

	r.record(ctx, model.TraceEvent{
		Kind: model.TraceNeutralCandidates, Plan: plan.PlanCode, Carriers: pv.Carriers, Passed: !pv.Empty(),
	})
	return nil
}
