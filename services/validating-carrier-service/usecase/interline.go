package usecase

import (
	"context"
	"slices"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// interline checks that cxr holds agreements with every other carrier of the itinerary in country
// swappedFor is the carrier a GSA substitutes for; its segments need no agreement
func (r *resolution) interline(ctx context.Context, plan *model.SettlementPlan, country, cxr, swappedFor string, neutral bool, data *model.ValidatingCxrData) (bool, error) {
	partOfItin := slices.Contains(r.marketing, cxr)
	if neutral && partOfItin {
		r.record(ctx, model.TraceEvent{
			Kind: model.TraceInterlineChecked, Plan: plan.PlanCode, Carrier: cxr,
			Detail: "neutral carrier markets a segment",
		})
		return false, nil
	}

	for _, p := range r.participating {
		if p == cxr || p == swappedFor {
			continue
		}
		if !slices.ContainsFunc(data.ParticipatingCxrs, func(pc model.ParticipatingCarrier) bool { return pc.Carrier == p }) {
			data.ParticipatingCxrs = append(data.ParticipatingCxrs, model.ParticipatingCarrier{Carrier: p})
		}
	}

	status, err := r.checkInterlineAgreements(ctx, country, cxr, partOfItin, data)
	if err != nil {
		return false, err
	}
	data.InterlineStatusCode = status
	pass := status == model.ValidMsg
	if pass {
		data.InterlineFailedCxr = ""
	}
	r.record(ctx, model.TraceEvent{
		Kind: model.TraceInterlineChecked, Plan: plan.PlanCode, Carrier: cxr, Counterpart: data.InterlineFailedCxr,
		Passed: pass, Status: status, Detail: country,
	})
	return pass, nil
}

func (r *resolution) checkInterlineAgreements(ctx context.Context, country, cxr string, partOfItin bool, data *model.ValidatingCxrData) (model.ValidationStatus, error) {
	pcs := data.ParticipatingCxrs
	if len(pcs) == 0 || (len(pcs) == 1 && pcs[0].Carrier == cxr) {
		return model.ValidMsg, nil
	}

	agreements, err := r.agreements(ctx, country, cxr)
	if err != nil {
		return model.NoMsg, err
	}
	if len(agreements) == 0 {
		return model.NoValidTktAgmtFound, nil
	}

	for i := range pcs {
		pc := &pcs[i]
		if pc.Carrier == cxr {
			continue
		}
		agreement := findAgreement(agreements, pc.Carrier)
		if agreement == nil {
			data.InterlineFailedCxr = pc.Carrier
			return model.HasNoInterlineTicketingAgreementWith, nil
		}
		pc.AgreementType = agreement.AgreementType
		if r.req.OnlyCheckAgreementExistence {
			continue
		}
		if !agreementAllows(agreement.AgreementType, r.requested, partOfItin) {
			data.InterlineFailedCxr = pc.Carrier
			return model.HasNoInterlineTicketingAgreementWith, nil
		}
	}
	return model.ValidMsg, nil
}

// agreements returns the agreements of cxr valid everywhere followed by those of country
func (r *resolution) agreements(ctx context.Context, country, cxr string) ([]model.InterlineAgreement, error) {
	all, err := r.gateway.GetInterlineAgreements(ctx, model.AllCountries, r.req.HostID, cxr, r.req.TicketDate)
	if err != nil {
		return nil, err
	}
	if country == model.AllCountries {
		return all, nil
	}
	local, err := r.gateway.GetInterlineAgreements(ctx, country, r.req.HostID, cxr, r.req.TicketDate)
	if err != nil {
		return nil, err
	}
	return slices.Concat(all, local), nil
}

func findAgreement(agreements []model.InterlineAgreement, participating string) *model.InterlineAgreement {
	for i := range agreements {
		if agreements[i].ParticipatingCarrier == participating {
			return &agreements[i]
		}
	}
	return nil
}

// agreementAllows applies the agreement type to an electronic ticket request
// A standard agreement only covers a validating carrier that markets a segment
func agreementAllows(agreement model.AgreementType, requested model.TicketType, partOfItin bool) bool {
	if !requested.IsElectronic() {
		return true
	}
	switch agreement {
	case model.AgreementStandard:
		return partOfItin
	case model.AgreementPaperOnly:
		return false
	}
	return true
}
