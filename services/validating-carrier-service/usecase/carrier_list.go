package usecase

import (
	"context"
	"slices"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

// failure explains why a plan has no valid carrier
type failure struct {
	status  model.ValidationStatus
	message string
	gtc     bool
}

func newFailure(status model.ValidationStatus, cxr, other string) failure {
	return failure{status: status, message: FormatStatus(status, cxr, other)}
}

// resolution is the working state of one request
// It is confined to the goroutine serving the request
type resolution struct {
	req       *model.ResolveRequest
	gateway   repository.ReferenceData
	opts      Options
	trace     TraceSink
	marketing []string
	// participating holds marketing and operating carriers of the itinerary
	participating []string
	requested     model.TicketType
	// plans are all plans of the point of sale, used for the GTC check
	plans []model.SettlementPlan
}

func newResolution(req *model.ResolveRequest, gateway repository.ReferenceData, opts Options, trace TraceSink) *resolution {
	return &resolution{
		req:           req,
		gateway:       gateway,
		opts:          opts,
		trace:         trace,
		marketing:     req.MarketingCarriers(),
		participating: req.ParticipatingCxrs(),
		requested:     requestedTicketType(req),
	}
}

func (r *resolution) record(ctx context.Context, e model.TraceEvent) {
	r.trace.Record(ctx, e)
}

// candidates are the carriers tried first: the requested one, else the marketing carriers
func (r *resolution) candidates() []string {
	if r.req.ValidatingCarrier != "" {
		return []string{r.req.ValidatingCarrier}
	}
	return r.marketing
}

// carrierList finds the valid carriers of one plan
// A nil error with an empty list comes with the failure explaining it
func (r *resolution) carrierList(ctx context.Context, plan *model.SettlementPlan) (*model.PlanValidation, failure, error) {
	pv := model.NewPlanValidation(plan.PlanCode)
	if r.req.HasOpenSegment() {
		return pv, newFailure(model.OpenSegmentNotAllowed, "", ""), nil
	}

	var (
		fail   failure
		toSwap []string
		failed = make(map[string]bool)
		nsp    = r.req.NoSettlementPlan
		isNSP  = plan.PlanCode == model.PlanNSP
	)

	for _, cxr := range r.candidates() {
		// NSP carriers only belong to the NSP pseudo-plan and the others only to real plans
		if nsp != nil && nsp.HasCarrier(cxr) != isNSP {
			continue
		}
		data := &model.ValidatingCxrData{}
		ok, err := r.participates(ctx, plan, cxr, data)
		if err != nil {
			return nil, failure{}, err
		}
		if !ok {
			if swapAllowed(plan.PlanCode) && r.opts.GsaEnabled {
				toSwap = append(toSwap, cxr)
			}
			continue
		}
		if isNSP && nsp != nil && nsp.Mode == model.NSPNoValidation {
			pv.Add(cxr, data, model.SourceDirect)
			continue
		}
		pass, err := r.checkPaperAndInterline(ctx, plan, cxr, "", false, data, &fail)
		if err != nil {
			return nil, failure{}, err
		}
		if pass {
			pv.Add(cxr, data, model.SourceDirect)
		} else {
			failed[cxr] = true
		}
	}

	if nsp != nil && (len(nsp.Carriers) == 0 || containsAll(nsp.Carriers, r.candidates()) || isNSP) {
		if !pv.Empty() {
			return pv, failure{}, nil
		}
		f, err := r.emptyListFailure(ctx, false, nil, fail)
		return pv, f, err
	}

	anyCxrHasGsa := false
	var gsaStatuses []model.ValidationStatus
	for _, mkt := range toSwap {
		agents, err := r.genSalesAgents(ctx, plan, mkt)
		if err != nil {
			return nil, failure{}, err
		}
		if len(agents) > 0 {
			anyCxrHasGsa = true
		}
		for _, agent := range agents {
			if failed[agent] {
				continue
			}
			if pv.Has(agent) {
				pv.AddSwap(mkt, agent)
				continue
			}
			data := &model.ValidatingCxrData{}
			ok, err := r.participates(ctx, plan, agent, data)
			if err != nil {
				return nil, failure{}, err
			}
			if !ok {
				failed[agent] = true
				r.record(ctx, model.TraceEvent{
					Kind: model.TraceGsaCandidateChecked, Plan: plan.PlanCode, Carrier: agent, Counterpart: mkt,
					Status: model.CxrDoesNotParticipateInSettlementPlan,
				})
				continue
			}
			pass, err := r.checkPaperAndInterline(ctx, plan, agent, mkt, false, data, &fail)
			if err != nil {
				return nil, failure{}, err
			}
			r.record(ctx, model.TraceEvent{
				Kind: model.TraceGsaCandidateChecked, Plan: plan.PlanCode, Carrier: agent, Counterpart: mkt,
				Passed: pass, Status: data.InterlineStatusCode,
			})
			if pass {
				pv.Add(agent, data, model.SourceGsa)
				pv.AddSwap(mkt, agent)
			} else {
				failed[agent] = true
				gsaStatuses = append(gsaStatuses, data.InterlineStatusCode)
			}
		}
	}

	if !pv.Empty() {
		return pv, failure{}, nil
	}
	if r.req.ValidatingCarrier == "" {
		if err := r.addNeutralCarriers(ctx, plan, pv); err != nil {
			return nil, failure{}, err
		}
		if !pv.Empty() {
			return pv, failure{}, nil
		}
	}
	fail, err := r.emptyListFailure(ctx, anyCxrHasGsa, gsaStatuses, fail)
	return pv, fail, err
}

// participates looks up the participation of cxr in plan and resolves its ticket type
func (r *resolution) participates(ctx context.Context, plan *model.SettlementPlan, cxr string, data *model.ValidatingCxrData) (bool, error) {
	if plan.PlanCode == model.PlanNSP && r.req.NoSettlementPlan.HasCarrier(cxr) {
		data.TicketType = ticketingMethod(plan, nil)
		r.record(ctx, model.TraceEvent{
			Kind: model.TraceCarrierParticipation, Plan: plan.PlanCode, Carrier: cxr, Passed: true,
			Detail: "no settlement plan carrier",
		})
		return true, nil
	}

	records, err := r.gateway.GetCarrierParticipation(ctx, r.req.Country, r.req.HostID, plan.PlanCode, cxr, r.req.TicketDate)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		r.record(ctx, model.TraceEvent{
			Kind: model.TraceCarrierParticipation, Plan: plan.PlanCode, Carrier: cxr,
			Status: model.CxrDoesNotParticipateInSettlementPlan,
		})
		return false, nil
	}
	data.TicketType = ticketingMethod(plan, &records[0])
	r.record(ctx, model.TraceEvent{
		Kind: model.TraceCarrierParticipation, Plan: plan.PlanCode, Carrier: cxr, Passed: true,
		Detail: data.TicketType.String(),
	})
	return true, nil
}

// checkPaperAndInterline runs the ticket-method conflict check and then the interline check
// Failures of a requested carrier leave their message in fail
func (r *resolution) checkPaperAndInterline(ctx context.Context, plan *model.SettlementPlan, cxr, swappedFor string, neutral bool, data *model.ValidatingCxrData, fail *failure) (bool, error) {
	if isTicketTypeConflict(data.TicketType, r.requested) {
		data.InterlineStatusCode = model.PaperTktOverrideErr
		*fail = newFailure(model.PaperTktOverrideErr, "", "")
		r.record(ctx, model.TraceEvent{
			Kind: model.TraceTicketMethodConflict, Plan: plan.PlanCode, Carrier: cxr,
			Status: model.PaperTktOverrideErr, Detail: data.TicketType.String(),
		})
		return false, nil
	}

	nsp := r.req.NoSettlementPlan
	if plan.PlanCode == model.PlanNSP && nsp != nil && nsp.Mode == model.NSPInterlineValidation && nsp.HasCarrier(cxr) {
		return r.nspInterline(ctx, plan, cxr, data, fail)
	}

	pass, err := r.interline(ctx, plan, r.req.Country, cxr, swappedFor, neutral, data)
	if err != nil {
		return false, err
	}
	if !pass && r.req.ValidatingCarrier != "" {
		*fail = failure{
			status:  data.InterlineStatusCode,
			message: validationCxrMessage(data.InterlineStatusCode, cxr, data.InterlineFailedCxr),
		}
	}
	return pass, nil
}

// nspInterline checks an NSP carrier in every listed country; one passing country is enough
func (r *resolution) nspInterline(ctx context.Context, plan *model.SettlementPlan, cxr string, data *model.ValidatingCxrData, fail *failure) (bool, error) {
	countries := r.req.NoSettlementPlan.Countries
	if len(countries) == 0 {
		countries = []string{r.req.Country}
	}
	pass := false
	for _, country := range countries {
		ok, err := r.interline(ctx, plan, country, cxr, "", false, data)
		if err != nil {
			return false, err
		}
		if ok {
			pass = true
			if !slices.Contains(data.InterlineValidCountries, country) {
				data.InterlineValidCountries = append(data.InterlineValidCountries, country)
			}
			continue
		}
		*fail = failure{
			status:  data.InterlineStatusCode,
			message: validationCxrMessage(data.InterlineStatusCode, cxr, data.InterlineFailedCxr),
		}
	}
	return pass, nil
}

// emptyListFailure explains a plan that ended without any valid carrier
func (r *resolution) emptyListFailure(ctx context.Context, anyCxrHasGsa bool, gsaStatuses []model.ValidationStatus, fail failure) (failure, error) {
	cxr := r.req.ValidatingCarrier
	if cxr == "" {
		return newFailure(model.NoValidTktAgmtFound, "", ""), nil
	}
	if anyCxrHasGsa {
		if slices.Contains(gsaStatuses, model.PaperTktOverrideErr) {
			return newFailure(model.PaperTktOverrideErr, "", ""), nil
		}
		return newFailure(model.NoValidTktAgmtFound, "", ""), nil
	}
	gtc, err := r.isGtcCarrier(ctx, cxr)
	if err != nil {
		return failure{}, err
	}
	if gtc {
		f := newFailure(model.CxrDoesNotParticipateInSettlementPlan, cxr, "")
		f.message += gtcCarrierSuffix
		f.gtc = true
		return f, nil
	}
	if fail.message == "" {
		return newFailure(model.CxrDoesNotParticipateInSettlementPlan, cxr, ""), nil
	}
	return fail, nil
}

// isGtcCarrier reports whether cxr participates in the GTC plan of the point of sale
func (r *resolution) isGtcCarrier(ctx context.Context, cxr string) (bool, error) {
	if _, ok := findPlan(r.plans, model.PlanGTC); !ok {
		return false, nil
	}
	records, err := r.gateway.GetCarrierParticipation(ctx, r.req.Country, r.req.HostID, model.PlanGTC, cxr, r.req.TicketDate)
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func containsAll(set, items []string) bool {
	for _, it := range items {
		if !slices.Contains(set, it) {
			return false
		}
	}
	return true
}
