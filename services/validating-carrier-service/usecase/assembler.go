package usecase

import (
	"context"
	"maps"
	"slices"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// assemblePlan turns the carrier list of one plan into its outcome
func (r *resolution) assemblePlan(ctx context.Context, pv *model.PlanValidation, fail failure) model.PlanOutcome {
	out := model.PlanOutcome{SettlementPlan: pv.Plan}
	defer func() {
		r.record(ctx, model.TraceEvent{
			Kind: model.TraceOutcomeAssembled, Plan: out.SettlementPlan, Carrier: out.DefaultCxr,
			Carriers: out.ValidatingCxrs, Passed: out.Result.IsValid(), Status: out.Status, Detail: out.Result.String(),
		})
	}()

	if pv.Empty() {
		if fail.status == model.NoMsg {
			fail = newFailure(model.NoValidTktAgmtFound, "", "")
		}
		out.Result = model.NotValid
		if fail.status == model.OpenSegmentNotAllowed {
			out.Result = model.Error
		}
		out.Status = fail.status
		out.Message = fail.message
		out.IsGtcCarrier = fail.gtc
		return out
	}

	def, swappedFor := r.defaultCarrier(pv)
	others := slices.DeleteFunc(slices.Clone(pv.Carriers), func(c string) bool { return c == def })
	out.HasNeutral = pv.HasNeutral()
	others = r.displayOrder(pv, others, out.HasNeutral)

	if def != "" {
		out.ValidatingCxrs = append([]string{def}, others...)
	} else {
		out.ValidatingCxrs = others
	}
	out.DefaultCxr = def
	out.SwappedFor = swappedFor
	out.TicketType = pv.Data[out.ValidatingCxrs[0]].TicketType

	switch subs := pv.GsaSubstitutes(); {
	case subs == 0:
		out.Result = model.Valid
	case subs == 1:
		out.Result = model.ValidSingleGsaSwap
	default:
		out.Result = model.ValidMultipleGsaSwap
	}
	out.IsGsaSwap = out.Result != model.Valid
	out.IsMultipleGsaSwap = out.Result == model.ValidMultipleGsaSwap

	requested := r.req.ValidatingCarrier
	out.Status = model.ValidMsg
	if requested != "" && (pv.Has(requested) || len(pv.GsaSwaps[requested]) > 0) {
		out.Status = model.ValidOverride
	}

	switch {
	case def != "" && swappedFor != "":
		out.Message = FormatStatus(model.ValidSingleGsa, def, swappedFor)
	case def != "" && out.Status == model.ValidOverride && def == requested:
		out.Message = FormatStatus(model.ValidOverride, def, "")
	case def != "":
		out.Message = FormatStatus(model.ValidMsg, def, "")
	default:
		out.Message = carrierListMessage(listStatus(out.HasNeutral), others)
	}

	if len(pv.GsaSwaps) > 0 {
		out.GsaSwaps = maps.Clone(pv.GsaSwaps)
	}
	for _, cxr := range pv.Carriers {
		if countries := pv.Data[cxr].InterlineValidCountries; len(countries) > 0 {
			if out.InterlineValidCountries == nil {
				out.InterlineValidCountries = make(map[string][]string)
			}
			out.InterlineValidCountries[cxr] = slices.Clone(countries)
		}
	}
	return out
}

// defaultCarrier picks the carrier the ticket is issued on when one is unambiguous
// swappedFor is set when the default validates as a GSA
func (r *resolution) defaultCarrier(pv *model.PlanValidation) (def, swappedFor string) {
	if requested := r.req.ValidatingCarrier; requested != "" {
		if pv.Has(requested) {
			return requested, ""
		}
		if swaps := pv.GsaSwaps[requested]; len(swaps) == 1 {
			return swaps[0], requested
		}
	}
	if len(pv.Carriers) == 1 {
		cxr := pv.Carriers[0]
		if pv.Sources[cxr] == model.SourceGsa {
			return cxr, pv.SwappedFor(cxr)
		}
		return cxr, ""
	}
	return "", ""
}

// displayOrder orders the non-default carriers: optional carriers alphabetically,
// alternates in itinerary order
func (r *resolution) displayOrder(pv *model.PlanValidation, cxrs []string, neutral bool) []string {
	if neutral || r.opts.AlphabeticalAlternates {
		sorted := slices.Clone(cxrs)
		slices.Sort(sorted)
		return sorted
	}
	return r.alternateInOrder(pv, cxrs)
}

// alternateInOrder follows the marketing carriers of the itinerary; a carrier that is
// not valid itself is replaced by the agents validating for it
func (r *resolution) alternateInOrder(pv *model.PlanValidation, cxrs []string) []string {
	var alt []string
	add := func(c string) {
		if slices.Contains(cxrs, c) && !slices.Contains(alt, c) {
			alt = append(alt, c)
		}
	}
	for _, m := range r.marketing {
		if pv.Has(m) {
			add(m)
			continue
		}
		for _, agent := range pv.GsaSwaps[m] {
			add(agent)
		}
	}
	if len(alt) == 0 {
		return cxrs
	}
	for _, c := range cxrs {
		add(c)
	}
	return alt
}

func listStatus(neutral bool) model.ValidationStatus {
	if neutral {
		return model.OptionalCxr
	}
	return model.AlternateCxr
}

// planTrailer lists the message lines of a single plan outcome
func planTrailer(out *model.PlanOutcome) []string {
	if !out.Result.IsValid() || out.DefaultCxr == "" {
		return []string{out.Message}
	}
	lines := []string{out.Message}
	if others := out.ValidatingCxrs[1:]; len(others) > 0 {
		lines = append(lines, carrierListMessage(listStatus(out.HasNeutral), others))
	}
	return lines
}
