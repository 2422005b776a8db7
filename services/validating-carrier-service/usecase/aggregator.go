package usecase

import (
	"slices"
	"strings"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// Multi-plan trailer headers
const (
	headerDefault          = "VALIDATING CARRIER"
	headerDefaultSpecified = "VALIDATING CARRIER SPECIFIED "
	headerAlternate        = "ALTERNATE VALIDATING CARRIER/S"
	headerOptional         = "OPTIONAL VALIDATING CARRIER"
	headerNSPNoValidation  = "NO SETTLEMENT PLAN/NO IET VALIDATION"
	headerNSPInterline     = "NO SETTLEMENT PLAN WITH IET"
	ietValidationPrefix    = "IET VALIDATION "
	gsaAgreementWith       = " PER GSA AGREEMENT WITH "
)

// aggregate combines per-plan outcomes into one outcome
// The primary plan supplies the top-level result; the trailer covers every valid plan
func (r *resolution) aggregate(outcomes []model.PlanOutcome) *model.Outcome {
	var valid, all []string
	for _, o := range outcomes {
		all = append(all, o.SettlementPlan)
		if o.Result.IsValid() {
			valid = append(valid, o.SettlementPlan)
		}
	}

	var code string
	if len(valid) > 0 {
		code = PrimaryPlan(valid)
	} else if code = PlanFromHierarchy(all); code == "" {
		code = all[0]
	}

	out := &model.Outcome{Plans: outcomes}
	for _, o := range outcomes {
		if o.SettlementPlan == code {
			out.PlanOutcome = o
			break
		}
	}
	if len(valid) == 0 {
		out.Trailer = []string{out.Message}
		return out
	}
	out.Trailer = wrapLines(r.multiPlanTrailer(outcomes), r.opts.TrailerWidth)
	return out
}

func (r *resolution) multiPlanTrailer(outcomes []model.PlanOutcome) []string {
	var defaults, alternates, optionals, nspLines []string
	var nspOutcome *model.PlanOutcome

	for i := range outcomes {
		o := &outcomes[i]
		if !o.Result.IsValid() {
			continue
		}
		if o.SettlementPlan == model.PlanNSP && r.req.NoSettlementPlan != nil {
			nspOutcome = o
			continue
		}

		prefix := o.SettlementPlan + " - "
		switch {
		case o.DefaultCxr == "":
			defaults = append(defaults, prefix)
		case o.SwappedFor != "":
			defaults = append(defaults, prefix+o.DefaultCxr+gsaAgreementWith+o.SwappedFor)
		default:
			defaults = append(defaults, prefix+o.DefaultCxr)
		}

		others := o.ValidatingCxrs
		if o.DefaultCxr != "" {
			others = others[1:]
		}
		if len(others) == 0 {
			continue
		}
		line := prefix + strings.Join(others, " ")
		if o.HasNeutral {
			optionals = append(optionals, line)
		} else {
			alternates = append(alternates, line)
		}
	}

	var lines []string
	if len(defaults) > 0 {
		header := headerDefault
		if r.req.ValidatingCarrier != "" {
			header = headerDefaultSpecified
		}
		lines = append(lines, header)
		lines = append(lines, defaults...)
	}
	if len(alternates) > 0 {
		lines = append(lines, headerAlternate)
		lines = append(lines, alternates...)
	}
	if len(optionals) > 0 {
		lines = append(lines, headerOptional)
		lines = append(lines, optionals...)
	}
	if nsp := r.req.NoSettlementPlan; nsp != nil {
		if nsp.Mode == model.NSPNoValidation {
			lines = append(lines, headerNSPNoValidation)
		} else if nspOutcome != nil {
			nspLines = r.ietLines(nspOutcome)
			if len(nspLines) > 0 {
				lines = append(lines, headerNSPInterline)
				lines = append(lines, nspLines...)
			}
		}
	}
	return lines
}

// ietLines groups the NSP carriers by the countries they passed interline in
func (r *resolution) ietLines(o *model.PlanOutcome) []string {
	byCountry := make(map[string][]string)
	for cxr, countries := range o.InterlineValidCountries {
		for _, c := range countries {
			byCountry[c] = append(byCountry[c], cxr)
		}
	}
	countries := make([]string, 0, len(byCountry))
	for c := range byCountry {
		countries = append(countries, c)
	}
	slices.Sort(countries)

	lines := make([]string, 0, len(countries))
	for _, c := range countries {
		lines = append(lines, ietValidationPrefix+c+" - "+strings.Join(r.itineraryOrder(byCountry[c]), " "))
	}
	return lines
}

// itineraryOrder sorts carriers by their first marketing segment, unknown ones last alphabetically
func (r *resolution) itineraryOrder(cxrs []string) []string {
	out := slices.Clone(cxrs)
	rank := func(c string) int {
		if i := slices.Index(r.marketing, c); i >= 0 {
			return i
		}
		return len(r.marketing)
	}
	slices.SortFunc(out, func(a, b string) int {
		if ra, rb := rank(a), rank(b); ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	return out
}
