package model

import (
	"slices"
	"strings"
	"time"
)

// OpenSegmentCarrier marks a segment without a booked carrier
const OpenSegmentCarrier = "**"

// Segment is one flight segment of the itinerary
type Segment struct {
	MarketingCarrier string `json:"marketing_carrier"`
	OperatingCarrier string `json:"operating_carrier,omitempty"`
}

// NSPOptions asks for the no-settlement-plan pseudo-plan
type NSPOptions struct {
	Mode      NSPMode  `json:"mode"`
	Carriers  []string `json:"carriers,omitempty"`
	Countries []string `json:"countries,omitempty"`
}

// HasCarrier reports whether cxr is one of the NSP carriers
func (o *NSPOptions) HasCarrier(cxr string) bool {
	return o != nil && slices.Contains(o.Carriers, cxr)
}

// ResolveRequest is the input of one resolution
type ResolveRequest struct {
	Country           string    `json:"country"`
	HostID            string    `json:"host_id"`
	SettlementPlan    string    `json:"settlement_plan,omitempty"`
	ValidatingCarrier string    `json:"validating_carrier,omitempty"`
	Segments          []Segment `json:"segments"`
	// ParticipatingCarriers overrides the carriers derived from Segments when set
	ParticipatingCarriers       []string    `json:"participating_carriers,omitempty"`
	TicketType                  TicketType  `json:"ticket_type"`
	TicketDate                  time.Time   `json:"ticket_date"`
	OnlyCheckAgreementExistence bool        `json:"only_check_agreement_existence,omitempty"`
	NoSettlementPlan            *NSPOptions `json:"no_settlement_plan,omitempty"`
	Diagnostic                  bool        `json:"diagnostic,omitempty"`
}

// Electronic reports whether an electronic ticket is requested; no type means electronic
func (r *ResolveRequest) Electronic() bool {
	return !r.TicketType.IsPaper()
}

// MarketingCarriers returns the marketing carriers of the itinerary in segment order
func (r *ResolveRequest) MarketingCarriers() []string {
	var out []string
	for _, seg := range r.Segments {
		if !slices.Contains(out, seg.MarketingCarrier) {
			out = append(out, seg.MarketingCarrier)
		}
	}
	return out
}

// ParticipatingCxrs returns every carrier taking part in the itinerary, marketing
// carriers and operating carriers, deduplicated in segment order
func (r *ResolveRequest) ParticipatingCxrs() []string {
	if len(r.ParticipatingCarriers) > 0 {
		return appendUnique(nil, r.ParticipatingCarriers...)
	}
	var out []string
	for _, seg := range r.Segments {
		out = appendUnique(out, seg.MarketingCarrier, seg.OperatingCarrier)
	}
	return out
}

// HasOpenSegment reports whether any segment has no booked marketing carrier
func (r *ResolveRequest) HasOpenSegment() bool {
	for _, seg := range r.Segments {
		if IsOpenCarrier(seg.MarketingCarrier) {
			return true
		}
	}
	return false
}

// HashKey identifies itineraries that resolve identically for the same point of sale:
// sorted marketing carriers, "|", sorted participating carriers that market nothing
func (r *ResolveRequest) HashKey() string {
	marketing := r.MarketingCarriers()
	var others []string
	for _, cxr := range r.ParticipatingCxrs() {
		if !slices.Contains(marketing, cxr) {
			others = append(others, cxr)
		}
	}
	marketing = slices.Clone(marketing)
	slices.Sort(marketing)
	slices.Sort(others)
	return strings.Join(marketing, "") + "|" + strings.Join(others, "")
}

// ItineraryKey is HashKey without the sorting: marketing carriers and participating
// carriers in segment order. Itineraries sharing it resolve to the same outcome,
// alternate order included.
func (r *ResolveRequest) ItineraryKey() string {
	return strings.Join(r.MarketingCarriers(), ",") + "|" + strings.Join(r.ParticipatingCxrs(), ",")
}

// IsOpenCarrier reports whether cxr is an open-segment placeholder
func IsOpenCarrier(cxr string) bool {
	return cxr == OpenSegmentCarrier || strings.TrimSpace(cxr) == ""
}

func appendUnique(dst []string, carriers ...string) []string {
	for _, cxr := range carriers {
		if cxr == "" || slices.Contains(dst, cxr) {
			continue
		}
		dst = append(dst, cxr)
	}
	return dst
}

// ParticipatingCarrier pairs an itinerary carrier with the agreement found for it
type ParticipatingCarrier struct {
	Carrier       string        `json:"carrier"`
	AgreementType AgreementType `json:"agreement_type"`
}

// ValidatingCxrData is the per-candidate working state of one resolution
type ValidatingCxrData struct {
	TicketType              TicketType
	ParticipatingCxrs       []ParticipatingCarrier
	InterlineFailedCxr      string
	InterlineStatusCode     ValidationStatus
	InterlineValidCountries []string
}

// CarrierSource tells how a carrier became valid in a plan
type CarrierSource int

const (
	SourceDirect CarrierSource = iota
	SourceGsa
	SourceNeutral
)

// PlanValidation holds the valid carriers of one settlement plan
type PlanValidation struct {
	Plan     string
	Carriers []string
	Data     map[string]*ValidatingCxrData
	Sources  map[string]CarrierSource
	// GsaSwaps maps a non-participating marketing carrier to its valid agents
	GsaSwaps map[string][]string
}

func NewPlanValidation(plan string) *PlanValidation {
	return &PlanValidation{
		Plan:     plan,
		Data:     make(map[string]*ValidatingCxrData),
		Sources:  make(map[string]CarrierSource),
		GsaSwaps: make(map[string][]string),
	}
}

// Add records cxr as valid; later additions of the same carrier are ignored
func (p *PlanValidation) Add(cxr string, data *ValidatingCxrData, source CarrierSource) {
	if p.Has(cxr) {
		return
	}
	p.Carriers = append(p.Carriers, cxr)
	p.Data[cxr] = data
	p.Sources[cxr] = source
}

// AddSwap records that agent validates in place of marketing
func (p *PlanValidation) AddSwap(marketing, agent string) {
	agents := p.GsaSwaps[marketing]
	if slices.Contains(agents, agent) {
		return
	}
	p.GsaSwaps[marketing] = append(agents, agent)
}

func (p *PlanValidation) Has(cxr string) bool {
	_, ok := p.Data[cxr]
	return ok
}

func (p *PlanValidation) Empty() bool {
	return p == nil || len(p.Carriers) == 0
}

// HasNeutral reports whether any valid carrier came from the neutral list
func (p *PlanValidation) HasNeutral() bool {
	for _, src := range p.Sources {
		if src == SourceNeutral {
			return true
		}
	}
	return false
}

// GsaSubstitutes counts the valid carriers that only validate as a GSA
func (p *PlanValidation) GsaSubstitutes() int {
	n := 0
	for _, src := range p.Sources {
		if src == SourceGsa {
			n++
		}
	}
	return n
}

// SwappedFor returns the marketing carrier agent substitutes for, if any
func (p *PlanValidation) SwappedFor(agent string) string {
	keys := make([]string, 0, len(p.GsaSwaps))
	for k := range p.GsaSwaps {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if slices.Contains(p.GsaSwaps[k], agent) {
			return k
		}
	}
	return ""
}

// PlanOutcome is the resolution result for one settlement plan
type PlanOutcome struct {
	SettlementPlan    string              `json:"settlement_plan"`
	Result            ValidationResult    `json:"result"`
	Status            ValidationStatus    `json:"status"`
	ValidatingCxrs    []string            `json:"validating_carriers,omitempty"`
	DefaultCxr        string              `json:"default_carrier,omitempty"`
	SwappedFor        string              `json:"swapped_for,omitempty"`
	TicketType        TicketType          `json:"ticket_type"`
	IsGsaSwap         bool                `json:"is_gsa_swap"`
	IsMultipleGsaSwap bool                `json:"is_multiple_gsa_swap"`
	IsGtcCarrier      bool                `json:"is_gtc_carrier"`
	HasNeutral        bool                `json:"has_neutral,omitempty"`
	Message           string              `json:"message"`
	GsaSwaps          map[string][]string `json:"gsa_swaps,omitempty"`
	// InterlineValidCountries lists, per NSP carrier, the countries it passed interline in
	InterlineValidCountries map[string][]string `json:"interline_valid_countries,omitempty"`
}

// Outcome is the full result of one resolution
type Outcome struct {
	PlanOutcome
	Trailer []string      `json:"trailer,omitempty"`
	Plans   []PlanOutcome `json:"plans,omitempty"`
	HashKey string        `json:"hash_key"`
	Trace   []TraceEvent  `json:"trace,omitempty"`
}

// Itinerary is one entry of a batch sharing the point of sale of its request
type Itinerary struct {
	Segments              []Segment `json:"segments"`
	ParticipatingCarriers []string  `json:"participating_carriers,omitempty"`
}

// BatchOutcome holds one outcome per itinerary, in request order
// Itineraries with the same hash key share one outcome
type BatchOutcome struct {
	Outcomes []*Outcome `json:"outcomes"`
	Distinct int        `json:"distinct"`
}
