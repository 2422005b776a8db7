package model

// TraceKind names a step of a resolution
type TraceKind string

const (
	TraceNationChecked        TraceKind = "nation_checked"
	TracePlanResolved         TraceKind = "plan_resolved"
	TraceCarrierParticipation TraceKind = "carrier_participation"
	TraceTicketMethodConflict TraceKind = "ticket_method_conflict"
	TraceInterlineChecked     TraceKind = "interline_checked"
	TraceGsaCandidates        TraceKind = "gsa_candidates"
	TraceGsaCandidateChecked  TraceKind = "gsa_candidate_checked"
	TraceNeutralCandidates    TraceKind = "neutral_candidates"
	TraceOutcomeAssembled     TraceKind = "outcome_assembled"
)

// TraceEvent is one diagnostic record emitted while resolving
type TraceEvent struct {
	Kind        TraceKind        `json:"kind"`
	Plan        string           `json:"plan,omitempty"`
	Carrier     string           `json:"carrier,omitempty"`
	Counterpart string           `json:"counterpart,omitempty"`
	Carriers    []string         `json:"carriers,omitempty"`
	Passed      bool             `json:"passed"`
	Status      ValidationStatus `json:"status,omitempty"`
	Detail      string           `json:"detail,omitempty"`
}
