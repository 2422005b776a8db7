package model

// Settlement plan codes
const (
	PlanBSP = "BSP"
	PlanARC = "ARC"
	PlanTCH = "TCH"
	PlanGEN = "GEN"
	PlanRUT = "RUT"
	PlanPRT = "PRT"
	PlanSAT = "SAT"
	PlanKRY = "KRY"
	PlanGTC = "GTC"
	PlanIPC = "IPC"
	// PlanNSP is the pseudo-plan of carriers ticketed without a settlement plan
	PlanNSP = "NSP"
)

// PlanHierarchy is the order in which settlement plans are preferred
var PlanHierarchy = []string{
	PlanBSP, PlanARC, PlanTCH, PlanGEN, PlanRUT, PlanPRT,
	PlanSAT, PlanKRY, PlanGTC, PlanIPC, PlanNSP,
}

// PlanRank returns the hierarchy position of plan, or len(PlanHierarchy) when unknown
func PlanRank(plan string) int {
	for i, p := range PlanHierarchy {
		if p == plan {
			return i
		}
	}
	return len(PlanHierarchy)
}

// TicketType is the resolved or requested ticket type of a transaction
type TicketType int

const (
	TicketTypeNone TicketType = iota
	ETktPreferred
	ETktRequired
	PaperTktPreferred
	PaperTktRequired
)

var ticketTypeNames = map[TicketType]string{
	TicketTypeNone:    "NO_TYPE",
	ETktPreferred:     "ETKT_PREF",
	ETktRequired:      "ETKT_REQ",
	PaperTktPreferred: "PAPER_TKT_PREF",
	PaperTktRequired:  "PAPER_TKT_REQ",
}

func (t TicketType) String() string {
	if name, ok := ticketTypeNames[t]; ok {
		return name
	}
	return ticketTypeNames[TicketTypeNone]
}

func (t TicketType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TicketType) UnmarshalText(text []byte) error {
	*t = ParseTicketType(string(text))
	return nil
}

// IsElectronic reports whether t asks for an electronic ticket
func (t TicketType) IsElectronic() bool {
	return t == ETktPreferred || t == ETktRequired
}

// IsPaper reports whether t asks for a paper ticket
func (t TicketType) IsPaper() bool {
	return t == PaperTktPreferred || t == PaperTktRequired
}

// ParseTicketType maps a ticket type name back to its value
func ParseTicketType(name string) TicketType {
	for t, n := range ticketTypeNames {
		if n == name {
			return t
		}
	}
	return TicketTypeNone
}

// ValidationResult is the coarse outcome of a resolution
type ValidationResult int

const (
	NoResult ValidationResult = iota
	Valid
	ValidSingleGsaSwap
	ValidMultipleGsaSwap
	NotValid
	Error
)

var resultNames = [...]string{"NO_RESULT", "VALID", "VALID_SINGLE_GSA_SWAP", "VALID_MULTIPLE_GSA_SWAP", "NOT_VALID", "ERROR"}

func (r ValidationResult) String() string {
	if r < 0 || int(r) >= len(resultNames) {
		return resultNames[NoResult]
	}
	return resultNames[r]
}

func (r ValidationResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *ValidationResult) UnmarshalText(text []byte) error {
	for i, n := range resultNames {
		if n == string(text) {
			*r = ValidationResult(i)
			return nil
		}
	}
	*r = NoResult
	return nil
}

// IsValid reports whether r carries validating carriers
func (r ValidationResult) IsValid() bool {
	return r == Valid || r == ValidSingleGsaSwap || r == ValidMultipleGsaSwap
}

// ValidationStatus selects the message template of an outcome
type ValidationStatus int

const (
	NoMsg ValidationStatus = iota
	ValidMsg
	ValidOverride
	ValidSingleGsa
	AlternateCxr
	OptionalCxr
	NoValidTktAgmtFound
	HasNoInterlineTicketingAgreementWith
	PaperTktOverrideErr
	CxrDoesNotParticipateInSettlementPlan
	InvalidSettlementPlan
	NoSettlementPlanForNation
	OpenSegmentNotAllowed
	InvalidNation
)

var statusNames = [...]string{
	"NO_MSG",
	"VALID_MSG",
	"VALID_OVERRIDE",
	"VALID_SINGLE_GSA",
	"ALTERNATE_CXR",
	"OPTIONAL_CXR",
	"NO_VALID_TKT_AGMT_FOUND",
	"HAS_NO_INTERLINE_TICKETING_AGREEMENT_WITH",
	"PAPER_TKT_OVERRIDE_ERR",
	"CXR_DOES_NOT_PARTICIPATE_IN_SETTLEMENT_PLAN",
	"INVALID_SETTLEMENT_PLAN",
	"NO_SETTLEMENT_PLAN_FOR_NATION",
	"OPEN_SEGMENT_NOT_ALLOWED",
	"INVALID_NATION",
}

func (s ValidationStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return statusNames[NoMsg]
	}
	return statusNames[s]
}

func (s ValidationStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ValidationStatus) UnmarshalText(text []byte) error {
	for i, n := range statusNames {
		if n == string(text) {
			*s = ValidationStatus(i)
			return nil
		}
	}
	*s = NoMsg
	return nil
}

// NSPMode selects how carriers of the no-settlement-plan pseudo-plan are checked
type NSPMode int

const (
	// NSPNoValidation adds NSP carriers without any check
	NSPNoValidation NSPMode = iota
	// NSPInterlineValidation checks interline agreements in each listed country
	NSPInterlineValidation
)

func (m NSPMode) String() string {
	if m == NSPInterlineValidation {
		return "INTERLINE_VALIDATION"
	}
	return "NO_VALIDATION"
}
