package usecase

import (
	"strings"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// Template slots replaced by carrier codes
const (
	slotCarrier = "|XX|"
	slotOther   = "|ZZ|"
)

const (
	gtcCarrierSuffix = " - GTC CARRIER"
	unknownStatus    = "UNKNOWN STATUS"
)

var statusTemplates = map[model.ValidationStatus]string{
	model.ValidMsg:                              "VALIDATING CARRIER - |XX|",
	model.ValidOverride:                         "VALIDATING CARRIER SPECIFIED - |XX|",
	model.ValidSingleGsa:                        "VALIDATING CARRIER - |XX| PER GSA AGREEMENT WITH |ZZ|",
	model.AlternateCxr:                          "ALTERNATE VALIDATING CARRIER/S - ",
	model.OptionalCxr:                           "OPTIONAL VALIDATING CARRIERS - ",
	model.NoValidTktAgmtFound:                   "NO VALID TICKETING AGREEMENTS FOUND",
	model.HasNoInterlineTicketingAgreementWith:  "|XX| HAS NO INTERLINE TICKETING AGREEMENT WITH |ZZ|",
	model.PaperTktOverrideErr:                   "PAPER TICKET NOT PERMITTED",
	model.CxrDoesNotParticipateInSettlementPlan: "|XX| NOT VALID FOR SETTLEMENT METHOD",
	model.InvalidSettlementPlan:                 "INVALID SETTLEMENT METHOD FOR POINT OF SALE",
	model.NoSettlementPlanForNation:             "NO VALID SETTLEMENT METHOD FOUND FOR NATION |XX|",
	model.OpenSegmentNotAllowed:                 "OPEN SEG ** NOT ALLOWED - CANCEL/REBOOK",
	model.InvalidNation:                         "NATION IS NOT VALID: |XX|",
}

// StatusText returns the template of status with its slots removed
func StatusText(status model.ValidationStatus) string {
	tmpl, ok := statusTemplates[status]
	if !ok {
		return unknownStatus
	}
	return strings.NewReplacer(slotCarrier, "", slotOther, "").Replace(tmpl)
}

// FormatStatus fills the template of status with cxr and other
func FormatStatus(status model.ValidationStatus, cxr, other string) string {
	tmpl, ok := statusTemplates[status]
	if !ok {
		return unknownStatus
	}
	msg := strings.NewReplacer(slotCarrier, cxr, slotOther, other).Replace(tmpl)
	return strings.TrimRight(msg, " ")
}

// carrierListMessage is the alternate or optional line for carriers
func carrierListMessage(status model.ValidationStatus, carriers []string) string {
	return strings.TrimRight(statusTemplates[status]+strings.Join(carriers, " "), " ")
}

// validationCxrMessage is the failure message of a requested carrier
func validationCxrMessage(status model.ValidationStatus, cxr, failedCxr string) string {
	switch status {
	case model.HasNoInterlineTicketingAgreementWith:
		return FormatStatus(status, cxr, failedCxr)
	case model.PaperTktOverrideErr, model.NoValidTktAgmtFound:
		return StatusText(status)
	default:
		return FormatStatus(model.CxrDoesNotParticipateInSettlementPlan, cxr, "")
	}
}

// wrapLine splits line into pieces no longer than width, breaking at spaces where possible
func wrapLine(line string, width int) []string {
	if width <= 0 || len(line) <= width {
		return []string{line}
	}
	var out []string
	for len(line) > width {
		cut := strings.LastIndexByte(line[:width+1], ' ')
		if cut <= 0 {
			out = append(out, line[:width])
			line = line[width:]
			continue
		}
		out = append(out, line[:cut])
		line = strings.TrimLeft(line[cut:], " ")
	}
	if line != "" {
		out = append(out, line)
	}
	return out
}

func wrapLines(lines []string, width int) []string {
	var out []string
	for _, l := range lines {
		out = append(out, wrapLine(l, width)...)
	}
	return out
}
