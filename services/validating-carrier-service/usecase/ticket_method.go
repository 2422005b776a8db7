package usecase

import (
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

// ticketingMethod resolves the ticket type a carrier issues under a plan
// part is nil for carriers without a participation record
func ticketingMethod(plan *model.SettlementPlan, part *model.CarrierParticipation) model.TicketType {
	if plan.RequiredTicketingMethod == model.TicketingMethodElectronic {
		return model.ETktRequired
	}
	if part == nil {
		return model.ETktPreferred
	}
	if part.RequiredTicketingMethod == model.TicketingMethodElectronic {
		return model.ETktRequired
	}
	if part.PreferredTicketingMethod == model.TicketingMethodPaper {
		return model.PaperTktPreferred
	}
	return model.ETktPreferred
}

// requestedTicketType is the ticket type a request asks for; electronic requests are
// strict, paper requests keep their preference level
func requestedTicketType(req *model.ResolveRequest) model.TicketType {
	if req.Electronic() {
		return model.ETktRequired
	}
	return req.TicketType
}

// isTicketTypeConflict reports a carrier that only issues electronic tickets
// asked for a paper one; preferences never conflict
func isTicketTypeConflict(cxrType, requested model.TicketType) bool {
	return cxrType == model.ETktRequired && requested == model.PaperTktRequired
}
