package validating_carrier_service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/validator"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
)

func validRequest() ResolveRequest {
	return ResolveRequest{
		Country:           "AU",
		HostID:            "1S",
		ValidatingCarrier: "QF",
		Segments: []SegmentRequest{
			{MarketingCarrier: "QF"},
			{MarketingCarrier: "LH", OperatingCarrier: "TG"},
		},
		TicketType: "PAPER_TKT_REQ",
		TicketDate: "2025-06-01",
		NoSettlementPlan: &NoSettlementPlanRequest{
			Mode:      NSPModeInterline,
			Carriers:  []string{"LH"},
			Countries: []string{"AU", "NZ"},
		},
	}
}

func TestResolveRequest_Validation(t *testing.T) {
	req := validRequest()
	assert.Nil(t, validator.ValidateStruct(&req))

	open := validRequest()
	open.Segments = append(open.Segments, SegmentRequest{MarketingCarrier: "**"})
	assert.Nil(t, validator.ValidateStruct(&open))

	bad := validRequest()
	bad.Country = "AUS"
	bad.ValidatingCarrier = "QFX"
	bad.Segments = nil
	bad.TicketDate = "01/06/2025"
	bad.NoSettlementPlan.Mode = "SOMETIMES"
	errs := validator.ValidateStruct(&bad)
	assert.Contains(t, errs, "country")
	assert.Contains(t, errs, "validating_carrier")
	assert.Contains(t, errs, "segments")
	assert.Contains(t, errs, "ticket_date")
	assert.Contains(t, errs, "no_settlement_plan.mode")
}

func TestResolveRequestToModel(t *testing.T) {
	req := validRequest()
	m, err := ResolveRequestToModel(&req)
	require.NoError(t, err)

	assert.Equal(t, "AU", m.Country)
	assert.Equal(t, "QF", m.ValidatingCarrier)
	assert.Equal(t, []model.Segment{{MarketingCarrier: "QF"}, {MarketingCarrier: "LH", OperatingCarrier: "TG"}}, m.Segments)
	assert.Equal(t, model.PaperTktRequired, m.TicketType)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), m.TicketDate)
	require.NotNil(t, m.NoSettlementPlan)
	assert.Equal(t, model.NSPInterlineValidation, m.NoSettlementPlan.Mode)

	req.TicketDate = "tomorrow"
	_, err = ResolveRequestToModel(&req)
	assert.Error(t, err)
}

func TestResolveBatchRequestToModel(t *testing.T) {
	req := ResolveBatchRequest{
		Country: "AU",
		HostID:  "1S",
		Itineraries: []ItineraryRequest{
			{Segments: []SegmentRequest{{MarketingCarrier: "QF"}}},
			{Segments: []SegmentRequest{{MarketingCarrier: "VA"}}, ParticipatingCarriers: []string{"VA", "QF"}},
		},
	}
	assert.Nil(t, validator.ValidateStruct(&req))

	base, itineraries, err := ResolveBatchRequestToModel(&req)
	require.NoError(t, err)
	assert.Equal(t, "AU", base.Country)
	assert.Nil(t, base.NoSettlementPlan)
	assert.True(t, base.TicketDate.IsZero())
	require.Len(t, itineraries, 2)
	assert.Equal(t, []string{"VA", "QF"}, itineraries[1].ParticipatingCarriers)
}

func TestOutcomeToResponse(t *testing.T) {
	out := &model.Outcome{
		PlanOutcome: model.PlanOutcome{
			SettlementPlan: "BSP",
			Result:         model.ValidSingleGsaSwap,
			Status:         model.ValidOverride,
			ValidatingCxrs: []string{"DL"},
			DefaultCxr:     "DL",
			SwappedFor:     "KL",
			TicketType:     model.ETktRequired,
			IsGsaSwap:      true,
			Message:        "VALIDATING CARRIER - DL PER GSA AGREEMENT WITH KL",
			GsaSwaps:       map[string][]string{"KL": {"DL"}},
		},
		Trailer: []string{"VALIDATING CARRIER - DL PER GSA AGREEMENT WITH KL"},
		Plans:   []model.PlanOutcome{{SettlementPlan: "GTC", Result: model.NotValid, Status: model.NoValidTktAgmtFound}},
		HashKey: "AFKL|",
	}

	resp := OutcomeToResponse(out)
	assert.Equal(t, "VALID_SINGLE_GSA_SWAP", resp.Result)
	assert.Equal(t, "VALID_OVERRIDE", resp.Status)
	assert.Equal(t, "ETKT_REQ", resp.TicketType)
	assert.Equal(t, "KL", resp.SwappedFor)
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, "NOT_VALID", resp.Plans[0].Result)
	assert.Equal(t, []string{}, resp.Plans[0].ValidatingCarriers)
	assert.Empty(t, resp.Plans[0].TicketType)

	batch := BatchOutcomeToResponse(&model.BatchOutcome{Outcomes: []*model.Outcome{out, out}, Distinct: 1})
	assert.Len(t, batch.Outcomes, 2)
}

func TestSettlementPlansToResponse(t *testing.T) {
	resp := SettlementPlansToResponse(&model.SettlementPlanDisplay{
		Country:     "AU",
		HostID:      "1S",
		Date:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PrimaryPlan: "BSP",
		Plans: []model.PlanDisplay{{
			SettlementPlan:          "BSP",
			RequiredTicketingMethod: model.TicketingMethodElectronic,
			Carriers:                []model.PlanCarrier{{Carrier: "QF", TicketType: model.ETktRequired}},
			NeutralCarriers:         []string{"2N"},
		}},
	})
	assert.Equal(t, "2025-06-01", resp.Date)
	require.Len(t, resp.Plans, 1)
	assert.Equal(t, "E", resp.Plans[0].RequiredTicketingMethod)
	assert.Equal(t, []PlanCarrierResponse{{Carrier: "QF", TicketType: "ETKT_REQ"}}, resp.Plans[0].Carriers)
}
