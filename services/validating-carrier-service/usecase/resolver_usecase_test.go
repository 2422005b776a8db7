package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/repository/snapshot"
)

var ticketDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func scenarioGateway(t *testing.T) repository.ReferenceData {
	t.Helper()
	set, err := snapshot.LoadFile("testdata/scenarios.yaml")
	require.NoError(t, err)
	return snapshot.NewReferenceDataRepository(set, logger.NoOpLogger())
}

func newResolver(t *testing.T, opts Options, options ...ResolverOption) ResolverUseCase {
	t.Helper()
	return NewResolverUseCase(scenarioGateway(t), opts, logger.NoOpLogger(), options...)
}

// request builds an itinerary with one segment per marketing carrier
func request(country, validating string, marketing ...string) *model.ResolveRequest {
	segments := make([]model.Segment, 0, len(marketing))
	for _, m := range marketing {
		segments = append(segments, model.Segment{MarketingCarrier: m})
	}
	return &model.ResolveRequest{
		Country:           country,
		HostID:            "1S",
		ValidatingCarrier: validating,
		Segments:          segments,
		TicketDate:        ticketDate,
	}
}

func TestResolve_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		req      func() *model.ResolveRequest
		result   model.ValidationResult
		status   model.ValidationStatus
		carriers []string
		def      string
		swapped  string
		message  string
		gtc      bool
	}{
		{
			name:     "single GSA swap for non participating requested carrier",
			req:      func() *model.ResolveRequest { return request("BM", "KL", "KL", "AF") },
			result:   model.ValidSingleGsaSwap,
			status:   model.ValidOverride,
			carriers: []string{"DL"},
			def:      "DL",
			swapped:  "KL",
			message:  "VALIDATING CARRIER - DL PER GSA AGREEMENT WITH KL",
		},
		{
			name:     "multiple GSA swaps leave no default",
			req:      func() *model.ResolveRequest { return request("AU", "LH", "LH") },
			result:   model.ValidMultipleGsaSwap,
			status:   model.ValidOverride,
			carriers: []string{"TG", "UA"},
			message:  "ALTERNATE VALIDATING CARRIER/S - TG UA",
		},
		{
			name: "paper ticket refused by electronic only carrier",
			req: func() *model.ResolveRequest {
				req := request("BM", "DL", "DL", "KL")
				req.TicketType = model.PaperTktRequired
				return req
			},
			result:  model.NotValid,
			status:  model.PaperTktOverrideErr,
			message: "PAPER TICKET NOT PERMITTED",
		},
		{
			name: "paper preference is not refused by electronic only carrier",
			req: func() *model.ResolveRequest {
				req := request("BM", "DL", "DL", "KL")
				req.TicketType = model.PaperTktPreferred
				return req
			},
			result:   model.Valid,
			status:   model.ValidOverride,
			carriers: []string{"DL"},
			def:      "DL",
			message:  "VALIDATING CARRIER SPECIFIED - DL",
		},
		{
			name:     "GSA substitutes keep record order",
			req:      func() *model.ResolveRequest { return request("AU", "LX", "LX") },
			result:   model.ValidMultipleGsaSwap,
			status:   model.ValidOverride,
			carriers: []string{"UA", "TG"},
			message:  "ALTERNATE VALIDATING CARRIER/S - UA TG",
		},
		{
			name: "GSA without agreement with the operating carrier",
			req: func() *model.ResolveRequest {
				req := request("US", "B1")
				req.Segments = []model.Segment{{MarketingCarrier: "B1", OperatingCarrier: "P1"}}
				return req
			},
			result:  model.NotValid,
			status:  model.NoValidTktAgmtFound,
			message: "NO VALID TICKETING AGREEMENTS FOUND",
		},
		{
			name:    "GTC carrier without agreements",
			req:     func() *model.ResolveRequest { return request("SA", "8P", "8P", "AF") },
			result:  model.NotValid,
			status:  model.CxrDoesNotParticipateInSettlementPlan,
			message: "8P NOT VALID FOR SETTLEMENT METHOD - GTC CARRIER",
			gtc:     true,
		},
		{
			name:     "requested carrier valid",
			req:      func() *model.ResolveRequest { return request("AU", "QF", "QF", "VA") },
			result:   model.Valid,
			status:   model.ValidOverride,
			carriers: []string{"QF"},
			def:      "QF",
			message:  "VALIDATING CARRIER SPECIFIED - QF",
		},
		{
			name:     "alternates in itinerary order",
			req:      func() *model.ResolveRequest { return request("AU", "", "VA", "QF") },
			result:   model.Valid,
			status:   model.ValidMsg,
			carriers: []string{"VA", "QF"},
			message:  "ALTERNATE VALIDATING CARRIER/S - VA QF",
		},
		{
			name:     "neutral carriers are optional",
			req:      func() *model.ResolveRequest { return request("AU", "", "XX") },
			result:   model.Valid,
			status:   model.ValidMsg,
			carriers: []string{"2N", "3N"},
			message:  "OPTIONAL VALIDATING CARRIERS - 2N 3N",
		},
		{
			name:    "missing interline agreement",
			req:     func() *model.ResolveRequest { return request("AU", "QF", "QF", "LH") },
			result:  model.NotValid,
			status:  model.HasNoInterlineTicketingAgreementWith,
			message: "QF HAS NO INTERLINE TICKETING AGREEMENT WITH LH",
		},
		{
			name:    "requested carrier not in plan",
			req:     func() *model.ResolveRequest { return request("AU", "EK", "EK") },
			result:  model.NotValid,
			status:  model.CxrDoesNotParticipateInSettlementPlan,
			message: "EK NOT VALID FOR SETTLEMENT METHOD",
		},
		{
			name:    "open segment",
			req:     func() *model.ResolveRequest { return request("AU", "", "QF", model.OpenSegmentCarrier) },
			result:  model.Error,
			status:  model.OpenSegmentNotAllowed,
			message: "OPEN SEG ** NOT ALLOWED - CANCEL/REBOOK",
		},
		{
			name:    "unknown nation",
			req:     func() *model.ResolveRequest { return request("XY", "", "QF") },
			result:  model.Error,
			status:  model.InvalidNation,
			message: "NATION IS NOT VALID: XY",
		},
		{
			name:    "nation without plans",
			req:     func() *model.ResolveRequest { return request("FJ", "", "FJ") },
			result:  model.Error,
			status:  model.NoSettlementPlanForNation,
			message: "NO VALID SETTLEMENT METHOD FOUND FOR NATION FJ",
		},
		{
			name: "requested plan not offered",
			req: func() *model.ResolveRequest {
				req := request("AU", "", "QF")
				req.SettlementPlan = model.PlanARC
				return req
			},
			result:  model.Error,
			status:  model.InvalidSettlementPlan,
			message: "INVALID SETTLEMENT METHOD FOR POINT OF SALE",
		},
	}

	uc := newResolver(t, DefaultOptions())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.Resolve(context.Background(), tt.req())
			require.NoError(t, err)

			assert.Equal(t, tt.result, out.Result)
			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.carriers, out.ValidatingCxrs)
			assert.Equal(t, tt.def, out.DefaultCxr)
			assert.Equal(t, tt.swapped, out.SwappedFor)
			assert.Equal(t, tt.message, out.Message)
			assert.Equal(t, tt.gtc, out.IsGtcCarrier)
			assert.Equal(t, tt.result == model.ValidSingleGsaSwap || tt.result == model.ValidMultipleGsaSwap, out.IsGsaSwap)
		})
	}
}

func TestResolve_SingleGsaSwapDetails(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	out, err := uc.Resolve(context.Background(), request("BM", "KL", "KL", "AF"))
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"KL": {"DL"}}, out.GsaSwaps)
	assert.Equal(t, model.ETktRequired, out.TicketType)
	assert.Equal(t, []string{"VALIDATING CARRIER - DL PER GSA AGREEMENT WITH KL"}, out.Trailer)
	assert.Equal(t, "AFKL|", out.HashKey)
	assert.Equal(t, model.PlanBSP, out.SettlementPlan)
}

func TestResolve_AlphabeticalAlternates(t *testing.T) {
	opts := DefaultOptions()
	opts.AlphabeticalAlternates = true
	uc := newResolver(t, opts)

	out, err := uc.Resolve(context.Background(), request("AU", "", "VA", "QF"))
	require.NoError(t, err)
	assert.Equal(t, []string{"QF", "VA"}, out.ValidatingCxrs)
	assert.Equal(t, "ALTERNATE VALIDATING CARRIER/S - QF VA", out.Message)
}

func TestResolve_DefaultWithAlternatesTrailer(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	out, err := uc.Resolve(context.Background(), request("AU", "VA", "VA", "QF"))
	require.NoError(t, err)
	assert.Equal(t, []string{"VA"}, out.ValidatingCxrs)
	assert.Equal(t, []string{"VALIDATING CARRIER SPECIFIED - VA"}, out.Trailer)

	// QF in the itinerary is valid too, so without a request both are alternates
	out, err = uc.Resolve(context.Background(), request("AU", "", "VA", "QF"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ALTERNATE VALIDATING CARRIER/S - VA QF"}, out.Trailer)
}

func TestResolve_GsaAndNeutralDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.GsaEnabled = false
	opts.NeutralEnabled = false
	uc := newResolver(t, opts)

	out, err := uc.Resolve(context.Background(), request("AU", "LH", "LH"))
	require.NoError(t, err)
	assert.Equal(t, model.NotValid, out.Result)
	assert.Equal(t, "LH NOT VALID FOR SETTLEMENT METHOD", out.Message)

	out, err = uc.Resolve(context.Background(), request("AU", "", "XX"))
	require.NoError(t, err)
	assert.Equal(t, model.NotValid, out.Result)
	assert.Equal(t, model.NoValidTktAgmtFound, out.Status)
}

func TestResolve_OnlyCheckAgreementExistence(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	// a standard agreement does not cover a validating carrier outside the itinerary
	out, err := uc.Resolve(context.Background(), request("AU", "VA", "QF"))
	require.NoError(t, err)
	assert.Equal(t, model.NotValid, out.Result)
	assert.Equal(t, "VA HAS NO INTERLINE TICKETING AGREEMENT WITH QF", out.Message)

	req := request("AU", "VA", "QF")
	req.OnlyCheckAgreementExistence = true
	out, err = uc.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.Valid, out.Result)
	assert.Equal(t, "VALIDATING CARRIER SPECIFIED - VA", out.Message)
}

func TestResolve_PaperAllowedForPreferringCarrier(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	req := request("NZ", "", "NZ")
	req.SettlementPlan = model.PlanGTC
	req.TicketType = model.PaperTktRequired
	out, err := uc.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.Valid, out.Result)
	assert.Equal(t, model.PaperTktPreferred, out.TicketType)
	assert.Equal(t, "VALIDATING CARRIER - NZ", out.Message)
}

func TestResolve_MultiPlan(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	out, err := uc.Resolve(context.Background(), request("NZ", "", "NZ"))
	require.NoError(t, err)

	assert.Equal(t, model.PlanBSP, out.SettlementPlan)
	assert.Equal(t, model.Valid, out.Result)
	require.Len(t, out.Plans, 2)
	assert.Equal(t, model.PlanBSP, out.Plans[0].SettlementPlan)
	assert.Equal(t, model.PlanGTC, out.Plans[1].SettlementPlan)
	assert.Equal(t, []string{"VALIDATING CARRIER", "BSP - NZ", "GTC - NZ"}, out.Trailer)

	out, err = uc.Resolve(context.Background(), request("NZ", "NZ", "NZ"))
	require.NoError(t, err)
	assert.Equal(t, []string{"VALIDATING CARRIER SPECIFIED ", "BSP - NZ", "GTC - NZ"}, out.Trailer)
}

func TestResolve_SinglePlanFromHierarchy(t *testing.T) {
	opts := DefaultOptions()
	opts.MultiPlan = false
	uc := newResolver(t, opts)

	out, err := uc.Resolve(context.Background(), request("NZ", "", "NZ"))
	require.NoError(t, err)
	assert.Equal(t, model.PlanBSP, out.SettlementPlan)
	assert.Empty(t, out.Plans)
	assert.Equal(t, []string{"VALIDATING CARRIER - NZ"}, out.Trailer)

	// GTC alone is never chosen from the hierarchy
	out, err = uc.Resolve(context.Background(), request("SA", "", "8P"))
	require.NoError(t, err)
	assert.Equal(t, model.NoSettlementPlanForNation, out.Status)
}

func TestResolve_MultiPlanPartialFailure(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	// AF takes part in no NZ plan; both plans fail and the BSP outcome leads
	out, err := uc.Resolve(context.Background(), request("NZ", "", "AF"))
	require.NoError(t, err)
	assert.Equal(t, model.NotValid, out.Result)
	assert.Equal(t, model.PlanBSP, out.SettlementPlan)
	assert.Equal(t, []string{"NO VALID TICKETING AGREEMENTS FOUND"}, out.Trailer)
}

func TestResolve_NoSettlementPlanWithoutValidation(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	req := request("AU", "", "XX")
	req.NoSettlementPlan = &model.NSPOptions{Mode: model.NSPNoValidation, Carriers: []string{"XX"}}
	out, err := uc.Resolve(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.PlanNSP, out.SettlementPlan)
	assert.Equal(t, model.Valid, out.Result)
	assert.Equal(t, "XX", out.DefaultCxr)
	assert.Equal(t, []string{"NO SETTLEMENT PLAN/NO IET VALIDATION"}, out.Trailer)
}

func TestResolve_NoSettlementPlanWithInterline(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	req := request("AU", "", "QF", "VA")
	req.NoSettlementPlan = &model.NSPOptions{
		Mode:      model.NSPInterlineValidation,
		Carriers:  []string{"QF"},
		Countries: []string{"AU"},
	}
	out, err := uc.Resolve(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, model.PlanBSP, out.SettlementPlan)
	assert.Equal(t, "VA", out.DefaultCxr)
	require.Len(t, out.Plans, 2)
	assert.Equal(t, map[string][]string{"QF": {"AU"}}, out.Plans[1].InterlineValidCountries)
	assert.Equal(t, []string{
		"VALIDATING CARRIER",
		"BSP - VA",
		"NO SETTLEMENT PLAN WITH IET",
		"IET VALIDATION AU - QF",
	}, out.Trailer)
}

func TestResolve_RequestedNoSettlementPlan(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	req := request("AU", "", "XX")
	req.SettlementPlan = model.PlanNSP
	req.NoSettlementPlan = &model.NSPOptions{Mode: model.NSPNoValidation, Carriers: []string{"XX"}}
	out, err := uc.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.PlanNSP, out.SettlementPlan)
	assert.Empty(t, out.Plans)
	assert.Equal(t, []string{"VALIDATING CARRIER - XX"}, out.Trailer)
}

func TestResolve_Normalizes(t *testing.T) {
	now := time.Date(2025, 6, 1, 17, 30, 0, 0, time.UTC)
	uc := newResolver(t, DefaultOptions(), WithClock(func() time.Time { return now }))

	req := &model.ResolveRequest{
		Country:           " au ",
		HostID:            "1s",
		ValidatingCarrier: "qf",
		Segments:          []model.Segment{{MarketingCarrier: "qf"}, {MarketingCarrier: "va"}},
	}
	out, err := uc.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "VALIDATING CARRIER SPECIFIED - QF", out.Message)
	assert.Equal(t, " au ", req.Country, "caller request must not be modified")
}

func TestResolve_RejectsIncompleteRequest(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	_, err := uc.Resolve(context.Background(), &model.ResolveRequest{HostID: "1S", Segments: []model.Segment{{MarketingCarrier: "QF"}}})
	assert.ErrorIs(t, err, domain.ErrPointOfSaleRequired)

	_, err = uc.Resolve(context.Background(), &model.ResolveRequest{Country: "AU", HostID: "1S"})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestResolve_Diagnostic(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	req := request("BM", "KL", "KL", "AF")
	out, err := uc.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, out.Trace)

	req.Diagnostic = true
	out, err = uc.Resolve(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, out.Trace)
	assert.Equal(t, model.TraceNationChecked, out.Trace[0].Kind)
	assert.Equal(t, model.TraceOutcomeAssembled, out.Trace[len(out.Trace)-1].Kind)

	var checked []model.TraceEvent
	for _, e := range out.Trace {
		if e.Kind == model.TraceGsaCandidateChecked {
			checked = append(checked, e)
		}
	}
	require.Len(t, checked, 1)
	assert.Equal(t, "DL", checked[0].Carrier)
	assert.Equal(t, "KL", checked[0].Counterpart)
	assert.True(t, checked[0].Passed)
}

type recordingPublisher struct {
	resolved []model.ResolvedEvent
	traces   []model.TraceEvent
	keys     []string
}

func (p *recordingPublisher) PublishResolved(_ context.Context, e model.ResolvedEvent) {
	p.resolved = append(p.resolved, e)
}

func (p *recordingPublisher) PublishTrace(_ context.Context, hashKey string, e model.TraceEvent) {
	p.keys = append(p.keys, hashKey)
	p.traces = append(p.traces, e)
}

type recordingRecorder struct {
	results []string
	plans   []string
}

func (r *recordingRecorder) ObserveResolution(result, plan string, _ time.Duration) {
	r.results = append(r.results, result)
	r.plans = append(r.plans, plan)
}

func TestResolve_PublishesAndRecords(t *testing.T) {
	pub := &recordingPublisher{}
	rec := &recordingRecorder{}
	opts := DefaultOptions()
	opts.PublishOutcomes = true
	opts.TraceToKafka = true
	uc := newResolver(t, opts, WithPublisher(pub), WithRecorder(rec))

	out, err := uc.Resolve(context.Background(), request("AU", "QF", "QF", "VA"))
	require.NoError(t, err)

	require.Len(t, pub.resolved, 1)
	assert.Len(t, pub.resolved[0].EventID, 26)
	assert.Equal(t, "AU", pub.resolved[0].Request.Country)
	assert.Equal(t, out.Message, pub.resolved[0].Outcome.Message)
	require.NotEmpty(t, pub.traces)
	for _, k := range pub.keys {
		assert.Equal(t, "QFVA|", k)
	}
	assert.Equal(t, []string{"VALID"}, rec.results)
	assert.Equal(t, []string{"BSP"}, rec.plans)
}

type failingGateway struct {
	repository.ReferenceData
	err error
}

func (g failingGateway) NationExists(context.Context, string, time.Time) (bool, error) {
	return true, nil
}

func (g failingGateway) GetSettlementPlans(context.Context, string, time.Time) ([]model.SettlementPlan, error) {
	return nil, g.err
}

func TestResolve_GatewayError(t *testing.T) {
	cause := errors.New("connection refused")
	rec := &recordingRecorder{}
	uc := NewResolverUseCase(failingGateway{err: cause}, DefaultOptions(), logger.NoOpLogger(), WithRecorder(rec))

	out, err := uc.Resolve(context.Background(), request("AU", "", "QF"))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrReferenceDataUnavailable)
	assert.Empty(t, rec.results)
}

func TestResolveBatch(t *testing.T) {
	uc := newResolver(t, DefaultOptions())

	base := &model.ResolveRequest{Country: "AU", HostID: "1S", TicketDate: ticketDate}
	qfva := model.Itinerary{Segments: []model.Segment{{MarketingCarrier: "QF"}, {MarketingCarrier: "VA"}}}
	vaqf := model.Itinerary{Segments: []model.Segment{{MarketingCarrier: "VA"}, {MarketingCarrier: "QF"}}}
	batch, err := uc.ResolveBatch(context.Background(), base, []model.Itinerary{
		qfva,
		vaqf,
		qfva,
		{Segments: []model.Segment{{MarketingCarrier: "LH"}}},
	})
	require.NoError(t, err)

	require.Len(t, batch.Outcomes, 4)
	assert.Equal(t, 3, batch.Distinct)
	assert.Same(t, batch.Outcomes[0], batch.Outcomes[2])
	assert.NotSame(t, batch.Outcomes[0], batch.Outcomes[1])
	assert.Equal(t, "QFVA|", batch.Outcomes[0].HashKey)
	assert.Equal(t, "QFVA|", batch.Outcomes[1].HashKey)
	assert.Equal(t, "ALTERNATE VALIDATING CARRIER/S - QF VA", batch.Outcomes[0].Message)
	assert.Equal(t, "ALTERNATE VALIDATING CARRIER/S - VA QF", batch.Outcomes[1].Message)
	assert.Equal(t, model.ValidMultipleGsaSwap, batch.Outcomes[3].Result)

	// a batch entry matches resolving the same itinerary alone
	single, err := uc.Resolve(context.Background(), request("AU", "", "VA", "QF"))
	require.NoError(t, err)
	assert.Equal(t, single.ValidatingCxrs, batch.Outcomes[1].ValidatingCxrs)
	assert.Equal(t, single.Message, batch.Outcomes[1].Message)
}

func TestItineraryKey(t *testing.T) {
	a := request("AU", "", "QF", "VA")
	b := request("AU", "", "VA", "QF")
	assert.Equal(t, a.HashKey(), b.HashKey())
	assert.NotEqual(t, a.ItineraryKey(), b.ItineraryKey())
	assert.Equal(t, "QF,VA|QF,VA", a.ItineraryKey())
	assert.Equal(t, a.ItineraryKey(), request("AU", "", "QF", "VA", "QF").ItineraryKey())
}

func TestResolveBatch_Limits(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxBatchSize = 1
	uc := newResolver(t, opts)

	base := &model.ResolveRequest{Country: "AU", HostID: "1S"}
	it := model.Itinerary{Segments: []model.Segment{{MarketingCarrier: "QF"}}}

	_, err := uc.ResolveBatch(context.Background(), base, []model.Itinerary{it, it})
	assert.ErrorIs(t, err, domain.ErrBatchTooLarge)

	_, err = uc.ResolveBatch(context.Background(), base, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = uc.ResolveBatch(context.Background(), base, []model.Itinerary{{}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestResolveBatch_Cancelled(t *testing.T) {
	uc := newResolver(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	base := &model.ResolveRequest{Country: "AU", HostID: "1S"}
	_, err := uc.ResolveBatch(ctx, base, []model.Itinerary{{Segments: []model.Segment{{MarketingCarrier: "QF"}}}})
	assert.ErrorIs(t, err, context.Canceled)
}
