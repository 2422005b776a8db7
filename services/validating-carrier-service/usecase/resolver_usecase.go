// Package usecase contains the validating carrier resolution logic
package usecase

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

// ResolutionRecorder observes finished resolutions
type ResolutionRecorder interface {
	ObserveResolution(result, plan string, took time.Duration)
}

// ResolverUseCase decides which carriers may validate a ticket
type ResolverUseCase interface {
	// Resolve runs one resolution; domain failures are part of the outcome
	Resolve(ctx context.Context, req *model.ResolveRequest) (*model.Outcome, error)
	// ResolveBatch resolves several itineraries sharing the point of sale of req
	ResolveBatch(ctx context.Context, req *model.ResolveRequest, itineraries []model.Itinerary) (*model.BatchOutcome, error)
}

// resolverUseCase implements the ResolverUseCase interface
type resolverUseCase struct {
	// gateway serves settlement plans, participations and agreements
	gateway repository.ReferenceData
	// publisher receives outcome and trace events, may be nil
	publisher repository.EventPublisher
	// recorder receives resolution metrics, may be nil
	recorder ResolutionRecorder
	opts     Options
	logger   logger.LoggerInterface
	now      func() time.Time
}

// ResolverOption configures optional collaborators of the resolver
type ResolverOption func(*resolverUseCase)

// WithPublisher publishes outcomes and, when enabled, trace events
func WithPublisher(p repository.EventPublisher) ResolverOption {
	return func(uc *resolverUseCase) {
		uc.publisher = p
	}
}

// WithRecorder records resolution metrics
func WithRecorder(r ResolutionRecorder) ResolverOption {
	return func(uc *resolverUseCase) {
		uc.recorder = r
	}
}

// WithClock replaces the clock that supplies the default ticket date
func WithClock(now func() time.Time) ResolverOption {
	return func(uc *resolverUseCase) {
		uc.now = now
	}
}

// NewResolverUseCase creates a new instance of resolverUseCase
func NewResolverUseCase(gateway repository.ReferenceData, opts Options, appLogger logger.LoggerInterface, options ...ResolverOption) ResolverUseCase {
	uc := &resolverUseCase{
		gateway: gateway,
		opts:    opts,
		logger:  appLogger,
		now:     time.Now,
	}
	for _, o := range options {
		o(uc)
	}
	return uc
}

// Resolve resolves the validating carriers of one itinerary
func (uc *resolverUseCase) Resolve(ctx context.Context, req *model.ResolveRequest) (*model.Outcome, error) {
	normalized, err := uc.normalize(req)
	if err != nil {
		uc.logger.WarnContext(ctx, "Rejected resolution request", "error", err)
		return nil, err
	}
	return uc.resolve(ctx, normalized)
}

// ResolveBatch resolves each distinct itinerary once; repeats share the outcome
func (uc *resolverUseCase) ResolveBatch(ctx context.Context, req *model.ResolveRequest, itineraries []model.Itinerary) (*model.BatchOutcome, error) {
	uc.logger.InfoContext(ctx, "Resolving batch", "country", req.Country, "itineraries", len(itineraries))
	if len(itineraries) == 0 {
		return nil, domain.ErrInvalidRequest
	}
	if len(itineraries) > uc.opts.MaxBatchSize {
		uc.logger.WarnContext(ctx, "Batch too large", "itineraries", len(itineraries), "max", uc.opts.MaxBatchSize)
		return nil, domain.ErrBatchTooLarge
	}

	memo := make(map[string]*model.Outcome)
	batch := &model.BatchOutcome{Outcomes: make([]*model.Outcome, len(itineraries))}
	for i, it := range itineraries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		item := *req
		item.Segments = it.Segments
		item.ParticipatingCarriers = it.ParticipatingCarriers

		normalized, err := uc.normalize(&item)
		if err != nil {
			uc.logger.WarnContext(ctx, "Rejected batch itinerary", "index", i, "error", err)
			return nil, err
		}
		key := normalized.ItineraryKey()
		if outcome, ok := memo[key]; ok {
			batch.Outcomes[i] = outcome
			continue
		}
		outcome, err := uc.resolve(ctx, normalized)
		if err != nil {
			return nil, err
		}
		memo[key] = outcome
		batch.Outcomes[i] = outcome
	}
	batch.Distinct = len(memo)
	uc.logger.InfoContext(ctx, "Batch resolved", "itineraries", len(itineraries), "distinct", batch.Distinct)
	return batch, nil
}

func (uc *resolverUseCase) resolve(ctx context.Context, req *model.ResolveRequest) (*model.Outcome, error) {
	start := time.Now()
	hashKey := req.HashKey()
	uc.logger.InfoContext(ctx, "Resolving validating carrier",
		"country", req.Country, "host", req.HostID, "plan", req.SettlementPlan,
		"carrier", req.ValidatingCarrier, "itinerary", hashKey)

	var collector *TraceCollector
	sinks := []TraceSink{}
	if uc.opts.TraceToLog {
		sinks = append(sinks, NewLogTraceSink(uc.logger))
	}
	if uc.opts.TraceToKafka && uc.publisher != nil {
		sinks = append(sinks, NewPublisherTraceSink(uc.publisher, hashKey))
	}
	if req.Diagnostic {
		collector = &TraceCollector{}
		sinks = append(sinks, collector)
	}

	outcome, err := newResolution(req, uc.gateway, uc.opts, FanOut(sinks...)).run(ctx)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Failed to resolve validating carrier", "country", req.Country, "itinerary", hashKey, "error", err)
		return nil, fmt.Errorf("failed to resolve validating carrier: %w: %w", domain.ErrReferenceDataUnavailable, err)
	}
	outcome.HashKey = hashKey
	if collector != nil {
		outcome.Trace = collector.Events()
	}

	if uc.recorder != nil {
		uc.recorder.ObserveResolution(outcome.Result.String(), outcome.SettlementPlan, time.Since(start))
	}
	if uc.opts.PublishOutcomes && uc.publisher != nil {
		uc.publisher.PublishResolved(ctx, model.ResolvedEvent{
			EventID:    ulid.Make().String(),
			ResolvedAt: uc.now().UTC(),
			Request:    *req,
			Outcome:    *outcome,
		})
	}

	uc.logger.InfoContext(ctx, "Validating carrier resolved",
		"itinerary", hashKey, "result", outcome.Result.String(), "status", outcome.Status.String(),
		"plan", outcome.SettlementPlan, "carriers", outcome.ValidatingCxrs)
	return outcome, nil
}

// normalize returns an upper-cased copy of req with the ticket date set to a UTC day
func (uc *resolverUseCase) normalize(req *model.ResolveRequest) (*model.ResolveRequest, error) {
	out := *req
	out.Country = code(req.Country)
	out.HostID = code(req.HostID)
	out.SettlementPlan = code(req.SettlementPlan)
	out.ValidatingCarrier = code(req.ValidatingCarrier)
	if out.Country == "" || out.HostID == "" {
		return nil, domain.ErrPointOfSaleRequired
	}
	if len(req.Segments) == 0 {
		return nil, domain.ErrInvalidRequest
	}

	out.Segments = make([]model.Segment, len(req.Segments))
	for i, seg := range req.Segments {
		out.Segments[i] = model.Segment{
			MarketingCarrier: strings.ToUpper(seg.MarketingCarrier),
			OperatingCarrier: code(seg.OperatingCarrier),
		}
	}
	out.ParticipatingCarriers = codes(req.ParticipatingCarriers)
	if nsp := req.NoSettlementPlan; nsp != nil {
		out.NoSettlementPlan = &model.NSPOptions{
			Mode:      nsp.Mode,
			Carriers:  codes(nsp.Carriers),
			Countries: codes(nsp.Countries),
		}
	}

	date := req.TicketDate
	if date.IsZero() {
		date = uc.now()
	}
	date = date.UTC()
	out.TicketDate = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return &out, nil
}

func code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func codes(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := code(s); c != "" && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
