package usecase

import (
	"context"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

// TraceSink receives the steps of a resolution
type TraceSink interface {
	Record(ctx context.Context, event model.TraceEvent)
}

type noopTraceSink struct{}

func (noopTraceSink) Record(context.Context, model.TraceEvent) {}

// NoopTraceSink discards every event
func NoopTraceSink() TraceSink {
	return noopTraceSink{}
}

type logTraceSink struct {
	logger logger.LoggerInterface
}

// NewLogTraceSink writes events to the debug log
func NewLogTraceSink(log logger.LoggerInterface) TraceSink {
	return &logTraceSink{logger: log}
}

func (s *logTraceSink) Record(ctx context.Context, e model.TraceEvent) {
	s.logger.DebugContext(ctx, "Resolution trace",
		"kind", e.Kind,
		"plan", e.Plan,
		"carrier", e.Carrier,
		"counterpart", e.Counterpart,
		"carriers", e.Carriers,
		"passed", e.Passed,
		"status", e.Status.String(),
		"detail", e.Detail,
	)
}

// TraceCollector keeps the events of one resolution in memory
// It is not safe for concurrent use
type TraceCollector struct {
	events []model.TraceEvent
}

func (c *TraceCollector) Record(_ context.Context, e model.TraceEvent) {
	c.events = append(c.events, e)
}

// Events returns the recorded events in order
func (c *TraceCollector) Events() []model.TraceEvent {
	return c.events
}

type publisherTraceSink struct {
	publisher repository.EventPublisher
	hashKey   string
}

// NewPublisherTraceSink publishes events of the itinerary identified by hashKey
func NewPublisherTraceSink(publisher repository.EventPublisher, hashKey string) TraceSink {
	return &publisherTraceSink{publisher: publisher, hashKey: hashKey}
}

func (s *publisherTraceSink) Record(ctx context.Context, e model.TraceEvent) {
	s.publisher.PublishTrace(ctx, s.hashKey, e)
}

type fanOutTraceSink []TraceSink

func (f fanOutTraceSink) Record(ctx context.Context, e model.TraceEvent) {
	for _, s := range f {
		s.Record(ctx, e)
	}
}

// FanOut sends every event to each non-nil sink
func FanOut(sinks ...TraceSink) TraceSink {
	var out fanOutTraceSink
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	switch len(out) {
	case 0:
		return NoopTraceSink()
	case 1:
		return out[0]
	}
	return out
}
