// Package kafka provides the Kafka implementation of the resolution event publisher
package kafka

import (
	"context"
	"encoding/json"

	kafkaclient "github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/kafka"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

// Header keys set on every published record
const (
	HeaderEventType = "event-type"
	HeaderCountry   = "country"
)

// FailureRecorder counts failed deliveries per topic
type FailureRecorder interface {
	PublishFailed(topic string)
}

// Topics names the topics events are published to
type Topics struct {
	Resolved string
	Trace    string
}

type eventPublisher struct {
	client   kafkaclient.KafkaClient
	topics   Topics
	logger   logger.LoggerInterface
	failures FailureRecorder
}

// NewEventPublisher creates a publisher producing to topics; failures may be nil
func NewEventPublisher(client kafkaclient.KafkaClient, topics Topics, logger logger.LoggerInterface, failures FailureRecorder) repository.EventPublisher {
	return &eventPublisher{
		client:   client,
		topics:   topics,
		logger:   logger,
		failures: failures,
	}
}

// PublishResolved publishes an outcome keyed by the itinerary hash key
func (p *eventPublisher) PublishResolved(ctx context.Context, event model.ResolvedEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to encode resolved event", "event_id", event.EventID, "error", err)
		return
	}
	p.produce(ctx, kafkaclient.Message{
		Topic: p.topics.Resolved,
		Key:   []byte(event.Outcome.HashKey),
		Value: value,
		Headers: map[string]string{
			HeaderEventType: "validating-carrier.resolved",
			HeaderCountry:   event.Request.Country,
		},
	})
}

// PublishTrace publishes one trace event keyed by the itinerary hash key
func (p *eventPublisher) PublishTrace(ctx context.Context, hashKey string, event model.TraceEvent) {
	if p.topics.Trace == "" {
		return
	}
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to encode trace event", "kind", event.Kind, "error", err)
		return
	}
	p.produce(ctx, kafkaclient.Message{
		Topic: p.topics.Trace,
		Key:   []byte(hashKey),
		Value: value,
		Headers: map[string]string{
			HeaderEventType: "validating-carrier.trace",
		},
	})
}

func (p *eventPublisher) produce(ctx context.Context, msg kafkaclient.Message) {
	topic := msg.Topic
	// delivery outlives the request that triggered it
	p.client.ProduceAsync(context.WithoutCancel(ctx), msg, func(err error) {
		p.logger.ErrorContext(ctx, "Failed to publish event", "topic", topic, "error", err)
		if p.failures != nil {
			p.failures.PublishFailed(topic)
		}
	})
}
