// Package kafka contains Kafka delivery implementations for the application
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/twmb/franz-go/pkg/kgo"

	kafkaclient "github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/kafka"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

// InvalidationConsumer drops cached reference data when a country's data changes
type InvalidationConsumer struct {
	Client      kafkaclient.KafkaClient
	Invalidator repository.CacheInvalidator
	Topic       string
	Logger      logger.LoggerInterface
}

// NewInvalidationConsumer creates a new instance of InvalidationConsumer
func NewInvalidationConsumer(client kafkaclient.KafkaClient, invalidator repository.CacheInvalidator, topic string, logger logger.LoggerInterface) *InvalidationConsumer {
	return &InvalidationConsumer{
		Client:      client,
		Invalidator: invalidator,
		Topic:       topic,
		Logger:      logger,
	}
}

// Run consumes change events until ctx is cancelled
func (c *InvalidationConsumer) Run(ctx context.Context) error {
	c.Logger.InfoContext(ctx, "Starting reference data invalidation consumer", "topic", c.Topic)
	if err := c.Client.Consume(ctx, c.HandleRecord, c.Topic); err != nil {
		return fmt.Errorf("failed to consume %s: %w", c.Topic, err)
	}
	c.Logger.InfoContext(ctx, "Reference data invalidation consumer stopped")
	return nil
}

// HandleRecord invalidates the country named by one change event
// Undecodable records are logged and skipped
func (c *InvalidationConsumer) HandleRecord(ctx context.Context, record *kgo.Record) {
	var event model.ReferenceDataChanged
	if err := json.Unmarshal(record.Value, &event); err != nil {
		c.Logger.WarnContext(ctx, "Skipping malformed reference data event",
			"topic", record.Topic, "offset", record.Offset, "error", err)
		return
	}

	country := strings.ToUpper(strings.TrimSpace(event.Country))
	if country == "" {
		country = strings.ToUpper(string(record.Key))
	}
	if country == "" {
		c.Logger.WarnContext(ctx, "Skipping reference data event without country", "offset", record.Offset)
		return
	}

	if err := c.Invalidator.Invalidate(ctx, country); err != nil {
		c.Logger.ErrorContext(ctx, "Failed to invalidate reference data cache",
			"country", country, "request_id", kafkaclient.Header(record, "request_id"), "error", err)
		return
	}
	c.Logger.InfoContext(ctx, "Reference data cache invalidated", "country", country)
}
