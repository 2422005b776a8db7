// Package kafka wraps franz-go with a small produce/consume surface.
package kafka

import (
	"context"
	"errors"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Message is a record to be produced
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// RecordHandler processes a single consumed record
type RecordHandler func(ctx context.Context, record *kgo.Record)

// KafkaClient defines the interface for Kafka operations
type KafkaClient interface {
	Produce(ctx context.Context, msg Message) error
	// ProduceAsync buffers msg; onError is called if delivery fails
	ProduceAsync(ctx context.Context, msg Message, onError func(error))
	// Consume blocks, feeding records from topics to handler until ctx is done
	Consume(ctx context.Context, handler RecordHandler, topics ...string) error
	Ping(ctx context.Context) error
	Close() error
	GetClient() *kgo.Client
}

// Client represents a Kafka client wrapper that handles both producing and consuming
type Client struct {
	client *kgo.Client
}

// New creates a new Kafka client with the provided options
func New(opts ...kgo.Opt) (KafkaClient, error) {
	kafkaClient, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, err
	}
	return &Client{client: kafkaClient}, nil
}

func toRecord(msg Message) *kgo.Record {
	record := &kgo.Record{
		Topic: msg.Topic,
		Key:   msg.Key,
		Value: msg.Value,
	}
	for k, v := range msg.Headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return record
}

// Header returns the value of the named record header, or "" if absent
func Header(record *kgo.Record, key string) string {
	for _, h := range record.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Produce sends a message and waits for the broker acknowledgement
func (k *Client) Produce(ctx context.Context, msg Message) error {
	return k.client.ProduceSync(ctx, toRecord(msg)).FirstErr()
}

// ProduceAsync sends a message without waiting for the acknowledgement
func (k *Client) ProduceAsync(ctx context.Context, msg Message, onError func(error)) {
	k.client.Produce(ctx, toRecord(msg), func(_ *kgo.Record, err error) {
		if err != nil && onError != nil {
			onError(err)
		}
	})
}

// Consume polls the given topics and hands each record to handler.
// It returns nil when ctx is cancelled or the client is closed, and the
// first fetch error otherwise.
func (k *Client) Consume(ctx context.Context, handler RecordHandler, topics ...string) error {
	k.client.AddConsumeTopics(topics...)

	for {
		fetches := k.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}

		var fetchErr error
		fetches.EachError(func(topic string, partition int32, err error) {
			if fetchErr == nil && !errors.Is(err, context.Canceled) {
				fetchErr = err
			}
		})
		if fetchErr != nil {
			return fetchErr
		}

		fetches.EachRecord(func(record *kgo.Record) {
			handler(ctx, record)
		})
	}
}

// Ping checks that at least one broker is reachable
func (k *Client) Ping(ctx context.Context) error {
	return k.client.Ping(ctx)
}

// Close flushes nothing and closes the client
func (k *Client) Close() error {
	if k.client != nil {
		k.client.Close()
	}
	return nil
}

// GetClient returns the underlying Kafka client for advanced operations
func (k *Client) GetClient() *kgo.Client {
	return k.client
}
