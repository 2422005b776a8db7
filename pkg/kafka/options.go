package kafka

import (
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/pkg/sasl"
	"github.com/twmb/franz-go/pkg/sasl/plain"
)

// WithBrokers sets the seed brokers
func WithBrokers(brokers ...string) kgo.Opt {
	return kgo.SeedBrokers(brokers...)
}

// WithConsumerGroup joins the client to a consumer group
func WithConsumerGroup(group string) kgo.Opt {
	return kgo.ConsumerGroup(group)
}

// WithClientID sets the client ID reported to brokers
func WithClientID(clientID string) kgo.Opt {
	return kgo.ClientID(clientID)
}

// WithSASL sets SASL authentication
func WithSASL(mechanism sasl.Mechanism) kgo.Opt {
	return kgo.SASL(mechanism)
}

// WithPlainAuth is WithSASL using SASL/PLAIN credentials
func WithPlainAuth(user, pass string) kgo.Opt {
	return WithSASL(plain.Auth{User: user, Pass: pass}.AsMechanism())
}

// WithAllowAutoTopicCreation enables automatic topic creation
func WithAllowAutoTopicCreation() kgo.Opt {
	return kgo.AllowAutoTopicCreation()
}

// WithDialTimeout sets the dial timeout
func WithDialTimeout(timeout time.Duration) kgo.Opt {
	return kgo.DialTimeout(timeout)
}

// WithRecordDeliveryTimeout bounds how long a produced record may wait for delivery
func WithRecordDeliveryTimeout(timeout time.Duration) kgo.Opt {
	return kgo.RecordDeliveryTimeout(timeout)
}

// WithRequestRetries sets the number of request retries
func WithRequestRetries(n int) kgo.Opt {
	return kgo.RequestRetries(n)
}

// WithConsumeFromEnd starts new groups at the newest offset
func WithConsumeFromEnd() kgo.Opt {
	return kgo.ConsumeResetOffset(kgo.NewOffset().AtEnd())
}
