package kafka

import (
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Config holds Kafka configuration
type Config struct {
	Brokers                []string      `mapstructure:"brokers"`
	ConsumerGroup          string        `mapstructure:"consumer_group"`
	ClientID               string        `mapstructure:"client_id"`
	AllowAutoTopicCreation bool          `mapstructure:"allow_auto_topic_creation"`
	RequestRetries         int           `mapstructure:"request_retries"`
	DialTimeout            time.Duration `mapstructure:"dial_timeout"`
	DeliveryTimeout        time.Duration `mapstructure:"delivery_timeout"`
	SASLUser               string        `mapstructure:"sasl_user"`
	SASLPassword           string        `mapstructure:"sasl_password"`
	// ConsumeFromEnd skips the backlog for a fresh consumer group
	ConsumeFromEnd bool `mapstructure:"consume_from_end"`
}

// Options translates the config into franz-go options
func (c Config) Options() []kgo.Opt {
	opts := []kgo.Opt{WithBrokers(c.Brokers...)}

	if c.ConsumerGroup != "" {
		opts = append(opts, WithConsumerGroup(c.ConsumerGroup))
	}
	if c.ClientID != "" {
		opts = append(opts, WithClientID(c.ClientID))
	}
	if c.AllowAutoTopicCreation {
		opts = append(opts, WithAllowAutoTopicCreation())
	}
	if c.RequestRetries > 0 {
		opts = append(opts, WithRequestRetries(c.RequestRetries))
	}
	if c.DialTimeout > 0 {
		opts = append(opts, WithDialTimeout(c.DialTimeout))
	}
	if c.DeliveryTimeout > 0 {
		opts = append(opts, WithRecordDeliveryTimeout(c.DeliveryTimeout))
	}
	if c.SASLUser != "" {
		opts = append(opts, WithPlainAuth(c.SASLUser, c.SASLPassword))
	}
	if c.ConsumeFromEnd {
		opts = append(opts, WithConsumeFromEnd())
	}
	return opts
}

// NewWithConfig creates a new Kafka client from a config struct
func NewWithConfig(config Config) (KafkaClient, error) {
	return New(config.Options()...)
}
