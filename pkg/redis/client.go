// Package redis wraps go-redis with the small command surface the services use.
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNil is returned by Get when the key does not exist
var ErrNil = redis.Nil

// RedisClient defines the interface for Redis operations
type RedisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	// Incr atomically increments key and returns the new value
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) error
	Ping(ctx context.Context) error
	Close() error
	GetClient() redis.UniversalClient
}

// Option is a function that configures a Client
type Option func(*Client)

// Client represents a Redis client wrapper
type Client struct {
	opts   *redis.UniversalOptions
	client redis.UniversalClient
}

// New creates a new Redis client with the provided options and pings it
func New(opts ...Option) (RedisClient, error) {
	client := &Client{
		opts: &redis.UniversalOptions{
			Addrs:        []string{"localhost:6379"},
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     10,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	client.client = redis.NewUniversalClient(client.opts)

	ctx, cancel := context.WithTimeout(context.Background(), client.opts.DialTimeout)
	defer cancel()

	if err := client.Ping(ctx); err != nil {
		_ = client.client.Close()
		return nil, err
	}

	return client, nil
}

// NewWithConfig creates a new Redis client from a config struct
func NewWithConfig(config Config) (RedisClient, error) {
	return New(config.Options()...)
}

// NewFromClient wraps an already constructed client without pinging it
func NewFromClient(c redis.UniversalClient) RedisClient {
	return &Client{opts: &redis.UniversalOptions{}, client: c}
}

// IsNil reports whether err signals a missing key
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// Get gets a value by key
func (r *Client) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

// Set sets a key-value pair with expiration
func (r *Client) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Del deletes keys
func (r *Client) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Exists checks if a key exists
func (r *Client) Exists(ctx context.Context, key string) (bool, error) {
	count, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Incr atomically increments key and returns the new value
func (r *Client) Incr(ctx context.Context, key string) (int64, error) {
	return r.client.Incr(ctx, key).Result()
}

// Expire sets expiration for a key
func (r *Client) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return r.client.Expire(ctx, key, expiration).Err()
}

// Ping checks the server connection
func (r *Client) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (r *Client) Close() error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Client) GetClient() redis.UniversalClient {
	return r.client
}
