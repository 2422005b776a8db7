package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/redis"
)

const revokedKeyPrefix = "jwt:revoked:"

// RedisStore implements RevocationStore on top of pkg/redis
type RedisStore struct {
	client redis.RedisClient
}

// NewRedisStore creates a revocation store backed by redisClient
func NewRedisStore(redisClient redis.RedisClient) *RedisStore {
	return &RedisStore{client: redisClient}
}

// Revoke marks tokenID as revoked for ttl
func (s *RedisStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl); err != nil {
		return fmt.Errorf("failed to store revoked token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked
func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.client.Exists(ctx, revokedKeyPrefix+tokenID)
}
