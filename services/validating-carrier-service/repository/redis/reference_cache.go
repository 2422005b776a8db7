// Package redis provides a Redis read-through cache in front of the reference data gateway
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/logger"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/metrics"
	redisclient "github.com/vnalla55/Mark-Up-Any-Fare-sub085/pkg/redis"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/model"
	"github.com/vnalla55/Mark-Up-Any-Fare-sub085/services/validating-carrier-service/domain/repository"
)

const keyPrefix = "vcxr:ref"

// Lookup kinds, used in cache keys and metrics labels
const (
	kindPlans        = "plans"
	kindParticipant  = "participation"
	kindParticipants = "participants"
	kindAgreements   = "agreements"
	kindGsa          = "gsa"
	kindNeutral      = "neutral"
	kindNation       = "nation"
)

// CacheMetrics receives cache lookup outcomes
type CacheMetrics interface {
	CacheLookup(kind, outcome string)
	Invalidated(country string)
}

type noopMetrics struct{}

func (noopMetrics) CacheLookup(string, string) {}
func (noopMetrics) Invalidated(string)         {}

// ReferenceDataCache caches reference lookups under a per-country generation
// Bumping the generation of a country makes every cached entry of it unreachable
type ReferenceDataCache struct {
	next    repository.ReferenceData
	client  redisclient.RedisClient
	ttl     time.Duration
	group   singleflight.Group
	logger  logger.LoggerInterface
	metrics CacheMetrics
}

var (
	_ repository.ReferenceData    = (*ReferenceDataCache)(nil)
	_ repository.CacheInvalidator = (*ReferenceDataCache)(nil)
)

// NewReferenceDataCache wraps next with a Redis cache; m may be nil
func NewReferenceDataCache(next repository.ReferenceData, client redisclient.RedisClient, ttl time.Duration, logger logger.LoggerInterface, m CacheMetrics) *ReferenceDataCache {
	if m == nil {
		m = noopMetrics{}
	}
	return &ReferenceDataCache{
		next:    next,
		client:  client,
		ttl:     ttl,
		logger:  logger,
		metrics: m,
	}
}

// GenerationKey is the counter key of a country
func GenerationKey(country string) string {
	return keyPrefix + ":gen:" + country
}

func entryKey(gen, kind string, args ...string) string {
	return fmt.Sprintf("%s:%s:%s:%s", keyPrefix, gen, kind, strings.Join(args, ":"))
}

func day(date time.Time) string {
	return date.Format("20060102")
}

func (c *ReferenceDataCache) generation(ctx context.Context, country string) (string, error) {
	gen, err := c.client.Get(ctx, GenerationKey(country))
	if redisclient.IsNil(err) {
		return "0", nil
	}
	if err != nil {
		return "", err
	}
	return gen, nil
}

// lookup serves kind from the cache, loading and storing it on a miss
// Redis failures fall back to the delegate
func lookup[T any](ctx context.Context, c *ReferenceDataCache, country, kind string, args []string, load func() (T, error)) (T, error) {
	gen, err := c.generation(ctx, country)
	if err != nil {
		c.logger.WarnContext(ctx, "Reference cache unavailable, reading through", "kind", kind, "error", err)
		c.metrics.CacheLookup(kind, metrics.CacheError)
		return load()
	}
	key := entryKey(gen, kind, args...)

	raw, err := c.client.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
			c.metrics.CacheLookup(kind, metrics.CacheHit)
			return cached, nil
		}
		c.logger.WarnContext(ctx, "Discarding undecodable cache entry", "key", key)
	case !redisclient.IsNil(err):
		c.logger.WarnContext(ctx, "Failed to read reference cache", "key", key, "error", err)
	}
	c.metrics.CacheLookup(kind, metrics.CacheMiss)

	v, err, _ := c.group.Do(key, func() (any, error) {
		value, err := load()
		if err != nil {
			return value, err
		}
		data, err := json.Marshal(value)
		if err != nil {
			return value, fmt.Errorf("failed to encode %s for cache: %w", kind, err)
		}
		if err := c.client.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "Failed to write reference cache", "key", key, "error", err)
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (c *ReferenceDataCache) GetSettlementPlans(ctx context.Context, country string, date time.Time) ([]model.SettlementPlan, error) {
	return lookup(ctx, c, country, kindPlans, []string{country, day(date)}, func() ([]model.SettlementPlan, error) {
		return c.next.GetSettlementPlans(ctx, country, date)
	})
}

func (c *ReferenceDataCache) GetCarrierParticipation(ctx context.Context, country, hostID, planCode, carrier string, date time.Time) ([]model.CarrierParticipation, error) {
	return lookup(ctx, c, country, kindParticipant, []string{country, hostID, planCode, carrier, day(date)}, func() ([]model.CarrierParticipation, error) {
		return c.next.GetCarrierParticipation(ctx, country, hostID, planCode, carrier, date)
	})
}

func (c *ReferenceDataCache) GetPlanParticipants(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.CarrierParticipation, error) {
	return lookup(ctx, c, country, kindParticipants, []string{country, hostID, planCode, day(date)}, func() ([]model.CarrierParticipation, error) {
		return c.next.GetPlanParticipants(ctx, country, hostID, planCode, date)
	})
}

func (c *ReferenceDataCache) GetInterlineAgreements(ctx context.Context, country, hostID, validatingCarrier string, date time.Time) ([]model.InterlineAgreement, error) {
	return lookup(ctx, c, country, kindAgreements, []string{country, hostID, validatingCarrier, day(date)}, func() ([]model.InterlineAgreement, error) {
		return c.next.GetInterlineAgreements(ctx, country, hostID, validatingCarrier, date)
	})
}

func (c *ReferenceDataCache) GetGeneralSalesAgents(ctx context.Context, hostID, country, planCode, carrier string, date time.Time) ([]model.GeneralSalesAgent, error) {
	return lookup(ctx, c, country, kindGsa, []string{country, hostID, planCode, carrier, day(date)}, func() ([]model.GeneralSalesAgent, error) {
		return c.next.GetGeneralSalesAgents(ctx, hostID, country, planCode, carrier, date)
	})
}

func (c *ReferenceDataCache) GetNeutralValidatingCarriers(ctx context.Context, country, hostID, planCode string, date time.Time) ([]model.NeutralValidatingCarrier, error) {
	return lookup(ctx, c, country, kindNeutral, []string{country, hostID, planCode, day(date)}, func() ([]model.NeutralValidatingCarrier, error) {
		return c.next.GetNeutralValidatingCarriers(ctx, country, hostID, planCode, date)
	})
}

func (c *ReferenceDataCache) NationExists(ctx context.Context, country string, date time.Time) (bool, error) {
	return lookup(ctx, c, country, kindNation, []string{country, day(date)}, func() (bool, error) {
		return c.next.NationExists(ctx, country, date)
	})
}

// Invalidate bumps the generation of country
func (c *ReferenceDataCache) Invalidate(ctx context.Context, country string) error {
	gen, err := c.client.Incr(ctx, GenerationKey(country))
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to invalidate reference cache", "country", country, "error", err)
		return fmt.Errorf("failed to invalidate reference cache: %w", err)
	}
	c.metrics.Invalidated(country)
	c.logger.InfoContext(ctx, "Reference cache invalidated", "country", country, "generation", gen)
	return nil
}
