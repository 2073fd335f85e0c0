package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/importwise/landedcost/internal/core/domain"
)

const defaultRateTTL = time.Hour

// RateCache caches benchmark freight rates per lane, so the external
// benchmark service is hit at most once per lane per TTL.
// Key format: rates:<origin>:<destination>:<method>
type RateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRateCache creates a RateCache wrapping the given Redis client. A TTL of
// zero or less falls back to one hour.
func NewRateCache(client *redis.Client, ttl time.Duration) *RateCache {
	if ttl <= 0 {
		ttl = defaultRateTTL
	}
	return &RateCache{client: client, ttl: ttl}
}

// Get returns the cached overrides for the lane and whether the lookup hit.
func (c *RateCache) Get(ctx context.Context, origin, destination string, method domain.ShippingMethod) (*domain.FreightOverrides, bool, error) {
	raw, err := c.client.Get(ctx, c.key(origin, destination, method)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("rate cache get: %w", err)
	}

	var overrides domain.FreightOverrides
	if err := json.Unmarshal(raw, &overrides); err != nil {
		return nil, false, fmt.Errorf("rate cache decode: %w", err)
	}
	return &overrides, true, nil
}

// Set stores the overrides for the lane (expires after the cache TTL).
func (c *RateCache) Set(ctx context.Context, origin, destination string, method domain.ShippingMethod, overrides *domain.FreightOverrides) error {
	raw, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("rate cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(origin, destination, method), raw, c.ttl).Err()
}

func (c *RateCache) key(origin, destination string, method domain.ShippingMethod) string {
	return fmt.Sprintf("rates:%s:%s:%s", origin, destination, method)
}
