// Package cache provides a Redis-backed cache for the public flight list,
// the hottest read path of the service.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brunopesce23/EFI-IngSoft/internal/model"
)

const flightsKey = "cache:flights:upcoming"

// FlightCache stores the upcoming flight list under a single key with a
// TTL. A nil client disables caching: every method degrades to a no-op so
// the service keeps working without Redis.
type FlightCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFlightCache wraps an optional Redis client. client may be nil.
func NewFlightCache(client *redis.Client, ttl time.Duration) *FlightCache {
	return &FlightCache{client: client, ttl: ttl}
}

// GetUpcoming returns the cached flight list, or nil on miss or when the
// cache is disabled.
func (c *FlightCache) GetUpcoming(ctx context.Context) ([]model.Flight, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, flightsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var flights []model.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

// SetUpcoming stores the flight list with the configured TTL.
func (c *FlightCache) SetUpcoming(ctx context.Context, flights []model.Flight) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey, payload, c.ttl).Err()
}

// Invalidate drops the cached list. Called after any flight write so stale
// schedules never outlive the TTL window.
func (c *FlightCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, flightsKey).Err()
}
