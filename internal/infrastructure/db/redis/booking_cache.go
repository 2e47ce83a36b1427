package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/car-booking/internal/core/domain"
)

const defaultCacheTTL = 5 * time.Minute

// staleMarker replaces the entry after every store write. Readers treat it as
// a miss and Fill never overwrites it, so a snapshot read from the store
// before a write cannot be cached after that write. It outlives any store
// call, which is bounded by the repository timeout.
const (
	staleMarker    = "-"
	staleMarkerTTL = 30 * time.Second
)

// BookingCache stores booking snapshots as JSON.
// Key format: booking:<id>
type BookingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookingCache creates a BookingCache wrapping the given Redis client.
func NewBookingCache(client *redis.Client, ttl time.Duration) *BookingCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &BookingCache{client: client, ttl: ttl}
}

// Get returns the cached booking, or (nil, false, nil) on a miss or a stale
// marker.
func (c *BookingCache) Get(ctx context.Context, id int64) (*domain.Booking, bool, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("booking cache get: %w", err)
	}
	if string(raw) == staleMarker {
		return nil, false, nil
	}

	var b domain.Booking
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, false, fmt.Errorf("booking cache decode: %w", err)
	}
	return &b, true, nil
}

// Fill caches a snapshot read from the store, only if the key is absent.
// It loses against both a newer snapshot and a stale marker.
func (c *BookingCache) Fill(ctx context.Context, b *domain.Booking) error {
	raw, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("booking cache encode: %w", err)
	}
	return c.client.SetNX(ctx, c.key(b.ID), raw, c.ttl).Err()
}

// Invalidate replaces the entry for id with a stale marker.
func (c *BookingCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Set(ctx, c.key(id), staleMarker, staleMarkerTTL).Err()
}

func (c *BookingCache) key(id int64) string {
	return fmt.Sprintf("booking:%d", id)
}
