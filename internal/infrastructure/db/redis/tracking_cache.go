package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/K-HALID007/shipment-tracking-api/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// TrackingCache holds short-lived existence marks for tracking ids.
// Key format: track:<tracking_id>
type TrackingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTrackingCache wraps the given Redis client. Non-positive ttl falls back
// to the default.
func NewTrackingCache(client *redis.Client, ttl time.Duration) *TrackingCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &TrackingCache{client: client, ttl: ttl}
}

// Has reports whether a tracking id has been seen on the read path recently.
func (c *TrackingCache) Has(ctx context.Context, trackingID string) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(trackingID)).Result()
	if err != nil {
		return false, fmt.Errorf("cache check: %w", err)
	}
	return n > 0, nil
}

// Mark records that a tracking id is known to exist (expires after the TTL).
func (c *TrackingCache) Mark(ctx context.Context, trackingID string) error {
	return c.client.Set(ctx, c.key(trackingID), "1", c.ttl).Err()
}

// Invalidate drops a tracking id's mark, used after a shipment is deleted.
func (c *TrackingCache) Invalidate(ctx context.Context, trackingID string) error {
	return c.client.Del(ctx, c.key(trackingID)).Err()
}

func (c *TrackingCache) key(trackingID string) string {
	return "track:" + trackingID
}

// ReadPath fronts the store's existence check with the tracking cache. It is
// the probe tier the consistency verifier polls: a cache hit answers
// immediately, a miss falls through to the store and back-fills the mark.
type ReadPath struct {
	cache *TrackingCache
	store ports.ReadProbe
}

func NewReadPath(cache *TrackingCache, store ports.ReadProbe) *ReadPath {
	return &ReadPath{cache: cache, store: store}
}

// Exists implements ports.ReadProbe. Cache errors are ignored in favour of
// the store answer; the cache is an accelerator, not a source of truth.
func (r *ReadPath) Exists(ctx context.Context, trackingID string) (bool, error) {
	if hit, err := r.cache.Has(ctx, trackingID); err == nil && hit {
		return true, nil
	}

	visible, err := r.store.Exists(ctx, trackingID)
	if err != nil {
		return false, err
	}
	if visible {
		_ = r.cache.Mark(ctx, trackingID)
	}
	return visible, nil
}
