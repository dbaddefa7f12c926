package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache stores rendered report payloads in Redis keyed by filter tuple.
// A nil client disables caching transparently.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReportCache builds a ReportCache with the given TTL.
func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{client: client, ttl: ttl}
}

// Get loads a cached report into target. Returns false on miss or decode failure.
func (c *ReportCache) Get(ctx context.Context, key string, target any) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		return false
	}
	return true
}

// Set stores a report payload. Failures are ignored: the cache is advisory.
func (c *ReportCache) Set(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate drops all keys under the given prefix. Used after postings.
func (c *ReportCache) Invalidate(ctx context.Context, prefix string) {
	if c == nil || c.client == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		_ = c.client.Del(ctx, iter.Val()).Err()
	}
}
