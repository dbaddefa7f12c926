package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Total string `json:"total"`
}

func newTestCache(t *testing.T) *ReportCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewReportCache(client, time.Minute)
}

func TestReportCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	var miss payload
	require.False(t, c.Get(ctx, "reports:tb:2024", &miss))

	c.Set(ctx, "reports:tb:2024", payload{Total: "500.00"})

	var hit payload
	require.True(t, c.Get(ctx, "reports:tb:2024", &hit))
	assert.Equal(t, "500.00", hit.Total)
}

func TestReportCacheInvalidatePrefix(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.Set(ctx, "reports:tb:2024-01", payload{Total: "1"})
	c.Set(ctx, "reports:tb:2024-02", payload{Total: "2"})
	c.Set(ctx, "reports:bs:2024-01", payload{Total: "3"})

	c.Invalidate(ctx, "reports:tb:")

	var got payload
	assert.False(t, c.Get(ctx, "reports:tb:2024-01", &got))
	assert.False(t, c.Get(ctx, "reports:tb:2024-02", &got))
	assert.True(t, c.Get(ctx, "reports:bs:2024-01", &got))
}

func TestReportCacheNilClient(t *testing.T) {
	var c *ReportCache
	ctx := context.Background()

	var got payload
	assert.False(t, c.Get(ctx, "k", &got))
	c.Set(ctx, "k", payload{})
	c.Invalidate(ctx, "k")
}
