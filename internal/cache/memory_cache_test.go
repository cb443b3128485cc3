package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache() (*MemoryCache, *clock) {
	clk := &clock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	c := NewMemoryCache()
	c.now = clk.now
	return c, clk
}

func TestMemoryCacheJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	type entry struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	require.NoError(t, c.SetJSON(ctx, "k", entry{Email: "a@b.c", Code: "1234"}, time.Minute))

	var got entry
	hit, err := c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "1234", got.Code)

	hit, err = c.GetJSON(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, clk := newTestCache()

	require.NoError(t, c.SetJSON(ctx, "k", true, time.Minute))
	clk.t = clk.t.Add(61 * time.Second)

	var v bool
	hit, err := c.GetJSON(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryCacheIncrKeepsFirstTTL(t *testing.T) {
	ctx := context.Background()
	c, clk := newTestCache()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Incr(ctx, "tries", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, n)
		clk.t = clk.t.Add(10 * time.Second)
	}

	clk.t = clk.t.Add(40 * time.Second)
	n, err := c.Incr(ctx, "tries", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "counter restarts once the first window expires")
}

func TestMemoryCacheDel(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache()

	require.NoError(t, c.SetJSON(ctx, "a", 1, 0))
	require.NoError(t, c.SetJSON(ctx, "b", 2, 0))
	require.NoError(t, c.Del(ctx, "a", "b", "c"))

	var v int
	hit, _ := c.GetJSON(ctx, "a", &v)
	assert.False(t, hit)
}
