package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return map[string]int{"count": 42}, nil
	}

	key, err := c.BuildKey(ctx, "dashboard", "overview")
	require.NoError(t, err)

	var first map[string]int
	require.NoError(t, c.FetchJSON(ctx, key, &first, loader))
	assert.Equal(t, 42, first["count"])
	assert.Equal(t, 1, calls)

	var second map[string]int
	require.NoError(t, c.FetchJSON(ctx, key, &second, loader))
	assert.Equal(t, 42, second["count"])
	assert.Equal(t, 1, calls, "second fetch should come from cache")
}

func TestBumpOrphansOldKeys(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	before, err := c.BuildKey(ctx, "dashboard", "overview")
	require.NoError(t, err)

	require.NoError(t, c.Bump(ctx))

	after, err := c.BuildKey(ctx, "dashboard", "overview")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestNilCacheDegradesToLoader(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	key, err := c.BuildKey(ctx, "dashboard", "overview")
	require.NoError(t, err)

	var out []string
	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, []string{"a", "b"}, out)

	require.NoError(t, c.FetchJSON(ctx, key, &out, loader))
	assert.Equal(t, 2, calls, "nil cache always invokes the loader")

	assert.NoError(t, c.Bump(ctx))
}
