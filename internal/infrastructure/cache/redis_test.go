package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodlens/backend/internal/domain"
)

func newTestRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr(), "foodlens:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	product := domain.Product{
		Code:        "5449000000996",
		ProductName: "Coca-Cola",
		Nutriments:  domain.NutrientTable{Sugars: domain.Value(10.6)},
	}
	require.NoError(t, c.Set(ctx, "product:5449000000996", product, time.Hour))

	assert.True(t, mr.Exists("foodlens:product:5449000000996"))

	var got domain.Product
	require.NoError(t, c.Get(ctx, "product:5449000000996", &got))
	assert.Equal(t, product, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := newTestRedisCache(t)

	var got domain.Product
	err := c.Get(context.Background(), "product:missing", &got)
	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	c, mr := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	mr.FastForward(2 * time.Minute)

	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_DeleteAndExists(t *testing.T) {
	c, _ := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	exists, err := c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "k"))
	exists, err = c.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_Unavailable(t *testing.T) {
	c, mr := newTestRedisCache(t)
	mr.Close()

	var got string
	err := c.Get(context.Background(), "k", &got)
	assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
}

func TestNewRedisCache_Errors(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		_, err := NewRedisCache(context.Background(), "not a url", "")
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := NewRedisCache(context.Background(), "redis://"+addr, "")
		assert.ErrorIs(t, err, domain.ErrCacheUnavailable)
	})
}
