package cache

import (
	"context"
	"testing"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (ProductCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewRedisProductCache(rdb, time.Minute), mr
}

func TestRedisProductCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	storeID := uint(1)
	shoes := repository.ProductFilter{Category: model.CategoryShoes, StoreID: &storeID}

	_, hit, err := c.GetProducts(ctx, shoes)
	require.NoError(t, err)
	assert.False(t, hit)

	products := []*model.Product{{ID: 7, StoreID: &storeID, Name: "Sneakers", Price: 2500, Category: model.CategoryShoes, Stock: 10}}
	require.NoError(t, c.SetProducts(ctx, shoes, products))

	got, hit, err := c.GetProducts(ctx, shoes)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, "Sneakers", got[0].Name)
	assert.Equal(t, 10, got[0].Stock)

	// different filter, different entry
	_, hit, err = c.GetProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisProductCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	filter := repository.ProductFilter{}
	require.NoError(t, c.SetProducts(ctx, filter, []*model.Product{{ID: 1, Name: "Lipstick"}}))
	require.NoError(t, c.Invalidate(ctx))

	_, hit, err := c.GetProducts(ctx, filter)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisProductCache_TTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	filter := repository.ProductFilter{Category: model.CategoryCosmetics}
	require.NoError(t, c.SetProducts(ctx, filter, []*model.Product{{ID: 1}}))

	mr.FastForward(2 * time.Minute)

	_, hit, err := c.GetProducts(ctx, filter)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisProductCache_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)
	mr.Close()

	_, _, err := c.GetProducts(ctx, repository.ProductFilter{})
	assert.Error(t, err)
	assert.Error(t, c.Invalidate(ctx))
}
