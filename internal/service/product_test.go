package service

import (
	"context"
	"testing"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/cache"
	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	product := env.addProduct(t, "Sneakers", 2500, 10)
	assert.NotZero(t, product.ID)
	require.NotNil(t, product.StoreID)
	assert.Equal(t, env.store.ID, *product.StoreID)

	logs := env.ledger(t, product.ID)
	require.Len(t, logs, 1)
	assert.Equal(t, 10, logs[0].Change)
	assert.Equal(t, "Initial stock", logs[0].Reason)

	missing := uint(404)
	_, err := env.products.CreateProduct(ctx, &dto.CreateProductRequest{
		StoreID:  &missing,
		Name:     "Ghost",
		Price:    ptr(int64(100)),
		Category: model.CategoryShoes,
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = env.products.CreateProduct(ctx, &dto.CreateProductRequest{Name: "Free", Category: model.CategoryShoes})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "price is required", apperror.Message(err))

	global, err := env.products.CreateProduct(ctx, &dto.CreateProductRequest{
		Name:     "Gift Card",
		Price:    ptr(int64(0)),
		Category: "Gifts",
	})
	require.NoError(t, err)
	assert.Nil(t, global.StoreID)
	assert.Zero(t, global.Stock)
	assert.Empty(t, env.ledger(t, global.ID))
}

func TestListProducts_Filters(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.addProduct(t, "Sneakers", 2500, 10)

	_, err := env.products.CreateProduct(ctx, &dto.CreateProductRequest{
		Name:     "Lipstick",
		Price:    ptr(int64(2500)),
		Category: model.CategoryCosmetics,
	})
	require.NoError(t, err)

	all, err := env.products.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	shoes, err := env.products.ListProducts(ctx, repository.ProductFilter{Category: model.CategoryShoes})
	require.NoError(t, err)
	require.Len(t, shoes, 1)
	assert.Equal(t, "Sneakers", shoes[0].Name)

	inStore, err := env.products.ListProducts(ctx, repository.ProductFilter{StoreID: &env.store.ID})
	require.NoError(t, err)
	assert.Len(t, inStore, 1)
}

func TestUpdateProduct_StockAdjustmentIsLogged(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.addProduct(t, "Sneakers", 2500, 10)

	updated, err := env.products.UpdateProduct(ctx, a.ID, &dto.UpdateProductRequest{
		Name:  ptr("Classic Sneakers"),
		Stock: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "Classic Sneakers", updated.Name)
	assert.Equal(t, 4, updated.Stock)
	assert.Equal(t, int64(2500), updated.Price)

	logs, err := env.products.ListInventoryLogs(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, -6, logs[0].Change)
	assert.Equal(t, "Manual adjustment", logs[0].Reason)

	_, err = env.products.UpdateProduct(ctx, a.ID, &dto.UpdateProductRequest{Stock: ptr(4)})
	require.NoError(t, err)
	assert.Len(t, env.ledger(t, a.ID), 2)

	_, err = env.products.UpdateProduct(ctx, a.ID, &dto.UpdateProductRequest{Stock: ptr(-1)})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = env.products.UpdateProduct(ctx, 404, &dto.UpdateProductRequest{Name: ptr("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteProduct_KeepsOrderHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a := env.addProduct(t, "Sneakers", 2500, 10)

	order, err := env.orders.CreateOrder(ctx, customer, orderRequest(env.store.ID, line(a.ID, 1)))
	require.NoError(t, err)

	require.NoError(t, env.products.DeleteProduct(ctx, a.ID))

	_, err = env.products.GetProduct(ctx, a.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	list, err := env.products.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := env.orders.GetOrder(ctx, customer, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Sneakers", got.Items[0].Product.Name)

	err = env.products.DeleteProduct(ctx, a.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestListProducts_CacheInvalidatedByOrders(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	env := newTestEnvWithCache(t, cache.NewRedisProductCache(rdb, time.Minute))
	a := env.addProduct(t, "Sneakers", 2500, 10)

	first, err := env.products.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 10, first[0].Stock)

	_, err = env.orders.CreateOrder(ctx, customer, orderRequest(env.store.ID, line(a.ID, 3)))
	require.NoError(t, err)

	second, err := env.products.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 7, second[0].Stock)
}

func TestListProducts_CacheDownFallsBackToDatabase(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })

	env := newTestEnvWithCache(t, cache.NewRedisProductCache(rdb, time.Minute))
	a := env.addProduct(t, "Sneakers", 2500, 10)
	mr.Close()

	list, err := env.products.ListProducts(ctx, repository.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = env.orders.CreateOrder(ctx, customer, orderRequest(env.store.ID, line(a.ID, 1)))
	require.NoError(t, err)
	assert.Equal(t, 9, env.stock(t, a.ID))
}
