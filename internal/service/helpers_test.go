package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/client"
	"storefront/internal/config"
	"storefront/internal/dto"
	"storefront/internal/event"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	customer = auth.Identity{UserID: "user-1", Email: "jane@example.com", Role: auth.RoleCustomer}
	other    = auth.Identity{UserID: "user-2", Email: "joe@example.com", Role: auth.RoleCustomer}
	admin    = auth.Identity{UserID: "admin-1", Email: "ops@example.com", Role: auth.RoleAdmin}
)

type recordingPublisher struct {
	mu      sync.Mutex
	events  []event.OrderEvent
	ctxErrs []error
}

func (p *recordingPublisher) PublishOrderEvent(ctx context.Context, evt event.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []event.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.OrderEvent(nil), p.events...)
}

type testEnv struct {
	db        *gorm.DB
	stores    StoreService
	products  ProductService
	orders    OrderService
	analytics AnalyticsService
	publisher *recordingPublisher
	store     *model.Store
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithCache(t, cache.NewNopProductCache())
}

func newTestEnvWithCache(t *testing.T, productCache cache.ProductCache) *testEnv {
	t.Helper()

	db, err := client.InitDBClient(config.Database{
		Driver: client.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	log := zap.NewNop()
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	publisher := &recordingPublisher{}

	env := &testEnv{
		db:        db,
		stores:    NewStoreService(db, storeRepo, log),
		products:  NewProductService(db, storeRepo, productRepo, inventoryRepo, productCache, log),
		orders:    NewOrderService(db, storeRepo, productRepo, orderRepo, inventoryRepo, productCache, publisher, log),
		analytics: NewAnalyticsService(repository.NewAnalyticsRepository(db), "KES"),
		publisher: publisher,
	}

	env.store, err = env.stores.CreateStore(context.Background(), &dto.CreateStoreRequest{Name: "Main Shoes", Slug: "shoes"})
	require.NoError(t, err)

	return env
}

func (e *testEnv) addProduct(t *testing.T, name string, price int64, stock int) *model.Product {
	t.Helper()

	product, err := e.products.CreateProduct(context.Background(), &dto.CreateProductRequest{
		StoreID:  &e.store.ID,
		Name:     name,
		Price:    &price,
		Category: model.CategoryShoes,
		Stock:    &stock,
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) stock(t *testing.T, productID uint) int {
	t.Helper()

	var product model.Product
	require.NoError(t, e.db.Unscoped().First(&product, productID).Error)
	return product.Stock
}

func (e *testEnv) count(t *testing.T, m any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, e.db.Model(m).Count(&n).Error)
	return n
}

func (e *testEnv) ledger(t *testing.T, productID uint) []*model.InventoryLog {
	t.Helper()

	var logs []*model.InventoryLog
	require.NoError(t, e.db.Where("product_id = ?", productID).Order("id").Find(&logs).Error)
	return logs
}

func orderRequest(storeID uint, items ...*dto.OrderItem) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		StoreID:       storeID,
		Items:         items,
		PaymentMethod: model.PaymentMethodCard,
	}
}

func line(productID uint, quantity int) *dto.OrderItem {
	return &dto.OrderItem{ProductID: productID, Quantity: quantity}
}

func ptr[T any](v T) *T { return &v }
