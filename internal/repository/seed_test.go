package repository

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	seeded, err := SeedCatalog(ctx, db)
	require.NoError(t, err)
	assert.True(t, seeded)

	stores, err := NewStoreRepository(db).List(ctx, false)
	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, "shoes", stores[0].Slug)
	assert.Equal(t, "#2563eb", stores[0].Color)
	assert.Equal(t, "cosmetics", stores[1].Slug)

	products, err := NewProductRepository(db).List(ctx, ProductFilter{StoreID: &stores[0].ID})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Classic Leather Sneakers", products[0].Name)
	assert.Equal(t, int64(8500), products[0].Price)
	assert.Equal(t, 50, products[0].Stock)

	logs, err := NewInventoryRepository(db).ListByProduct(ctx, products[0].ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 50, logs[0].Change)
	assert.Equal(t, model.ReasonInitialStock, logs[0].Reason)

	seeded, err = SeedCatalog(ctx, db)
	require.NoError(t, err)
	assert.False(t, seeded)

	stores, err = NewStoreRepository(db).List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, stores, 2)
}
