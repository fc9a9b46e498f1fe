package repository

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementStock_Guard(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewProductRepository(db)

	product := &model.Product{Name: "Sneakers", Price: 2500, Category: model.CategoryShoes, Stock: 2}
	require.NoError(t, repo.Create(ctx, db, product))

	ok, err := repo.DecrementStock(ctx, db, product.ID, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.DecrementStock(ctx, db, product.ID, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DecrementStock(ctx, db, product.ID, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.FindByID(ctx, db, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stock)

	require.NoError(t, repo.IncrementStock(ctx, db, product.ID, 5))
	got, err = repo.FindByID(ctx, db, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
}
