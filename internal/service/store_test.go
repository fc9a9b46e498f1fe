package service

import (
	"context"
	"testing"

	"storefront/internal/apperror"
	"storefront/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	assert.Equal(t, "#000000", env.store.Color)
	assert.True(t, env.store.IsActive)

	_, err := env.stores.CreateStore(ctx, &dto.CreateStoreRequest{Name: "Other Shoes", Slug: "shoes"})
	assert.Equal(t, apperror.KindBusinessRule, apperror.KindOf(err))
	assert.Equal(t, "Store slug already exists", apperror.Message(err))

	_, err = env.stores.CreateStore(ctx, &dto.CreateStoreRequest{Name: "Bad", Slug: "Bad Slug"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	hidden, err := env.stores.CreateStore(ctx, &dto.CreateStoreRequest{
		Name:     "Glow Cosmetics",
		Slug:     "cosmetics",
		Color:    "#db2777",
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "#db2777", hidden.Color)
	assert.False(t, hidden.IsActive)
}

func TestListAndGetStores(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.stores.CreateStore(ctx, &dto.CreateStoreRequest{Name: "Glow Cosmetics", Slug: "cosmetics", IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := env.stores.ListStores(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "shoes", active[0].Slug)

	all, err := env.stores.ListStores(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	store, err := env.stores.GetStoreBySlug(ctx, "shoes")
	require.NoError(t, err)
	assert.Equal(t, env.store.ID, store.ID)

	for _, slug := range []string{"cosmetics", "missing"} {
		_, err = env.stores.GetStoreBySlug(ctx, slug)
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err), slug)
		assert.Equal(t, "Store not found or inactive", apperror.Message(err), slug)
	}
}

func TestUpdateStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.stores.CreateStore(ctx, &dto.CreateStoreRequest{Name: "Glow Cosmetics", Slug: "cosmetics"})
	require.NoError(t, err)

	updated, err := env.stores.UpdateStore(ctx, env.store.ID, &dto.UpdateStoreRequest{
		Name:  ptr("Main Shoes & Boots"),
		Color: ptr("#2563eb"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Main Shoes & Boots", updated.Name)
	assert.Equal(t, "#2563eb", updated.Color)
	assert.Equal(t, "shoes", updated.Slug)

	_, err = env.stores.UpdateStore(ctx, env.store.ID, &dto.UpdateStoreRequest{Slug: ptr("cosmetics")})
	assert.Equal(t, apperror.KindBusinessRule, apperror.KindOf(err))

	same, err := env.stores.UpdateStore(ctx, env.store.ID, &dto.UpdateStoreRequest{Slug: ptr("shoes")})
	require.NoError(t, err)
	assert.Equal(t, "shoes", same.Slug)

	_, err = env.stores.UpdateStore(ctx, 404, &dto.UpdateStoreRequest{Name: ptr("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
