package repository

import (
	"context"
	"testing"

	"storefront/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderUpdateStatus_CompareAndSwap(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewOrderRepository(db)

	order := &model.Order{
		UserID:        "user-1",
		StoreID:       1,
		Status:        model.OrderStatusPaid,
		Total:         100,
		PaymentMethod: model.PaymentMethodCard,
		PaymentStatus: model.PaymentStatusPaid,
	}
	require.NoError(t, repo.Create(ctx, db, order))

	err := repo.UpdateStatus(ctx, db, order.ID, model.OrderStatusPaid, model.OrderStatusShipped, model.PaymentStatusPaid)
	require.NoError(t, err)

	err = repo.UpdateStatus(ctx, db, order.ID, model.OrderStatusPaid, model.OrderStatusCancelled, model.PaymentStatusRefunded)
	assert.ErrorIs(t, err, ErrStatusConflict)

	got, err := repo.FindByID(ctx, db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, got.Status)
}
