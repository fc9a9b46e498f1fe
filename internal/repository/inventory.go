package repository

import (
	"context"
	"storefront/internal/model"

	"gorm.io/gorm"
)

// InventoryRepository only appends to and reads the stock ledger.
type InventoryRepository interface {
	Append(ctx context.Context, tx *gorm.DB, logs []*model.InventoryLog) error
	ListByProduct(ctx context.Context, productID uint) ([]*model.InventoryLog, error)
}

type inventoryRepoImpl struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepoImpl{
		db: db,
	}
}

func (r *inventoryRepoImpl) Append(ctx context.Context, tx *gorm.DB, logs []*model.InventoryLog) error {
	if len(logs) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&logs).Error
}

func (r *inventoryRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.InventoryLog, error) {
	var logs []*model.InventoryLog

	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}
