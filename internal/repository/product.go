package repository

import (
	"context"
	"storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductFilter struct {
	Category string
	StoreID  *uint
}

type ProductRepository interface {
	Create(ctx context.Context, tx *gorm.DB, product *model.Product) error
	FindByID(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*model.Product, error)
	Update(ctx context.Context, tx *gorm.DB, productID uint, updates map[string]interface{}) error
	Delete(ctx context.Context, productID uint) error
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) (bool, error)
	IncrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, tx *gorm.DB, product *model.Product) error {
	return tx.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

// FindByIDForUpdate row-locks the product for the rest of tx. Dialects without row locks (sqlite) ignore the clause.
func (r *productRepoImpl) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, filter ProductFilter) ([]*model.Product, error) {
	var products []*model.Product

	query := r.db.WithContext(ctx).Order("id")
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Update(ctx context.Context, tx *gorm.DB, productID uint, updates map[string]interface{}) error {
	result := tx.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", productID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, productID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DecrementStock takes quantity units only if that many are on hand. It reports false, without error,
// when the guard rejected the update.
func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) (bool, error) {
	result := tx.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// IncrementStock also restocks soft-deleted products so cancelled orders balance the ledger.
func (r *productRepoImpl) IncrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error {
	result := tx.WithContext(ctx).
		Unscoped().
		Model(&model.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
