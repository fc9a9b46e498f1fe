package repository

import (
	"context"
	"storefront/internal/model"

	"gorm.io/gorm"
)

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	Update(ctx context.Context, id uint, updates map[string]interface{}) error
	FindByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Store, error)
	FindBySlug(ctx context.Context, slug string) (*model.Store, error)
	SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, includeInactive bool) ([]*model.Store, error)
}

type storeRepoImpl struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepoImpl{
		db: db,
	}
}

func (r *storeRepoImpl) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepoImpl) Update(ctx context.Context, id uint, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *storeRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*model.Store, error) {
	var store model.Store
	err := tx.WithContext(ctx).
		Where("id = ?", id).
		First(&store).Error
	if err != nil {
		return nil, err
	}

	return &store, nil
}

func (r *storeRepoImpl) FindBySlug(ctx context.Context, slug string) (*model.Store, error) {
	var store model.Store
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&store).Error
	if err != nil {
		return nil, err
	}

	return &store, nil
}

func (r *storeRepoImpl) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Store{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error

	return count > 0, err
}

func (r *storeRepoImpl) List(ctx context.Context, includeInactive bool) ([]*model.Store, error) {
	var stores []*model.Store

	query := r.db.WithContext(ctx).Order("id")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Find(&stores).Error; err != nil {
		return nil, err
	}

	return stores, nil
}
