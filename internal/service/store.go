package service

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/apperror"
	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultStoreColor = "#000000"

type StoreService interface {
	ListStores(ctx context.Context, includeInactive bool) ([]*model.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*model.Store, error)
	CreateStore(ctx context.Context, req *dto.CreateStoreRequest) (*model.Store, error)
	UpdateStore(ctx context.Context, storeID uint, req *dto.UpdateStoreRequest) (*model.Store, error)
}

type storeServiceImpl struct {
	db        *gorm.DB
	storeRepo repository.StoreRepository
	log       *zap.Logger
}

func NewStoreService(
	db *gorm.DB,
	storeRepo repository.StoreRepository,
	log *zap.Logger,
) StoreService {
	return &storeServiceImpl{
		db:        db,
		storeRepo: storeRepo,
		log:       log,
	}
}

func (s *storeServiceImpl) ListStores(ctx context.Context, includeInactive bool) ([]*model.Store, error) {
	stores, err := s.storeRepo.List(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	return stores, nil
}

func (s *storeServiceImpl) GetStoreBySlug(ctx context.Context, slug string) (*model.Store, error) {
	store, err := s.storeRepo.FindBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !store.IsActive) {
		return nil, apperror.NotFound("Store not found or inactive")
	}
	if err != nil {
		return nil, fmt.Errorf("get store %q: %w", slug, err)
	}

	return store, nil
}

func (s *storeServiceImpl) CreateStore(ctx context.Context, req *dto.CreateStoreRequest) (*model.Store, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	taken, err := s.storeRepo.SlugTaken(ctx, req.Slug, 0)
	if err != nil {
		return nil, fmt.Errorf("check store slug: %w", err)
	}
	if taken {
		return nil, apperror.BusinessRule("Store slug already exists")
	}

	store := &model.Store{
		Name:     req.Name,
		Slug:     req.Slug,
		Color:    req.Color,
		IsActive: true,
	}
	if store.Color == "" {
		store.Color = defaultStoreColor
	}
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	err = s.storeRepo.Create(ctx, store)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, apperror.BusinessRule("Store slug already exists")
	}
	if err != nil {
		return nil, fmt.Errorf("store store in db: %w", err)
	}

	s.log.Info("store created", zap.Uint("store_id", store.ID), zap.String("slug", store.Slug))
	return store, nil
}

func (s *storeServiceImpl) UpdateStore(ctx context.Context, storeID uint, req *dto.UpdateStoreRequest) (*model.Store, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.findStore(ctx, storeID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Slug != nil {
		taken, err := s.storeRepo.SlugTaken(ctx, *req.Slug, storeID)
		if err != nil {
			return nil, fmt.Errorf("check store slug: %w", err)
		}
		if taken {
			return nil, apperror.BusinessRule("Store slug already exists")
		}
		updates["slug"] = *req.Slug
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		err := s.storeRepo.Update(ctx, storeID, updates)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.BusinessRule("Store slug already exists")
		}
		// RowsAffected is 0 when nothing changed, which is fine here
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("update store %d: %w", storeID, err)
		}
	}

	return s.findStore(ctx, storeID)
}

func (s *storeServiceImpl) findStore(ctx context.Context, storeID uint) (*model.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, s.db, storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Store not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get store %d: %w", storeID, err)
	}

	return store, nil
}
