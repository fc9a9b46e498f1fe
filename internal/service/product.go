package service

import (
	"context"
	"errors"
	"fmt"
	"storefront/internal/apperror"
	"storefront/internal/cache"
	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error)
	UpdateProduct(ctx context.Context, productID uint, req *dto.UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
	ListInventoryLogs(ctx context.Context, productID uint) ([]*model.InventoryLog, error)
}

type productServiceImpl struct {
	db            *gorm.DB
	storeRepo     repository.StoreRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	productCache  cache.ProductCache
	log           *zap.Logger
}

func NewProductService(
	db *gorm.DB,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	productCache cache.ProductCache,
	log *zap.Logger,
) ProductService {
	return &productServiceImpl{
		db:            db,
		storeRepo:     storeRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		productCache:  productCache,
		log:           log,
	}
}

// ListProducts serves from the catalog cache when it can. A broken cache only costs a database read.
func (s *productServiceImpl) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, error) {
	products, hit, err := s.productCache.GetProducts(ctx, filter)
	if err != nil {
		s.log.Warn("read product cache", zap.Error(err))
	}
	if hit {
		return products, nil
	}

	products, err = s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if err := s.productCache.SetProducts(ctx, filter, products); err != nil {
		s.log.Warn("write product cache", zap.Error(err))
	}

	return products, nil
}

func (s *productServiceImpl) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, s.db, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apperror.ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}

	return product, nil
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, req *dto.CreateProductRequest) (*model.Product, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkStore(ctx, req.StoreID); err != nil {
		return nil, err
	}

	product := &model.Product{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.Create(ctx, tx, product); err != nil {
			return fmt.Errorf("store product in db: %w", err)
		}
		if product.Stock == 0 {
			return nil
		}
		return s.inventoryRepo.Append(ctx, tx, []*model.InventoryLog{{
			ProductID: product.ID,
			Change:    product.Stock,
			Reason:    model.ReasonInitialStock,
		}})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.Uint("product_id", product.ID), zap.Int("stock", product.Stock))
	s.invalidateCatalog(ctx)

	return product, nil
}

// UpdateProduct applies a partial update. A stock change is written to the inventory log in the
// same transaction.
func (s *productServiceImpl) UpdateProduct(ctx context.Context, productID uint, req *dto.UpdateProductRequest) (*model.Product, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkStore(ctx, req.StoreID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindByIDForUpdate(ctx, tx, productID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperror.ProductNotFoundError{ProductID: productID}
		}
		if err != nil {
			return fmt.Errorf("get product %d: %w", productID, err)
		}

		updates := map[string]interface{}{}
		if req.StoreID != nil {
			updates["store_id"] = *req.StoreID
		}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = *req.Price
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}
		if req.Stock != nil && *req.Stock != product.Stock {
			updates["stock"] = *req.Stock
			err := s.inventoryRepo.Append(ctx, tx, []*model.InventoryLog{{
				ProductID: productID,
				Change:    *req.Stock - product.Stock,
				Reason:    model.ReasonManualAdjustment,
			}})
			if err != nil {
				return fmt.Errorf("append inventory log: %w", err)
			}
		}

		if len(updates) == 0 {
			return nil
		}

		err = s.productRepo.Update(ctx, tx, productID, updates)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("update product %d: %w", productID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return s.GetProduct(ctx, productID)
}

// DeleteProduct hides the product from the catalog. Order history keeps pointing at it.
func (s *productServiceImpl) DeleteProduct(ctx context.Context, productID uint) error {
	err := s.productRepo.Delete(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &apperror.ProductNotFoundError{ProductID: productID}
	}
	if err != nil {
		return fmt.Errorf("delete product %d: %w", productID, err)
	}

	s.log.Info("product deleted", zap.Uint("product_id", productID))
	s.invalidateCatalog(ctx)

	return nil
}

func (s *productServiceImpl) ListInventoryLogs(ctx context.Context, productID uint) ([]*model.InventoryLog, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	logs, err := s.inventoryRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory logs: %w", err)
	}

	return logs, nil
}

func (s *productServiceImpl) checkStore(ctx context.Context, storeID *uint) error {
	if storeID == nil {
		return nil
	}

	_, err := s.storeRepo.FindByID(ctx, s.db, *storeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("Store not found")
	}
	if err != nil {
		return fmt.Errorf("get store %d: %w", *storeID, err)
	}

	return nil
}

func (s *productServiceImpl) invalidateCatalog(ctx context.Context) {
	if err := s.productCache.Invalidate(ctx); err != nil {
		s.log.Warn("invalidate product cache", zap.Error(err))
	}
}
