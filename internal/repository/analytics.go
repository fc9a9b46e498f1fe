package repository

import (
	"context"
	"storefront/internal/model"

	"gorm.io/gorm"
)

type SalesTotals struct {
	TotalSales int64
	Count      int64
}

type CategorySales struct {
	Category   string
	TotalSales int64
	Units      int64
}

type AnalyticsRepository interface {
	SalesTotals(ctx context.Context, storeID *uint, statuses []model.OrderStatus) (*SalesTotals, error)
	SalesByCategory(ctx context.Context, storeID *uint, statuses []model.OrderStatus) ([]*CategorySales, error)
}

type analyticsRepoImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepoImpl{
		db: db,
	}
}

func (r *analyticsRepoImpl) SalesTotals(ctx context.Context, storeID *uint, statuses []model.OrderStatus) (*SalesTotals, error) {
	var totals SalesTotals

	query := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Select("COALESCE(SUM(total), 0) AS total_sales, COUNT(*) AS count").
		Where("status IN ?", statusStrings(statuses))
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	if err := query.Scan(&totals).Error; err != nil {
		return nil, err
	}

	return &totals, nil
}

func (r *analyticsRepoImpl) SalesByCategory(ctx context.Context, storeID *uint, statuses []model.OrderStatus) ([]*CategorySales, error) {
	var rows []*CategorySales

	query := r.db.WithContext(ctx).
		Table("order_items").
		Select(`products.category AS category,
			COALESCE(SUM(order_items.price * order_items.quantity), 0) AS total_sales,
			COALESCE(SUM(order_items.quantity), 0) AS units`).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("orders.status IN ?", statusStrings(statuses)).
		Group("products.category").
		Order("products.category")
	if storeID != nil {
		query = query.Where("orders.store_id = ?", *storeID)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func statusStrings(statuses []model.OrderStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
