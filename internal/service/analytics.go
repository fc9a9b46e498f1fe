package service

import (
	"context"
	"fmt"
	"storefront/internal/apperror"
	"storefront/internal/auth"
	"storefront/internal/dto"
	"storefront/internal/model"
	"storefront/internal/repository"
)

type AnalyticsService interface {
	SalesSummary(ctx context.Context, identity auth.Identity, storeID *uint) (*dto.SalesSummary, error)
}

type analyticsServiceImpl struct {
	analyticsRepo repository.AnalyticsRepository
	currency      string
}

func NewAnalyticsService(
	analyticsRepo repository.AnalyticsRepository,
	currency string,
) AnalyticsService {
	return &analyticsServiceImpl{
		analyticsRepo: analyticsRepo,
		currency:      currency,
	}
}

// SalesSummary counts orders that brought in money: paid, shipped or delivered.
func (s *analyticsServiceImpl) SalesSummary(ctx context.Context, identity auth.Identity, storeID *uint) (*dto.SalesSummary, error) {
	if !identity.IsAdmin() {
		return nil, apperror.Forbidden("Admin access required")
	}

	totals, err := s.analyticsRepo.SalesTotals(ctx, storeID, model.RevenueStatuses)
	if err != nil {
		return nil, fmt.Errorf("sum sales: %w", err)
	}

	rows, err := s.analyticsRepo.SalesByCategory(ctx, storeID, model.RevenueStatuses)
	if err != nil {
		return nil, fmt.Errorf("sum sales by category: %w", err)
	}

	byCategory := make([]*dto.CategorySales, len(rows))
	for i, row := range rows {
		byCategory[i] = &dto.CategorySales{
			Category:   row.Category,
			TotalSales: row.TotalSales,
			Units:      row.Units,
		}
	}

	return &dto.SalesSummary{
		TotalSales:        totals.TotalSales,
		Count:             totals.Count,
		ByCategory:        byCategory,
		Currency:          s.currency,
		TotalSalesDisplay: dto.FormatAmount(totals.TotalSales),
	}, nil
}
