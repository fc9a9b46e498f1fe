package repository

import (
	"context"
	"storefront/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCatalog fills an empty database with two demo stores and one product each.
// It reports false and leaves the data alone when any store already exists.
func SeedCatalog(ctx context.Context, db *gorm.DB) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Store{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		shoes := &model.Store{Name: "Main Shoes", Slug: "shoes", Color: "#2563eb", IsActive: true}
		cosmetics := &model.Store{Name: "Glow Cosmetics", Slug: "cosmetics", Color: "#db2777", IsActive: true}
		stores := []*model.Store{shoes, cosmetics}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&stores).Error; err != nil {
			return err
		}

		products := []*model.Product{
			{
				StoreID:     &shoes.ID,
				Name:        "Classic Leather Sneakers",
				Description: "Everyday leather sneakers with a cushioned sole",
				Price:       8500,
				Category:    model.CategoryShoes,
				Stock:       50,
			},
			{
				StoreID:     &cosmetics.ID,
				Name:        "Matte Lipstick - Ruby Red",
				Description: "Long-wear matte lipstick",
				Price:       2500,
				Category:    model.CategoryCosmetics,
				Stock:       100,
			},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		logs := make([]*model.InventoryLog, len(products))
		for i, p := range products {
			logs[i] = &model.InventoryLog{ProductID: p.ID, Change: p.Stock, Reason: model.ReasonInitialStock}
		}
		if err := tx.Create(&logs).Error; err != nil {
			return err
		}

		seeded = true
		return nil
	})

	return seeded, err
}
