package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront-service/models"
)

// StockRepository defines the interface for stock data access
type StockRepository interface {
	Query(ctx context.Context, productID uint, size string, colorID *uint) ([]models.Stock, error)
}

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) StockRepository {
	return &GormStockRepository{db: db}
}

// Query matches on every provided key; productID alone returns all rows
// for the product. Callers interpret the raw rows.
func (r *GormStockRepository) Query(ctx context.Context, productID uint, size string, colorID *uint) ([]models.Stock, error) {
	query := r.db.WithContext(ctx).Where("product_id = ?", productID)
	if size != "" {
		query = query.Where("size = ?", size)
	}
	if colorID != nil {
		query = query.Where("color_id = ?", *colorID)
	}

	var stocks []models.Stock
	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}
