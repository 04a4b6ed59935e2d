package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-service/models"
)

var (
	ErrNoStockInfo = errors.New("no stock information")
	ErrOutOfStock  = errors.New("out of stock")
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	CreateWithStockGuard(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uint) ([]models.Order, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists the order and its nested items in one transaction.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateWithStockGuard re-checks each item's stock under a row lock
// inside the creation transaction, so two concurrent checkouts of the
// last unit serialize instead of both passing the availability check.
func (r *GormOrderRepository) CreateWithStockGuard(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var stocks []models.Stock
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("product_id = ?", item.ProductID).
				Find(&stocks).Error
			if err != nil {
				return err
			}
			if len(stocks) == 0 {
				return ErrNoStockInfo
			}
			if !stocks[0].InStock {
				return ErrOutOfStock
			}
		}
		return tx.Create(order).Error
	})
}

// FindByUserID retrieves a user's orders, newest first, items included.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
