package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"storefront-service/models"
)

var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	ListHome(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, product *models.Product, images []models.ProductImage) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// List retrieves the full filtered set; there is no pagination on the
// catalog surface.
func (r *GormProductRepository) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Preload("Images")

	if filter.Category != "" {
		query = query.Where("category = ?", strings.ToLower(filter.Category))
	}
	if filter.Collaborateur != "" {
		query = query.Where("collaborateur = ?", filter.Collaborateur)
	}
	if filter.Product != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Product)+"%")
	}

	switch filter.Sort {
	case "newest":
		query = query.Order("created_at DESC")
	case "price-asc":
		query = query.Order("price ASC")
	case "price-desc":
		query = query.Order("price DESC")
	default: // featured
		query = query.Order("priority DESC").Order("created_at DESC")
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListHome retrieves products flagged for the home selection, featured
// order. Products without usable images are filtered out by the service.
func (r *GormProductRepository) ListHome(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		Where("show_in_home = ?", true).
		Order("priority DESC").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Update saves the product fields and replaces the image set wholesale
// in one transaction, then returns the reloaded product.
func (r *GormProductRepository) Update(ctx context.Context, product *models.Product, images []models.ProductImage) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{ID: product.ID}).Updates(map[string]interface{}{
			"name":              product.Name,
			"description":       product.Description,
			"price":             product.Price,
			"sale_price":        product.SalePrice,
			"category":          product.Category,
			"collaborateur":     product.Collaborateur,
			"show_in_home":      product.ShowInHome,
			"show_in_promo":     product.ShowInPromo,
			"show_in_top_sales": product.ShowInTopSales,
			"priority":          product.Priority,
			"view_count":        product.ViewCount,
			"order_count":       product.OrderCount,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].ProductID = product.ID
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, product.ID)
}

// Delete removes the product with its images. Historical order items
// keep their product id; the reference becomes unresolvable.
func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}
