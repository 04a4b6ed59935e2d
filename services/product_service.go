package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/repository"
)

// ProductService answers catalog queries and applies admin edits.
type ProductService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List returns the filtered catalog with images attached.
func (s *ProductService) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, *ServiceError) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, persistenceFailure("Failed to fetch products", err)
	}
	return products, nil
}

// ListHome returns the home selection, dropping products without any
// usable image (empty URLs do not count).
func (s *ProductService) ListHome(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.productRepo.ListHome(ctx)
	if err != nil {
		return nil, persistenceFailure("Failed to fetch home products", err)
	}

	filtered := make([]models.Product, 0, len(products))
	for _, product := range products {
		if hasUsableImage(product.Images) {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, persistenceFailure("Failed to fetch product", err)
	}
	return product, nil
}

// Update applies the edited fields and replaces the image set wholesale.
// Category is lower-cased on write; the image set is normalized so that
// exactly one image carries the main flag.
func (s *ProductService) Update(ctx context.Context, id uint, req *models.UpdateProductRequest) (*models.Product, *ServiceError) {
	product := &models.Product{
		ID:             id,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		SalePrice:      req.SalePrice,
		Category:       strings.ToLower(req.Category),
		Collaborateur:  req.Collaborateur,
		ShowInHome:     req.ShowInHome,
		ShowInPromo:    req.ShowInPromo,
		ShowInTopSales: req.ShowInTopSales,
		Priority:       req.Priority,
		ViewCount:      req.ViewCount,
		OrderCount:     req.OrderCount,
	}

	updated, err := s.productRepo.Update(ctx, product, normalizeImages(req.Images))
	if err != nil {
		return nil, persistenceFailure("Failed to update product", err)
	}

	zap.L().Info("Product updated", zap.Uint("product_id", id), zap.Int("images", len(updated.Images)))
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id uint) *ServiceError {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return persistenceFailure("Failed to delete product", err)
	}
	zap.L().Info("Product deleted", zap.Uint("product_id", id))
	return nil
}

// normalizeImages fills default positions (front, back, side by index)
// and keeps the main flag on exactly one image: the first flagged one,
// or the first image when none is flagged.
func normalizeImages(inputs []models.ProductImageInput) []models.ProductImage {
	positions := []string{"front", "back", "side"}

	images := make([]models.ProductImage, 0, len(inputs))
	mainSeen := false
	for i, input := range inputs {
		position := input.Position
		if position == "" {
			if i < len(positions) {
				position = positions[i]
			} else {
				position = "side"
			}
		}

		isMain := input.IsMain && !mainSeen
		if isMain {
			mainSeen = true
		}

		images = append(images, models.ProductImage{
			URL:      input.URL,
			Position: position,
			IsMain:   isMain,
		})
	}

	if !mainSeen && len(images) > 0 {
		images[0].IsMain = true
	}
	return images
}

func hasUsableImage(images []models.ProductImage) bool {
	for _, img := range images {
		if len(img.URL) > 0 {
			return true
		}
	}
	return false
}
