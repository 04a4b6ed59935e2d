package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/repository"
)

// ShippingFee is the flat delivery charge added to every cart checkout,
// in TND.
const ShippingFee = 7.0

// OrderService validates and persists orders.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, stockRepo repository.StockRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// Checkout validates the cart checkout request and persists the order
// with its items in one transaction. userID links the order to an
// authenticated session when present.
//
// The submitted total is cross-checked against the item sum plus the
// flat shipping fee; a mismatch is rejected instead of trusted.
func (s *OrderService) Checkout(ctx context.Context, userID *uint, req *models.CheckoutRequest) (*models.Order, *ServiceError) {
	if req.CustomerName == "" || req.PhoneNumber == "" || req.Address == "" || req.TotalAmount == 0 {
		return nil, invalidInput("Missing required customer fields")
	}
	if len(req.Items) == 0 {
		return nil, invalidInput("Missing or invalid items array")
	}

	for _, item := range req.Items {
		if item.ProductID == 0 || item.Quantity == 0 || item.Price == 0 {
			return nil, invalidInput("Invalid item data: missing required fields (productId, quantity, price) for product %d", item.ProductID)
		}

		if _, err := s.productRepo.FindByID(ctx, item.ProductID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, notFound("Product with ID %d not found", item.ProductID)
			}
			return nil, persistenceFailure("Failed to look up product", err)
		}

		stocks, err := s.stockRepo.Query(ctx, item.ProductID, "", nil)
		if err != nil {
			return nil, persistenceFailure("Failed to check stock", err)
		}
		if len(stocks) == 0 {
			return nil, invalidInput("Stock information not found for product %d", item.ProductID)
		}
		if !stocks[0].InStock {
			return nil, invalidInput("Product %d is out of stock", item.ProductID)
		}
	}

	expected := ShippingFee
	for _, item := range req.Items {
		expected += item.Price * float64(item.Quantity)
	}
	if math.Abs(req.TotalAmount-expected) > 0.009 {
		return nil, invalidInput("Total amount mismatch: expected %.2f, got %.2f", expected, req.TotalAmount)
	}

	order := &models.Order{
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		TotalAmount:  req.TotalAmount,
		Status:       models.OrderStatusPending,
		UserID:       userID,
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.orderRepo.CreateWithStockGuard(ctx, order); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoStockInfo):
			return nil, invalidInput("Stock information not found for product")
		case errors.Is(err, repository.ErrOutOfStock):
			return nil, invalidInput("Product is out of stock")
		default:
			return nil, persistenceFailure("Failed to create order", err)
		}
	}

	s.attachProducts(ctx, order, true)

	zap.L().Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.TotalAmount),
	)
	return order, nil
}

// DirectPurchase is the single-product express checkout. The total is
// computed server-side as price times quantity; no stock check happens
// on this path.
func (s *OrderService) DirectPurchase(ctx context.Context, req *models.DirectPurchaseRequest) (*models.Order, *ServiceError) {
	if req.FullName == "" || req.Phone == "" || req.Address == "" || req.ProductID == 0 || req.Quantity == 0 || req.Price == 0 {
		return nil, invalidInput("Missing required fields")
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Product not found")
		}
		return nil, persistenceFailure("Failed to look up product", err)
	}

	address := req.Address
	if req.Governorate != "" {
		address = fmt.Sprintf("%s, %s", req.Address, req.Governorate)
	}

	order := &models.Order{
		CustomerName: req.FullName,
		PhoneNumber:  req.Phone,
		Address:      address,
		TotalAmount:  req.Price * float64(req.Quantity),
		Status:       models.OrderStatusPending,
		Items: []models.OrderItem{
			{
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
				Price:     req.Price,
			},
		},
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, persistenceFailure("Failed to create order", err)
	}

	s.attachProducts(ctx, order, false)

	zap.L().Info("Direct order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("product_id", req.ProductID),
	)
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID uint) ([]models.Order, *ServiceError) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, persistenceFailure("Failed to fetch orders", err)
	}
	for i := range orders {
		s.attachProducts(ctx, &orders[i], true)
	}
	return orders, nil
}

// attachProducts resolves each item's product. With mainImageOnly the
// product carries a single image: the one flagged main, falling back to
// the first. Missing products stay nil (deleted after the order).
func (s *OrderService) attachProducts(ctx context.Context, order *models.Order, mainImageOnly bool) {
	for i := range order.Items {
		product, err := s.productRepo.FindByID(ctx, order.Items[i].ProductID)
		if err != nil {
			continue
		}
		if mainImageOnly && len(product.Images) > 0 {
			main := product.Images[0]
			for _, img := range product.Images {
				if img.IsMain {
					main = img
					break
				}
			}
			product.Images = []models.ProductImage{main}
		}
		order.Items[i].Product = product
	}
}
