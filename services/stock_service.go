package services

import (
	"context"

	"storefront-service/models"
	"storefront-service/repository"
)

// StockService answers raw availability queries. No derived availability
// is computed here; callers interpret the rows.
type StockService struct {
	stockRepo repository.StockRepository
}

func NewStockService(stockRepo repository.StockRepository) *StockService {
	return &StockService{stockRepo: stockRepo}
}

// Query returns the stock rows matching every provided key.
func (s *StockService) Query(ctx context.Context, productID uint, size string, colorID *uint) ([]models.Stock, *ServiceError) {
	stocks, err := s.stockRepo.Query(ctx, productID, size, colorID)
	if err != nil {
		return nil, persistenceFailure("Failed to fetch stock information", err)
	}
	return stocks, nil
}
