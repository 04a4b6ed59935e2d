package cart

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"storefront-service/models"
)

// Item is a denormalized snapshot of a product plus a mutable quantity.
// At most one item exists per product id.
type Item struct {
	ProductID uint                  `json:"productId"`
	Name      string                `json:"name"`
	Price     float64               `json:"price"`
	Images    []models.ProductImage `json:"images"`
	Quantity  int                   `json:"quantity"`
}

// Persistence stores one serialized item array under one key.
type Persistence interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Store holds a session's pending selections. The whole snapshot is
// written back through the injected persistence after every mutation.
type Store struct {
	persistence Persistence
	key         string
	items       []Item
}

// NewStore loads the prior snapshot for key. A malformed or missing
// snapshot is discarded and the store starts empty; initialization
// never fails.
func NewStore(ctx context.Context, p Persistence, key string) *Store {
	s := &Store{persistence: p, key: key}

	data, err := p.Load(ctx, key)
	if err != nil || len(data) == 0 {
		return s
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		zap.L().Warn("Discarding unreadable cart snapshot", zap.String("key", key), zap.Error(err))
		_ = p.Delete(ctx, key)
		return s
	}
	s.items = items
	return s
}

// AddItem inserts the product with quantity 1, or increments the
// quantity of the existing item for the same product id.
func (s *Store) AddItem(ctx context.Context, product *models.Product) error {
	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity++
			return s.persist(ctx)
		}
	}
	s.items = append(s.items, Item{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Images:    product.Images,
		Quantity:  1,
	})
	return s.persist(ctx)
}

// RemoveItem drops the item for productID; no-op when absent.
func (s *Store) RemoveItem(ctx context.Context, productID uint) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return s.persist(ctx)
}

// UpdateQuantity sets the quantity as given. Callers enforce the floor
// of 1; the store itself does not clamp.
func (s *Store) UpdateQuantity(ctx context.Context, productID uint, quantity int) error {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			break
		}
	}
	return s.persist(ctx)
}

// Clear empties the store and removes the persisted snapshot.
func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.persistence.Delete(ctx, s.key)
}

// Items returns the current snapshot.
func (s *Store) Items() []Item {
	return s.items
}

// TotalPrice is the sum over items of price times quantity.
func (s *Store) TotalPrice() float64 {
	var total float64
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// TotalItems is the sum of quantities.
func (s *Store) TotalItems() int {
	var total int
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return err
	}
	return s.persistence.Save(ctx, s.key, data)
}
