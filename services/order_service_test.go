package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/models"
	"storefront-service/repository"
)

type mockProductRepo struct {
	products map[uint]*models.Product
}

func (m *mockProductRepo) List(_ context.Context, _ models.ProductFilter) ([]models.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) ListHome(_ context.Context) ([]models.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) FindByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	copied.Images = append([]models.ProductImage(nil), product.Images...)
	return &copied, nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product, _ []models.ProductImage) (*models.Product, error) {
	return product, nil
}

func (m *mockProductRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type mockStockRepo struct {
	stocks map[uint][]models.Stock
}

func (m *mockStockRepo) Query(_ context.Context, productID uint, _ string, _ *uint) ([]models.Stock, error) {
	return m.stocks[productID], nil
}

type mockOrderRepo struct {
	created     *models.Order
	guardCalls  int
	createCalls int
	guardErr    error
	createErr   error
}

func (m *mockOrderRepo) Create(_ context.Context, order *models.Order) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	order.ID = 1
	m.created = order
	return nil
}

func (m *mockOrderRepo) CreateWithStockGuard(_ context.Context, order *models.Order) error {
	m.guardCalls++
	if m.guardErr != nil {
		return m.guardErr
	}
	order.ID = 1
	m.created = order
	return nil
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, _ uint) ([]models.Order, error) {
	if m.created == nil {
		return nil, nil
	}
	return []models.Order{*m.created}, nil
}

func newOrderFixture() (*OrderService, *mockOrderRepo) {
	productRepo := &mockProductRepo{products: map[uint]*models.Product{
		1: {ID: 1, Name: "Airfryer", Price: 10, Images: []models.ProductImage{
			{ID: 10, ProductID: 1, URL: "https://cdn.example/side.jpg", Position: "side"},
			{ID: 11, ProductID: 1, URL: "https://cdn.example/front.jpg", Position: "front", IsMain: true},
		}},
		2: {ID: 2, Name: "Bouilloire", Price: 20},
		3: {ID: 3, Name: "Lisseur", Price: 30},
	}}
	stockRepo := &mockStockRepo{stocks: map[uint][]models.Stock{
		1: {{ID: 1, ProductID: 1, InStock: true}},
		2: {{ID: 2, ProductID: 2, InStock: false}},
		// product 3 has no stock rows at all
	}}
	orderRepo := &mockOrderRepo{}
	return NewOrderService(orderRepo, productRepo, stockRepo), orderRepo
}

func validCheckout() *models.CheckoutRequest {
	return &models.CheckoutRequest{
		CustomerName: "Amira Ben Salah",
		PhoneNumber:  "21612345",
		Address:      "Rue X, Tunis",
		TotalAmount:  27.0, // 2 x 10 + 7 shipping
		Items: []models.CheckoutItem{
			{ProductID: 1, Quantity: 2, Price: 10.0},
		},
	}
}

func TestCheckoutValidation(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.CheckoutRequest)
		wantStatus int
	}{
		{"missing customer name", func(r *models.CheckoutRequest) { r.CustomerName = "" }, http.StatusBadRequest},
		{"missing phone", func(r *models.CheckoutRequest) { r.PhoneNumber = "" }, http.StatusBadRequest},
		{"missing address", func(r *models.CheckoutRequest) { r.Address = "" }, http.StatusBadRequest},
		{"zero total", func(r *models.CheckoutRequest) { r.TotalAmount = 0 }, http.StatusBadRequest},
		{"empty items", func(r *models.CheckoutRequest) { r.Items = nil }, http.StatusBadRequest},
		{"item missing quantity", func(r *models.CheckoutRequest) { r.Items[0].Quantity = 0 }, http.StatusBadRequest},
		{"item missing price", func(r *models.CheckoutRequest) { r.Items[0].Price = 0 }, http.StatusBadRequest},
		{"unknown product", func(r *models.CheckoutRequest) { r.Items[0].ProductID = 99 }, http.StatusNotFound},
		{"total mismatch", func(r *models.CheckoutRequest) { r.TotalAmount = 99.0 }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orderRepo := newOrderFixture()
			req := validCheckout()
			tt.mutate(req)

			order, serviceErr := svc.Checkout(context.Background(), nil, req)
			require.NotNil(t, serviceErr)
			assert.Nil(t, order)
			assert.Equal(t, tt.wantStatus, serviceErr.StatusCode)
			assert.Zero(t, orderRepo.guardCalls, "no persistence write on validation failure")
			assert.Zero(t, orderRepo.createCalls)
		})
	}
}

func TestCheckoutNoStockInfo(t *testing.T) {
	svc, orderRepo := newOrderFixture()
	req := validCheckout()
	req.Items = []models.CheckoutItem{{ProductID: 3, Quantity: 1, Price: 30}}
	req.TotalAmount = 37.0

	_, serviceErr := svc.Checkout(context.Background(), nil, req)
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusBadRequest, serviceErr.StatusCode)
	assert.Contains(t, serviceErr.Message, "Stock information not found")
	assert.Zero(t, orderRepo.guardCalls)
}

func TestCheckoutOutOfStock(t *testing.T) {
	svc, orderRepo := newOrderFixture()
	req := validCheckout()
	req.Items = []models.CheckoutItem{{ProductID: 2, Quantity: 1, Price: 20}}
	req.TotalAmount = 27.0

	_, serviceErr := svc.Checkout(context.Background(), nil, req)
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusBadRequest, serviceErr.StatusCode)
	assert.Contains(t, serviceErr.Message, "out of stock")
	assert.Zero(t, orderRepo.guardCalls)
}

func TestCheckoutSuccess(t *testing.T) {
	svc, orderRepo := newOrderFixture()
	userID := uint(42)

	order, serviceErr := svc.Checkout(context.Background(), &userID, validCheckout())
	require.Nil(t, serviceErr)
	require.NotNil(t, order)

	assert.Equal(t, 1, orderRepo.guardCalls)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 27.0, order.TotalAmount)
	require.NotNil(t, order.UserID)
	assert.Equal(t, uint(42), *order.UserID)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 10.0, order.Items[0].Price)

	// The attached product carries only its main image.
	require.NotNil(t, order.Items[0].Product)
	require.Len(t, order.Items[0].Product.Images, 1)
	assert.True(t, order.Items[0].Product.Images[0].IsMain)
	assert.Equal(t, "front", order.Items[0].Product.Images[0].Position)
}

func TestCheckoutGuestOrderHasNoUser(t *testing.T) {
	svc, _ := newOrderFixture()

	order, serviceErr := svc.Checkout(context.Background(), nil, validCheckout())
	require.Nil(t, serviceErr)
	assert.Nil(t, order.UserID)
}

func TestCheckoutStockGuardLosesRace(t *testing.T) {
	svc, orderRepo := newOrderFixture()
	orderRepo.guardErr = repository.ErrOutOfStock

	_, serviceErr := svc.Checkout(context.Background(), nil, validCheckout())
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusBadRequest, serviceErr.StatusCode)
}

func TestDirectPurchaseValidation(t *testing.T) {
	svc, orderRepo := newOrderFixture()

	_, serviceErr := svc.DirectPurchase(context.Background(), &models.DirectPurchaseRequest{
		FullName: "Amira", Phone: "21612345", ProductID: 1, Quantity: 1, Price: 10,
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusBadRequest, serviceErr.StatusCode)
	assert.Zero(t, orderRepo.createCalls)
}

func TestDirectPurchaseProductNotFound(t *testing.T) {
	svc, _ := newOrderFixture()

	_, serviceErr := svc.DirectPurchase(context.Background(), &models.DirectPurchaseRequest{
		FullName: "Amira", Phone: "21612345", Address: "Rue X",
		ProductID: 99, Quantity: 1, Price: 10,
	})
	require.NotNil(t, serviceErr)
	assert.Equal(t, http.StatusNotFound, serviceErr.StatusCode)
}

func TestDirectPurchaseComposesAddressAndTotal(t *testing.T) {
	svc, orderRepo := newOrderFixture()

	order, serviceErr := svc.DirectPurchase(context.Background(), &models.DirectPurchaseRequest{
		FullName: "Amira", Phone: "21612345", Address: "Rue X", Governorate: "Tunis",
		ProductID: 1, Quantity: 3, Price: 10,
	})
	require.Nil(t, serviceErr)

	assert.Equal(t, "Rue X, Tunis", order.Address)
	assert.Equal(t, 30.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)

	// The express path writes without the stock guard; product 3 in the
	// fixture has no stock rows yet direct purchase still succeeds.
	assert.Equal(t, 1, orderRepo.createCalls)
	assert.Zero(t, orderRepo.guardCalls)
}

func TestDirectPurchaseSkipsStockCheck(t *testing.T) {
	svc, _ := newOrderFixture()

	order, serviceErr := svc.DirectPurchase(context.Background(), &models.DirectPurchaseRequest{
		FullName: "Amira", Phone: "21612345", Address: "Rue X",
		ProductID: 3, Quantity: 1, Price: 30,
	})
	require.Nil(t, serviceErr)
	assert.Equal(t, 30.0, order.TotalAmount)
}

func TestListByUserLeavesDeletedProductUnresolved(t *testing.T) {
	svc, orderRepo := newOrderFixture()
	orderRepo.created = &models.Order{
		ID:           1,
		CustomerName: "Amira Ben Salah",
		PhoneNumber:  "21612345",
		Address:      "Rue X, Tunis",
		TotalAmount:  47,
		Status:       models.OrderStatusPending,
		Items: []models.OrderItem{
			{ID: 1, OrderID: 1, ProductID: 1, Quantity: 1, Price: 10},
			// Product 99 was deleted after the order was placed.
			{ID: 2, OrderID: 1, ProductID: 99, Quantity: 1, Price: 30},
		},
	}

	orders, serviceErr := svc.ListByUser(context.Background(), 42)
	require.Nil(t, serviceErr)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)

	require.NotNil(t, orders[0].Items[0].Product)
	assert.Equal(t, "Airfryer", orders[0].Items[0].Product.Name)

	// The historical line survives with its captured price, but the
	// product reference stays unresolved.
	assert.Nil(t, orders[0].Items[1].Product)
	assert.Equal(t, 30.0, orders[0].Items[1].Price)
}

func TestListByUserEmptyHistory(t *testing.T) {
	svc, _ := newOrderFixture()

	orders, serviceErr := svc.ListByUser(context.Background(), 42)
	require.Nil(t, serviceErr)
	assert.Empty(t, orders)
}

func TestDirectPurchaseWithoutGovernorate(t *testing.T) {
	svc, _ := newOrderFixture()

	order, serviceErr := svc.DirectPurchase(context.Background(), &models.DirectPurchaseRequest{
		FullName: "Amira", Phone: "21612345", Address: "Rue X",
		ProductID: 1, Quantity: 1, Price: 10,
	})
	require.Nil(t, serviceErr)
	assert.Equal(t, "Rue X", order.Address)
}
