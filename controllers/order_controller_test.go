package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/services"
)

type stubProductRepo struct {
	products map[uint]*models.Product
}

func (s *stubProductRepo) List(_ context.Context, _ models.ProductFilter) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) ListHome(_ context.Context) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uint) (*models.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *stubProductRepo) Update(_ context.Context, product *models.Product, _ []models.ProductImage) (*models.Product, error) {
	return product, nil
}

func (s *stubProductRepo) Delete(_ context.Context, _ uint) error {
	return nil
}

type stubStockRepo struct {
	stocks map[uint][]models.Stock
}

func (s *stubStockRepo) Query(_ context.Context, productID uint, _ string, _ *uint) ([]models.Stock, error) {
	return s.stocks[productID], nil
}

type stubOrderRepo struct {
	created *models.Order
	history []models.Order
}

func (s *stubOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = 1
	s.created = order
	return nil
}

func (s *stubOrderRepo) CreateWithStockGuard(_ context.Context, order *models.Order) error {
	order.ID = 1
	s.created = order
	return nil
}

func (s *stubOrderRepo) FindByUserID(_ context.Context, _ uint) ([]models.Order, error) {
	return s.history, nil
}

func newOrderRouter(identity ...gin.HandlerFunc) (*gin.Engine, *stubOrderRepo) {
	gin.SetMode(gin.TestMode)

	productRepo := &stubProductRepo{products: map[uint]*models.Product{
		1: {ID: 1, Name: "Airfryer", Price: 10, Images: []models.ProductImage{
			{ID: 11, ProductID: 1, URL: "https://cdn.example/front.jpg", Position: "front", IsMain: true},
		}},
	}}
	stockRepo := &stubStockRepo{stocks: map[uint][]models.Stock{
		1: {{ID: 1, ProductID: 1, InStock: true}},
	}}
	orderRepo := &stubOrderRepo{}

	orderService := services.NewOrderService(orderRepo, productRepo, stockRepo)
	oc := NewOrderController(orderService)

	r := gin.New()
	r.Use(identity...)
	r.POST("/orders", oc.CreateOrder)
	r.POST("/orders/direct", oc.DirectPurchase)
	r.GET("/orders", oc.GetOrders)
	return r, orderRepo
}

// asUser plants the user id directly, the way Identity would after a
// valid session token.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserContextKey, id)
	}
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderEndpoint(t *testing.T) {
	r, orderRepo := newOrderRouter()

	w := postJSON(t, r, "/orders", gin.H{
		"customerName": "Amira Ben Salah",
		"phoneNumber":  "21612345",
		"address":      "Rue X, Tunis",
		"totalAmount":  27.0,
		"items":        []gin.H{{"productId": 1, "quantity": 2, "price": 10.0}},
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, 27.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 10.0, order.Items[0].Price)
	require.NotNil(t, order.Items[0].Product)
	require.Len(t, order.Items[0].Product.Images, 1)
	assert.True(t, order.Items[0].Product.Images[0].IsMain)

	require.NotNil(t, orderRepo.created)
	assert.Equal(t, models.OrderStatusPending, orderRepo.created.Status)
}

func TestCreateOrderMissingCustomerName(t *testing.T) {
	r, orderRepo := newOrderRouter()

	w := postJSON(t, r, "/orders", gin.H{
		"phoneNumber": "21612345",
		"address":     "Rue X, Tunis",
		"totalAmount": 27.0,
		"items":       []gin.H{{"productId": 1, "quantity": 2, "price": 10.0}},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, orderRepo.created)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	r, _ := newOrderRouter()

	w := postJSON(t, r, "/orders", gin.H{
		"customerName": "Amira Ben Salah",
		"phoneNumber":  "21612345",
		"address":      "Rue X, Tunis",
		"totalAmount":  17.0,
		"items":        []gin.H{{"productId": 42, "quantity": 1, "price": 10.0}},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDirectPurchaseEndpoint(t *testing.T) {
	r, orderRepo := newOrderRouter()

	w := postJSON(t, r, "/orders/direct", gin.H{
		"fullName":    "Amira Ben Salah",
		"phone":       "21612345",
		"address":     "Rue X",
		"governorate": "Tunis",
		"productId":   1,
		"quantity":    2,
		"price":       10.0,
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Success bool          `json:"success"`
		Order   *models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Order)
	assert.Equal(t, "Rue X, Tunis", resp.Order.Address)
	assert.Equal(t, 20.0, resp.Order.TotalAmount)

	require.NotNil(t, orderRepo.created)
}

func TestGetOrdersWithoutSession(t *testing.T) {
	r, _ := newOrderRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetOrdersEndpoint(t *testing.T) {
	r, orderRepo := newOrderRouter(asUser(42))
	userID := uint(42)
	orderRepo.history = []models.Order{{
		ID:           1,
		CustomerName: "Amira Ben Salah",
		TotalAmount:  47,
		Status:       models.OrderStatusPending,
		UserID:       &userID,
		Items: []models.OrderItem{
			{ID: 1, OrderID: 1, ProductID: 1, Quantity: 1, Price: 10},
			// References a product that no longer exists.
			{ID: 2, OrderID: 1, ProductID: 99, Quantity: 1, Price: 30},
		},
	}}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	require.Len(t, resp.Orders[0].Items, 2)
	require.NotNil(t, resp.Orders[0].Items[0].Product)
	assert.Equal(t, "Airfryer", resp.Orders[0].Items[0].Product.Name)
	assert.Nil(t, resp.Orders[0].Items[1].Product)
}

func TestDirectPurchaseMissingFields(t *testing.T) {
	r, _ := newOrderRouter()

	w := postJSON(t, r, "/orders/direct", gin.H{
		"fullName": "Amira Ben Salah",
		"phone":    "21612345",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
