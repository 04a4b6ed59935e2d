package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-service/cart"
	"storefront-service/middleware"
	"storefront-service/repository"
)

type CartController struct {
	persistence cart.Persistence
	productRepo repository.ProductRepository
}

func NewCartController(persistence cart.Persistence, productRepo repository.ProductRepository) *CartController {
	return &CartController{
		persistence: persistence,
		productRepo: productRepo,
	}
}

type cartResponse struct {
	Items      []cart.Item `json:"items"`
	TotalPrice float64     `json:"totalPrice"`
	TotalItems int         `json:"totalItems"`
}

func (cc *CartController) load(c *gin.Context) *cart.Store {
	return cart.NewStore(c.Request.Context(), cc.persistence, middleware.GetCartSession(c))
}

func (cc *CartController) respond(c *gin.Context, store *cart.Store) {
	items := store.Items()
	if items == nil {
		items = []cart.Item{}
	}
	c.JSON(http.StatusOK, cartResponse{
		Items:      items,
		TotalPrice: store.TotalPrice(),
		TotalItems: store.TotalItems(),
	})
}

// GetCart returns the session's cart snapshot with derived totals.
func (cc *CartController) GetCart(c *gin.Context) {
	cc.respond(c, cc.load(c))
}

// AddItem puts one unit of the product into the cart, aggregating on
// product id.
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID uint `json:"productId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	product, err := cc.productRepo.FindByID(c.Request.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product"})
		return
	}

	store := cc.load(c)
	if err := store.AddItem(c.Request.Context(), product); err != nil {
		zap.L().Error("Failed to save cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	cc.respond(c, store)
}

// UpdateItem sets the quantity for a product already in the cart. The
// floor of 1 is enforced here, before the store is called.
func (cc *CartController) UpdateItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	store := cc.load(c)
	if err := store.UpdateQuantity(c.Request.Context(), uint(productID), req.Quantity); err != nil {
		zap.L().Error("Failed to save cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	cc.respond(c, store)
}

// RemoveItem drops a product from the cart; removing an absent product
// is a no-op.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	store := cc.load(c)
	if err := store.RemoveItem(c.Request.Context(), uint(productID)); err != nil {
		zap.L().Error("Failed to save cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
		return
	}
	cc.respond(c, store)
}

// ClearCart empties the cart and drops the persisted snapshot.
func (cc *CartController) ClearCart(c *gin.Context) {
	store := cc.load(c)
	if err := store.Clear(c.Request.Context()); err != nil {
		zap.L().Error("Failed to clear cart", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
