package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
)

type OrderController struct {
	orderService *services.OrderService
}

func NewOrderController(orderService *services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles cart checkout.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, serviceErr := oc.orderService.Checkout(c.Request.Context(), middleware.GetUserID(c), &req)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DirectPurchase handles the single-product express checkout.
func (oc *OrderController) DirectPurchase(c *gin.Context) {
	var req models.DirectPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	order, serviceErr := oc.orderService.DirectPurchase(c.Request.Context(), &req)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GetOrders returns the authenticated user's order history.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orders, serviceErr := oc.orderService.ListByUser(c.Request.Context(), *userID)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
