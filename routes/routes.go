package routes

import (
	"github.com/gin-gonic/gin"

	"storefront-service/controllers"
	"storefront-service/middleware"
)

// Register wires the storefront HTTP surface onto the engine.
func Register(
	r *gin.Engine,
	orderController *controllers.OrderController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	authController *controllers.AuthController,
) {
	orders := r.Group("/orders")
	orders.POST("", orderController.CreateOrder)
	orders.POST("/direct", orderController.DirectPurchase)
	orders.GET("", orderController.GetOrders)

	products := r.Group("/products")
	products.GET("", productController.GetProducts)
	products.GET("/home", productController.GetHomeProducts)
	products.GET("/:id", productController.GetProductByID)
	products.PUT("/:id", productController.UpdateProduct)
	products.DELETE("/:id", productController.DeleteProduct)
	products.GET("/:id/stock", productController.GetProductStock)

	cartRoutes := r.Group("/cart")
	cartRoutes.Use(middleware.CartSession())
	cartRoutes.GET("", cartController.GetCart)
	cartRoutes.POST("/items", cartController.AddItem)
	cartRoutes.PUT("/items/:productId", cartController.UpdateItem)
	cartRoutes.DELETE("/items/:productId", cartController.RemoveItem)
	cartRoutes.DELETE("", cartController.ClearCart)

	auth := r.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
}
