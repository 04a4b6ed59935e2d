package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-service/models"
	"storefront-service/services"
)

type ProductController struct {
	productService *services.ProductService
	stockService   *services.StockService
}

func NewProductController(productService *services.ProductService, stockService *services.StockService) *ProductController {
	return &ProductController{
		productService: productService,
		stockService:   stockService,
	}
}

// GetProducts returns the filtered catalog.
func (pc *ProductController) GetProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Category:      c.Query("category"),
		Collaborateur: c.Query("collaborateur"),
		Sort:          c.Query("sort"),
		Product:       c.Query("product"),
	}

	products, serviceErr := pc.productService.List(c.Request.Context(), filter)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetHomeProducts returns the home selection.
func (pc *ProductController) GetHomeProducts(c *gin.Context) {
	products, serviceErr := pc.productService.ListHome(c.Request.Context())
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductByID returns a product with its images.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	product, serviceErr := pc.productService.GetByID(c.Request.Context(), id)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct applies an admin edit, replacing the image set wholesale.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, serviceErr := pc.productService.Update(c.Request.Context(), id, &req)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and its images.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	if serviceErr := pc.productService.Delete(c.Request.Context(), id); serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetProductStock returns the raw stock rows for a product, optionally
// narrowed by size and colorId.
func (pc *ProductController) GetProductStock(c *gin.Context) {
	id, ok := parseProductID(c)
	if !ok {
		return
	}

	size := c.Query("size")
	var colorID *uint
	if raw := c.Query("colorId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid color ID"})
			return
		}
		v := uint(parsed)
		colorID = &v
	}

	stocks, serviceErr := pc.stockService.Query(c.Request.Context(), id, size, colorID)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusOK, stocks)
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return 0, false
	}
	return uint(id), true
}
