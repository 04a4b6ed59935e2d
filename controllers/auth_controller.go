package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/services"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register creates an account.
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, serviceErr := ac.authService.Register(c.Request.Context(), &req)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Login verifies credentials and sets the session cookie.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	token, user, serviceErr := ac.authService.Login(c.Request.Context(), &req)
	if serviceErr != nil {
		c.JSON(serviceErr.StatusCode, gin.H{"error": serviceErr.Message})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, 24*3600, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}
