package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-service/cart"
	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/logger"
	"storefront-service/middleware"
	"storefront-service/models"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"
)

const cartTTL = 30 * 24 * time.Hour

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	db, err := database.Connect(cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser,
		cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode, cfg.PostgresTimeZone)
	if err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := models.Migrate(db); err != nil {
		logger.Log.Fatal("Migration failed", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	productRepo := repository.NewGormProductRepository(db)
	orderRepo := repository.NewGormOrderRepository(db)
	stockRepo := repository.NewGormStockRepository(db)
	userRepo := repository.NewGormUserRepository(db)

	productService := services.NewProductService(productRepo)
	stockService := services.NewStockService(stockRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, stockRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)

	cartPersistence := cart.NewRedisPersistence(redisClient, cartTTL)

	orderController := controllers.NewOrderController(orderService)
	productController := controllers.NewProductController(productService, stockService)
	cartController := controllers.NewCartController(cartPersistence, productRepo)
	authController := controllers.NewAuthController(authService)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.RateLimit())
	r.Use(middleware.Identity(authService))

	routes.Register(r, orderController, productController, cartController, authController)

	logger.Log.Info("Starting storefront service", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
