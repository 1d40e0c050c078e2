package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/attirelabs/attire-backend/config"
	"github.com/attirelabs/attire-backend/internal/app/controller"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/internal/app/service"
	"github.com/attirelabs/attire-backend/internal/db"
	"github.com/attirelabs/attire-backend/internal/middleware"
	"github.com/attirelabs/attire-backend/internal/router"
	"github.com/attirelabs/attire-backend/internal/scheduler"
	"github.com/attirelabs/attire-backend/internal/storage"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"github.com/attirelabs/attire-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting ATTIRE Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations and seed the starter catalog
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis for guest carts
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	guestCartRepo := repository.NewGuestCartRepository(redis.GetClient(), cfg.Checkout.GuestCartTTL)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	guestCartService := service.NewGuestCartService(guestCartRepo, productRepo, cartService)
	checkoutService := service.NewCheckoutService(cartService, cfg.Checkout)

	// Initialize S3 storage for catalog image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, guestCartService)
	categoryController := controller.NewCategoryController(categoryService)
	productController := controller.NewProductController(productService, wishlistService)
	cartController := controller.NewCartController(cartService)
	guestCartController := controller.NewGuestCartController(guestCartService)
	wishlistController := controller.NewWishlistController(wishlistService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start trending recompute scheduler
	trendingScheduler := scheduler.NewTrendingScheduler(productService)
	if err := trendingScheduler.Start(); err != nil {
		logger.Error("Failed to start trending scheduler", err)
	}
	defer trendingScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		categoryController,
		productController,
		cartController,
		guestCartController,
		wishlistController,
		checkoutController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
