package router

import (
	"github.com/attirelabs/attire-backend/config"
	"github.com/attirelabs/attire-backend/internal/app/controller"
	"github.com/attirelabs/attire-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController      *controller.AuthController
	categoryController  *controller.CategoryController
	productController   *controller.ProductController
	cartController      *controller.CartController
	guestCartController *controller.GuestCartController
	wishlistController  *controller.WishlistController
	checkoutController  *controller.CheckoutController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	guestCartController *controller.GuestCartController,
	wishlistController *controller.WishlistController,
	checkoutController *controller.CheckoutController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		categoryController:  categoryController,
		productController:   productController,
		cartController:      cartController,
		guestCartController: guestCartController,
		wishlistController:  wishlistController,
		checkoutController:  checkoutController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "ATTIRE API is running",
		})
	})

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateMe)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", r.categoryController.GetAllCategories)
			categories.GET("/:slug", r.categoryController.GetCategoryBySlug)
			categories.POST("", r.categoryController.CreateCategory)
		}

		products := api.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/:slug", r.authMiddleware.OptionalAuthenticate(), r.productController.GetProductBySlug)
			products.POST("", r.productController.CreateProduct)
		}

		cart := api.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AddToCart)
			cart.PATCH("/:id", r.cartController.UpdateCartItem)
			cart.DELETE("/:id", r.cartController.RemoveFromCart)
			cart.DELETE("", r.cartController.ClearCart)
		}

		guestCart := api.Group("/guest-cart")
		{
			guestCart.GET("", r.guestCartController.GetCart)
			guestCart.POST("", r.guestCartController.AddItem)
			guestCart.PATCH("/:productId", r.guestCartController.UpdateItem)
			guestCart.DELETE("/:productId", r.guestCartController.RemoveItem)
		}

		wishlist := api.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.GetWishlist)
			wishlist.POST("", r.wishlistController.AddToWishlist)
			wishlist.DELETE("/:id", r.wishlistController.RemoveFromWishlist)
		}

		checkout := api.Group("/checkout")
		checkout.Use(r.authMiddleware.Authenticate())
		{
			checkout.GET("/summary", r.checkoutController.GetSummary)
			checkout.POST("", r.checkoutController.PlaceOrder)
		}

		upload := api.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate())
		{
			upload.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Cart-Token")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
