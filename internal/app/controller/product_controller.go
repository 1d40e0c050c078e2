package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/internal/app/service"
	apperrors "github.com/attirelabs/attire-backend/internal/errors"
	"github.com/attirelabs/attire-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ProductController struct {
	productService  service.ProductService
	wishlistService service.WishlistService
}

func NewProductController(productService service.ProductService, wishlistService service.WishlistService) *ProductController {
	return &ProductController{
		productService:  productService,
		wishlistService: wishlistService,
	}
}

// productDetail decorates a product with the signed-in user's wishlist
// state. The embedded product keeps the JSON flat.
type productDetail struct {
	*model.Product
	Wishlisted bool `json:"wishlisted"`
}

// GetProducts returns the catalog, optionally filtered
// GET /api/products?category=&featured=&trending=&limit=
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.ProductFilter{
		CategorySlug: c.Query("category"),
		Search:       c.Query("search"),
	}

	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "featured must be a boolean")
			return
		}
		filter.Featured = &featured
	}

	if v := c.Query("trending"); v != "" {
		trending, err := strconv.ParseBool(v)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "trending must be a boolean")
			return
		}
		filter.Trending = &trending
	}

	if v := c.Query("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "limit must be a non-negative integer")
			return
		}
		filter.Limit = limit
	}

	products, err := ctrl.productService.GetProducts(filter)
	if err != nil {
		log.Error("Failed to fetch products", err, map[string]interface{}{
			"category": filter.CategorySlug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProductBySlug returns one product. A numeric parameter that matches no
// slug is treated as a product id. When the request carries a valid token,
// the response includes the user's wishlist state for the product.
// GET /api/products/:slug
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	product, err := ctrl.productService.GetProductBySlug(slug)
	if errors.Is(err, service.ErrProductNotFound) {
		if id, parseErr := strconv.ParseUint(slug, 10, 32); parseErr == nil {
			product, err = ctrl.productService.GetProductByID(uint(id))
		}
	}
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			log.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get product")
		return
	}

	detail := productDetail{Product: product}
	if userID, exists := middleware.GetUserID(c); exists {
		wishlisted, err := ctrl.wishlistService.IsWishlisted(userID, product.ID)
		if err != nil {
			log.Warn("Failed to resolve wishlist state", map[string]interface{}{
				"user_id":    userID,
				"product_id": product.ID,
			})
		}
		detail.Wishlisted = wishlisted
	}

	c.JSON(http.StatusOK, detail)
}

type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Slug          string   `json:"slug" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required,gte=0"`
	OriginalPrice *float64 `json:"original_price"`
	Discount      int      `json:"discount" binding:"gte=0,lte=100"`
	CategoryID    uint     `json:"category_id" binding:"required"`
	ImageURL      string   `json:"image_url"`
	Images        []string `json:"images"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Inventory     int      `json:"inventory" binding:"gte=0"`
	Rating        float64  `json:"rating" binding:"gte=0,lte=5"`
	ReviewCount   int      `json:"review_count" binding:"gte=0"`
	Featured      bool     `json:"featured"`
	Trending      bool     `json:"trending"`
}

// CreateProduct adds a product to the catalog
// POST /api/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create product request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product details")
		return
	}

	product := &model.Product{
		Name:          req.Name,
		Slug:          req.Slug,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Discount:      req.Discount,
		CategoryID:    req.CategoryID,
		ImageURL:      req.ImageURL,
		Images:        req.Images,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Inventory:     req.Inventory,
		Rating:        req.Rating,
		ReviewCount:   req.ReviewCount,
		Featured:      req.Featured,
		Trending:      req.Trending,
	}

	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Price must not be negative")
			return
		}
		if errors.Is(err, service.ErrProductSlugExists) {
			apperrors.Conflict(c, apperrors.ProductSlugExists, "A product with this slug already exists")
			return
		}
		log.Error("Failed to create product", err, map[string]interface{}{
			"slug": req.Slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	log.Info("Product created", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	c.JSON(http.StatusCreated, product)
}
