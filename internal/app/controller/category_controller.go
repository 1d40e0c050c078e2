package controller

import (
	"errors"
	"net/http"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/service"
	apperrors "github.com/attirelabs/attire-backend/internal/errors"
	"github.com/attirelabs/attire-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// GetAllCategories returns the full category list
// GET /api/categories
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	categories, err := ctrl.categoryService.GetAllCategories()
	if err != nil {
		log.Error("Failed to fetch categories", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryBySlug returns one category
// GET /api/categories/:slug
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	slug := c.Param("slug")

	category, err := ctrl.categoryService.GetCategoryBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			log.Warn("Category not found", map[string]interface{}{
				"slug": slug,
			})
			apperrors.NotFound(c, apperrors.CategoryNotFound, "Category not found")
			return
		}
		log.Error("Failed to fetch category", err, map[string]interface{}{
			"slug": slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get category")
		return
	}

	c.JSON(http.StatusOK, category)
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// CreateCategory adds a category
// POST /api/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create category request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid category details")
		return
	}

	category := &model.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}

	if err := ctrl.categoryService.CreateCategory(category); err != nil {
		if errors.Is(err, service.ErrCategorySlugExists) {
			apperrors.Conflict(c, apperrors.CategorySlugExists, "A category with this slug already exists")
			return
		}
		log.Error("Failed to create category", err, map[string]interface{}{
			"slug": req.Slug,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create category")
		return
	}

	c.JSON(http.StatusCreated, category)
}
