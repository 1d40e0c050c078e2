package service

import (
	"errors"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrProductSlugExists = errors.New("product slug already exists")
)

type ProductService interface {
	GetProducts(filter repository.ProductFilter) ([]model.Product, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	CreateProduct(product *model.Product) error
	RecomputeTrending(limit int) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) GetProducts(filter repository.ProductFilter) ([]model.Product, error) {
	logger.Debug("Fetching products", map[string]interface{}{
		"category_slug": filter.CategorySlug,
		"featured":      filter.Featured,
		"trending":      filter.Trending,
		"limit":         filter.Limit,
	})

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to fetch products", err, map[string]interface{}{
			"category_slug": filter.CategorySlug,
		})
		return nil, err
	}

	return products, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	logger.Debug("Fetching product by ID", map[string]interface{}{
		"product_id": id,
	})

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"product_id": id,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product by ID", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	logger.Debug("Fetching product by slug", map[string]interface{}{
		"slug": slug,
	})

	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	return product, nil
}

func (s *productService) CreateProduct(product *model.Product) error {
	logger.Info("Creating product", map[string]interface{}{
		"name": product.Name,
		"slug": product.Slug,
	})

	if product.Price < 0 {
		return ErrInvalidPrice
	}

	existing, err := s.productRepo.FindBySlug(product.Slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing product slug", err, map[string]interface{}{
			"slug": product.Slug,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Product slug already exists", map[string]interface{}{
			"slug": product.Slug,
		})
		return ErrProductSlugExists
	}

	if err := s.productRepo.Create(product); err != nil {
		logger.Error("Failed to create product", err, map[string]interface{}{
			"slug": product.Slug,
		})
		return err
	}

	return nil
}

// RecomputeTrending replaces the trending flags with the products most
// wishlisted right now. Products without any wishlist entries keep whatever
// flag the catalog seed gave them when the ranking comes back empty.
func (s *productService) RecomputeTrending(limit int) error {
	counts, err := s.productRepo.CountWishlistsByProduct(limit)
	if err != nil {
		logger.Error("Failed to rank products by wishlist count", err)
		return err
	}

	if len(counts) == 0 {
		logger.Info("No wishlist activity, keeping current trending flags", nil)
		return nil
	}

	productIDs := make([]uint, 0, len(counts))
	for _, c := range counts {
		productIDs = append(productIDs, c.ProductID)
	}

	if err := s.productRepo.SetTrending(productIDs); err != nil {
		logger.Error("Failed to update trending flags", err)
		return err
	}

	logger.Info("Trending products updated", map[string]interface{}{
		"count": len(productIDs),
	})

	return nil
}
