package service

import (
	"errors"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategorySlugExists = errors.New("category slug already exists")
)

type CategoryService interface {
	GetAllCategories() ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(category *model.Category) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) GetAllCategories() ([]model.Category, error) {
	logger.Debug("Fetching all categories", nil)

	categories, err := s.categoryRepo.FindAll()
	if err != nil {
		logger.Error("Failed to fetch categories", err, nil)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryBySlug(slug string) (*model.Category, error) {
	logger.Debug("Fetching category by slug", map[string]interface{}{
		"slug": slug,
	})

	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"slug": slug,
			})
			return nil, ErrCategoryNotFound
		}
		logger.Error("Failed to fetch category by slug", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(category *model.Category) error {
	logger.Info("Creating category", map[string]interface{}{
		"name": category.Name,
		"slug": category.Slug,
	})

	existing, err := s.categoryRepo.FindBySlug(category.Slug)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing category slug", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return err
	}
	if existing != nil {
		logger.Warn("Category slug already exists", map[string]interface{}{
			"slug": category.Slug,
		})
		return ErrCategorySlugExists
	}

	if err := s.categoryRepo.Create(category); err != nil {
		logger.Error("Failed to create category", err, map[string]interface{}{
			"slug": category.Slug,
		})
		return err
	}

	return nil
}
