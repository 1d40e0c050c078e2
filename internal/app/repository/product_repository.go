package repository

import (
	"fmt"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortWishlist  ProductSort = "wishlist"
)

// ProductFilter narrows catalog queries. A CategorySlug that matches no
// category simply yields an empty result set.
type ProductFilter struct {
	CategorySlug  string
	CategoryID    *uint
	Featured      *bool
	Trending      *bool
	Search        string
	SortBy        ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

// WishlistCount pairs a product with how many wishlists contain it.
type WishlistCount struct {
	ProductID uint
	Count     int64
}

type ProductRepository interface {
	Create(product *model.Product) error
	BulkCreate(products []model.Product, batchSize int) error
	FindAll() ([]model.Product, error)
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	CountWishlistsByProduct(limit int) ([]WishlistCount, error)
	SetTrending(productIDs []uint) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	logger.Debug("Creating product in database", map[string]interface{}{
		"name":        product.Name,
		"slug":        product.Slug,
		"category_id": product.CategoryID,
	})

	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"slug": product.Slug,
		})
		return err
	}

	logger.Debug("Product created in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})
	return nil
}

// BulkCreate inserts products in batches, used by the catalog importer
func (r *productRepository) BulkCreate(products []model.Product, batchSize int) error {
	logger.Info("Bulk creating products", map[string]interface{}{
		"count":      len(products),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(products, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create products", err, map[string]interface{}{
			"count": len(products),
		})
		return err
	}

	return nil
}

func (r *productRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.Product{}).Preload("Category")
}

func (r *productRepository) FindAll() ([]model.Product, error) {
	return r.FindWithFilter(ProductFilter{})
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	logger.Debug("Finding products with filter", map[string]interface{}{
		"category_slug": filter.CategorySlug,
		"category_id":   filter.CategoryID,
		"featured":      filter.Featured,
		"trending":      filter.Trending,
		"search":        filter.Search,
		"sort_by":       filter.SortBy,
		"limit":         filter.Limit,
		"offset":        filter.Offset,
	})

	query := r.baseQuery()

	if filter.CategorySlug != "" {
		query = query.Joins("JOIN categories ON categories.id = products.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}

	if filter.Featured != nil {
		query = query.Where("products.featured = ?", *filter.Featured)
	}

	if filter.Trending != nil {
		query = query.Where("products.trending = ?", *filter.Trending)
	}

	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where("products.name LIKE ? OR products.description LIKE ?", like, like)
	}

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price " + direction)
	case ProductSortWishlist:
		wishlistCounts := r.db.Table("wishlist_items").
			Select("wishlist_items.product_id, COUNT(*) AS count").
			Where("wishlist_items.deleted_at IS NULL").
			Group("wishlist_items.product_id")
		query = query.
			Joins("LEFT JOIN (?) AS wishlist_counts ON wishlist_counts.product_id = products.id", wishlistCounts).
			Order("COALESCE(wishlist_counts.count, 0) " + direction).
			Order("products.created_at DESC")
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category_slug": filter.CategorySlug,
			"search":        filter.Search,
		})
		return nil, err
	}

	logger.Debug("Products found with filter", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	logger.Debug("Finding product by ID in database", map[string]interface{}{
		"product_id": id,
	})

	var product model.Product
	if err := r.baseQuery().First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID in database", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	logger.Debug("Finding product by slug in database", map[string]interface{}{
		"slug": slug,
	})

	var product model.Product
	if err := r.baseQuery().Where("products.slug = ?", slug).First(&product).Error; err != nil {
		logger.Error("Failed to find product by slug in database", err, map[string]interface{}{
			"slug": slug,
		})
		return nil, err
	}

	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	logger.Debug("Updating product in database", map[string]interface{}{
		"product_id": product.ID,
		"slug":       product.Slug,
	})

	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}

	return nil
}

func (r *productRepository) Delete(id uint) error {
	logger.Debug("Deleting product from database", map[string]interface{}{
		"product_id": id,
	})

	if err := r.db.Delete(&model.Product{}, id).Error; err != nil {
		logger.Error("Failed to delete product from database", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}

	return nil
}

// CountWishlistsByProduct returns products ranked by how many wishlists
// hold them, most wished first.
func (r *productRepository) CountWishlistsByProduct(limit int) ([]WishlistCount, error) {
	logger.Debug("Counting wishlist entries per product", map[string]interface{}{
		"limit": limit,
	})

	var counts []WishlistCount
	query := r.db.Table("wishlist_items").
		Select("wishlist_items.product_id, COUNT(*) AS count").
		Where("wishlist_items.deleted_at IS NULL").
		Group("wishlist_items.product_id").
		Order("count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Scan(&counts).Error; err != nil {
		logger.Error("Failed to count wishlist entries per product", err, nil)
		return nil, err
	}

	return counts, nil
}

// SetTrending clears every trending flag, then sets it on the given products.
func (r *productRepository) SetTrending(productIDs []uint) error {
	logger.Debug("Updating trending flags in database", map[string]interface{}{
		"product_count": len(productIDs),
	})

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("trending = ?", true).
			Update("trending", false).Error; err != nil {
			logger.Error("Failed to clear trending flags", err, nil)
			return err
		}

		if len(productIDs) == 0 {
			return nil
		}

		if err := tx.Model(&model.Product{}).
			Where("id IN ?", productIDs).
			Update("trending", true).Error; err != nil {
			logger.Error("Failed to set trending flags", err, map[string]interface{}{
				"product_count": len(productIDs),
			})
			return err
		}
		return nil
	})
}
