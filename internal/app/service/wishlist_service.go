package service

import (
	"errors"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistService interface {
	GetUserWishlist(userID uint) ([]model.WishlistItem, error)
	AddToWishlist(userID, productID uint) (*model.WishlistItem, error)
	RemoveFromWishlist(userID, itemID uint) error
	IsWishlisted(userID, productID uint) (bool, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	productRepo  repository.ProductRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository, productRepo repository.ProductRepository) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

func (s *wishlistService) GetUserWishlist(userID uint) ([]model.WishlistItem, error) {
	logger.Debug("Fetching user wishlist", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.wishlistRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User wishlist fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(items),
	})
	return items, nil
}

// AddToWishlist saves a product for the user. Adding a product that is
// already wished returns the existing entry; the wishlist never holds more
// than one entry per (user, product).
func (s *wishlistService) AddToWishlist(userID, productID uint) (*model.WishlistItem, error) {
	logger.Info("Adding item to wishlist", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
	})

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to wishlist: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	existing, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	if existing != nil {
		logger.Info("Product already wished, returning existing entry", map[string]interface{}{
			"wishlist_item_id": existing.ID,
		})
		return existing, nil
	}

	item := &model.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.wishlistRepo.Create(item); err != nil {
		logger.Error("Failed to create wishlist item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	return s.wishlistRepo.FindByID(item.ID)
}

// IsWishlisted reports whether the user has an entry for the product.
func (s *wishlistService) IsWishlisted(userID, productID uint) (bool, error) {
	_, err := s.wishlistRepo.FindByUserAndProduct(userID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		logger.Error("Failed to check wishlist entry", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return false, err
	}
	return true, nil
}

// RemoveFromWishlist deletes a wishlist entry by id. A missing id, or an
// entry owned by another user, is a no-op.
func (s *wishlistService) RemoveFromWishlist(userID, itemID uint) error {
	logger.Info("Removing item from wishlist", map[string]interface{}{
		"user_id":          userID,
		"wishlist_item_id": itemID,
	})

	item, err := s.wishlistRepo.FindByID(itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		logger.Error("Failed to fetch wishlist item for removal", err, map[string]interface{}{
			"wishlist_item_id": itemID,
		})
		return err
	}

	if item.UserID != userID {
		logger.Warn("Skipping removal of another user's wishlist item", map[string]interface{}{
			"wishlist_item_id": itemID,
			"user_id":          userID,
		})
		return nil
	}

	if err := s.wishlistRepo.Delete(itemID); err != nil {
		logger.Error("Failed to delete wishlist item", err, map[string]interface{}{
			"wishlist_item_id": itemID,
		})
		return err
	}

	return nil
}
