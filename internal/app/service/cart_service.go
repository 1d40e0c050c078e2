package service

import (
	"errors"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrCartIntegrity    = errors.New("cart references a missing product")
)

type CartService interface {
	GetUserCart(userID uint) ([]model.CartItem, error)
	AddToCart(userID, productID uint, quantity int, size, color string) (*model.CartItem, error)
	UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error)
	RemoveFromCart(userID, cartItemID uint) error
	ClearCart(userID uint) error
	Subtotal(items []model.CartItem) (float64, error)
	ItemCount(items []model.CartItem) int
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetUserCart(userID uint) ([]model.CartItem, error) {
	logger.Debug("Fetching user cart", map[string]interface{}{
		"user_id": userID,
	})

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("User cart fetched successfully", map[string]interface{}{
		"user_id": userID,
		"count":   len(cartItems),
	})
	return cartItems, nil
}

// AddToCart puts a product in the user's cart. If the product is already
// there, the existing line absorbs the new quantity; size and color do not
// split lines and keep their original values on merge.
func (s *cartService) AddToCart(userID, productID uint, quantity int, size, color string) (*model.CartItem, error) {
	logger.Info("Adding item to cart", map[string]interface{}{
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		logger.Warn("Cannot add to cart: invalid quantity", map[string]interface{}{
			"user_id":  userID,
			"quantity": quantity,
		})
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cannot add to cart: product not found", map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	existing, err := s.cartRepo.FindByUserAndProduct(userID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.Update(existing); err != nil {
			logger.Error("Failed to merge cart item", err, map[string]interface{}{
				"cart_item_id": existing.ID,
			})
			return nil, err
		}

		logger.Info("Cart item merged", map[string]interface{}{
			"cart_item_id": existing.ID,
			"quantity":     existing.Quantity,
		})
		return s.cartRepo.FindByID(existing.ID)
	}

	item := &model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}
	if err := s.cartRepo.Create(item); err != nil {
		logger.Error("Failed to create cart item", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Cart item created", map[string]interface{}{
		"cart_item_id": item.ID,
	})
	return s.cartRepo.FindByID(item.ID)
}

func (s *cartService) UpdateQuantity(userID, cartItemID uint, quantity int) (*model.CartItem, error) {
	logger.Info("Updating cart item quantity", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
		"quantity":     quantity,
	})

	if quantity < 1 {
		logger.Warn("Cannot update cart item: invalid quantity", map[string]interface{}{
			"cart_item_id": cartItemID,
			"quantity":     quantity,
		})
		return nil, ErrInvalidQuantity
	}

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Cart item not found for update", map[string]interface{}{
				"cart_item_id": cartItemID,
			})
			return nil, ErrCartItemNotFound
		}
		logger.Error("Failed to fetch cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	if item.UserID != userID {
		logger.Warn("Cart item belongs to another user", map[string]interface{}{
			"cart_item_id": cartItemID,
			"user_id":      userID,
		})
		return nil, ErrCartItemNotFound
	}

	item.Quantity = quantity
	if err := s.cartRepo.Update(item); err != nil {
		logger.Error("Failed to update cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return nil, err
	}

	return item, nil
}

// RemoveFromCart deletes a cart line. Removing an id that does not exist,
// or that belongs to another user, is a no-op.
func (s *cartService) RemoveFromCart(userID, cartItemID uint) error {
	logger.Info("Removing item from cart", map[string]interface{}{
		"user_id":      userID,
		"cart_item_id": cartItemID,
	})

	item, err := s.cartRepo.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		logger.Error("Failed to fetch cart item for removal", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	if item.UserID != userID {
		logger.Warn("Skipping removal of another user's cart item", map[string]interface{}{
			"cart_item_id": cartItemID,
			"user_id":      userID,
		})
		return nil
	}

	if err := s.cartRepo.Delete(cartItemID); err != nil {
		logger.Error("Failed to delete cart item", err, map[string]interface{}{
			"cart_item_id": cartItemID,
		})
		return err
	}

	return nil
}

func (s *cartService) ClearCart(userID uint) error {
	logger.Info("Clearing cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := s.cartRepo.DeleteByUserID(userID); err != nil {
		logger.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return err
	}

	return nil
}

// Subtotal sums quantity times unit price across the cart. A line whose
// product no longer resolves indicates store corruption and fails the
// whole computation.
func (s *cartService) Subtotal(items []model.CartItem) (float64, error) {
	var subtotal float64
	for _, item := range items {
		if item.Product.ID == 0 {
			logger.Error("Cart line references missing product", ErrCartIntegrity, map[string]interface{}{
				"cart_item_id": item.ID,
				"product_id":   item.ProductID,
			})
			return 0, ErrCartIntegrity
		}
		subtotal += float64(item.Quantity) * item.Product.Price
	}
	return subtotal, nil
}

// ItemCount is the total number of units across all lines.
func (s *cartService) ItemCount(items []model.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}
