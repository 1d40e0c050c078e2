package service

import (
	"context"
	"errors"
	"time"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrGuestCartItemNotFound = errors.New("guest cart item not found")

// GuestCartService maintains carts for shoppers without an account. Carts
// live in Redis under an opaque token and follow the same merge rule as the
// signed-in path: one line per product, quantities summed.
type GuestCartService interface {
	GetCart(ctx context.Context, token string) (*model.GuestCart, error)
	AddItem(ctx context.Context, token string, productID uint, quantity int, size, color string) (*model.GuestCart, error)
	UpdateItem(ctx context.Context, token string, productID uint, quantity int) (*model.GuestCart, error)
	RemoveItem(ctx context.Context, token string, productID uint) (*model.GuestCart, error)
	MergeIntoUserCart(ctx context.Context, token string, userID uint) error
}

type guestCartService struct {
	guestCartRepo repository.GuestCartRepository
	productRepo   repository.ProductRepository
	cartService   CartService
}

func NewGuestCartService(
	guestCartRepo repository.GuestCartRepository,
	productRepo repository.ProductRepository,
	cartService CartService,
) GuestCartService {
	return &guestCartService{
		guestCartRepo: guestCartRepo,
		productRepo:   productRepo,
		cartService:   cartService,
	}
}

func (s *guestCartService) GetCart(ctx context.Context, token string) (*model.GuestCart, error) {
	logger.Debug("Fetching guest cart", map[string]interface{}{
		"token": token,
	})

	return s.guestCartRepo.Get(ctx, token)
}

func (s *guestCartService) AddItem(ctx context.Context, token string, productID uint, quantity int, size, color string) (*model.GuestCart, error) {
	logger.Info("Adding item to guest cart", map[string]interface{}{
		"token":      token,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product for guest cart", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	cart, err := s.guestCartRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.GuestCartItem{
			ProductID: productID,
			Quantity:  quantity,
			Size:      size,
			Color:     color,
			AddedAt:   time.Now(),
		})
	}

	if err := s.guestCartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *guestCartService) UpdateItem(ctx context.Context, token string, productID uint, quantity int) (*model.GuestCart, error) {
	logger.Info("Updating guest cart item", map[string]interface{}{
		"token":      token,
		"product_id": productID,
		"quantity":   quantity,
	})

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.guestCartRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrGuestCartItemNotFound
	}

	if err := s.guestCartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a product line. Removing a product not in the cart is
// a no-op.
func (s *guestCartService) RemoveItem(ctx context.Context, token string, productID uint) (*model.GuestCart, error) {
	logger.Info("Removing guest cart item", map[string]interface{}{
		"token":      token,
		"product_id": productID,
	})

	cart, err := s.guestCartRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.guestCartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// MergeIntoUserCart folds a guest cart into the user's server-side cart
// after sign-in, then discards the token. Lines for products the user
// already carries merge by summing quantities. Lines whose product has
// disappeared from the catalog are dropped silently.
func (s *guestCartService) MergeIntoUserCart(ctx context.Context, token string, userID uint) error {
	logger.Info("Merging guest cart into user cart", map[string]interface{}{
		"token":   token,
		"user_id": userID,
	})

	cart, err := s.guestCartRepo.Get(ctx, token)
	if err != nil {
		return err
	}

	for _, item := range cart.Items {
		if _, err := s.cartService.AddToCart(userID, item.ProductID, item.Quantity, item.Size, item.Color); err != nil {
			if errors.Is(err, ErrProductNotFound) {
				logger.Warn("Dropping guest cart line for missing product", map[string]interface{}{
					"product_id": item.ProductID,
				})
				continue
			}
			logger.Error("Failed to merge guest cart line", err, map[string]interface{}{
				"product_id": item.ProductID,
				"user_id":    userID,
			})
			return err
		}
	}

	if err := s.guestCartRepo.Delete(ctx, token); err != nil {
		logger.Error("Failed to discard guest cart after merge", err, map[string]interface{}{
			"token": token,
		})
		return err
	}

	logger.Info("Guest cart merged successfully", map[string]interface{}{
		"user_id": userID,
		"lines":   len(cart.Items),
	})
	return nil
}
