package service

import (
	"context"
	"errors"
	"math"

	"github.com/attirelabs/attire-backend/config"
	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"github.com/attirelabs/attire-backend/pkg/util"
)

var ErrCartEmpty = errors.New("cart is empty")

// CheckoutService prices a cart and simulates order placement. Totals are
// computed fresh from current cart contents on every call; nothing is
// persisted and no inventory changes.
type CheckoutService interface {
	Summary(userID uint) (*model.OrderSummary, error)
	PlaceOrder(ctx context.Context, userID uint) (*model.OrderConfirmation, error)
}

type checkoutService struct {
	cartService CartService
	cfg         config.CheckoutConfig
}

func NewCheckoutService(cartService CartService, cfg config.CheckoutConfig) CheckoutService {
	return &checkoutService{
		cartService: cartService,
		cfg:         cfg,
	}
}

// price derives the order summary from cart lines. Shipping is free at or
// above the threshold; tax is rounded once on the subtotal, not per line.
func (s *checkoutService) price(items []model.CartItem) (*model.OrderSummary, error) {
	subtotal, err := s.cartService.Subtotal(items)
	if err != nil {
		return nil, err
	}

	shipping := s.cfg.ShippingFlatRate
	if subtotal >= s.cfg.FreeShippingThreshold {
		shipping = 0
	}
	tax := math.Round(subtotal * s.cfg.TaxRate)

	return &model.OrderSummary{
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal + shipping + tax,
		ItemCount: s.cartService.ItemCount(items),
	}, nil
}

func (s *checkoutService) Summary(userID uint) (*model.OrderSummary, error) {
	logger.Debug("Computing checkout summary", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartService.GetUserCart(userID)
	if err != nil {
		return nil, err
	}

	summary, err := s.price(items)
	if err != nil {
		logger.Error("Failed to price cart", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Checkout summary computed", map[string]interface{}{
		"user_id":  userID,
		"subtotal": summary.Subtotal,
		"total":    summary.Total,
	})
	return summary, nil
}

// PlaceOrder simulates submitting the order to a payment and fulfilment
// provider. It waits the configured processing delay, then returns a display
// order number. The cart is left untouched and no order record is stored.
func (s *checkoutService) PlaceOrder(ctx context.Context, userID uint) (*model.OrderConfirmation, error) {
	logger.Info("Placing order", map[string]interface{}{
		"user_id": userID,
	})

	items, err := s.cartService.GetUserCart(userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		logger.Warn("Cannot place order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrCartEmpty
	}

	summary, err := s.price(items)
	if err != nil {
		return nil, err
	}

	if err := util.Sleep(ctx, s.cfg.ProcessingDelay); err != nil {
		logger.Warn("Order placement cancelled", map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	confirmation := &model.OrderConfirmation{
		OrderNumber: util.GenerateOrderNumber(),
		Summary:     *summary,
	}

	logger.Info("Order placed", map[string]interface{}{
		"user_id":      userID,
		"order_number": confirmation.OrderNumber,
		"total":        summary.Total,
	})
	return confirmation, nil
}
