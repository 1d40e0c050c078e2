package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/attirelabs/attire-backend/internal/app/service"
	"github.com/attirelabs/attire-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type CheckoutController struct {
	checkoutService service.CheckoutService
}

func NewCheckoutController(checkoutService service.CheckoutService) *CheckoutController {
	return &CheckoutController{
		checkoutService: checkoutService,
	}
}

// GetSummary prices the user's cart: subtotal, shipping, tax and total
// GET /api/checkout/summary
func (ctrl *CheckoutController) GetSummary(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized access to checkout summary", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	summary, err := ctrl.checkoutService.Summary(userID)
	if err != nil {
		log.Error("Failed to compute checkout summary", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute checkout summary",
		})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PlaceOrder runs the simulated payment and returns an order confirmation.
// The cart is left intact so the client can retry after a failure.
// POST /api/checkout
func (ctrl *CheckoutController) PlaceOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized attempt to place order", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	confirmation, err := ctrl.checkoutService.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("Checkout abandoned before completion", map[string]interface{}{
				"user_id": userID,
			})
			c.AbortWithStatus(http.StatusRequestTimeout)
			return
		}
		log.Error("Failed to place order", err, map[string]interface{}{
			"user_id": userID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"user_id":      userID,
		"order_number": confirmation.OrderNumber,
		"total":        confirmation.Summary.Total,
	})

	c.JSON(http.StatusCreated, confirmation)
}
