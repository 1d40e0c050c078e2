package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/attirelabs/attire-backend/internal/app/service"
	"github.com/attirelabs/attire-backend/internal/middleware"
	"github.com/attirelabs/attire-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// GuestCartController serves carts for visitors without an account. The cart
// is addressed by an opaque token the client sends in the X-Cart-Token
// header; a token is issued on the first write.
type GuestCartController struct {
	guestCartService service.GuestCartService
}

func NewGuestCartController(guestCartService service.GuestCartService) *GuestCartController {
	return &GuestCartController{
		guestCartService: guestCartService,
	}
}

type GuestAddToCartRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type GuestUpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart returns the guest cart for the presented token. A missing token
// yields an empty cart without issuing one.
// GET /api/guest-cart
func (ctrl *GuestCartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, ok := middleware.GetCartToken(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"cart_items": []interface{}{},
			"count":      0,
		})
		return
	}

	cart, err := ctrl.guestCartService.GetCart(c.Request.Context(), token)
	if err != nil {
		log.Error("Failed to fetch guest cart", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_token": cart.Token,
		"cart_items": cart.Items,
		"count":      len(cart.Items),
	})
}

// AddItem adds a product to the guest cart, merging lines for the same
// product. Issues a fresh token when the client has none yet.
// POST /api/guest-cart
func (ctrl *GuestCartController) AddItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GuestAddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid guest cart request", map[string]interface{}{
			"error": err.Error(),
		})
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}

	token, ok := middleware.GetCartToken(c)
	if !ok {
		token = util.GenerateCartToken()
	}

	cart, err := ctrl.guestCartService.AddItem(c.Request.Context(), token, req.ProductID, req.Quantity, req.Size, req.Color)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		if errors.Is(err, service.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Quantity must be at least 1",
			})
			return
		}
		log.Error("Failed to add to guest cart", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add to cart",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"cart_token": cart.Token,
		"cart_items": cart.Items,
		"count":      len(cart.Items),
	})
}

// UpdateItem changes the quantity of a guest cart line
// PATCH /api/guest-cart/:productId
func (ctrl *GuestCartController) UpdateItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, ok := middleware.GetCartToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Cart token required",
		})
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req GuestUpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cart, err := ctrl.guestCartService.UpdateItem(c.Request.Context(), token, uint(productID), req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Quantity must be at least 1",
			})
			return
		}
		if errors.Is(err, service.ErrGuestCartItemNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Cart item not found",
			})
			return
		}
		log.Error("Failed to update guest cart", err, map[string]interface{}{
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update cart item",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_token": cart.Token,
		"cart_items": cart.Items,
		"count":      len(cart.Items),
	})
}

// RemoveItem drops a product from the guest cart; unknown products are
// ignored
// DELETE /api/guest-cart/:productId
func (ctrl *GuestCartController) RemoveItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	token, ok := middleware.GetCartToken(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if _, err := ctrl.guestCartService.RemoveItem(c.Request.Context(), token, uint(productID)); err != nil {
		log.Error("Failed to remove from guest cart", err, map[string]interface{}{
			"product_id": productID,
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove from cart",
		})
		return
	}

	c.Status(http.StatusNoContent)
}
