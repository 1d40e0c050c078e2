package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/attirelabs/attire-backend/config"
	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/internal/app/service"
	"github.com/attirelabs/attire-backend/internal/db"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCheckoutControllerTest(t *testing.T) (*CheckoutController, *gin.Engine, *gorm.DB, *model.User, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo)
	checkoutService := service.NewCheckoutService(cartService, config.CheckoutConfig{
		FreeShippingThreshold: 999,
		ShippingFlatRate:      100,
		TaxRate:               0.18,
		ProcessingDelay:       10 * time.Millisecond,
	})
	checkoutController := NewCheckoutController(checkoutService)

	user := &model.User{
		Username:     "testuser",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	category := &model.Category{
		Name: "Men",
		Slug: "men",
	}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Classic White Shirt",
		Slug:       "classic-white-shirt",
		Price:      999,
		CategoryID: category.ID,
		Inventory:  50,
	}
	testDB.Create(product)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return checkoutController, router, testDB, user, product
}

func TestCheckoutController_GetSummary_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCheckoutControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})

	router.GET("/checkout/summary", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.GetSummary(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/checkout/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var summary model.OrderSummary
	err := json.Unmarshal(w.Body.Bytes(), &summary)
	require.NoError(t, err)

	// Subtotal hits the free shipping threshold exactly
	assert.Equal(t, float64(999), summary.Subtotal)
	assert.Equal(t, float64(0), summary.Shipping)
	assert.Equal(t, float64(180), summary.Tax) // round(999 * 0.18)
	assert.Equal(t, float64(1179), summary.Total)
	assert.Equal(t, 1, summary.ItemCount)
}

func TestCheckoutController_GetSummary_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCheckoutControllerTest(t)

	router.GET("/checkout/summary", controller.GetSummary)

	req := httptest.NewRequest(http.MethodGet, "/checkout/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "User not authenticated", response["error"])
}

func TestCheckoutController_PlaceOrder_Success(t *testing.T) {
	controller, router, testDB, user, product := setupCheckoutControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  2,
	})

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var confirmation model.OrderConfirmation
	err := json.Unmarshal(w.Body.Bytes(), &confirmation)
	require.NoError(t, err)

	assert.Regexp(t, `^ATTIRE-\d{4}$`, confirmation.OrderNumber)
	assert.Equal(t, float64(1998), confirmation.Summary.Subtotal)

	// The cart survives the simulated order
	items, _ := cartRepo.FindByUserID(user.ID)
	assert.Len(t, items, 1)
}

func TestCheckoutController_PlaceOrder_DeadlineBeforeCompletion(t *testing.T) {
	controller, router, testDB, user, product := setupCheckoutControllerTest(t)

	cartRepo := repository.NewCartRepository(testDB)
	cartRepo.Create(&model.CartItem{
		UserID:    user.ID,
		ProductID: product.ID,
		Quantity:  1,
	})

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestTimeout, w.Code)

	// The cart survives so the client can retry
	items, err := cartRepo.FindByUserID(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCheckoutController_PlaceOrder_EmptyCart(t *testing.T) {
	controller, router, _, user, _ := setupCheckoutControllerTest(t)

	router.POST("/checkout", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.PlaceOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "Cart is empty", response["error"])
}

func TestCheckoutController_PlaceOrder_Unauthorized(t *testing.T) {
	controller, router, _, _, _ := setupCheckoutControllerTest(t)

	router.POST("/checkout", controller.PlaceOrder)

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "User not authenticated", response["error"])
}
