package service

import (
	"testing"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupWishlistServiceTest(t *testing.T) (WishlistService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	wishlistRepo := repository.NewWishlistRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	wishlistService := NewWishlistService(wishlistRepo, productRepo)

	user := &model.User{
		Username:     "shopper",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	category := &model.Category{Name: "Ethnic", Slug: "ethnic"}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Embroidered Lehenga",
		Slug:       "embroidered-lehenga",
		Price:      4999,
		CategoryID: category.ID,
	}
	testDB.Create(product)

	return wishlistService, user, product, testDB
}

func TestWishlistService_GetUserWishlist(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	items, err := wishlistService.GetUserWishlist(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	_, err = wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	items, err = wishlistService.GetUserWishlist(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].Product.ID)
}

func TestWishlistService_AddToWishlist(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	item, err := wishlistService.AddToWishlist(user.ID, product.ID)
	assert.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, product.ID, item.ProductID)
}

func TestWishlistService_AddToWishlist_IdempotentDuplicate(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	first, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	second, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	items, err := wishlistService.GetUserWishlist(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistService_AddToWishlist_ProductNotFound(t *testing.T) {
	wishlistService, user, _, _ := setupWishlistServiceTest(t)

	item, err := wishlistService.AddToWishlist(user.ID, 99999)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, item)
}

func TestWishlistService_IsWishlisted(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	wishlisted, err := wishlistService.IsWishlisted(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, wishlisted)

	_, err = wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	wishlisted, err = wishlistService.IsWishlisted(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, wishlisted)
}

func TestWishlistService_RemoveFromWishlist(t *testing.T) {
	wishlistService, user, product, _ := setupWishlistServiceTest(t)

	item, err := wishlistService.AddToWishlist(user.ID, product.ID)
	require.NoError(t, err)

	err = wishlistService.RemoveFromWishlist(user.ID, item.ID)
	assert.NoError(t, err)

	items, _ := wishlistService.GetUserWishlist(user.ID)
	assert.Len(t, items, 0)
}

func TestWishlistService_RemoveFromWishlist_MissingIDIsNoop(t *testing.T) {
	wishlistService, user, _, _ := setupWishlistServiceTest(t)

	err := wishlistService.RemoveFromWishlist(user.ID, 99999)
	assert.NoError(t, err)
}

func TestWishlistService_RemoveFromWishlist_OtherUsersItemIsNoop(t *testing.T) {
	wishlistService, user, product, testDB := setupWishlistServiceTest(t)

	other := &model.User{Username: "other", PasswordHash: "hash"}
	testDB.Create(other)

	item, err := wishlistService.AddToWishlist(other.ID, product.ID)
	require.NoError(t, err)

	err = wishlistService.RemoveFromWishlist(user.ID, item.ID)
	assert.NoError(t, err)

	items, _ := wishlistService.GetUserWishlist(other.ID)
	assert.Len(t, items, 1)
}
