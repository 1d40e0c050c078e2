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

func setupCartServiceTest(t *testing.T) (CartService, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	// Create test user
	user := &model.User{
		Username:     "shopper",
		PasswordHash: "hash",
	}
	testDB.Create(user)

	// Create category and product
	category := &model.Category{
		Name: "Women",
		Slug: "women",
	}
	testDB.Create(category)

	product := &model.Product{
		Name:       "Floral Summer Dress",
		Slug:       "floral-summer-dress",
		Price:      1999,
		CategoryID: category.ID,
		Inventory:  45,
	}
	testDB.Create(product)

	return cartService, user, product, testDB
}

func TestCartService_GetUserCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	// Initially empty
	items, err := cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 0)

	// Add item
	_, err = cartService.AddToCart(user.ID, product.ID, 2, "M", "Floral")
	require.NoError(t, err)

	// Get cart
	items, err = cartService.GetUserCart(user.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, product.ID, items[0].Product.ID)
}

func TestCartService_AddToCart_Success(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 3, "S", "White")
	assert.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "S", item.Size)
}

func TestCartService_AddToCart_ProductNotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, 99999, 1, "", "")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, item)
}

func TestCartService_AddToCart_InvalidQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 0, "", "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Nil(t, item)
}

func TestCartService_AddToCart_MergesDuplicateProduct(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	_, err := cartService.AddToCart(user.ID, product.ID, 1, "M", "Floral")
	require.NoError(t, err)

	item, err := cartService.AddToCart(user.ID, product.ID, 2, "L", "White")
	require.NoError(t, err)

	// One line total, quantities summed, variant fields from the first add
	items, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "M", items[0].Size)
	assert.Equal(t, "Floral", items[0].Color)
}

func TestCartService_AddToCart_QuantitySumsOverManyAdds(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	quantities := []int{1, 2, 5, 3}
	sum := 0
	for _, q := range quantities {
		_, err := cartService.AddToCart(user.ID, product.ID, q, "", "")
		require.NoError(t, err)
		sum += q
	}

	items, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, sum, items[0].Quantity)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(user.ID, item.ID, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
}

func TestCartService_UpdateQuantity_InvalidQuantity(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(user.ID, item.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Nil(t, updated)
}

func TestCartService_UpdateQuantity_NotFound(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	updated, err := cartService.UpdateQuantity(user.ID, 99999, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.Nil(t, updated)
}

func TestCartService_UpdateQuantity_OtherUsersItem(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	other := &model.User{Username: "other", PasswordHash: "hash"}
	testDB.Create(other)

	item, err := cartService.AddToCart(other.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	updated, err := cartService.UpdateQuantity(user.ID, item.ID, 2)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
	assert.Nil(t, updated)
}

func TestCartService_RemoveFromCart(t *testing.T) {
	cartService, user, product, _ := setupCartServiceTest(t)

	item, err := cartService.AddToCart(user.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	err = cartService.RemoveFromCart(user.ID, item.ID)
	assert.NoError(t, err)

	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 0)
}

func TestCartService_RemoveFromCart_MissingIDIsNoop(t *testing.T) {
	cartService, user, _, _ := setupCartServiceTest(t)

	err := cartService.RemoveFromCart(user.ID, 99999)
	assert.NoError(t, err)
}

func TestCartService_RemoveFromCart_OtherUsersItemIsNoop(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	other := &model.User{Username: "other", PasswordHash: "hash"}
	testDB.Create(other)

	item, err := cartService.AddToCart(other.ID, product.ID, 1, "", "")
	require.NoError(t, err)

	err = cartService.RemoveFromCart(user.ID, item.ID)
	assert.NoError(t, err)

	// Still there for its owner
	items, _ := cartService.GetUserCart(other.ID)
	assert.Len(t, items, 1)
}

func TestCartService_ClearCart(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	second := &model.Product{
		Name:       "Classic White Shirt",
		Slug:       "classic-white-shirt",
		Price:      999,
		CategoryID: 1,
	}
	testDB.Create(second)

	_, err := cartService.AddToCart(user.ID, product.ID, 1, "", "")
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, second.ID, 2, "", "")
	require.NoError(t, err)

	err = cartService.ClearCart(user.ID)
	assert.NoError(t, err)

	items, _ := cartService.GetUserCart(user.ID)
	assert.Len(t, items, 0)
}

func TestCartService_Subtotal(t *testing.T) {
	cartService, user, product, testDB := setupCartServiceTest(t)

	second := &model.Product{
		Name:       "Classic White Shirt",
		Slug:       "classic-white-shirt",
		Price:      999,
		CategoryID: 1,
	}
	testDB.Create(second)

	_, err := cartService.AddToCart(user.ID, product.ID, 2, "", "")
	require.NoError(t, err)
	_, err = cartService.AddToCart(user.ID, second.ID, 1, "", "")
	require.NoError(t, err)

	items, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)

	subtotal, err := cartService.Subtotal(items)
	assert.NoError(t, err)
	assert.Equal(t, 2*1999.0+999.0, subtotal)
	assert.Equal(t, 3, cartService.ItemCount(items))
}

func TestCartService_Subtotal_MissingProductIsIntegrityError(t *testing.T) {
	cartService, _, product, _ := setupCartServiceTest(t)

	// A line whose product no longer resolves
	items := []model.CartItem{
		{ID: 1, ProductID: product.ID, Quantity: 1},
	}

	_, err := cartService.Subtotal(items)
	assert.ErrorIs(t, err, ErrCartIntegrity)
}
