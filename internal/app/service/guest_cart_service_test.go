package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/internal/app/repository"
	"github.com/attirelabs/attire-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryGuestCartRepo keeps carts in a map, round-tripping through JSON the
// way the Redis-backed repository does.
type memoryGuestCartRepo struct {
	carts map[string][]byte
}

func newMemoryGuestCartRepo() *memoryGuestCartRepo {
	return &memoryGuestCartRepo{carts: make(map[string][]byte)}
}

func (r *memoryGuestCartRepo) Get(_ context.Context, token string) (*model.GuestCart, error) {
	data, ok := r.carts[token]
	if !ok {
		return &model.GuestCart{Token: token, Items: []model.GuestCartItem{}}, nil
	}
	var cart model.GuestCart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *memoryGuestCartRepo) Save(_ context.Context, cart *model.GuestCart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	r.carts[cart.Token] = data
	return nil
}

func (r *memoryGuestCartRepo) Delete(_ context.Context, token string) error {
	delete(r.carts, token)
	return nil
}

func setupGuestCartServiceTest(t *testing.T) (GuestCartService, CartService, *memoryGuestCartRepo, *model.User, *model.Product, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	cartService := NewCartService(cartRepo, productRepo)

	guestCartRepo := newMemoryGuestCartRepo()
	guestCartService := NewGuestCartService(guestCartRepo, productRepo, cartService)

	user := &model.User{
		Username:     "shopper",
		PasswordHash: "hash",
	}
	testDB.Create(user)

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

	return guestCartService, cartService, guestCartRepo, user, product, testDB
}

func TestGuestCartService_GetCart_Empty(t *testing.T) {
	guestCartService, _, _, _, _, _ := setupGuestCartServiceTest(t)

	cart, err := guestCartService.GetCart(context.Background(), "token-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", cart.Token)
	assert.Empty(t, cart.Items)
}

func TestGuestCartService_AddItem_MergesDuplicate(t *testing.T) {
	guestCartService, _, _, _, product, _ := setupGuestCartServiceTest(t)
	ctx := context.Background()

	_, err := guestCartService.AddItem(ctx, "token-1", product.ID, 1, "M", "Floral")
	require.NoError(t, err)

	cart, err := guestCartService.AddItem(ctx, "token-1", product.ID, 2, "L", "White")
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	// Size and color stay from the first add
	assert.Equal(t, "M", cart.Items[0].Size)
	assert.Equal(t, "Floral", cart.Items[0].Color)
}

func TestGuestCartService_AddItem_ProductNotFound(t *testing.T) {
	guestCartService, _, _, _, _, _ := setupGuestCartServiceTest(t)

	_, err := guestCartService.AddItem(context.Background(), "token-1", 9999, 1, "", "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGuestCartService_AddItem_InvalidQuantity(t *testing.T) {
	guestCartService, _, _, _, product, _ := setupGuestCartServiceTest(t)

	_, err := guestCartService.AddItem(context.Background(), "token-1", product.ID, 0, "", "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = guestCartService.AddItem(context.Background(), "token-1", product.ID, -2, "", "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestGuestCartService_UpdateItem_Success(t *testing.T) {
	guestCartService, _, _, _, product, _ := setupGuestCartServiceTest(t)
	ctx := context.Background()

	_, err := guestCartService.AddItem(ctx, "token-1", product.ID, 1, "M", "")
	require.NoError(t, err)

	cart, err := guestCartService.UpdateItem(ctx, "token-1", product.ID, 5)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestGuestCartService_UpdateItem_NotFound(t *testing.T) {
	guestCartService, _, _, _, product, _ := setupGuestCartServiceTest(t)

	_, err := guestCartService.UpdateItem(context.Background(), "token-1", product.ID, 2)
	assert.ErrorIs(t, err, ErrGuestCartItemNotFound)
}

func TestGuestCartService_RemoveItem_Success(t *testing.T) {
	guestCartService, _, _, _, product, _ := setupGuestCartServiceTest(t)
	ctx := context.Background()

	_, err := guestCartService.AddItem(ctx, "token-1", product.ID, 2, "", "")
	require.NoError(t, err)

	cart, err := guestCartService.RemoveItem(ctx, "token-1", product.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGuestCartService_RemoveItem_MissingProductIsNoOp(t *testing.T) {
	guestCartService, _, _, _, product, _ := setupGuestCartServiceTest(t)
	ctx := context.Background()

	_, err := guestCartService.AddItem(ctx, "token-1", product.ID, 2, "", "")
	require.NoError(t, err)

	cart, err := guestCartService.RemoveItem(ctx, "token-1", 9999)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestGuestCartService_MergeIntoUserCart(t *testing.T) {
	guestCartService, cartService, guestCartRepo, user, product, _ := setupGuestCartServiceTest(t)
	ctx := context.Background()

	// User already carries one line of the same product
	_, err := cartService.AddToCart(user.ID, product.ID, 1, "M", "")
	require.NoError(t, err)

	_, err = guestCartService.AddItem(ctx, "token-1", product.ID, 3, "L", "")
	require.NoError(t, err)

	err = guestCartService.MergeIntoUserCart(ctx, "token-1", user.ID)
	require.NoError(t, err)

	items, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// Token is discarded after the merge
	_, stored := guestCartRepo.carts["token-1"]
	assert.False(t, stored)
}

func TestGuestCartService_MergeIntoUserCart_DropsMissingProducts(t *testing.T) {
	guestCartService, cartService, guestCartRepo, user, product, _ := setupGuestCartServiceTest(t)
	ctx := context.Background()

	_, err := guestCartService.AddItem(ctx, "token-1", product.ID, 2, "", "")
	require.NoError(t, err)

	// Inject a line whose product has since left the catalog
	cart, err := guestCartRepo.Get(ctx, "token-1")
	require.NoError(t, err)
	cart.Items = append(cart.Items, model.GuestCartItem{ProductID: 9999, Quantity: 1})
	require.NoError(t, guestCartRepo.Save(ctx, cart))

	err = guestCartService.MergeIntoUserCart(ctx, "token-1", user.ID)
	require.NoError(t, err)

	items, err := cartService.GetUserCart(user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
}
