package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/attirelabs/attire-backend/internal/app/model"
	"github.com/attirelabs/attire-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const guestCartKeyPrefix = "guest_cart:"

// GuestCartRepository stores anonymous carts in Redis as JSON blobs keyed by
// cart token. Entries expire after the configured TTL; every write refreshes it.
type GuestCartRepository interface {
	Get(ctx context.Context, token string) (*model.GuestCart, error)
	Save(ctx context.Context, cart *model.GuestCart) error
	Delete(ctx context.Context, token string) error
}

type guestCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGuestCartRepository(client *redis.Client, ttl time.Duration) GuestCartRepository {
	return &guestCartRepository{client: client, ttl: ttl}
}

func guestCartKey(token string) string {
	return guestCartKeyPrefix + token
}

// Get returns the cart for the token, or an empty cart when the token has
// no entry yet.
func (r *guestCartRepository) Get(ctx context.Context, token string) (*model.GuestCart, error) {
	logger.Debug("Fetching guest cart from Redis", map[string]interface{}{
		"token": token,
	})

	data, err := r.client.Get(ctx, guestCartKey(token)).Result()
	if err == redis.Nil {
		return &model.GuestCart{Token: token, Items: []model.GuestCartItem{}}, nil
	}
	if err != nil {
		logger.Error("Failed to fetch guest cart from Redis", err, map[string]interface{}{
			"token": token,
		})
		return nil, err
	}

	var cart model.GuestCart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		logger.Error("Failed to decode guest cart payload", err, map[string]interface{}{
			"token": token,
		})
		return nil, fmt.Errorf("decode guest cart: %w", err)
	}

	logger.Debug("Guest cart fetched from Redis", map[string]interface{}{
		"token": token,
		"count": len(cart.Items),
	})
	return &cart, nil
}

func (r *guestCartRepository) Save(ctx context.Context, cart *model.GuestCart) error {
	logger.Debug("Saving guest cart to Redis", map[string]interface{}{
		"token": cart.Token,
		"count": len(cart.Items),
	})

	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		logger.Error("Failed to encode guest cart payload", err, map[string]interface{}{
			"token": cart.Token,
		})
		return fmt.Errorf("encode guest cart: %w", err)
	}

	if err := r.client.Set(ctx, guestCartKey(cart.Token), data, r.ttl).Err(); err != nil {
		logger.Error("Failed to save guest cart to Redis", err, map[string]interface{}{
			"token": cart.Token,
		})
		return err
	}

	return nil
}

func (r *guestCartRepository) Delete(ctx context.Context, token string) error {
	logger.Debug("Deleting guest cart from Redis", map[string]interface{}{
		"token": token,
	})

	if err := r.client.Del(ctx, guestCartKey(token)).Err(); err != nil {
		logger.Error("Failed to delete guest cart from Redis", err, map[string]interface{}{
			"token": token,
		})
		return err
	}

	return nil
}
