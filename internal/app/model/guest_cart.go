package model

import "time"

// GuestCartItem is one line in an anonymous shopper's cart, stored in Redis
// keyed by an opaque cart token. The merge rule matches CartItem: one line
// per product, quantities summed, size and color taken from the first add.
type GuestCartItem struct {
	ProductID uint      `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	AddedAt   time.Time `json:"added_at"`
}

// GuestCart is the full Redis payload for one cart token.
type GuestCart struct {
	Token     string          `json:"token"`
	Items     []GuestCartItem `json:"items"`
	UpdatedAt time.Time       `json:"updated_at"`
}
