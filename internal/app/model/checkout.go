package model

// OrderSummary is the priced view of a cart at checkout. Amounts are whole
// rupees; Total = Subtotal + Shipping + Tax.
type OrderSummary struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

// OrderConfirmation is returned after a simulated order placement. No order
// record is persisted; OrderNumber is a display reference only.
type OrderConfirmation struct {
	OrderNumber string       `json:"order_number"`
	Summary     OrderSummary `json:"summary"`
}
