package entity

import (
	"time"
)

// PurchaseItem is a denormalized line captured at checkout time.
// Title and price are frozen copies; ProductID is kept for traceability only.
type PurchaseItem struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Purchase is an immutable record of a completed checkout.
type Purchase struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Items       []PurchaseItem `json:"items"`
	TotalAmount float64        `json:"total_amount"`
	PurchasedAt time.Time      `json:"purchased_at"`
}
