package repository

import (
	"context"
	"errors"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
)

var ErrCartEmpty = errors.New("cart is empty")

// PurchaseSummary aggregates a user's full purchase history.
type PurchaseSummary struct {
	TotalOrders int64   `json:"total_orders"`
	TotalSpent  float64 `json:"total_spent"`
}

// PurchaseRepository persists immutable checkout records.
type PurchaseRepository interface {
	// Checkout snapshots the user's cart lines at their current product
	// prices, stores the purchase, and deletes the cart, all within a
	// single transaction. Returns ErrCartEmpty when the cart is absent
	// or has no lines.
	Checkout(ctx context.Context, userID string) (*entity.Purchase, error)
	// ListByUser returns one page of purchases, newest first, plus the
	// total number of purchases for the user.
	ListByUser(ctx context.Context, userID string, page, limit int) ([]entity.Purchase, int64, error)
	// Summary aggregates order count and lifetime spend over all purchases.
	Summary(ctx context.Context, userID string) (PurchaseSummary, error)
}
