package repository

import (
	"context"
	"errors"
)

var ErrCartNotFound = errors.New("cart not found")

// CartRepository persists one cart per user with merge-on-add line semantics.
type CartRepository interface {
	// AddItem lazily creates the user's cart and inserts the line, or
	// increments the quantity when a line for the product already exists.
	// Line insertion order is preserved; increments do not reorder.
	AddItem(ctx context.Context, userID, productID string, quantity int) error
	// GetView loads the cart with each line expanded against the live
	// product record. Returns ErrCartNotFound when the user has no cart.
	GetView(ctx context.Context, userID string) (*CartView, error)
	// RemoveItem deletes the line for productID from the user's cart.
	// Returns ErrCartNotFound when the user has no cart.
	RemoveItem(ctx context.Context, userID, productID string) error
}

// CartView is the raw expanded cart before totals are derived.
type CartView struct {
	ID     string
	UserID string
	Lines  []CartLine
}

// CartLine joins a stored line with current product fields.
type CartLine struct {
	ProductID string
	Title     string
	Price     float64
	Image     string
	Category  string
	OwnerID   string
	Quantity  int
}
