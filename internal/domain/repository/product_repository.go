package repository

import (
	"context"
	"errors"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
)

var ErrProductNotFound = errors.New("product not found")

// ProductFilter describes a catalog browse query. Page and Limit are
// 1-based and already clamped by the caller.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
	SortBy   string // created_at, price, title
	SortAsc  bool
}

// ProductRepository defines catalog persistence operations.
// Reads expand the owner reference to {username, email}.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, f ProductFilter) ([]entity.Product, int64, error)
	// ListSimilar returns up to limit products sharing a category, excluding one id.
	ListSimilar(ctx context.Context, category, excludeID string, limit int) ([]entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
