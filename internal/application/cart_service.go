package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

// CartService manages the per-user cart with merge-on-add lines and
// live-price totals.
type CartService struct {
	Carts    repo.CartRepository
	Products repo.ProductRepository
	Logger   *logrus.Logger
}

func NewCartService(carts repo.CartRepository, products repo.ProductRepository, logger *logrus.Logger) *CartService {
	return &CartService{Carts: carts, Products: products, Logger: logger}
}

// Add puts quantity units of a product into the user's cart, creating the
// cart lazily and merging into an existing line for the same product.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*entity.Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.Products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	if err := s.Carts.AddItem(ctx, userID, productID, quantity); err != nil {
		return nil, err
	}
	return s.view(ctx, userID)
}

// Get returns the subject's cart with live-product expansion and derived
// totals. A user without a cart gets the synthetic empty shape, not an error.
func (s *CartService) Get(ctx context.Context, actorID, subjectID string) (*entity.Cart, error) {
	if actorID != subjectID {
		return nil, ErrForbidden
	}
	cart, err := s.view(ctx, subjectID)
	if errors.Is(err, repo.ErrCartNotFound) {
		return entity.EmptyCart(subjectID), nil
	}
	return cart, err
}

// Remove deletes the line for productID from the subject's cart.
func (s *CartService) Remove(ctx context.Context, actorID, subjectID, productID string) (*entity.Cart, error) {
	if actorID != subjectID {
		return nil, ErrForbidden
	}
	if err := s.Carts.RemoveItem(ctx, subjectID, productID); err != nil {
		return nil, err
	}
	return s.view(ctx, subjectID)
}

func (s *CartService) view(ctx context.Context, userID string) (*entity.Cart, error) {
	v, err := s.Carts.GetView(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := &entity.Cart{ID: v.ID, UserID: v.UserID, Items: make([]entity.CartItem, 0, len(v.Lines))}
	for _, l := range v.Lines {
		cart.Items = append(cart.Items, entity.CartItem{
			ProductID: l.ProductID,
			Title:     l.Title,
			Price:     l.Price,
			Image:     l.Image,
			Category:  l.Category,
			OwnerID:   l.OwnerID,
			Quantity:  l.Quantity,
		})
	}
	cart.Recalculate()
	return cart, nil
}
