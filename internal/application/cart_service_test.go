package application

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

func newCartFixture(t *testing.T) (*CartService, *mockProductRepo, *mockCartRepo) {
	t.Helper()
	products := newMockProductRepo()
	carts := newMockCartRepo(products)
	return NewCartService(carts, products, nil), products, carts
}

func seedProduct(t *testing.T, products *mockProductRepo, title, category string, price float64) *entity.Product {
	t.Helper()
	p := &entity.Product{Title: title, Description: "desc", Category: category, Price: price, OwnerID: "seller-1"}
	require.NoError(t, products.Create(context.Background(), p))
	return p
}

func TestCartAddMergesExistingLine(t *testing.T) {
	svc, products, _ := newCartFixture(t)
	ctx := context.Background()
	p := seedProduct(t, products, "Lamp", "home", 25)

	cart, err := svc.Add(ctx, "buyer-1", p.ID, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = svc.Add(ctx, "buyer-1", p.ID, 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1, "same product must merge into one line")
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 5, cart.TotalItems)
	assert.Equal(t, 125.0, cart.TotalAmount)
}

func TestCartAddDefaultsQuantityToOne(t *testing.T) {
	svc, products, _ := newCartFixture(t)
	p := seedProduct(t, products, "Mug", "home", 5)

	cart, err := svc.Add(context.Background(), "buyer-1", p.ID, 0)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartAddUnknownProduct(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	_, err := svc.Add(context.Background(), "buyer-1", "missing", 1)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestCartGetWithoutCartReturnsEmptyShape(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	cart, err := svc.Get(context.Background(), "buyer-1", "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, "buyer-1", cart.UserID)
	assert.NotNil(t, cart.Items, "items must serialize as [], not null")
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalItems)
	assert.Zero(t, cart.TotalAmount)
}

func TestCartGetDeniedForOtherUser(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	_, err := svc.Get(context.Background(), "buyer-1", "buyer-2")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCartTotalsFollowLivePrice(t *testing.T) {
	svc, products, _ := newCartFixture(t)
	ctx := context.Background()
	p := seedProduct(t, products, "Bike", "sports", 100)

	cart, err := svc.Add(ctx, "buyer-1", p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 200.0, cart.TotalAmount)

	p.Price = 80
	require.NoError(t, products.Update(ctx, p))

	cart, err = svc.Get(ctx, "buyer-1", "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, 160.0, cart.TotalAmount, "cart reprices against the live product")
}

func TestCartRemoveLine(t *testing.T) {
	svc, products, _ := newCartFixture(t)
	ctx := context.Background()
	a := seedProduct(t, products, "Book A", "books", 10)
	b := seedProduct(t, products, "Book B", "books", 15)

	_, err := svc.Add(ctx, "buyer-1", a.ID, 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "buyer-1", b.ID, 2)
	require.NoError(t, err)

	cart, err := svc.Remove(ctx, "buyer-1", "buyer-1", a.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, b.ID, cart.Items[0].ProductID)

	// removing an absent line is a no-op
	cart, err = svc.Remove(ctx, "buyer-1", "buyer-1", a.ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestCartRemoveWithoutCart(t *testing.T) {
	svc, _, _ := newCartFixture(t)
	_, err := svc.Remove(context.Background(), "buyer-1", "buyer-1", "prod-1")
	assert.ErrorIs(t, err, repo.ErrCartNotFound)
}

func TestProperty_RepeatedAddsKeepOneLine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("n adds of one product produce one line whose quantity is the sum", prop.ForAll(
		func(quantities []int) bool {
			svc, products, _ := newCartFixture(t)
			ctx := context.Background()
			p := seedProduct(t, products, "Widget", "other", 9.5)

			want := 0
			var cart *entity.Cart
			var err error
			for _, q := range quantities {
				cart, err = svc.Add(ctx, "buyer-1", p.ID, q)
				if err != nil {
					return false
				}
				if q < 1 {
					q = 1
				}
				want += q
			}
			if len(quantities) == 0 {
				return true
			}
			return len(cart.Items) == 1 &&
				cart.Items[0].Quantity == want &&
				cart.TotalItems == want
		},
		gen.SliceOf(gen.IntRange(0, 10)),
	))

	properties.TestingRun(t)
}
