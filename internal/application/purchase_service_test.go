package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

type purchaseFixture struct {
	users     *mockUserRepo
	products  *mockProductRepo
	carts     *mockCartRepo
	purchases *mockPurchaseRepo
	cartSvc   *CartService
	svc       *PurchaseService
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()
	users := newMockUserRepo()
	products := newMockProductRepo()
	carts := newMockCartRepo(products)
	purchases := newMockPurchaseRepo(carts)
	return &purchaseFixture{
		users:     users,
		products:  products,
		carts:     carts,
		purchases: purchases,
		cartSvc:   NewCartService(carts, products, nil),
		svc:       NewPurchaseService(purchases, users, nil, nil, false),
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newPurchaseFixture(t)
	_, err := f.svc.Checkout(context.Background(), "buyer-1")
	assert.ErrorIs(t, err, repo.ErrCartEmpty)
}

func TestCheckoutSnapshotsAndClearsCart(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()
	p := seedProduct(t, f.products, "Camera", "electronics", 300)
	_, err := f.cartSvc.Add(ctx, "buyer-1", p.ID, 2)
	require.NoError(t, err)

	purchase, err := f.svc.Checkout(ctx, "buyer-1")
	require.NoError(t, err)
	require.Len(t, purchase.Items, 1)
	assert.Equal(t, p.ID, purchase.Items[0].ProductID)
	assert.Equal(t, "Camera", purchase.Items[0].Title)
	assert.Equal(t, "electronics", purchase.Items[0].Category)
	assert.Equal(t, 300.0, purchase.Items[0].Price)
	assert.Equal(t, 2, purchase.Items[0].Quantity)
	assert.Equal(t, 600.0, purchase.TotalAmount)
	assert.False(t, purchase.PurchasedAt.IsZero())

	// cart is gone: reading it back yields the empty shape
	cart, err := f.cartSvc.Get(ctx, "buyer-1", "buyer-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// a second checkout finds nothing to buy
	_, err = f.svc.Checkout(ctx, "buyer-1")
	assert.ErrorIs(t, err, repo.ErrCartEmpty)
}

func TestCheckoutSnapshotSurvivesPriceChange(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()
	p := seedProduct(t, f.products, "Desk", "home", 150)
	_, err := f.cartSvc.Add(ctx, "buyer-1", p.ID, 1)
	require.NoError(t, err)

	purchase, err := f.svc.Checkout(ctx, "buyer-1")
	require.NoError(t, err)

	p.Price = 999
	require.NoError(t, f.products.Update(ctx, p))

	history, _, _, err := f.svc.History(ctx, "buyer-1", "buyer-1", 1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 150.0, history[0].Items[0].Price, "purchase keeps the price at checkout time")
	assert.Equal(t, purchase.TotalAmount, history[0].TotalAmount)
}

func TestHistoryDeniedForOtherUser(t *testing.T) {
	f := newPurchaseFixture(t)
	_, _, _, err := f.svc.History(context.Background(), "buyer-1", "buyer-2", 1, 10)
	assert.ErrorIs(t, err, ErrForbidden)
}

// Full flow: seller lists an item, buyer carts and buys it, seller deletes
// the listing, buyer's history is unaffected.
func TestPurchaseHistorySurvivesListingDeletion(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()
	catalog := NewCatalogService(f.products, nil, nil, "", nil, "")

	brush, err := catalog.Create(ctx, "seller-a", ProductInput{
		Title: "Bamboo Brush", Description: "gently used", Category: "beauty", Price: 499, Image: "http://img",
	})
	require.NoError(t, err)

	cart, err := f.cartSvc.Add(ctx, "buyer-b", brush.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 998.0, cart.TotalAmount)

	purchase, err := f.svc.Checkout(ctx, "buyer-b")
	require.NoError(t, err)
	assert.Equal(t, 998.0, purchase.TotalAmount)

	cart, err = f.cartSvc.Get(ctx, "buyer-b", "buyer-b")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	require.NoError(t, catalog.Delete(ctx, brush.ID, "seller-a"))

	history, _, _, err := f.svc.History(ctx, "buyer-b", "buyer-b", 1, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Len(t, history[0].Items, 1)
	assert.Equal(t, "Bamboo Brush", history[0].Items[0].Title)
	assert.Equal(t, 499.0, history[0].Items[0].Price)
	assert.Equal(t, 998.0, history[0].TotalAmount)
}

func TestHistoryPaginationAndSummary(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()
	p := seedProduct(t, f.products, "Poster", "other", 10)

	for i := 0; i < 15; i++ {
		_, err := f.cartSvc.Add(ctx, "buyer-1", p.ID, 1)
		require.NoError(t, err)
		_, err = f.svc.Checkout(ctx, "buyer-1")
		require.NoError(t, err)
	}

	page1, meta, summary, err := f.svc.History(ctx, "buyer-1", "buyer-1", 1, 10)
	require.NoError(t, err)
	assert.Len(t, page1, 10)
	assert.Equal(t, 1, meta.Current)
	assert.Equal(t, 2, meta.Pages)
	assert.Equal(t, int64(15), meta.Total)
	assert.True(t, meta.HasNext)
	assert.False(t, meta.HasPrev)

	page2, meta, _, err := f.svc.History(ctx, "buyer-1", "buyer-1", 2, 10)
	require.NoError(t, err)
	assert.Len(t, page2, 5)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	assert.Equal(t, int64(15), summary.TotalOrders)
	assert.Equal(t, 150.0, summary.TotalSpent)
}
