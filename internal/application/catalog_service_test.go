package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	repo "github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

func newCatalogFixture(t *testing.T) (*CatalogService, *mockProductRepo) {
	t.Helper()
	products := newMockProductRepo()
	return NewCatalogService(products, nil, nil, "", nil, ""), products
}

func TestCatalogCreateSetsOwner(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	p, err := svc.Create(context.Background(), "seller-1", ProductInput{
		Title: "Old radio", Description: "still works", Category: "electronics", Price: 40, Image: "http://img",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "seller-1", p.OwnerID)
}

func TestCatalogUpdateOwnerOnly(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()
	p := seedProduct(t, products, "Chair", "home", 30)

	_, err := svc.Update(ctx, p.ID, "someone-else", ProductInput{
		Title: "Chair", Description: "padded seat", Category: "home", Price: 35, Image: "http://img",
	})
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.Update(ctx, p.ID, "seller-1", ProductInput{
		Title: "Chair deluxe", Description: "padded seat", Category: "home", Price: 35, Image: "http://img",
	})
	require.NoError(t, err)
	assert.Equal(t, "Chair deluxe", updated.Title)
	assert.Equal(t, 35.0, updated.Price)
}

func TestCatalogDeleteOwnerOnly(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()
	p := seedProduct(t, products, "Skates", "sports", 55)

	assert.ErrorIs(t, svc.Delete(ctx, p.ID, "someone-else"), ErrForbidden)

	require.NoError(t, svc.Delete(ctx, p.ID, "seller-1"))
	_, err := svc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestCatalogGetUnknown(t *testing.T) {
	svc, _ := newCatalogFixture(t)
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repo.ErrProductNotFound)
}

func TestCatalogListClampsPaging(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		seedProduct(t, products, "Toy", "toys", 5)
	}

	_, meta, err := svc.List(ctx, ListQuery{Page: -5, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, meta.Current)
	assert.Equal(t, 1, products.lastList.Page)
	assert.Equal(t, DefaultPageLimit, products.lastList.Limit)

	_, _, err = svc.List(ctx, ListQuery{Page: 1, Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, products.lastList.Limit)
}

func TestCatalogListFiltersCategory(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()
	seedProduct(t, products, "Novel", "books", 8)
	seedProduct(t, products, "Drill", "other", 60)

	items, meta, err := svc.List(ctx, ListQuery{Category: "books"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Novel", items[0].Title)
	assert.Equal(t, int64(1), meta.Total)
}

func TestCatalogRecommendFallsBackWithoutES(t *testing.T) {
	svc, products := newCatalogFixture(t)
	ctx := context.Background()
	p := seedProduct(t, products, "Laptop", "electronics", 700)
	seedProduct(t, products, "Tablet", "electronics", 250)
	seedProduct(t, products, "Jacket", "clothing", 45)

	out, err := svc.Recommend(ctx, p.ID, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Tablet", out[0].Title)
	for _, r := range out {
		assert.NotEqual(t, p.ID, r.ID, "never recommends the product itself")
	}
}
