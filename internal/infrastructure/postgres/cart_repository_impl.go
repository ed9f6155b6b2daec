package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func (r *CartRepository) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID string
	// Lazily create the cart; the upsert keeps one row per user.
	err = tx.QueryRow(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, userID).Scan(&cartID)
	if err != nil {
		return err
	}

	// Merge-on-add: an existing line is incremented atomically, so
	// concurrent adds for the same product cannot lose an increment.
	// The original line id is kept, preserving insertion order.
	_, err = tx.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`, cartID, productID, quantity)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *CartRepository) GetView(ctx context.Context, userID string) (*repository.CartView, error) {
	view := &repository.CartView{UserID: userID, Lines: []repository.CartLine{}}
	err := r.pool.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&view.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCartNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ci.product_id, p.title, p.price, p.image, p.category, p.owner_id, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, view.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l repository.CartLine
		if err := rows.Scan(&l.ProductID, &l.Title, &l.Price, &l.Image,
			&l.Category, &l.OwnerID, &l.Quantity); err != nil {
			return nil, err
		}
		view.Lines = append(view.Lines, l)
	}
	return view, rows.Err()
}

func (r *CartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	var cartID string
	err := r.pool.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.ErrCartNotFound
		}
		return err
	}
	// Removing a line that is not present is a no-op, matching the
	// filter-out semantics of the cart contract.
	_, err = r.pool.Exec(ctx, `
		DELETE FROM cart_items WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	return err
}

var _ repository.CartRepository = (*CartRepository)(nil)
