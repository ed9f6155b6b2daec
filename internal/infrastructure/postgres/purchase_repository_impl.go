package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	"github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

type PurchaseRepository struct {
	pool *pgxpool.Pool
}

func NewPurchaseRepository(pool *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{pool: pool}
}

// Checkout runs the whole cart-to-purchase transition in one transaction:
// snapshot lines at current prices, insert the purchase, delete the cart.
// A crash can never leave both a purchase and a non-empty cart behind.
func (r *PurchaseRepository) Checkout(ctx context.Context, userID string) (*entity.Purchase, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var cartID string
	err = tx.QueryRow(ctx, `SELECT id FROM carts WHERE user_id = $1 FOR UPDATE`, userID).Scan(&cartID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrCartEmpty
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT ci.product_id, p.title, p.category, p.price, ci.quantity
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{UserID: userID, Items: []entity.PurchaseItem{}}
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ProductID, &it.Title, &it.Category, &it.Price, &it.Quantity); err != nil {
			rows.Close()
			return nil, err
		}
		purchase.TotalAmount += it.Price * float64(it.Quantity)
		purchase.Items = append(purchase.Items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(purchase.Items) == 0 {
		return nil, repository.ErrCartEmpty
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO purchases (user_id, total_amount)
		VALUES ($1, $2)
		RETURNING id, purchased_at
	`, purchase.UserID, purchase.TotalAmount).Scan(&purchase.ID, &purchase.PurchasedAt)
	if err != nil {
		return nil, err
	}

	for _, it := range purchase.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO purchase_items (purchase_id, product_id, title, category, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, purchase.ID, it.ProductID, it.Title, it.Category, it.Price, it.Quantity); err != nil {
			return nil, err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID string, page, limit int) ([]entity.Purchase, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM purchases WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, total_amount, purchased_at
		FROM purchases
		WHERE user_id = $1
		ORDER BY purchased_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	purchases := make([]entity.Purchase, 0, limit)
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.TotalAmount, &p.PurchasedAt); err != nil {
			return nil, 0, err
		}
		p.Items = []entity.PurchaseItem{}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.loadItems(ctx, purchases); err != nil {
		return nil, 0, err
	}
	return purchases, total, nil
}

func (r *PurchaseRepository) loadItems(ctx context.Context, purchases []entity.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}
	ids := make([]string, len(purchases))
	byID := make(map[string]*entity.Purchase, len(purchases))
	for i := range purchases {
		ids[i] = purchases[i].ID
		byID[purchases[i].ID] = &purchases[i]
	}

	rows, err := r.pool.Query(ctx, `
		SELECT purchase_id, product_id, title, category, price, quantity
		FROM purchase_items
		WHERE purchase_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var pid string
		var it entity.PurchaseItem
		if err := rows.Scan(&pid, &it.ProductID, &it.Title, &it.Category, &it.Price, &it.Quantity); err != nil {
			return err
		}
		if p, ok := byID[pid]; ok {
			p.Items = append(p.Items, it)
		}
	}
	return rows.Err()
}

func (r *PurchaseRepository) Summary(ctx context.Context, userID string) (repository.PurchaseSummary, error) {
	var s repository.PurchaseSummary
	err := r.pool.QueryRow(ctx, `
		SELECT count(*), COALESCE(sum(total_amount), 0)
		FROM purchases
		WHERE user_id = $1
	`, userID).Scan(&s.TotalOrders, &s.TotalSpent)
	return s, err
}

var _ repository.PurchaseRepository = (*PurchaseRepository)(nil)
