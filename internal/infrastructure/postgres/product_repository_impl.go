package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecofinds/ecofinds-api/internal/domain/entity"
	"github.com/ecofinds/ecofinds-api/internal/domain/repository"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// sortColumns whitelists client-supplied sort fields. Both the snake_case
// column names and the camelCase query aliases are accepted.
var sortColumns = map[string]string{
	"created_at": "p.created_at",
	"createdAt":  "p.created_at",
	"price":      "p.price",
	"title":      "p.title",
}

const productColumns = `
	p.id, p.title, p.description, p.category, p.price, p.image,
	p.owner_id, u.username, u.email, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	p := &entity.Product{Owner: &entity.Owner{}}
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price,
		&p.Image, &p.OwnerID, &p.Owner.Username, &p.Owner.Email,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Owner.ID = p.OwnerID
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if p.Image == "" {
		p.Image = entity.PlaceholderImage
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (title, description, category, price, image, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Description, p.Category, p.Price, p.Image, p.OwnerID)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	return r.expandOwner(ctx, p)
}

func (r *ProductRepository) expandOwner(ctx context.Context, p *entity.Product) error {
	owner := &entity.Owner{ID: p.OwnerID}
	row := r.pool.QueryRow(ctx, `SELECT username, email FROM users WHERE id = $1`, p.OwnerID)
	if err := row.Scan(&owner.Username, &owner.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Orphaned owner references are tolerated on reads.
			return nil
		}
		return err
	}
	p.Owner = owner
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, int64, error) {
	where := "TRUE"
	args := []any{}
	if f.Category != "" {
		args = append(args, f.Category)
		where += fmt.Sprintf(" AND p.category = $%d", len(args))
	}
	if f.Search != "" {
		args = append(args, f.Search)
		where += fmt.Sprintf(" AND p.search @@ websearch_to_tsquery('english', $%d)", len(args))
	}

	var total int64
	countQ := "SELECT count(*) FROM products p WHERE " + where
	if err := r.pool.QueryRow(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "p.created_at"
	}
	dir := "DESC"
	if f.SortAsc {
		dir = "ASC"
	}

	args = append(args, f.Limit, (f.Page-1)*f.Limit)
	listQ := fmt.Sprintf(`
		SELECT%s
		FROM products p
		JOIN users u ON u.id = p.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, productColumns, where, col, dir, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQ, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Product, 0, f.Limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	return out, total, rows.Err()
}

func (r *ProductRepository) ListSimilar(ctx context.Context, category, excludeID string, limit int) ([]entity.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT`+productColumns+`
		FROM products p
		JOIN users u ON u.id = p.owner_id
		WHERE p.category = $1 AND p.id <> $2
		ORDER BY p.created_at DESC
		LIMIT $3
	`, category, excludeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if p.Image == "" {
		p.Image = entity.PlaceholderImage
	}
	p.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE products
		SET title = $1, description = $2, category = $3, price = $4, image = $5, updated_at = $6
		WHERE id = $7
	`, p.Title, p.Description, p.Category, p.Price, p.Image, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrProductNotFound
	}
	return r.expandOwner(ctx, p)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrProductNotFound
	}
	return nil
}

var _ repository.ProductRepository = (*ProductRepository)(nil)
