package products

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/shared"
)

// Repository persists products. Every query carries the owning user's
// id, so ids leaked from another account resolve to ErrNotFound.
type Repository interface {
	List(ctx context.Context, userID string) ([]Product, error)
	Get(ctx context.Context, userID, id string) (*Product, error)
	Create(ctx context.Context, product Product) error
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, user_id, name, image_urls, price, stock, sales, created_at, updated_at`

func (r *repository) List(ctx context.Context, userID string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *product)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, userID, id string) (*Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

func (r *repository) Create(ctx context.Context, product Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, user_id, name, image_urls, price, stock, sales, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
	`, product.ID, product.UserID, product.Name, product.ImageURLs,
		product.Price.String(), product.Stock, product.Sales, time.Now().UTC())
	return err
}

func (r *repository) Update(ctx context.Context, product Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, image_urls = $3, price = $4, stock = $5, sales = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $7
	`, product.ID, product.Name, product.ImageURLs, product.Price.String(), product.Stock,
		product.Sales, product.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	var price pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.ImageURLs, &price, &p.Stock, &p.Sales, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if price.Valid {
		value, err := price.Value()
		if err == nil {
			if str, ok := value.(string); ok {
				if parsed, err := decimal.NewFromString(str); err == nil {
					p.Price = parsed
				}
			}
		}
	}
	if createdAt.Valid {
		p.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		p.UpdatedAt = updatedAt.Time
	}
	return &p, nil
}
