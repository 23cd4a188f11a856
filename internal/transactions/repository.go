package transactions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/shared"
)

// Repository persists transactions. Reads and writes are both scoped
// to the owning user, so a guessed id from another account resolves to
// ErrNotFound.
type Repository interface {
	List(ctx context.Context, userID string) ([]Transaction, error)
	Get(ctx context.Context, userID, id string) (*Transaction, error)
	Update(ctx context.Context, tx Transaction) error
	SetStatus(ctx context.Context, userID, id, status string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const transactionColumns = `id, user_id, first_name, last_name, email, role,
	street, city, state, zip, amount, payment_status, status, created_at, updated_at`

func (r *repository) List(ctx context.Context, userID string) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tx)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, userID, id string) (*Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (r *repository) Update(ctx context.Context, tx Transaction) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions
		SET first_name = $2, last_name = $3, email = $4, role = $5,
			street = $6, city = $7, state = $8, zip = $9,
			payment_status = $10, updated_at = NOW()
		WHERE id = $1 AND user_id = $11
	`, tx.ID, tx.Customer.FirstName, tx.Customer.LastName, tx.Customer.Email,
		tx.Customer.Role, tx.Customer.Address.Street, tx.Customer.Address.City,
		tx.Customer.Address.State, tx.Customer.Address.Zip, tx.PaymentStatus, tx.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) SetStatus(ctx context.Context, userID, id, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE transactions SET status = $2, updated_at = NOW() WHERE id = $1 AND user_id = $3
	`, id, status, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var t Transaction
	var amount pgtype.Numeric
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&t.ID, &t.UserID, &t.Customer.FirstName, &t.Customer.LastName,
		&t.Customer.Email, &t.Customer.Role, &t.Customer.Address.Street,
		&t.Customer.Address.City, &t.Customer.Address.State, &t.Customer.Address.Zip,
		&amount, &t.PaymentStatus, &t.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if amount.Valid {
		value, err := amount.Value()
		if err == nil {
			if str, ok := value.(string); ok {
				if parsed, err := decimal.NewFromString(str); err == nil {
					t.Amount = parsed
				}
			}
		}
	}
	if createdAt.Valid {
		t.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		t.UpdatedAt = updatedAt.Time
	}
	return &t, nil
}
