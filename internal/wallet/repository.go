package wallet

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vaulta/vaulta/internal/platform/db"
	"github.com/vaulta/vaulta/internal/platform/httpx"
	"github.com/vaulta/vaulta/internal/shared"
	"github.com/vaulta/vaulta/internal/transactions"
)

// Repository persists wallet balances.
type Repository interface {
	Get(ctx context.Context, userID string) (*Wallet, error)
	AddMoney(ctx context.Context, userID string, amount decimal.Decimal) (*Wallet, error)
	Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, record transactions.Transaction) error
	DailySpending(ctx context.Context, userID string, days int) ([]DayTotal, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Get(ctx context.Context, userID string) (*Wallet, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, balance, updated_at FROM wallets WHERE user_id = $1
	`, userID)
	wallet, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return wallet, nil
}

func (r *repository) AddMoney(ctx context.Context, userID string, amount decimal.Decimal) (*Wallet, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wallets (user_id, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING user_id, balance, updated_at
	`, userID, amount.String())
	return scanWallet(row)
}

// Transfer debits the sender, credits the recipient, and writes the
// sender's transaction record in one pg transaction. The sender row is
// locked first so concurrent transfers cannot overdraw. If the record
// insert fails the whole transfer rolls back, so there is never a
// moved balance without a matching transaction row.
func (r *repository) Transfer(ctx context.Context, fromID, toID string, amount decimal.Decimal, record transactions.Transaction) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var balance pgtype.Numeric
		err := tx.QueryRow(ctx, `
			SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE
		`, fromID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return err
		}
		current, err := numericToDecimal(balance)
		if err != nil {
			return err
		}
		if current.LessThan(amount) {
			return httpx.ErrInsufficient
		}

		if _, err := tx.Exec(ctx, `
			UPDATE wallets SET balance = balance - $2, updated_at = NOW() WHERE user_id = $1
		`, fromID, amount.String()); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO wallets (user_id, balance, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_id)
			DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		`, toID, amount.String()); err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO transactions (id, user_id, first_name, last_name, email, role,
				street, city, state, zip, amount, payment_status, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)
		`, record.ID, record.UserID, record.Customer.FirstName, record.Customer.LastName,
			record.Customer.Email, record.Customer.Role, record.Customer.Address.Street,
			record.Customer.Address.City, record.Customer.Address.State, record.Customer.Address.Zip,
			record.Amount.String(), record.PaymentStatus, record.Status, record.CreatedAt)
		return err
	})
}

func (r *repository) DailySpending(ctx context.Context, userID string, days int) ([]DayTotal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND status = 'ACTIVE'
		  AND created_at >= NOW() - make_interval(days => $2)
		GROUP BY day
		ORDER BY day ASC
	`, userID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DayTotal
	for rows.Next() {
		var day string
		var spent pgtype.Numeric
		if err := rows.Scan(&day, &spent); err != nil {
			return nil, err
		}
		amount, err := numericToDecimal(spent)
		if err != nil {
			return nil, err
		}
		result = append(result, DayTotal{Day: day, Spent: amount})
	}
	return result, rows.Err()
}

func scanWallet(row pgx.Row) (*Wallet, error) {
	var w Wallet
	var balance pgtype.Numeric
	var updatedAt pgtype.Timestamptz

	if err := row.Scan(&w.UserID, &balance, &updatedAt); err != nil {
		return nil, err
	}
	amount, err := numericToDecimal(balance)
	if err != nil {
		return nil, err
	}
	w.Balance = amount
	if updatedAt.Valid {
		w.UpdatedAt = updatedAt.Time
	}
	return &w, nil
}

func numericToDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	value, err := n.Value()
	if err != nil {
		return decimal.Zero, err
	}
	str, ok := value.(string)
	if !ok {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(str)
}
