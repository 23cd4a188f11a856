package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaulta/vaulta/internal/shared"
)

// Repository loads and stores users.
type Repository interface {
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListMembers(ctx context.Context, excludeID string) ([]Member, error)
	SetPinCode(ctx context.Context, id, pinHash string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const userColumns = `id, first_name, last_name, email, avatar_url, password_hash, pin_code_hash, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *repository) ListMembers(ctx context.Context, excludeID string) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, avatar_url
		FROM users
		WHERE id <> $1
		ORDER BY first_name, last_name
	`, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		var avatar pgtype.Text
		if err := rows.Scan(&m.ID, &m.FirstName, &m.LastName, &m.Email, &avatar); err != nil {
			return nil, err
		}
		if avatar.Valid {
			m.AvatarURL = &avatar.String
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *repository) SetPinCode(ctx context.Context, id, pinHash string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET pin_code_hash = $2, updated_at = NOW() WHERE id = $1
	`, id, pinHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*User, error) {
	var u User
	var avatar, pinHash pgtype.Text
	var createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email, &avatar,
		&u.PasswordHash, &pinHash, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if avatar.Valid {
		u.AvatarURL = &avatar.String
	}
	if pinHash.Valid {
		u.PinCodeHash = &pinHash.String
	}
	if createdAt.Valid {
		u.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		u.UpdatedAt = updatedAt.Time
	}
	return &u, nil
}
