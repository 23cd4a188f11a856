package activities

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists and serves activity records.
type Repository interface {
	Insert(ctx context.Context, activity Activity) error
	List(ctx context.Context, userID string, limit, offset int) ([]Activity, int, error)
	RecentUserIDs(ctx context.Context, limit int) ([]string, error)
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

func (r *repository) Insert(ctx context.Context, activity Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recent_activities (id, user_id, action_name, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, activity.ID, activity.UserID, activity.ActionName, activity.Email, activity.CreatedAt)
	return err
}

func (r *repository) List(ctx context.Context, userID string, limit, offset int) ([]Activity, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM recent_activities WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, action_name, email, created_at
		FROM recent_activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []Activity
	for rows.Next() {
		var a Activity
		var createdAt pgtype.Timestamptz
		if err := rows.Scan(&a.ID, &a.UserID, &a.ActionName, &a.Email, &createdAt); err != nil {
			return nil, 0, err
		}
		if createdAt.Valid {
			a.CreatedAt = createdAt.Time
		}
		result = append(result, a)
	}
	return result, total, rows.Err()
}

// RecentUserIDs returns the users with the freshest activity, most
// recent first. The warmup job pre-loads their collections.
func (r *repository) RecentUserIDs(ctx context.Context, limit int) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id
		FROM recent_activities
		GROUP BY user_id
		ORDER BY MAX(created_at) DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
