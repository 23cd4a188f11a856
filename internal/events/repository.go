package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vaulta/vaulta/internal/shared"
)

// Repository persists calendar events. Every query carries the owning
// user's id, so ids leaked from another account resolve to ErrNotFound.
type Repository interface {
	List(ctx context.Context, userID string) ([]Event, error)
	Get(ctx context.Context, userID, id string) (*Event, error)
	Create(ctx context.Context, event Event) error
	Update(ctx context.Context, event Event) error
	Delete(ctx context.Context, userID, id string) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs the pgx-backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const eventColumns = `id, user_id, event_name, start_time, end_time, created_at, updated_at`

func (r *repository) List(ctx context.Context, userID string) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE user_id = $1
		ORDER BY start_time ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}

func (r *repository) Get(ctx context.Context, userID, id string) (*Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *repository) Create(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO events (id, user_id, event_name, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
	`, event.ID, event.UserID, event.EventName, event.StartTime, event.EndTime, time.Now().UTC())
	return err
}

func (r *repository) Update(ctx context.Context, event Event) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE events
		SET event_name = $2, start_time = $3, end_time = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $5
	`, event.ID, event.EventName, event.StartTime, event.EndTime, event.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	var start, end, createdAt, updatedAt pgtype.Timestamptz

	err := row.Scan(&e.ID, &e.UserID, &e.EventName, &start, &end, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if start.Valid {
		e.StartTime = start.Time
	}
	if end.Valid {
		e.EndTime = end.Time
	}
	if createdAt.Valid {
		e.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		e.UpdatedAt = updatedAt.Time
	}
	return &e, nil
}
