package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/messkit/meal-access-service/internal/domain"
)

// MealSessionRepository persists supervisor-declared serving windows.
type MealSessionRepository interface {
	// Declare deactivates every active session and inserts the new one in a
	// single transaction. Only one session may be active network-wide.
	Declare(ctx context.Context, session *domain.MealSession) error
	// GetActive returns the currently active session record, or pgx.ErrNoRows.
	GetActive(ctx context.Context) (*domain.MealSession, error)
}

type mealSessionRepository struct {
	pool *pgxpool.Pool
}

// NewMealSessionRepository instantiates repository.
func NewMealSessionRepository(pool *pgxpool.Pool) MealSessionRepository {
	return &mealSessionRepository{pool: pool}
}

func (r *mealSessionRepository) Declare(ctx context.Context, session *domain.MealSession) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `UPDATE meal_sessions SET is_active=FALSE WHERE is_active`); err != nil {
		return err
	}

	const insert = `
        INSERT INTO meal_sessions (id, meal_type, start_time, end_time, is_active, supervisor_id)
        VALUES ($1,$2,$3,$4,TRUE,$5)
        RETURNING created_at`
	if err := tx.QueryRow(ctx, insert,
		session.ID,
		session.MealType,
		session.StartTime,
		session.EndTime,
		session.SupervisorID,
	).Scan(&session.CreatedAt); err != nil {
		return err
	}
	session.IsActive = true

	return tx.Commit(ctx)
}

func (r *mealSessionRepository) GetActive(ctx context.Context) (*domain.MealSession, error) {
	const query = `
        SELECT id, meal_type, start_time, end_time, is_active, supervisor_id, created_at
        FROM meal_sessions
        WHERE is_active
        ORDER BY created_at DESC
        LIMIT 1`

	var session domain.MealSession
	if err := r.pool.QueryRow(ctx, query).Scan(
		&session.ID,
		&session.MealType,
		&session.StartTime,
		&session.EndTime,
		&session.IsActive,
		&session.SupervisorID,
		&session.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &session, nil
}
