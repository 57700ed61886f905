package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/messkit/meal-access-service/internal/domain"
)

// MealLogRepository encapsulates the append-only audit log. Entries are
// never updated or deleted.
type MealLogRepository interface {
	// Insert appends one entry. An ALLOWED insert that collides with an
	// existing ALLOWED entry for the same (user, date, meal) returns
	// ErrDuplicateAllowed; this is how the check-then-act race between
	// concurrent redemptions is closed.
	Insert(ctx context.Context, entry *domain.MealLog) error
	HasAllowed(ctx context.Context, userID, date string, meal domain.MealType) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.MealLog, error)
	ListAll(ctx context.Context, limit, offset int) ([]domain.MealLog, error)
}

type mealLogRepository struct {
	pool *pgxpool.Pool
}

// NewMealLogRepository instantiates repository.
func NewMealLogRepository(pool *pgxpool.Pool) MealLogRepository {
	return &mealLogRepository{pool: pool}
}

func (r *mealLogRepository) Insert(ctx context.Context, entry *domain.MealLog) error {
	const query = `
        INSERT INTO meal_logs (user_id, date, meal_type, supervisor_id, status, reason)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, timestamp`

	err := r.pool.QueryRow(ctx, query,
		entry.UserID,
		entry.Date,
		entry.MealType,
		entry.SupervisorID,
		entry.Status,
		entry.Reason,
	).Scan(&entry.ID, &entry.Timestamp)
	if isUniqueViolation(err) {
		return ErrDuplicateAllowed
	}
	return err
}

func (r *mealLogRepository) HasAllowed(ctx context.Context, userID, date string, meal domain.MealType) (bool, error) {
	const query = `
        SELECT EXISTS (
            SELECT 1 FROM meal_logs
            WHERE user_id=$1 AND date=$2 AND meal_type=$3 AND status='ALLOWED'
        )`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, date, meal).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

const mealLogSelect = `
        SELECT l.id, l.user_id, l.date, l.meal_type, l.supervisor_id, l.status, l.reason, l.timestamp,
               u.name, u.user_id, s.name
        FROM meal_logs l
        JOIN accounts u ON u.id = l.user_id
        JOIN accounts s ON s.id = l.supervisor_id`

func (r *mealLogRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.MealLog, error) {
	query := mealLogSelect + `
        WHERE l.user_id=$1
        ORDER BY l.timestamp DESC
        LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMealLogs(rows)
}

func (r *mealLogRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.MealLog, error) {
	query := mealLogSelect + `
        ORDER BY l.timestamp DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, normalizeLimit(limit), normalizeOffset(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMealLogs(rows)
}

func scanMealLogs(rows pgx.Rows) ([]domain.MealLog, error) {
	var result []domain.MealLog
	for rows.Next() {
		var entry domain.MealLog
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Date,
			&entry.MealType,
			&entry.SupervisorID,
			&entry.Status,
			&entry.Reason,
			&entry.Timestamp,
			&entry.UserName,
			&entry.StudentID,
			&entry.SupervisorName,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return 100
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
