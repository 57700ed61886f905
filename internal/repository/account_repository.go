package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/messkit/meal-access-service/internal/domain"
)

// AccountRepository defines persistence access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.Account, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

const accountColumns = `id, user_id, name, role, department, year, resident_type, diet_type, valid_days, is_active, password_hash, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (user_id, name, role, department, year, resident_type, diet_type, valid_days, is_active, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		account.UserID,
		account.Name,
		account.Role,
		account.Department,
		account.Year,
		account.ResidentType,
		account.DietType,
		account.ValidDays,
		account.IsActive,
		account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateAccount
	}
	return err
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Role,
		&account.Department,
		&account.Year,
		&account.ResidentType,
		&account.DietType,
		&account.ValidDays,
		&account.IsActive,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.Name,
			&account.Role,
			&account.Department,
			&account.Year,
			&account.ResidentType,
			&account.DietType,
			&account.ValidDays,
			&account.IsActive,
			&account.PasswordHash,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

func (r *accountRepository) SetActive(ctx context.Context, id string, active bool) (*domain.Account, error) {
	const query = `
        UPDATE accounts SET is_active=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING ` + accountColumns

	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, active, id).Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.Role,
		&account.Department,
		&account.Year,
		&account.ResidentType,
		&account.DietType,
		&account.ValidDays,
		&account.IsActive,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &account, nil
}
