package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrTokenNotFound indicates no token exists for a payload: either it
	// never existed, was already consumed, or Redis reclaimed it.
	ErrTokenNotFound = errors.New("token not found")

	// ErrDuplicateAllowed indicates an ALLOWED meal log already exists for
	// the same (user, date, meal) key.
	ErrDuplicateAllowed = errors.New("allowed meal log already exists")

	// ErrDuplicateAccount indicates the human-assigned user id is taken.
	ErrDuplicateAccount = errors.New("account already exists")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
