package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/messkit/meal-access-service/internal/auth"
	"github.com/messkit/meal-access-service/internal/config"
	"github.com/messkit/meal-access-service/internal/domain"
	"github.com/messkit/meal-access-service/internal/repository"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// AuthService is the credential store: it resolves accounts by their
// human-assigned id and verifies passwords.
type AuthService struct {
	accounts repository.AccountRepository
	tokens   *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, accounts repository.AccountRepository) *AuthService {
	return &AuthService{
		accounts: accounts,
		tokens:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the JWT manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and returns the account with a signed JWT.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid userId or password")
		}
		return nil, "", time.Time{}, err
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid userId or password")
	}

	token, expiresAt, err := s.tokens.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, expiresAt, nil
}
