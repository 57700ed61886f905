package service

import (
	"context"
	"errors"
	"strings"

	"github.com/messkit/meal-access-service/internal/auth"
	"github.com/messkit/meal-access-service/internal/config"
	"github.com/messkit/meal-access-service/internal/domain"
	"github.com/messkit/meal-access-service/internal/repository"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// AccountService covers administrator account management. Accounts are
// created and mutated only here; the core never deletes them.
type AccountService struct {
	accounts   repository.AccountRepository
	bcryptCost int
}

// AccountCreateInput describes account registration payload.
type AccountCreateInput struct {
	UserID       string
	Name         string
	Role         domain.Role
	Password     string
	Department   string
	Year         string
	ResidentType domain.ResidentType
	DietType     domain.DietType
	ValidDays    []string
}

// NewAccountService constructs the service.
func NewAccountService(cfg config.AuthConfig, accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts, bcryptCost: cfg.BcryptCost}
}

// Register creates a new account. Student-only attributes are dropped for
// other roles.
func (s *AccountService) Register(ctx context.Context, input AccountCreateInput) (*domain.Account, error) {
	userID := strings.TrimSpace(input.UserID)
	name := strings.TrimSpace(input.Name)
	if userID == "" || name == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("userId, name, password required", nil)
	}
	switch input.Role {
	case domain.RoleAdmin, domain.RoleStudent, domain.RoleSupervisor:
	default:
		return nil, apperrors.NewValidationError("unknown role", nil)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		UserID:       userID,
		Name:         name,
		Role:         input.Role,
		IsActive:     true,
		PasswordHash: hash,
		ValidDays:    domain.AllWeekdays(),
	}
	if input.Role == domain.RoleStudent {
		account.Department = input.Department
		account.Year = input.Year
		account.ResidentType = input.ResidentType
		account.DietType = input.DietType
		if len(input.ValidDays) > 0 {
			account.ValidDays = normalizeDays(input.ValidDays)
		}
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return nil, apperrors.NewConflict("user already exists", map[string]any{"userId": userID})
		}
		return nil, err
	}
	return account, nil
}

// List returns all accounts, newest first.
func (s *AccountService) List(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// SetActive toggles the redemption eligibility flag.
func (s *AccountService) SetActive(ctx context.Context, id string, active bool) (*domain.Account, error) {
	return s.accounts.SetActive(ctx, id, active)
}

func normalizeDays(days []string) []string {
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, strings.ToUpper(strings.TrimSpace(day)))
	}
	return out
}
