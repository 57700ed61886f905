package dto

import (
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

// RegisterAccountRequest payload. Student-only fields are ignored for
// other roles.
type RegisterAccountRequest struct {
	UserID       string              `json:"userId"`
	Name         string              `json:"name"`
	Role         domain.Role         `json:"role"`
	Password     string              `json:"password"`
	Department   string              `json:"department"`
	Year         string              `json:"year"`
	ResidentType domain.ResidentType `json:"residentType"`
	DietType     domain.DietType     `json:"mealType"`
	ValidDays    []string            `json:"validDays"`
}

// UpdateStatusRequest toggles redemption eligibility.
type UpdateStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// AccountResponse is the admin-facing account view.
type AccountResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	Name         string              `json:"name"`
	Role         domain.Role         `json:"role"`
	Department   string              `json:"department,omitempty"`
	Year         string              `json:"year,omitempty"`
	ResidentType domain.ResidentType `json:"residentType,omitempty"`
	DietType     domain.DietType     `json:"mealType,omitempty"`
	ValidDays    []string            `json:"validDays,omitempty"`
	IsActive     bool                `json:"isActive"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// AccountFromDomain maps an account, never exposing the password hash.
func AccountFromDomain(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:           account.ID,
		UserID:       account.UserID,
		Name:         account.Name,
		Role:         account.Role,
		Department:   account.Department,
		Year:         account.Year,
		ResidentType: account.ResidentType,
		DietType:     account.DietType,
		ValidDays:    account.ValidDays,
		IsActive:     account.IsActive,
		CreatedAt:    account.CreatedAt,
	}
}
