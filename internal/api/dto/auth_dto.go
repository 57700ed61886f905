package dto

import (
	"time"

	"github.com/messkit/meal-access-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// LoginResponse mirrors the profile fields the dashboards need alongside
// the bearer token.
type LoginResponse struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	Name         string              `json:"name"`
	Role         domain.Role         `json:"role"`
	Department   string              `json:"department,omitempty"`
	Year         string              `json:"year,omitempty"`
	ResidentType domain.ResidentType `json:"residentType,omitempty"`
	DietType     domain.DietType     `json:"mealType,omitempty"`
	Token        string              `json:"token"`
	ExpiresAt    time.Time           `json:"expiresAt"`
}
