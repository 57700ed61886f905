package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/messkit/meal-access-service/internal/api/dto"
	"github.com/messkit/meal-access-service/internal/service"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.UserID == "" || req.Password == "" {
		return apperrors.NewValidationError("userId and password required", nil)
	}

	account, token, expiresAt, err := h.auth.Login(c.Context(), req.UserID, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		ID:           account.ID,
		UserID:       account.UserID,
		Name:         account.Name,
		Role:         account.Role,
		Department:   account.Department,
		Year:         account.Year,
		ResidentType: account.ResidentType,
		DietType:     account.DietType,
		Token:        token,
		ExpiresAt:    expiresAt,
	}})
}
