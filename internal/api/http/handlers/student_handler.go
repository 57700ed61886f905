package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/messkit/meal-access-service/internal/api/dto"
	"github.com/messkit/meal-access-service/internal/auth"
	"github.com/messkit/meal-access-service/internal/service"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// StudentHandler covers student-facing endpoints: profile, QR issuance and
// redemption history.
type StudentHandler struct {
	tokens *service.TokenService
	logs   *service.MealLogService
}

// NewStudentHandler constructs handler.
func NewStudentHandler(tokenService *service.TokenService, logService *service.MealLogService) *StudentHandler {
	return &StudentHandler{tokens: tokenService, logs: logService}
}

// Profile handles GET /student/profile.
func (h *StudentHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("student required")
	}
	return c.JSON(fiber.Map{"data": dto.AccountFromDomain(principal.Account)})
}

// GenerateQR handles POST /student/generate-qr.
func (h *StudentHandler) GenerateQR(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("student required")
	}

	var req dto.GenerateQRRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.MealType == "" {
		return apperrors.NewValidationError("mealType required", nil)
	}

	token, err := h.tokens.Issue(c.Context(), principal.Account, req.MealType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.GenerateQRResponse{
		Payload:   token.Payload,
		MealType:  token.MealType,
		ExpiresAt: token.ExpiresAt,
	}})
}

// History handles GET /student/history.
func (h *StudentHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("student required")
	}

	limit, offset := parsePagination(c)
	entries, err := h.logs.HistoryForUser(c.Context(), principal.Account.ID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.MealLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.MealLogFromDomain(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parsePagination(c *fiber.Ctx) (int, int) {
	limit := 100
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
