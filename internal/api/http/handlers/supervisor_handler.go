package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/messkit/meal-access-service/internal/api/dto"
	"github.com/messkit/meal-access-service/internal/auth"
	"github.com/messkit/meal-access-service/internal/service"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// SupervisorHandler covers the scanner device surface: redeeming tokens
// and declaring serving sessions.
type SupervisorHandler struct {
	redemption *service.RedemptionService
	sessions   *service.SessionService
}

// NewSupervisorHandler constructs handler.
func NewSupervisorHandler(redemptionService *service.RedemptionService, sessionService *service.SessionService) *SupervisorHandler {
	return &SupervisorHandler{redemption: redemptionService, sessions: sessionService}
}

// Scan handles POST /supervisor/scan. A DENIED outcome is a structured
// business result delivered with HTTP 400, matching the scanner clients;
// only infrastructure failures produce an error envelope.
func (h *SupervisorHandler) Scan(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("supervisor required")
	}

	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.QRPayload) == "" {
		return apperrors.NewValidationError("qrPayload required", nil)
	}

	result, err := h.redemption.Redeem(c.Context(), req.QRPayload, principal.Account.ID)
	if err != nil {
		return err
	}

	resp := dto.ScanResponse{Status: result.Status, Reason: result.Reason}
	if result.Allowed() {
		// The success payload carries the student summary only; reason is
		// a denial field on the wire.
		resp.Reason = ""
		resp.Student = &dto.ScanStudent{
			Name:       result.Student.Name,
			ID:         result.Student.ID,
			Meal:       result.Student.Meal,
			Department: result.Student.Department,
			Year:       result.Student.Year,
		}
		return c.JSON(resp)
	}
	return c.Status(http.StatusBadRequest).JSON(resp)
}

// SetSession handles POST /supervisor/session.
func (h *SupervisorHandler) SetSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("supervisor required")
	}

	var req dto.SetSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.MealType == "" || req.StartTime.IsZero() || req.EndTime.IsZero() {
		return apperrors.NewValidationError("mealType, startTime, endTime required", nil)
	}

	session, err := h.sessions.SetSession(c.Context(), req.MealType, req.StartTime, req.EndTime, principal.Account.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SessionFromDomain(session)})
}

// GetActiveSession handles GET /supervisor/session.
func (h *SupervisorHandler) GetActiveSession(c *fiber.Ctx) error {
	session, err := h.sessions.GetActiveSession(c.Context())
	if err != nil {
		return err
	}
	if session == nil {
		return c.JSON(fiber.Map{"data": nil})
	}
	return c.JSON(fiber.Map{"data": dto.SessionFromDomain(session)})
}
