package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/messkit/meal-access-service/internal/api/dto"
	"github.com/messkit/meal-access-service/internal/service"
	apperrors "github.com/messkit/meal-access-service/pkg/util"
)

// AdminHandler covers administrator endpoints: account lifecycle and the
// full audit log surface.
type AdminHandler struct {
	accounts *service.AccountService
	logs     *service.MealLogService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(accountService *service.AccountService, logService *service.MealLogService) *AdminHandler {
	return &AdminHandler{accounts: accountService, logs: logService}
}

// RegisterAccount handles POST /admin/users.
func (h *AdminHandler) RegisterAccount(c *fiber.Ctx) error {
	var req dto.RegisterAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.accounts.Register(c.Context(), service.AccountCreateInput{
		UserID:       req.UserID,
		Name:         req.Name,
		Role:         req.Role,
		Password:     req.Password,
		Department:   req.Department,
		Year:         req.Year,
		ResidentType: req.ResidentType,
		DietType:     req.DietType,
		ValidDays:    req.ValidDays,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.AccountFromDomain(account)})
}

// ListAccounts handles GET /admin/users.
func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.accounts.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		items = append(items, dto.AccountFromDomain(&accounts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus handles PUT /admin/users/:id/status.
func (h *AdminHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.accounts.SetActive(c.Context(), c.Params("id"), req.IsActive)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AccountFromDomain(account)})
}

// ListLogs handles GET /admin/logs.
func (h *AdminHandler) ListLogs(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	entries, err := h.logs.AllLogs(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.MealLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.MealLogFromDomain(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListUserLogs handles GET /admin/logs/:userId.
func (h *AdminHandler) ListUserLogs(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	entries, err := h.logs.HistoryForUser(c.Context(), c.Params("userId"), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.MealLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.MealLogFromDomain(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
