package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/messkit/meal-access-service/internal/api/http/handlers"
	"github.com/messkit/meal-access-service/internal/auth"
	"github.com/messkit/meal-access-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Student        *handlers.StudentHandler
	Supervisor     *handlers.SupervisorHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	student := app.Group("/student", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleStudent))
	student.Get("/profile", cfg.Student.Profile)
	student.Post("/generate-qr", cfg.Student.GenerateQR)
	student.Get("/history", cfg.Student.History)

	supervisor := app.Group("/supervisor", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleSupervisor))
	supervisor.Post("/scan", cfg.Supervisor.Scan)
	supervisor.Post("/session", cfg.Supervisor.SetSession)
	supervisor.Get("/session", cfg.Supervisor.GetActiveSession)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Post("/users", cfg.Admin.RegisterAccount)
	admin.Get("/users", cfg.Admin.ListAccounts)
	admin.Put("/users/:id/status", cfg.Admin.UpdateStatus)
	admin.Get("/logs", cfg.Admin.ListLogs)
	admin.Get("/logs/:userId", cfg.Admin.ListUserLogs)
}
