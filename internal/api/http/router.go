package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/account-service/internal/api/http/handlers"
	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Admin          *handlers.AdminHandler
	Payroll        *handlers.PayrollHandler
	Security       *handlers.SecurityHandler
	AuthMiddleware *auth.AuthMiddleware
	Dispatcher     events.Dispatcher
	AuthLimiter    *ratelimit.Limiter
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth", rateLimitMiddleware(cfg.AuthLimiter))
	authGroup.Post("/signup", cfg.Auth.Signup)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/changepass",
		cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Auth.ChangePassword)

	empl := api.Group("/empl", cfg.AuthMiddleware.Handle,
		auth.RequireRoles(cfg.Dispatcher, domain.RoleUser, domain.RoleAccountant, domain.RoleAdmin))
	empl.Get("/payment", cfg.Payroll.GetPayment)

	acct := api.Group("/acct", cfg.AuthMiddleware.Handle,
		auth.RequireRoles(cfg.Dispatcher, domain.RoleAccountant))
	acct.Post("/payments", cfg.Payroll.Upload)
	acct.Put("/payments", cfg.Payroll.UpdateSalary)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle,
		auth.RequireRoles(cfg.Dispatcher, domain.RoleAdmin))
	admin.Get("/user", cfg.Admin.ListUsers)
	admin.Put("/user/role", cfg.Admin.ToggleRole)
	admin.Put("/user/access", cfg.Admin.SetAccess)
	admin.Delete("/user/:email", cfg.Admin.DeleteUser)

	security := api.Group("/security", cfg.AuthMiddleware.Handle,
		auth.RequireRoles(cfg.Dispatcher, domain.RoleAuditor))
	security.Get("/events", cfg.Security.ListEvents)
}
