package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/complaint-desk/internal/web/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Accounts   *handlers.AccountsHandler
	Complaints *handlers.ComplaintsHandler
	Health     *handlers.HealthHandler
}

// RegisterRoutes wires the HTML surface.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/", cfg.Complaints.List)

	app.Get("/registro", cfg.Accounts.RegisterForm)
	app.Post("/registro", cfg.Accounts.Register)
	app.Get("/login", cfg.Accounts.LoginForm)
	app.Post("/login", cfg.Accounts.Login)
	app.Get("/logout", cfg.Accounts.Logout)

	app.Get("/nuevo_reclamo", cfg.Complaints.NewForm)
	app.Post("/nuevo_reclamo", cfg.Complaints.Create)
	app.Get("/reclamo/:id", cfg.Complaints.Detail)
	app.Post("/responder/:id", cfg.Complaints.Respond)
}
