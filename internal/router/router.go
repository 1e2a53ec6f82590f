package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/config"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/handler"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/middleware"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/models"
	"github.com/Vikrantbadade/spit-achievements-hub-backend-sub000/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler        *handler.AuthHandler
	UserHandler        *handler.UserHandler
	DepartmentHandler  *handler.DepartmentHandler
	AchievementHandler *handler.AchievementHandler
	ReportHandler      *handler.ReportHandler
	AuditHandler       *handler.AuditHandler
	DashboardHandler   *handler.DashboardHandler
	SeedHandler        *handler.SeedHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		// Credential endpoints are the brute-force surface.
		deps.AuthHandler.RegisterPublic(auth.Group("", middleware.RateLimit("auth", 20, time.Minute)))
		deps.AuthHandler.RegisterProtected(auth.Group("", jwtMiddleware))
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", jwtMiddleware)
		deps.UserHandler.Register(users)
	}

	if deps.DepartmentHandler != nil {
		departments := api.Group("/departments", jwtMiddleware)
		deps.DepartmentHandler.Register(departments)
	}

	if deps.AchievementHandler != nil {
		achievements := api.Group("/achievements", jwtMiddleware)
		deps.AchievementHandler.Register(achievements)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports", jwtMiddleware)
		deps.ReportHandler.Register(reports)
	}

	if deps.AuditHandler != nil {
		audit := api.Group("/audit", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AuditHandler.Register(audit)
	}

	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.DashboardHandler.Register(dashboard)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed", middleware.RateLimit("seed", 5, time.Minute))
		deps.SeedHandler.Register(seed)
	}
}
