package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/storeroom-go-api/internal/config"
	"github.com/noah-isme/storeroom-go-api/internal/handler"
	"github.com/noah-isme/storeroom-go-api/internal/middleware"
	"github.com/noah-isme/storeroom-go-api/internal/models"
	"github.com/noah-isme/storeroom-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ItemHandler      *handler.ItemHandler
	InventoryHandler *handler.InventoryHandler
	IssueHandler     *handler.IssueHandler
	TeacherHandler   *handler.TeacherHandler
	ReportHandler    *handler.ReportHandler
	PairingHandler   *handler.PairingHandler
	SeedHandler      *handler.SeedHandler
	JWTMiddleware    fiber.Handler
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

	if deps.ItemHandler != nil {
		items := api.Group("/items", jwtMiddleware)
		deps.ItemHandler.Register(items)
	}

	if deps.InventoryHandler != nil {
		inventory := api.Group("/inventory", jwtMiddleware)
		deps.InventoryHandler.Register(inventory)
	}

	if deps.IssueHandler != nil {
		issues := api.Group("/issues", jwtMiddleware)
		deps.IssueHandler.Register(issues)
	}

	if deps.TeacherHandler != nil {
		teachers := api.Group("/teachers", jwtMiddleware)
		deps.TeacherHandler.Register(teachers)

		departments := api.Group("/departments", jwtMiddleware)
		deps.TeacherHandler.RegisterDepartments(departments)
	}

	if deps.ReportHandler != nil {
		reports := api.Group("/reports", jwtMiddleware)
		deps.ReportHandler.Register(reports)
	}

	// Pairing codes are requested before a session is authenticated.
	if deps.PairingHandler != nil {
		pairing := api.Group("/pairing")
		deps.PairingHandler.Register(pairing)
	}

	if deps.SeedHandler != nil {
		seed := api.Group("/seed", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.SeedHandler.Register(seed)
	}
}
