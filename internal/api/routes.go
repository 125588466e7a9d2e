package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

func SetupRoutes(app *fiber.App, handler *Handler, staticDir string, log *zap.Logger) {
	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${method} ${path}\n",
		TimeFormat: time.RFC3339,
	}))

	// API routes
	api := app.Group("/api")

	api.Get("/health", handler.GetHealth)

	api.Get("/settings", handler.GetSettings)
	api.Put("/settings", handler.UpdateSettings)
	api.Patch("/settings", handler.PatchSettings)
	api.Post("/settings/reset", handler.ResetSettings)

	api.Get("/photo/current", handler.GetCurrentPhoto)
	api.Post("/photo/current", handler.UpdateCurrentPhoto)

	// Control panel static files
	if staticDir != "" {
		app.Static("/", staticDir)
	}

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
			"path":  c.Path(),
		})
	})
}
