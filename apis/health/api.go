package health

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the health endpoint under /api/v1.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	healthGroup := app.Group("/api/v1")

	healthGroup.Get("/health", handler.Health)
}
