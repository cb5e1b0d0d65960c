package incidents

import (
	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers the tracked incident routes under /api/v1/incidents.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	v1 := app.Group("/api/v1")

	incidents := v1.Group("/incidents")
	incidents.Get("/", handler.List)
	incidents.Get("/:id", handler.Get)
}
