package handlers

import (
	"github.com/redhat-appstudio/statuspage-mirror/apis/health"
	"github.com/redhat-appstudio/statuspage-mirror/apis/incidents"
	"github.com/redhat-appstudio/statuspage-mirror/apis/metrics"
	"github.com/redhat-appstudio/statuspage-mirror/internal/version"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes of the mirror.
// The incidents API is only registered when a store is available.
func SetupRoutes(app *fiber.App, store storage.Store) {
	health.RegisterRoutes(app, health.NewHandler(store))
	metrics.RegisterRoutes(app)

	incidentsHandler, err := incidents.NewHandler(store)
	if err != nil {
		logger.Warnf("Incidents API disabled: %v", err)
	} else {
		incidents.RegisterRoutes(app, incidentsHandler)
	}

	// Root endpoint
	app.Get("/", RootHandler)
}

// RootHandler handles requests to the root endpoint ("/").
// It returns the service name, build information and where to look next.
func RootHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Status Page Mirror",
		"version": version.GetInfo(),
		"docs":    "/api/v1/health",
	})
}
