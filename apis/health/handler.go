package health

import (
	"time"

	"github.com/redhat-appstudio/statuspage-mirror/internal/version"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

var startTime = time.Now()

// Handler serves the health endpoint.
type Handler struct {
	store storage.Store
}

// NewHandler creates a health handler that probes the given store.
func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

// Health returns uptime, version and store reachability.
// An unreadable store answers 503 so orchestrators can restart the pod.
func (h *Handler) Health(c *fiber.Ctx) error {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version.GetShortVersion(),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
	}

	if h.store != nil {
		records, err := h.store.List(c.UserContext())
		if err != nil {
			response.Status = "unhealthy"
			response.Error = err.Error()
			return c.Status(fiber.StatusServiceUnavailable).JSON(response)
		}
		response.TrackedIncidents = len(records)
	}

	return c.JSON(response)
}
