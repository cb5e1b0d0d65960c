package incidents

import (
	"errors"

	"github.com/redhat-appstudio/statuspage-mirror/apis/common"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/logger"
	"github.com/redhat-appstudio/statuspage-mirror/pkg/storage"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the incident store read-only.
type Handler struct {
	store storage.Store
}

// NewHandler creates a new incidents API handler.
func NewHandler(store storage.Store) (*Handler, error) {
	if store == nil {
		return nil, errors.New("incident store is nil")
	}
	return &Handler{store: store}, nil
}

// List handles GET /api/v1/incidents
func (h *Handler) List(c *fiber.Ctx) error {
	records, err := h.store.List(c.UserContext())
	if err != nil {
		logger.Errorf("Failed to list incident records: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(common.NewErrorResponse("failed to list incidents"))
	}

	response := ListResponse{
		Count:     len(records),
		Incidents: make([]IncidentResponse, 0, len(records)),
	}
	for _, record := range records {
		response.Incidents = append(response.Incidents, fromRecord(record))
	}

	return c.JSON(response)
}

// Get handles GET /api/v1/incidents/:id
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	record, err := h.store.Get(c.UserContext(), id)
	if err != nil {
		logger.Errorf("Failed to get incident record %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(common.NewErrorResponse("failed to get incident"))
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(common.NewErrorResponse("incident " + id + " is not tracked"))
	}

	return c.JSON(fromRecord(*record))
}
