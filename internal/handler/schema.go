package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/validation"
)

// SchemaHandler serves the schema registry and the channel tracker.
type SchemaHandler struct {
	registry *schema.Registry
	tracker  *validation.ChannelTracker
}

// NewSchemaHandler creates a new SchemaHandler. tracker may be nil.
func NewSchemaHandler(registry *schema.Registry, tracker *validation.ChannelTracker) *SchemaHandler {
	return &SchemaHandler{registry: registry, tracker: tracker}
}

// Kinds lists the structure kinds.
func (h *SchemaHandler) Kinds(c echo.Context) error {
	return JSON(c, http.StatusOK, h.registry.Kinds())
}

// Describe returns the field table of one kind.
func (h *SchemaHandler) Describe(c echo.Context) error {
	table, err := h.registry.Describe(schema.Kind(c.Param("kind")))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, table)
}

// Channel returns what the tracker knows about a channel id.
func (h *SchemaHandler) Channel(c echo.Context) error {
	if h.tracker == nil {
		return echo.NewHTTPError(http.StatusNotFound, "channel tracking is disabled")
	}
	rec, err := h.tracker.Lookup(c.Request().Context(), c.Param("channelId"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, rec)
}
