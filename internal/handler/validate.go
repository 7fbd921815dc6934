package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/notifyschema/internal/domain"
	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/validation"
)

// ValidateHandler exposes the validator over HTTP.
type ValidateHandler struct {
	validator *validation.Validator
}

// NewValidateHandler creates a new ValidateHandler.
func NewValidateHandler(v *validation.Validator) *ValidateHandler {
	return &ValidateHandler{validator: v}
}

// ValidateRequest carries a structure kind and its raw payload.
type ValidateRequest struct {
	Kind    string         `json:"kind" validate:"required"`
	Payload map[string]any `json:"payload" validate:"required"`
}

// Validate validates the request body as the structure kind named in the path.
func (h *ValidateHandler) Validate(c echo.Context) error {
	raw, err := bindObject(c)
	if err != nil {
		return err
	}

	out, err := h.validator.Validate(c.Request().Context(), schema.Kind(c.Param("kind")), raw)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, out)
}

// ValidateEnvelope validates a {"kind", "payload"} request.
func (h *ValidateHandler) ValidateEnvelope(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.validator.Validate(c.Request().Context(), schema.Kind(req.Kind), req.Payload)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, out)
}

// NotificationAndroidOptions validates Android notification options.
func (h *ValidateHandler) NotificationAndroidOptions(c echo.Context) error {
	raw, err := bindObject(c)
	if err != nil {
		return err
	}

	opts, err := h.validator.ValidateNotificationAndroidOptions(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, opts)
}

// Channel validates a channel definition.
func (h *ValidateHandler) Channel(c echo.Context) error {
	raw, err := bindObject(c)
	if err != nil {
		return err
	}

	ch, err := h.validator.ValidateChannel(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, ch)
}

// ChannelGroup validates a channel group definition.
func (h *ValidateHandler) ChannelGroup(c echo.Context) error {
	raw, err := bindObject(c)
	if err != nil {
		return err
	}

	group, err := h.validator.ValidateChannelGroup(c.Request().Context(), raw)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, group)
}

// bindObject decodes the body alone; echo's Bind would also copy path params into the map.
func bindObject(c echo.Context) (map[string]any, error) {
	var raw map[string]any
	if err := (&echo.DefaultBinder{}).BindBody(c, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: request body must be a JSON object", domain.ErrInvalidInput)
	}
	return raw, nil
}
