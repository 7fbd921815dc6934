package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sumire/notifyschema/internal/schema"
	"github.com/sumire/notifyschema/internal/service"
	"github.com/sumire/notifyschema/internal/validation"
)

// RouterConfig holds the dependencies of the HTTP API.
// Tracker, Tokens and Gatherer are optional.
type RouterConfig struct {
	Validator *validation.Validator
	Registry  *schema.Registry
	Tracker   *validation.ChannelTracker
	Tokens    *service.TokenService
	Gatherer  prometheus.Gatherer
}

// NewRouter builds the echo instance serving the API.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewAppValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	validateHandler := NewValidateHandler(cfg.Validator)
	schemaHandler := NewSchemaHandler(cfg.Registry, cfg.Tracker)

	api := e.Group("/api/v1")
	if cfg.Tokens != nil {
		api.Use(JWTAuth(cfg.Tokens))
	}

	api.GET("/kinds", schemaHandler.Kinds)
	api.GET("/schema/:kind", schemaHandler.Describe)
	api.GET("/channels/:channelId", schemaHandler.Channel)

	api.POST("/validate", validateHandler.ValidateEnvelope)
	api.POST("/validate/:kind", validateHandler.Validate)
	api.POST("/notifications/android/validate", validateHandler.NotificationAndroidOptions)
	api.POST("/channels/validate", validateHandler.Channel)
	api.POST("/channel-groups/validate", validateHandler.ChannelGroup)

	return e
}
