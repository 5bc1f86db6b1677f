// Package v1 handles the dungeon run HTTP API
package v1

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/KirkDiggler/rpg-dungeon/internal/errors"
	"github.com/KirkDiggler/rpg-dungeon/internal/orchestrators/dungeon"
)

// Readiness reports whether required dependencies are initialized
type Readiness interface {
	IsReady() bool
}

// HandlerConfig holds dependencies for the dungeon handler
type HandlerConfig struct {
	DungeonService dungeon.Service

	// Readiness gates /api routes. A nil value means always ready.
	Readiness Readiness
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.DungeonService == nil {
		return errors.InvalidArgument("dungeon service is required")
	}
	return nil
}

// Handler serves the dungeon run API
type Handler struct {
	dungeonService dungeon.Service
	readiness      Readiness
}

// NewHandler creates a new dungeon handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		dungeonService: cfg.DungeonService,
		readiness:      cfg.Readiness,
	}, nil
}

// RegisterRoutes registers all routes on the echo instance
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/ready", h.Ready)

	api := e.Group("/api/dungeons", h.RequireReady)
	api.POST("/start", h.StartDungeon)
	api.GET("/:runId", h.GetDungeon)
	api.GET("/:runId/choices", h.GetChoices)
	api.POST("/:runId/choose", h.Choose)
	api.POST("/:runId/finish", h.FinishDungeon)
	api.POST("/:runId/abandon", h.AbandonDungeon)
	api.POST("/:runId/fail", h.FailDungeon)
}

// Health is the liveness probe.
// GET /health
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether startup has completed.
// GET /ready
func (h *Handler) Ready(c echo.Context) error {
	if !h.isReady() {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "starting"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

// RequireReady rejects requests with 503 until startup has completed
func (h *Handler) RequireReady(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.isReady() {
			return writeError(c, errors.Unavailable("service is starting"))
		}
		return next(c)
	}
}

func (h *Handler) isReady() bool {
	return h.readiness == nil || h.readiness.IsReady()
}

// runID reads the :runId path parameter
func runID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("runId"))
	if id == "" {
		return "", errors.InvalidArgument("runId is required")
	}
	return id, nil
}

// writeError maps err onto the JSON error envelope
func writeError(c echo.Context, err error) error {
	status, body := errors.ToHTTP(err)
	if status >= http.StatusInternalServerError {
		slog.Error("Request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"status", status,
			"error", err)
	}
	return c.JSON(status, body)
}
