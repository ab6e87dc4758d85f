package health

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler answers liveness probes.
type Handler struct {
	started time.Time
	logger  *zap.Logger
}

// NewHandler creates a new health handler.
func NewHandler(logger *zap.Logger) *Handler {
	return &Handler{started: time.Now(), logger: logger}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/healthz", h.HandleHealth)
}

// HandleHealth reports that the server is up.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"uptime": time.Since(h.started).Round(time.Second).String(),
	})
}
