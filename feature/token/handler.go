package token

import (
	"appcheck-stub/core/metrics"

	"github.com/gofiber/fiber/v2"
)

// Handler adapts the dispatch service to Fiber.
type Handler struct {
	service *Service
	metrics *metrics.Metrics
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, m *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: m}
}

// RegisterRoutes registers the token routes. The path is deliberately
// ignored: every method on every path reaches the dispatcher, which is why
// this feature must load after all fixed-path features.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.All("/*", h.HandleExchange)
}

// HandleExchange buffers the request and hands it to the dispatch pipeline.
func (h *Handler) HandleExchange(c *fiber.Ctx) error {
	res := h.service.Dispatch(c.Context(), Request{
		Method:      c.Method(),
		ContentType: c.Get(fiber.HeaderContentType),
		Body:        c.Body(),
	})

	for key, value := range res.Header {
		c.Set(key, value)
	}
	c.Set(fiber.HeaderContentType, res.ContentType)
	c.Status(res.Status)
	if res.Reason != "" {
		// Forced responses may carry a reason phrase that differs from the
		// standard one for the code.
		c.Context().Response.Header.SetStatusMessage([]byte(res.Reason))
	}

	if res.Status == fiber.StatusOK && h.metrics != nil {
		h.metrics.TokensIssued.Inc()
	}
	return c.Send(res.Body)
}
