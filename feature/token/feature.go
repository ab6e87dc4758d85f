package token

import (
	"appcheck-stub/core/authority"
	"appcheck-stub/core/metrics"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the token issuance feature.
func NewFeature(overrides Overrides, projectID string, client authority.Client, m *metrics.Metrics, logger *zap.Logger) *Feature {
	svc := NewService(overrides, projectID, client, logger)
	h := NewHandler(svc, m)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "token"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
