package metrics

import (
	"strconv"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus collectors.
//
// A private registry is used instead of the global default so that tests
// can build multiple instances without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts handled requests by response status code.
	RequestsTotal *prometheus.CounterVec
	// TokensIssued counts successfully issued tokens.
	TokensIssued prometheus.Counter
}

// New creates and registers the application metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "appcheck_requests_total",
			Help: "Total number of HTTP requests handled, by status code.",
		}, []string{"status"}),
		TokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "appcheck_tokens_issued_total",
			Help: "Total number of tokens returned to callers.",
		}),
	}

	reg.MustRegister(m.RequestsTotal, m.TokensIssued)
	return m
}

// Middleware counts every handled request by its final status code.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		m.RequestsTotal.WithLabelValues(strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	}
}

// Handler serves the /metrics endpoint in Prometheus exposition format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
