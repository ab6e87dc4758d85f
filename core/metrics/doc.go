// Package metrics provides Prometheus metrics for the token server.
//
// It exposes request counts by status code and the number of issued tokens.
// The collectors live on a private registry and are served on /metrics via
// Fiber's net/http adaptor.
package metrics
