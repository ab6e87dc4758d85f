// Package logger builds the application's zap logger from configuration.
//
// Two encodings are supported: "console" for local development (colored
// levels, ISO8601 timestamps) and "json" for structured production output.
// The minimum level is parsed from the configuration and applied atomically.
//
// WithRayID attaches the per-request ray id (set by the rayid middleware)
// to a logger so every line emitted while handling a request can be traced
// back to it.
package logger
