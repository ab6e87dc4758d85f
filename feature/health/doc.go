// Package health provides a liveness probe for the stub server.
//
// GET /healthz returns status, current time and process uptime. The route
// must load before the token feature, whose catch-all route would otherwise
// swallow it.
package health
