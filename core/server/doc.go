// Package server holds the HTTP server configuration.
//
// While the main application entry point handles the server startup, this
// package defines the listen address and the request body size bound.
//
// # Configuration
//
// The Config struct defines the bind host, the port (where "0" means pick
// any available port) and the maximum request body size the transport will
// buffer before dispatching. The body bound defaults to 1 MiB; the token
// endpoint itself imposes no limit, so this is the only backstop.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by cmd/start to build the listen address.
package server
