// Package config assembles the application configuration.
//
// Each core package declares its own Config struct with mapstructure and
// default tags; this package stitches them together and fills them from the
// environment (optionally seeded by a .env file). Environment variables map
// onto nested keys with underscores, e.g.:
//
//	SERVER_PORT=9000          -> server.port
//	AUTHORITY_PROJECT_ID=p1   -> authority.project_id
//	TOKEN_FORCED_STATUS=418   -> token.forced_status
//
// Loading only populates the raw values. Validation and resolution (port
// range, forced status code or phrase, forced TTL parsing) happen in the
// owning packages before the server starts listening, so malformed input
// aborts startup with a descriptive error.
package config
