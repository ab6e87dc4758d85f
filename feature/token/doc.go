// Package token implements the token issuance endpoint, the core of the
// stub server.
//
// A request identifies a client application (appId) and a project
// (projectId) in a JSON or form-encoded POST body. The dispatch service
// runs a strict, ordered validation pipeline over the buffered request:
//
//	forced-response override -> method -> content type -> UTF-8 decode
//	-> body parse -> object shape -> appId -> projectId -> project
//	cross-check -> forced token -> authority mint
//
// Each step short-circuits with a plain-text error response; only a fully
// valid request reaches the credential authority, and at most once. The
// success response is a JSON body {"token": ..., "ttlMillis": ...}. Every
// response, success or error, carries a permissive CORS allow-origin
// header.
//
// # Operator overrides
//
// Three overrides make the server deterministic for fault-injection
// testing: a forced status (answers every request before any validation),
// a forced token (skips the authority) and a forced TTL (replaces the
// granted validity). Raw override strings resolve once at startup; a
// malformed override aborts the process before the listener opens.
//
// # HTTP Endpoints
//
//   - ANY / (path ignored) : the token exchange endpoint.
package token
