// Package authority provides clients for the credential authority that
// mints the tokens this server hands out.
//
// The authority is a black box behind the Client interface: given an app id
// and a requested validity, it returns a fresh opaque token and the validity
// actually granted, or fails with an opaque error. The dispatcher treats any
// failure uniformly; it never retries an exchange.
//
// # Implementations
//
//   - Debug: in-process, mints UUID debug tokens and grants the requested
//     validity. The default during client development.
//   - Remote: HTTP exchange against a real authority endpoint, with
//     transport-level timeouts and bounded connect retries.
//
// The mocks subpackage holds a testify mock of Client for handler and
// dispatcher tests.
package authority
