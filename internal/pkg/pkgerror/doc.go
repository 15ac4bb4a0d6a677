// Package pkgerror defines shared error types and sentinel errors used across
// the service.
//
// It helps keep error handling consistent by:
//   - Providing sentinel errors that can be checked with errors.Is.
//   - Providing a structured Error type that carries a client-facing message,
//     a type and a code, which the router maps to HTTP status codes.
package pkgerror
