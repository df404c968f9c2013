// Package http implements the read-only status API of a mount session.
//
// Routes:
//   - GET /          liveness
//   - GET /health    session and warm-up summary
//   - GET /sources   every Source with cached content sizes
//   - GET /sources/:source
//   - GET /breakers  circuit breaker state per upstream host
//   - GET /metrics/json
//
// Handlers only report what is already cached; they never trigger a fetch.
package http
