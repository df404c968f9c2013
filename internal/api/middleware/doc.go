// Package middleware provides HTTP middleware for the status server.
//
// Middleware stack includes:
//   - CORS: read-only cross-origin access for dashboards
//   - RateLimit: global token bucket rate limiting
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
