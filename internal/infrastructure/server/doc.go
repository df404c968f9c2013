// Package server runs the optional status HTTP server of a mount session.
//
// The server is built on gin with recovery, metrics, CORS and rate limiting
// middleware. It serves Prometheus metrics at /metrics next to the JSON
// status API of package api/http.
//
// Example Usage:
//
//	srv, err := server.New(server.Config{Addr: ":9090", Registry: reg, Metrics: metrics})
//	go srv.Run(ctx)
package server
