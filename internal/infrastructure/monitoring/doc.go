/*
Package monitoring provides metrics collection for a mount session.

# Overview

This package implements Prometheus-based metrics collection for the
horoscope filesystem, tracking upstream fetches, source warm-up latency,
filesystem operations and the status server itself.

# Features

- Fetch outcomes per source and content type (ok, unavailable, error)
- Warm-up latency per source
- Filesystem operations per path kind
- Status server request metrics

# Usage

	metrics := monitoring.NewMetrics()

	reg, err := registry.New(catalog, id,
		registry.WithWarmHook(metrics.RecordWarm),
	)

	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

Every Metrics value owns its registry, so nothing is registered globally.
*/
package monitoring
