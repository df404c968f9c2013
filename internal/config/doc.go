// Package config provides 12-factor configuration management for horoscopefs.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags override environment variables.
//
// Configuration Sections:
//   - Fetch: upstream timeout, retries, rate limit, concurrency, user agent
//   - Breaker: per-host circuit breaker threshold and cooldown
//   - Mount: FUSE options and eager prefetch
//   - Log: level and output format
//   - Metrics: status server address
//
// Example Usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Environment Variables:
//   - HOROSCOPEFS_FETCH_TIMEOUT, HOROSCOPEFS_FETCH_RETRIES, HOROSCOPEFS_FETCH_RATE_LIMIT
//   - HOROSCOPEFS_FETCH_CONCURRENCY, HOROSCOPEFS_FETCH_USER_AGENT
//   - HOROSCOPEFS_BREAKER_THRESHOLD, HOROSCOPEFS_BREAKER_COOLDOWN
//   - HOROSCOPEFS_MOUNT_ALLOW_OTHER, HOROSCOPEFS_MOUNT_SINGLE_THREADED, HOROSCOPEFS_MOUNT_DEBUG
//   - HOROSCOPEFS_MOUNT_PREFETCH, HOROSCOPEFS_MOUNT_ATTR_TIMEOUT
//   - HOROSCOPEFS_LOG_LEVEL, HOROSCOPEFS_LOG_DEV
//   - HOROSCOPEFS_METRICS_ADDR
package config
