// Package logging provides structured logging using uber/zap.
//
// This package offers two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Logs go to stderr by default. Fetch failures are logged at debug level
// only; they never change what the mounted files contain.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Mounted", zap.String("mountpoint", "/mnt/horoscope"))
//	logger.Debug("Fetch failed", zap.Error(err))
package logging
