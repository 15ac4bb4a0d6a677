// Package pkglog contains logging helpers used across the service.
//
// It is built around slog and keeps logs consistent by:
//   - Initializing a JSON handler with stable keys ("ts", "severity", "file").
//   - Attaching request correlation IDs (when present) to each log record.
//   - Allowing the level to be lowered or raised once configuration is read.
package pkglog
