// Package logger provides slog attribute helpers shared across the
// toolkit's structured logging.
package logger
