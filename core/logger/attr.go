package logger

import "log/slog"

// Attribute helpers use the empty Attr pattern for nil safety: a zero
// slog.Attr is silently dropped by handlers, so callers never need
// explicit nil checks.

// Error returns an "error" attribute, or an empty Attr for nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}

// Component tags a log record with the emitting component's name.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Status returns an HTTP status attribute.
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
