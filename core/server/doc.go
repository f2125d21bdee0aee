// Package server provides an http.Server wrapper with graceful shutdown,
// environment-based configuration, and optional TLS. Its Drain method
// satisfies the drain contract consumed by the shutdown coordinator, so a
// Server can be passed to the error handler as the server reference whose
// in-flight connections are drained before the process terminates.
package server
