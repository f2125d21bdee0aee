package server

import "time"

const (
	// DefaultReadTimeout bounds reading an incoming request.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout bounds writing a response.
	DefaultWriteTimeout = 15 * time.Second

	// DefaultIdleTimeout closes keep-alive connections that stay quiet.
	DefaultIdleTimeout = 60 * time.Second

	// DefaultShutdownTimeout bounds the drain phase of a graceful stop.
	DefaultShutdownTimeout = 30 * time.Second

	// DefaultMaxHeaderBytes caps request header size.
	DefaultMaxHeaderBytes = 1 << 20 // 1 MB
)
