// Package middleware provides request-intercepting middleware for the
// failsafe toolkit, following the Config-struct-plus-factory convention:
// X() for defaults, XWithConfig(cfg) for customization, all generic over
// the handler.Context type.
package middleware
