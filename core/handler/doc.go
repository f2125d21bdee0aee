// Package handler defines the transport contract shared by the failsafe
// toolkit: a type-safe request Context, the Response and Middleware
// function types, and a status-tracking ResponseWriter wrapper.
//
// The error-handling packages consume these abstractions instead of a
// concrete router, so the toolkit can sit behind any mux that exposes
// http.ResponseWriter and *http.Request.
package handler
