package handler

import "net/http"

// Response renders one HTTP response: headers, status code, body. An
// error it returns surfaces to the failsafe error handler, which owns
// resolving it.
type Response func(w http.ResponseWriter, r *http.Request) error

// HandlerFunc is a type-safe request handler over a custom context type.
type HandlerFunc[C Context] func(ctx C) Response

// ErrorHandler resolves an error surfaced while serving a request.
// errorhandler.Callback produces one bound to a Handler.
type ErrorHandler[C Context] func(ctx C, err error)

// Middleware wraps handlers with cross-cutting behavior, such as the
// maintenance gate.
type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
