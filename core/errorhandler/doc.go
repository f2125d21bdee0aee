// Package errorhandler is the policy layer that decides how an
// already-caught request error is resolved and whether the process should
// keep serving.
//
// One Handler is constructed per service and invoked once per surfaced
// error. Resolution walks a strict precedence chain — custom handler,
// custom view, custom static payload, content-negotiated default — and
// ends with a continue/shutdown decision: client errors (4xx) and active
// maintenance responses never terminate the process, everything else
// drains in-flight connections and exits within a bounded timeout.
//
// Basic wiring:
//
//	eh := errorhandler.New(
//		errorhandler.WithView(http.StatusNotFound, notFoundView),
//		errorhandler.WithServer(srv),
//		errorhandler.WithTimeout(5*time.Second),
//		errorhandler.WithLogger(logger),
//	)
//
//	// framework convention
//	router := router.New(router.WithErrorHandler(errorhandler.Callback[*MyContext](eh)))
//
//	// stdlib/chi convention
//	mux := chi.NewRouter()
//	mux.Use(eh.Recoverer())
package errorhandler
