// Package response provides HTTP response constructors and the structured
// HTTPError type used throughout the failsafe toolkit.
//
// Responses are functions that write to the transport when executed, which
// lets the error handler compose status codes, headers, and bodies without
// committing to a representation up front. HTTPError carries a status code,
// a machine-readable code, and a human-readable message; From converts any
// error into one, honoring a StatusCode() int method when present.
//
// Views abstract templated error pages: TemplateView adapts html/template,
// ComponentView adapts templ-style components. FileWithStatus streams a
// static payload and signals end-of-stream through a completion callback.
package response
