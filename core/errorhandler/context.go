package errorhandler

import (
	"errors"

	"github.com/google/uuid"

	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/response"
)

// ErrorContext carries everything the resolver needs about one failed
// request. It lives for a single resolution and is never persisted.
type ErrorContext struct {
	// ID is an incident identifier for log correlation. It never appears
	// in response bodies.
	ID uuid.UUID

	// Status is the derived HTTP status, or 0 when no source provided one.
	Status int

	// Message is the human-readable error message.
	Message string

	// Err is the original error, untouched.
	Err error
}

// newErrorContext derives an ErrorContext from the error and, failing
// that, from the transport's already-written status code. A wholly absent
// status stays zero and classifies as server-class.
func newErrorContext(ctx handler.Context, err error) ErrorContext {
	ec := ErrorContext{ID: uuid.New(), Err: err}

	var httpErr response.HTTPError
	switch {
	case err == nil:
	case errors.As(err, &httpErr):
		ec.Status = httpErr.Status
		ec.Message = httpErr.Message
	default:
		if sc, ok := err.(interface{ StatusCode() int }); ok {
			ec.Status = sc.StatusCode()
		}
		ec.Message = err.Error()
	}

	if ec.Status == 0 && ctx != nil {
		if ww, ok := ctx.ResponseWriter().(*handler.ResponseWriter); ok && ww.Written() {
			ec.Status = ww.Status()
		}
	}

	return ec
}
