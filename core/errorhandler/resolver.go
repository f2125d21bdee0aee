package errorhandler

import (
	"net/http"

	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/response"
)

// resolution is one strategy in the precedence chain: the first entry
// whose match reports true runs, and resolution stops there.
type resolution struct {
	match func() bool
	run   func()
}

// resolve performs exactly one response strategy in strict precedence
// order: custom handler, custom view, custom static payload, then the
// content-negotiated default. Handlers own their response entirely; the
// static branch defers the continue/shutdown decision until end-of-stream
// so the process is never torn down mid-transfer. Anything that is not a
// client error or an active maintenance condition ends in shutdown.
func (h *Handler) resolve(ctx handler.Context, ec ErrorContext, cat Category) {
	if ctx == nil || ctx.ResponseWriter() == nil {
		h.afterResponse(cat)
		return
	}

	// A fully-written response cannot be replaced; keep it and run only
	// the continue/shutdown decision.
	if ww, ok := ctx.ResponseWriter().(*handler.ResponseWriter); ok && ww.Written() {
		h.afterResponse(cat)
		return
	}

	// The maintenance middleware sets Retry-After before the error reaches
	// us; only fill it in when nothing did.
	if cat == Maintenance {
		hdr := ctx.ResponseWriter().Header()
		if hdr.Get("Retry-After") == "" {
			hdr.Set("Retry-After", h.policy.RetryAfter())
		}
	}

	chain := []resolution{
		{
			match: func() bool { _, ok := h.cfg.handlers[ec.Status]; return ok },
			run: func() {
				h.cfg.handlers[ec.Status](ctx, ec)
				h.afterResponse(cat)
			},
		},
		{
			match: func() bool { _, ok := h.cfg.views[ec.Status]; return ok },
			run: func() {
				response.Render(ctx, response.ViewWithStatus(h.cfg.views[ec.Status], ec, ec.Status))
				h.afterResponse(cat)
			},
		},
		{
			match: func() bool { _, ok := h.cfg.static[ec.Status]; return ok },
			run: func() {
				// Decision deferred to end-of-stream.
				done := func() { h.afterResponse(cat) }
				response.Render(ctx, response.FileWithStatus(h.cfg.static[ec.Status], ec.Status, done))
			},
		},
		{
			match: func() bool { return cat.Recoverable() },
			run: func() {
				h.renderDefault(ctx, ec.Status, ec)
				h.afterResponse(cat)
			},
		},
		{
			// Uncategorized server-class failure with no custom strategy:
			// respond 500 and always shut down.
			match: func() bool { return true },
			run: func() {
				forced := ec
				forced.Status = http.StatusInternalServerError
				if forced.Message == "" || forced.Message == http.StatusText(ec.Status) {
					forced.Message = http.StatusText(http.StatusInternalServerError)
				}
				h.renderDefault(ctx, forced.Status, forced)
				h.coord.Begin()
			},
		},
	}

	for _, step := range chain {
		if step.match() {
			step.run()
			return
		}
	}
}

// afterResponse runs the continue/shutdown decision shared by the custom
// and default strategies: client errors and maintenance responses keep
// the process alive, everything else drains and exits.
func (h *Handler) afterResponse(cat Category) {
	if cat.Recoverable() {
		return
	}
	h.coord.Begin()
}
