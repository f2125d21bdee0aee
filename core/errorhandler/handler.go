package errorhandler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/logger"
	"github.com/dmitrymomot/failsafe/core/maintenance"
	"github.com/dmitrymomot/failsafe/core/response"
	"github.com/dmitrymomot/failsafe/core/shutdown"
)

// Handler is the single entry point for surfaced request errors. It
// classifies the error, picks exactly one response strategy, and decides
// whether the process keeps serving or begins a graceful shutdown.
//
// A Handler holds no mutable state beyond its captured configuration:
// construct it once and reuse it for every error across the process
// lifetime.
type Handler struct {
	cfg    config
	policy *maintenance.Policy
	coord  *shutdown.Coordinator
	logger *slog.Logger
}

// New creates a Handler from the given options.
func New(opts ...Option) *Handler {
	cfg := config{
		handlers:   make(map[int]CustomHandler),
		views:      make(map[int]response.View),
		static:     make(map[int]string),
		timeout:    shutdown.DefaultTimeout,
		exitStatus: shutdown.DefaultExitStatus,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy := cfg.policy
	if policy == nil {
		policy = maintenance.Default()
	}

	coordOpts := []shutdown.Option{
		shutdown.WithTimeout(cfg.timeout),
		shutdown.WithExitStatus(cfg.exitStatus),
		shutdown.WithLogger(cfg.logger),
	}
	if cfg.drainer != nil {
		coordOpts = append(coordOpts, shutdown.WithDrainer(cfg.drainer))
	}
	if cfg.shutdownOverride != nil {
		coordOpts = append(coordOpts, shutdown.WithOverride(cfg.shutdownOverride))
	}
	if cfg.exitFn != nil {
		coordOpts = append(coordOpts, shutdown.WithExitFunc(cfg.exitFn))
	}

	return &Handler{
		cfg:    cfg,
		policy: policy,
		coord:  shutdown.New(coordOpts...),
		logger: cfg.logger,
	}
}

// Handle resolves one surfaced error: it derives a status, classifies it,
// produces exactly one response, and triggers graceful shutdown for
// server-class failures. It never re-raises; every error context leaves
// fully resolved.
func (h *Handler) Handle(ctx handler.Context, err error) {
	ec := newErrorContext(ctx, err)
	cat := Classify(ec.Status, h.policy.Active())

	h.log(ctx, ec, cat)
	h.resolve(ctx, ec, cat)
}

// HandleDetached resolves an error that has no response channel, e.g. one
// surfaced after the client went away. Rendering is skipped entirely; only
// the continue/shutdown decision runs.
func (h *Handler) HandleDetached(err error) {
	ec := newErrorContext(nil, err)
	cat := Classify(ec.Status, h.policy.Active())

	h.log(nil, ec, cat)
	if !cat.Recoverable() {
		h.coord.Begin()
	}
}

// Callback adapts the Handler to the framework's error-handler signature
// for a concrete context type.
func Callback[C handler.Context](h *Handler) handler.ErrorHandler[C] {
	return func(ctx C, err error) {
		h.Handle(ctx, err)
	}
}

// HandleHTTP adapts the plain net/http calling convention to Handle.
func (h *Handler) HandleHTTP(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := w.(*handler.ResponseWriter); !ok {
		w = handler.NewResponseWriter(w)
	}
	h.Handle(handler.New(w, r), err)
}

// Recoverer returns a net/http middleware compatible with stdlib and chi
// routers. It recovers panics from downstream handlers, converts them into
// server-class errors, and delegates to Handle. This is the adapter for
// routers whose handlers cannot return errors.
func (h *Handler) Recoverer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := handler.NewResponseWriter(w)
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("panic: %v", rec)
					}
					h.Handle(handler.New(ww, r), err)
				}
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// log emits one structured record per resolution. Server-class failures
// log at error level since they are about to take the process down.
func (h *Handler) log(ctx handler.Context, ec ErrorContext, cat Category) {
	attrs := []any{
		logger.Component("errorhandler"),
		slog.String("incident_id", ec.ID.String()),
		logger.Status(ec.Status),
		slog.String("category", cat.String()),
		logger.Error(ec.Err),
	}
	if ctx != nil {
		r := ctx.Request()
		attrs = append(attrs, "method", r.Method, "path", r.URL.Path)
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				attrs = append(attrs, "route", pattern)
			}
		}
	}

	switch cat {
	case ClientError:
		h.logger.Debug("request error resolved", attrs...)
	case Maintenance:
		h.logger.Info("maintenance response served", attrs...)
	default:
		h.logger.Error("server error, shutting down", attrs...)
	}
}
