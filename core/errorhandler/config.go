package errorhandler

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/maintenance"
	"github.com/dmitrymomot/failsafe/core/response"
	"github.com/dmitrymomot/failsafe/core/shutdown"
)

// CustomHandler fully owns the response for its registered status code.
// The resolver passes control to it and only runs the continue/shutdown
// decision afterward.
type CustomHandler func(ctx handler.Context, ec ErrorContext)

// Serializer transforms the JSON error payload before encoding, e.g. to
// wrap it in an envelope the rest of the API uses.
type Serializer func(v any) any

// config is immutable after New; reconfiguration means a new Handler.
type config struct {
	handlers      map[int]CustomHandler
	views         map[int]response.View
	defaultView   response.View
	static        map[int]string
	defaultStatic string

	timeout          time.Duration
	exitStatus       int
	drainer          shutdown.Drainer
	shutdownOverride func()
	exitFn           func(int)

	serializer Serializer
	policy     *maintenance.Policy
	logger     *slog.Logger
}

// Option configures a Handler at construction time.
type Option func(*config)

// WithHandler registers a custom handler for the exact status code.
// Handlers take precedence over views, static payloads, and the default
// responder.
func WithHandler(status int, fn CustomHandler) Option {
	return func(c *config) {
		if fn != nil {
			c.handlers[status] = fn
		}
	}
}

// WithView registers a templated error page for the exact status code.
func WithView(status int, v response.View) Option {
	return func(c *config) {
		if v != nil {
			c.views[status] = v
		}
	}
}

// WithDefaultView sets the view the default responder renders when no
// status-specific strategy matched.
func WithDefaultView(v response.View) Option {
	return func(c *config) {
		c.defaultView = v
	}
}

// WithStaticFile registers a static payload for the exact status code.
func WithStaticFile(status int, path string) Option {
	return func(c *config) {
		if path != "" {
			c.static[status] = path
		}
	}
}

// WithDefaultStaticFile sets the static payload the default responder
// streams when no view is configured either.
func WithDefaultStaticFile(path string) Option {
	return func(c *config) {
		c.defaultStatic = path
	}
}

// WithTimeout bounds graceful shutdown latency. Default 3s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExitStatus sets the process exit code used on shutdown. Default 1.
func WithExitStatus(code int) Option {
	return func(c *config) {
		c.exitStatus = code
	}
}

// WithServer sets the server handle to drain before terminating.
func WithServer(d shutdown.Drainer) Option {
	return func(c *config) {
		c.drainer = d
	}
}

// WithShutdownOverride replaces the default timeout-based terminator
// entirely. The override owns termination semantics.
func WithShutdownOverride(fn func()) Option {
	return func(c *config) {
		c.shutdownOverride = fn
	}
}

// WithSerializer sets the JSON payload transform.
func WithSerializer(fn Serializer) Option {
	return func(c *config) {
		c.serializer = fn
	}
}

// WithMaintenancePolicy injects the maintenance policy instance shared
// with the maintenance middleware. Defaults to maintenance.Default().
func WithMaintenancePolicy(p *maintenance.Policy) Option {
	return func(c *config) {
		if p != nil {
			c.policy = p
		}
	}
}

// WithLogger sets the logger for resolution and shutdown events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExitFunc replaces os.Exit for the shutdown coordinator, primarily
// for tests.
func WithExitFunc(fn func(int)) Option {
	return func(c *config) {
		c.exitFn = fn
	}
}
