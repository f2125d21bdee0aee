package shutdown

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds how long draining may delay termination.
	DefaultTimeout = 3 * time.Second

	// DefaultExitStatus is the process exit code on shutdown.
	DefaultExitStatus = 1
)

// Drainer stops accepting new work and waits for in-flight work to finish,
// then fires the completion callback. Implementations must not call done
// more than once, though the coordinator tolerates it.
type Drainer interface {
	Drain(done func())
}

// Coordinator orchestrates graceful drain-then-exit with a timeout
// fallback. The drain callback and the timer race toward a terminate-once
// gate: whichever fires first exits the process, the loser is a no-op.
// Once begun, termination is guaranteed within the configured timeout.
type Coordinator struct {
	timeout    time.Duration
	exitStatus int
	drainer    Drainer
	override   func()
	exitFn     func(int)
	logger     *slog.Logger

	armOnce  sync.Once
	termOnce sync.Once
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithTimeout sets the maximum time between Begin and process exit.
func WithTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithExitStatus sets the process exit code.
func WithExitStatus(code int) Option {
	return func(c *Coordinator) {
		c.exitStatus = code
	}
}

// WithDrainer sets the server handle to drain before exiting.
func WithDrainer(d Drainer) Option {
	return func(c *Coordinator) {
		c.drainer = d
	}
}

// WithOverride replaces the coordinator's termination behavior entirely.
// The override owns shutdown semantics; no timer is armed and the drainer
// is not invoked.
func WithOverride(fn func()) Option {
	return func(c *Coordinator) {
		c.override = fn
	}
}

// WithExitFunc replaces os.Exit, primarily for tests.
func WithExitFunc(fn func(int)) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.exitFn = fn
		}
	}
}

// WithLogger sets a custom logger for shutdown progress.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Coordinator with the given options.
// Defaults to a 3-second timeout, exit status 1, and a no-op logger.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		timeout:    DefaultTimeout,
		exitStatus: DefaultExitStatus,
		exitFn:     os.Exit,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin starts the shutdown sequence. The first call arms it; repeated
// calls are no-ops, so every server-class error during teardown is safe.
// Begin never blocks the caller: the timer and the drain run concurrently
// and the process keeps serving until one of them terminates it.
func (c *Coordinator) Begin() {
	c.armOnce.Do(func() {
		if c.override != nil {
			c.override()
			return
		}

		c.logger.Info("graceful shutdown initiated",
			"timeout", c.timeout,
			"exit_status", c.exitStatus,
		)

		time.AfterFunc(c.timeout, func() {
			c.terminate("timeout")
		})

		if c.drainer != nil {
			go c.drainer.Drain(func() {
				c.terminate("drained")
			})
		}
	})
}

// terminate exits the process exactly once; later callers lose the race
// and return without effect.
func (c *Coordinator) terminate(reason string) {
	c.termOnce.Do(func() {
		c.logger.Info("terminating process", "reason", reason, "exit_status", c.exitStatus)
		c.exitFn(c.exitStatus)
	})
}
