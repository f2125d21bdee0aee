package middleware

import (
	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/maintenance"
	"github.com/dmitrymomot/failsafe/core/response"
)

// MaintenanceConfig configures the maintenance middleware.
type MaintenanceConfig struct {
	// Skip defines a function to skip middleware execution for specific
	// requests, e.g. health checks that must work during maintenance.
	Skip func(ctx handler.Context) bool

	// Policy is the maintenance policy to consult. Defaults to the shared
	// process-wide policy.
	Policy *maintenance.Policy

	// Enabled and RetryAfter, when set, are installed on the policy as
	// override predicates, replacing the environment-backed defaults for
	// the whole process.
	Enabled    func() bool
	RetryAfter func() string
}

// Maintenance creates a maintenance middleware using the shared
// process-wide policy with its environment-backed defaults.
func Maintenance[C handler.Context]() handler.Middleware[C] {
	return MaintenanceWithConfig[C](MaintenanceConfig{})
}

// MaintenanceWithPolicy creates a maintenance middleware consulting the
// given policy instance.
func MaintenanceWithPolicy[C handler.Context](policy *maintenance.Policy) handler.Middleware[C] {
	return MaintenanceWithConfig[C](MaintenanceConfig{Policy: policy})
}

// MaintenanceWithConfig creates a maintenance middleware with custom
// configuration. Constructing it activates the policy: from that point on
// the policy's Active query reflects the configured predicates, and while
// maintenance is enabled every request short-circuits into a synthetic 503
// carrying a Retry-After hint, resolved by the error handler like any
// other error. When maintenance is off, requests pass through unchanged.
func MaintenanceWithConfig[C handler.Context](cfg MaintenanceConfig) handler.Middleware[C] {
	policy := cfg.Policy
	if policy == nil {
		policy = maintenance.Default()
	}
	if cfg.Enabled != nil || cfg.RetryAfter != nil {
		policy.Override(cfg.Enabled, cfg.RetryAfter)
	}
	policy.Install()

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}
			if !policy.Active() {
				return next(ctx)
			}

			ctx.ResponseWriter().Header().Set("Retry-After", policy.RetryAfter())
			return response.Error(response.ErrServiceUnavailable)
		}
	}
}
