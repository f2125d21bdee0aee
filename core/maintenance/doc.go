// Package maintenance implements the maintenance-mode oracle: a policy
// object that answers whether the service is deliberately unavailable and
// what Retry-After hint to advertise.
//
// The default policy reads MAINTENANCE_MODE and MAINTENANCE_RETRY_AFTER
// from the environment. Deployments that keep the flag elsewhere install
// override predicates with Policy.Override; RedisSource ships predicates
// backed by a shared Redis instance. While overrides are installed the
// built-in SetEnabled setter panics, because two writers for the same flag
// is a programming error, not a runtime condition.
//
// The policy reports inactive until a maintenance middleware installs it,
// so merely constructing an error handler never puts responses into
// maintenance mode.
package maintenance
