package maintenance

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// DefaultRetryAfter is the fallback Retry-After value, in seconds, used
// when the configured source value is missing, non-positive, or unparseable.
const DefaultRetryAfter = "3600"

// ErrExternallyManaged is the panic cause when SetEnabled is called while
// override predicates are installed. A caller that manages maintenance
// state elsewhere must not also drive the built-in setter.
var ErrExternallyManaged = errors.New("maintenance state is managed by override predicates")

// Config holds the environment-sourced maintenance settings.
type Config struct {
	// Mode enables maintenance when it equals "true" (case-insensitive).
	Mode string `env:"MAINTENANCE_MODE" envDefault:""`

	// RetryAfter is the Retry-After source value: integer seconds or an HTTP-date.
	RetryAfter string `env:"MAINTENANCE_RETRY_AFTER" envDefault:""`
}

// Policy is the process-wide maintenance oracle. It answers whether the
// service is in maintenance and what Retry-After value to advertise.
//
// Exactly one pair of enabled/retry-after predicates is active per policy.
// The defaults evaluate the configured values; Override replaces them with
// caller-supplied predicates (e.g. a feature-flag service). Reads are safe
// for any number of concurrent requests; writes are last-writer-wins.
type Policy struct {
	mu         sync.RWMutex
	cfg        Config
	enabled    func() bool
	retryAfter func() string
	overridden bool
	installed  bool
	forced     *bool
}

// New creates a Policy evaluating the given configuration values.
func New(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// Override replaces the active predicates for this policy. Passing nil for
// either predicate keeps the default for that concern. After an override is
// installed, SetEnabled panics: the state lives at the override's source.
func (p *Policy) Override(enabled func() bool, retryAfter func() string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if enabled != nil {
		p.enabled = enabled
		p.overridden = true
	}
	if retryAfter != nil {
		p.retryAfter = retryAfter
		p.overridden = true
	}
}

// SetEnabled forces the maintenance flag on or off, superseding the
// configured value. It panics if override predicates are installed,
// because the caller then manages maintenance state elsewhere and this
// setter would silently disagree with it.
func (p *Policy) SetEnabled(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.overridden {
		panic(fmt.Errorf("%w: use the override's own state source", ErrExternallyManaged))
	}
	p.forced = &v
}

// Install marks the policy as activated by a maintenance middleware.
// Active reports false unconditionally until a middleware installs the
// policy, so constructing an error handler alone never flips responses
// into maintenance mode.
func (p *Policy) Install() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.installed = true
}

// Active reports whether maintenance mode is currently in effect.
func (p *Policy) Active() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.installed {
		return false
	}
	return p.enabledLocked()
}

// Enabled evaluates the active enabled predicate regardless of whether a
// middleware installed the policy. Most callers want Active instead.
func (p *Policy) Enabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabledLocked()
}

func (p *Policy) enabledLocked() bool {
	if p.enabled != nil {
		return p.enabled()
	}
	if p.forced != nil {
		return *p.forced
	}
	return strings.EqualFold(strings.TrimSpace(p.cfg.Mode), "true")
}

// RetryAfter returns the normalized Retry-After header value: a positive
// integer number of seconds, a verbatim HTTP-date, or DefaultRetryAfter.
func (p *Policy) RetryAfter() string {
	p.mu.RLock()
	raw := p.cfg.RetryAfter
	if p.retryAfter != nil {
		fn := p.retryAfter
		p.mu.RUnlock()
		return normalizeRetryAfter(fn())
	}
	p.mu.RUnlock()
	return normalizeRetryAfter(raw)
}

// normalizeRetryAfter collapses the source value to a valid header value.
// Positive integers pass through as seconds, valid HTTP-dates pass through
// verbatim, everything else becomes DefaultRetryAfter.
func normalizeRetryAfter(raw string) string {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		return strconv.Itoa(n)
	}
	if raw != "" {
		if _, err := http.ParseTime(raw); err == nil {
			return raw
		}
	}
	return DefaultRetryAfter
}

var (
	defaultPolicy     *Policy
	defaultPolicyOnce sync.Once
)

// Default returns the shared process-wide policy, creating it from the
// environment on first use. Components that are not handed an explicit
// policy fall back to this one.
func Default() *Policy {
	defaultPolicyOnce.Do(func() {
		var cfg Config
		// A missing .env or unset variables leave maintenance disabled.
		_ = loadConfig(&cfg)
		defaultPolicy = New(cfg)
	})
	return defaultPolicy
}
