package maintenance

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultEnabledKey    = "maintenance:enabled"
	defaultRetryAfterKey = "maintenance:retry_after"
	defaultRedisTimeout  = 500 * time.Millisecond
)

// RedisSource derives maintenance state from Redis keys, so a fleet of
// instances can be toggled from one place. Use its predicates with
// Policy.Override:
//
//	src := maintenance.NewRedisSource(client)
//	policy.Override(src.Enabled, src.RetryAfter)
//
// A read error or missing key reports maintenance disabled; the service
// keeps serving rather than failing closed on a flaky flag store.
type RedisSource struct {
	client        redis.UniversalClient
	enabledKey    string
	retryAfterKey string
	timeout       time.Duration
}

// RedisOption configures a RedisSource.
type RedisOption func(*RedisSource)

// WithEnabledKey overrides the key holding the maintenance flag.
func WithEnabledKey(key string) RedisOption {
	return func(s *RedisSource) {
		s.enabledKey = key
	}
}

// WithRetryAfterKey overrides the key holding the Retry-After source value.
func WithRetryAfterKey(key string) RedisOption {
	return func(s *RedisSource) {
		s.retryAfterKey = key
	}
}

// WithReadTimeout bounds each Redis read.
func WithReadTimeout(d time.Duration) RedisOption {
	return func(s *RedisSource) {
		s.timeout = d
	}
}

// NewRedisSource creates a RedisSource with the given client and options.
func NewRedisSource(client redis.UniversalClient, opts ...RedisOption) *RedisSource {
	s := &RedisSource{
		client:        client,
		enabledKey:    defaultEnabledKey,
		retryAfterKey: defaultRetryAfterKey,
		timeout:       defaultRedisTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports true iff the enabled key holds "true" (case-insensitive).
func (s *RedisSource) Enabled() bool {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.enabledKey).Result()
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(val), "true")
}

// RetryAfter returns the raw retry-after value from Redis. The policy
// normalizes it, so missing keys or read errors simply fall back to the
// default value.
func (s *RedisSource) RetryAfter() string {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.retryAfterKey).Result()
	if err != nil {
		return ""
	}
	return val
}
