package maintenance_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/failsafe/core/maintenance"
)

// flagStore stubs the single Redis command the source issues. Missing
// keys report redis.Nil like a real server.
type flagStore struct {
	redis.UniversalClient
	values map[string]string
}

func (s *flagStore) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	if v, ok := s.values[key]; ok {
		cmd.SetVal(v)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func TestRedisSourceEnabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values map[string]string
		want   bool
	}{
		{"true", map[string]string{"maintenance:enabled": "true"}, true},
		{"case insensitive with spaces", map[string]string{"maintenance:enabled": "  TRUE "}, true},
		{"false", map[string]string{"maintenance:enabled": "false"}, false},
		{"numeric one is not true", map[string]string{"maintenance:enabled": "1"}, false},
		{"missing key", map[string]string{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := maintenance.NewRedisSource(&flagStore{values: tt.values})
			assert.Equal(t, tt.want, src.Enabled())
		})
	}
}

func TestRedisSourceRetryAfter(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		t.Parallel()

		src := maintenance.NewRedisSource(&flagStore{values: map[string]string{
			"maintenance:retry_after": "7200",
		}})
		assert.Equal(t, "7200", src.RetryAfter())
	})

	t.Run("missing key reads empty", func(t *testing.T) {
		t.Parallel()

		src := maintenance.NewRedisSource(&flagStore{values: map[string]string{}})
		assert.Empty(t, src.RetryAfter())
	})
}

func TestRedisSourceCustomKeys(t *testing.T) {
	t.Parallel()

	src := maintenance.NewRedisSource(
		&flagStore{values: map[string]string{
			"flags:maint":       "true",
			"flags:retry_after": "600",
		}},
		maintenance.WithEnabledKey("flags:maint"),
		maintenance.WithRetryAfterKey("flags:retry_after"),
	)

	assert.True(t, src.Enabled())
	assert.Equal(t, "600", src.RetryAfter())
}

func TestRedisSourceFailOpen(t *testing.T) {
	t.Parallel()

	// Unroutable flag store: reads fail fast and maintenance stays off.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	src := maintenance.NewRedisSource(client, maintenance.WithReadTimeout(100*time.Millisecond))

	assert.False(t, src.Enabled())
	assert.Empty(t, src.RetryAfter())

	policy := maintenance.New(maintenance.Config{})
	policy.Override(src.Enabled, src.RetryAfter)
	policy.Install()

	assert.False(t, policy.Active())
	assert.Equal(t, maintenance.DefaultRetryAfter, policy.RetryAfter())
}

func TestRedisSourceDrivesPolicy(t *testing.T) {
	t.Parallel()

	store := &flagStore{values: map[string]string{
		"maintenance:enabled": "true",
	}}
	src := maintenance.NewRedisSource(store)

	policy := maintenance.New(maintenance.Config{})
	policy.Override(src.Enabled, src.RetryAfter)
	policy.Install()

	require.True(t, policy.Active())
	// No retry-after key set: the policy falls back to the default.
	assert.Equal(t, maintenance.DefaultRetryAfter, policy.RetryAfter())

	store.values["maintenance:retry_after"] = "14400"
	assert.Equal(t, "14400", policy.RetryAfter())

	assert.Panics(t, func() { policy.SetEnabled(false) })
}
