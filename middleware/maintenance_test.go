package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/failsafe/core/errorhandler"
	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/maintenance"
	"github.com/dmitrymomot/failsafe/core/response"
	"github.com/dmitrymomot/failsafe/middleware"
)

// serve runs a handler chain the way a router would: execute the handler,
// then hand any response error to the error handler.
func serve(ctx handler.Context, h handler.HandlerFunc[handler.Context], eh *errorhandler.Handler) {
	resp := h(ctx)
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		eh.Handle(ctx, err)
	}
}

func okHandler(body string) handler.HandlerFunc[handler.Context] {
	return func(ctx handler.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(body))
			return err
		}
	}
}

func newContext(r *http.Request) (handler.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	return handler.New(handler.NewResponseWriter(rec), r), rec
}

func TestMaintenancePassthroughWhenDisabled(t *testing.T) {
	t.Parallel()

	policy := maintenance.New(maintenance.Config{Mode: "false"})
	mw := middleware.MaintenanceWithPolicy[handler.Context](policy)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, rec := newContext(req)

	resp := mw(okHandler("hello"))(ctx)
	require.NoError(t, resp(ctx.ResponseWriter(), ctx.Request()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Retry-After"))
}

func TestMaintenanceShortCircuitsWhenEnabled(t *testing.T) {
	t.Parallel()

	policy := maintenance.New(maintenance.Config{Mode: "true", RetryAfter: "7200"})
	mw := middleware.MaintenanceWithPolicy[handler.Context](policy)

	exitCh := make(chan int, 1)
	eh := errorhandler.New(
		errorhandler.WithMaintenancePolicy(policy),
		errorhandler.WithTimeout(20*time.Millisecond),
		errorhandler.WithExitFunc(func(code int) { exitCh <- code }),
	)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "application/json")
	ctx, rec := newContext(req)

	serve(ctx, mw(okHandler("unreachable")), eh)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "7200", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"status":503,"message":"Service Unavailable"}`, rec.Body.String())

	select {
	case code := <-exitCh:
		t.Fatalf("maintenance must never shut the process down, got exit %d", code)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestMaintenanceOverridePredicates(t *testing.T) {
	t.Parallel()

	// Environment says disabled with a short retry; the overrides win.
	policy := maintenance.New(maintenance.Config{Mode: "false", RetryAfter: "60"})
	mw := middleware.MaintenanceWithConfig[handler.Context](middleware.MaintenanceConfig{
		Policy:     policy,
		Enabled:    func() bool { return true },
		RetryAfter: func() string { return "14400" },
	})

	exitCh := make(chan int, 1)
	eh := errorhandler.New(
		errorhandler.WithMaintenancePolicy(policy),
		errorhandler.WithTimeout(20*time.Millisecond),
		errorhandler.WithExitFunc(func(code int) { exitCh <- code }),
	)

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	req.Header.Set("Accept", "application/json")
	ctx, rec := newContext(req)

	serve(ctx, mw(okHandler("unreachable")), eh)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "14400", rec.Header().Get("Retry-After"))

	select {
	case <-exitCh:
		t.Fatal("maintenance must never shut the process down")
	case <-time.After(80 * time.Millisecond):
	}
}

func TestMaintenanceSkip(t *testing.T) {
	t.Parallel()

	policy := maintenance.New(maintenance.Config{Mode: "true"})
	mw := middleware.MaintenanceWithConfig[handler.Context](middleware.MaintenanceConfig{
		Policy: policy,
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/health"
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, rec := newContext(req)

	resp := mw(okHandler("ok"))(ctx)
	require.NoError(t, resp(ctx.ResponseWriter(), ctx.Request()))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestMaintenanceInstallActivatesPolicy(t *testing.T) {
	t.Parallel()

	policy := maintenance.New(maintenance.Config{Mode: "true"})
	assert.False(t, policy.Active(), "policy must be inactive before the middleware exists")

	_ = middleware.MaintenanceWithPolicy[handler.Context](policy)

	assert.True(t, policy.Active())

	// The maintenance error carries its own 503 for the error handler.
	assert.Equal(t, http.StatusServiceUnavailable, response.ErrServiceUnavailable.StatusCode())
}
