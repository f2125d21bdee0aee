package handler

import (
	"context"
	"net/http"
	"time"
)

// Context defines the contract for request contexts in the framework.
// Transports that cannot provide a richer implementation can use New.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	Param(key string) string
	SetValue(key, val any)
}

// baseContext is the minimal Context implementation backed by the
// request's own context.
type baseContext struct {
	w http.ResponseWriter
	r *http.Request
}

// New wraps a response writer and request into a Context.
func New(w http.ResponseWriter, r *http.Request) Context {
	return &baseContext{w: w, r: r}
}

func (c *baseContext) Deadline() (deadline time.Time, ok bool) { return c.r.Context().Deadline() }

func (c *baseContext) Done() <-chan struct{} { return c.r.Context().Done() }

func (c *baseContext) Err() error { return c.r.Context().Err() }

func (c *baseContext) Value(key any) any { return c.r.Context().Value(key) }

func (c *baseContext) Request() *http.Request { return c.r }

func (c *baseContext) ResponseWriter() http.ResponseWriter { return c.w }

func (c *baseContext) Param(key string) string { return c.r.PathValue(key) }

func (c *baseContext) SetValue(key, val any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, val))
}
