package response

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/dmitrymomot/failsafe/core/handler"
)

// View renders an error page with the given data. Implementations are
// registered per status code on the error handler's configuration.
type View interface {
	Render(ctx context.Context, w io.Writer, data any) error
}

// Component is the subset of a templ component the view adapter needs.
// Generated templ components satisfy it as-is.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// templateView renders a named html/template.
type templateView struct {
	tmpl *template.Template
	name string
}

// TemplateView creates a View backed by html/template. If name is empty,
// the template is executed directly; otherwise ExecuteTemplate is used.
func TemplateView(tmpl *template.Template, name string) View {
	return &templateView{tmpl: tmpl, name: name}
}

func (v *templateView) Render(_ context.Context, w io.Writer, data any) error {
	if v.tmpl == nil {
		return fmt.Errorf("template is nil")
	}
	if v.name != "" {
		return v.tmpl.ExecuteTemplate(w, v.name, data)
	}
	return v.tmpl.Execute(w, data)
}

// componentView builds a templ component from the error data and renders it.
type componentView struct {
	build func(data any) Component
}

// ComponentView creates a View from a templ-style component factory.
// The factory receives the error data and returns the component to render.
func ComponentView(build func(data any) Component) View {
	return &componentView{build: build}
}

func (v *componentView) Render(ctx context.Context, w io.Writer, data any) error {
	component := v.build(data)
	if component == nil {
		return fmt.Errorf("component is nil")
	}
	if err := component.Render(ctx, w); err != nil {
		return fmt.Errorf("component render error: %w", err)
	}
	return nil
}

// ViewWithStatus creates an HTML response that renders the view with the
// given data and status code. The view output is buffered before writing,
// so a failed render never produces a partial body.
func ViewWithStatus(view View, data any, status int) handler.Response {
	if view == nil {
		return nil
	}
	return func(w http.ResponseWriter, r *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if status == 0 {
			status = http.StatusOK
		}

		var buf bytes.Buffer
		if err := view.Render(r.Context(), &buf, data); err != nil {
			return err
		}

		w.WriteHeader(status)
		_, writeErr := w.Write(buf.Bytes())
		return writeErr
	}
}
