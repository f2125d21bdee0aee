package errorhandler

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/failsafe/core/handler"
	"github.com/dmitrymomot/failsafe/core/response"
)

// errorPayload is the JSON body shape of the default responder.
type errorPayload struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// media is a negotiated representation token.
type media int

const (
	mediaJSON media = iota
	mediaHTML
	mediaText
)

// renderDefault is the content-negotiated fallback used when no custom
// strategy matched. A configured default view wins, then a default static
// payload, then negotiation against the Accept header.
func (h *Handler) renderDefault(ctx handler.Context, status int, ec ErrorContext) {
	msg := ec.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	if h.cfg.defaultView != nil {
		response.Render(ctx, response.ViewWithStatus(h.cfg.defaultView, ec, status))
		return
	}

	if h.cfg.defaultStatic != "" {
		response.Render(ctx, response.FileWithStatus(h.cfg.defaultStatic, status, nil))
		return
	}

	switch negotiate(ctx.Request().Header.Get("Accept")) {
	case mediaHTML:
		response.Render(ctx, response.HTMLWithStatus(msg, status))
	case mediaText:
		response.Render(ctx, response.StringWithStatus(msg, status))
	default:
		body := errorPayload{Status: status, Message: msg}
		var v any = body
		if h.cfg.serializer != nil {
			v = h.cfg.serializer(body)
		}
		response.Render(ctx, response.JSONWithStatus(v, status))
	}
}

// negotiate picks the representation from the Accept header. Tokens are
// scanned in header order; the first recognized one wins. An absent or
// wildcard-only Accept falls back to JSON, matching API-first clients.
func negotiate(accept string) media {
	for part := range strings.SplitSeq(accept, ",") {
		mediaType := strings.TrimSpace(part)
		if i := strings.IndexByte(mediaType, ';'); i >= 0 {
			mediaType = strings.TrimSpace(mediaType[:i])
		}
		switch {
		case mediaType == "application/json" || mediaType == "application/*":
			return mediaJSON
		case mediaType == "text/html" || mediaType == "text/*":
			return mediaHTML
		case mediaType == "text/plain":
			return mediaText
		case mediaType == "*/*":
			return mediaJSON
		}
	}
	return mediaJSON
}
