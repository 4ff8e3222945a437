// Package requestid tags every stub-server request with a correlation id
// so log lines for one upload or register call can be tied together.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Header is the wire header the id travels in, both on requests from
// callers that already carry one and echoed back on responses.
const Header = "X-Audit-Request-Id"

type contextKey string

const requestIDKey contextKey = "audit_request_id"

// Generate mints a fresh correlation id.
func Generate() string {
	return uuid.New().String()
}

// ToContext stores the correlation id on the context.
func ToContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// FromContext returns the correlation id, or "" when the request was
// never tagged.
func FromContext(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// FromHeader reads the caller-supplied correlation id off the request.
func FromHeader(r *http.Request) string {
	return r.Header.Get(Header)
}

// FromRequest returns the correlation id the middleware stored on the
// request's context.
func FromRequest(r *http.Request) string {
	return FromContext(r.Context())
}
