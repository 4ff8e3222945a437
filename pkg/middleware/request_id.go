package middleware

import (
	"net/http"

	"github.com/auditlens/auditlens/pkg/requestid"
	"github.com/go-chi/chi/v5/middleware"
)

// RequestID tags each request with a correlation id: the caller's
// X-Audit-Request-Id when present, otherwise chi's id or a freshly minted
// one. The id is stored on the context for the logger and echoed back on
// the response so clients can quote it.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := requestid.FromHeader(r)

		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		if requestID == "" {
			requestID = requestid.Generate()
		}

		ctx := requestid.ToContext(r.Context(), requestID)
		r = r.WithContext(ctx)

		w.Header().Set(requestid.Header, requestID)
		next.ServeHTTP(w, r)
	})
}
