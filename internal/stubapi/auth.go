package stubapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const identityKey contextKey = "stub_identity"

// bearerIdentity decodes the bearer token's claims when one is present and
// stores the subject on the context. The stub never verifies signatures;
// it only mirrors the shape of the real service's identity handling, and
// every endpoint stays callable anonymously.
func bearerIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			claims := jwt.MapClaims{}
			if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
				if sub, err := claims.GetSubject(); err == nil && sub != "" {
					ctx := context.WithValue(r.Context(), identityKey, sub)
					r = r.WithContext(ctx)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func identityFromRequest(r *http.Request) string {
	if sub, ok := r.Context().Value(identityKey).(string); ok {
		return sub
	}
	return "anonymous"
}
