package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/envoyhq/envoy-backend/internal/api"
	"github.com/envoyhq/envoy-backend/internal/apperr"
)

type contextKey struct{}

// FromContext extracts the verified claims placed by Require.
func FromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(contextKey{}).(*Claims)
	return claims, ok
}

// Require rejects requests without a valid bearer token and stores the
// decoded claims in the request context.
func Require(svc Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				api.Error(w, apperr.New(apperr.Unauthenticated, "missing bearer token"))
				return
			}
			claims, err := svc.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				api.Error(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
		})
	}
}

// RequireRole enforces the baseline allowed-role set for a route: the
// caller's role ordinal must be at least min. Target-dependent rules are
// applied further down in the user service.
func RequireRole(min int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := FromContext(r.Context())
			if !ok {
				api.Error(w, apperr.New(apperr.Unauthenticated, "missing bearer token"))
				return
			}
			if claims.RoleID < min {
				api.Error(w, apperr.New(apperr.Forbidden, "Forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
