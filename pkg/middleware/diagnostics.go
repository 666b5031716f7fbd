package middleware

import (
	"net/http"

	httputil "sitterhub/pkg/http"
)

// Diagnostics exposes wrapped error causes in responses when enabled.
// It must never be enabled in production.
func Diagnostics(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(httputil.WithDiagnostics(r.Context())))
		})
	}
}
