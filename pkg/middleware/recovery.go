package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "sitterhub/pkg/errors"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)

					appErr := apperrors.Internal("Internal server error", fmt.Errorf("panic: %v", err))
					_ = httputil.WriteError(w, r, appErr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
