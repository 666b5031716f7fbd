package middleware

import (
	"net/http"

	apperrors "sitterhub/pkg/errors"
	httputil "sitterhub/pkg/http"
)

func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = httputil.WriteError(w, r, apperrors.New(apperrors.CodeBadRequest,
					"Request body too large", http.StatusRequestEntityTooLarge))
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
