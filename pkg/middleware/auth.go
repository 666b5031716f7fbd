package middleware

import (
	"context"
	"net/http"
	"strings"

	"sitterhub/pkg/auth"
	apperrors "sitterhub/pkg/errors"
	httputil "sitterhub/pkg/http"
	"sitterhub/pkg/logger"
	"sitterhub/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves a raw bearer token into an identity.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

type Authenticator struct {
	verifier    TokenVerifier
	revocations auth.RevocationStore
	log         *logger.Logger
}

func NewAuthenticator(verifier TokenVerifier, revocations auth.RevocationStore, log *logger.Logger) *Authenticator {
	return &Authenticator{
		verifier:    verifier,
		revocations: revocations,
		log:         log,
	}
}

func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(bearerPrefix):]), true
}

func (a *Authenticator) resolve(ctx context.Context, r *http.Request) (auth.Identity, error) {
	token, ok := BearerToken(r)
	if !ok {
		return auth.Identity{}, apperrors.Unauthorized("Missing or malformed authorization header")
	}

	identity, err := a.verifier.Verify(token)
	if err != nil {
		return auth.Identity{}, apperrors.Unauthorized("Invalid or expired token")
	}

	if a.revocations != nil && identity.TokenID != "" {
		revoked, err := a.revocations.IsRevoked(ctx, identity.TokenID)
		if err != nil {
			a.log.Error("Token revocation lookup failed", "error", err)
			return auth.Identity{}, apperrors.Unavailable("Authentication")
		}
		if revoked {
			return auth.Identity{}, apperrors.Unauthorized("Token has been revoked")
		}
	}

	return identity, nil
}

// Authenticate rejects requests without a valid bearer token and stores
// the caller identity in the request context.
func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, err := a.resolve(r.Context(), r)
		if err != nil {
			a.log.Warn("Authentication failed",
				"request_id", RequestIDFromContext(r.Context()),
				"path", r.URL.Path,
				"error", err,
			)
			if writeErr := httputil.WriteError(w, r, err); writeErr != nil {
				a.log.Error("failed to write error response", "handler", "Authenticate", "operation", "WriteError", "error", writeErr)
			}
			return
		}

		next(w, r.WithContext(auth.WithIdentity(r.Context(), identity)), ps)
	}
}

// RequireRole authenticates and then rejects callers of any other role.
func (a *Authenticator) RequireRole(role model.Role, next httprouter.Handle) httprouter.Handle {
	return a.Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		identity, _ := auth.FromContext(r.Context())
		if identity.Role != role {
			if writeErr := httputil.WriteError(w, r, apperrors.Forbidden("Only "+string(role)+"s can access this resource")); writeErr != nil {
				a.log.Error("failed to write error response", "handler", "RequireRole", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		next(w, r, ps)
	})
}

// CallerKey buckets rate limiting by verified caller id, falling back to
// the remote IP for anonymous or invalid credentials.
func (a *Authenticator) CallerKey(r *http.Request) string {
	if token, ok := BearerToken(r); ok {
		if identity, err := a.verifier.Verify(token); err == nil {
			return "user:" + identity.ID
		}
	}
	return RemoteIP(r)
}
