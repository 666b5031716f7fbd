package auth

import (
	"context"

	"sitterhub/pkg/model"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	ID       string
	Role     model.Role
	TokenID  string
	ExpireAt int64
}

func (i Identity) IsParent() bool {
	return i.Role == model.RoleParent
}

func (i Identity) IsBabysitter() bool {
	return i.Role == model.RoleBabysitter
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
