package service

import (
	"sitterhub/pkg/auth"
	"sitterhub/pkg/model"
)

type Action string

const (
	ActionTransition Action = "transition"
	ActionCancel     Action = "cancel"
	ActionDelete     Action = "delete"
)

func isParentOf(identity auth.Identity, r *model.Reservation) bool {
	return identity.ID != "" && r.ParentID == identity.ID
}

func isBabysitterOf(identity auth.Identity, r *model.Reservation) bool {
	return identity.IsBabysitter() && r.BabysitterID == identity.ID
}

// Owns reports whether identity may perform action on r. Every mutating
// operation calls it before touching the store.
func Owns(identity auth.Identity, r *model.Reservation, action Action) bool {
	switch action {
	case ActionTransition:
		return isBabysitterOf(identity, r)
	case ActionCancel:
		return isParentOf(identity, r)
	case ActionDelete:
		return isParentOf(identity, r) || isBabysitterOf(identity, r)
	}
	return false
}
