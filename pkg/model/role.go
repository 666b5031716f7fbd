package model

type Role string

const (
	RoleParent     Role = "parent"
	RoleBabysitter Role = "babysitter"
)

func (r Role) IsValid() bool {
	return r == RoleParent || r == RoleBabysitter
}
