// Package access holds the role based authorization policy.
// Every entity operation asks Authorize (through a Guard) before touching storage.
package access

import "context"

// Role of a User.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleParent  Role = "PARENT"
)

// Roles lists every valid Role.
var Roles = []Role{RoleAdmin, RoleTeacher, RoleParent}

func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// Identity is the authenticated caller of an operation.
// The zero value is the anonymous identity.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// Anonymous is the identity of unauthenticated callers.
var Anonymous = Identity{}

func (id Identity) IsAnonymous() bool {
	return id.ID == ""
}

func (id Identity) IsAdmin() bool   { return !id.IsAnonymous() && id.Role == RoleAdmin }
func (id Identity) IsTeacher() bool { return !id.IsAnonymous() && id.Role == RoleTeacher }
func (id Identity) IsParent() bool  { return !id.IsAnonymous() && id.Role == RoleParent }

type contextKey struct{}

// NewContext returns a copy of ctx carrying id.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the Identity carried by ctx, Anonymous if none.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(contextKey{}).(Identity); ok {
		return id
	}
	return Anonymous
}
