package auth

import (
	"context"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

// Authenticator resolves bearer tokens into identities.
// It never fails: missing, malformed, expired or badly signed tokens yield access.Anonymous.
// In strict mode the identity is also dropped when its user no longer exists,
// and its email and role are refreshed from the store.
type Authenticator struct {
	tokens *Tokens
	users  user.Repository
	strict bool
}

func NewAuthenticator(tokens *Tokens, users user.Repository, strict bool) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, strict: strict}
}

func (a *Authenticator) Authenticate(ctx context.Context, raw string) access.Identity {
	claims, err := a.tokens.Parse(raw)
	if err != nil {
		return access.Anonymous
	}
	if !a.strict {
		return claims.Identity()
	}
	usr, err := a.users.GetUserByID(ctx, claims.ID)
	if err != nil {
		return access.Anonymous
	}
	return usr.Identity()
}
