// Package auth authenticates users: sign up, login and bearer tokens.
package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

var (
	// errors
	ErrInvalidCredentials = core.NewError(core.KindUnauthenticated, "Invalid credentials")
)

// Payload is the result of a successful register or login.
type Payload struct {
	Token string
	User  user.User
}

// Credentials are submitted on login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}

type Service struct {
	users    *user.Service
	tokens   *Tokens
	guard    *access.Guard
	validate *core.Validator
}

func NewService(users *user.Service, tokens *Tokens, guard *access.Guard, validate *core.Validator) *Service {
	return &Service{users: users, tokens: tokens, guard: guard, validate: validate}
}

// Register signs a new user up and logs them in.
func (svc *Service) Register(ctx context.Context, nu user.NewUser) (Payload, error) {
	// always allowed; checked so that the decision is observed
	if _, err := svc.guard.Check(access.Anonymous, access.OpRegister, nil); err != nil {
		return Payload{}, err
	}
	usr, err := svc.users.Register(ctx, nu)
	if err != nil {
		return Payload{}, err
	}
	return svc.payload(usr)
}

// Login checks credentials. Unknown emails and wrong passwords fail alike with ErrInvalidCredentials.
func (svc *Service) Login(ctx context.Context, creds Credentials) (Payload, error) {
	// always allowed; checked so that the decision is observed
	if _, err := svc.guard.Check(access.Anonymous, access.OpLogin, nil); err != nil {
		return Payload{}, err
	}
	creds.Email = core.CleanString(creds.Email, true /* lower */)
	if err := svc.validate.Struct(creds); err != nil {
		return Payload{}, err
	}

	usr, err := svc.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if err == user.ErrNotFound {
			return Payload{}, ErrInvalidCredentials
		}
		return Payload{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(creds.Password); err != nil {
		return Payload{}, ErrInvalidCredentials
	}
	return svc.payload(usr)
}

func (svc *Service) payload(usr user.User) (Payload, error) {
	token, err := svc.tokens.Issue(usr)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Token: token, User: usr}, nil
}
