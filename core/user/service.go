package user

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
)

var (
	// errors
	ErrNotFound   = core.NewNotFoundError("User not found")
	ErrUserExists = core.NewConflictError("User already exists")
)

type (
	Repository interface {
		// CheckEmailUniqueness returns ErrUserExists if a user other than the excluded ones has the email.
		CheckEmailUniqueness(ctx context.Context, email string, excludedIDs ...string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUser(ctx context.Context, id string, uu UpdateUser) (User, error)
		SetUserPassword(ctx context.Context, id string, hash []byte) error
		DeleteUser(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		guard    *access.Guard
		validate *core.Validator
	}
)

func NewService(repo Repository, guard *access.Guard, validate *core.Validator) *Service {
	return &Service{repo: repo, guard: guard, validate: validate}
}

// Me returns the profile of the caller, nil if it no longer exists.
func (svc *Service) Me(ctx context.Context, id access.Identity) (*User, error) {
	if _, err := svc.guard.Check(id, access.OpReadProfile, nil); err != nil {
		return nil, err
	}
	usr, err := svc.repo.GetUserByID(ctx, id.ID)
	if err != nil {
		if err == ErrNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "finding user by ID")
	}
	return &usr, nil
}

func (svc *Service) QueryAll(ctx context.Context, id access.Identity) ([]User, error) {
	if _, err := svc.guard.Check(id, access.OpListUsers, nil); err != nil {
		return nil, err
	}
	return svc.repo.QueryUsers(ctx, QueryFilter{})
}

// QueryParents is restricted to admins, like every user listing.
func (svc *Service) QueryParents(ctx context.Context, id access.Identity) ([]User, error) {
	if _, err := svc.guard.Check(id, access.OpListUsers, nil); err != nil {
		return nil, err
	}
	return svc.repo.QueryUsers(ctx, QueryFilter{Roles: []access.Role{access.RoleParent}})
}

func (svc *Service) QueryTeachers(ctx context.Context, id access.Identity) ([]User, error) {
	if _, err := svc.guard.Check(id, access.OpListTeachers, nil); err != nil {
		return nil, err
	}
	return svc.repo.QueryUsers(ctx, QueryFilter{Roles: []access.Role{access.RoleTeacher}})
}

func (svc *Service) Create(ctx context.Context, id access.Identity, nu NewUser) (User, error) {
	if err := access.RequireIdentity(id); err != nil {
		return User{}, err
	}
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if _, err := svc.guard.Check(id, access.OpCreateUser, nil); err != nil {
		return User{}, err
	}
	if err := svc.repo.CheckEmailUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}
	return svc.create(ctx, nu)
}

// Register creates a User without authorization, for self sign-up.
// An existing email fails with ErrUserExists and nothing is written.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if err := svc.repo.CheckEmailUniqueness(ctx, nu.Email); err != nil {
		return User{}, err
	}
	return svc.create(ctx, nu)
}

func (svc *Service) create(ctx context.Context, nu NewUser) (User, error) {
	usr := User{
		Email:     nu.Email,
		Name:      nu.Name,
		Role:      nu.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.CreateUser(ctx, usr)
}

// Update changes the email, name or role of a User.
// Changing the role does not re-check the students or courses the user is linked to.
func (svc *Service) Update(ctx context.Context, id access.Identity, userID string, uu UpdateUser) (User, error) {
	if err := access.RequireIdentity(id); err != nil {
		return User{}, err
	}
	if err := uu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	if _, err := svc.guard.Check(id, access.OpUpdateUser, nil); err != nil {
		return User{}, err
	}
	if _, err := svc.repo.GetUserByID(ctx, userID); err != nil {
		return User{}, err
	}
	if uu.Email != nil {
		if err := svc.repo.CheckEmailUniqueness(ctx, *uu.Email, userID); err != nil {
			return User{}, err
		}
	}
	return svc.repo.UpdateUser(ctx, userID, uu)
}

func (svc *Service) Delete(ctx context.Context, id access.Identity, userID string) (bool, error) {
	if _, err := svc.guard.Check(id, access.OpDeleteUser, nil); err != nil {
		return false, err
	}
	if _, err := svc.repo.GetUserByID(ctx, userID); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteUser(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID loads a User without authorization, for relations of already authorized reads.
func (svc *Service) GetByID(ctx context.Context, userID string) (User, error) {
	return svc.repo.GetUserByID(ctx, userID)
}

// GetByEmail loads a User without authorization.
func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// ResetPassword sets the password of the User with the given email, without authorization.
func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) error {
	if err := svc.validate.Fields(core.Check("password", pwd, "min=6")); err != nil {
		return err
	}
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	return svc.repo.SetUserPassword(ctx, usr.ID, usr.PasswordHash)
}
