package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
)

// PasswordCost is the bcrypt cost of password hashes.
var PasswordCost = 12

type User struct {
	ID           string      `json:"id" db:"id"`
	Email        string      `json:"email" db:"email"`
	Name         string      `json:"name" db:"name"`
	Role         access.Role `json:"role" db:"role"`
	PasswordHash []byte      `json:"-" db:"password"`
	CreatedAt    time.Time   `json:"createdAt" db:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), PasswordCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Identity returns the access.Identity of u.
func (u User) Identity() access.Identity {
	return access.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

func (u User) IsAdmin() bool   { return u.Role == access.RoleAdmin }
func (u User) IsTeacher() bool { return u.Role == access.RoleTeacher }
func (u User) IsParent() bool  { return u.Role == access.RoleParent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Name     string      `json:"name" validate:"required,min=2"`
	Role     access.Role `json:"role" validate:"required,role"`
}

func (nu *NewUser) Validate(v *core.Validator) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	return v.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Nil fields are left unchanged.
type UpdateUser struct {
	Email *string      `json:"email"`
	Name  *string      `json:"name"`
	Role  *access.Role `json:"role"`
}

func (uu *UpdateUser) Validate(v *core.Validator) error {
	var checks []core.FieldCheck
	if uu.Email != nil {
		email := core.CleanString(*uu.Email, true /* lower */)
		uu.Email = &email
		checks = append(checks, core.Check("email", email, "email"))
	}
	if uu.Name != nil {
		name := core.CleanString(*uu.Name)
		uu.Name = &name
		checks = append(checks, core.Check("name", name, "min=2"))
	}
	if uu.Role != nil {
		checks = append(checks, core.Check("role", *uu.Role, "role"))
	}
	return v.Fields(checks...)
}

// QueryFilter restricts user queries. Empty fields do not filter.
type QueryFilter struct {
	Roles []access.Role
}
