package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

const userColumns = "id, email, name, role, password, created_at"

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string, excludedIDs ...string) error {
	found, err := exists(repo.db, ctx, "users", "email", email, excludedIDs)
	if err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}
	if found {
		return user.ErrUserExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES (:id, :email, :name, :role, :password, :created_at)",
		usr,
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return user.User{}, user.ErrUserExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	query := "SELECT " + userColumns + " FROM users"
	var args []interface{}
	if len(filter.Roles) > 0 {
		query += " WHERE role = ANY($1)"
		args = append(args, pq.Array(roleStrings(filter.Roles)))
	}
	query += " ORDER BY " + oldestFirst

	users := make([]user.User, 0)
	if err := repo.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting users")
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	if err := repo.db.GetContext(ctx, &usr, "SELECT "+userColumns+" FROM users WHERE id = $1", id); err != nil {
		return user.User{}, trapErr(err, user.ErrNotFound, "selecting user by ID")
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	if err := repo.db.GetContext(ctx, &usr, "SELECT "+userColumns+" FROM users WHERE email = $1", email); err != nil {
		return user.User{}, trapErr(err, user.ErrNotFound, "selecting user by email")
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, id string, uu user.UpdateUser) (user.User, error) {
	role := null.String{}
	if uu.Role != nil {
		role = null.StringFrom(string(*uu.Role))
	}

	// only save set fields
	var usr user.User
	err := repo.db.GetContext(ctx, &usr, `
		UPDATE users SET
			email = COALESCE($2, email),
			name = COALESCE($3, name),
			role = COALESCE($4, role)
		WHERE id = $1
		RETURNING `+userColumns,
		id, null.StringFromPtr(uu.Email), null.StringFromPtr(uu.Name), role,
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return user.User{}, user.ErrUserExists
		}
		return user.User{}, trapErr(err, user.ErrNotFound, "updating user")
	}
	return usr, nil
}

func (repo *userRepository) SetUserPassword(ctx context.Context, id string, hash []byte) error {
	res, err := repo.db.ExecContext(ctx, "UPDATE users SET password = $2 WHERE id = $1", id, hash)
	if err != nil {
		return errors.Wrap(err, "updating user password")
	}
	return checkAffected(res, user.ErrNotFound, "updating user password")
}

// DeleteUser relies on ON DELETE CASCADE for the rows the user owns.
func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	return checkAffected(res, user.ErrNotFound, "deleting user")
}

func roleStrings(roles []access.Role) []string {
	ss := make([]string, 0, len(roles))
	for _, r := range roles {
		ss = append(ss, string(r))
	}
	return ss
}
