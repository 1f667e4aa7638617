package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
	"github.com/trezcool/edunotify/tests"
)

func strPtr(s string) *string { return &s }

func rolePtr(r access.Role) *access.Role { return &r }

func TestService_Me(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	got, err := env.UserSvc.Me(ctx, school.Parent.Identity())
	if assert.NoError(t, err) && assert.NotNil(t, got) {
		assert.Equal(t, school.Parent.Email, got.Email)
	}

	_, err = env.UserSvc.Me(ctx, access.Anonymous)
	assert.Equal(t, core.ErrNotAuthenticated, err)

	ghost := access.Identity{ID: "ghost", Email: "ghost@school.test", Role: access.RoleParent}
	got, err = env.UserSvc.Me(ctx, ghost)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_listings(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   func(context.Context, access.Identity) ([]user.User, error)
		id      access.Identity
		wantLen int
		wantErr error
	}{
		{name: "admin lists users", query: env.UserSvc.QueryAll, id: school.Admin.Identity(), wantLen: 4},
		{name: "teacher may not list users", query: env.UserSvc.QueryAll, id: school.Teacher.Identity(), wantErr: core.ErrNotAuthorized},
		{name: "anonymous may not list users", query: env.UserSvc.QueryAll, id: access.Anonymous, wantErr: core.ErrNotAuthenticated},
		{name: "admin lists parents", query: env.UserSvc.QueryParents, id: school.Admin.Identity(), wantLen: 2},
		{name: "parent may not list parents", query: env.UserSvc.QueryParents, id: school.Parent.Identity(), wantErr: core.ErrNotAuthorized},
		{name: "parent lists teachers", query: env.UserSvc.QueryTeachers, id: school.Parent.Identity(), wantLen: 1},
		{name: "anonymous may not list teachers", query: env.UserSvc.QueryTeachers, id: access.Anonymous, wantErr: core.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.query(ctx, tt.id)
			if err != tt.wantErr {
				t.Errorf("query() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	valid := user.NewUser{Email: " New.Teacher@School.test ", Password: "secret1", Name: "New Teacher", Role: access.RoleTeacher}

	tests := []struct {
		name     string
		id       access.Identity
		nu       user.NewUser
		wantKind core.Kind
		wantErr  error
	}{
		{name: "anonymous fails before validation", id: access.Anonymous, nu: user.NewUser{}, wantErr: core.ErrNotAuthenticated},
		{name: "parent may not create", id: school.Parent.Identity(), nu: valid, wantErr: core.ErrNotAuthorized},
		{name: "invalid input", id: school.Admin.Identity(), nu: user.NewUser{Email: "nope", Password: "123", Name: "X", Role: "STUDENT"}, wantKind: core.KindValidation},
		{name: "existing email", id: school.Admin.Identity(), nu: user.NewUser{Email: "PARENT@school.test", Password: "secret1", Name: "Dup", Role: access.RoleParent}, wantErr: user.ErrUserExists},
		{name: "admin creates", id: school.Admin.Identity(), nu: valid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.UserSvc.Create(ctx, tt.id, tt.nu)
			if tt.wantKind != core.KindInternal {
				if !core.IsKind(err, tt.wantKind) {
					t.Errorf("Create() error = %v, wantKind %v", err, tt.wantKind)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				assert.NotEmpty(t, got.ID)
				assert.Equal(t, "new.teacher@school.test", got.Email)
				assert.Equal(t, access.RoleTeacher, got.Role)
				assert.NoError(t, got.CheckPassword("secret1"))
			}
		})
	}
}

func TestService_Create_validationMessages(t *testing.T) {
	env := testutil.NewEnv()
	admin := testutil.CreateUser(t, env.Users, "Admin", "admin@school.test", "", access.RoleAdmin)

	_, err := env.UserSvc.Create(context.Background(), admin.Identity(), user.NewUser{Email: "nope", Password: "123", Name: "X", Role: "STUDENT"})
	var e *core.Error
	if !errors.As(err, &e) {
		t.Fatalf("Create() error = %v, want *core.Error", err)
	}
	flds := e.FieldMap()
	assert.Contains(t, flds, "email")
	assert.Contains(t, flds, "password")
	assert.Contains(t, flds, "name")
	assert.Equal(t, "role must be one of ADMIN, TEACHER, PARENT", flds["role"])
}

func TestService_Register(t *testing.T) {
	env := testutil.NewEnv()
	ctx := context.Background()

	nu := user.NewUser{Email: "jane@school.test", Password: "secret1", Name: "Jane", Role: access.RoleParent}
	got, err := env.UserSvc.Register(ctx, nu)
	if assert.NoError(t, err) {
		assert.Equal(t, access.RoleParent, got.Role)
	}

	_, err = env.UserSvc.Register(ctx, nu)
	assert.Equal(t, user.ErrUserExists, err)
	assert.Equal(t, 1, env.DB.Counts()["users"])
}

func TestService_Update(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       access.Identity
		userID   string
		uu       user.UpdateUser
		wantKind core.Kind
		wantErr  error
		want     func(t *testing.T, got user.User)
	}{
		{name: "teacher may not update", id: school.Teacher.Identity(), userID: school.Parent.ID, uu: user.UpdateUser{Name: strPtr("Bob")}, wantErr: core.ErrNotAuthorized},
		{name: "missing user", id: school.Admin.Identity(), userID: "missing", uu: user.UpdateUser{Name: strPtr("Bob")}, wantErr: user.ErrNotFound},
		{name: "email taken", id: school.Admin.Identity(), userID: school.Parent.ID, uu: user.UpdateUser{Email: strPtr("teacher@school.test")}, wantErr: user.ErrUserExists},
		{name: "invalid role", id: school.Admin.Identity(), userID: school.Parent.ID, uu: user.UpdateUser{Role: rolePtr("STUDENT")}, wantKind: core.KindValidation},
		{name: "invalid email", id: school.Admin.Identity(), userID: school.Parent.ID, uu: user.UpdateUser{Email: strPtr("nope")}, wantKind: core.KindValidation},
		{
			name:   "own email is kept",
			id:     school.Admin.Identity(),
			userID: school.Parent.ID,
			uu:     user.UpdateUser{Email: strPtr("PARENT@school.test")},
			want: func(t *testing.T, got user.User) {
				assert.Equal(t, "parent@school.test", got.Email)
			},
		},
		{
			name:   "only set fields change",
			id:     school.Admin.Identity(),
			userID: school.Parent.ID,
			uu:     user.UpdateUser{Name: strPtr("  Bob  "), Role: rolePtr(access.RoleTeacher)},
			want: func(t *testing.T, got user.User) {
				assert.Equal(t, "Bob", got.Name)
				assert.Equal(t, access.RoleTeacher, got.Role)
				assert.Equal(t, "parent@school.test", got.Email)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.UserSvc.Update(ctx, tt.id, tt.userID, tt.uu)
			if tt.wantKind != core.KindInternal {
				if !core.IsKind(err, tt.wantKind) {
					t.Errorf("Update() error = %v, wantKind %v", err, tt.wantKind)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.want != nil {
				tt.want(t, got)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	ok, err := env.UserSvc.Delete(ctx, school.Teacher.Identity(), school.Parent.ID)
	assert.Equal(t, core.ErrNotAuthorized, err)
	assert.False(t, ok)

	_, err = env.UserSvc.Delete(ctx, school.Admin.Identity(), "missing")
	assert.Equal(t, user.ErrNotFound, err)

	ok, err = env.UserSvc.Delete(ctx, school.Admin.Identity(), school.Parent.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	// the parent's child and its grade went with it
	counts := env.DB.Counts()
	assert.Equal(t, 3, counts["users"])
	assert.Equal(t, 1, counts["students"])
	assert.Equal(t, 0, counts["grades"])
}

func TestService_ResetPassword(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		pwd      string
		wantKind core.Kind
		wantErr  error
	}{
		{name: "short password", email: school.Parent.Email, pwd: "123", wantKind: core.KindValidation},
		{name: "unknown email", email: "nobody@school.test", pwd: "newsecret", wantErr: user.ErrNotFound},
		{name: "reset", email: " PARENT@school.test ", pwd: "newsecret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := env.UserSvc.ResetPassword(ctx, tt.email, tt.pwd)
			if tt.wantKind != core.KindInternal {
				if !core.IsKind(err, tt.wantKind) {
					t.Errorf("ResetPassword() error = %v, wantKind %v", err, tt.wantKind)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("ResetPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	usr, err := env.Users.GetUserByID(ctx, school.Parent.ID)
	if assert.NoError(t, err) {
		assert.NoError(t, usr.CheckPassword("newsecret"))
	}
}
