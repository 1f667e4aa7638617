package student_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/tests"
)

func strPtr(s string) *string { return &s }

func TestService_QueryAll(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      access.Identity
		wantLen int
		wantErr error
	}{
		{name: "admin", id: school.Admin.Identity(), wantLen: 2},
		{name: "teacher", id: school.Teacher.Identity(), wantLen: 2},
		{name: "parent", id: school.Parent.Identity(), wantErr: core.ErrNotAuthorized},
		{name: "anonymous", id: access.Anonymous, wantErr: core.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.StudentSvc.QueryAll(ctx, tt.id)
			if err != tt.wantErr {
				t.Errorf("QueryAll() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_QueryChildren(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      access.Identity
		wantIDs []string
		wantErr error
	}{
		{name: "parent gets own children", id: school.Parent.Identity(), wantIDs: []string{school.Child.ID}},
		{name: "other parent gets own children", id: school.OtherParent.Identity(), wantIDs: []string{school.OtherChild.ID}},
		{name: "admin gets every student", id: school.Admin.Identity(), wantIDs: []string{school.Child.ID, school.OtherChild.ID}},
		{name: "teacher", id: school.Teacher.Identity(), wantErr: core.ErrNotAuthorized},
		{name: "anonymous", id: access.Anonymous, wantErr: core.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.StudentSvc.QueryChildren(ctx, tt.id)
			if err != tt.wantErr {
				t.Errorf("QueryChildren() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			ids := make([]string, 0, len(got))
			for _, std := range got {
				ids = append(ids, std.ID)
			}
			if tt.wantErr == nil {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       access.Identity
		ns       student.NewStudent
		wantKind core.Kind
		wantErr  error
	}{
		{name: "anonymous", id: access.Anonymous, ns: student.NewStudent{}, wantErr: core.ErrNotAuthenticated},
		{name: "blank fields", id: school.Admin.Identity(), ns: student.NewStudent{Name: "  ", Grade: "Grade 1", ParentID: school.Parent.ID}, wantKind: core.KindValidation},
		{name: "teacher may not create", id: school.Teacher.Identity(), ns: student.NewStudent{Name: "Kid", Grade: "Grade 1", ParentID: school.Parent.ID}, wantErr: core.ErrNotAuthorized},
		{name: "missing parent", id: school.Admin.Identity(), ns: student.NewStudent{Name: "Kid", Grade: "Grade 1", ParentID: "missing"}, wantErr: student.ErrParentNotFound},
		{name: "parent must be a PARENT", id: school.Admin.Identity(), ns: student.NewStudent{Name: "Kid", Grade: "Grade 1", ParentID: school.Teacher.ID}, wantKind: core.KindValidation},
		{name: "admin creates", id: school.Admin.Identity(), ns: student.NewStudent{Name: " Kid ", Grade: "Grade 1", ParentID: school.Parent.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.StudentSvc.Create(ctx, tt.id, tt.ns)
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
				assert.Equal(t, "Kid", got.Name)
				assert.Equal(t, school.Parent.ID, got.ParentID)
			}
		})
	}
	assert.Equal(t, 3, env.DB.Counts()["students"])
}

func TestService_Update(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	_, err := env.StudentSvc.Update(ctx, school.Teacher.Identity(), school.Child.ID, student.UpdateStudent{Name: strPtr("X")})
	assert.Equal(t, core.ErrNotAuthorized, err)

	_, err = env.StudentSvc.Update(ctx, school.Admin.Identity(), "missing", student.UpdateStudent{Name: strPtr("X")})
	assert.Equal(t, student.ErrNotFound, err)

	_, err = env.StudentSvc.Update(ctx, school.Admin.Identity(), school.Child.ID, student.UpdateStudent{Grade: strPtr(" ")})
	assert.True(t, core.IsKind(err, core.KindValidation), "Update() error = %v", err)

	_, err = env.StudentSvc.Update(ctx, school.Admin.Identity(), school.Child.ID, student.UpdateStudent{Grade: strPtr("Grade 7"), ParentID: strPtr("missing")})
	assert.True(t, core.IsKind(err, core.KindValidation), "Update() error = %v", err)

	got, err := env.StudentSvc.Update(ctx, school.Admin.Identity(), school.Child.ID, student.UpdateStudent{Grade: strPtr(" Grade 9 ")})
	if assert.NoError(t, err) {
		assert.Equal(t, "Grade 9", got.Grade)
		assert.Equal(t, school.Child.Name, got.Name)
		assert.Equal(t, school.Parent.ID, got.ParentID)
	}

	// a new parent is not checked against the PARENT role
	got, err = env.StudentSvc.Update(ctx, school.Admin.Identity(), school.Child.ID, student.UpdateStudent{ParentID: strPtr(school.Teacher.ID)})
	if assert.NoError(t, err) {
		assert.Equal(t, school.Teacher.ID, got.ParentID)
	}
}

func TestService_Delete(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	_, err := env.StudentSvc.Delete(ctx, school.Parent.Identity(), school.Child.ID)
	assert.Equal(t, core.ErrNotAuthorized, err)

	_, err = env.StudentSvc.Delete(ctx, school.Admin.Identity(), "missing")
	assert.Equal(t, student.ErrNotFound, err)

	ok, err := env.StudentSvc.Delete(ctx, school.Admin.Identity(), school.Child.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, env.DB.Counts()["grades"])
}

func TestAuthorizeRecords(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	tests := []struct {
		name                  string
		id                    access.Identity
		studentID             string
		wantErr               error
		wantErrOwnershipFirst error
	}{
		{name: "admin reads any student", id: school.Admin.Identity(), studentID: school.OtherChild.ID},
		{name: "teacher reads any student", id: school.Teacher.Identity(), studentID: school.Child.ID},
		{name: "parent reads own child", id: school.Parent.Identity(), studentID: school.Child.ID},
		{name: "parent may not read another child", id: school.Parent.Identity(), studentID: school.OtherChild.ID, wantErr: core.ErrNotAuthorized, wantErrOwnershipFirst: core.ErrNotAuthorized},
		{name: "parent asks for missing student", id: school.Parent.Identity(), studentID: "missing", wantErr: student.ErrNotFound, wantErrOwnershipFirst: core.ErrNotAuthorized},
		{name: "teacher asks for missing student", id: school.Teacher.Identity(), studentID: "missing", wantErr: student.ErrNotFound, wantErrOwnershipFirst: student.ErrNotFound},
		{name: "anonymous", id: access.Anonymous, studentID: school.Child.ID, wantErr: core.ErrNotAuthenticated, wantErrOwnershipFirst: core.ErrNotAuthenticated},
		{name: "anonymous asks for missing student", id: access.Anonymous, studentID: "missing", wantErr: core.ErrNotAuthenticated, wantErrOwnershipFirst: core.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			std, err := student.AuthorizeRecords(ctx, env.Students, env.Guard, tt.id, access.OpReadStudentRecords, tt.studentID)
			if err != tt.wantErr {
				t.Errorf("AuthorizeRecords() error = %v, wantErr %v", err, tt.wantErr)
			} else if err == nil {
				assert.Equal(t, tt.studentID, std.ID)
			}

			_, err = student.AuthorizeRecordsOwnershipFirst(ctx, env.Students, env.Guard, tt.id, access.OpReadStudentRecords, tt.studentID)
			if err != tt.wantErrOwnershipFirst {
				t.Errorf("AuthorizeRecordsOwnershipFirst() error = %v, wantErr %v", err, tt.wantErrOwnershipFirst)
			}
		})
	}
}
