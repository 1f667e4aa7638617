package course_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/tests"
)

func strPtr(s string) *string { return &s }

func TestService_queries(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	other := testutil.CreateUser(t, env.Users, "Other Teacher", "other.teacher@school.test", "", access.RoleTeacher)
	math := testutil.CreateCourse(t, env.Courses, "Math", "MATH101", school.Teacher.ID)
	testutil.CreateCourse(t, env.Courses, "Biology", "BIO101", other.ID)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   func(context.Context, access.Identity) ([]course.Course, error)
		id      access.Identity
		wantLen int
		wantErr error
	}{
		{name: "parent lists courses", query: env.CourseSvc.QueryAll, id: school.Parent.Identity(), wantLen: 2},
		{name: "anonymous may not list courses", query: env.CourseSvc.QueryAll, id: access.Anonymous, wantErr: core.ErrNotAuthenticated},
		{name: "teacher lists own courses", query: env.CourseSvc.QueryMine, id: school.Teacher.Identity(), wantLen: 1},
		{name: "admin lists every course as own", query: env.CourseSvc.QueryMine, id: school.Admin.Identity(), wantLen: 2},
		{name: "parent has no courses", query: env.CourseSvc.QueryMine, id: school.Parent.Identity(), wantErr: core.ErrNotAuthorized},
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

	mine, err := env.CourseSvc.QueryMine(ctx, school.Teacher.Identity())
	if assert.NoError(t, err) && assert.Len(t, mine, 1) {
		assert.Equal(t, math.ID, mine[0].ID)
	}
}

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	testutil.CreateCourse(t, env.Courses, "Math", "MATH101", school.Teacher.ID)
	ctx := context.Background()

	nc := func(code, teacherID string) course.NewCourse {
		return course.NewCourse{Name: "Course", Code: code, Description: "About it", TeacherID: teacherID}
	}

	tests := []struct {
		name     string
		id       access.Identity
		nc       course.NewCourse
		wantKind core.Kind
		wantErr  error
	}{
		{name: "anonymous", id: access.Anonymous, nc: nc("CS101", school.Teacher.ID), wantErr: core.ErrNotAuthenticated},
		{name: "teacher may not create", id: school.Teacher.Identity(), nc: nc("CS101", school.Teacher.ID), wantErr: core.ErrNotAuthorized},
		{name: "missing code", id: school.Admin.Identity(), nc: nc("", school.Teacher.ID), wantKind: core.KindValidation},
		{name: "missing teacher", id: school.Admin.Identity(), nc: nc("CS101", "missing"), wantErr: course.ErrTeacherNotFound},
		{name: "teacher must be a TEACHER", id: school.Admin.Identity(), nc: nc("CS101", school.Parent.ID), wantKind: core.KindValidation},
		{name: "code taken", id: school.Admin.Identity(), nc: nc("MATH101", school.Teacher.ID), wantErr: course.ErrCodeExists},
		{name: "admin creates", id: school.Admin.Identity(), nc: nc(" CS101 ", school.Teacher.ID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.CourseSvc.Create(ctx, tt.id, tt.nc)
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
				assert.Equal(t, "CS101", got.Code)
				assert.Equal(t, school.Teacher.ID, got.TeacherID)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	math := testutil.CreateCourse(t, env.Courses, "Math", "MATH101", school.Teacher.ID)
	bio := testutil.CreateCourse(t, env.Courses, "Biology", "BIO101", school.Teacher.ID)
	ctx := context.Background()

	_, err := env.CourseSvc.Update(ctx, school.Teacher.Identity(), math.ID, course.UpdateCourse{Name: strPtr("Algebra")})
	assert.Equal(t, core.ErrNotAuthorized, err)

	_, err = env.CourseSvc.Update(ctx, school.Admin.Identity(), "missing", course.UpdateCourse{Name: strPtr("Algebra")})
	assert.Equal(t, course.ErrNotFound, err)

	_, err = env.CourseSvc.Update(ctx, school.Admin.Identity(), math.ID, course.UpdateCourse{Code: strPtr(bio.Code)})
	assert.Equal(t, course.ErrCodeExists, err)

	got, err := env.CourseSvc.Update(ctx, school.Admin.Identity(), math.ID, course.UpdateCourse{
		Name:        strPtr("  Algebra "),
		Code:        strPtr(math.Code),
		Description: strPtr(" Equations\n"),
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "Algebra", got.Name)
		assert.Equal(t, math.Code, got.Code)
		assert.Equal(t, "Equations", got.Description)
	}

	_, err = env.CourseSvc.Update(ctx, school.Admin.Identity(), math.ID, course.UpdateCourse{TeacherID: strPtr("missing")})
	assert.True(t, core.IsKind(err, core.KindValidation), "Update() error = %v", err)

	// a new teacher is not checked against the TEACHER role
	got, err = env.CourseSvc.Update(ctx, school.Admin.Identity(), math.ID, course.UpdateCourse{TeacherID: strPtr(school.Parent.ID)})
	if assert.NoError(t, err) {
		assert.Equal(t, school.Parent.ID, got.TeacherID)
	}
}

func TestService_Delete(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	math := testutil.CreateCourse(t, env.Courses, "Math", "MATH101", school.Teacher.ID)
	ctx := context.Background()

	_, err := env.CourseSvc.Delete(ctx, school.Teacher.Identity(), math.ID)
	assert.Equal(t, core.ErrNotAuthorized, err)

	_, err = env.CourseSvc.Delete(ctx, school.Admin.Identity(), "missing")
	assert.Equal(t, course.ErrNotFound, err)

	ok, err := env.CourseSvc.Delete(ctx, school.Admin.Identity(), math.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, env.DB.Counts()["courses"])
}
