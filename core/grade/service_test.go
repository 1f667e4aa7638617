package grade_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/tests"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestService_QueryByStudent(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	later := testutil.CreateGrade(t, env.Grades, "Science", 70, 100, school.Child.ID, school.Teacher.ID, time.Now().Add(time.Hour))
	ctx := context.Background()

	tests := []struct {
		name      string
		id        access.Identity
		studentID string
		wantIDs   []string
		wantErr   error
	}{
		{name: "parent reads own child newest first", id: school.Parent.Identity(), studentID: school.Child.ID, wantIDs: []string{later.ID, school.Grade.ID}},
		{name: "teacher reads any student", id: school.Teacher.Identity(), studentID: school.OtherChild.ID, wantIDs: []string{}},
		{name: "admin reads any student", id: school.Admin.Identity(), studentID: school.Child.ID, wantIDs: []string{later.ID, school.Grade.ID}},
		{name: "parent may not read another child", id: school.OtherParent.Identity(), studentID: school.Child.ID, wantErr: core.ErrNotAuthorized},
		{name: "missing student", id: school.Parent.Identity(), studentID: "missing", wantErr: student.ErrNotFound},
		{name: "anonymous", id: access.Anonymous, studentID: school.Child.ID, wantErr: core.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.GradeSvc.QueryByStudent(ctx, tt.id, tt.studentID)
			if err != tt.wantErr {
				t.Errorf("QueryByStudent() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			ids := make([]string, 0, len(got))
			for _, grd := range got {
				ids = append(ids, grd.ID)
			}
			if tt.wantErr == nil {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestService_QueryByStudentOwnershipFirst(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	_, err := env.GradeSvc.QueryByStudentOwnershipFirst(ctx, school.Parent.Identity(), "missing")
	assert.Equal(t, core.ErrNotAuthorized, err)

	_, err = env.GradeSvc.QueryByStudentOwnershipFirst(ctx, school.Teacher.Identity(), "missing")
	assert.Equal(t, student.ErrNotFound, err)

	got, err := env.GradeSvc.QueryByStudentOwnershipFirst(ctx, school.Parent.Identity(), school.Child.ID)
	assert.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Create(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	ctx := context.Background()

	ng := func(score, maxScore float64, studentID string) grade.NewGrade {
		return grade.NewGrade{Subject: "History", Score: score, MaxScore: maxScore, StudentID: studentID}
	}

	tests := []struct {
		name     string
		id       access.Identity
		ng       grade.NewGrade
		wantKind core.Kind
		wantErr  error
	}{
		{name: "anonymous", id: access.Anonymous, ng: grade.NewGrade{}, wantErr: core.ErrNotAuthenticated},
		{name: "negative score", id: school.Teacher.Identity(), ng: ng(-1, 100, school.Child.ID), wantKind: core.KindValidation},
		{name: "zero max score", id: school.Teacher.Identity(), ng: ng(1, 0, school.Child.ID), wantKind: core.KindValidation},
		{name: "parent may not grade", id: school.Parent.Identity(), ng: ng(90, 100, school.Child.ID), wantErr: core.ErrNotAuthorized},
		{name: "missing student", id: school.Teacher.Identity(), ng: ng(90, 100, "missing"), wantErr: student.ErrNotFound},
		{name: "score above max score is accepted", id: school.Teacher.Identity(), ng: ng(120, 100, school.Child.ID)},
		{name: "admin grades", id: school.Admin.Identity(), ng: ng(50, 100, school.Child.ID)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.GradeSvc.Create(ctx, tt.id, tt.ng)
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
				assert.Equal(t, tt.id.ID, got.TeacherID)
				assert.Equal(t, tt.ng.Score, got.Score)
			}
		})
	}
}

func TestService_UpdateDelete(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env)
	other := testutil.CreateUser(t, env.Users, "Other Teacher", "other.teacher@school.test", "", access.RoleTeacher)
	ctx := context.Background()

	tests := []struct {
		name    string
		id      access.Identity
		gradeID string
		wantErr error
	}{
		{name: "anonymous", id: access.Anonymous, gradeID: school.Grade.ID, wantErr: core.ErrNotAuthenticated},
		{name: "parent", id: school.Parent.Identity(), gradeID: school.Grade.ID, wantErr: core.ErrNotAuthorized},
		{name: "parent, missing grade", id: school.Parent.Identity(), gradeID: "missing", wantErr: core.ErrNotAuthorized},
		{name: "other teacher", id: other.Identity(), gradeID: school.Grade.ID, wantErr: core.ErrNotAuthorized},
		{name: "teacher, missing grade", id: school.Teacher.Identity(), gradeID: "missing", wantErr: grade.ErrNotFound},
		{name: "author", id: school.Teacher.Identity(), gradeID: school.Grade.ID},
		{name: "admin", id: school.Admin.Identity(), gradeID: school.Grade.ID},
	}
	for _, tt := range tests {
		t.Run("update/"+tt.name, func(t *testing.T) {
			got, err := env.GradeSvc.Update(ctx, tt.id, tt.gradeID, grade.UpdateGrade{Score: floatPtr(95)})
			if err != tt.wantErr {
				t.Errorf("Update() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				assert.Equal(t, 95.0, got.Score)
				assert.Equal(t, school.Grade.MaxScore, got.MaxScore)
				assert.Equal(t, school.Teacher.ID, got.TeacherID)
			}
		})
	}

	_, err := env.GradeSvc.Update(ctx, school.Teacher.Identity(), school.Grade.ID, grade.UpdateGrade{Subject: strPtr(" ")})
	assert.True(t, core.IsKind(err, core.KindValidation), "Update() error = %v", err)

	// deletes go last: the grade is gone after the first successful one
	for _, tt := range tests[:len(tests)-1] {
		t.Run("delete/"+tt.name, func(t *testing.T) {
			ok, err := env.GradeSvc.Delete(ctx, tt.id, tt.gradeID)
			if err != tt.wantErr {
				t.Errorf("Delete() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Equal(t, err == nil, ok)
		})
	}
	assert.Equal(t, 0, env.DB.Counts()["grades"])
}
