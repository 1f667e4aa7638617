package resource_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/resource"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/tests"
)

func TestService_ForStudent(t *testing.T) {
	env := testutil.NewEnv()
	school := testutil.NewSchool(t, env) // Math 85/100 for Child
	testutil.CreateGrade(t, env.Grades, "Science", 40, 100, school.Child.ID, school.Teacher.ID)
	ctx := context.Background()

	tests := []struct {
		name      string
		id        access.Identity
		studentID string
		wantLen   int
		wantErr   error
	}{
		{name: "parent", id: school.Parent.Identity(), studentID: school.Child.ID, wantLen: 2},
		{name: "teacher", id: school.Teacher.Identity(), studentID: school.Child.ID, wantLen: 2},
		{name: "admin, no grades", id: school.Admin.Identity(), studentID: school.OtherChild.ID, wantLen: 0},
		{name: "other parent", id: school.OtherParent.Identity(), studentID: school.Child.ID, wantErr: core.ErrNotAuthorized},
		{name: "missing student", id: school.Teacher.Identity(), studentID: "missing", wantErr: student.ErrNotFound},
		{name: "anonymous", id: access.Anonymous, studentID: school.Child.ID, wantErr: core.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.ResourceSvc.ForStudent(ctx, tt.id, tt.studentID)
			if err != tt.wantErr {
				t.Errorf("ForStudent() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.Len(t, got, tt.wantLen)
		})
	}

	got, err := env.ResourceSvc.ForStudent(ctx, school.Parent.Identity(), school.Child.ID)
	if assert.NoError(t, err) {
		difficulties := map[string]resource.Difficulty{}
		for _, res := range got {
			difficulties[res.Subject] = res.Difficulty
		}
		assert.Equal(t, resource.Advanced, difficulties["Math"])
		assert.Equal(t, resource.Basic, difficulties["Science"])
	}
}
