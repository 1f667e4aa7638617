package resource

import (
	"context"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
)

type Service struct {
	students student.Repository
	grades   grade.Repository
	guard    *access.Guard
}

func NewService(students student.Repository, grades grade.Repository, guard *access.Guard) *Service {
	return &Service{students: students, grades: grades, guard: guard}
}

// ForStudent recommends resources from every grade of a student.
func (svc *Service) ForStudent(ctx context.Context, id access.Identity, studentID string) ([]Resource, error) {
	if _, err := student.AuthorizeRecords(ctx, svc.students, svc.guard, id, access.OpGenerateResources, studentID); err != nil {
		return nil, err
	}
	grades, err := svc.grades.QueryGrades(ctx, grade.QueryFilter{StudentID: studentID})
	if err != nil {
		return nil, err
	}
	return Recommend(grades), nil
}
