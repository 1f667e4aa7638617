package student

import (
	"context"

	"github.com/trezcool/edunotify/core/access"
)

// AuthorizeRecords checks that id may perform op (a read of the student's records) on the student.
// Existence is checked first: a missing student is ErrNotFound for every role.
func AuthorizeRecords(ctx context.Context, repo Repository, guard *access.Guard, id access.Identity, op access.Operation, studentID string) (Student, error) {
	if err := guard.Precheck(id, op); err != nil {
		return Student{}, err
	}
	std, err := repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return Student{}, err
	}
	if _, err = guard.Check(id, op, access.OwnedBy(std.ParentID)); err != nil {
		return Student{}, err
	}
	return std, nil
}

// AuthorizeRecordsOwnershipFirst is AuthorizeRecords with ownership checked before existence:
// a parent asking for a missing student is denied, other roles get ErrNotFound.
func AuthorizeRecordsOwnershipFirst(ctx context.Context, repo Repository, guard *access.Guard, id access.Identity, op access.Operation, studentID string) (Student, error) {
	if err := guard.Precheck(id, op); err != nil {
		return Student{}, err
	}
	std, lookupErr := repo.GetStudentByID(ctx, studentID)
	if lookupErr != nil && lookupErr != ErrNotFound {
		return Student{}, lookupErr
	}
	if _, err := guard.Check(id, op, access.OwnedBy(std.ParentID)); err != nil {
		return Student{}, err
	}
	if lookupErr != nil {
		return Student{}, lookupErr
	}
	return std, nil
}
