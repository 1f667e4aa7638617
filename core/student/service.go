package student

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("Student not found")
	ErrParentNotFound = core.NewNotFoundError("Parent not found")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		QueryStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		UpdateStudent(ctx context.Context, id string, us UpdateStudent) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		users    user.Repository
		guard    *access.Guard
		validate *core.Validator
	}
)

func NewService(repo Repository, users user.Repository, guard *access.Guard, validate *core.Validator) *Service {
	return &Service{repo: repo, users: users, guard: guard, validate: validate}
}

func (svc *Service) QueryAll(ctx context.Context, id access.Identity) ([]Student, error) {
	if _, err := svc.guard.Check(id, access.OpListStudents, nil); err != nil {
		return nil, err
	}
	return svc.repo.QueryStudents(ctx, QueryFilter{})
}

// QueryChildren returns the children of a parent. Admins get every student.
func (svc *Service) QueryChildren(ctx context.Context, id access.Identity) ([]Student, error) {
	d, err := svc.guard.Check(id, access.OpListChildren, nil)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryStudents(ctx, QueryFilter{ParentID: d.Filter})
}

func (svc *Service) Create(ctx context.Context, id access.Identity, ns NewStudent) (Student, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Student{}, err
	}
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	if _, err := svc.guard.Check(id, access.OpCreateStudent, nil); err != nil {
		return Student{}, err
	}
	if err := svc.checkParent(ctx, ns.ParentID); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, Student{
		Name:      ns.Name,
		Grade:     ns.Grade,
		ParentID:  ns.ParentID,
		CreatedAt: time.Now().UTC(),
	})
}

// checkParent checks that parentID references a PARENT user.
func (svc *Service) checkParent(ctx context.Context, parentID string) error {
	parent, err := svc.users.GetUserByID(ctx, parentID)
	if err != nil {
		if err == user.ErrNotFound {
			return ErrParentNotFound
		}
		return errors.Wrap(err, "finding parent")
	}
	if !parent.IsParent() {
		return core.NewValidationError(nil, core.FieldError{Field: "parentId", Error: "parentId must reference a PARENT user"})
	}
	return nil
}

// Update changes a Student. A new parentId is not checked against the PARENT role.
func (svc *Service) Update(ctx context.Context, id access.Identity, studentID string, us UpdateStudent) (Student, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Student{}, err
	}
	if err := us.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	if _, err := svc.guard.Check(id, access.OpUpdateStudent, nil); err != nil {
		return Student{}, err
	}
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return Student{}, err
	}
	return svc.repo.UpdateStudent(ctx, studentID, us)
}

func (svc *Service) Delete(ctx context.Context, id access.Identity, studentID string) (bool, error) {
	if _, err := svc.guard.Check(id, access.OpDeleteStudent, nil); err != nil {
		return false, err
	}
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteStudent(ctx, studentID); err != nil {
		return false, err
	}
	return true, nil
}

// GetByID loads a Student without authorization, for relations of already authorized reads.
func (svc *Service) GetByID(ctx context.Context, studentID string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, studentID)
}
