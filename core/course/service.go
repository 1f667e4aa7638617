package course

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
	ErrNotFound        = core.NewNotFoundError("Course not found")
	ErrTeacherNotFound = core.NewNotFoundError("Teacher not found")
	ErrCodeExists      = core.NewConflictError("Course code already exists")
)

type (
	Repository interface {
		// CheckCodeUniqueness returns ErrCodeExists if a course other than the excluded ones has the code.
		CheckCodeUniqueness(ctx context.Context, code string, excludedIDs ...string) error
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryCourses(ctx context.Context, filter QueryFilter) ([]Course, error)
		GetCourseByID(ctx context.Context, id string) (Course, error)
		UpdateCourse(ctx context.Context, id string, uc UpdateCourse) (Course, error)
		DeleteCourse(ctx context.Context, id string) error
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

func (svc *Service) QueryAll(ctx context.Context, id access.Identity) ([]Course, error) {
	if _, err := svc.guard.Check(id, access.OpListCourses, nil); err != nil {
		return nil, err
	}
	return svc.repo.QueryCourses(ctx, QueryFilter{})
}

// QueryMine returns the courses taught by a teacher. Admins get every course.
func (svc *Service) QueryMine(ctx context.Context, id access.Identity) ([]Course, error) {
	d, err := svc.guard.Check(id, access.OpListMyCourses, nil)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryCourses(ctx, QueryFilter{TeacherID: d.Filter})
}

func (svc *Service) Create(ctx context.Context, id access.Identity, nc NewCourse) (Course, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Course{}, err
	}
	if err := nc.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	if _, err := svc.guard.Check(id, access.OpCreateCourse, nil); err != nil {
		return Course{}, err
	}
	if err := svc.checkTeacher(ctx, nc.TeacherID); err != nil {
		return Course{}, err
	}
	if err := svc.repo.CheckCodeUniqueness(ctx, nc.Code); err != nil {
		return Course{}, err
	}
	return svc.repo.CreateCourse(ctx, Course{
		Name:        nc.Name,
		Code:        nc.Code,
		Description: nc.Description,
		TeacherID:   nc.TeacherID,
		CreatedAt:   time.Now().UTC(),
	})
}

// checkTeacher checks that teacherID references a TEACHER user.
func (svc *Service) checkTeacher(ctx context.Context, teacherID string) error {
	teacher, err := svc.users.GetUserByID(ctx, teacherID)
	if err != nil {
		if err == user.ErrNotFound {
			return ErrTeacherNotFound
		}
		return errors.Wrap(err, "finding teacher")
	}
	if !teacher.IsTeacher() {
		return core.NewValidationError(nil, core.FieldError{Field: "teacherId", Error: "teacherId must reference a TEACHER user"})
	}
	return nil
}

// Update changes a Course. A new teacherId is not checked against the TEACHER role.
func (svc *Service) Update(ctx context.Context, id access.Identity, courseID string, uc UpdateCourse) (Course, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Course{}, err
	}
	if err := uc.Validate(svc.validate); err != nil {
		return Course{}, err
	}
	if _, err := svc.guard.Check(id, access.OpUpdateCourse, nil); err != nil {
		return Course{}, err
	}
	if _, err := svc.repo.GetCourseByID(ctx, courseID); err != nil {
		return Course{}, err
	}
	if uc.Code != nil {
		if err := svc.repo.CheckCodeUniqueness(ctx, *uc.Code, courseID); err != nil {
			return Course{}, err
		}
	}
	return svc.repo.UpdateCourse(ctx, courseID, uc)
}

func (svc *Service) Delete(ctx context.Context, id access.Identity, courseID string) (bool, error) {
	if _, err := svc.guard.Check(id, access.OpDeleteCourse, nil); err != nil {
		return false, err
	}
	if _, err := svc.repo.GetCourseByID(ctx, courseID); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteCourse(ctx, courseID); err != nil {
		return false, err
	}
	return true, nil
}
