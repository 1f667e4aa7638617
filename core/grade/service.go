package grade

import (
	"context"
	"time"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/student"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Grade not found")
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, grd Grade) (Grade, error)
		// QueryGrades returns grades newest first.
		QueryGrades(ctx context.Context, filter QueryFilter) ([]Grade, error)
		GetGradeByID(ctx context.Context, id string) (Grade, error)
		UpdateGrade(ctx context.Context, id string, ug UpdateGrade) (Grade, error)
		DeleteGrade(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		students student.Repository
		guard    *access.Guard
		validate *core.Validator
	}
)

func NewService(repo Repository, students student.Repository, guard *access.Guard, validate *core.Validator) *Service {
	return &Service{repo: repo, students: students, guard: guard, validate: validate}
}

// QueryByStudent returns the grades of a student, newest first.
// A missing student is reported before a denied ownership.
func (svc *Service) QueryByStudent(ctx context.Context, id access.Identity, studentID string) ([]Grade, error) {
	if _, err := student.AuthorizeRecords(ctx, svc.students, svc.guard, id, access.OpReadStudentRecords, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryGrades(ctx, QueryFilter{StudentID: studentID})
}

// QueryByStudentOwnershipFirst is QueryByStudent with ownership checked before existence:
// a parent always gets a denial for a student that is not theirs, whether it exists or not.
func (svc *Service) QueryByStudentOwnershipFirst(ctx context.Context, id access.Identity, studentID string) ([]Grade, error) {
	if _, err := student.AuthorizeRecordsOwnershipFirst(ctx, svc.students, svc.guard, id, access.OpReadStudentRecords, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryGrades(ctx, QueryFilter{StudentID: studentID})
}

// Create records a Grade authored by the caller.
func (svc *Service) Create(ctx context.Context, id access.Identity, ng NewGrade) (Grade, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Grade{}, err
	}
	if err := ng.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	if _, err := svc.guard.Check(id, access.OpCreateGrade, nil); err != nil {
		return Grade{}, err
	}
	if _, err := svc.students.GetStudentByID(ctx, ng.StudentID); err != nil {
		return Grade{}, err
	}
	return svc.repo.CreateGrade(ctx, Grade{
		Subject:   ng.Subject,
		Score:     ng.Score,
		MaxScore:  ng.MaxScore,
		StudentID: ng.StudentID,
		TeacherID: id.ID,
		CreatedAt: time.Now().UTC(),
	})
}

func (svc *Service) Update(ctx context.Context, id access.Identity, gradeID string, ug UpdateGrade) (Grade, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Grade{}, err
	}
	if err := ug.Validate(svc.validate); err != nil {
		return Grade{}, err
	}
	if err := svc.authorizeAuthor(ctx, id, access.OpUpdateGrade, gradeID); err != nil {
		return Grade{}, err
	}
	return svc.repo.UpdateGrade(ctx, gradeID, ug)
}

func (svc *Service) Delete(ctx context.Context, id access.Identity, gradeID string) (bool, error) {
	if err := svc.authorizeAuthor(ctx, id, access.OpDeleteGrade, gradeID); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteGrade(ctx, gradeID); err != nil {
		return false, err
	}
	return true, nil
}

// authorizeAuthor checks the role, then existence, then authorship of the grade.
func (svc *Service) authorizeAuthor(ctx context.Context, id access.Identity, op access.Operation, gradeID string) error {
	if err := svc.guard.Precheck(id, op); err != nil {
		return err
	}
	grd, err := svc.repo.GetGradeByID(ctx, gradeID)
	if err != nil {
		return err
	}
	_, err = svc.guard.Check(id, op, access.OwnedBy(grd.TeacherID))
	return err
}

// ForStudent loads the grades of a student without authorization, for relations of already authorized reads.
func (svc *Service) ForStudent(ctx context.Context, studentID string) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, QueryFilter{StudentID: studentID})
}
