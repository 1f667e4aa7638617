package behavior

import (
	"context"
	"time"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/student"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Behavior report not found")
)

type (
	Repository interface {
		CreateReport(ctx context.Context, rpt Report) (Report, error)
		// QueryReports returns reports newest first.
		QueryReports(ctx context.Context, filter QueryFilter) ([]Report, error)
		GetReportByID(ctx context.Context, id string) (Report, error)
		UpdateReport(ctx context.Context, id string, ur UpdateReport) (Report, error)
		DeleteReport(ctx context.Context, id string) error
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

// QueryByStudent returns the behavior reports of a student, newest first.
func (svc *Service) QueryByStudent(ctx context.Context, id access.Identity, studentID string) ([]Report, error) {
	if _, err := student.AuthorizeRecords(ctx, svc.students, svc.guard, id, access.OpReadStudentRecords, studentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryReports(ctx, QueryFilter{StudentID: studentID})
}

// Create files a Report authored by the caller.
func (svc *Service) Create(ctx context.Context, id access.Identity, nr NewReport) (Report, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Report{}, err
	}
	if err := nr.Validate(svc.validate); err != nil {
		return Report{}, err
	}
	if _, err := svc.guard.Check(id, access.OpCreateBehaviorReport, nil); err != nil {
		return Report{}, err
	}
	if _, err := svc.students.GetStudentByID(ctx, nr.StudentID); err != nil {
		return Report{}, err
	}
	return svc.repo.CreateReport(ctx, Report{
		Title:       nr.Title,
		Description: nr.Description,
		Type:        nr.Type,
		StudentID:   nr.StudentID,
		TeacherID:   id.ID,
		CreatedAt:   time.Now().UTC(),
	})
}

func (svc *Service) Update(ctx context.Context, id access.Identity, reportID string, ur UpdateReport) (Report, error) {
	if err := access.RequireIdentity(id); err != nil {
		return Report{}, err
	}
	if err := ur.Validate(svc.validate); err != nil {
		return Report{}, err
	}
	if err := svc.authorizeAuthor(ctx, id, access.OpUpdateBehaviorReport, reportID); err != nil {
		return Report{}, err
	}
	return svc.repo.UpdateReport(ctx, reportID, ur)
}

func (svc *Service) Delete(ctx context.Context, id access.Identity, reportID string) (bool, error) {
	if err := svc.authorizeAuthor(ctx, id, access.OpDeleteBehaviorReport, reportID); err != nil {
		return false, err
	}
	if err := svc.repo.DeleteReport(ctx, reportID); err != nil {
		return false, err
	}
	return true, nil
}

func (svc *Service) authorizeAuthor(ctx context.Context, id access.Identity, op access.Operation, reportID string) error {
	if err := svc.guard.Precheck(id, op); err != nil {
		return err
	}
	rpt, err := svc.repo.GetReportByID(ctx, reportID)
	if err != nil {
		return err
	}
	_, err = svc.guard.Check(id, op, access.OwnedBy(rpt.TeacherID))
	return err
}

// ForStudent loads the reports of a student without authorization, for relations of already authorized reads.
func (svc *Service) ForStudent(ctx context.Context, studentID string) ([]Report, error) {
	return svc.repo.QueryReports(ctx, QueryFilter{StudentID: studentID})
}
