package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edunotify/core/course"
)

const courseColumns = "id, name, code, description, teacher_id, created_at"

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) CheckCodeUniqueness(ctx context.Context, code string, excludedIDs ...string) error {
	found, err := exists(repo.db, ctx, "courses", "code", code, excludedIDs)
	if err != nil {
		return errors.Wrap(err, "checking course uniqueness")
	}
	if found {
		return course.ErrCodeExists
	}
	return nil
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO courses ("+courseColumns+") VALUES (:id, :name, :code, :description, :teacher_id, :created_at)",
		crs,
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return course.Course{}, course.ErrCodeExists
		}
		return course.Course{}, trapErr(err, course.ErrNotFound, "inserting course")
	}
	return crs, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses"
	var args []interface{}
	if filter.TeacherID != "" {
		query += " WHERE teacher_id = $1"
		args = append(args, filter.TeacherID)
	}
	query += " ORDER BY " + oldestFirst

	courses := make([]course.Course, 0)
	if err := repo.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting courses")
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(ctx context.Context, id string) (course.Course, error) {
	var crs course.Course
	if err := repo.db.GetContext(ctx, &crs, "SELECT "+courseColumns+" FROM courses WHERE id = $1", id); err != nil {
		return course.Course{}, trapErr(err, course.ErrNotFound, "selecting course by ID")
	}
	return crs, nil
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, id string, uc course.UpdateCourse) (course.Course, error) {
	// only save set fields
	var crs course.Course
	err := repo.db.GetContext(ctx, &crs, `
		UPDATE courses SET
			name = COALESCE($2, name),
			code = COALESCE($3, code),
			description = COALESCE($4, description),
			teacher_id = COALESCE($5, teacher_id)
		WHERE id = $1
		RETURNING `+courseColumns,
		id,
		null.StringFromPtr(uc.Name),
		null.StringFromPtr(uc.Code),
		null.StringFromPtr(uc.Description),
		null.StringFromPtr(uc.TeacherID),
	)
	if err != nil {
		if pqCode(err) == uniqueViolation {
			return course.Course{}, course.ErrCodeExists
		}
		return course.Course{}, trapErr(err, course.ErrNotFound, "updating course")
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return checkAffected(res, course.ErrNotFound, "deleting course")
}
