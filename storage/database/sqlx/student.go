package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edunotify/core/student"
)

const studentColumns = "id, name, grade, parent_id, created_at"

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	std.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO students ("+studentColumns+") VALUES (:id, :name, :grade, :parent_id, :created_at)",
		std,
	)
	if err != nil {
		return student.Student{}, trapErr(err, student.ErrNotFound, "inserting student")
	}
	return std, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context, filter student.QueryFilter) ([]student.Student, error) {
	query := "SELECT " + studentColumns + " FROM students"
	var args []interface{}
	if filter.ParentID != "" {
		query += " WHERE parent_id = $1"
		args = append(args, filter.ParentID)
	}
	query += " ORDER BY " + oldestFirst

	students := make([]student.Student, 0)
	if err := repo.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var std student.Student
	if err := repo.db.GetContext(ctx, &std, "SELECT "+studentColumns+" FROM students WHERE id = $1", id); err != nil {
		return student.Student{}, trapErr(err, student.ErrNotFound, "selecting student by ID")
	}
	return std, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, id string, us student.UpdateStudent) (student.Student, error) {
	// only save set fields
	var std student.Student
	err := repo.db.GetContext(ctx, &std, `
		UPDATE students SET
			name = COALESCE($2, name),
			grade = COALESCE($3, grade),
			parent_id = COALESCE($4, parent_id)
		WHERE id = $1
		RETURNING `+studentColumns,
		id, null.StringFromPtr(us.Name), null.StringFromPtr(us.Grade), null.StringFromPtr(us.ParentID),
	)
	if err != nil {
		return student.Student{}, trapErr(err, student.ErrNotFound, "updating student")
	}
	return std, nil
}

// DeleteStudent relies on ON DELETE CASCADE for grades and behavior reports.
func (repo *studentRepository) DeleteStudent(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM students WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return checkAffected(res, student.ErrNotFound, "deleting student")
}
