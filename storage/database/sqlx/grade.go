package sqlxrepos

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edunotify/core/grade"
)

const gradeColumns = "id, subject, score, max_score, student_id, teacher_id, created_at"

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, grd grade.Grade) (grade.Grade, error) {
	grd.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO grades ("+gradeColumns+") VALUES (:id, :subject, :score, :max_score, :student_id, :teacher_id, :created_at)",
		grd,
	)
	if err != nil {
		return grade.Grade{}, trapErr(err, grade.ErrNotFound, "inserting grade")
	}
	return grd, nil
}

func (repo *gradeRepository) QueryGrades(ctx context.Context, filter grade.QueryFilter) ([]grade.Grade, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		conds = append(conds, "student_id = $"+strconv.Itoa(len(args)))
	}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		conds = append(conds, "teacher_id = $"+strconv.Itoa(len(args)))
	}
	query := "SELECT " + gradeColumns + " FROM grades"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY " + newestFirst

	grades := make([]grade.Grade, 0)
	if err := repo.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting grades")
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(ctx context.Context, id string) (grade.Grade, error) {
	var grd grade.Grade
	if err := repo.db.GetContext(ctx, &grd, "SELECT "+gradeColumns+" FROM grades WHERE id = $1", id); err != nil {
		return grade.Grade{}, trapErr(err, grade.ErrNotFound, "selecting grade by ID")
	}
	return grd, nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, id string, ug grade.UpdateGrade) (grade.Grade, error) {
	// only save set fields
	var grd grade.Grade
	err := repo.db.GetContext(ctx, &grd, `
		UPDATE grades SET
			subject = COALESCE($2, subject),
			score = COALESCE($3, score),
			max_score = COALESCE($4, max_score)
		WHERE id = $1
		RETURNING `+gradeColumns,
		id, null.StringFromPtr(ug.Subject), null.Float64FromPtr(ug.Score), null.Float64FromPtr(ug.MaxScore),
	)
	if err != nil {
		return grade.Grade{}, trapErr(err, grade.ErrNotFound, "updating grade")
	}
	return grd, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM grades WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting grade")
	}
	return checkAffected(res, grade.ErrNotFound, "deleting grade")
}
