package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/edunotify/core/behavior"
)

const reportColumns = "id, title, description, type, student_id, teacher_id, created_at"

type reportRepository struct {
	db *sqlx.DB
}

var _ behavior.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *sqlx.DB) behavior.Repository {
	return &reportRepository{db: db}
}

func (repo *reportRepository) CreateReport(ctx context.Context, rpt behavior.Report) (behavior.Report, error) {
	rpt.ID = uuid.New().String()
	_, err := repo.db.NamedExecContext(ctx,
		"INSERT INTO behavior_reports ("+reportColumns+") VALUES (:id, :title, :description, :type, :student_id, :teacher_id, :created_at)",
		rpt,
	)
	if err != nil {
		return behavior.Report{}, trapErr(err, behavior.ErrNotFound, "inserting behavior report")
	}
	return rpt, nil
}

func (repo *reportRepository) QueryReports(ctx context.Context, filter behavior.QueryFilter) ([]behavior.Report, error) {
	query := "SELECT " + reportColumns + " FROM behavior_reports"
	var args []interface{}
	if filter.StudentID != "" {
		query += " WHERE student_id = $1"
		args = append(args, filter.StudentID)
	}
	query += " ORDER BY " + newestFirst

	reports := make([]behavior.Report, 0)
	if err := repo.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, errors.Wrap(err, "selecting behavior reports")
	}
	return reports, nil
}

func (repo *reportRepository) GetReportByID(ctx context.Context, id string) (behavior.Report, error) {
	var rpt behavior.Report
	if err := repo.db.GetContext(ctx, &rpt, "SELECT "+reportColumns+" FROM behavior_reports WHERE id = $1", id); err != nil {
		return behavior.Report{}, trapErr(err, behavior.ErrNotFound, "selecting behavior report by ID")
	}
	return rpt, nil
}

func (repo *reportRepository) UpdateReport(ctx context.Context, id string, ur behavior.UpdateReport) (behavior.Report, error) {
	typ := null.String{}
	if ur.Type != nil {
		typ = null.StringFrom(string(*ur.Type))
	}

	// only save set fields
	var rpt behavior.Report
	err := repo.db.GetContext(ctx, &rpt, `
		UPDATE behavior_reports SET
			title = COALESCE($2, title),
			description = COALESCE($3, description),
			type = COALESCE($4, type)
		WHERE id = $1
		RETURNING `+reportColumns,
		id, null.StringFromPtr(ur.Title), null.StringFromPtr(ur.Description), typ,
	)
	if err != nil {
		return behavior.Report{}, trapErr(err, behavior.ErrNotFound, "updating behavior report")
	}
	return rpt, nil
}

func (repo *reportRepository) DeleteReport(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, "DELETE FROM behavior_reports WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting behavior report")
	}
	return checkAffected(res, behavior.ErrNotFound, "deleting behavior report")
}
