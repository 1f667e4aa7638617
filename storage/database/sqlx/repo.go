// Package sqlxrepos implements the core repositories over PostgreSQL with sqlx.
package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
)

// pq error codes
const (
	uniqueViolation     pq.ErrorCode = "23505"
	foreignKeyViolation pq.ErrorCode = "23503"
)

// orderings
var (
	oldestFirst  = core.OrderBy(core.DBOrdering{Field: "created_at", Ascending: true}, core.DBOrdering{Field: "id", Ascending: true})
	newestFirst  = core.OrderBy(core.DBOrdering{Field: "created_at"}, core.DBOrdering{Field: "id"})
	soonestFirst = core.OrderBy(core.DBOrdering{Field: "date", Ascending: true}, core.DBOrdering{Field: "id", Ascending: true})
)

// Repos bundles every repository over one connection pool.
type Repos struct {
	Users    user.Repository
	Students student.Repository
	Courses  course.Repository
	Grades   grade.Repository
	Reports  behavior.Repository
	Events   event.Repository
}

func NewRepos(db *sqlx.DB) Repos {
	return Repos{
		Users:    NewUserRepository(db),
		Students: NewStudentRepository(db),
		Courses:  NewCourseRepository(db),
		Grades:   NewGradeRepository(db),
		Reports:  NewReportRepository(db),
		Events:   NewEventRepository(db),
	}
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// trapErr maps "no rows" to notFound, constraint violations to core errors, and wraps anything else.
func trapErr(err error, notFound error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	switch pqCode(err) {
	case uniqueViolation:
		return core.NewConflictError("Record already exists")
	case foreignKeyViolation:
		return core.NewValidationError(err, core.FieldError{Field: "id", Error: "references a missing record"})
	}
	return errors.Wrap(err, msg)
}

// checkAffected returns notFound when res affected no row.
func checkAffected(res sql.Result, notFound error, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// exists runs an EXISTS query, optionally excluding some ids.
func exists(db sqlx.QueryerContext, ctx context.Context, table, column, value string, excludedIDs []string) (bool, error) {
	query := "SELECT EXISTS (SELECT 1 FROM " + table + " WHERE " + column + " = $1"
	args := []interface{}{value}
	if len(excludedIDs) > 0 {
		query += " AND NOT (id = ANY($2))"
		args = append(args, pq.Array(excludedIDs))
	}
	var found bool
	err := sqlx.GetContext(ctx, db, &found, query+")", args...)
	return found, err
}
