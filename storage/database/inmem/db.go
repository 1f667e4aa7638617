package inmemdb

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
)

// DB is an in-memory store holding every table behind a single lock.
// Deletes cascade like the foreign keys of the SQL schema.
type DB struct {
	mutex    sync.RWMutex
	seq      int
	order    map[string]int // id -> insertion sequence
	users    map[string]*user.User
	students map[string]*student.Student
	courses  map[string]*course.Course
	grades   map[string]*grade.Grade
	reports  map[string]*behavior.Report
	events   map[string]*event.Event
}

func Open() *DB {
	return &DB{
		order:    make(map[string]int),
		users:    make(map[string]*user.User),
		students: make(map[string]*student.Student),
		courses:  make(map[string]*course.Course),
		grades:   make(map[string]*grade.Grade),
		reports:  make(map[string]*behavior.Report),
		events:   make(map[string]*event.Event),
	}
}

// newID returns a new primary key. Callers must hold the write lock.
func (db *DB) newID() string {
	id := uuid.New().String()
	db.seq++
	db.order[id] = db.seq
	return id
}

// before orders rows by time, then by insertion.
func (db *DB) before(t1, t2 time.Time, id1, id2 string) bool {
	if !t1.Equal(t2) {
		return t1.Before(t2)
	}
	return db.order[id1] < db.order[id2]
}

// errMissingRef is returned for a reference to a missing row, like a foreign key violation in SQL.
var errMissingRef = core.NewValidationError(nil, core.FieldError{Field: "id", Error: "references a missing record"})

// checkUserRef returns errMissingRef if no user has the given id. Callers must hold the lock.
func (db *DB) checkUserRef(id string) error {
	if _, ok := db.users[id]; !ok {
		return errMissingRef
	}
	return nil
}

// Callers of the delete helpers must hold the write lock.

func (db *DB) deleteUser(id string) {
	for _, std := range db.students {
		if std.ParentID == id {
			db.deleteStudent(std.ID)
		}
	}
	for _, crs := range db.courses {
		if crs.TeacherID == id {
			db.drop(crs.ID)
			delete(db.courses, crs.ID)
		}
	}
	for _, grd := range db.grades {
		if grd.TeacherID == id {
			db.drop(grd.ID)
			delete(db.grades, grd.ID)
		}
	}
	for _, rpt := range db.reports {
		if rpt.TeacherID == id {
			db.drop(rpt.ID)
			delete(db.reports, rpt.ID)
		}
	}
	for _, evt := range db.events {
		if evt.CreatedBy == id {
			db.drop(evt.ID)
			delete(db.events, evt.ID)
		}
	}
	db.drop(id)
	delete(db.users, id)
}

func (db *DB) deleteStudent(id string) {
	for _, grd := range db.grades {
		if grd.StudentID == id {
			db.drop(grd.ID)
			delete(db.grades, grd.ID)
		}
	}
	for _, rpt := range db.reports {
		if rpt.StudentID == id {
			db.drop(rpt.ID)
			delete(db.reports, rpt.ID)
		}
	}
	db.drop(id)
	delete(db.students, id)
}

func (db *DB) drop(id string) {
	delete(db.order, id)
}

// Counts returns the number of rows per table.
func (db *DB) Counts() map[string]int {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	return map[string]int{
		"users":            len(db.users),
		"students":         len(db.students),
		"courses":          len(db.courses),
		"grades":           len(db.grades),
		"behavior_reports": len(db.reports),
		"events":           len(db.events),
	}
}
