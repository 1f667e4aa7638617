// Package testutil builds services over the in-memory store and creates fixtures for tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/auth"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/resource"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
	"github.com/trezcool/edunotify/storage/database/inmem"
)

func init() {
	user.PasswordCost = bcrypt.MinCost
}

// NewValidator returns a Validator with every custom validator registered.
func NewValidator() *core.Validator {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	access.InitValidators(validate, translator)
	behavior.InitValidators(validate, translator)
	return core.NewValidator(validate, translator)
}

// Env holds every repository and service over a fresh in-memory store.
type Env struct {
	Conf  *core.Config
	DB    *inmemdb.DB
	Guard *access.Guard

	Users    user.Repository
	Students student.Repository
	Courses  course.Repository
	Grades   grade.Repository
	Reports  behavior.Repository
	Events   event.Repository

	Tokens        *auth.Tokens
	Authenticator *auth.Authenticator
	AuthSvc       *auth.Service
	UserSvc       *user.Service
	StudentSvc    *student.Service
	CourseSvc     *course.Service
	GradeSvc      *grade.Service
	BehaviorSvc   *behavior.Service
	EventSvc      *event.Service
	ResourceSvc   *resource.Service
}

// NewEnv wires an Env. observers are passed to the Guard.
func NewEnv(observers ...access.Observer) *Env {
	conf := core.NewTestConfig()
	db := inmemdb.Open()
	guard := access.NewGuard(observers...)
	validate := NewValidator()

	env := &Env{
		Conf:     conf,
		DB:       db,
		Guard:    guard,
		Users:    inmemdb.NewUserRepository(db),
		Students: inmemdb.NewStudentRepository(db),
		Courses:  inmemdb.NewCourseRepository(db),
		Grades:   inmemdb.NewGradeRepository(db),
		Reports:  inmemdb.NewReportRepository(db),
		Events:   inmemdb.NewEventRepository(db),
		Tokens:   auth.NewTokens(conf),
	}
	env.Authenticator = auth.NewAuthenticator(env.Tokens, env.Users, conf.Server.StrictAuth)
	env.UserSvc = user.NewService(env.Users, guard, validate)
	env.AuthSvc = auth.NewService(env.UserSvc, env.Tokens, guard, validate)
	env.StudentSvc = student.NewService(env.Students, env.Users, guard, validate)
	env.CourseSvc = course.NewService(env.Courses, env.Users, guard, validate)
	env.GradeSvc = grade.NewService(env.Grades, env.Students, guard, validate)
	env.BehaviorSvc = behavior.NewService(env.Reports, env.Students, guard, validate)
	env.EventSvc = event.NewService(env.Events, guard, validate)
	env.ResourceSvc = resource.NewService(env.Students, env.Grades, guard)
	return env
}

// Fixtures

func CreateUser(t *testing.T, repo user.Repository, name, email, pwd string, role access.Role, createdAt ...time.Time) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateStudent(t *testing.T, repo student.Repository, name, grd, parentID string) student.Student {
	t.Helper()
	std, err := repo.CreateStudent(context.Background(), student.Student{
		Name:      name,
		Grade:     grd,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateCourse(t *testing.T, repo course.Repository, name, code, teacherID string) course.Course {
	t.Helper()
	crs, err := repo.CreateCourse(context.Background(), course.Course{
		Name:      name,
		Code:      code,
		TeacherID: teacherID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateGrade(t *testing.T, repo grade.Repository, subject string, score, maxScore float64, studentID, teacherID string, createdAt ...time.Time) grade.Grade {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	grd, err := repo.CreateGrade(context.Background(), grade.Grade{
		Subject:   subject,
		Score:     score,
		MaxScore:  maxScore,
		StudentID: studentID,
		TeacherID: teacherID,
		CreatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return grd
}

func CreateReport(t *testing.T, repo behavior.Repository, title string, typ behavior.Type, studentID, teacherID string) behavior.Report {
	t.Helper()
	rpt, err := repo.CreateReport(context.Background(), behavior.Report{
		Title:       title,
		Description: title + " details",
		Type:        typ,
		StudentID:   studentID,
		TeacherID:   teacherID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateReport() failed: %v", err)
	}
	return rpt
}

func CreateEvent(t *testing.T, repo event.Repository, title string, date time.Time, createdBy string) event.Event {
	t.Helper()
	evt, err := repo.CreateEvent(context.Background(), event.Event{
		Title:       title,
		Description: title + " details",
		Date:        date.UTC(),
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEvent() failed: %v", err)
	}
	return evt
}

// School is a small populated school: one user per role plus a second parent,
// a child per parent, and a grade by the teacher for the first child.
type School struct {
	Admin, Teacher, Parent, OtherParent user.User
	Child, OtherChild                   student.Student
	Grade                               grade.Grade
}

// Password of every School user.
const Password = "password123"

func NewSchool(t *testing.T, env *Env) School {
	t.Helper()
	var s School
	s.Admin = CreateUser(t, env.Users, "Admin", "admin@school.test", Password, access.RoleAdmin)
	s.Teacher = CreateUser(t, env.Users, "Teacher", "teacher@school.test", Password, access.RoleTeacher)
	s.Parent = CreateUser(t, env.Users, "Parent", "parent@school.test", Password, access.RoleParent)
	s.OtherParent = CreateUser(t, env.Users, "Other Parent", "other.parent@school.test", Password, access.RoleParent)
	s.Child = CreateStudent(t, env.Students, "Child", "Grade 8", s.Parent.ID)
	s.OtherChild = CreateStudent(t, env.Students, "Other Child", "Grade 6", s.OtherParent.ID)
	s.Grade = CreateGrade(t, env.Grades, "Math", 85, 100, s.Child.ID, s.Teacher.ID)
	return s
}
