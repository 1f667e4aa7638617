package echoapi

import (
	"context"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/auth"
	"github.com/trezcool/edunotify/core/behavior"
	"github.com/trezcool/edunotify/core/course"
	"github.com/trezcool/edunotify/core/event"
	"github.com/trezcool/edunotify/core/grade"
	"github.com/trezcool/edunotify/core/student"
	"github.com/trezcool/edunotify/core/user"
)

type idArgs struct {
	ID graphql.ID
}

type userArgs struct {
	Email    string
	Password string
	Name     string
	Role     string
}

func (a userArgs) newUser() user.NewUser {
	return user.NewUser{Email: a.Email, Password: a.Password, Name: a.Name, Role: access.Role(a.Role)}
}

func (r *Resolver) Register(ctx context.Context, args userArgs) (*authPayloadResolver, error) {
	payload, err := r.svc.Auth.Register(ctx, args.newUser())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &authPayloadResolver{payload: payload}, nil
}

func (r *Resolver) Login(ctx context.Context, args struct{ Email, Password string }) (*authPayloadResolver, error) {
	payload, err := r.svc.Auth.Login(ctx, auth.Credentials{Email: args.Email, Password: args.Password})
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &authPayloadResolver{payload: payload}, nil
}

// Users

func (r *Resolver) CreateUser(ctx context.Context, args userArgs) (*userResolver, error) {
	usr, err := r.svc.Users.Create(ctx, access.FromContext(ctx), args.newUser())
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &userResolver{usr: usr}, nil
}

func (r *Resolver) UpdateUser(ctx context.Context, args struct {
	ID    graphql.ID
	Email *string
	Name  *string
	Role  *string
}) (*userResolver, error) {
	uu := user.UpdateUser{Email: args.Email, Name: args.Name}
	if args.Role != nil {
		role := access.Role(*args.Role)
		uu.Role = &role
	}
	usr, err := r.svc.Users.Update(ctx, access.FromContext(ctx), string(args.ID), uu)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &userResolver{usr: usr}, nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args idArgs) (bool, error) {
	ok, err := r.svc.Users.Delete(ctx, access.FromContext(ctx), string(args.ID))
	if err != nil {
		return false, r.fail(ctx, err)
	}
	return ok, nil
}

// Students

func (r *Resolver) CreateStudent(ctx context.Context, args struct{ Name, Grade, ParentID string }) (*studentResolver, error) {
	ns := student.NewStudent{Name: args.Name, Grade: args.Grade, ParentID: args.ParentID}
	std, err := r.svc.Students.Create(ctx, access.FromContext(ctx), ns)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &studentResolver{r: r, std: std}, nil
}

func (r *Resolver) UpdateStudent(ctx context.Context, args struct {
	ID       graphql.ID
	Name     *string
	Grade    *string
	ParentID *string
}) (*studentResolver, error) {
	us := student.UpdateStudent{Name: args.Name, Grade: args.Grade, ParentID: args.ParentID}
	std, err := r.svc.Students.Update(ctx, access.FromContext(ctx), string(args.ID), us)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &studentResolver{r: r, std: std}, nil
}

func (r *Resolver) DeleteStudent(ctx context.Context, args idArgs) (bool, error) {
	ok, err := r.svc.Students.Delete(ctx, access.FromContext(ctx), string(args.ID))
	if err != nil {
		return false, r.fail(ctx, err)
	}
	return ok, nil
}

// Courses

func (r *Resolver) CreateCourse(ctx context.Context, args struct{ Name, Code, Description, TeacherID string }) (*courseResolver, error) {
	nc := course.NewCourse{Name: args.Name, Code: args.Code, Description: args.Description, TeacherID: args.TeacherID}
	crs, err := r.svc.Courses.Create(ctx, access.FromContext(ctx), nc)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &courseResolver{r: r, crs: crs}, nil
}

func (r *Resolver) UpdateCourse(ctx context.Context, args struct {
	ID          graphql.ID
	Name        *string
	Code        *string
	Description *string
	TeacherID   *string
}) (*courseResolver, error) {
	uc := course.UpdateCourse{Name: args.Name, Code: args.Code, Description: args.Description, TeacherID: args.TeacherID}
	crs, err := r.svc.Courses.Update(ctx, access.FromContext(ctx), string(args.ID), uc)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &courseResolver{r: r, crs: crs}, nil
}

func (r *Resolver) DeleteCourse(ctx context.Context, args idArgs) (bool, error) {
	ok, err := r.svc.Courses.Delete(ctx, access.FromContext(ctx), string(args.ID))
	if err != nil {
		return false, r.fail(ctx, err)
	}
	return ok, nil
}

// Grades

func (r *Resolver) CreateGrade(ctx context.Context, args struct {
	Subject   string
	Score     float64
	MaxScore  float64
	StudentID string
}) (*gradeResolver, error) {
	ng := grade.NewGrade{Subject: args.Subject, Score: args.Score, MaxScore: args.MaxScore, StudentID: args.StudentID}
	grd, err := r.svc.Grades.Create(ctx, access.FromContext(ctx), ng)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &gradeResolver{r: r, grd: grd}, nil
}

func (r *Resolver) UpdateGrade(ctx context.Context, args struct {
	ID       graphql.ID
	Subject  *string
	Score    *float64
	MaxScore *float64
}) (*gradeResolver, error) {
	ug := grade.UpdateGrade{Subject: args.Subject, Score: args.Score, MaxScore: args.MaxScore}
	grd, err := r.svc.Grades.Update(ctx, access.FromContext(ctx), string(args.ID), ug)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &gradeResolver{r: r, grd: grd}, nil
}

func (r *Resolver) DeleteGrade(ctx context.Context, args idArgs) (bool, error) {
	ok, err := r.svc.Grades.Delete(ctx, access.FromContext(ctx), string(args.ID))
	if err != nil {
		return false, r.fail(ctx, err)
	}
	return ok, nil
}

// Behavior reports

func (r *Resolver) CreateBehaviorReport(ctx context.Context, args struct{ Title, Description, Type, StudentID string }) (*behaviorReportResolver, error) {
	nr := behavior.NewReport{
		Title:       args.Title,
		Description: args.Description,
		Type:        behavior.Type(args.Type),
		StudentID:   args.StudentID,
	}
	rep, err := r.svc.Behavior.Create(ctx, access.FromContext(ctx), nr)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &behaviorReportResolver{r: r, rep: rep}, nil
}

func (r *Resolver) UpdateBehaviorReport(ctx context.Context, args struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Type        *string
}) (*behaviorReportResolver, error) {
	ur := behavior.UpdateReport{Title: args.Title, Description: args.Description}
	if args.Type != nil {
		typ := behavior.Type(*args.Type)
		ur.Type = &typ
	}
	rep, err := r.svc.Behavior.Update(ctx, access.FromContext(ctx), string(args.ID), ur)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &behaviorReportResolver{r: r, rep: rep}, nil
}

func (r *Resolver) DeleteBehaviorReport(ctx context.Context, args idArgs) (bool, error) {
	ok, err := r.svc.Behavior.Delete(ctx, access.FromContext(ctx), string(args.ID))
	if err != nil {
		return false, r.fail(ctx, err)
	}
	return ok, nil
}

// Events

func (r *Resolver) CreateEvent(ctx context.Context, args struct{ Title, Description, Date string }) (*eventResolver, error) {
	ne := event.NewEvent{Title: args.Title, Description: args.Description, Date: args.Date}
	evt, err := r.svc.Events.Create(ctx, access.FromContext(ctx), ne)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &eventResolver{r: r, evt: evt}, nil
}

func (r *Resolver) UpdateEvent(ctx context.Context, args struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Date        *string
}) (*eventResolver, error) {
	ue := event.UpdateEvent{Title: args.Title, Description: args.Description, Date: args.Date}
	evt, err := r.svc.Events.Update(ctx, access.FromContext(ctx), string(args.ID), ue)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	return &eventResolver{r: r, evt: evt}, nil
}

func (r *Resolver) DeleteEvent(ctx context.Context, args idArgs) (bool, error) {
	ok, err := r.svc.Events.Delete(ctx, access.FromContext(ctx), string(args.ID))
	if err != nil {
		return false, r.fail(ctx, err)
	}
	return ok, nil
}
